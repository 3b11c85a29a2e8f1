package v1

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/internal/core/apperror"
	"salestrack/internal/infrastructure/graph"
	"salestrack/internal/infrastructure/storage/postgres"
	"salestrack/internal/metadata"
)

type stubSites struct {
	err error
}

func (s stubSites) SiteID(context.Context) (string, error) { return "site-1", s.err }
func (s stubSites) SiteURL() string { return "https://contoso.sharepoint.com/sites/sales" }

type stubItems struct {
	lists   map[string]string
	items   []graph.ListItem
	findErr error
	gotTop  int
}

func (s *stubItems) FindList(ctx context.Context, siteID, displayName string) (*graph.List, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if id, ok := s.lists[displayName]; ok {
		return &graph.List{ID: id, DisplayName: displayName}, nil
	}
	return nil, nil
}

func (s *stubItems) ListItems(ctx context.Context, siteID, listID string, top int) ([]graph.ListItem, error) {
	s.gotTop = top
	return s.items, nil
}

type stubJournal struct {
	runs []postgres.RunEntry
}

func (j stubJournal) Recent(ctx context.Context, limit int) ([]postgres.RunEntry, error) {
	return j.runs, nil
}

func newTestRouter(t *testing.T, mutate func(*RouterConfig)) http.Handler {
	t.Helper()
	cfg := RouterConfig{
		Registry: metadata.NewCRMRegistry(),
		Sites:    stubSites{},
		Items:    &stubItems{},
		Version:  "test",
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewRouter(cfg)
}

func do(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealth(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, body := do(t, h, "/health/live")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec, body = do(t, h, "/health/ready")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["checks"].(map[string]any)["graph"])

	rec, body = do(t, h, "/health/info")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(len(metadata.CRMLists())), body["lists"])
	assert.Equal(t, false, body["journal"])
}

func TestHealth_NotReadyWhenSiteFails(t *testing.T) {
	h := newTestRouter(t, func(c *RouterConfig) {
		c.Sites = stubSites{err: apperror.NewAuth(errors.New("no session"))}
	})

	rec, body := do(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", body["status"])
	assert.Equal(t, map[string]any{"graph": "unhealthy: " + apperror.CodeAuth}, body["checks"])
	assert.NotContains(t, rec.Body.String(), "no session")
}

func TestHealth_NotReadyHidesPlainErrors(t *testing.T) {
	h := newTestRouter(t, func(c *RouterConfig) {
		c.Sites = stubSites{err: errors.New("GET /sites/contoso.sharepoint.com:/sites/crm: dial tcp: timeout")}
	})

	rec, body := do(t, h, "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, map[string]any{"graph": "unhealthy: " + apperror.CodeInternal}, body["checks"])
	assert.NotContains(t, rec.Body.String(), "/sites/")
}

func TestMeta_Lists(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/meta/lists", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var lists []struct {
		Name      string   `json:"name"`
		DependsOn []string `json:"dependsOn"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lists))
	require.Len(t, lists, len(metadata.CRMLists()))
	assert.Equal(t, metadata.ListCountry, lists[0].Name)
	assert.Empty(t, lists[0].DependsOn)

	for _, l := range lists {
		if l.Name == metadata.ListBasin {
			assert.Equal(t, []string{metadata.ListCountry}, l.DependsOn)
		}
	}
}

func TestMeta_GetList(t *testing.T) {
	h := newTestRouter(t, nil)

	rec, body := do(t, h, "/api/v1/meta/lists/Basin")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Basin", body["displayName"])
	assert.NotEmpty(t, body["columns"])

	rec, body = do(t, h, "/api/v1/meta/lists/Rigs")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperror.CodeNotFound, body["code"])
}

func TestItems_CoercedBySchema(t *testing.T) {
	modified := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	items := &stubItems{
		lists: map[string]string{metadata.ListOpportunity: "list-opp"},
		items: []graph.ListItem{{
			ID:                   "1",
			LastModifiedDateTime: modified,
			Fields: map[string]any{
				"Title":                "North Sea P&A campaign",
				"tss_customerLookupId": "4",
				"tss_amount":           2500000.5,
				"tss_probability":      60.0,
				"tss_stage":            "Proposal",
				"Edit":                 "",
			},
		}},
	}
	h := newTestRouter(t, func(c *RouterConfig) { c.Items = items })

	rec, body := do(t, h, "/api/v1/lists/Opportunity/items?top=10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 10, items.gotTop)
	assert.Equal(t, float64(1), body["count"])

	fields := body["items"].([]any)[0].(map[string]any)["fields"].(map[string]any)
	assert.Equal(t, "2500000.5", fields["tss_amount"])
	assert.Equal(t, "4", fields["tss_customerLookupId"])
	assert.Equal(t, 60.0, fields["tss_probability"])
	assert.NotContains(t, fields, "Edit")
}

func TestItems_Errors(t *testing.T) {
	items := &stubItems{lists: map[string]string{}}
	h := newTestRouter(t, func(c *RouterConfig) { c.Items = items })

	rec, _ := do(t, h, "/api/v1/lists/Rigs/items")
	assert.Equal(t, http.StatusNotFound, rec.Code, "undeclared list")

	rec, body := do(t, h, "/api/v1/lists/Basin/items")
	assert.Equal(t, http.StatusNotFound, rec.Code, "declared but not provisioned")
	assert.Equal(t, "not provisioned", body["details"].(map[string]any)["reason"])

	rec, body = do(t, h, "/api/v1/lists/Basin/items?top=0x")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperror.CodeValidation, body["code"])

	items.findErr = &graph.RemoteError{Status: http.StatusServiceUnavailable}
	rec, body = do(t, h, "/api/v1/lists/Basin/items")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, apperror.CodeRemote, body["code"])
}

func TestItems_DefaultTop(t *testing.T) {
	items := &stubItems{lists: map[string]string{metadata.ListBasin: "list-basin"}}
	h := newTestRouter(t, func(c *RouterConfig) { c.Items = items })

	rec, body := do(t, h, "/api/v1/lists/Basin/items")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 200, items.gotTop)
	assert.Equal(t, []any{}, body["items"])
}

func TestRuns(t *testing.T) {
	rec, _ := do(t, newTestRouter(t, nil), "/api/v1/runs")
	assert.Equal(t, http.StatusNotFound, rec.Code, "journal not configured")

	journal := stubJournal{runs: []postgres.RunEntry{{Status: "succeeded", RunCounts: postgres.RunCounts{ListsProcessed: 9}}}}
	h := newTestRouter(t, func(c *RouterConfig) { c.Journal = journal })

	rec, body := do(t, h, "/api/v1/runs?limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	runs := body["runs"].([]any)
	require.Len(t, runs, 1)
	assert.Equal(t, float64(9), runs[0].(map[string]any)["listsProcessed"])
}
