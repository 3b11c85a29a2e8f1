package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salestrack/internal/core/id"
	"salestrack/internal/provisioning"
)

func newTestJournal(t *testing.T) *RunJournal {
	t.Helper()
	j, err := NewRunJournal(nil)
	require.NoError(t, err)
	return j
}

func sampleReport(lists int) *provisioning.RunReport {
	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	r := &provisioning.RunReport{
		RunID:      id.New().String(),
		SiteID:     "contoso.sharepoint.com,abc,def",
		Status:     provisioning.StatusSucceeded,
		StartedAt:  started,
		FinishedAt: started.Add(3 * time.Second),
		ListIDs:    provisioning.NameToID{},
	}
	for i := 0; i < lists; i++ {
		name := "List" + strings.Repeat("x", i%7)
		r.Lists = append(r.Lists, provisioning.ListReport{
			List:           name,
			ListID:         id.New().String(),
			ListCreated:    true,
			ColumnsCreated: []string{"tss_name", "tss_code", "tss_description"},
		})
	}
	return r
}

func TestNewEntry_SmallReportStoredPlain(t *testing.T) {
	j := newTestJournal(t)
	report := sampleReport(2)

	entry, err := j.newEntry(report)
	require.NoError(t, err)

	assert.Equal(t, report.RunID, entry.ID.String())
	assert.Equal(t, CompressionNone, entry.CompressionAlgo)
	assert.NotEmpty(t, entry.Report)
	assert.Nil(t, entry.ReportCompressed)
	assert.Equal(t, 2, entry.ListsProcessed)
	assert.Equal(t, 6, entry.ColumnsCreated)
}

func TestNewEntry_LargeReportCompressed(t *testing.T) {
	j := newTestJournal(t)
	report := sampleReport(200)

	entry, err := j.newEntry(report)
	require.NoError(t, err)
	require.Equal(t, CompressionZstd, entry.CompressionAlgo)
	assert.Nil(t, entry.Report)
	assert.NotEmpty(t, entry.ReportCompressed)

	require.NoError(t, j.expand(&entry))
	decoded, err := DecodeReport(entry)
	require.NoError(t, err)
	assert.Len(t, decoded.Lists, 200)
	assert.Equal(t, report.RunID, decoded.RunID)
}

func TestNewEntry_InvalidRunIDGetsFreshID(t *testing.T) {
	j := newTestJournal(t)
	report := sampleReport(1)
	report.RunID = "not-a-uuid"

	entry, err := j.newEntry(report)
	require.NoError(t, err)
	assert.False(t, id.IsNil(entry.ID))
}

func TestInsertQuery(t *testing.T) {
	j := newTestJournal(t)
	entry, err := j.newEntry(sampleReport(1))
	require.NoError(t, err)

	sql, args, err := j.insertQuery(entry)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sql, "INSERT INTO provision_runs ("))
	assert.Contains(t, sql, "$13")
	assert.Len(t, args, 13)
}

func TestRecentQuery(t *testing.T) {
	j := newTestJournal(t)

	sql, _, err := j.recentQuery(5)
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM provision_runs ORDER BY started_at DESC LIMIT 5")

	sql, _, err = j.recentQuery(0)
	require.NoError(t, err)
	assert.Contains(t, sql, "LIMIT 20")
}

func TestDecodeReport_Empty(t *testing.T) {
	_, err := DecodeReport(RunEntry{ID: id.New()})
	assert.Error(t, err)
}
