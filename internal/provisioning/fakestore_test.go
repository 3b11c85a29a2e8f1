package provisioning

import (
	"context"
	"fmt"
	"net/http"

	"salestrack/internal/infrastructure/graph"
)

type fakeList struct {
	id      string
	name    string
	desc    string
	columns []graph.ColumnDefinition
}

// fakeStore is an in-memory SharePoint site.
type fakeStore struct {
	lists  []*fakeList
	nextID int

	createdLists   []string
	createdColumns []string // "List.column"
	payloads       map[string]graph.ColumnDefinition

	failColumn string // "List.column" rejected with 409
	findErr    error
	listErr    error
	columnErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{payloads: make(map[string]graph.ColumnDefinition)}
}

func (s *fakeStore) seedList(name string, cols ...graph.ColumnDefinition) *fakeList {
	s.nextID++
	l := &fakeList{id: fmt.Sprintf("list-%d", s.nextID), name: name, columns: cols}
	s.lists = append(s.lists, l)
	return l
}

func (s *fakeStore) byID(id string) *fakeList {
	for _, l := range s.lists {
		if l.id == id {
			return l
		}
	}
	return nil
}

func (s *fakeStore) byName(name string) *fakeList {
	for _, l := range s.lists {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (s *fakeStore) creations() int {
	return len(s.createdLists) + len(s.createdColumns)
}

func (s *fakeStore) resetCalls() {
	s.createdLists = nil
	s.createdColumns = nil
}

func (s *fakeStore) FindList(ctx context.Context, siteID, displayName string) (*graph.List, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if l := s.byName(displayName); l != nil {
		return &graph.List{ID: l.id, DisplayName: l.name}, nil
	}
	return nil, nil
}

func (s *fakeStore) CreateList(ctx context.Context, siteID, displayName, description string) (*graph.List, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	l := s.seedList(displayName, graph.ColumnDefinition{Name: "Title", Text: &graph.TextColumn{}})
	l.desc = description
	s.createdLists = append(s.createdLists, displayName)
	return &graph.List{ID: l.id, DisplayName: displayName}, nil
}

func (s *fakeStore) FindColumn(ctx context.Context, siteID, listID, name string) (*graph.ColumnDefinition, error) {
	l := s.byID(listID)
	if l == nil {
		return nil, &graph.RemoteError{Status: http.StatusNotFound}
	}
	for i := range l.columns {
		if l.columns[i].Name == name {
			c := l.columns[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateColumn(ctx context.Context, siteID, listID string, col graph.ColumnDefinition) (*graph.ColumnDefinition, error) {
	if s.columnErr != nil {
		return nil, s.columnErr
	}
	l := s.byID(listID)
	key := l.name + "." + col.Name
	if key == s.failColumn {
		return nil, &graph.RemoteError{Status: http.StatusConflict, Code: "nameAlreadyExists"}
	}
	for _, c := range l.columns {
		if c.Name == col.Name {
			return nil, &graph.RemoteError{Status: http.StatusConflict, Code: "nameAlreadyExists"}
		}
	}
	col.ID = fmt.Sprintf("col-%d", len(l.columns))
	l.columns = append(l.columns, col)
	s.createdColumns = append(s.createdColumns, key)
	s.payloads[key] = col
	return &col, nil
}

// snapshot returns list name -> column names, for state comparison.
func (s *fakeStore) snapshot() map[string][]string {
	out := make(map[string][]string, len(s.lists))
	for _, l := range s.lists {
		var names []string
		for _, c := range l.columns {
			names = append(names, c.Name)
		}
		out[l.name] = names
	}
	return out
}

type fixedSite struct {
	id    string
	err   error
	calls int
}

func (f *fixedSite) SiteID(context.Context) (string, error) {
	f.calls++
	return f.id, f.err
}
