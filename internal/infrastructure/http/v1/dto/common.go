// Package dto provides Data Transfer Objects for API responses.
package dto

import (
	"time"

	"salestrack/internal/infrastructure/graph"
	"salestrack/internal/metadata"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ListSummary describes one declared list.
type ListSummary struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	ColumnCount int      `json:"columnCount"`
	DependsOn   []string `json:"dependsOn,omitempty"`
}

// ListDetail is a declared list with its columns.
type ListDetail struct {
	metadata.ListDef
	DependsOn []string `json:"dependsOn,omitempty"`
}

// Item is one list item with fields projected onto the declared columns.
type Item struct {
	ID         string         `json:"id"`
	CreatedAt  time.Time      `json:"createdAt"`
	ModifiedAt time.Time      `json:"modifiedAt"`
	Fields     map[string]any `json:"fields"`
}

// ItemsResponse wraps the items of one list.
type ItemsResponse struct {
	List  string `json:"list"`
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

// FromListItem converts a Graph list item, coercing its fields by def.
func FromListItem(def metadata.ListDef, it graph.ListItem) Item {
	return Item{
		ID:         it.ID,
		CreatedAt:  it.CreatedDateTime,
		ModifiedAt: it.LastModifiedDateTime,
		Fields:     metadata.CoerceFields(def, it.Fields),
	}
}

// ItemsQuery holds query parameters of the items endpoint.
type ItemsQuery struct {
	Top int `form:"top" binding:"omitempty,min=1,max=5000"`
}

// RunsQuery holds query parameters of the runs endpoint.
type RunsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}
