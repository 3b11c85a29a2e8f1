// Package provisioning reconciles the declared list schema against a SharePoint site.
//
// Reconciliation is additive and creation-only: missing lists and columns are
// created, existing ones are left untouched, nothing is renamed or deleted.
// A failed run is repaired by running again.
package provisioning

import (
	"context"

	"salestrack/internal/infrastructure/graph"
)

// ListStore is the remote list store the synchronizer works against.
// *graph.Client implements it.
type ListStore interface {
	FindList(ctx context.Context, siteID, displayName string) (*graph.List, error)
	CreateList(ctx context.Context, siteID, displayName, description string) (*graph.List, error)
	FindColumn(ctx context.Context, siteID, listID, name string) (*graph.ColumnDefinition, error)
	CreateColumn(ctx context.Context, siteID, listID string, col graph.ColumnDefinition) (*graph.ColumnDefinition, error)
}

// SiteIDResolver yields the id of the target site.
type SiteIDResolver interface {
	SiteID(ctx context.Context) (string, error)
}

// NameToID maps list display names to remote list ids.
// It is owned by one run and only ever grows.
type NameToID map[string]string

var (
	_ ListStore      = (*graph.Client)(nil)
	_ SiteIDResolver = (*graph.SiteResolver)(nil)
)
