package graph

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GenericListTemplate is the template of a plain custom list.
const GenericListTemplate = "genericList"

// FindList returns the list with the given display name, or nil when the site has none.
func (c *Client) FindList(ctx context.Context, siteID, displayName string) (*List, error) {
	lists, err := getAll[List](ctx, c, fmt.Sprintf("/sites/%s/lists?$select=id,displayName,description,webUrl", siteID))
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	for i := range lists {
		if lists[i].DisplayName == displayName {
			return &lists[i], nil
		}
	}
	return nil, nil
}

// CreateList creates an empty generic list. Columns are added separately.
func (c *Client) CreateList(ctx context.Context, siteID, displayName, description string) (*List, error) {
	in := List{
		DisplayName: displayName,
		Description: description,
		List:        &ListInfo{Template: GenericListTemplate},
	}
	var out List
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/sites/%s/lists", siteID), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListColumns returns every column of a list, including built-in ones.
func (c *Client) ListColumns(ctx context.Context, siteID, listID string) ([]ColumnDefinition, error) {
	cols, err := getAll[ColumnDefinition](ctx, c, fmt.Sprintf("/sites/%s/lists/%s/columns", siteID, listID))
	if err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return cols, nil
}

// FindColumn returns the column with the given internal name, or nil.
func (c *Client) FindColumn(ctx context.Context, siteID, listID, name string) (*ColumnDefinition, error) {
	cols, err := c.ListColumns(ctx, siteID, listID)
	if err != nil {
		return nil, err
	}
	for i := range cols {
		if cols[i].Name == name {
			return &cols[i], nil
		}
	}
	return nil, nil
}

// CreateColumn adds a column to a list.
func (c *Client) CreateColumn(ctx context.Context, siteID, listID string, col ColumnDefinition) (*ColumnDefinition, error) {
	var out ColumnDefinition
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/sites/%s/lists/%s/columns", siteID, listID), col, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListItems returns the items of a list with their field values.
// top > 0 caps the number of items returned; 0 reads every page.
func (c *Client) ListItems(ctx context.Context, siteID, listID string, top int) ([]ListItem, error) {
	q := url.Values{}
	q.Set("expand", "fields")
	if top > 0 {
		q.Set("$top", fmt.Sprint(top))
	}

	var items []ListItem
	next := fmt.Sprintf("/sites/%s/lists/%s/items?%s", siteID, listID, q.Encode())
	for next != "" {
		var p page[ListItem]
		if err := c.do(ctx, http.MethodGet, next, nil, &p); err != nil {
			return nil, fmt.Errorf("list items: %w", err)
		}
		items = append(items, p.Value...)
		if top > 0 && len(items) >= top {
			return items[:top], nil
		}
		next = p.NextLink
	}
	return items, nil
}
