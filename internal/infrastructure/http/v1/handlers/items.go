package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"salestrack/internal/core/apperror"
	"salestrack/internal/infrastructure/graph"
	"salestrack/internal/infrastructure/http/v1/dto"
	"salestrack/internal/metadata"
)

const defaultItemsTop = 200

// ItemReader reads list items from the remote site.
type ItemReader interface {
	FindList(ctx context.Context, siteID, displayName string) (*graph.List, error)
	ListItems(ctx context.Context, siteID, listID string, top int) ([]graph.ListItem, error)
}

// ItemsHandler serves the items of declared lists.
type ItemsHandler struct {
	*BaseHandler
	registry *metadata.Registry
	sites    SiteIDResolver
	reader   ItemReader
}

func NewItemsHandler(base *BaseHandler, registry *metadata.Registry, sites SiteIDResolver, reader ItemReader) *ItemsHandler {
	return &ItemsHandler{
		BaseHandler: base,
		registry:    registry,
		sites:       sites,
		reader:      reader,
	}
}

// List returns the items of a declared list.
// GET /api/v1/lists/:name/items?top=N
func (h *ItemsHandler) List(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.registry.Get(name)
	if !ok {
		h.Error(c, apperror.NewNotFound("list", name))
		return
	}

	var q dto.ItemsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	if q.Top == 0 {
		q.Top = defaultItemsTop
	}

	ctx := c.Request.Context()
	siteID, err := h.sites.SiteID(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	list, err := h.reader.FindList(ctx, siteID, def.DisplayName)
	if err != nil {
		h.Error(c, remote("find list", err))
		return
	}
	if list == nil {
		h.Error(c, apperror.NewNotFound("list", name).WithDetail("reason", "not provisioned"))
		return
	}

	items, err := h.reader.ListItems(ctx, siteID, list.ID, q.Top)
	if err != nil {
		h.Error(c, remote("list items", err))
		return
	}

	resp := dto.ItemsResponse{List: def.DisplayName, Count: len(items), Items: make([]dto.Item, 0, len(items))}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.FromListItem(def, it))
	}
	h.OK(c, resp)
}

func remote(op string, err error) error {
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewRemote(op, err)
}
