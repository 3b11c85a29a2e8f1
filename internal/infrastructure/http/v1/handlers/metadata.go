package handlers

import (
	"github.com/gin-gonic/gin"

	"salestrack/internal/core/apperror"
	"salestrack/internal/infrastructure/http/v1/dto"
	"salestrack/internal/metadata"
)

type MetadataHandler struct {
	*BaseHandler
	registry *metadata.Registry
}

func NewMetadataHandler(base *BaseHandler, registry *metadata.Registry) *MetadataHandler {
	return &MetadataHandler{
		BaseHandler: base,
		registry:    registry,
	}
}

// ListLists returns every declared list in provisioning order.
// GET /api/v1/meta/lists
func (h *MetadataHandler) ListLists(c *gin.Context) {
	defs := h.registry.List()
	out := make([]dto.ListSummary, 0, len(defs))
	for _, def := range defs {
		out = append(out, dto.ListSummary{
			Name:        def.DisplayName,
			Description: def.Description,
			ColumnCount: len(def.Columns),
			DependsOn:   h.registry.DependsOn(def.DisplayName),
		})
	}
	h.OK(c, out)
}

// GetList returns the full definition of one list.
// GET /api/v1/meta/lists/:name
func (h *MetadataHandler) GetList(c *gin.Context) {
	name := c.Param("name")
	def, ok := h.registry.Get(name)
	if !ok {
		h.Error(c, apperror.NewNotFound("list", name))
		return
	}
	h.OK(c, dto.ListDetail{ListDef: def, DependsOn: h.registry.DependsOn(name)})
}
