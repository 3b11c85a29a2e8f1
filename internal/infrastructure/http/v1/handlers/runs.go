package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"salestrack/internal/core/apperror"
	"salestrack/internal/infrastructure/http/v1/dto"
	"salestrack/internal/infrastructure/storage/postgres"
)

// RunLister reads the provisioning run journal.
type RunLister interface {
	Recent(ctx context.Context, limit int) ([]postgres.RunEntry, error)
}

type RunsHandler struct {
	*BaseHandler
	journal RunLister
}

func NewRunsHandler(base *BaseHandler, journal RunLister) *RunsHandler {
	return &RunsHandler{BaseHandler: base, journal: journal}
}

// List returns recent provisioning runs, newest first.
// GET /api/v1/runs?limit=N
func (h *RunsHandler) List(c *gin.Context) {
	var q dto.RunsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	runs, err := h.journal.Recent(c.Request.Context(), q.Limit)
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return
	}
	if runs == nil {
		runs = []postgres.RunEntry{}
	}
	h.OK(c, gin.H{"runs": runs})
}
