// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salestrack/internal/core/apperror"
	"salestrack/internal/metadata"
	"salestrack/pkg/logger"
)

// HealthHandler provides health check endpoints.
type HealthHandler struct {
	sites          SiteIDResolver
	registry       *metadata.Registry
	version        string
	journalEnabled bool
}

func NewHealthHandler(sites SiteIDResolver, registry *metadata.Registry, version string, journalEnabled bool) *HealthHandler {
	return &HealthHandler{
		sites:          sites,
		registry:       registry,
		version:        version,
		journalEnabled: journalEnabled,
	}
}

// Live handles liveness probe (is the process alive?).
// GET /health/live
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// Ready reports whether Graph answers for the configured site.
// The site id is memoized, so only the first successful check calls Graph.
// GET /health/ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx := c.Request.Context()
	if _, err := h.sites.SiteID(ctx); err != nil {
		logger.Warn(ctx, "readiness check failed", "error", err)

		code := apperror.CodeInternal
		if appErr, ok := apperror.AsAppError(err); ok {
			code = appErr.Code
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"checks": map[string]string{
				"graph": "unhealthy: " + code,
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"checks": map[string]string{
			"graph": "healthy",
		},
	})
}

// Info returns application information.
// GET /health/info
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"app":     "salestrack",
		"version": h.version,
		"site":    h.sites.SiteURL(),
		"lists":   h.registry.Len(),
		"journal": h.journalEnabled,
	})
}
