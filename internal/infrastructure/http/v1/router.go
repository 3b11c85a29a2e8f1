// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"salestrack/internal/infrastructure/http/v1/handlers"
	"salestrack/internal/infrastructure/http/v1/middleware"
	"salestrack/internal/metadata"
	"salestrack/pkg/logger"
)

// RouterConfig holds router dependencies.
type RouterConfig struct {
	Logger   *logger.Logger
	Registry *metadata.Registry
	Sites    handlers.SiteIDResolver
	Items    handlers.ItemReader

	// Journal is optional; without it /api/v1/runs is not registered.
	Journal handlers.RunLister

	Version string
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}

	router := gin.New()

	// order matters
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	healthHandler := handlers.NewHealthHandler(cfg.Sites, cfg.Registry, cfg.Version, cfg.Journal != nil)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	v1 := router.Group("/api/v1")
	{
		meta := handlers.NewMetadataHandler(base, cfg.Registry)
		v1.GET("/meta/lists", meta.ListLists)
		v1.GET("/meta/lists/:name", meta.GetList)

		items := handlers.NewItemsHandler(base, cfg.Registry, cfg.Sites, cfg.Items)
		v1.GET("/lists/:name/items", items.List)

		if cfg.Journal != nil {
			runs := handlers.NewRunsHandler(base, cfg.Journal)
			v1.GET("/runs", runs.List)
		}
	}

	return router
}
