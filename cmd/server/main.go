// Package main is the entry point for the SalesTrack API daemon.
// It serves health checks, the declared list schema and list items read from Graph.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"salestrack/internal/core/config"
	"salestrack/internal/infrastructure/graph"
	v1 "salestrack/internal/infrastructure/http/v1"
	"salestrack/internal/infrastructure/storage/postgres"
	"salestrack/internal/metadata"
	"salestrack/pkg/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "0.1.0"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := logger.WithLogger(context.Background(), log)
	log.Infow("starting salestrack api", "version", version, "site", cfg.SiteURL)

	// --- Graph ---
	tokens, err := graph.NewAzureCLITokens(cfg.TenantID, cfg.GraphScope)
	if err != nil {
		log.Fatalw("failed to create credential", "error", err)
	}
	client, err := graph.NewAdminClient(ctx, graph.ClientConfig{
		BaseURL: cfg.GraphBaseURL,
		Timeout: cfg.GraphTimeout,
	}, tokens)
	if err != nil {
		log.Fatalw("no graph credential", "error", err)
	}
	sites := graph.NewSiteResolver(client, cfg.SiteURL)

	routerCfg := v1.RouterConfig{
		Logger:   log,
		Registry: metadata.NewCRMRegistry(),
		Sites:    sites,
		Items:    client,
		Version:  version,
	}

	// --- Run journal (optional) ---
	if cfg.JournalEnabled() {
		journal, pool, err := postgres.OpenRunJournal(ctx, cfg.JournalDSN)
		if err != nil {
			log.Fatalw("failed to open run journal", "error", err)
		}
		defer pool.Close()
		defer postgres.LogPoolStats(ctx, pool)
		routerCfg.Journal = journal
		log.Info("run journal enabled")
	}

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      v1.NewRouter(routerCfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GraphTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}
