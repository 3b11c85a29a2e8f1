package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	appctx "salestrack/internal/core/context"
	"salestrack/internal/core/config"
	"salestrack/internal/core/id"
	"salestrack/internal/infrastructure/graph"
	"salestrack/internal/infrastructure/storage/postgres"
	"salestrack/internal/metadata"
	"salestrack/internal/provisioning"
	"salestrack/pkg/logger"
)

func crmRegistry() *metadata.Registry {
	return metadata.NewCRMRegistry()
}

func runProvision(ctx context.Context, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	run := &appctx.RunContext{RunID: id.New().String(), Command: "provision"}
	ctx = logger.WithLogger(appctx.WithRun(ctx, run), log)

	tokens, err := graph.NewAzureCLITokens(cfg.TenantID, cfg.GraphScope)
	if err != nil {
		return err
	}
	client, err := graph.NewAdminClient(ctx, graph.ClientConfig{
		BaseURL: cfg.GraphBaseURL,
		Timeout: cfg.GraphTimeout,
	}, tokens)
	if err != nil {
		return err
	}

	registry := crmRegistry()
	driverCfg := provisioning.DriverConfig{
		Lists:    registry.List(),
		Store:    client,
		Sites:    graph.NewSiteResolver(client, cfg.SiteURL),
		Progress: func(lr provisioning.ListReport) { fmt.Fprintln(out, formatProgress(lr)) },
		Logger:   log,
	}

	if cfg.JournalEnabled() {
		journal, pool, err := postgres.OpenRunJournal(ctx, cfg.JournalDSN)
		if err != nil {
			// a missing journal never blocks provisioning
			log.Warnw("run journal unavailable", "error", err)
		} else {
			defer pool.Close()
			driverCfg.Journal = journal
		}
	}

	fmt.Fprintf(out, "Provisioning %d lists on %s\n\n", registry.Len(), cfg.SiteURL)

	report, err := provisioning.NewDriver(driverCfg).Run(ctx)
	if err != nil {
		if report.FailedList != "" {
			fmt.Fprintf(out, "\n✗ %s failed after %d lists\n", report.FailedList, report.ListsProcessed())
		}
		return err
	}

	printSummary(out, report)
	return nil
}

func formatProgress(lr provisioning.ListReport) string {
	state := "exists"
	if lr.ListCreated {
		state = "created"
	}
	line := fmt.Sprintf("✓ %-26s %-8s %2d columns created, %2d skipped",
		lr.List, state, len(lr.ColumnsCreated), len(lr.ColumnsSkipped))
	if len(lr.Mismatches) > 0 {
		names := make([]string, 0, len(lr.Mismatches))
		for _, m := range lr.Mismatches {
			names = append(names, fmt.Sprintf("%s (%s, declared %s)", m.Column, m.Actual, m.Declared))
		}
		line += "\n  ! type differs: " + strings.Join(names, ", ")
	}
	return line
}

func printSummary(out io.Writer, r *provisioning.RunReport) {
	fmt.Fprintf(out, "\nDone in %s: %d lists (%d created), %d columns created, %d already present.\n",
		r.Duration().Round(1e6), r.ListsProcessed(), r.ListsCreated(), r.ColumnsCreated(), r.ColumnsSkipped())
	fmt.Fprintf(out, "Run %s\n", r.RunID)
}
