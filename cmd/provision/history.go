package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/caarlos0/env/v11"

	"salestrack/internal/infrastructure/storage/postgres"
)

type historyConfig struct {
	JournalDSN string `env:"JOURNAL_DATABASE_URL,required,notEmpty"`
}

func runHistory(ctx context.Context, out io.Writer, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 10, "number of runs to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg historyConfig
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("run journal not configured: %w", err)
	}

	journal, pool, err := postgres.OpenRunJournal(ctx, cfg.JournalDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	runs, err := journal.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	printHistory(out, runs)
	return nil
}

func printHistory(out io.Writer, runs []postgres.RunEntry) {
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STARTED\tSTATUS\tLISTS\tCREATED\tSKIPPED\tERROR")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%d\t%s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status, r.ListsProcessed, r.ColumnsCreated, r.ColumnsSkipped, r.Error)
	}
	_ = tw.Flush()
}
