package provisioning

import (
	"context"
	"fmt"
	"time"

	appctx "salestrack/internal/core/context"
	"salestrack/internal/core/id"
	"salestrack/internal/metadata"
	"salestrack/pkg/logger"
)

// Journal records finished runs.
type Journal interface {
	Record(ctx context.Context, report *RunReport) error
}

// DriverConfig wires a Driver.
type DriverConfig struct {
	// Lists in provisioning order. Lookup targets must come first.
	Lists []metadata.ListDef

	Store ListStore
	Sites SiteIDResolver

	// Journal is optional; a failing journal never fails the run.
	Journal Journal

	// Progress is called after each list is synchronized.
	Progress func(ListReport)

	Logger *logger.Logger
}

// Driver runs EnsureList over every list, one at a time, in order.
// Lists are never processed concurrently: a lookup column needs the id of
// its target list, which is only known once that list has been synchronized.
type Driver struct {
	cfg DriverConfig
	log *logger.Logger
	now func() time.Time
}

func NewDriver(cfg DriverConfig) *Driver {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	return &Driver{
		cfg: cfg,
		log: log.WithComponent("provisioner"),
		now: time.Now,
	}
}

// Run provisions every list. The first error aborts the run; no later list is
// attempted. The report is returned in both cases.
func (d *Driver) Run(ctx context.Context) (*RunReport, error) {
	started := d.now().UTC()

	run := appctx.GetRun(ctx)
	if run == nil {
		run = &appctx.RunContext{RunID: id.New().String(), Command: "provision", StartedAt: started}
		ctx = appctx.WithRun(ctx, run)
	}
	ctx = logger.WithLogger(ctx, d.log)

	report := &RunReport{
		RunID:     run.RunID,
		StartedAt: started,
		ListIDs:   make(NameToID, len(d.cfg.Lists)),
	}

	err := d.run(ctx, report)

	report.FinishedAt = d.now().UTC()
	if err != nil {
		report.Status = StatusFailed
		report.Error = err.Error()
		logger.Error(ctx, "provisioning failed",
			"list", report.FailedList,
			"error", err,
		)
	} else {
		report.Status = StatusSucceeded
		logger.Info(ctx, "provisioning finished",
			"lists", report.ListsProcessed(),
			"lists_created", report.ListsCreated(),
			"columns_created", report.ColumnsCreated(),
			"columns_skipped", report.ColumnsSkipped(),
			"duration_ms", report.Duration().Milliseconds(),
		)
	}

	if d.cfg.Journal != nil {
		if jerr := d.cfg.Journal.Record(ctx, report); jerr != nil {
			logger.Warn(ctx, "failed to record run in journal", "error", jerr)
		}
	}

	return report, err
}

func (d *Driver) run(ctx context.Context, report *RunReport) error {
	siteID, err := d.cfg.Sites.SiteID(ctx)
	if err != nil {
		return err
	}
	report.SiteID = siteID

	for _, def := range d.cfg.Lists {
		lr, err := EnsureList(ctx, d.cfg.Store, siteID, def, report.ListIDs)
		report.Lists = append(report.Lists, lr)
		if err != nil {
			report.FailedList = def.DisplayName
			return fmt.Errorf("list %s: %w", def.DisplayName, err)
		}
		if d.cfg.Progress != nil {
			d.cfg.Progress(lr)
		}
	}
	return nil
}
