package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/klauspost/compress/zstd"

	"salestrack/internal/core/id"
	"salestrack/internal/provisioning"
)

// CompressionAlgo names how a stored report is encoded.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

const (
	runsTable                = "provision_runs"
	defaultCompressThreshold = 8 * 1024
	defaultRecentLimit       = 20
)

const createRunsTable = `
CREATE TABLE IF NOT EXISTS provision_runs (
	id                uuid PRIMARY KEY,
	started_at        timestamptz NOT NULL,
	finished_at       timestamptz NOT NULL,
	status            text NOT NULL,
	site_id           text NOT NULL DEFAULT '',
	failed_list       text NOT NULL DEFAULT '',
	lists_processed   integer NOT NULL DEFAULT 0,
	columns_created   integer NOT NULL DEFAULT 0,
	columns_skipped   integer NOT NULL DEFAULT 0,
	error             text NOT NULL DEFAULT '',
	report            jsonb,
	report_compressed bytea,
	compression_algo  text NOT NULL DEFAULT 'none'
)`

const createRunsIndex = `CREATE INDEX IF NOT EXISTS provision_runs_started_at_idx ON provision_runs (started_at DESC)`

// RunCounts are the summary counters of a run.
type RunCounts struct {
	ListsProcessed int `db:"lists_processed" json:"listsProcessed"`
	ColumnsCreated int `db:"columns_created" json:"columnsCreated"`
	ColumnsSkipped int `db:"columns_skipped" json:"columnsSkipped"`
}

// RunEntry is one row of provision_runs.
type RunEntry struct {
	ID         id.ID     `db:"id" json:"id"`
	StartedAt  time.Time `db:"started_at" json:"startedAt"`
	FinishedAt time.Time `db:"finished_at" json:"finishedAt"`
	Status     string    `db:"status" json:"status"`
	SiteID     string    `db:"site_id" json:"siteId,omitempty"`
	FailedList string    `db:"failed_list" json:"failedList,omitempty"`
	RunCounts
	Error string `db:"error" json:"error,omitempty"`

	Report           json.RawMessage `db:"report" json:"report,omitempty"`
	ReportCompressed []byte          `db:"report_compressed" json:"-"`
	CompressionAlgo  CompressionAlgo `db:"compression_algo" json:"-"`
}

// RunJournal stores provisioning runs. Reports larger than the compression
// threshold are stored zstd-compressed in report_compressed.
type RunJournal struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ provisioning.Journal = (*RunJournal)(nil)

func NewRunJournal(txManager *TxManager) (*RunJournal, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &RunJournal{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: defaultCompressThreshold,
	}, nil
}

func (j *RunJournal) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// EnsureSchema creates the journal table if it does not exist.
func (j *RunJournal) EnsureSchema(ctx context.Context) error {
	return j.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		q := j.txManager.GetQuerier(ctx)
		if _, err := q.Exec(ctx, createRunsTable); err != nil {
			return fmt.Errorf("create %s: %w", runsTable, err)
		}
		if _, err := q.Exec(ctx, createRunsIndex); err != nil {
			return fmt.Errorf("create %s index: %w", runsTable, err)
		}
		return nil
	})
}

// Record inserts one row for a finished run.
func (j *RunJournal) Record(ctx context.Context, report *provisioning.RunReport) error {
	entry, err := j.newEntry(report)
	if err != nil {
		return err
	}

	sql, args, err := j.insertQuery(entry)
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := j.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", runsTable, err)
	}
	return nil
}

// Recent returns the latest runs, newest first, with reports decompressed.
func (j *RunJournal) Recent(ctx context.Context, limit int) ([]RunEntry, error) {
	sql, args, err := j.recentQuery(limit)
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	var entries []RunEntry
	err = j.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		if err := pgxscan.Select(ctx, j.txManager.GetQuerier(ctx), &entries, sql, args...); err != nil {
			return fmt.Errorf("select %s: %w", runsTable, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range entries {
		if err := j.expand(&entries[i]); err != nil {
			return nil, fmt.Errorf("run %s: %w", entries[i].ID, err)
		}
	}
	return entries, nil
}

func (j *RunJournal) insertQuery(entry RunEntry) (string, []any, error) {
	return j.builder().
		Insert(runsTable).
		SetMap(StructToMap(entry)).
		ToSql()
}

func (j *RunJournal) recentQuery(limit int) (string, []any, error) {
	if limit <= 0 {
		limit = defaultRecentLimit
	}
	return j.builder().
		Select(ExtractDBColumns[RunEntry]()...).
		From(runsTable).
		OrderBy("started_at DESC").
		Limit(uint64(limit)).
		ToSql()
}

func (j *RunJournal) newEntry(report *provisioning.RunReport) (RunEntry, error) {
	runID, err := id.Parse(report.RunID)
	if err != nil {
		runID = id.New()
	}

	body, err := json.Marshal(report)
	if err != nil {
		return RunEntry{}, fmt.Errorf("marshal report: %w", err)
	}

	entry := RunEntry{
		ID:         runID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Status:     report.Status,
		SiteID:     report.SiteID,
		FailedList: report.FailedList,
		RunCounts: RunCounts{
			ListsProcessed: report.ListsProcessed(),
			ColumnsCreated: report.ColumnsCreated(),
			ColumnsSkipped: report.ColumnsSkipped(),
		},
		Error:           report.Error,
		Report:          body,
		CompressionAlgo: CompressionNone,
	}

	if len(body) > j.compressThreshold {
		entry.ReportCompressed = j.encoder.EncodeAll(body, nil)
		entry.Report = nil
		entry.CompressionAlgo = CompressionZstd
	}
	return entry, nil
}

func (j *RunJournal) expand(e *RunEntry) error {
	if e.CompressionAlgo != CompressionZstd || len(e.ReportCompressed) == 0 {
		return nil
	}
	body, err := j.decoder.DecodeAll(e.ReportCompressed, nil)
	if err != nil {
		return fmt.Errorf("decompress report: %w", err)
	}
	e.Report = body
	e.ReportCompressed = nil
	return nil
}

// DecodeReport returns the full run report stored with e.
func DecodeReport(e RunEntry) (*provisioning.RunReport, error) {
	if len(e.Report) == 0 {
		return nil, fmt.Errorf("run %s has no report", e.ID)
	}
	var report provisioning.RunReport
	if err := json.Unmarshal(e.Report, &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// OpenRunJournal connects to dsn, makes sure the journal table exists and
// returns the journal with its pool. The caller closes the pool.
func OpenRunJournal(ctx context.Context, dsn string) (*RunJournal, *Pool, error) {
	pool, err := NewPool(ctx, DefaultPoolConfig(dsn))
	if err != nil {
		return nil, nil, err
	}

	journal, err := NewRunJournal(NewTxManager(pool))
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	if err := journal.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return journal, pool, nil
}
