package recorder

import (
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pipeline_runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL UNIQUE,
			start_date    TEXT,
			end_date      TEXT,
			status        TEXT NOT NULL,
			error         TEXT,
			index_rows    INTEGER,
			currency_rows INTEGER,
			merged_rows   INTEGER,
			started_at    INTEGER NOT NULL,
			finished_at   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pipeline_started ON pipeline_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS ibov_usd_daily (
			date              TEXT PRIMARY KEY,
			fechamento_ibov   REAL,
			fechamento_cambio REAL,
			ibov_usd          REAL,
			run_id            TEXT,
			updated_at        INTEGER NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS snapshot_runs (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL UNIQUE,
			status      TEXT NOT NULL,
			path        TEXT,
			source      TEXT,
			note        TEXT,
			started_at  INTEGER NOT NULL,
			finished_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_started ON snapshot_runs(started_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN to NULL.
func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}

func (r *SQLiteRecorder) RecordPipelineRun(run *PipelineRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO pipeline_runs
		(run_id, start_date, end_date, status, error, index_rows, currency_rows, merged_rows, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		run.RunID, run.StartDate, run.EndDate, run.Status, run.Error,
		run.IndexRows, run.CurrencyRows, run.MergedRows,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
	)
	return err
}

// RecordRatios upserts merged rows by date in a single transaction.
func (r *SQLiteRecorder) RecordRatios(rows []RatioRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO ibov_usd_daily
		(date, fechamento_ibov, fechamento_cambio, ibov_usd, run_id, updated_at)
		VALUES (?,?,?,?,?,?)
		ON CONFLICT(date) DO UPDATE SET
			fechamento_ibov = excluded.fechamento_ibov,
			fechamento_cambio = excluded.fechamento_cambio,
			ibov_usd = excluded.ibov_usd,
			run_id = excluded.run_id,
			updated_at = excluded.updated_at`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, row := range rows {
		if _, err := stmt.Exec(row.Date, nullable(row.IBOV), nullable(row.Cambio), nullable(row.IBOVUSD), row.RunID, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert %s: %w", row.Date, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordSnapshotRun(run *SnapshotRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO snapshot_runs
		(run_id, status, path, source, note, started_at, finished_at)
		VALUES (?,?,?,?,?,?,?)`,
		run.RunID, run.Status, run.Path, run.Source, run.Note,
		run.StartedAt.Unix(), run.FinishedAt.Unix(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
