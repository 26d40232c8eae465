package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"imgconv/internal/batch"
	"imgconv/internal/config"
)

// schemaVersion is the current schema version. Bump this when the schema
// changes; users must delete the journal database after a bump.
const schemaVersion = 1

// ErrSchemaMismatch indicates the journal database was created by a
// different release.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// ErrNotFound indicates no batch exists with the requested ID.
var ErrNotFound = errors.New("batch not found")

// Store persists finished batch reports in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryDBPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the journal database file.
func (s *Store) Path() string {
	return s.path
}

// RecordBatch writes a finished report and all its outcomes in one
// transaction.
func (s *Store) RecordBatch(ctx context.Context, report *batch.Report) error {
	if report == nil || report.ID == "" {
		return fmt.Errorf("record batch: report missing ID")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	succeeded, failed := report.Counts()
	if _, err := tx.ExecContext(
		ctx,
		`INSERT INTO batches (
            id, target, dest_dir, started_at, finished_at, total, succeeded, failed
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.Target.String(),
		report.DestDir,
		formatTime(report.StartedAt),
		formatTime(report.FinishedAt),
		len(report.Outcomes),
		succeeded,
		failed,
	); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for position, outcome := range report.Outcomes {
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO outcomes (
                batch_id, position, source, dest, status, reason, started_at, finished_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			report.ID,
			position,
			outcome.Source,
			outcome.Dest,
			string(outcome.Status),
			outcome.Reason,
			formatTime(outcome.StartedAt),
			formatTime(outcome.FinishedAt),
		); err != nil {
			return fmt.Errorf("insert outcome %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	return nil
}

// ListBatches returns the most recent batches, newest first. A limit of zero
// or less returns everything.
func (s *Store) ListBatches(ctx context.Context, limit int) ([]BatchSummary, error) {
	query := `SELECT id, target, dest_dir, started_at, finished_at, total, succeeded, failed
        FROM batches ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var summaries []BatchSummary
	for rows.Next() {
		var (
			summary               BatchSummary
			startedAt, finishedAt string
		)
		if err := rows.Scan(
			&summary.ID,
			&summary.Target,
			&summary.DestDir,
			&startedAt,
			&finishedAt,
			&summary.Total,
			&summary.Succeeded,
			&summary.Failed,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		summary.StartedAt = parseTime(startedAt)
		summary.FinishedAt = parseTime(finishedAt)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	return summaries, nil
}

// BatchOutcomes returns the per-file outcomes of one batch in request order.
func (s *Store) BatchOutcomes(ctx context.Context, id string) ([]batch.Outcome, error) {
	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM batches WHERE id = ?", id).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check batch: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT source, dest, status, reason, started_at, finished_at
            FROM outcomes WHERE batch_id = ? ORDER BY position`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("list outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []batch.Outcome
	for rows.Next() {
		var (
			outcome               batch.Outcome
			status                string
			startedAt, finishedAt string
		)
		if err := rows.Scan(&outcome.Source, &outcome.Dest, &status, &outcome.Reason, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		outcome.Status = batch.Status(status)
		outcome.StartedAt = parseTime(startedAt)
		outcome.FinishedAt = parseTime(finishedAt)
		outcomes = append(outcomes, outcome)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return outcomes, nil
}

// Prune deletes batches whose start time predates the cutoff.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM batches WHERE started_at < ?", formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("prune batches: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune rows affected: %w", err)
	}
	return deleted, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
