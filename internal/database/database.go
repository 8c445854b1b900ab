// Package database implements the SQLite-backed run-history store.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"pv-go/internal/database/migrations"
	"pv-go/internal/pv"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store implements pv.HistoryStore on SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the run-history database at path and applies
// pending migrations. path can be ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with the
// appropriate PRAGMAs. Exported for tests that need a raw connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite ships with foreign keys OFF for backward compatibility.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// OpenInDir opens the run-history database inside dir, creating the
// directory first.
func OpenInDir(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return Open(filepath.Join(dir, "history.db"))
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) BeginRun(run *pv.Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (id, operation, work_dir, started_at, status, total)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Operation, run.WorkDir, run.StartedAt, run.Status, run.Stats.Total,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

func (s *Store) FinishRun(run *pv.Run) error {
	res, err := s.db.Exec(`
		UPDATE runs SET
			finished_at = ?, status = ?,
			total = ?, processed = ?, archived = ?, snapshotted = ?,
			duplicated = ?, skipped = ?, errored = ?
		WHERE id = ?`,
		run.FinishedAt, run.Status,
		run.Stats.Total, run.Stats.Processed, run.Stats.Archived, run.Stats.Snapshotted,
		run.Stats.Duplicated, run.Stats.Skipped, run.Stats.Errored,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("run not found: %s", run.ID)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(limit int) ([]*pv.Run, error) {
	rows, err := s.db.Query(`
		SELECT id, operation, work_dir, started_at, finished_at, status,
			total, processed, archived, snapshotted, duplicated, skipped, errored
		FROM runs
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []*pv.Run
	for rows.Next() {
		run := &pv.Run{}
		var finished sql.NullTime
		err := rows.Scan(
			&run.ID, &run.Operation, &run.WorkDir, &run.StartedAt, &finished, &run.Status,
			&run.Stats.Total, &run.Stats.Processed, &run.Stats.Archived, &run.Stats.Snapshotted,
			&run.Stats.Duplicated, &run.Stats.Skipped, &run.Stats.Errored,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if finished.Valid {
			run.FinishedAt = finished.Time
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Compile-time check
var _ pv.HistoryStore = (*Store)(nil)
