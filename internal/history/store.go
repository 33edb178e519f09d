// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite ledger of render invocations so
// past successes and converter failures can be reviewed after the console
// output is gone.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/deckgen/internal/render"
	"github.com/pdiddy/deckgen/pkg/types"
)

// DefaultPath is the ledger location relative to the working directory.
const DefaultPath = ".deckgen/history.db"

// timeLayout is fixed-width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// defaultLimit caps List when the caller passes a non-positive limit.
const defaultLimit = 20

// Store manages the render history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at cfg.Path and creates the
// schema if it does not exist.
func Open(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS renders (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			output TEXT NOT NULL,
			mode TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			started_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_renders_started_at ON renders(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores one render result. It satisfies render.Recorder.
func (s *Store) Record(ctx context.Context, r render.Result) error {
	var errText sql.NullString
	if r.Err != nil {
		errText = sql.NullString{String: r.Err.Error(), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO renders (output, mode, status, error, started_at, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Target.Output,
		string(r.Target.Mode),
		string(r.Status),
		errText,
		r.StartedAt.UTC().Format(timeLayout),
		r.Duration.Milliseconds(),
	)
	if err != nil {
		return fmt.Errorf("inserting render record: %w", err)
	}
	return nil
}

// List returns the most recent records, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]types.RenderRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, output, mode, status, error, started_at, duration_ms
		 FROM renders ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying renders: %w", err)
	}
	defer rows.Close()

	var records []types.RenderRecord
	for rows.Next() {
		var (
			rec        types.RenderRecord
			mode       string
			status     string
			errText    sql.NullString
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&rec.ID, &rec.Output, &mode, &status, &errText, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scanning render row: %w", err)
		}
		rec.Mode = types.Mode(mode)
		rec.Status = types.RenderStatus(status)
		rec.Error = errText.String
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		if rec.StartedAt, err = time.Parse(timeLayout, startedAt); err != nil {
			return nil, fmt.Errorf("parsing started_at %q: %w", startedAt, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Prune deletes records older than cutoff and returns how many were removed.
func (s *Store) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM renders WHERE started_at < ?`, cutoff.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("pruning renders: %w", err)
	}
	return res.RowsAffected()
}
