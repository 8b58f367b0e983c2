// Package history persists run reports in an embedded sqlite database so
// serve mode can answer queries about past runs and operators can diff runs
// after the fact.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/osrs-econ/herbsched/internal/domain"
)

// ErrRunNotFound is returned when no run matches the requested ID.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id        TEXT NOT NULL UNIQUE,
	timestamp_utc TEXT NOT NULL,
	price_source  TEXT NOT NULL,
	recipe_count  INTEGER NOT NULL,
	invalid_count INTEGER NOT NULL,
	alert_count   INTEGER NOT NULL,
	report_json   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp_utc);
`

// Entry is one stored run with its summary columns.
type Entry struct {
	RunID        string `json:"run_id"`
	TimestampUTC string `json:"timestamp_utc"`
	PriceSource  string `json:"price_source"`
	RecipeCount  int    `json:"recipe_count"`
	InvalidCount int    `json:"invalid_count"`
	AlertCount   int    `json:"alert_count"`
}

// Store wraps the sqlite database holding run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores a run report under the given run ID.
func (s *Store) Save(ctx context.Context, runID string, r *domain.RunReport) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	invalid := 0
	for _, rec := range r.TableA {
		if !rec.Valid {
			invalid++
		}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, timestamp_utc, price_source, recipe_count, invalid_count, alert_count, report_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, r.TimestampUTC, r.PriceSource, len(r.TableA), invalid, len(r.TableB), string(payload))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// Get returns the full report stored under runID.
func (s *Store) Get(ctx context.Context, runID string) (*domain.RunReport, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT report_json FROM runs WHERE run_id = ?`, runID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	return decodeReport(payload)
}

// Latest returns the most recently inserted run, or ErrRunNotFound when the
// store is empty.
func (s *Store) Latest(ctx context.Context) (string, *domain.RunReport, error) {
	var runID, payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT run_id, report_json FROM runs ORDER BY id DESC LIMIT 1`).Scan(&runID, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil, ErrRunNotFound
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	r, err := decodeReport(payload)
	return runID, r, err
}

// Recent lists summary entries for the last n runs, newest first.
func (s *Store) Recent(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, timestamp_utc, price_source, recipe_count, invalid_count, alert_count
		 FROM runs ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.RunID, &e.TimestampUTC, &e.PriceSource, &e.RecipeCount, &e.InvalidCount, &e.AlertCount); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func decodeReport(payload string) (*domain.RunReport, error) {
	var r domain.RunReport
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("failed to decode stored report: %w", err)
	}
	return &r, nil
}
