package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"bookfetch/internal/config"
)

// Item statuses recorded per download attempt.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// Store manages download history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database in the cache
// directory and applies the schema.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.CacheDir, "history.db")
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
	if err := store.applySchema(context.Background()); err != nil {
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

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// StartRun records the beginning of a download batch and returns its id.
func (s *Store) StartRun(ctx context.Context, catalog, format string) (string, error) {
	if s == nil {
		return "", nil
	}
	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, catalog, format, started_at) VALUES (?, ?, ?, ?)`,
		id, catalog, format, now)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun stamps a run's completion time and total bytes.
func (s *Store) FinishRun(ctx context.Context, runID string, totalBytes int64) error {
	if s == nil || runID == "" {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, total_bytes = ? WHERE id = ?`,
		now, totalBytes, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordItem appends one download attempt to a run.
func (s *Store) RecordItem(ctx context.Context, runID, title, url, path, status string, bytes int64) error {
	if s == nil || runID == "" {
		return nil
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (run_id, title, url, path, status, bytes, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, title, url, path, status, bytes, now)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// RunSummary aggregates one run for history listings.
type RunSummary struct {
	ID         string
	Catalog    string
	Format     string
	StartedAt  time.Time
	FinishedAt time.Time
	TotalBytes int64
	Downloaded int
	Skipped    int
	Failed     int
}

// RecentRuns returns the newest runs first, up to limit.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT r.id, r.catalog, r.format, r.started_at, COALESCE(r.finished_at, ''), r.total_bytes,
                COALESCE(SUM(CASE WHEN i.status = ? THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN i.status = ? THEN 1 ELSE 0 END), 0),
                COALESCE(SUM(CASE WHEN i.status = ? THEN 1 ELSE 0 END), 0)
         FROM runs r
         LEFT JOIN items i ON i.run_id = r.id
         GROUP BY r.id
         ORDER BY r.started_at DESC
         LIMIT ?`,
		StatusOK, StatusSkipped, StatusFailed, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var summaries []RunSummary
	for rows.Next() {
		var summary RunSummary
		var started, finished string
		if err := rows.Scan(&summary.ID, &summary.Catalog, &summary.Format,
			&started, &finished, &summary.TotalBytes,
			&summary.Downloaded, &summary.Skipped, &summary.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, started); err == nil {
			summary.StartedAt = ts
		}
		if finished != "" {
			if ts, err := time.Parse(time.RFC3339Nano, finished); err == nil {
				summary.FinishedAt = ts
			}
		}
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return summaries, nil
}
