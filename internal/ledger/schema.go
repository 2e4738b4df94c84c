package ledger

import (
	"context"
	"fmt"
)

const schemaVersion = 1

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS schema_info (
        version INTEGER NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS runs (
        id TEXT PRIMARY KEY,
        catalog TEXT NOT NULL,
        format TEXT NOT NULL,
        started_at TEXT NOT NULL,
        finished_at TEXT,
        total_bytes INTEGER NOT NULL DEFAULT 0
    )`,
	`CREATE TABLE IF NOT EXISTS items (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
        title TEXT NOT NULL,
        url TEXT NOT NULL,
        path TEXT NOT NULL,
        status TEXT NOT NULL,
        bytes INTEGER NOT NULL DEFAULT 0,
        recorded_at TEXT NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS idx_items_run ON items(run_id)`,
}

func (s *Store) applySchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	var version int
	err := s.db.QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&version)
	switch {
	case err == nil:
		if version > schemaVersion {
			return fmt.Errorf("ledger schema version %d is newer than supported %d", version, schemaVersion)
		}
		return nil
	default:
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_info (version) VALUES (?)`, schemaVersion); err != nil {
			return fmt.Errorf("record schema version: %w", err)
		}
		return nil
	}
}
