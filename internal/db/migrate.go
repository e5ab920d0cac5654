package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order. Every statement is idempotent so the
// whole list can be re-run on each startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		cache_key  TEXT PRIMARY KEY,
		payload    TEXT NOT NULL,
		fetched_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS search_history (
		id           TEXT PRIMARY KEY,
		query        TEXT NOT NULL,
		result_count INTEGER NOT NULL DEFAULT 0,
		searched_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_search_history_at ON search_history(searched_at)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
