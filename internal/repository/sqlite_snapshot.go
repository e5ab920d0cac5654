package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avelise/scopeflow/internal/db"
)

// SQLiteSnapshotRepo implements SnapshotRepo using the sidecar SQLite database.
type SQLiteSnapshotRepo struct {
	db db.DBTX
}

// NewSQLiteSnapshotRepo creates a new SQLiteSnapshotRepo.
func NewSQLiteSnapshotRepo(conn db.DBTX) *SQLiteSnapshotRepo {
	return &SQLiteSnapshotRepo{db: conn}
}

func (r *SQLiteSnapshotRepo) Put(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	query := `INSERT OR REPLACE INTO snapshots (cache_key, payload, fetched_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, key, string(payload), fetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upserting snapshot %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteSnapshotRepo) Get(ctx context.Context, key string) (*Snapshot, error) {
	query := `SELECT cache_key, payload, fetched_at FROM snapshots WHERE cache_key = ?`
	row := r.db.QueryRowContext(ctx, query, key)

	var s Snapshot
	var payload, fetchedAt string
	if err := row.Scan(&s.CacheKey, &payload, &fetchedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("snapshot %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning snapshot: %w", err)
	}
	s.Payload = []byte(payload)
	t, err := time.Parse(time.RFC3339, fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing snapshot timestamp: %w", err)
	}
	s.FetchedAt = t
	return &s, nil
}

func (r *SQLiteSnapshotRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE cache_key = ?`, key)
	if err != nil {
		return fmt.Errorf("deleting snapshot %q: %w", key, err)
	}
	return nil
}
