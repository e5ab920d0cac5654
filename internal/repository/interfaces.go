package repository

import (
	"context"
	"time"
)

// Snapshot is one persisted last-known-good server payload.
type Snapshot struct {
	CacheKey  string
	Payload   []byte
	FetchedAt time.Time
}

// SnapshotRepo stores the most recent resolved payload per cache key so the
// client can render stale data when the server is unreachable.
type SnapshotRepo interface {
	Put(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error
	Get(ctx context.Context, key string) (*Snapshot, error)
	Delete(ctx context.Context, key string) error
}

// SearchEntry is one recorded local search.
type SearchEntry struct {
	ID          string
	Query       string
	ResultCount int
	SearchedAt  time.Time
}

// SearchHistoryRepo records queries the user has run, newest first.
type SearchHistoryRepo interface {
	Record(ctx context.Context, e *SearchEntry) error
	Recent(ctx context.Context, limit int) ([]*SearchEntry, error)
}
