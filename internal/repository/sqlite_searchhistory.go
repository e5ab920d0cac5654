package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avelise/scopeflow/internal/db"
	"github.com/google/uuid"
)

// SQLiteSearchHistoryRepo implements SearchHistoryRepo using the sidecar
// SQLite database.
type SQLiteSearchHistoryRepo struct {
	db db.DBTX
}

// NewSQLiteSearchHistoryRepo creates a new SQLiteSearchHistoryRepo.
func NewSQLiteSearchHistoryRepo(conn db.DBTX) *SQLiteSearchHistoryRepo {
	return &SQLiteSearchHistoryRepo{db: conn}
}

func (r *SQLiteSearchHistoryRepo) Record(ctx context.Context, e *SearchEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.SearchedAt.IsZero() {
		e.SearchedAt = time.Now().UTC()
	}
	query := `INSERT INTO search_history (id, query, result_count, searched_at) VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, e.ID, e.Query, e.ResultCount, e.SearchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

func (r *SQLiteSearchHistoryRepo) Recent(ctx context.Context, limit int) ([]*SearchEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, query, result_count, searched_at FROM search_history
		ORDER BY searched_at DESC, id DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing search history: %w", err)
	}
	defer rows.Close()

	var entries []*SearchEntry
	for rows.Next() {
		var e SearchEntry
		var searchedAt string
		if err := rows.Scan(&e.ID, &e.Query, &e.ResultCount, &searchedAt); err != nil {
			return nil, fmt.Errorf("scanning search entry: %w", err)
		}
		t, err := time.Parse(time.RFC3339, searchedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing search timestamp: %w", err)
		}
		e.SearchedAt = t
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
