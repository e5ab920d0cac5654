// Package reorder implements the drag-reorder protocol for ordered entity
// lists: splice locally, reindex contiguously, persist in the background.
package reorder

import (
	"context"
	"log/slog"

	"github.com/avelise/scopeflow/internal/api"
)

// Item is an ordered entity identified by an (id, order_index) pair.
type Item interface {
	ItemID() string
	SetOrderIndex(i int)
}

// Move splices items[src] out and reinserts it at dst, then reassigns
// order_index to every element as its new 0-based position. The result is
// always a contiguous, strictly increasing permutation; equal indices are a
// no-op. Returns the full id-to-index mapping for persistence, and false when
// either index is out of bounds.
func Move[T Item](items []T, src, dst int) ([]api.OrderEntry, bool) {
	n := len(items)
	if src < 0 || src >= n || dst < 0 || dst >= n {
		return nil, false
	}
	if src != dst {
		moved := items[src]
		copy(items[src:], items[src+1:])
		items[n-1] = moved
		// moved now sits at the end; rotate it into dst.
		copy(items[dst+1:], items[dst:n-1])
		items[dst] = moved
	}
	order := make([]api.OrderEntry, n)
	for i := range items {
		items[i].SetOrderIndex(i)
		order[i] = api.OrderEntry{ID: items[i].ItemID(), OrderIndex: i}
	}
	return order, true
}

// Persister saves a full order mapping remotely.
type Persister func(ctx context.Context, order []api.OrderEntry) error

// Engine applies optimistic reorders and persists them best-effort.
type Engine struct {
	logger *slog.Logger
}

// NewEngine creates a reorder engine. logger may be nil.
func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{logger: logger}
}

// Apply reorders items in place, then launches the persistence call in the
// background. Persistence is fire-and-forget: failure is logged, never
// surfaced, and the optimistic local order is not rolled back. The returned
// channel closes when the background call finishes (tests use it; callers
// are free to ignore it).
func Apply[T Item](e *Engine, items []T, src, dst int, persist Persister) (<-chan struct{}, bool) {
	order, ok := Move(items, src, dst)
	if !ok {
		return nil, false
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := persist(context.Background(), order); err != nil {
			e.logger.Warn("reorder persistence failed", "error", err)
		}
	}()
	return done, true
}
