// Package store holds the process-wide cache of server-derived data: at most
// one pending-or-resolved fetch per cache key, with explicit invalidation.
// It is constructed once at startup and injected into every consumer.
package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/repository"
)

// Cache keys. Collection keys are fixed; entity keys derive from the id.
const (
	KeyProjects = "projects-list"
	KeyScopes   = "scopes-list"
)

// KeyScope returns the cache key for a single scope.
func KeyScope(id string) string { return "scope:" + id }

// KeyProject returns the cache key for a single project.
func KeyProject(id string) string { return "project:" + id }

// Store is the entity cache. All access is safe for concurrent use; the
// single-flight guarantee is per key: concurrent reads before resolution
// share one pending Fetch, so no duplicate requests are issued.
type Store struct {
	client    api.Client
	snapshots repository.SnapshotRepo // nil disables write-through
	logger    *slog.Logger

	mu        sync.Mutex
	projects  *Fetch[[]domain.ProjectCard]
	scopes    *Fetch[[]domain.ScopeListItem]
	scopeByID map[string]*Fetch[*domain.Scope]
	projByID  map[string]*Fetch[*domain.Project]
}

// New creates a Store backed by the given gateway. snapshots may be nil.
func New(client api.Client, snapshots repository.SnapshotRepo, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		client:    client,
		snapshots: snapshots,
		logger:    logger,
		scopeByID: make(map[string]*Fetch[*domain.Scope]),
		projByID:  make(map[string]*Fetch[*domain.Project]),
	}
}

// launch starts the remote read for key and resolves f when it returns.
// Successful payloads are written through to the snapshot sidecar.
func launch[T any](s *Store, f *Fetch[T], key string, fn func(ctx context.Context) (T, error)) {
	go func() {
		val, err := fn(context.Background())
		if err == nil {
			s.persistSnapshot(key, val)
		} else {
			s.logger.Warn("fetch failed", "key", key, "error", err)
		}
		f.resolve(val, err)
	}()
}

// current returns *cur, replacing it with a fresh fetch when absent or when
// the previous one resolved with an error. Caller must hold s.mu.
func current[T any](s *Store, cur **Fetch[T], key string, fn func(ctx context.Context) (T, error)) *Fetch[T] {
	if *cur != nil && !(*cur).Failed() {
		return *cur
	}
	f := newFetch[T]()
	*cur = f
	launch(s, f, key, fn)
	return f
}

// refresh unconditionally replaces *cur with a fresh fetch.
// Caller must hold s.mu.
func refresh[T any](s *Store, cur **Fetch[T], key string, fn func(ctx context.Context) (T, error)) *Fetch[T] {
	f := newFetch[T]()
	*cur = f
	launch(s, f, key, fn)
	return f
}

// Projects returns the current fetch for the project card list.
func (s *Store) Projects() *Fetch[[]domain.ProjectCard] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return current(s, &s.projects, KeyProjects, s.client.ListProjects)
}

// InvalidateProjects discards the current project list fetch and starts a
// fresh one. Readers of the old fetch are unaffected.
func (s *Store) InvalidateProjects() *Fetch[[]domain.ProjectCard] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return refresh(s, &s.projects, KeyProjects, s.client.ListProjects)
}

// Scopes returns the current fetch for the scope list.
func (s *Store) Scopes() *Fetch[[]domain.ScopeListItem] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return current(s, &s.scopes, KeyScopes, s.client.ListScopes)
}

// InvalidateScopes discards the current scope list fetch and starts a fresh one.
func (s *Store) InvalidateScopes() *Fetch[[]domain.ScopeListItem] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return refresh(s, &s.scopes, KeyScopes, s.client.ListScopes)
}

// Scope returns the current fetch for one scope.
func (s *Store) Scope(id string) *Fetch[*domain.Scope] {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.scopeByID[id]
	f := current(s, &cur, KeyScope(id), func(ctx context.Context) (*domain.Scope, error) {
		return s.client.GetScope(ctx, id)
	})
	s.scopeByID[id] = cur
	return f
}

// InvalidateScope discards the current fetch for one scope and reloads it.
func (s *Store) InvalidateScope(id string) *Fetch[*domain.Scope] {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.scopeByID[id]
	f := refresh(s, &cur, KeyScope(id), func(ctx context.Context) (*domain.Scope, error) {
		return s.client.GetScope(ctx, id)
	})
	s.scopeByID[id] = cur
	return f
}

// Project returns the current fetch for one project.
func (s *Store) Project(id string) *Fetch[*domain.Project] {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.projByID[id]
	f := current(s, &cur, KeyProject(id), func(ctx context.Context) (*domain.Project, error) {
		return s.client.GetProject(ctx, id)
	})
	s.projByID[id] = cur
	return f
}

// InvalidateProject discards the current fetch for one project and reloads it.
func (s *Store) InvalidateProject(id string) *Fetch[*domain.Project] {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur := s.projByID[id]
	f := refresh(s, &cur, KeyProject(id), func(ctx context.Context) (*domain.Project, error) {
		return s.client.GetProject(ctx, id)
	})
	s.projByID[id] = cur
	return f
}

// Drop removes any cached fetch for an entity key without starting a new one.
// Used after deletes, where a reload would just 404.
func (s *Store) Drop(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.scopeByID {
		if KeyScope(id) == key {
			delete(s.scopeByID, id)
		}
	}
	for id := range s.projByID {
		if KeyProject(id) == key {
			delete(s.projByID, id)
		}
	}
	if s.snapshots != nil {
		if err := s.snapshots.Delete(context.Background(), key); err != nil {
			s.logger.Warn("snapshot delete failed", "key", key, "error", err)
		}
	}
}

func (s *Store) persistSnapshot(key string, val any) {
	if s.snapshots == nil {
		return
	}
	payload, err := json.Marshal(val)
	if err != nil {
		s.logger.Warn("snapshot encode failed", "key", key, "error", err)
		return
	}
	if err := s.snapshots.Put(context.Background(), key, payload, time.Now()); err != nil {
		s.logger.Warn("snapshot write failed", "key", key, "error", err)
	}
}

// LastKnownProjects reads the most recent persisted project list, if any.
func (s *Store) LastKnownProjects(ctx context.Context) ([]domain.ProjectCard, time.Time, error) {
	return lastKnown[[]domain.ProjectCard](s, ctx, KeyProjects)
}

// LastKnownScopes reads the most recent persisted scope list, if any.
func (s *Store) LastKnownScopes(ctx context.Context) ([]domain.ScopeListItem, time.Time, error) {
	return lastKnown[[]domain.ScopeListItem](s, ctx, KeyScopes)
}

// LastKnownProject reads the most recent persisted copy of one project.
func (s *Store) LastKnownProject(ctx context.Context, id string) (*domain.Project, time.Time, error) {
	return lastKnown[*domain.Project](s, ctx, KeyProject(id))
}

func lastKnown[T any](s *Store, ctx context.Context, key string) (T, time.Time, error) {
	var zero T
	if s.snapshots == nil {
		return zero, time.Time{}, repository.ErrNotFound
	}
	snap, err := s.snapshots.Get(ctx, key)
	if err != nil {
		return zero, time.Time{}, err
	}
	var val T
	if err := json.Unmarshal(snap.Payload, &val); err != nil {
		return zero, time.Time{}, err
	}
	return val, snap.FetchedAt, nil
}
