package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/store"
)

// ScopeState tracks where a scope sits in its client-side lifecycle.
type ScopeState string

const (
	ScopeStateIdle       ScopeState = "idle"
	ScopeStateGenerating ScopeState = "generating"
	ScopeStateReady      ScopeState = "ready"
	ScopeStateEditing    ScopeState = "editing"
	ScopeStateSavedDraft ScopeState = "saved_draft"
	ScopeStateConverted  ScopeState = "converted"
	ScopeStateArchived   ScopeState = "archived"
)

// LoadingMessages rotate on the generation spinner. Purely cosmetic: the
// server reports no sub-progress, so these are not tied to real signals.
var LoadingMessages = []string{
	"Analyzing your idea…",
	"Breaking into epics…",
	"Generating user stories…",
	"Estimating timeline…",
	"Identifying risks…",
	"Almost there…",
}

// EpicEdit is one staged, unsaved edit to an epic. Nil fields are untouched.
type EpicEdit struct {
	Name        *string
	Description *string
}

// ScopeManager drives the scope lifecycle: generate, stage in-place epic
// edits, save, convert into a project, archive. Staged edits live in a side
// map and never touch the canonical scope until SaveEdits merges them.
type ScopeManager struct {
	client api.Client
	cache  *store.Store
	logger *slog.Logger

	mu     sync.Mutex
	scope  *domain.Scope
	state  ScopeState
	staged map[string]EpicEdit
}

// NewScopeManager creates a ScopeManager. logger may be nil.
func NewScopeManager(client api.Client, cache *store.Store, logger *slog.Logger) *ScopeManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ScopeManager{
		client: client,
		cache:  cache,
		logger: logger,
		state:  ScopeStateIdle,
		staged: make(map[string]EpicEdit),
	}
}

// State returns the current lifecycle state.
func (m *ScopeManager) State() ScopeState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Scope returns the canonical scope currently held, or nil.
func (m *ScopeManager) Scope() *domain.Scope {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scope
}

// Generate submits the idea and blocks until the server returns a full
// breakdown (typically 10-20s). Errors are propagated verbatim to the
// caller; there is no retry.
func (m *ScopeManager) Generate(ctx context.Context, in api.GenerateScopeInput) (*domain.Scope, error) {
	if strings.TrimSpace(in.ProductName) == "" {
		return nil, ErrEmptyProductName
	}
	if strings.TrimSpace(in.IdeaText) == "" {
		return nil, ErrEmptyIdea
	}

	m.mu.Lock()
	if m.state == ScopeStateGenerating {
		m.mu.Unlock()
		return nil, ErrGenerating
	}
	m.state = ScopeStateGenerating
	m.mu.Unlock()

	scope, err := m.client.GenerateScope(ctx, in)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.state = ScopeStateIdle
		return nil, err
	}
	scope.SortEpics()
	m.scope = scope
	m.state = ScopeStateReady
	m.staged = make(map[string]EpicEdit)
	if m.cache != nil {
		m.cache.InvalidateScopes()
	}
	return scope, nil
}

// Load adopts an existing scope fetched through the cache, e.g. when the
// user reopens a saved draft.
func (m *ScopeManager) Load(ctx context.Context, id string) (*domain.Scope, error) {
	scope, err := m.cache.Scope(id).Await(ctx)
	if err != nil {
		return nil, err
	}
	scope.SortEpics()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scope = scope
	m.staged = make(map[string]EpicEdit)
	switch scope.Status {
	case domain.ScopeConverted:
		m.state = ScopeStateConverted
	case domain.ScopeArchived:
		m.state = ScopeStateArchived
	default:
		m.state = ScopeStateReady
	}
	return scope, nil
}

// EditField stages a local, unsaved edit to an epic's name or description.
// The canonical scope is not mutated until SaveEdits.
func (m *ScopeManager) EditField(epicID, field, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scope == nil {
		return ErrNoScope
	}
	if m.scope.Status.Terminal() {
		return ErrScopeTerminal
	}
	if m.scope.EpicByID(epicID) == nil {
		return ErrUnknownEpic
	}

	edit := m.staged[epicID]
	switch field {
	case "name":
		edit.Name = &value
	case "description":
		edit.Description = &value
	default:
		return ErrInvalidField
	}
	m.staged[epicID] = edit
	m.state = ScopeStateEditing
	return nil
}

// HasEdits reports whether any staged edits are pending.
func (m *ScopeManager) HasEdits() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.staged) > 0
}

// StagedEdits returns a copy of the staged edit map.
func (m *ScopeManager) StagedEdits() map[string]EpicEdit {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]EpicEdit, len(m.staged))
	for k, v := range m.staged {
		out[k] = v
	}
	return out
}

// mergedEpics returns the scope's epics with staged edits applied.
// Caller must hold m.mu.
func (m *ScopeManager) mergedEpics() []domain.Epic {
	epics := make([]domain.Epic, len(m.scope.Epics))
	copy(epics, m.scope.Epics)
	for i := range epics {
		if edit, ok := m.staged[epics[i].ID]; ok {
			if edit.Name != nil {
				epics[i].Name = *edit.Name
			}
			if edit.Description != nil {
				epics[i].Description = *edit.Description
			}
		}
	}
	return epics
}

// SaveEdits merges staged edits into the epics and persists them in one
// request. On success staged edits are cleared; on failure they are kept so
// the user can retry.
func (m *ScopeManager) SaveEdits(ctx context.Context) error {
	m.mu.Lock()
	if m.scope == nil {
		m.mu.Unlock()
		return ErrNoScope
	}
	if m.scope.Status.Terminal() {
		m.mu.Unlock()
		return ErrScopeTerminal
	}
	id := m.scope.ID
	epics := m.mergedEpics()
	m.mu.Unlock()

	scope, err := m.client.UpdateScope(ctx, id, api.ScopePatch{Epics: epics})
	if err != nil {
		m.logger.Warn("saving scope edits failed", "scope", id, "error", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	scope.SortEpics()
	m.scope = scope
	m.staged = make(map[string]EpicEdit)
	m.state = ScopeStateReady
	if m.cache != nil {
		m.cache.InvalidateScope(id)
	}
	return nil
}

// SaveDraft sets the scope status to draft explicitly. Idempotent.
func (m *ScopeManager) SaveDraft(ctx context.Context) error {
	m.mu.Lock()
	if m.scope == nil {
		m.mu.Unlock()
		return ErrNoScope
	}
	if m.scope.Status.Terminal() {
		m.mu.Unlock()
		return ErrScopeTerminal
	}
	id := m.scope.ID
	m.mu.Unlock()

	status := domain.ScopeDraft
	scope, err := m.client.UpdateScope(ctx, id, api.ScopePatch{Status: &status})
	if err != nil {
		// Draft saves fail silently from the user's point of view.
		m.logger.Warn("saving draft failed", "scope", id, "error", err)
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	scope.SortEpics()
	m.scope = scope
	m.state = ScopeStateSavedDraft
	if m.cache != nil {
		m.cache.InvalidateScopes()
	}
	return nil
}

// Convert creates a project from the scope and returns the new project id.
// On success the scope is terminal; on failure it remains unconverted and
// the caller may retry. Errors are surfaced to the user.
func (m *ScopeManager) Convert(ctx context.Context, startDate string) (string, error) {
	if startDate == "" {
		startDate = time.Now().UTC().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", startDate); err != nil {
		return "", ErrInvalidDate
	}

	m.mu.Lock()
	if m.scope == nil {
		m.mu.Unlock()
		return "", ErrNoScope
	}
	if m.scope.Status.Terminal() {
		m.mu.Unlock()
		return "", ErrScopeTerminal
	}
	id := m.scope.ID
	m.mu.Unlock()

	project, err := m.client.ConvertScope(ctx, id, api.ConvertScopeInput{StartDate: startDate})
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.scope.Status = domain.ScopeConverted
	m.state = ScopeStateConverted
	if m.cache != nil {
		m.cache.InvalidateScopes()
		m.cache.InvalidateProjects()
	}
	return project.ID, nil
}

// Archive deletes the scope remotely and marks it archived locally.
// Conversion and archival are mutually exclusive terminal transitions, so
// this is a no-op unless the scope is still a draft.
func (m *ScopeManager) Archive(ctx context.Context) error {
	m.mu.Lock()
	if m.scope == nil {
		m.mu.Unlock()
		return ErrNoScope
	}
	if m.scope.Status != domain.ScopeDraft {
		m.mu.Unlock()
		return nil
	}
	id := m.scope.ID
	m.mu.Unlock()

	if err := m.client.DeleteScope(ctx, id); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.scope.Status = domain.ScopeArchived
	m.state = ScopeStateArchived
	if m.cache != nil {
		m.cache.InvalidateScopes()
	}
	return nil
}
