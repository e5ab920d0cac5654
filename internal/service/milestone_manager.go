package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/store"
)

// MilestoneManager drives per-milestone mutations. Every operation follows
// the same shape: validate locally, apply the optimistic in-memory change,
// issue the remote request, then replace local state wholesale with the
// server's canonical entity. Remote failures on non-delete mutations are
// logged and swallowed; the optimistic value stays in place uncorrected.
// That no-rollback policy is a documented limitation of the sync layer;
// revisit it together with revision tokens if the server ever grows
// conflict detection.
type MilestoneManager struct {
	client api.Client
	cache  *store.Store
	logger *slog.Logger

	// onRefresh is invoked with the parent project id after any successful
	// mutation so dependent views can reload milestone lists and feeds.
	onRefresh func(projectID string)

	mu   sync.Mutex
	m    *domain.Milestone
	feed []domain.Update
}

// NewMilestoneManager creates a MilestoneManager. logger may be nil. By
// default successful mutations invalidate the parent project in the cache.
func NewMilestoneManager(client api.Client, cache *store.Store, logger *slog.Logger) *MilestoneManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	mgr := &MilestoneManager{client: client, cache: cache, logger: logger}
	mgr.onRefresh = func(projectID string) {
		if cache != nil && projectID != "" {
			cache.InvalidateProject(projectID)
		}
	}
	return mgr
}

// SetRefreshHook replaces the dependent-view refresh callback.
func (g *MilestoneManager) SetRefreshHook(fn func(projectID string)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.onRefresh = fn
}

// Load fetches the milestone and adopts it as local state.
func (g *MilestoneManager) Load(ctx context.Context, id string) (*domain.Milestone, error) {
	m, err := g.client.GetMilestone(ctx, id)
	if err != nil {
		return nil, err
	}
	domain.SortUpdatesDesc(m.Updates)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.m = m
	return m, nil
}

// Milestone returns the current local milestone state, or nil.
func (g *MilestoneManager) Milestone() *domain.Milestone {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.m
}

// LoadFeed fetches the first page of the parent project's activity feed and
// holds it alongside the milestone.
func (g *MilestoneManager) LoadFeed(ctx context.Context) error {
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	projectID := g.m.ProjectID
	g.mu.Unlock()

	page, err := g.client.ListProjectUpdates(ctx, projectID, 1)
	if err != nil {
		return err
	}
	domain.SortUpdatesDesc(page.Updates)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.feed = page.Updates
	return nil
}

// Feed returns the held project activity feed, logged_at descending.
func (g *MilestoneManager) Feed() []domain.Update {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.feed
}

// SetStatus changes the milestone status optimistically.
func (g *MilestoneManager) SetStatus(ctx context.Context, status domain.MilestoneStatus) error {
	if !domain.ValidMilestoneStatuses[status] {
		return ErrInvalidStatus
	}
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	id := g.m.ID
	g.m.Status = status
	g.mu.Unlock()

	g.mutate(ctx, "status", func(ctx context.Context) (*domain.Milestone, error) {
		return g.client.UpdateMilestone(ctx, id, api.MilestonePatch{Status: &status})
	})
	return nil
}

// SetProgress changes progress_percent optimistically. The UI quantizes to
// quarters but the domain accepts any integer in [0,100].
func (g *MilestoneManager) SetProgress(ctx context.Context, percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidProgress
	}
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	id := g.m.ID
	g.m.ProgressPercent = percent
	g.mu.Unlock()

	g.mutate(ctx, "progress", func(ctx context.Context) (*domain.Milestone, error) {
		return g.client.UpdateMilestone(ctx, id, api.MilestonePatch{ProgressPercent: &percent})
	})
	return nil
}

// SetAssignee assigns the milestone to a team member. Empty id unassigns.
func (g *MilestoneManager) SetAssignee(ctx context.Context, memberID string) error {
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	id := g.m.ID
	g.m.AssignedTo = memberID
	if memberID == "" {
		g.m.AssignedMember = nil
	}
	g.mu.Unlock()

	g.mutate(ctx, "assignee", func(ctx context.Context) (*domain.Milestone, error) {
		return g.client.UpdateMilestone(ctx, id, api.MilestonePatch{AssignedTo: &memberID})
	})
	return nil
}

// Rename changes the milestone name optimistically.
func (g *MilestoneManager) Rename(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	id := g.m.ID
	g.m.Name = name
	g.mu.Unlock()

	g.mutate(ctx, "rename", func(ctx context.Context) (*domain.Milestone, error) {
		return g.client.UpdateMilestone(ctx, id, api.MilestonePatch{Name: &name})
	})
	return nil
}

// mutate runs one remote milestone mutation synchronously. On success local
// state is replaced with the canonical entity (a full replacement, not a
// merge) and dependent views are told to refresh. On failure the optimistic
// value is left in place and the error is only logged.
func (g *MilestoneManager) mutate(ctx context.Context, op string, fn func(ctx context.Context) (*domain.Milestone, error)) {
	canonical, err := fn(ctx)
	if err != nil {
		g.logger.Warn("milestone mutation failed", "op", op, "error", err)
		return
	}
	domain.SortUpdatesDesc(canonical.Updates)

	g.mu.Lock()
	g.m = canonical
	refresh := g.onRefresh
	projectID := canonical.ProjectID
	g.mu.Unlock()

	if refresh != nil {
		refresh(projectID)
	}
}

// LogUpdate creates an immutable update entry and prepends it to both the
// milestone's update list and the held project activity feed, keeping both
// logged_at descending. Returns nil when the remote call fails (swallowed).
func (g *MilestoneManager) LogUpdate(ctx context.Context, typ domain.UpdateType, content string) (*domain.Update, error) {
	if !domain.ValidUpdateTypes[typ] {
		return nil, ErrInvalidType
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return nil, ErrNoMilestone
	}
	id := g.m.ID
	g.mu.Unlock()

	upd, err := g.client.LogUpdate(ctx, id, api.LogUpdateInput{UpdateType: typ, Content: content})
	if err != nil {
		g.logger.Warn("logging update failed", "milestone", id, "error", err)
		return nil, nil
	}

	g.mu.Lock()
	g.m.PrependUpdate(*upd)
	g.feed = append([]domain.Update{*upd}, g.feed...)
	domain.SortUpdatesDesc(g.feed)
	refresh := g.onRefresh
	projectID := g.m.ProjectID
	g.mu.Unlock()

	if refresh != nil {
		refresh(projectID)
	}
	return upd, nil
}

// AddUserStory appends a new story to the milestone.
func (g *MilestoneManager) AddUserStory(ctx context.Context, title, description string) (*domain.UserStory, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyName
	}
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return nil, ErrNoMilestone
	}
	id := g.m.ID
	g.mu.Unlock()

	story, err := g.client.CreateUserStory(ctx, id, api.CreateUserStoryInput{Title: title, Description: description})
	if err != nil {
		g.logger.Warn("adding user story failed", "milestone", id, "error", err)
		return nil, nil
	}

	g.mu.Lock()
	g.m.UserStories = append(g.m.UserStories, *story)
	g.mu.Unlock()
	return story, nil
}

// ToggleUserStory flips a story's completion optimistically.
func (g *MilestoneManager) ToggleUserStory(ctx context.Context, storyID string) error {
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	story := g.m.StoryByID(storyID)
	if story == nil {
		g.mu.Unlock()
		return ErrUnknownStory
	}
	story.IsCompleted = !story.IsCompleted
	completed := story.IsCompleted
	g.mu.Unlock()

	err := g.client.UpdateUserStory(ctx, storyID, api.UserStoryPatch{IsCompleted: &completed})
	if err != nil {
		g.logger.Warn("toggling user story failed", "story", storyID, "error", err)
	}
	return nil
}

// DeleteUserStory removes a story. The caller must have collected explicit
// user confirmation; deletion errors are surfaced, not swallowed.
func (g *MilestoneManager) DeleteUserStory(ctx context.Context, storyID string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	if g.m.StoryByID(storyID) == nil {
		g.mu.Unlock()
		return ErrUnknownStory
	}
	g.mu.Unlock()

	if err := g.client.DeleteUserStory(ctx, storyID); err != nil {
		return err
	}

	g.mu.Lock()
	g.m.RemoveStory(storyID)
	g.mu.Unlock()
	return nil
}

// Delete removes the milestone itself. Terminal and irreversible; requires
// explicit confirmation, and on success the entity is dropped from every
// local collection that references it.
func (g *MilestoneManager) Delete(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	g.mu.Lock()
	if g.m == nil {
		g.mu.Unlock()
		return ErrNoMilestone
	}
	id := g.m.ID
	projectID := g.m.ProjectID
	g.mu.Unlock()

	if err := g.client.DeleteMilestone(ctx, id); err != nil {
		return err
	}

	g.mu.Lock()
	g.m = nil
	kept := g.feed[:0]
	for _, u := range g.feed {
		if u.MilestoneID != id {
			kept = append(kept, u)
		}
	}
	g.feed = kept
	refresh := g.onRefresh
	g.mu.Unlock()

	if refresh != nil {
		refresh(projectID)
	}
	return nil
}
