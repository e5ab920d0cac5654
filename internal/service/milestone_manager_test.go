package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/store"
	"github.com/avelise/scopeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMilestoneManager(t *testing.T) (*MilestoneManager, *testutil.FakeServer, *domain.Project) {
	t.Helper()
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	client := api.New(api.Config{BaseURL: srv.URL()})
	cache := store.New(client, nil, nil)

	p := testutil.BuildProject("Tracked", 3)
	srv.SeedProject(p)

	mgr := NewMilestoneManager(client, cache, nil)
	_, err := mgr.Load(context.Background(), p.Milestones[0].ID)
	require.NoError(t, err)
	return mgr, srv, p
}

func TestMilestoneManager_SetProgressOptimisticBeforeResolve(t *testing.T) {
	mgr, srv, _ := setupMilestoneManager(t)

	gate := srv.Gate()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, mgr.SetProgress(context.Background(), 75))
	}()

	// The optimistic value is visible while the remote call is in flight.
	require.Eventually(t, func() bool {
		return mgr.Milestone().ProgressPercent == 75
	}, 2*time.Second, 5*time.Millisecond)

	close(gate)
	wg.Wait()
	assert.Equal(t, 75, mgr.Milestone().ProgressPercent)
}

func TestMilestoneManager_FailureKeepsOptimisticValue(t *testing.T) {
	mgr, srv, _ := setupMilestoneManager(t)

	srv.FailAll(500, "storage offline")
	// The mutation failure is swallowed: no error, no rollback.
	require.NoError(t, mgr.SetProgress(context.Background(), 75))
	assert.Equal(t, 75, mgr.Milestone().ProgressPercent)

	require.NoError(t, mgr.SetStatus(context.Background(), domain.MilestoneBlocked))
	assert.Equal(t, domain.MilestoneBlocked, mgr.Milestone().Status)
}

func TestMilestoneManager_SetStatusReplacesWithCanonical(t *testing.T) {
	mgr, srv, p := setupMilestoneManager(t)

	var refreshed []string
	mgr.SetRefreshHook(func(projectID string) { refreshed = append(refreshed, projectID) })

	require.NoError(t, mgr.SetStatus(context.Background(), domain.MilestoneInProgress))

	assert.Equal(t, domain.MilestoneInProgress, mgr.Milestone().Status)
	assert.Equal(t, domain.MilestoneInProgress, srv.Milestone(mgr.Milestone().ID).Status)
	assert.Equal(t, []string{p.ID}, refreshed, "status change refreshes the parent project")
}

func TestMilestoneManager_ValidationNeverReachesNetwork(t *testing.T) {
	mgr, srv, _ := setupMilestoneManager(t)
	ctx := context.Background()
	id := mgr.Milestone().ID

	assert.ErrorIs(t, mgr.SetStatus(ctx, "paused"), ErrInvalidStatus)
	assert.ErrorIs(t, mgr.SetProgress(ctx, 101), ErrInvalidProgress)
	assert.ErrorIs(t, mgr.SetProgress(ctx, -1), ErrInvalidProgress)
	assert.ErrorIs(t, mgr.Rename(ctx, "   "), ErrEmptyName)
	assert.Equal(t, 0, srv.Calls("PATCH", "/milestones/"+id))
}

func TestMilestoneManager_Rename(t *testing.T) {
	mgr, srv, _ := setupMilestoneManager(t)

	require.NoError(t, mgr.Rename(context.Background(), "  Launch Prep  "))
	assert.Equal(t, "Launch Prep", mgr.Milestone().Name)
	assert.Equal(t, "Launch Prep", srv.Milestone(mgr.Milestone().ID).Name)
}

func TestMilestoneManager_SetAssignee(t *testing.T) {
	mgr, srv, p := setupMilestoneManager(t)
	member := testutil.BuildMember(p.ID, "Dana", "Engineer")
	srv.SeedProject(&domain.Project{ID: p.ID, TeamMembers: []domain.TeamMember{*member}})

	require.NoError(t, mgr.SetAssignee(context.Background(), member.ID))
	assert.Equal(t, member.ID, mgr.Milestone().AssignedTo)

	require.NoError(t, mgr.SetAssignee(context.Background(), ""))
	assert.Empty(t, mgr.Milestone().AssignedTo)
	assert.Nil(t, mgr.Milestone().AssignedMember)
}

func TestMilestoneManager_LogUpdatePrependsToBothLists(t *testing.T) {
	mgr, _, _ := setupMilestoneManager(t)
	ctx := context.Background()
	require.NoError(t, mgr.LoadFeed(ctx))

	first, err := mgr.LogUpdate(ctx, domain.UpdateProgress, "halfway there")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := mgr.LogUpdate(ctx, domain.UpdateNote, "design review booked")
	require.NoError(t, err)
	require.NotNil(t, second)

	m := mgr.Milestone()
	require.NotEmpty(t, m.Updates)
	assert.Equal(t, second.ID, m.Updates[0].ID, "newest update heads the milestone list")

	feed := mgr.Feed()
	require.NotEmpty(t, feed)
	assert.Equal(t, second.ID, feed[0].ID, "newest update heads the project feed")

	// Both lists stay logged_at descending.
	for i := 1; i < len(m.Updates); i++ {
		assert.GreaterOrEqual(t, m.Updates[i-1].LoggedAt, m.Updates[i].LoggedAt)
	}
	for i := 1; i < len(feed); i++ {
		assert.GreaterOrEqual(t, feed[i-1].LoggedAt, feed[i].LoggedAt)
	}
}

func TestMilestoneManager_LogUpdateValidation(t *testing.T) {
	mgr, _, _ := setupMilestoneManager(t)
	ctx := context.Background()

	_, err := mgr.LogUpdate(ctx, "shoutout", "hi")
	assert.ErrorIs(t, err, ErrInvalidType)
	_, err = mgr.LogUpdate(ctx, domain.UpdateNote, "  ")
	assert.ErrorIs(t, err, ErrEmptyContent)
}

func TestMilestoneManager_LogUpdateFailureSwallowed(t *testing.T) {
	mgr, srv, _ := setupMilestoneManager(t)

	srv.FailAll(500, "feed unavailable")
	upd, err := mgr.LogUpdate(context.Background(), domain.UpdateBlocker, "stuck on auth")
	assert.NoError(t, err)
	assert.Nil(t, upd)
	assert.Empty(t, mgr.Milestone().Updates)
}

func TestMilestoneManager_UserStories(t *testing.T) {
	mgr, srv, _ := setupMilestoneManager(t)
	ctx := context.Background()

	story, err := mgr.AddUserStory(ctx, "As a user, I can sign in", "")
	require.NoError(t, err)
	require.NotNil(t, story)
	require.Len(t, mgr.Milestone().UserStories, 1)

	// Toggle is optimistic and sticks even when the server rejects it.
	srv.FailAll(500, "nope")
	require.NoError(t, mgr.ToggleUserStory(ctx, story.ID))
	assert.True(t, mgr.Milestone().StoryByID(story.ID).IsCompleted)
	srv.Heal()

	require.NoError(t, mgr.ToggleUserStory(ctx, story.ID))
	assert.False(t, mgr.Milestone().StoryByID(story.ID).IsCompleted)

	// Deletion needs explicit confirmation, then drops the story locally.
	assert.ErrorIs(t, mgr.DeleteUserStory(ctx, story.ID, false), ErrConfirmationRequired)
	require.NoError(t, mgr.DeleteUserStory(ctx, story.ID, true))
	assert.Empty(t, mgr.Milestone().UserStories)
}

func TestMilestoneManager_DeleteRequiresConfirmation(t *testing.T) {
	mgr, srv, p := setupMilestoneManager(t)
	ctx := context.Background()
	id := mgr.Milestone().ID

	assert.ErrorIs(t, mgr.Delete(ctx, false), ErrConfirmationRequired)
	assert.NotNil(t, srv.Milestone(id))

	require.NoError(t, mgr.LoadFeed(ctx))
	require.NoError(t, mgr.Delete(ctx, true))
	assert.Nil(t, mgr.Milestone())
	assert.Nil(t, srv.Milestone(id))

	// A deletion error is surfaced, not swallowed.
	mgr2 := NewMilestoneManager(api.New(api.Config{BaseURL: srv.URL()}), nil, nil)
	_, err := mgr2.Load(ctx, p.Milestones[1].ID)
	require.NoError(t, err)
	srv.FailAll(500, "cannot delete")
	err = mgr2.Delete(ctx, true)
	require.Error(t, err)
	assert.Equal(t, "cannot delete", err.Error())
}
