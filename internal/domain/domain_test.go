package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrependUpdate_KeepsDescendingOrder(t *testing.T) {
	m := &Milestone{Updates: []Update{
		{ID: "b", LoggedAt: "2026-03-10T12:00:00Z"},
		{ID: "a", LoggedAt: "2026-03-09T12:00:00Z"},
	}}

	m.PrependUpdate(Update{ID: "c", LoggedAt: "2026-03-11T12:00:00Z"})
	require.Len(t, m.Updates, 3)
	assert.Equal(t, []string{"c", "b", "a"}, updateIDs(m.Updates))

	// An out-of-order arrival still lands in its chronological slot.
	m.PrependUpdate(Update{ID: "mid", LoggedAt: "2026-03-09T18:00:00Z"})
	assert.Equal(t, []string{"c", "b", "mid", "a"}, updateIDs(m.Updates))
}

func TestSortUpdatesDesc_StableForEqualTimestamps(t *testing.T) {
	updates := []Update{
		{ID: "first", LoggedAt: "2026-03-10T12:00:00Z"},
		{ID: "second", LoggedAt: "2026-03-10T12:00:00Z"},
	}
	SortUpdatesDesc(updates)
	assert.Equal(t, []string{"first", "second"}, updateIDs(updates))
}

func updateIDs(us []Update) []string {
	ids := make([]string, len(us))
	for i, u := range us {
		ids[i] = u.ID
	}
	return ids
}

func TestScope_SortEpics(t *testing.T) {
	s := &Scope{Epics: []Epic{
		{ID: "e2", OrderIndex: 1, UserStories: []UserStory{
			{ID: "s2", OrderIndex: 1},
			{ID: "s1", OrderIndex: 0},
		}},
		{ID: "e1", OrderIndex: 0},
	}}
	s.SortEpics()

	assert.Equal(t, "e1", s.Epics[0].ID)
	assert.Equal(t, "e2", s.Epics[1].ID)
	assert.Equal(t, "s1", s.Epics[1].UserStories[0].ID)
	assert.Equal(t, "s2", s.Epics[1].UserStories[1].ID)
}

func TestScope_EpicByIDReturnsMutablePointer(t *testing.T) {
	s := &Scope{Epics: []Epic{{ID: "e1", Name: "Auth"}}}

	e := s.EpicByID("e1")
	require.NotNil(t, e)
	e.Name = "Identity"
	assert.Equal(t, "Identity", s.Epics[0].Name)

	assert.Nil(t, s.EpicByID("missing"))
}

func TestScope_TotalEffortDays(t *testing.T) {
	s := &Scope{Epics: []Epic{{EffortDays: 5}, {EffortDays: 8}, {EffortDays: 3}}}
	assert.Equal(t, 16, s.TotalEffortDays())
	assert.Zero(t, (&Scope{}).TotalEffortDays())
}

func TestProject_RemoveMilestone(t *testing.T) {
	p := &Project{Milestones: []Milestone{{ID: "m1"}, {ID: "m2"}, {ID: "m3"}}}

	p.RemoveMilestone("m2")
	require.Len(t, p.Milestones, 2)
	assert.Equal(t, "m1", p.Milestones[0].ID)
	assert.Equal(t, "m3", p.Milestones[1].ID)

	p.RemoveMilestone("absent")
	assert.Len(t, p.Milestones, 2)
}

func TestMilestone_RemoveStory(t *testing.T) {
	m := &Milestone{UserStories: []UserStory{{ID: "s1"}, {ID: "s2"}}}
	m.RemoveStory("s1")
	require.Len(t, m.UserStories, 1)
	assert.Equal(t, "s2", m.UserStories[0].ID)
}

func TestScopeStatus_Terminal(t *testing.T) {
	assert.False(t, ScopeDraft.Terminal())
	assert.True(t, ScopeConverted.Terminal())
	assert.True(t, ScopeArchived.Terminal())
}

func TestSortMilestones(t *testing.T) {
	ms := []Milestone{{ID: "b", OrderIndex: 1}, {ID: "a", OrderIndex: 0}, {ID: "c", OrderIndex: 2}}
	SortMilestones(ms)
	assert.Equal(t, "a", ms[0].ID)
	assert.Equal(t, "b", ms[1].ID)
	assert.Equal(t, "c", ms[2].ID)
}
