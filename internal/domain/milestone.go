package domain

import "sort"

type Milestone struct {
	ID              string          `json:"id"`
	ProjectID       string          `json:"project_id"`
	EpicID          string          `json:"epic_id,omitempty"`
	AssignedTo      string          `json:"assigned_to,omitempty"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	Status          MilestoneStatus `json:"status"`
	ProgressPercent int             `json:"progress_percent"`
	StartDate       string          `json:"start_date"`
	DueDate         string          `json:"due_date"`
	OrderIndex      int             `json:"order_index"`
	CreatedAt       string          `json:"created_at"`
	UpdatedAt       string          `json:"updated_at"`
	UserStories     []UserStory     `json:"user_stories,omitempty"`
	Updates         []Update        `json:"updates,omitempty"`
	AssignedMember  *TeamMember     `json:"assigned_member,omitempty"`
}

// PrependUpdate inserts u at the head of the update list and restores the
// logged_at-descending invariant. Timestamps are ISO-8601, so lexicographic
// comparison matches chronological order.
func (m *Milestone) PrependUpdate(u Update) {
	m.Updates = append([]Update{u}, m.Updates...)
	SortUpdatesDesc(m.Updates)
}

// StoryByID returns a pointer into the milestone's story slice, or nil.
func (m *Milestone) StoryByID(id string) *UserStory {
	for i := range m.UserStories {
		if m.UserStories[i].ID == id {
			return &m.UserStories[i]
		}
	}
	return nil
}

// RemoveStory deletes the story with the given id from the local collection.
func (m *Milestone) RemoveStory(id string) {
	for i := range m.UserStories {
		if m.UserStories[i].ID == id {
			m.UserStories = append(m.UserStories[:i], m.UserStories[i+1:]...)
			return
		}
	}
}

// Update is an immutable timestamped log entry against a milestone.
type Update struct {
	ID            string     `json:"id"`
	MilestoneID   string     `json:"milestone_id"`
	UpdateType    UpdateType `json:"update_type"`
	Content       string     `json:"content"`
	LoggedAt      string     `json:"logged_at"`
	CreatedAt     string     `json:"created_at"`
	MilestoneName string     `json:"milestone_name,omitempty"`
}

// SortUpdatesDesc sorts updates reverse-chronologically by logged_at.
func SortUpdatesDesc(updates []Update) {
	sort.SliceStable(updates, func(i, j int) bool {
		return updates[i].LoggedAt > updates[j].LoggedAt
	})
}

// SortMilestones orders milestones by order_index ascending.
func SortMilestones(ms []Milestone) {
	sort.SliceStable(ms, func(i, j int) bool {
		return ms[i].OrderIndex < ms[j].OrderIndex
	})
}
