package domain

import "sort"

// Risk is one identified delivery risk in a generated breakdown.
type Risk struct {
	Description string       `json:"description"`
	Severity    RiskSeverity `json:"severity"`
}

type UserStory struct {
	ID          string `json:"id"`
	EpicID      string `json:"epic_id,omitempty"`
	MilestoneID string `json:"milestone_id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	IsCompleted bool   `json:"is_completed"`
	OrderIndex  int    `json:"order_index"`
}

type Epic struct {
	ID          string      `json:"id"`
	ScopeID     string      `json:"scope_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	EffortDays  int         `json:"effort_days"`
	OrderIndex  int         `json:"order_index"`
	UserStories []UserStory `json:"user_stories"`
}

// Scope is a generated product breakdown: epics, stories, risks, suggested
// stack and a rough timeline, produced from a raw idea.
type Scope struct {
	ID               string           `json:"id"`
	ProductName      string           `json:"product_name"`
	IdeaText         string           `json:"idea_text"`
	TargetAudience   string           `json:"target_audience,omitempty"`
	BudgetRange      BudgetRange      `json:"budget_range,omitempty"`
	TimelinePressure TimelinePressure `json:"timeline_pressure,omitempty"`
	SuggestedStack   []string         `json:"suggested_stack"`
	TimelineWeeks    int              `json:"timeline_weeks"`
	Risks            []Risk           `json:"risks"`
	Status           ScopeStatus      `json:"status"`
	Epics            []Epic           `json:"epics"`
	CreatedAt        string           `json:"created_at"`
	UpdatedAt        string           `json:"updated_at"`
}

// SortEpics orders epics and their stories by order_index ascending.
func (s *Scope) SortEpics() {
	sort.SliceStable(s.Epics, func(i, j int) bool {
		return s.Epics[i].OrderIndex < s.Epics[j].OrderIndex
	})
	for i := range s.Epics {
		stories := s.Epics[i].UserStories
		sort.SliceStable(stories, func(a, b int) bool {
			return stories[a].OrderIndex < stories[b].OrderIndex
		})
	}
}

// EpicByID returns a pointer into the scope's epic slice, or nil.
func (s *Scope) EpicByID(id string) *Epic {
	for i := range s.Epics {
		if s.Epics[i].ID == id {
			return &s.Epics[i]
		}
	}
	return nil
}

// TotalEffortDays sums the effort estimate across all epics.
func (s *Scope) TotalEffortDays() int {
	total := 0
	for _, e := range s.Epics {
		total += e.EffortDays
	}
	return total
}

// ScopeListItem is the trimmed projection returned by the scope list endpoint.
type ScopeListItem struct {
	ID          string      `json:"id"`
	ProductName string      `json:"product_name"`
	IdeaText    string      `json:"idea_text"`
	Status      ScopeStatus `json:"status"`
	CreatedAt   string      `json:"created_at"`
}
