package api

import "github.com/avelise/scopeflow/internal/domain"

// GenerateScopeInput is the body of POST /scopes/generate.
type GenerateScopeInput struct {
	ProductName      string                  `json:"product_name"`
	IdeaText         string                  `json:"idea_text"`
	TargetAudience   string                  `json:"target_audience,omitempty"`
	BudgetRange      domain.BudgetRange      `json:"budget_range,omitempty"`
	TimelinePressure domain.TimelinePressure `json:"timeline_pressure,omitempty"`
}

// ScopePatch is a partial scope for PATCH /scopes/{id}. Nil fields are
// omitted from the wire and left untouched by the server.
type ScopePatch struct {
	Status *domain.ScopeStatus `json:"status,omitempty"`
	Epics  []domain.Epic       `json:"epics,omitempty"`
}

type ConvertScopeInput struct {
	StartDate string `json:"start_date"`
}

type ProjectPatch struct {
	Status *domain.ProjectStatus `json:"status,omitempty"`
}

// MilestonePatch is a partial milestone for PATCH /milestones/{id}.
type MilestonePatch struct {
	Name            *string                 `json:"name,omitempty"`
	Description     *string                 `json:"description,omitempty"`
	Status          *domain.MilestoneStatus `json:"status,omitempty"`
	ProgressPercent *int                    `json:"progress_percent,omitempty"`
	AssignedTo      *string                 `json:"assigned_to,omitempty"`
	DueDate         *string                 `json:"due_date,omitempty"`
}

type CreateMilestoneInput struct {
	Name        string `json:"name"`
	DueDate     string `json:"due_date"`
	Description string `json:"description,omitempty"`
}

/// OrderEntry is one element of the reorder payload: the full id to
// order_index mapping is always sent for every affected element.
type OrderEntry struct {
	ID         string `json:"id"`
	OrderIndex int    `json:"order_index"`
}

type LogUpdateInput struct {
	UpdateType domain.UpdateType `json:"update_type"`
	Content    string            `json:"content"`
	LoggedAt   string            `json:"logged_at,omitempty"`
}

// UpdatePage is one page of a project's activity feed.
type UpdatePage struct {
	Updates []domain.Update `json:"updates"`
	Total   int             `json:"total"`
}

type TeamMemberInput struct {
	Name        string `json:"name"`
	Role        string `json:"role"`
	AvatarColor string `json:"avatar_color"`
}

type TeamMemberPatch struct {
	Name        *string `json:"name,omitempty"`
	Role        *string `json:"role,omitempty"`
	AvatarColor *string `json:"avatar_color,omitempty"`
}

type GenerateSummaryInput struct {
	Tone domain.SummaryTone `json:"tone"`
}

type CreateUserStoryInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type UserStoryPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsCompleted *bool   `json:"is_completed,omitempty"`
}
