package testutil

import (
	"fmt"
	"time"

	"github.com/avelise/scopeflow/internal/domain"
	"github.com/google/uuid"
)

// BuildScope returns a draft scope with two epics and a handful of stories,
// the shape the generation endpoint produces.
func BuildScope(productName, ideaText string) *domain.Scope {
	id := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)
	scope := &domain.Scope{
		ID:             id,
		ProductName:    productName,
		IdeaText:       ideaText,
		SuggestedStack: []string{"Go", "PostgreSQL", "React"},
		TimelineWeeks:  8,
		Risks: []domain.Risk{
			{Description: "Unclear target market", Severity: domain.SeverityMedium},
			{Description: "Third-party API dependency", Severity: domain.SeverityHigh},
		},
		Status:    domain.ScopeDraft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, name := range []string{"Foundation", "Core Features"} {
		epic := domain.Epic{
			ID:          uuid.New().String(),
			ScopeID:     id,
			Name:        name,
			Description: name + " work",
			EffortDays:  5 * (i + 1),
			OrderIndex:  i,
		}
		for j := 0; j < 2; j++ {
			epic.UserStories = append(epic.UserStories, domain.UserStory{
				ID:         uuid.New().String(),
				EpicID:     epic.ID,
				Title:      fmt.Sprintf("%s story %d", name, j+1),
				OrderIndex: j,
			})
		}
		scope.Epics = append(scope.Epics, epic)
	}
	return scope
}

// BuildProject returns an active project with n milestones in order.
func BuildProject(name string, milestoneCount int) *domain.Project {
	id := uuid.New().String()
	now := time.Now().UTC().Format(time.RFC3339)
	p := &domain.Project{
		ID:        id,
		Name:      name,
		Status:    domain.ProjectActive,
		StartDate: time.Now().UTC().Format("2006-01-02"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i := 0; i < milestoneCount; i++ {
		p.Milestones = append(p.Milestones, *BuildMilestone(id, fmt.Sprintf("Milestone %c", 'A'+i), i))
	}
	return p
}

// BuildMilestone returns a not-started milestone at the given order index.
func BuildMilestone(projectID, name string, orderIndex int) *domain.Milestone {
	now := time.Now().UTC().Format(time.RFC3339)
	return &domain.Milestone{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Name:       name,
		Status:     domain.MilestoneNotStarted,
		OrderIndex: orderIndex,
		StartDate:  time.Now().UTC().Format("2006-01-02"),
		DueDate:    time.Now().UTC().AddDate(0, 0, 14).Format("2006-01-02"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// BuildMember returns a team member for the given project.
func BuildMember(projectID, name, role string) *domain.TeamMember {
	return &domain.TeamMember{
		ID:          uuid.New().String(),
		ProjectID:   projectID,
		Name:        name,
		Role:        role,
		AvatarColor: "#2563EB",
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
