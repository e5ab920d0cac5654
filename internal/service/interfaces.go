package service

import (
	"context"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/repository"
)

type ProjectService interface {
	List(ctx context.Context) ([]domain.ProjectCard, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	SetStatus(ctx context.Context, id string, status domain.ProjectStatus) *domain.Project
	Delete(ctx context.Context, id string, confirmed bool) error
	CreateMilestone(ctx context.Context, projectID string, in api.CreateMilestoneInput) (*domain.Milestone, error)
	Updates(ctx context.Context, projectID string, page int) (*api.UpdatePage, error)
	Notifications(ctx context.Context, projectID string) ([]domain.Notification, error)
}

type TeamService interface {
	List(ctx context.Context, projectID string) ([]domain.TeamMember, error)
	Add(ctx context.Context, projectID string, in api.TeamMemberInput) *domain.TeamMember
	Rename(ctx context.Context, id, name, role string) *domain.TeamMember
	Remove(ctx context.Context, id string, confirmed bool) error
}

type SummaryService interface {
	Generate(ctx context.Context, projectID string, tone domain.SummaryTone) (*domain.Summary, error)
	List(ctx context.Context, projectID string) ([]domain.Summary, error)
}

// SearchResultSet carries one search response plus whether it is still the
// latest issued query (stale responses are dropped, not displayed).
type SearchResultSet struct {
	Results []domain.SearchResult
	Latest  bool
}

type SearchService interface {
	Search(ctx context.Context, query string) (*SearchResultSet, error)
	Recent(ctx context.Context, limit int) ([]*repository.SearchEntry, error)
}
