package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/store"
)

type projectService struct {
	client api.Client
	cache  *store.Store
	logger *slog.Logger
}

// NewProjectService creates the project read/mutation service. Reads go
// through the entity cache; mutations invalidate the affected keys.
func NewProjectService(client api.Client, cache *store.Store, logger *slog.Logger) ProjectService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &projectService{client: client, cache: cache, logger: logger}
}

func (s *projectService) List(ctx context.Context) ([]domain.ProjectCard, error) {
	return s.cache.Projects().Await(ctx)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	p, err := s.cache.Project(id).Await(ctx)
	if err != nil {
		return nil, err
	}
	domain.SortMilestones(p.Milestones)
	return p, nil
}

// SetStatus changes the project status. In-place status edits fail silently
// from the user's point of view: on error the canonical entity is not
// returned and the failure is only logged.
func (s *projectService) SetStatus(ctx context.Context, id string, status domain.ProjectStatus) *domain.Project {
	if !domain.ValidProjectStatuses[status] {
		return nil
	}
	p, err := s.client.UpdateProject(ctx, id, api.ProjectPatch{Status: &status})
	if err != nil {
		s.logger.Warn("project status change failed", "project", id, "error", err)
		return nil
	}
	s.cache.InvalidateProject(id)
	s.cache.InvalidateProjects()
	return p
}

// Delete removes the project. Terminal and irreversible; requires explicit
// confirmation and surfaces errors.
func (s *projectService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	if err := s.client.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.cache.Drop(store.KeyProject(id))
	s.cache.InvalidateProjects()
	return nil
}

func (s *projectService) CreateMilestone(ctx context.Context, projectID string, in api.CreateMilestoneInput) (*domain.Milestone, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, ErrEmptyName
	}
	if in.DueDate == "" {
		return nil, ErrInvalidDate
	}
	m, err := s.client.CreateMilestone(ctx, projectID, in)
	if err != nil {
		s.logger.Warn("creating milestone failed", "project", projectID, "error", err)
		return nil, nil
	}
	s.cache.InvalidateProject(projectID)
	return m, nil
}

func (s *projectService) Updates(ctx context.Context, projectID string, page int) (*api.UpdatePage, error) {
	if page < 1 {
		page = 1
	}
	res, err := s.client.ListProjectUpdates(ctx, projectID, page)
	if err != nil {
		return nil, err
	}
	domain.SortUpdatesDesc(res.Updates)
	return res, nil
}

func (s *projectService) Notifications(ctx context.Context, projectID string) ([]domain.Notification, error) {
	return s.client.ListNotifications(ctx, projectID)
}
