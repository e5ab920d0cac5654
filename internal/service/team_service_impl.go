package service

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/store"
)

// avatarColors is the fixed palette new members draw from when none is given.
var avatarColors = []string{
	"#2563EB", "#7C3AED", "#DB2777", "#EA580C",
	"#16A34A", "#0891B2", "#4F46E5", "#CA8A04",
}

// RandomAvatarColor picks a palette color for a new team member.
func RandomAvatarColor() string {
	return avatarColors[rand.Intn(len(avatarColors))]
}

type teamService struct {
	client api.Client
	cache  *store.Store
	logger *slog.Logger
}

// NewTeamService creates the team roster service.
func NewTeamService(client api.Client, cache *store.Store, logger *slog.Logger) TeamService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &teamService{client: client, cache: cache, logger: logger}
}

func (s *teamService) List(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	return s.client.ListTeam(ctx, projectID)
}

// Add creates a member. Roster edits fail silently; nil means the request
// did not go through.
func (s *teamService) Add(ctx context.Context, projectID string, in api.TeamMemberInput) *domain.TeamMember {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Role) == "" {
		return nil
	}
	if in.AvatarColor == "" {
		in.AvatarColor = RandomAvatarColor()
	}
	member, err := s.client.AddTeamMember(ctx, projectID, in)
	if err != nil {
		s.logger.Warn("adding team member failed", "project", projectID, "error", err)
		return nil
	}
	s.cache.InvalidateProject(projectID)
	return member
}

// Rename updates a member's name and/or role. Empty values are untouched.
func (s *teamService) Rename(ctx context.Context, id, name, role string) *domain.TeamMember {
	patch := api.TeamMemberPatch{}
	if n := strings.TrimSpace(name); n != "" {
		patch.Name = &n
	}
	if r := strings.TrimSpace(role); r != "" {
		patch.Role = &r
	}
	if patch.Name == nil && patch.Role == nil {
		return nil
	}
	member, err := s.client.UpdateTeamMember(ctx, id, patch)
	if err != nil {
		s.logger.Warn("updating team member failed", "member", id, "error", err)
		return nil
	}
	return member
}

// Remove deletes a member. Requires explicit confirmation; errors surface.
func (s *teamService) Remove(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return ErrConfirmationRequired
	}
	return s.client.DeleteTeamMember(ctx, id)
}
