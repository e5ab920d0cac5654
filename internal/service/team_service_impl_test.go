package service

import (
	"context"
	"testing"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/store"
	"github.com/avelise/scopeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTeamService(t *testing.T) (TeamService, *testutil.FakeServer, *domain.Project) {
	t.Helper()
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	client := api.New(api.Config{BaseURL: srv.URL()})
	p := testutil.BuildProject("Atlas", 1)
	srv.SeedProject(p)
	return NewTeamService(client, store.New(client, nil, nil), nil), srv, p
}

func TestTeamService_AddAssignsAvatarColor(t *testing.T) {
	svc, _, p := setupTeamService(t)
	ctx := context.Background()

	m := svc.Add(ctx, p.ID, api.TeamMemberInput{Name: "Dana", Role: "Engineer"})
	require.NotNil(t, m)
	assert.Equal(t, "Dana", m.Name)
	assert.Contains(t, avatarColors, m.AvatarColor)

	// An explicit color is kept.
	m = svc.Add(ctx, p.ID, api.TeamMemberInput{Name: "Kim", Role: "Designer", AvatarColor: "#000000"})
	require.NotNil(t, m)
	assert.Equal(t, "#000000", m.AvatarColor)

	members, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestTeamService_AddValidatesLocally(t *testing.T) {
	svc, srv, p := setupTeamService(t)
	ctx := context.Background()

	assert.Nil(t, svc.Add(ctx, p.ID, api.TeamMemberInput{Name: " ", Role: "Engineer"}))
	assert.Nil(t, svc.Add(ctx, p.ID, api.TeamMemberInput{Name: "Dana", Role: ""}))
	assert.Equal(t, 0, srv.Calls("POST", "/projects/"+p.ID+"/team"))

	srv.FailAll(500, "nope")
	assert.Nil(t, svc.Add(ctx, p.ID, api.TeamMemberInput{Name: "Dana", Role: "Engineer"}))
}

func TestTeamService_Rename(t *testing.T) {
	svc, srv, p := setupTeamService(t)
	ctx := context.Background()
	member := testutil.BuildMember(p.ID, "Dana", "Engineer")
	p.TeamMembers = []domain.TeamMember{*member}
	srv.SeedProject(p)

	got := svc.Rename(ctx, member.ID, "Dana Q", "")
	require.NotNil(t, got)
	assert.Equal(t, "Dana Q", got.Name)
	assert.Equal(t, "Engineer", got.Role, "blank role left untouched")

	// Nothing to change means no request at all.
	assert.Nil(t, svc.Rename(ctx, member.ID, " ", ""))
	assert.Equal(t, 1, srv.Calls("PATCH", "/team-members/"+member.ID))
}

func TestTeamService_RemoveRequiresConfirmation(t *testing.T) {
	svc, srv, p := setupTeamService(t)
	ctx := context.Background()
	member := testutil.BuildMember(p.ID, "Dana", "Engineer")
	p.TeamMembers = []domain.TeamMember{*member}
	srv.SeedProject(p)

	assert.ErrorIs(t, svc.Remove(ctx, member.ID, false), ErrConfirmationRequired)
	require.NoError(t, svc.Remove(ctx, member.ID, true))

	members, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestSummaryService_Generate(t *testing.T) {
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	client := api.New(api.Config{BaseURL: srv.URL()})
	svc := NewSummaryService(client)
	ctx := context.Background()
	p := testutil.BuildProject("Atlas", 1)
	srv.SeedProject(p)

	_, err := svc.Generate(ctx, p.ID, "casual")
	assert.ErrorIs(t, err, ErrInvalidType)

	sum, err := svc.Generate(ctx, p.ID, domain.ToneExecutive)
	require.NoError(t, err)
	assert.Equal(t, domain.ToneExecutive, sum.Tone)
	assert.NotEmpty(t, sum.Content)

	sums, err := svc.List(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, sum.ID, sums[0].ID)

	// Generation failures surface verbatim.
	srv.FailAll(503, "model overloaded")
	_, err = svc.Generate(ctx, p.ID, domain.ToneTechnical)
	require.Error(t, err)
	assert.Equal(t, "model overloaded", err.Error())
}
