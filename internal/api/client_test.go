package api_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (api.Client, *testutil.FakeServer) {
	t.Helper()
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	return api.New(api.Config{BaseURL: srv.URL()}), srv
}

func TestClient_EnvelopeUnwrapping(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	seeded := testutil.BuildScope("Tracker", "An app that tracks things")
	srv.SeedScope(seeded)

	scope, err := client.GetScope(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tracker", scope.ProductName)
	assert.Equal(t, domain.ScopeDraft, scope.Status)
	assert.Len(t, scope.Epics, 2)
}

func TestClient_ServerErrorMessageExtracted(t *testing.T) {
	client, srv := newClient(t)

	srv.FailNext(422, "idea text too vague")
	_, err := client.ListScopes(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 422, apiErr.Status)
	assert.Equal(t, "idea text too vague", apiErr.Message)
}

func TestClient_GenericMessageWhenBodyUnparseable(t *testing.T) {
	client, srv := newClient(t)

	srv.FailNext(500, "")
	_, err := client.ListProjects(context.Background())
	require.Error(t, err)

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "HTTP 500", apiErr.Message)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := testutil.NewFakeServer()
	base := srv.URL()
	srv.Close()

	client := api.New(api.Config{BaseURL: base, Timeout: 2 * time.Second})
	_, err := client.ListScopes(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnavailable), "expected ErrUnavailable, got %v", err)
}

func TestClient_ReorderSendsFullMapping(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	p := testutil.BuildProject("Demo", 3)
	srv.SeedProject(p)

	order := []api.OrderEntry{
		{ID: p.Milestones[2].ID, OrderIndex: 0},
		{ID: p.Milestones[0].ID, OrderIndex: 1},
		{ID: p.Milestones[1].ID, OrderIndex: 2},
	}
	require.NoError(t, client.ReorderMilestones(ctx, p.ID, order))

	ms, err := client.ListMilestones(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, ms, 3)
	assert.Equal(t, p.Milestones[2].ID, ms[0].ID)
	assert.Equal(t, p.Milestones[0].ID, ms[1].ID)
	assert.Equal(t, p.Milestones[1].ID, ms[2].ID)
}

func TestClient_NotFoundHelper(t *testing.T) {
	client, _ := newClient(t)

	_, err := client.GetScope(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, api.NotFound(err))
}

func TestClient_DeleteScope(t *testing.T) {
	client, srv := newClient(t)
	ctx := context.Background()

	scope := testutil.BuildScope("Gone", "soon to be deleted")
	srv.SeedScope(scope)

	require.NoError(t, client.DeleteScope(ctx, scope.ID))
	_, err := client.GetScope(ctx, scope.ID)
	assert.True(t, api.NotFound(err))
}
