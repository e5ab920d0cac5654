package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/db"
	"github.com/avelise/scopeflow/internal/repository"
	"github.com/avelise/scopeflow/internal/store"
	"github.com/avelise/scopeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*store.Store, *testutil.FakeServer) {
	t.Helper()
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	client := api.New(api.Config{BaseURL: srv.URL()})
	return store.New(client, nil, nil), srv
}

func setupWithSnapshots(t *testing.T) (*store.Store, *testutil.FakeServer) {
	t.Helper()
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	client := api.New(api.Config{BaseURL: srv.URL()})
	return store.New(client, repository.NewSQLiteSnapshotRepo(database), nil), srv
}

func TestStore_SingleFlightPerKey(t *testing.T) {
	s, srv := setup(t)
	srv.SeedProject(testutil.BuildProject("Alpha", 1))

	gate := srv.Gate()

	f1 := s.Projects()
	f2 := s.Projects()
	assert.Same(t, f1, f2, "concurrent gets before resolution share one fetch")
	assert.False(t, f1.Resolved())

	close(gate)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cards, err := f1.Await(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)

	assert.Equal(t, 1, srv.Calls("GET", "/projects"), "one remote call for both gets")
}

func TestStore_ResolvedFetchIsReused(t *testing.T) {
	s, srv := setup(t)
	ctx := context.Background()

	f1 := s.Scopes()
	_, err := f1.Await(ctx)
	require.NoError(t, err)

	f2 := s.Scopes()
	assert.Same(t, f1, f2)
	assert.Equal(t, 1, srv.Calls("GET", "/scopes"))
}

func TestStore_InvalidateIssuesNewRequest(t *testing.T) {
	s, srv := setup(t)
	ctx := context.Background()

	f1 := s.Projects()
	_, err := f1.Await(ctx)
	require.NoError(t, err)

	f2 := s.InvalidateProjects()
	assert.NotSame(t, f1, f2, "invalidation replaces the fetch")
	_, err = f2.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("GET", "/projects"))

	// The old reference still resolves to its original (stale) result.
	_, err = f1.Await(ctx)
	assert.NoError(t, err)
}

func TestStore_FailureIsNotCached(t *testing.T) {
	s, srv := setup(t)
	ctx := context.Background()

	srv.FailNext(500, "db down")
	f1 := s.Scopes()
	_, err := f1.Await(ctx)
	require.Error(t, err)

	// Next get after a failure issues a fresh request.
	f2 := s.Scopes()
	assert.NotSame(t, f1, f2)
	_, err = f2.Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, srv.Calls("GET", "/scopes"))
}

func TestStore_EntityKeysAreIndependent(t *testing.T) {
	s, srv := setup(t)
	ctx := context.Background()

	p1 := testutil.BuildProject("One", 1)
	p2 := testutil.BuildProject("Two", 2)
	srv.SeedProject(p1)
	srv.SeedProject(p2)

	a, err := s.Project(p1.ID).Await(ctx)
	require.NoError(t, err)
	b, err := s.Project(p2.ID).Await(ctx)
	require.NoError(t, err)

	assert.Equal(t, "One", a.Name)
	assert.Equal(t, "Two", b.Name)
	assert.Equal(t, 1, srv.Calls("GET", "/projects/"+p1.ID))
	assert.Equal(t, 1, srv.Calls("GET", "/projects/"+p2.ID))
}

func TestStore_AwaitHonorsContext(t *testing.T) {
	s, srv := setup(t)

	gate := srv.Gate()
	defer close(gate)

	f := s.Projects()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := f.Await(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStore_SnapshotWriteThrough(t *testing.T) {
	s, srv := setupWithSnapshots(t)
	ctx := context.Background()

	p := testutil.BuildProject("Persisted", 2)
	srv.SeedProject(p)

	_, err := s.Projects().Await(ctx)
	require.NoError(t, err)

	cards, fetchedAt, err := s.LastKnownProjects(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Persisted", cards[0].Name)
	assert.WithinDuration(t, time.Now(), fetchedAt, time.Minute)
}

func TestStore_LastKnownServesStaleWhenOffline(t *testing.T) {
	s, srv := setupWithSnapshots(t)
	ctx := context.Background()

	p := testutil.BuildProject("Offline", 1)
	srv.SeedProject(p)
	_, err := s.Project(p.ID).Await(ctx)
	require.NoError(t, err)

	srv.FailAll(503, "maintenance")
	_, err = s.InvalidateProject(p.ID).Await(ctx)
	require.Error(t, err)

	stale, _, err := s.LastKnownProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Offline", stale.Name)
}
