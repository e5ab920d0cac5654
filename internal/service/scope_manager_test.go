package service

import (
	"context"
	"strings"
	"testing"

	"github.com/avelise/scopeflow/internal/api"
	"github.com/avelise/scopeflow/internal/domain"
	"github.com/avelise/scopeflow/internal/store"
	"github.com/avelise/scopeflow/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupScopeManager(t *testing.T) (*ScopeManager, *testutil.FakeServer) {
	t.Helper()
	srv := testutil.NewFakeServer()
	t.Cleanup(srv.Close)
	client := api.New(api.Config{BaseURL: srv.URL()})
	cache := store.New(client, nil, nil)
	return NewScopeManager(client, cache, nil), srv
}

func generated(t *testing.T, m *ScopeManager) *domain.Scope {
	t.Helper()
	scope, err := m.Generate(context.Background(), api.GenerateScopeInput{
		ProductName: "Meal Planner",
		IdeaText:    strings.Repeat("a meal planning app for busy families ", 4),
	})
	require.NoError(t, err)
	return scope
}

func TestScopeManager_GenerateYieldsDraft(t *testing.T) {
	m, _ := setupScopeManager(t)

	idea := strings.Repeat("x", 150)
	scope, err := m.Generate(context.Background(), api.GenerateScopeInput{
		ProductName: "Idea Machine",
		IdeaText:    idea,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ScopeDraft, scope.Status)
	assert.GreaterOrEqual(t, len(scope.Epics), 1)
	assert.Equal(t, ScopeStateReady, m.State())
}

func TestScopeManager_GenerateValidation(t *testing.T) {
	m, srv := setupScopeManager(t)
	ctx := context.Background()

	_, err := m.Generate(ctx, api.GenerateScopeInput{IdeaText: "something"})
	assert.ErrorIs(t, err, ErrEmptyProductName)

	_, err = m.Generate(ctx, api.GenerateScopeInput{ProductName: "App", IdeaText: "   "})
	assert.ErrorIs(t, err, ErrEmptyIdea)

	// Validation failures never reach the network.
	assert.Equal(t, 0, srv.Calls("POST", "/scopes/generate"))
}

func TestScopeManager_GenerateErrorPropagatedVerbatim(t *testing.T) {
	m, srv := setupScopeManager(t)

	srv.FailNext(502, "generation model overloaded")
	_, err := m.Generate(context.Background(), api.GenerateScopeInput{
		ProductName: "App",
		IdeaText:    "an app idea worth generating",
	})
	require.Error(t, err)
	assert.Equal(t, "generation model overloaded", err.Error())
	assert.Equal(t, ScopeStateIdle, m.State(), "failed generation resets the lifecycle")

	// No retry: exactly one request was made.
	assert.Equal(t, 1, srv.Calls("POST", "/scopes/generate"))
}

func TestScopeManager_EditFieldStagesWithoutMutating(t *testing.T) {
	m, _ := setupScopeManager(t)
	scope := generated(t, m)
	epicID := scope.Epics[0].ID
	originalName := scope.Epics[0].Name

	require.NoError(t, m.EditField(epicID, "name", "Rebuilt Foundation"))
	assert.Equal(t, ScopeStateEditing, m.State())
	assert.True(t, m.HasEdits())

	// The canonical scope is untouched until SaveEdits.
	assert.Equal(t, originalName, m.Scope().Epics[0].Name)

	edits := m.StagedEdits()
	require.Contains(t, edits, epicID)
	assert.Equal(t, "Rebuilt Foundation", *edits[epicID].Name)
}

func TestScopeManager_EditFieldRejectsUnknowns(t *testing.T) {
	m, _ := setupScopeManager(t)
	scope := generated(t, m)

	assert.ErrorIs(t, m.EditField("nope", "name", "x"), ErrUnknownEpic)
	assert.ErrorIs(t, m.EditField(scope.Epics[0].ID, "effort_days", "9"), ErrInvalidField)
}

func TestScopeManager_SaveEditsMergesAndClears(t *testing.T) {
	m, srv := setupScopeManager(t)
	scope := generated(t, m)
	epicID := scope.Epics[0].ID

	require.NoError(t, m.EditField(epicID, "name", "Renamed"))
	require.NoError(t, m.EditField(epicID, "description", "New description"))
	require.NoError(t, m.SaveEdits(context.Background()))

	assert.False(t, m.HasEdits())
	assert.Equal(t, ScopeStateReady, m.State())
	assert.Equal(t, "Renamed", m.Scope().Epics[0].Name)

	// The server holds the merged epics too.
	stored := srv.Scope(scope.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Renamed", stored.Epics[0].Name)
}

func TestScopeManager_SaveEditsFailureKeepsStagedEdits(t *testing.T) {
	m, srv := setupScopeManager(t)
	scope := generated(t, m)
	require.NoError(t, m.EditField(scope.Epics[0].ID, "name", "Retry Me"))

	srv.FailNext(500, "write conflict")
	err := m.SaveEdits(context.Background())
	require.Error(t, err)
	assert.Equal(t, "write conflict", err.Error())

	// User may retry: staged edits survive the failure.
	assert.True(t, m.HasEdits())
	require.NoError(t, m.SaveEdits(context.Background()))
	assert.False(t, m.HasEdits())
}

func TestScopeManager_SaveDraftIdempotentAndSilent(t *testing.T) {
	m, srv := setupScopeManager(t)
	generated(t, m)

	require.NoError(t, m.SaveDraft(context.Background()))
	assert.Equal(t, ScopeStateSavedDraft, m.State())
	require.NoError(t, m.SaveDraft(context.Background()))

	// Draft-save failures are swallowed.
	srv.FailNext(500, "boom")
	assert.NoError(t, m.SaveDraft(context.Background()))
}

func TestScopeManager_ConvertReturnsProjectID(t *testing.T) {
	m, srv := setupScopeManager(t)
	scope := generated(t, m)
	epicsBefore := len(m.Scope().Epics)

	projectID, err := m.Convert(context.Background(), "2026-09-01")
	require.NoError(t, err)
	require.NotEmpty(t, projectID)

	assert.Equal(t, ScopeStateConverted, m.State())
	assert.Equal(t, domain.ScopeConverted, m.Scope().Status)
	// Conversion never mutates the epics.
	assert.Len(t, m.Scope().Epics, epicsBefore)

	// A second conversion is rejected locally.
	_, err = m.Convert(context.Background(), "2026-09-01")
	assert.ErrorIs(t, err, ErrScopeTerminal)
	assert.Equal(t, 1, srv.Calls("POST", "/scopes/"+scope.ID+"/convert"))
}

func TestScopeManager_ConvertFailureLeavesScopeUnconverted(t *testing.T) {
	m, srv := setupScopeManager(t)
	generated(t, m)

	srv.FailNext(500, "conversion failed")
	_, err := m.Convert(context.Background(), "")
	require.Error(t, err)
	assert.Equal(t, "conversion failed", err.Error())
	assert.Equal(t, domain.ScopeDraft, m.Scope().Status)

	// Retry succeeds.
	projectID, err := m.Convert(context.Background(), "")
	require.NoError(t, err)
	assert.NotEmpty(t, projectID)
}

func TestScopeManager_ConvertRejectsBadDate(t *testing.T) {
	m, _ := setupScopeManager(t)
	generated(t, m)

	_, err := m.Convert(context.Background(), "September 1st")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestScopeManager_ArchiveOnlyFromDraft(t *testing.T) {
	m, srv := setupScopeManager(t)
	scope := generated(t, m)

	require.NoError(t, m.Archive(context.Background()))
	assert.Equal(t, ScopeStateArchived, m.State())
	assert.Equal(t, domain.ScopeArchived, m.Scope().Status)

	// Archiving again is a guarded no-op: no second DELETE goes out.
	require.NoError(t, m.Archive(context.Background()))
	assert.Equal(t, 1, srv.Calls("DELETE", "/scopes/"+scope.ID))
}

func TestScopeManager_ArchiveConvertedIsNoop(t *testing.T) {
	m, srv := setupScopeManager(t)
	scope := generated(t, m)

	_, err := m.Convert(context.Background(), "")
	require.NoError(t, err)

	require.NoError(t, m.Archive(context.Background()))
	assert.Equal(t, domain.ScopeConverted, m.Scope().Status)
	assert.Equal(t, 0, srv.Calls("DELETE", "/scopes/"+scope.ID))
}

func TestScopeManager_LoadAdoptsExisting(t *testing.T) {
	m, srv := setupScopeManager(t)
	seeded := testutil.BuildScope("Saved Draft", "an idea persisted earlier")
	srv.SeedScope(seeded)

	scope, err := m.Load(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Saved Draft", scope.ProductName)
	assert.Equal(t, ScopeStateReady, m.State())
}
