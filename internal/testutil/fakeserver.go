// Package testutil provides an in-memory fake of the ScopeFlow REST API and
// fixture builders for tests. The fake speaks the same envelope wire format
// as the real server and supports fault injection for failure-policy tests.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/avelise/scopeflow/internal/domain"
	"github.com/google/uuid"
)

// FakeServer is an httptest-backed stand-in for the remote system of record.
type FakeServer struct {
	Server *httptest.Server

	mu         sync.Mutex
	scopes     map[string]*domain.Scope
	projects   map[string]*domain.Project
	milestones map[string]*domain.Milestone
	members    map[string]*domain.TeamMember
	summaries  map[string][]domain.Summary
	notifs     map[string][]domain.Notification
	results    []domain.SearchResult

	calls    map[string]int
	failAll  *fault
	failNext *fault

	// gate, when non-nil, blocks request handling until the channel closes.
	gate chan struct{}
}

type fault struct {
	status int
	msg    string // empty means no {"error"} body
}

// NewFakeServer starts the fake. It is shut down via t.Cleanup-style Close.
func NewFakeServer() *FakeServer {
	s := &FakeServer{
		scopes:     make(map[string]*domain.Scope),
		projects:   make(map[string]*domain.Project),
		milestones: make(map[string]*domain.Milestone),
		members:    make(map[string]*domain.TeamMember),
		summaries:  make(map[string][]domain.Summary),
		notifs:     make(map[string][]domain.Notification),
		calls:      make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the base URL of the fake server.
func (s *FakeServer) URL() string { return s.Server.URL }

// Close shuts the server down.
func (s *FakeServer) Close() { s.Server.Close() }

// ── Fault injection and introspection ────────────────────────────────────────

// FailAll makes every subsequent request fail with the given status. An
// empty msg omits the {"error"} body entirely.
func (s *FakeServer) FailAll(status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = &fault{status: status, msg: msg}
}

// FailNext makes only the next request fail.
func (s *FakeServer) FailNext(status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = &fault{status: status, msg: msg}
}

// Heal clears all injected faults.
func (s *FakeServer) Heal() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failAll = nil
	s.failNext = nil
}

// Gate installs a channel that blocks every request until it is closed.
func (s *FakeServer) Gate() chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = make(chan struct{})
	return s.gate
}

// Ungate removes the request gate without requiring it to be closed first.
func (s *FakeServer) Ungate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gate = nil
}

// Calls returns how many times "METHOD /path" was requested.
func (s *FakeServer) Calls(method, path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method+" "+path]
}

// ── Seeding ──────────────────────────────────────────────────────────────────

// SeedScope registers a scope.
func (s *FakeServer) SeedScope(scope *domain.Scope) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes[scope.ID] = scope
}

// SeedProject registers a project and its embedded milestones and members.
func (s *FakeServer) SeedProject(p *domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[p.ID] = p
	for i := range p.Milestones {
		m := p.Milestones[i]
		s.milestones[m.ID] = &m
	}
	for i := range p.TeamMembers {
		tm := p.TeamMembers[i]
		s.members[tm.ID] = &tm
	}
}

// SeedNotifications sets the notification list for a project.
func (s *FakeServer) SeedNotifications(projectID string, ns []domain.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifs[projectID] = ns
}

// SeedSearchResults sets the canned response of GET /search.
func (s *FakeServer) SeedSearchResults(rs []domain.SearchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = rs
}

// Milestone returns the stored milestone, or nil.
func (s *FakeServer) Milestone(id string) *domain.Milestone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.milestones[id]
}

// Scope returns the stored scope, or nil.
func (s *FakeServer) Scope(id string) *domain.Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scopes[id]
}

// ── HTTP handling ────────────────────────────────────────────────────────────

func (s *FakeServer) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	gate := s.gate
	s.mu.Unlock()
	if gate != nil {
		<-gate
	}

	path := strings.TrimPrefix(r.URL.Path, "/api/v1")
	s.mu.Lock()
	s.calls[r.Method+" "+path]++
	f := s.failAll
	if s.failNext != nil {
		f = s.failNext
		s.failNext = nil
	}
	s.mu.Unlock()

	if f != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.status)
		if f.msg != "" {
			json.NewEncoder(w).Encode(map[string]string{"error": f.msg})
		} else {
			fmt.Fprint(w, "oops")
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	seg := strings.Split(strings.Trim(path, "/"), "/")
	switch {
	case r.Method == http.MethodPost && path == "/scopes/generate":
		s.handleGenerate(w, r)
	case r.Method == http.MethodGet && path == "/scopes":
		s.handleListScopes(w)
	case len(seg) == 2 && seg[0] == "scopes":
		s.handleScope(w, r, seg[1])
	case len(seg) == 3 && seg[0] == "scopes" && seg[2] == "convert":
		s.handleConvert(w, r, seg[1])
	case r.Method == http.MethodGet && path == "/projects":
		s.handleListProjects(w)
	case len(seg) == 2 && seg[0] == "projects":
		s.handleProject(w, r, seg[1])
	case len(seg) == 4 && seg[0] == "projects" && seg[2] == "milestones" && seg[3] == "reorder":
		s.handleReorder(w, r, seg[1])
	case len(seg) == 3 && seg[0] == "projects" && seg[2] == "milestones":
		s.handleProjectMilestones(w, r, seg[1])
	case len(seg) == 3 && seg[0] == "projects" && seg[2] == "updates":
		s.handleProjectUpdates(w, seg[1])
	case len(seg) == 3 && seg[0] == "projects" && seg[2] == "team":
		s.handleTeam(w, r, seg[1])
	case len(seg) == 3 && seg[0] == "projects" && seg[2] == "summary":
		s.handleGenerateSummary(w, r, seg[1])
	case len(seg) == 3 && seg[0] == "projects" && seg[2] == "summaries":
		s.handleListSummaries(w, seg[1])
	case len(seg) == 3 && seg[0] == "projects" && seg[2] == "notifications":
		s.writeJSON(w, map[string]any{"notifications": orEmptyNotifs(s.notifs[seg[1]])})
	case len(seg) == 2 && seg[0] == "milestones":
		s.handleMilestone(w, r, seg[1])
	case len(seg) == 3 && seg[0] == "milestones" && seg[2] == "updates":
		s.handleLogUpdate(w, r, seg[1])
	case len(seg) == 3 && seg[0] == "milestones" && seg[2] == "user-stories":
		s.handleCreateStory(w, r, seg[1])
	case len(seg) == 2 && seg[0] == "team-members":
		s.handleTeamMember(w, r, seg[1])
	case len(seg) == 2 && seg[0] == "user-stories":
		s.handleUserStory(w, r, seg[1])
	case seg[0] == "search":
		s.writeJSON(w, map[string]any{"results": s.results})
	default:
		s.writeError(w, http.StatusNotFound, "unknown route")
	}
}

func (s *FakeServer) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (s *FakeServer) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decode[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	return v, err
}

func nowISO() string { return time.Now().UTC().Format(time.RFC3339) }

func orEmptyNotifs(ns []domain.Notification) []domain.Notification {
	if ns == nil {
		return []domain.Notification{}
	}
	return ns
}

// ── Scopes ───────────────────────────────────────────────────────────────────

func (s *FakeServer) handleGenerate(w http.ResponseWriter, r *http.Request) {
	in, err := decode[struct {
		ProductName      string `json:"product_name"`
		IdeaText         string `json:"idea_text"`
		TargetAudience   string `json:"target_audience"`
		BudgetRange      string `json:"budget_range"`
		TimelinePressure string `json:"timeline_pressure"`
	}](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	scope := BuildScope(in.ProductName, in.IdeaText)
	scope.TargetAudience = in.TargetAudience
	scope.BudgetRange = domain.BudgetRange(in.BudgetRange)
	scope.TimelinePressure = domain.TimelinePressure(in.TimelinePressure)
	s.scopes[scope.ID] = scope
	s.writeJSON(w, map[string]any{"scope": scope})
}

func (s *FakeServer) handleListScopes(w http.ResponseWriter) {
	items := []domain.ScopeListItem{}
	for _, sc := range s.scopes {
		items = append(items, domain.ScopeListItem{
			ID: sc.ID, ProductName: sc.ProductName, IdeaText: sc.IdeaText,
			Status: sc.Status, CreatedAt: sc.CreatedAt,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt > items[j].CreatedAt })
	s.writeJSON(w, map[string]any{"scopes": items})
}

func (s *FakeServer) handleScope(w http.ResponseWriter, r *http.Request, id string) {
	scope, ok := s.scopes[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "scope not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]any{"scope": scope})
	case http.MethodPatch:
		patch, err := decode[struct {
			Status *domain.ScopeStatus `json:"status"`
			Epics  []domain.Epic       `json:"epics"`
		}](r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		if patch.Status != nil {
			scope.Status = *patch.Status
		}
		if patch.Epics != nil {
			scope.Epics = patch.Epics
		}
		scope.UpdatedAt = nowISO()
		s.writeJSON(w, map[string]any{"scope": scope})
	case http.MethodDelete:
		delete(s.scopes, id)
		s.writeJSON(w, map[string]any{})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "bad method")
	}
}

func (s *FakeServer) handleConvert(w http.ResponseWriter, r *http.Request, id string) {
	scope, ok := s.scopes[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "scope not found")
		return
	}
	if scope.Status != domain.ScopeDraft {
		s.writeError(w, http.StatusConflict, "scope already converted or archived")
		return
	}
	in, err := decode[struct {
		StartDate string `json:"start_date"`
	}](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	scope.Status = domain.ScopeConverted
	project := &domain.Project{
		ID:        uuid.New().String(),
		ScopeID:   scope.ID,
		Name:      scope.ProductName,
		StartDate: in.StartDate,
		Status:    domain.ProjectActive,
		CreatedAt: nowISO(),
		UpdatedAt: nowISO(),
	}
	for i, e := range scope.Epics {
		m := domain.Milestone{
			ID: uuid.New().String(), ProjectID: project.ID, EpicID: e.ID,
			Name: e.Name, Description: e.Description,
			Status: domain.MilestoneNotStarted, OrderIndex: i,
			StartDate: in.StartDate, DueDate: in.StartDate,
			CreatedAt: nowISO(), UpdatedAt: nowISO(),
			UserStories: e.UserStories,
		}
		project.Milestones = append(project.Milestones, m)
		s.milestones[m.ID] = &project.Milestones[i]
	}
	s.projects[project.ID] = project
	s.writeJSON(w, map[string]any{"project": project})
}

// ── Projects ─────────────────────────────────────────────────────────────────

func (s *FakeServer) handleListProjects(w http.ResponseWriter) {
	cards := []domain.ProjectCard{}
	for _, p := range s.projects {
		card := domain.ProjectCard{
			ID: p.ID, Name: p.Name, Status: p.Status,
			Health: domain.HealthGreen, TeamMembers: []domain.MemberAvatar{},
		}
		for _, m := range s.milestones {
			if m.ProjectID != p.ID {
				continue
			}
			card.MilestoneCount++
			card.ProgressPercent += m.ProgressPercent
			if m.Status == domain.MilestoneCompleted {
				card.CompletedMilestones++
			}
		}
		if card.MilestoneCount > 0 {
			card.ProgressPercent /= card.MilestoneCount
		}
		cards = append(cards, card)
	}
	sort.Slice(cards, func(i, j int) bool { return cards[i].ID < cards[j].ID })
	s.writeJSON(w, map[string]any{"projects": cards})
}

func (s *FakeServer) handleProject(w http.ResponseWriter, r *http.Request, id string) {
	p, ok := s.projects[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		p.Milestones = s.projectMilestones(id)
		s.writeJSON(w, map[string]any{"project": p})
	case http.MethodPatch:
		patch, err := decode[struct {
			Status *domain.ProjectStatus `json:"status"`
		}](r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		p.UpdatedAt = nowISO()
		s.writeJSON(w, map[string]any{"project": p})
	case http.MethodDelete:
		delete(s.projects, id)
		for mid, m := range s.milestones {
			if m.ProjectID == id {
				delete(s.milestones, mid)
			}
		}
		s.writeJSON(w, map[string]any{})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "bad method")
	}
}

func (s *FakeServer) projectMilestones(projectID string) []domain.Milestone {
	var ms []domain.Milestone
	for _, m := range s.milestones {
		if m.ProjectID == projectID {
			ms = append(ms, *m)
		}
	}
	sort.Slice(ms, func(i, j int) bool { return ms[i].OrderIndex < ms[j].OrderIndex })
	return ms
}

func (s *FakeServer) handleProjectMilestones(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]any{"milestones": s.projectMilestones(projectID)})
	case http.MethodPost:
		in, err := decode[struct {
			Name        string `json:"name"`
			DueDate     string `json:"due_date"`
			Description string `json:"description"`
		}](r)
		if err != nil || in.Name == "" {
			s.writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		m := &domain.Milestone{
			ID: uuid.New().String(), ProjectID: projectID,
			Name: in.Name, Description: in.Description, DueDate: in.DueDate,
			Status: domain.MilestoneNotStarted, OrderIndex: len(s.projectMilestones(projectID)),
			CreatedAt: nowISO(), UpdatedAt: nowISO(),
		}
		s.milestones[m.ID] = m
		s.writeJSON(w, map[string]any{"milestone": m})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "bad method")
	}
}

func (s *FakeServer) handleReorder(w http.ResponseWriter, r *http.Request, projectID string) {
	in, err := decode[struct {
		Order []struct {
			ID         string `json:"id"`
			OrderIndex int    `json:"order_index"`
		} `json:"order"`
	}](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	for _, entry := range in.Order {
		if m, ok := s.milestones[entry.ID]; ok && m.ProjectID == projectID {
			m.OrderIndex = entry.OrderIndex
		}
	}
	s.writeJSON(w, map[string]any{})
}

func (s *FakeServer) handleProjectUpdates(w http.ResponseWriter, projectID string) {
	updates := []domain.Update{}
	for _, m := range s.milestones {
		if m.ProjectID == projectID {
			updates = append(updates, m.Updates...)
		}
	}
	domain.SortUpdatesDesc(updates)
	s.writeJSON(w, map[string]any{"updates": updates, "total": len(updates)})
}

// ── Milestones ───────────────────────────────────────────────────────────────

func (s *FakeServer) handleMilestone(w http.ResponseWriter, r *http.Request, id string) {
	m, ok := s.milestones[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "milestone not found")
		return
	}
	switch r.Method {
	case http.MethodGet:
		s.writeJSON(w, map[string]any{"milestone": m})
	case http.MethodPatch:
		patch, err := decode[struct {
			Name            *string                 `json:"name"`
			Description     *string                 `json:"description"`
			Status          *domain.MilestoneStatus `json:"status"`
			ProgressPercent *int                    `json:"progress_percent"`
			AssignedTo      *string                 `json:"assigned_to"`
			DueDate         *string                 `json:"due_date"`
		}](r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		if patch.Name != nil {
			m.Name = *patch.Name
		}
		if patch.Description != nil {
			m.Description = *patch.Description
		}
		if patch.Status != nil {
			m.Status = *patch.Status
		}
		if patch.ProgressPercent != nil {
			m.ProgressPercent = *patch.ProgressPercent
		}
		if patch.AssignedTo != nil {
			m.AssignedTo = *patch.AssignedTo
		}
		if patch.DueDate != nil {
			m.DueDate = *patch.DueDate
		}
		m.UpdatedAt = nowISO()
		s.writeJSON(w, map[string]any{"milestone": m})
	case http.MethodDelete:
		delete(s.milestones, id)
		s.writeJSON(w, map[string]any{})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "bad method")
	}
}

func (s *FakeServer) handleLogUpdate(w http.ResponseWriter, r *http.Request, milestoneID string) {
	m, ok := s.milestones[milestoneID]
	if !ok {
		s.writeError(w, http.StatusNotFound, "milestone not found")
		return
	}
	in, err := decode[struct {
		UpdateType string `json:"update_type"`
		Content    string `json:"content"`
		LoggedAt   string `json:"logged_at"`
	}](r)
	if err != nil || in.Content == "" {
		s.writeError(w, http.StatusBadRequest, "content is required")
		return
	}
	loggedAt := in.LoggedAt
	if loggedAt == "" {
		loggedAt = nowISO()
	}
	upd := domain.Update{
		ID: uuid.New().String(), MilestoneID: milestoneID,
		UpdateType: domain.UpdateType(in.UpdateType), Content: in.Content,
		LoggedAt: loggedAt, CreatedAt: nowISO(), MilestoneName: m.Name,
	}
	m.Updates = append([]domain.Update{upd}, m.Updates...)
	s.writeJSON(w, map[string]any{"update": upd})
}

func (s *FakeServer) handleCreateStory(w http.ResponseWriter, r *http.Request, milestoneID string) {
	m, ok := s.milestones[milestoneID]
	if !ok {
		s.writeError(w, http.StatusNotFound, "milestone not found")
		return
	}
	in, err := decode[struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}](r)
	if err != nil || in.Title == "" {
		s.writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	story := domain.UserStory{
		ID: uuid.New().String(), MilestoneID: milestoneID,
		Title: in.Title, Description: in.Description,
		OrderIndex: len(m.UserStories),
	}
	m.UserStories = append(m.UserStories, story)
	s.writeJSON(w, map[string]any{"user_story": story})
}

func (s *FakeServer) handleUserStory(w http.ResponseWriter, r *http.Request, id string) {
	var owner *domain.Milestone
	var idx int
	for _, m := range s.milestones {
		for i := range m.UserStories {
			if m.UserStories[i].ID == id {
				owner, idx = m, i
			}
		}
	}
	if owner == nil {
		s.writeError(w, http.StatusNotFound, "user story not found")
		return
	}
	switch r.Method {
	case http.MethodPatch:
		patch, err := decode[struct {
			Title       *string `json:"title"`
			Description *string `json:"description"`
			IsCompleted *bool   `json:"is_completed"`
		}](r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		story := &owner.UserStories[idx]
		if patch.Title != nil {
			story.Title = *patch.Title
		}
		if patch.Description != nil {
			story.Description = *patch.Description
		}
		if patch.IsCompleted != nil {
			story.IsCompleted = *patch.IsCompleted
		}
		s.writeJSON(w, map[string]any{})
	case http.MethodDelete:
		owner.UserStories = append(owner.UserStories[:idx], owner.UserStories[idx+1:]...)
		s.writeJSON(w, map[string]any{})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "bad method")
	}
}

// ── Team ─────────────────────────────────────────────────────────────────────

func (s *FakeServer) handleTeam(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		members := []domain.TeamMember{}
		for _, m := range s.members {
			if m.ProjectID == projectID {
				members = append(members, *m)
			}
		}
		sort.Slice(members, func(i, j int) bool { return members[i].CreatedAt < members[j].CreatedAt })
		s.writeJSON(w, map[string]any{"team_members": members})
	case http.MethodPost:
		in, err := decode[struct {
			Name        string `json:"name"`
			Role        string `json:"role"`
			AvatarColor string `json:"avatar_color"`
		}](r)
		if err != nil || in.Name == "" {
			s.writeError(w, http.StatusBadRequest, "name is required")
			return
		}
		m := &domain.TeamMember{
			ID: uuid.New().String(), ProjectID: projectID,
			Name: in.Name, Role: in.Role, AvatarColor: in.AvatarColor,
			CreatedAt: nowISO(),
		}
		s.members[m.ID] = m
		s.writeJSON(w, map[string]any{"team_member": m})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "bad method")
	}
}

func (s *FakeServer) handleTeamMember(w http.ResponseWriter, r *http.Request, id string) {
	m, ok := s.members[id]
	if !ok {
		s.writeError(w, http.StatusNotFound, "team member not found")
		return
	}
	switch r.Method {
	case http.MethodPatch:
		patch, err := decode[struct {
			Name        *string `json:"name"`
			Role        *string `json:"role"`
			AvatarColor *string `json:"avatar_color"`
		}](r)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid payload")
			return
		}
		if patch.Name != nil {
			m.Name = *patch.Name
		}
		if patch.Role != nil {
			m.Role = *patch.Role
		}
		if patch.AvatarColor != nil {
			m.AvatarColor = *patch.AvatarColor
		}
		s.writeJSON(w, map[string]any{"team_member": m})
	case http.MethodDelete:
		delete(s.members, id)
		s.writeJSON(w, map[string]any{})
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "bad method")
	}
}

// ── Summaries ────────────────────────────────────────────────────────────────

func (s *FakeServer) handleGenerateSummary(w http.ResponseWriter, r *http.Request, projectID string) {
	in, err := decode[struct {
		Tone string `json:"tone"`
	}](r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	sum := domain.Summary{
		ID: uuid.New().String(), ProjectID: projectID,
		Content: "Weekly summary (" + in.Tone + ")", Tone: domain.SummaryTone(in.Tone),
		WeekStart: time.Now().UTC().Format("2006-01-02"), GeneratedAt: nowISO(),
	}
	s.summaries[projectID] = append([]domain.Summary{sum}, s.summaries[projectID]...)
	s.writeJSON(w, map[string]any{"summary": sum})
}

func (s *FakeServer) handleListSummaries(w http.ResponseWriter, projectID string) {
	sums := s.summaries[projectID]
	if sums == nil {
		sums = []domain.Summary{}
	}
	s.writeJSON(w, map[string]any{"summaries": sums})
}
