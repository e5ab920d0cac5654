package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avelise/scopeflow/internal/domain"
)

// Client is the typed gateway to the ScopeFlow REST API. Every method maps to
// exactly one endpoint and unwraps the named envelope field of the response.
type Client interface {
	GenerateScope(ctx context.Context, in GenerateScopeInput) (*domain.Scope, error)
	ListScopes(ctx context.Context) ([]domain.ScopeListItem, error)
	GetScope(ctx context.Context, id string) (*domain.Scope, error)
	UpdateScope(ctx context.Context, id string, patch ScopePatch) (*domain.Scope, error)
	ConvertScope(ctx context.Context, id string, in ConvertScopeInput) (*domain.Project, error)
	DeleteScope(ctx context.Context, id string) error

	ListProjects(ctx context.Context) ([]domain.ProjectCard, error)
	GetProject(ctx context.Context, id string) (*domain.Project, error)
	UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error

	ListMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error)
	GetMilestone(ctx context.Context, id string) (*domain.Milestone, error)
	CreateMilestone(ctx context.Context, projectID string, in CreateMilestoneInput) (*domain.Milestone, error)
	UpdateMilestone(ctx context.Context, id string, patch MilestonePatch) (*domain.Milestone, error)
	DeleteMilestone(ctx context.Context, id string) error
	ReorderMilestones(ctx context.Context, projectID string, order []OrderEntry) error

	ListProjectUpdates(ctx context.Context, projectID string, page int) (*UpdatePage, error)
	LogUpdate(ctx context.Context, milestoneID string, in LogUpdateInput) (*domain.Update, error)

	ListTeam(ctx context.Context, projectID string) ([]domain.TeamMember, error)
	AddTeamMember(ctx context.Context, projectID string, in TeamMemberInput) (*domain.TeamMember, error)
	UpdateTeamMember(ctx context.Context, id string, patch TeamMemberPatch) (*domain.TeamMember, error)
	DeleteTeamMember(ctx context.Context, id string) error

	GenerateSummary(ctx context.Context, projectID string, in GenerateSummaryInput) (*domain.Summary, error)
	ListSummaries(ctx context.Context, projectID string) ([]domain.Summary, error)

	ListNotifications(ctx context.Context, projectID string) ([]domain.Notification, error)
	Search(ctx context.Context, query string) ([]domain.SearchResult, error)

	CreateUserStory(ctx context.Context, milestoneID string, in CreateUserStoryInput) (*domain.UserStory, error)
	UpdateUserStory(ctx context.Context, id string, patch UserStoryPatch) error
	DeleteUserStory(ctx context.Context, id string) error
}

// Config holds gateway settings.
type Config struct {
	BaseURL         string        // e.g. http://localhost:8000, /api/v1 appended
	Timeout         time.Duration // per ordinary request
	GenerateTimeout time.Duration // scope/summary generation runs 10-20s
}

const apiPrefix = "/api/v1"

type httpGateway struct {
	cfg  Config
	http *http.Client
}

// New creates a Client that talks to the ScopeFlow server at cfg.BaseURL.
func New(cfg Config) Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	if cfg.GenerateTimeout <= 0 {
		cfg.GenerateTimeout = 60 * time.Second
	}
	return &httpGateway{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// do issues one request and decodes the response body into out (when non-nil).
// Non-2xx responses become *Error with the server-supplied message.
func (g *httpGateway) do(ctx context.Context, method, path string, body, out any, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.cfg.BaseURL+apiPrefix+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		if isConnectionError(err) {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Error string `json:"error"`
		}
		msg := genericMessage(resp.StatusCode)
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error != "" {
			msg = envelope.Error
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

// ── Scopes ───────────────────────────────────────────────────────────────────

func (g *httpGateway) GenerateScope(ctx context.Context, in GenerateScopeInput) (*domain.Scope, error) {
	var env struct {
		Scope *domain.Scope `json:"scope"`
	}
	if err := g.do(ctx, http.MethodPost, "/scopes/generate", in, &env, g.cfg.GenerateTimeout); err != nil {
		return nil, err
	}
	return env.Scope, nil
}

func (g *httpGateway) ListScopes(ctx context.Context) ([]domain.ScopeListItem, error) {
	var env struct {
		Scopes []domain.ScopeListItem `json:"scopes"`
	}
	if err := g.do(ctx, http.MethodGet, "/scopes", nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Scopes, nil
}

func (g *httpGateway) GetScope(ctx context.Context, id string) (*domain.Scope, error) {
	var env struct {
		Scope *domain.Scope `json:"scope"`
	}
	if err := g.do(ctx, http.MethodGet, "/scopes/"+id, nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Scope, nil
}

func (g *httpGateway) UpdateScope(ctx context.Context, id string, patch ScopePatch) (*domain.Scope, error) {
	var env struct {
		Scope *domain.Scope `json:"scope"`
	}
	if err := g.do(ctx, http.MethodPatch, "/scopes/"+id, patch, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Scope, nil
}

func (g *httpGateway) ConvertScope(ctx context.Context, id string, in ConvertScopeInput) (*domain.Project, error) {
	var env struct {
		Project *domain.Project `json:"project"`
	}
	if err := g.do(ctx, http.MethodPost, "/scopes/"+id+"/convert", in, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Project, nil
}

func (g *httpGateway) DeleteScope(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/scopes/"+id, nil, nil, g.cfg.Timeout)
}

// ── Projects ─────────────────────────────────────────────────────────────────

func (g *httpGateway) ListProjects(ctx context.Context) ([]domain.ProjectCard, error) {
	var env struct {
		Projects []domain.ProjectCard `json:"projects"`
	}
	if err := g.do(ctx, http.MethodGet, "/projects", nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Projects, nil
}

func (g *httpGateway) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var env struct {
		Project *domain.Project `json:"project"`
	}
	if err := g.do(ctx, http.MethodGet, "/projects/"+id, nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Project, nil
}

func (g *httpGateway) UpdateProject(ctx context.Context, id string, patch ProjectPatch) (*domain.Project, error) {
	var env struct {
		Project *domain.Project `json:"project"`
	}
	if err := g.do(ctx, http.MethodPatch, "/projects/"+id, patch, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Project, nil
}

func (g *httpGateway) DeleteProject(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/projects/"+id, nil, nil, g.cfg.Timeout)
}

// ── Milestones ───────────────────────────────────────────────────────────────

func (g *httpGateway) ListMilestones(ctx context.Context, projectID string) ([]domain.Milestone, error) {
	var env struct {
		Milestones []domain.Milestone `json:"milestones"`
	}
	if err := g.do(ctx, http.MethodGet, "/projects/"+projectID+"/milestones", nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Milestones, nil
}

func (g *httpGateway) GetMilestone(ctx context.Context, id string) (*domain.Milestone, error) {
	var env struct {
		Milestone *domain.Milestone `json:"milestone"`
	}
	if err := g.do(ctx, http.MethodGet, "/milestones/"+id, nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Milestone, nil
}

func (g *httpGateway) CreateMilestone(ctx context.Context, projectID string, in CreateMilestoneInput) (*domain.Milestone, error) {
	var env struct {
		Milestone *domain.Milestone `json:"milestone"`
	}
	if err := g.do(ctx, http.MethodPost, "/projects/"+projectID+"/milestones", in, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Milestone, nil
}

func (g *httpGateway) UpdateMilestone(ctx context.Context, id string, patch MilestonePatch) (*domain.Milestone, error) {
	var env struct {
		Milestone *domain.Milestone `json:"milestone"`
	}
	if err := g.do(ctx, http.MethodPatch, "/milestones/"+id, patch, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Milestone, nil
}

func (g *httpGateway) DeleteMilestone(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/milestones/"+id, nil, nil, g.cfg.Timeout)
}

func (g *httpGateway) ReorderMilestones(ctx context.Context, projectID string, order []OrderEntry) error {
	body := struct {
		Order []OrderEntry `json:"order"`
	}{Order: order}
	return g.do(ctx, http.MethodPatch, "/projects/"+projectID+"/milestones/reorder", body, nil, g.cfg.Timeout)
}

// ── Updates ──────────────────────────────────────────────────────────────────

func (g *httpGateway) ListProjectUpdates(ctx context.Context, projectID string, page int) (*UpdatePage, error) {
	var out UpdatePage
	path := "/projects/" + projectID + "/updates?page=" + strconv.Itoa(page)
	if err := g.do(ctx, http.MethodGet, path, nil, &out, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *httpGateway) LogUpdate(ctx context.Context, milestoneID string, in LogUpdateInput) (*domain.Update, error) {
	var env struct {
		Update *domain.Update `json:"update"`
	}
	if err := g.do(ctx, http.MethodPost, "/milestones/"+milestoneID+"/updates", in, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Update, nil
}

// ── Team ─────────────────────────────────────────────────────────────────────

func (g *httpGateway) ListTeam(ctx context.Context, projectID string) ([]domain.TeamMember, error) {
	var env struct {
		TeamMembers []domain.TeamMember `json:"team_members"`
	}
	if err := g.do(ctx, http.MethodGet, "/projects/"+projectID+"/team", nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.TeamMembers, nil
}

func (g *httpGateway) AddTeamMember(ctx context.Context, projectID string, in TeamMemberInput) (*domain.TeamMember, error) {
	var env struct {
		TeamMember *domain.TeamMember `json:"team_member"`
	}
	if err := g.do(ctx, http.MethodPost, "/projects/"+projectID+"/team", in, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.TeamMember, nil
}

func (g *httpGateway) UpdateTeamMember(ctx context.Context, id string, patch TeamMemberPatch) (*domain.TeamMember, error) {
	var env struct {
		TeamMember *domain.TeamMember `json:"team_member"`
	}
	if err := g.do(ctx, http.MethodPatch, "/team-members/"+id, patch, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.TeamMember, nil
}

func (g *httpGateway) DeleteTeamMember(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/team-members/"+id, nil, nil, g.cfg.Timeout)
}

// ── Summaries ────────────────────────────────────────────────────────────────

func (g *httpGateway) GenerateSummary(ctx context.Context, projectID string, in GenerateSummaryInput) (*domain.Summary, error) {
	var env struct {
		Summary *domain.Summary `json:"summary"`
	}
	if err := g.do(ctx, http.MethodPost, "/projects/"+projectID+"/summary", in, &env, g.cfg.GenerateTimeout); err != nil {
		return nil, err
	}
	return env.Summary, nil
}

func (g *httpGateway) ListSummaries(ctx context.Context, projectID string) ([]domain.Summary, error) {
	var env struct {
		Summaries []domain.Summary `json:"summaries"`
	}
	if err := g.do(ctx, http.MethodGet, "/projects/"+projectID+"/summaries", nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Summaries, nil
}

// ── Notifications / Search ───────────────────────────────────────────────────

func (g *httpGateway) ListNotifications(ctx context.Context, projectID string) ([]domain.Notification, error) {
	var env struct {
		Notifications []domain.Notification `json:"notifications"`
	}
	if err := g.do(ctx, http.MethodGet, "/projects/"+projectID+"/notifications", nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Notifications, nil
}

func (g *httpGateway) Search(ctx context.Context, query string) ([]domain.SearchResult, error) {
	var env struct {
		Results []domain.SearchResult `json:"results"`
	}
	path := "/search?q=" + url.QueryEscape(query)
	if err := g.do(ctx, http.MethodGet, path, nil, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.Results, nil
}

// ── User stories ─────────────────────────────────────────────────────────────

func (g *httpGateway) CreateUserStory(ctx context.Context, milestoneID string, in CreateUserStoryInput) (*domain.UserStory, error) {
	var env struct {
		UserStory *domain.UserStory `json:"user_story"`
	}
	if err := g.do(ctx, http.MethodPost, "/milestones/"+milestoneID+"/user-stories", in, &env, g.cfg.Timeout); err != nil {
		return nil, err
	}
	return env.UserStory, nil
}

func (g *httpGateway) UpdateUserStory(ctx context.Context, id string, patch UserStoryPatch) error {
	return g.do(ctx, http.MethodPatch, "/user-stories/"+id, patch, nil, g.cfg.Timeout)
}

func (g *httpGateway) DeleteUserStory(ctx context.Context, id string) error {
	return g.do(ctx, http.MethodDelete, "/user-stories/"+id, nil, nil, g.cfg.Timeout)
}
