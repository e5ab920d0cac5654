package domain

type Project struct {
	ID          string        `json:"id"`
	ScopeID     string        `json:"scope_id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	StartDate   string        `json:"start_date"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
	Milestones  []Milestone   `json:"milestones,omitempty"`
	TeamMembers []TeamMember  `json:"team_members,omitempty"`
}

// MilestoneByID returns a pointer into the project's milestone slice, or nil.
func (p *Project) MilestoneByID(id string) *Milestone {
	for i := range p.Milestones {
		if p.Milestones[i].ID == id {
			return &p.Milestones[i]
		}
	}
	return nil
}

// RemoveMilestone deletes the milestone with the given id from the local
// collection, preserving order.
func (p *Project) RemoveMilestone(id string) {
	for i := range p.Milestones {
		if p.Milestones[i].ID == id {
			p.Milestones = append(p.Milestones[:i], p.Milestones[i+1:]...)
			return
		}
	}
}

type TeamMember struct {
	ID          string `json:"id"`
	ProjectID   string `json:"project_id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	AvatarColor string `json:"avatar_color"`
	CreatedAt   string `json:"created_at"`
}

// MemberAvatar is the trimmed member shape embedded in project cards.
type MemberAvatar struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	AvatarColor string `json:"avatar_color"`
}

// ProjectCard is the dashboard projection returned by the project list
// endpoint: rollup progress plus a server-computed health signal.
type ProjectCard struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Status              ProjectStatus  `json:"status"`
	ProgressPercent     int            `json:"progress_percent"`
	MilestoneCount      int            `json:"milestone_count"`
	CompletedMilestones int            `json:"completed_milestones"`
	NextDueDate         string         `json:"next_due_date,omitempty"`
	Health              Health         `json:"health"`
	TeamMembers         []MemberAvatar `json:"team_members"`
}
