package formatter

import (
	"fmt"
	"strings"

	"github.com/avelise/scopeflow/internal/domain"
)

// FormatProjectCards renders the dashboard project table.
func FormatProjectCards(cards []domain.ProjectCard) string {
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		avatars := make([]string, 0, len(c.TeamMembers))
		for _, m := range c.TeamMembers {
			avatars = append(avatars, AvatarSwatch(m))
		}
		due := Dim("--")
		if c.NextDueDate != "" {
			due = Dim(HumanDate(c.NextDueDate))
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			fmt.Sprintf("%s %s", HealthDot(c.Health), Bold(c.Name)),
			ProjectStatusPill(c.Status),
			RenderProgress(c.ProgressPercent, 10),
			fmt.Sprintf("%d/%d", c.CompletedMilestones, c.MilestoneCount),
			due,
			strings.Join(avatars, " "),
		})
	}
	return RenderTable([]string{"ID", "Project", "Status", "Progress", "Done", "Next Due", "Team"}, rows)
}

// FormatProject renders a single project with its milestone list and roster.
func FormatProject(p *domain.Project) string {
	var b strings.Builder

	b.WriteString(Header(p.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s %s\n",
		ProjectStatusPill(p.Status), TruncID(p.ID), Dim("started"), HumanDate(p.StartDate))
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", Dim(p.Description))
	}

	if len(p.Milestones) > 0 {
		b.WriteString("\n" + Header("Milestones") + "\n")
		b.WriteString(FormatMilestoneRows(p.Milestones, p.TeamMembers))
	}

	if len(p.TeamMembers) > 0 {
		b.WriteString("\n" + Header("Team") + "\n")
		for _, m := range p.TeamMembers {
			fmt.Fprintf(&b, "%s %s %s\n",
				AvatarSwatch(domain.MemberAvatar{ID: m.ID, Name: m.Name, AvatarColor: m.AvatarColor}),
				Bold(m.Name), Dim(m.Role))
		}
	}

	return b.String()
}

// FormatMilestoneRows renders the milestone table shared by the project view
// and the milestones command.
func FormatMilestoneRows(ms []domain.Milestone, team []domain.TeamMember) string {
	byID := make(map[string]string, len(team))
	for _, m := range team {
		byID[m.ID] = m.Name
	}

	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		assignee := Dim("--")
		if m.AssignedMember != nil {
			assignee = m.AssignedMember.Name
		} else if name, ok := byID[m.AssignedTo]; ok {
			assignee = name
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.OrderIndex+1),
			TruncID(m.ID),
			Bold(m.Name),
			MilestoneStatusPill(m.Status),
			RenderProgress(m.ProgressPercent, 8),
			Dim(HumanDate(m.DueDate)),
			assignee,
		})
	}
	return RenderTable([]string{"#", "ID", "Milestone", "Status", "Progress", "Due", "Assignee"}, rows)
}
