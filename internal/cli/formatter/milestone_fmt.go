package formatter

import (
	"fmt"
	"strings"

	"github.com/avelise/scopeflow/internal/domain"
)

// FormatMilestone renders one milestone in detail: stories checklist and the
// most recent updates.
func FormatMilestone(m *domain.Milestone) string {
	var b strings.Builder

	b.WriteString(Header(m.Name))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s\n", MilestoneStatusPill(m.Status), RenderProgress(m.ProgressPercent, 12), TruncID(m.ID))
	if m.Description != "" {
		fmt.Fprintf(&b, "%s\n", Dim(m.Description))
	}
	fmt.Fprintf(&b, "%s %s  %s %s\n", Dim("Start:"), HumanDate(m.StartDate), Dim("Due:"), HumanDate(m.DueDate))
	if m.AssignedMember != nil {
		fmt.Fprintf(&b, "%s %s\n", Dim("Assignee:"), Bold(m.AssignedMember.Name))
	}

	if len(m.UserStories) > 0 {
		b.WriteString("\n" + Header("Stories") + "\n")
		for _, st := range m.UserStories {
			mark := StyleDim.Render("○")
			title := st.Title
			if st.IsCompleted {
				mark = StyleGreen.Render("✔")
				title = Dim(st.Title)
			}
			fmt.Fprintf(&b, "%s %s %s\n", mark, TruncID(st.ID), title)
		}
	}

	if len(m.Updates) > 0 {
		b.WriteString("\n" + Header("Updates") + "\n")
		b.WriteString(FormatUpdates(m.Updates))
	}

	return b.String()
}

// FormatUpdates renders an activity feed, newest first.
func FormatUpdates(updates []domain.Update) string {
	var b strings.Builder
	for _, u := range updates {
		fmt.Fprintf(&b, "%s %s  %s\n", Dim(HumanTimestamp(u.LoggedAt)), UpdateTypeBadge(u.UpdateType), u.Content)
		if u.MilestoneName != "" {
			fmt.Fprintf(&b, "  %s\n", Dim(u.MilestoneName))
		}
	}
	return b.String()
}

// FormatNotifications renders the notification list.
func FormatNotifications(ns []domain.Notification) string {
	if len(ns) == 0 {
		return Dim("No notifications.")
	}
	var b strings.Builder
	for _, n := range ns {
		fmt.Fprintf(&b, "%s  %s\n", NotificationBadge(n.Type), n.Message)
		if n.MilestoneName != "" {
			fmt.Fprintf(&b, "  %s\n", Dim(fmt.Sprintf("%s › %s", n.ProjectName, n.MilestoneName)))
		}
	}
	return b.String()
}

// FormatSummaries renders past weekly summaries, newest first.
func FormatSummaries(sums []domain.Summary) string {
	var b strings.Builder
	for i, s := range sums {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s  %s %s\n", TonePill(s.Tone), Dim("week of"), s.WeekStart)
		b.WriteString(s.Content + "\n")
	}
	return b.String()
}

// FormatSearchResults renders search hits grouped by nothing in particular;
// the server already orders them by relevance.
func FormatSearchResults(rs []domain.SearchResult) string {
	if len(rs) == 0 {
		return Dim("No matches.")
	}
	rows := make([][]string, 0, len(rs))
	for _, r := range rs {
		rows = append(rows, []string{
			ResultTypeBadge(r.Type),
			Bold(r.Title),
			Dim(Truncate(r.Subtitle, 56)),
			TruncID(r.ID),
		})
	}
	return RenderTable([]string{"Type", "Title", "Context", "ID"}, rows)
}
