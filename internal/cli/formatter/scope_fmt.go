package formatter

import (
	"fmt"
	"strings"

	"github.com/avelise/scopeflow/internal/domain"
)

// FormatScopeList renders the saved-scope table.
func FormatScopeList(scopes []domain.ScopeListItem) string {
	rows := make([][]string, 0, len(scopes))
	for _, s := range scopes {
		rows = append(rows, []string{
			TruncID(s.ID),
			Bold(s.ProductName),
			Truncate(s.IdeaText, 48),
			ScopeStatusPill(s.Status),
			Dim(HumanDate(s.CreatedAt)),
		})
	}
	return RenderTable([]string{"ID", "Product", "Idea", "Status", "Created"}, rows)
}

// FormatScope renders a full scope breakdown: epics with their stories,
// risks, suggested stack and the timeline estimate.
func FormatScope(s *domain.Scope) string {
	var b strings.Builder

	b.WriteString(Header(s.ProductName))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", ScopeStatusPill(s.Status), TruncID(s.ID))
	if s.TargetAudience != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Audience:"), s.TargetAudience)
	}
	fmt.Fprintf(&b, "%s %d weeks  %s %d days total\n",
		Dim("Timeline:"), s.TimelineWeeks, Dim("Effort:"), s.TotalEffortDays())

	if len(s.SuggestedStack) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Stack:"), StylePurple.Render(strings.Join(s.SuggestedStack, ", ")))
	}

	b.WriteString("\n" + Header("Epics") + "\n")
	for i, e := range s.Epics {
		fmt.Fprintf(&b, "%s %s %s\n",
			StyleHeader.Render(fmt.Sprintf("%d.", i+1)),
			Bold(e.Name),
			Dim(fmt.Sprintf("(%dd)", e.EffortDays)))
		if e.Description != "" {
			fmt.Fprintf(&b, "   %s\n", Dim(e.Description))
		}
		for _, st := range e.UserStories {
			mark := StyleDim.Render("○")
			if st.IsCompleted {
				mark = StyleGreen.Render("✔")
			}
			fmt.Fprintf(&b, "   %s %s\n", mark, st.Title)
		}
	}

	if len(s.Risks) > 0 {
		b.WriteString("\n" + Header("Risks") + "\n")
		for _, r := range s.Risks {
			fmt.Fprintf(&b, "%s  %s\n", SeverityPill(r.Severity), r.Description)
		}
	}

	return b.String()
}
