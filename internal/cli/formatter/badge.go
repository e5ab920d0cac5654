package formatter

import (
	"strings"

	"github.com/avelise/scopeflow/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// ScopeStatusPill returns a colored status indicator for a scope.
func ScopeStatusPill(status domain.ScopeStatus) string {
	switch status {
	case domain.ScopeDraft:
		return StyleYellow.Render("◐ Draft")
	case domain.ScopeConverted:
		return StyleGreen.Render("✔ Converted")
	case domain.ScopeArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// ProjectStatusPill returns a colored status indicator for a project.
func ProjectStatusPill(status domain.ProjectStatus) string {
	switch status {
	case domain.ProjectActive:
		return StyleGreen.Render("● Active")
	case domain.ProjectOnHold:
		return StyleYellow.Render("○ On Hold")
	case domain.ProjectCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.ProjectArchived:
		return StyleDim.Render("✖ Archived")
	default:
		return StyleDim.Render(string(status))
	}
}

// MilestoneStatusPill returns a colored status indicator for a milestone.
func MilestoneStatusPill(status domain.MilestoneStatus) string {
	switch status {
	case domain.MilestoneNotStarted:
		return StyleBlue.Render("○ Not Started")
	case domain.MilestoneInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.MilestoneCompleted:
		return StyleDim.Render("✔ Completed")
	case domain.MilestoneBlocked:
		return StyleRed.Render("▲ Blocked")
	default:
		return StyleDim.Render(string(status))
	}
}

// HealthDot returns the colored rollup health indicator on a project card.
func HealthDot(h domain.Health) string {
	switch h {
	case domain.HealthGreen:
		return StyleGreen.Render("●")
	case domain.HealthAmber:
		return StyleYellow.Render("●")
	case domain.HealthRed:
		return StyleRed.Render("●")
	default:
		return StyleDim.Render("●")
	}
}

// SeverityPill returns a colored label for a scope risk severity.
func SeverityPill(sev domain.RiskSeverity) string {
	switch sev {
	case domain.SeverityHigh:
		return StyleRed.Render("HIGH")
	case domain.SeverityMedium:
		return StyleYellow.Render("MEDIUM")
	case domain.SeverityLow:
		return StyleGreen.Render("LOW")
	default:
		return StyleDim.Render(strings.ToUpper(string(sev)))
	}
}

// UpdateTypeBadge returns a colored label for an activity feed entry type.
func UpdateTypeBadge(t domain.UpdateType) string {
	switch t {
	case domain.UpdateProgress:
		return StyleBlue.Render("progress")
	case domain.UpdateBlocker:
		return StyleRed.Render("blocker")
	case domain.UpdateCompleted:
		return StyleGreen.Render("completed")
	case domain.UpdateNote:
		return StyleDim.Render("note")
	default:
		return StyleDim.Render(string(t))
	}
}

// NotificationBadge returns a colored label for a notification type.
func NotificationBadge(t domain.NotificationType) string {
	switch t {
	case domain.NotifyOverdue:
		return StyleRed.Render("⚠ overdue")
	case domain.NotifyDueSoon:
		return StyleYellow.Render("◷ due soon")
	case domain.NotifyBlocker:
		return StyleRed.Render("▲ blocker")
	default:
		return StyleDim.Render(string(t))
	}
}

// TonePill returns a colored label for a summary tone.
func TonePill(tone domain.SummaryTone) string {
	switch tone {
	case domain.ToneExecutive:
		return StylePurple.Render("executive")
	case domain.ToneTechnical:
		return StyleBlue.Render("technical")
	default:
		return StyleDim.Render(string(tone))
	}
}

// ResultTypeBadge returns a colored label for a search result type.
func ResultTypeBadge(t domain.SearchResultType) string {
	switch t {
	case domain.ResultProject:
		return StylePurple.Render("project")
	case domain.ResultMilestone:
		return StyleBlue.Render("milestone")
	case domain.ResultUpdate:
		return StyleDim.Render("update")
	default:
		return StyleDim.Render(string(t))
	}
}

// AvatarSwatch renders a member initial on their avatar color.
func AvatarSwatch(m domain.MemberAvatar) string {
	initial := "?"
	if m.Name != "" {
		initial = strings.ToUpper(m.Name[:1])
	}
	style := lipgloss.NewStyle().Foreground(ColorFg)
	if m.AvatarColor != "" {
		style = style.Background(lipgloss.Color(m.AvatarColor))
	}
	return style.Render(initial)
}
