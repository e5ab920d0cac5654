package domain

// Summary is an immutable generated weekly status report for a project.
type Summary struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	Content     string      `json:"content"`
	Tone        SummaryTone `json:"tone"`
	WeekStart   string      `json:"week_start"`
	GeneratedAt string      `json:"generated_at"`
}

// Notification is a derived, read-only alert referencing a milestone.
type Notification struct {
	ID            string           `json:"id"`
	Type          NotificationType `json:"type"`
	Message       string           `json:"message"`
	MilestoneID   string           `json:"milestone_id"`
	ProjectID     string           `json:"project_id"`
	ProjectName   string           `json:"project_name"`
	MilestoneName string           `json:"milestone_name"`
}

type SearchResult struct {
	Type      SearchResultType `json:"type"`
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Subtitle  string           `json:"subtitle"`
	ProjectID string           `json:"project_id,omitempty"`
}
