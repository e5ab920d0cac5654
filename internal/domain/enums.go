package domain

type ScopeStatus string

const (
	ScopeDraft     ScopeStatus = "draft"
	ScopeConverted ScopeStatus = "converted"
	ScopeArchived  ScopeStatus = "archived"
)

// Terminal reports whether the scope can no longer be mutated by the client.
func (s ScopeStatus) Terminal() bool {
	return s == ScopeConverted || s == ScopeArchived
}

type ProjectStatus string

const (
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectArchived  ProjectStatus = "archived"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[ProjectStatus]bool{
	ProjectActive: true, ProjectOnHold: true, ProjectCompleted: true, ProjectArchived: true,
}

type MilestoneStatus string

const (
	MilestoneNotStarted MilestoneStatus = "not_started"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneBlocked    MilestoneStatus = "blocked"
)

// ValidMilestoneStatuses is the canonical set of accepted milestone status strings.
var ValidMilestoneStatuses = map[MilestoneStatus]bool{
	MilestoneNotStarted: true, MilestoneInProgress: true, MilestoneCompleted: true, MilestoneBlocked: true,
}

type UpdateType string

const (
	UpdateProgress  UpdateType = "progress"
	UpdateBlocker   UpdateType = "blocker"
	UpdateCompleted UpdateType = "completed"
	UpdateNote      UpdateType = "note"
)

// ValidUpdateTypes is the canonical set of accepted update type strings.
var ValidUpdateTypes = map[UpdateType]bool{
	UpdateProgress: true, UpdateBlocker: true, UpdateCompleted: true, UpdateNote: true,
}

type SummaryTone string

const (
	ToneTechnical SummaryTone = "technical"
	ToneExecutive SummaryTone = "executive"
)

type BudgetRange string

const (
	BudgetLow    BudgetRange = "low"
	BudgetMedium BudgetRange = "medium"
	BudgetHigh   BudgetRange = "high"
)

type TimelinePressure string

const (
	PressureASAP        TimelinePressure = "asap"
	PressureOneToThree  TimelinePressure = "1_3_months"
	PressureThreeToSix  TimelinePressure = "3_6_months"
	PressureFlexible    TimelinePressure = "flexible"
)

type RiskSeverity string

const (
	SeverityHigh   RiskSeverity = "high"
	SeverityMedium RiskSeverity = "medium"
	SeverityLow    RiskSeverity = "low"
)

type NotificationType string

const (
	NotifyDueSoon NotificationType = "due_soon"
	NotifyOverdue NotificationType = "overdue"
	NotifyBlocker NotificationType = "blocker"
)

type Health string

const (
	HealthGreen Health = "green"
	HealthAmber Health = "amber"
	HealthRed   Health = "red"
)

type SearchResultType string

const (
	ResultProject   SearchResultType = "project"
	ResultMilestone SearchResultType = "milestone"
	ResultUpdate    SearchResultType = "update"
)
