package domain

type TimerMode string

const (
	TimerIdle    TimerMode = "idle"
	TimerRunning TimerMode = "running"
	TimerPaused  TimerMode = "paused"
)

type TimerKind string

const (
	KindQuick TimerKind = "quick"
	KindFocus TimerKind = "focus"
)

// TimerType tags a time entry with its provenance.
type TimerType string

const (
	TypeManual        TimerType = "manual"
	TypeQuickTimer    TimerType = "quick_timer"
	TypePomodoroFocus TimerType = "pomodoro_focus"
)

// EntryType returns the provenance tag for entries produced by this timer kind.
func (k TimerKind) EntryType() TimerType {
	if k == KindFocus {
		return TypePomodoroFocus
	}
	return TypeQuickTimer
}

type TimesheetStatus string

const (
	TimesheetDraft     TimesheetStatus = "draft"
	TimesheetSubmitted TimesheetStatus = "submitted"
	TimesheetApproved  TimesheetStatus = "approved"
)

type PlanTier string

const (
	PlanBase PlanTier = "base"
	PlanPro  PlanTier = "pro"
)

// ValidTimerKinds is the canonical set of accepted timer kind strings.
var ValidTimerKinds = map[string]bool{
	"quick": true, "focus": true,
}
