package domain

import "time"

// Candidate is a proposed time entry awaiting validation. It is produced by
// Timer.Stop or assembled directly for a manual log; both paths feed the
// same validator.
type Candidate struct {
	UserID    string
	OrgID     string
	TaskID    string
	ProjectID string

	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds int64

	TimerType   TimerType
	Description string
	Billable    bool

	// Confirmed records that the user explicitly approved an unusually long
	// session after being asked.
	Confirmed bool
}

// TimeEntry is a persisted unit of tracked work, owned by a user within an
// organization. DurationSeconds always equals EndTime − StartTime truncated
// to whole seconds. An entry is "orphaned" until a timesheet association
// row claims it.
type TimeEntry struct {
	ID        string
	OrgID     string
	UserID    string
	TaskID    string
	ProjectID string

	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds int64

	TimerType   TimerType
	Description string
	Billable    bool

	CreatedAt time.Time
}

// Hours reports the duration in decimal hours.
func (e *TimeEntry) Hours() float64 {
	return float64(e.DurationSeconds) / 3600
}

// Entry materializes the candidate as a TimeEntry. The ID is assigned by
// the caller.
func (c Candidate) Entry(createdAt time.Time) *TimeEntry {
	return &TimeEntry{
		OrgID:           c.OrgID,
		UserID:          c.UserID,
		TaskID:          c.TaskID,
		ProjectID:       c.ProjectID,
		StartTime:       c.StartTime,
		EndTime:         c.EndTime,
		DurationSeconds: wholeSeconds(c.EndTime.Sub(c.StartTime)),
		TimerType:       c.TimerType,
		Description:     c.Description,
		Billable:        c.Billable,
		CreatedAt:       createdAt,
	}
}
