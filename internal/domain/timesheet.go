package domain

import "time"

// Timesheet is one user's consolidated week of entries, Monday through
// Sunday inclusive. TotalHours and BillableHours are derived from member
// entries and written back by the hours-recomputation procedure; they are
// never edited by hand.
type Timesheet struct {
	ID     string
	OrgID  string
	UserID string

	WeekStart time.Time
	WeekEnd   time.Time
	Status    TimesheetStatus

	TotalHours    float64
	BillableHours float64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimesheetEntry links a timesheet to exactly one time entry. A time entry
// belongs to at most one timesheet.
type TimesheetEntry struct {
	TimesheetID string
	TimeEntryID string
}

// WeekStartOf returns the Monday 00:00 UTC of the week containing t.
func WeekStartOf(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7 // Monday=0 ... Sunday=6
	return day.AddDate(0, 0, -offset)
}

// WeekEndOf returns the Sunday of the week starting at weekStart.
func WeekEndOf(weekStart time.Time) time.Time {
	return weekStart.AddDate(0, 0, 6)
}
