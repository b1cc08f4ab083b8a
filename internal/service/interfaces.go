package service

import (
	"context"
	"iter"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// TimerService drives the per-user timer state machine, persisting each
// transition so separate CLI invocations share one timer.
type TimerService interface {
	Start(ctx context.Context, userID string, kind domain.TimerKind, fixedDurationSeconds int) (*domain.Timer, error)
	Pause(ctx context.Context, userID string) (*domain.Timer, error)
	Resume(ctx context.Context, userID string) (*domain.Timer, error)
	// Stop finalizes the measurement and returns the candidate entry; the
	// timer goes idle but keeps its fields until Discard or a successful save.
	Stop(ctx context.Context, userID string) (domain.Candidate, error)
	// Discard resets the timer to idle defaults.
	Discard(ctx context.Context, userID string) error
	Status(ctx context.Context, userID string) (*domain.Timer, error)
	SetTask(ctx context.Context, userID, taskID string) (*domain.Timer, error)
	SetDescription(ctx context.Context, userID, text string) (*domain.Timer, error)
	SetBillable(ctx context.Context, userID string, billable bool) (*domain.Timer, error)
}

// EntryService persists validated time entries. Both the manual log flow
// and the timer save flow go through Log, and through the same validator.
type EntryService interface {
	Log(ctx context.Context, c domain.Candidate) (*domain.TimeEntry, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]*domain.TimeEntry, error)
}

// EligibleEntry is an orphaned entry with its task reference resolved for
// display.
type EligibleEntry struct {
	Entry     *domain.TimeEntry
	TaskCode  string
	TaskTitle string
}

// TimesheetService consolidates orphaned entries into weekly timesheets.
type TimesheetService interface {
	// ListEligibleEntries yields the user's orphaned entries for the week
	// of weekStart. The sequence is finite and single-pass; callers
	// materialize it.
	ListEligibleEntries(ctx context.Context, userID string, weekStart time.Time) iter.Seq2[EligibleEntry, error]
	Create(ctx context.Context, userID, orgID string, weekStart time.Time, selectedEntryIDs []string) (*domain.Timesheet, error)
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Timesheet, error)
	Entries(ctx context.Context, timesheetID string) ([]*domain.TimeEntry, error)
}
