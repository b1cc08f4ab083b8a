package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// TimeEntryRepo stores time entries and exposes the authoritative overlap
// and monthly-quota checks. Services call these checks instead of
// recomputing them; the SQL is the single source of truth.
type TimeEntryRepo interface {
	Create(ctx context.Context, e *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*domain.TimeEntry, error)
	// ListOrphaned returns the user's entries starting within
	// [weekStart, weekStart+7d) that no timesheet has claimed.
	ListOrphaned(ctx context.Context, userID string, weekStart time.Time) ([]*domain.TimeEntry, error)
	ListByTimesheet(ctx context.Context, timesheetID string) ([]*domain.TimeEntry, error)
	// CheckOverlap reports whether [start, end) intersects any existing
	// entry for the user.
	CheckOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error)
	// CheckMonthlyLimit reports whether the user may create another entry
	// this month under their plan tier (true = may create).
	CheckMonthlyLimit(ctx context.Context, orgID, userID string) (bool, error)
	Delete(ctx context.Context, id string) error
}

type TimesheetRepo interface {
	Create(ctx context.Context, ts *domain.Timesheet) error
	GetByID(ctx context.Context, id string) (*domain.Timesheet, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Timesheet, error)
	InsertEntries(ctx context.Context, timesheetID string, entryIDs []string) error
	// ComputeHours sums the member entries of a timesheet into decimal
	// total and billable hours.
	ComputeHours(ctx context.Context, timesheetID string) (total, billable float64, err error)
	UpdateHours(ctx context.Context, timesheetID string, total, billable float64, updatedAt time.Time) error
	EntryCount(ctx context.Context, timesheetID string) (int, error)
	Delete(ctx context.Context, id string) error
}

type TaskRepo interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	List(ctx context.Context) ([]*domain.Task, error)
	// RecomputeLoggedSeconds refreshes the task's logged-time aggregate
	// from its entries.
	RecomputeLoggedSeconds(ctx context.Context, taskID string) error
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, orgID string) ([]*domain.Project, error)
}

// TimerRepo persists the single per-user timer row.
type TimerRepo interface {
	Get(ctx context.Context, userID string) (*domain.Timer, error)
	Save(ctx context.Context, t *domain.Timer) error
}

type ProfileRepo interface {
	Get(ctx context.Context, userID string) (*domain.Profile, error)
	Upsert(ctx context.Context, p *domain.Profile) error
}
