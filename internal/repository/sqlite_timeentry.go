package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// baseMonthlyEntryLimit is the entry cap per calendar month on the base
// plan. Pro plans are unlimited.
const baseMonthlyEntryLimit = 50

// timeEntryColumns is the canonical SELECT column list for time_entries.
const timeEntryColumns = `id, org_id, user_id, task_id, project_id,
		start_time, end_time, duration_seconds, timer_type, description, billable, created_at`

// SQLiteTimeEntryRepo implements TimeEntryRepo using a SQLite database.
type SQLiteTimeEntryRepo struct {
	db db.DBTX
}

// NewSQLiteTimeEntryRepo creates a new SQLiteTimeEntryRepo.
func NewSQLiteTimeEntryRepo(conn db.DBTX) *SQLiteTimeEntryRepo {
	return &SQLiteTimeEntryRepo{db: conn}
}

func (r *SQLiteTimeEntryRepo) Create(ctx context.Context, e *domain.TimeEntry) error {
	query := `INSERT INTO time_entries (id, org_id, user_id, task_id, project_id,
		start_time, end_time, duration_seconds, timer_type, description, billable, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.OrgID,
		e.UserID,
		e.TaskID,
		e.ProjectID,
		e.StartTime.UTC().Format(time.RFC3339),
		e.EndTime.UTC().Format(time.RFC3339),
		e.DurationSeconds,
		string(e.TimerType),
		e.Description,
		boolToInt(e.Billable),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries WHERE id = ?`
	return r.scanEntry(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTimeEntryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE user_id = ? ORDER BY start_time DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing time entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteTimeEntryRepo) ListOrphaned(ctx context.Context, userID string, weekStart time.Time) ([]*domain.TimeEntry, error) {
	weekStart = weekStart.UTC()
	weekEndExcl := weekStart.AddDate(0, 0, 7)
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries e
		WHERE e.user_id = ?
		  AND e.start_time >= ?
		  AND e.start_time < ?
		  AND NOT EXISTS (
			SELECT 1 FROM timesheet_entries te WHERE te.time_entry_id = e.id
		  )
		ORDER BY e.start_time`
	rows, err := r.db.QueryContext(ctx, query, userID,
		weekStart.Format(time.RFC3339), weekEndExcl.Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing orphaned entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteTimeEntryRepo) ListByTimesheet(ctx context.Context, timesheetID string) ([]*domain.TimeEntry, error) {
	query := `SELECT ` + timeEntryColumns + ` FROM time_entries
		WHERE id IN (SELECT time_entry_id FROM timesheet_entries WHERE timesheet_id = ?)
		ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query, timesheetID)
	if err != nil {
		return nil, fmt.Errorf("listing timesheet entries: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteTimeEntryRepo) CheckOverlap(ctx context.Context, userID string, start, end time.Time) (bool, error) {
	// Half-open intervals: [a, b) and [c, d) overlap when a < d && c < b.
	query := `SELECT EXISTS (
		SELECT 1 FROM time_entries
		WHERE user_id = ? AND start_time < ? AND end_time > ?
	)`
	var overlaps bool
	err := r.db.QueryRowContext(ctx, query, userID,
		end.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339),
	).Scan(&overlaps)
	if err != nil {
		return false, fmt.Errorf("checking overlap: %w", err)
	}
	return overlaps, nil
}

func (r *SQLiteTimeEntryRepo) CheckMonthlyLimit(ctx context.Context, orgID, userID string) (bool, error) {
	var plan string
	err := r.db.QueryRowContext(ctx,
		`SELECT plan FROM profiles WHERE user_id = ?`, userID,
	).Scan(&plan)
	if err != nil && err != sql.ErrNoRows {
		return false, fmt.Errorf("reading plan tier: %w", err)
	}
	if domain.PlanTier(plan) == domain.PlanPro {
		return true, nil
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	var count int
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM time_entries
		 WHERE org_id = ? AND user_id = ? AND start_time >= ?`,
		orgID, userID, monthStart.Format(time.RFC3339),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("counting monthly entries: %w", err)
	}
	return count < baseMonthlyEntryLimit, nil
}

func (r *SQLiteTimeEntryRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting time entry: %w", err)
	}
	return nil
}

func (r *SQLiteTimeEntryRepo) scanEntry(row *sql.Row) (*domain.TimeEntry, error) {
	var e domain.TimeEntry
	var startStr, endStr, createdStr, timerType string
	var billable int

	err := row.Scan(
		&e.ID, &e.OrgID, &e.UserID, &e.TaskID, &e.ProjectID,
		&startStr, &endStr, &e.DurationSeconds, &timerType, &e.Description, &billable, &createdStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time entry: %w", err)
	}
	return r.populateEntry(&e, startStr, endStr, createdStr, timerType, billable)
}

func (r *SQLiteTimeEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.TimeEntry, error) {
	var entries []*domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		var startStr, endStr, createdStr, timerType string
		var billable int

		err := rows.Scan(
			&e.ID, &e.OrgID, &e.UserID, &e.TaskID, &e.ProjectID,
			&startStr, &endStr, &e.DurationSeconds, &timerType, &e.Description, &billable, &createdStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning time entry row: %w", err)
		}
		entry, parseErr := r.populateEntry(&e, startStr, endStr, createdStr, timerType, billable)
		if parseErr != nil {
			return nil, parseErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating time entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteTimeEntryRepo) populateEntry(e *domain.TimeEntry, startStr, endStr, createdStr, timerType string, billable int) (*domain.TimeEntry, error) {
	var err error
	if e.StartTime, err = time.Parse(time.RFC3339, startStr); err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	if e.EndTime, err = time.Parse(time.RFC3339, endStr); err != nil {
		return nil, fmt.Errorf("parsing end_time: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	e.TimerType = domain.TimerType(timerType)
	e.Billable = billable != 0
	return e, nil
}
