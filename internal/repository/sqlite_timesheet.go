package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

const timesheetColumns = `id, org_id, user_id, week_start, week_end, status,
		total_hours, billable_hours, created_at, updated_at`

// SQLiteTimesheetRepo implements TimesheetRepo using a SQLite database.
type SQLiteTimesheetRepo struct {
	db db.DBTX
}

// NewSQLiteTimesheetRepo creates a new SQLiteTimesheetRepo.
func NewSQLiteTimesheetRepo(conn db.DBTX) *SQLiteTimesheetRepo {
	return &SQLiteTimesheetRepo{db: conn}
}

func (r *SQLiteTimesheetRepo) Create(ctx context.Context, ts *domain.Timesheet) error {
	query := `INSERT INTO timesheets (id, org_id, user_id, week_start, week_end, status,
		total_hours, billable_hours, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		ts.ID,
		ts.OrgID,
		ts.UserID,
		ts.WeekStart.UTC().Format(dateLayout),
		ts.WeekEnd.UTC().Format(dateLayout),
		string(ts.Status),
		ts.TotalHours,
		ts.BillableHours,
		ts.CreatedAt.UTC().Format(time.RFC3339),
		ts.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting timesheet: %w", err)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id = ?`
	return r.scanTimesheet(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteTimesheetRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets
		WHERE user_id = ? ORDER BY week_start DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets: %w", err)
	}
	defer rows.Close()

	var sheets []*domain.Timesheet
	for rows.Next() {
		ts, scanErr := r.scanTimesheetRow(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		sheets = append(sheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating timesheets: %w", err)
	}
	return sheets, nil
}

func (r *SQLiteTimesheetRepo) InsertEntries(ctx context.Context, timesheetID string, entryIDs []string) error {
	for _, entryID := range entryIDs {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO timesheet_entries (timesheet_id, time_entry_id) VALUES (?, ?)`,
			timesheetID, entryID,
		)
		if err != nil {
			return fmt.Errorf("associating entry %s: %w", entryID, err)
		}
	}
	return nil
}

func (r *SQLiteTimesheetRepo) ComputeHours(ctx context.Context, timesheetID string) (float64, float64, error) {
	query := `SELECT
		COALESCE(SUM(e.duration_seconds), 0),
		COALESCE(SUM(CASE WHEN e.billable = 1 THEN e.duration_seconds ELSE 0 END), 0)
		FROM time_entries e
		JOIN timesheet_entries te ON te.time_entry_id = e.id
		WHERE te.timesheet_id = ?`
	var totalSec, billableSec int64
	if err := r.db.QueryRowContext(ctx, query, timesheetID).Scan(&totalSec, &billableSec); err != nil {
		return 0, 0, fmt.Errorf("computing timesheet hours: %w", err)
	}
	return float64(totalSec) / 3600, float64(billableSec) / 3600, nil
}

func (r *SQLiteTimesheetRepo) UpdateHours(ctx context.Context, timesheetID string, total, billable float64, updatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE timesheets SET total_hours = ?, billable_hours = ?, updated_at = ? WHERE id = ?`,
		total, billable, updatedAt.UTC().Format(time.RFC3339), timesheetID,
	)
	if err != nil {
		return fmt.Errorf("updating timesheet hours: %w", err)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) EntryCount(ctx context.Context, timesheetID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM timesheet_entries WHERE timesheet_id = ?`, timesheetID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting timesheet entries: %w", err)
	}
	return count, nil
}

func (r *SQLiteTimesheetRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting timesheet: %w", err)
	}
	return nil
}

func (r *SQLiteTimesheetRepo) scanTimesheet(row *sql.Row) (*domain.Timesheet, error) {
	var ts domain.Timesheet
	var weekStartStr, weekEndStr, status, createdStr, updatedStr string

	err := row.Scan(
		&ts.ID, &ts.OrgID, &ts.UserID, &weekStartStr, &weekEndStr, &status,
		&ts.TotalHours, &ts.BillableHours, &createdStr, &updatedStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timesheet: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timesheet: %w", err)
	}
	return r.populateTimesheet(&ts, weekStartStr, weekEndStr, status, createdStr, updatedStr)
}

func (r *SQLiteTimesheetRepo) scanTimesheetRow(rows *sql.Rows) (*domain.Timesheet, error) {
	var ts domain.Timesheet
	var weekStartStr, weekEndStr, status, createdStr, updatedStr string

	err := rows.Scan(
		&ts.ID, &ts.OrgID, &ts.UserID, &weekStartStr, &weekEndStr, &status,
		&ts.TotalHours, &ts.BillableHours, &createdStr, &updatedStr,
	)
	if err != nil {
		return nil, fmt.Errorf("scanning timesheet row: %w", err)
	}
	return r.populateTimesheet(&ts, weekStartStr, weekEndStr, status, createdStr, updatedStr)
}

func (r *SQLiteTimesheetRepo) populateTimesheet(ts *domain.Timesheet, weekStartStr, weekEndStr, status, createdStr, updatedStr string) (*domain.Timesheet, error) {
	var err error
	if ts.WeekStart, err = time.Parse(dateLayout, weekStartStr); err != nil {
		return nil, fmt.Errorf("parsing week_start: %w", err)
	}
	if ts.WeekEnd, err = time.Parse(dateLayout, weekEndStr); err != nil {
		return nil, fmt.Errorf("parsing week_end: %w", err)
	}
	if ts.CreatedAt, err = time.Parse(time.RFC3339, createdStr); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if ts.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	ts.Status = domain.TimesheetStatus(status)
	return ts, nil
}
