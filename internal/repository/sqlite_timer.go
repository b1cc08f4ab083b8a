package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteTimerRepo persists the one timer row each user owns.
type SQLiteTimerRepo struct {
	db db.DBTX
}

// NewSQLiteTimerRepo creates a new SQLiteTimerRepo.
func NewSQLiteTimerRepo(conn db.DBTX) *SQLiteTimerRepo {
	return &SQLiteTimerRepo{db: conn}
}

func (r *SQLiteTimerRepo) Get(ctx context.Context, userID string) (*domain.Timer, error) {
	query := `SELECT user_id, org_id, mode, kind, fixed_duration_seconds,
		task_id, project_id, started_at, accumulated_seconds,
		description, billable, default_billable
		FROM timers WHERE user_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID)

	var t domain.Timer
	var mode, kind string
	var startedAt sql.NullString
	var billable, defaultBillable int
	err := row.Scan(
		&t.UserID, &t.OrgID, &mode, &kind, &t.FixedDurationSeconds,
		&t.TaskID, &t.ProjectID, &startedAt, &t.AccumulatedSeconds,
		&t.Description, &billable, &defaultBillable,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("timer: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning timer: %w", err)
	}
	t.Mode = domain.TimerMode(mode)
	t.Kind = domain.TimerKind(kind)
	t.StartedAt = parseNullableTime(startedAt, time.RFC3339)
	t.Billable = billable != 0
	t.DefaultBillable = defaultBillable != 0
	return &t, nil
}

// Save upserts the user's timer row, keeping the one-row-per-user shape.
func (r *SQLiteTimerRepo) Save(ctx context.Context, t *domain.Timer) error {
	query := `INSERT OR REPLACE INTO timers (user_id, org_id, mode, kind,
		fixed_duration_seconds, task_id, project_id, started_at,
		accumulated_seconds, description, billable, default_billable)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.UserID,
		t.OrgID,
		string(t.Mode),
		string(t.Kind),
		t.FixedDurationSeconds,
		t.TaskID,
		t.ProjectID,
		timeToNullable(t.StartedAt, time.RFC3339),
		t.AccumulatedSeconds,
		t.Description,
		boolToInt(t.Billable),
		boolToInt(t.DefaultBillable),
	)
	if err != nil {
		return fmt.Errorf("saving timer: %w", err)
	}
	return nil
}
