package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/domain"
)

// SQLiteProfileRepo implements ProfileRepo using a SQLite database.
type SQLiteProfileRepo struct {
	db db.DBTX
}

// NewSQLiteProfileRepo creates a new SQLiteProfileRepo.
func NewSQLiteProfileRepo(conn db.DBTX) *SQLiteProfileRepo {
	return &SQLiteProfileRepo{db: conn}
}

func (r *SQLiteProfileRepo) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, org_id, plan, default_billable FROM profiles WHERE user_id = ?`, userID)

	var p domain.Profile
	var plan string
	var defaultBillable int
	err := row.Scan(&p.UserID, &p.OrgID, &plan, &defaultBillable)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("profile: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning profile: %w", err)
	}
	p.Plan = domain.PlanTier(plan)
	p.DefaultBillable = defaultBillable != 0
	return &p, nil
}

func (r *SQLiteProfileRepo) Upsert(ctx context.Context, p *domain.Profile) error {
	query := `INSERT OR REPLACE INTO profiles (user_id, org_id, plan, default_billable)
		VALUES (?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.UserID, p.OrgID, string(p.Plan), boolToInt(p.DefaultBillable),
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}
