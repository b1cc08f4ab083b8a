package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Validation thresholds.
const (
	// MinEntrySeconds is the shortest entry worth recording.
	MinEntrySeconds = 60
	// LongSessionSeconds is the duration beyond which a description is required.
	LongSessionSeconds = 4 * 3600
	// ConfirmSessionSeconds is the duration beyond which the user must
	// explicitly confirm before the entry is accepted.
	ConfirmSessionSeconds = 12 * 3600
)

// OverlapCheck asks the authoritative store whether [start, end) collides
// with an existing entry for the user.
type OverlapCheck func(ctx context.Context, userID string, start, end time.Time) (bool, error)

// QuotaCheck asks the authoritative store whether the user may create
// another entry this month (true = may create). The numeric limit is the
// store's business; callers only see the verdict.
type QuotaCheck func(ctx context.Context, orgID, userID string) (bool, error)

// RemoteChecks bundles the two authoritative persistence checks the
// validator delegates to. Tests substitute deterministic fakes.
type RemoteChecks struct {
	Overlap      OverlapCheck
	MonthlyLimit QuotaCheck
}

// ValidateCandidate applies the entry admission rules in order, stopping at
// the first failure. A nil return means the candidate may be persisted.
// Local rules run before any remote check, so a locally invalid candidate
// never touches the store.
func ValidateCandidate(ctx context.Context, c domain.Candidate, now time.Time, checks RemoteChecks) error {
	if c.TaskID == "" && c.ProjectID == "" {
		return &domain.ValidationError{Reason: "entry must reference a task or a project"}
	}
	if !c.EndTime.After(c.StartTime) {
		return &domain.ValidationError{Reason: "end time must be after start time"}
	}
	if c.StartTime.After(now) || c.EndTime.After(now) {
		return &domain.ValidationError{Reason: "entries cannot be dated in the future"}
	}

	duration := int64(c.EndTime.Sub(c.StartTime) / time.Second)
	if duration < MinEntrySeconds {
		return &domain.ValidationError{Reason: "entries must be at least one minute long"}
	}
	if duration > LongSessionSeconds && strings.TrimSpace(c.Description) == "" {
		return &domain.ValidationError{Reason: "sessions longer than 4 hours require a description"}
	}
	if duration > ConfirmSessionSeconds && !c.Confirmed {
		return &domain.ConfirmationRequiredError{Duration: time.Duration(duration) * time.Second}
	}

	overlaps, err := checks.Overlap(ctx, c.UserID, c.StartTime, c.EndTime)
	if err != nil {
		return &domain.PersistenceError{Op: "checking overlap", Err: err}
	}
	if overlaps {
		return domain.ErrOverlap
	}

	allowed, err := checks.MonthlyLimit(ctx, c.OrgID, c.UserID)
	if err != nil {
		return &domain.PersistenceError{Op: "checking monthly limit", Err: err}
	}
	if !allowed {
		return domain.ErrQuotaExceeded
	}
	return nil
}
