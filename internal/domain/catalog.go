package domain

import "time"

// Task is a catalog item entries are charged against. LoggedSeconds is an
// aggregate maintained by the storage layer's recompute procedure, not by
// callers.
type Task struct {
	ID            string
	ProjectID     string
	Code          string
	Title         string
	LoggedSeconds int64
	CreatedAt     time.Time
}

// Project is a client or category grouping tasks.
type Project struct {
	ID        string
	OrgID     string
	Name      string
	Client    string
	CreatedAt time.Time
}

// Profile carries the per-user organization context and plan tier. The plan
// determines the monthly entry quota; the core only ever sees the boolean
// verdict of the quota check.
type Profile struct {
	UserID          string
	OrgID           string
	Plan            PlanTier
	DefaultBillable bool
}

// DisplayRef returns the best short reference for a task.
func (t *Task) DisplayRef() string {
	if t.Code != "" {
		return t.Code
	}
	if len(t.ID) >= 8 {
		return t.ID[:8]
	}
	return t.ID
}
