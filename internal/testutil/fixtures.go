package testutil

import (
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/google/uuid"
)

// FixtureNow is the reference instant fixtures are anchored to.
var FixtureNow = time.Date(2025, 6, 18, 12, 0, 0, 0, time.UTC)

// Project options

type ProjectOption func(*domain.Project)

func WithClient(client string) ProjectOption {
	return func(p *domain.Project) {
		p.Client = client
	}
}

// NewTestProject creates a project for org "org1".
func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		ID:        uuid.New().String(),
		OrgID:     "org1",
		Name:      name,
		CreatedAt: FixtureNow,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Task options

type TaskOption func(*domain.Task)

func WithCode(code string) TaskOption {
	return func(t *domain.Task) {
		t.Code = code
	}
}

func NewTestTask(projectID, title string, opts ...TaskOption) *domain.Task {
	t := &domain.Task{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Title:     title,
		CreatedAt: FixtureNow,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TimeEntry options

type EntryOption func(*domain.TimeEntry)

func WithStart(start time.Time) EntryOption {
	return func(e *domain.TimeEntry) {
		e.StartTime = start
		e.EndTime = start.Add(time.Duration(e.DurationSeconds) * time.Second)
	}
}

func WithDuration(seconds int64) EntryOption {
	return func(e *domain.TimeEntry) {
		e.DurationSeconds = seconds
		e.EndTime = e.StartTime.Add(time.Duration(seconds) * time.Second)
	}
}

func WithUser(userID string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.UserID = userID
	}
}

func WithBillable(b bool) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Billable = b
	}
}

func WithTimerType(tt domain.TimerType) EntryOption {
	return func(e *domain.TimeEntry) {
		e.TimerType = tt
	}
}

func WithEntryDescription(desc string) EntryOption {
	return func(e *domain.TimeEntry) {
		e.Description = desc
	}
}

// NewTestEntry creates a one-hour entry for user "u1" in org "org1",
// starting two hours before FixtureNow. Options adjust from there.
func NewTestEntry(taskID string, opts ...EntryOption) *domain.TimeEntry {
	start := FixtureNow.Add(-2 * time.Hour)
	e := &domain.TimeEntry{
		ID:              uuid.New().String(),
		OrgID:           "org1",
		UserID:          "u1",
		TaskID:          taskID,
		StartTime:       start,
		EndTime:         start.Add(time.Hour),
		DurationSeconds: 3600,
		TimerType:       domain.TypeManual,
		CreatedAt:       FixtureNow,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestProfile creates a base-plan profile for user "u1" in org "org1".
func NewTestProfile(plan domain.PlanTier) *domain.Profile {
	return &domain.Profile{
		UserID: "u1",
		OrgID:  "org1",
		Plan:   plan,
	}
}
