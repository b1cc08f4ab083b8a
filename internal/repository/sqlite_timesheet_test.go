package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimesheet(weekStart time.Time) *domain.Timesheet {
	return &domain.Timesheet{
		ID:        uuid.New().String(),
		OrgID:     "org1",
		UserID:    "u1",
		WeekStart: weekStart,
		WeekEnd:   weekStart.AddDate(0, 0, 6),
		Status:    domain.TimesheetDraft,
		CreatedAt: testutil.FixtureNow,
		UpdatedAt: testutil.FixtureNow,
	}
}

func TestTimesheetRepo_CreateAndGet(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	ts := newTestTimesheet(monday)
	require.NoError(t, r.sheets.Create(ctx, ts))

	got, err := r.sheets.GetByID(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, monday, got.WeekStart)
	assert.Equal(t, monday.AddDate(0, 0, 6), got.WeekEnd)
	assert.Equal(t, domain.TimesheetDraft, got.Status)
	assert.Zero(t, got.TotalHours)
}

func TestTimesheetRepo_GetMissingIsNotFound(t *testing.T) {
	r := newRepos(t)
	_, err := r.sheets.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTimesheetRepo_OneSheetPerUserWeek(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	require.NoError(t, r.sheets.Create(ctx, newTestTimesheet(monday)))
	require.Error(t, r.sheets.Create(ctx, newTestTimesheet(monday)),
		"duplicate user/week violates the unique constraint")

	// Other weeks and other users are fine.
	require.NoError(t, r.sheets.Create(ctx, newTestTimesheet(monday.AddDate(0, 0, 7))))
	other := newTestTimesheet(monday)
	other.UserID = "u2"
	require.NoError(t, r.sheets.Create(ctx, other))
}

func TestTimesheetRepo_EntryBelongsToOneSheet(t *testing.T) {
	r := newRepos(t)
	task := r.seedTask(t)
	ctx := context.Background()
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	entry := testutil.NewTestEntry(task.ID, testutil.WithStart(monday.Add(9*time.Hour)))
	require.NoError(t, r.entries.Create(ctx, entry))

	first := newTestTimesheet(monday)
	require.NoError(t, r.sheets.Create(ctx, first))
	require.NoError(t, r.sheets.InsertEntries(ctx, first.ID, []string{entry.ID}))

	second := newTestTimesheet(monday.AddDate(0, 0, 7))
	require.NoError(t, r.sheets.Create(ctx, second))
	require.Error(t, r.sheets.InsertEntries(ctx, second.ID, []string{entry.ID}),
		"an entry cannot be claimed twice")
}

func TestTimesheetRepo_ComputeHoursMixedBillable(t *testing.T) {
	r := newRepos(t)
	task := r.seedTask(t)
	ctx := context.Background()
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	billable := testutil.NewTestEntry(task.ID,
		testutil.WithStart(monday.Add(9*time.Hour)),
		testutil.WithDuration(5400),
		testutil.WithBillable(true),
	)
	internal := testutil.NewTestEntry(task.ID,
		testutil.WithStart(monday.Add(14*time.Hour)),
		testutil.WithDuration(1800),
	)
	require.NoError(t, r.entries.Create(ctx, billable))
	require.NoError(t, r.entries.Create(ctx, internal))

	ts := newTestTimesheet(monday)
	require.NoError(t, r.sheets.Create(ctx, ts))
	require.NoError(t, r.sheets.InsertEntries(ctx, ts.ID, []string{billable.ID, internal.ID}))

	total, billableHours, err := r.sheets.ComputeHours(ctx, ts.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, total, 0.0001)
	assert.InDelta(t, 1.5, billableHours, 0.0001)

	count, err := r.sheets.EntryCount(ctx, ts.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTimesheetRepo_ComputeHoursEmptySheetIsZero(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	ts := newTestTimesheet(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, r.sheets.Create(ctx, ts))

	total, billable, err := r.sheets.ComputeHours(ctx, ts.ID)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Zero(t, billable)
}

func TestTimesheetRepo_UpdateHours(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()

	ts := newTestTimesheet(time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC))
	require.NoError(t, r.sheets.Create(ctx, ts))

	updatedAt := testutil.FixtureNow.Add(time.Minute)
	require.NoError(t, r.sheets.UpdateHours(ctx, ts.ID, 2.0, 1.5, updatedAt))

	got, err := r.sheets.GetByID(ctx, ts.ID)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, got.TotalHours, 0.0001)
	assert.InDelta(t, 1.5, got.BillableHours, 0.0001)
	assert.Equal(t, updatedAt, got.UpdatedAt)
}

func TestTimesheetRepo_ListByUserNewestWeekFirst(t *testing.T) {
	r := newRepos(t)
	ctx := context.Background()
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	older := newTestTimesheet(monday.AddDate(0, 0, -7))
	newer := newTestTimesheet(monday)
	require.NoError(t, r.sheets.Create(ctx, older))
	require.NoError(t, r.sheets.Create(ctx, newer))

	got, err := r.sheets.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
}

func TestTimesheetRepo_DeleteCascadesAssociations(t *testing.T) {
	r := newRepos(t)
	task := r.seedTask(t)
	ctx := context.Background()
	monday := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	entry := testutil.NewTestEntry(task.ID, testutil.WithStart(monday.Add(9*time.Hour)))
	require.NoError(t, r.entries.Create(ctx, entry))

	ts := newTestTimesheet(monday)
	require.NoError(t, r.sheets.Create(ctx, ts))
	require.NoError(t, r.sheets.InsertEntries(ctx, ts.ID, []string{entry.ID}))

	require.NoError(t, r.sheets.Delete(ctx, ts.ID))

	var assocCount int
	require.NoError(t, r.db.QueryRow(`SELECT COUNT(*) FROM timesheet_entries`).Scan(&assocCount))
	assert.Zero(t, assocCount, "association rows go with the sheet")

	// The entry itself survives and becomes orphaned again.
	orphans, err := r.entries.ListOrphaned(ctx, "u1", monday)
	require.NoError(t, err)
	require.Len(t, orphans, 1)
	assert.Equal(t, entry.ID, orphans[0].ID)
}
