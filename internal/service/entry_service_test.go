package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manualCandidate(taskID string, start time.Time, d time.Duration) domain.Candidate {
	return domain.Candidate{
		UserID:      "u1",
		OrgID:       "org1",
		TaskID:      taskID,
		StartTime:   start,
		EndTime:     start.Add(d),
		TimerType:   domain.TypeManual,
		Description: "work",
	}
}

func TestLog_PersistsEntryAndRecomputesTaskHours(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedCatalog(t)
	ctx := context.Background()

	svc := NewEntryService(env.entries, env.tasks, env.uow)

	entry, err := svc.Log(ctx, manualCandidate(task.ID, testutil.FixtureNow.Add(-3*time.Hour), 90*time.Minute))
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)
	assert.Equal(t, int64(5400), entry.DurationSeconds)

	stored, err := env.entries.GetByID(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TypeManual, stored.TimerType)

	updated, err := env.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5400), updated.LoggedSeconds, "task aggregate refreshed after save")
}

func TestLog_RejectsOverlapViaStoreCheck(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedCatalog(t)
	ctx := context.Background()

	svc := NewEntryService(env.entries, env.tasks, env.uow)

	start := testutil.FixtureNow.Add(-5 * time.Hour)
	_, err := svc.Log(ctx, manualCandidate(task.ID, start, time.Hour))
	require.NoError(t, err)

	// Second entry starting halfway through the first.
	_, err = svc.Log(ctx, manualCandidate(task.ID, start.Add(30*time.Minute), time.Hour))
	assert.ErrorIs(t, err, domain.ErrOverlap)

	// Back-to-back is fine: intervals are half-open.
	_, err = svc.Log(ctx, manualCandidate(task.ID, start.Add(time.Hour), time.Hour))
	require.NoError(t, err)
}

func TestLog_ValidationFailureLeavesNoEffects(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedCatalog(t)
	ctx := context.Background()

	svc := NewEntryService(env.entries, env.tasks, env.uow)

	c := manualCandidate(task.ID, testutil.FixtureNow.Add(-time.Hour), 30*time.Second)
	_, err := svc.Log(ctx, c)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)

	entries, err := env.entries.ListByUser(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	unchanged, err := env.tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Zero(t, unchanged.LoggedSeconds, "rejected candidate must not touch aggregates")
}

func TestLog_QuotaVerdictFromInjectedCheck(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedCatalog(t)
	ctx := context.Background()

	checks := &countingChecks{allowed: false}
	svc := NewEntryServiceWithChecks(env.entries, env.tasks, env.uow, checks.remote())

	_, err := svc.Log(ctx, manualCandidate(task.ID, testutil.FixtureNow.Add(-time.Hour), time.Hour))
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
	assert.Equal(t, 1, checks.quotaCalls)

	entries, lerr := env.entries.ListByUser(ctx, "u1", 10)
	require.NoError(t, lerr)
	assert.Empty(t, entries, "quota rejection persists nothing")
}

func TestLog_ConfirmationFlow(t *testing.T) {
	env := newTestEnv(t)
	task := env.seedCatalog(t)
	ctx := context.Background()

	svc := NewEntryService(env.entries, env.tasks, env.uow)

	c := manualCandidate(task.ID, testutil.FixtureNow.Add(-14*time.Hour), 13*time.Hour)
	c.Description = "release marathon"

	_, err := svc.Log(ctx, c)
	var confirm *domain.ConfirmationRequiredError
	require.ErrorAs(t, err, &confirm)

	c.Confirmed = true
	entry, err := svc.Log(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, int64(13*3600), entry.DurationSeconds)
}
