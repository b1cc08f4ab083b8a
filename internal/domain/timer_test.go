package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)

func newRunningTimer(t *testing.T, kind TimerKind) *Timer {
	t.Helper()
	tm := NewTimer("u1", "org1", false)
	require.NoError(t, tm.Start(kind, 0, t0))
	return tm
}

func TestStart_FromIdle(t *testing.T) {
	tm := NewTimer("u1", "org1", false)
	tm.AccumulatedSeconds = 999 // stale from a previous discard path

	require.NoError(t, tm.Start(KindQuick, 0, t0))
	assert.Equal(t, TimerRunning, tm.Mode)
	assert.Equal(t, t0, tm.StartedAt)
	assert.Equal(t, int64(0), tm.AccumulatedSeconds, "idle start resets banked time")
}

func TestStart_DifferentKindWhileActive(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)

	err := tm.Start(KindFocus, 1500, t0.Add(time.Minute))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, KindQuick, conflict.Active)
	assert.Equal(t, TimerRunning, tm.Mode, "failed start must not mutate state")
	assert.Equal(t, t0, tm.StartedAt)
}

func TestStart_SameKindWhilePaused_ActsAsResume(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)
	require.NoError(t, tm.Pause(t0.Add(10*time.Minute)))

	require.NoError(t, tm.Start(KindQuick, 0, t0.Add(20*time.Minute)))
	assert.Equal(t, TimerRunning, tm.Mode)
	assert.Equal(t, int64(600), tm.AccumulatedSeconds, "banked time survives a same-kind restart")
}

func TestStart_SameKindWhileRunning_BanksOpenSegment(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)

	require.NoError(t, tm.Start(KindQuick, 0, t0.Add(5*time.Minute)))
	assert.Equal(t, int64(300), tm.AccumulatedSeconds)
	assert.Equal(t, t0.Add(5*time.Minute), tm.StartedAt)
}

func TestPause_OnlyFromRunning(t *testing.T) {
	tm := NewTimer("u1", "org1", false)
	err := tm.Pause(t0)
	var invalid *InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, TimerIdle, invalid.Mode)

	tm = newRunningTimer(t, KindQuick)
	require.NoError(t, tm.Pause(t0.Add(time.Minute)))
	require.ErrorAs(t, tm.Pause(t0.Add(2*time.Minute)), &invalid)
}

func TestResume_OnlyFromPaused(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)
	var invalid *InvalidStateError
	require.ErrorAs(t, tm.Resume(t0.Add(time.Minute)), &invalid)

	require.NoError(t, tm.Pause(t0.Add(time.Minute)))
	require.NoError(t, tm.Resume(t0.Add(2*time.Minute)))
	assert.Equal(t, TimerRunning, tm.Mode)
}

func TestPauseResume_AccumulatedNeverDecreases(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)
	now := t0
	var prev int64

	for i := 0; i < 5; i++ {
		now = now.Add(7 * time.Minute)
		require.NoError(t, tm.Pause(now))
		assert.GreaterOrEqual(t, tm.AccumulatedSeconds, prev)
		prev = tm.AccumulatedSeconds

		now = now.Add(3 * time.Minute)
		require.NoError(t, tm.Resume(now))
		assert.Equal(t, prev, tm.AccumulatedSeconds, "resume must not touch banked time")
	}
	assert.Equal(t, int64(5*7*60), tm.AccumulatedSeconds)
}

func TestElapsedSeconds_WhileRunningAndPaused(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)
	assert.Equal(t, int64(90), tm.ElapsedSeconds(t0.Add(90*time.Second)))

	require.NoError(t, tm.Pause(t0.Add(2*time.Minute)))
	assert.Equal(t, int64(120), tm.ElapsedSeconds(t0.Add(time.Hour)), "paused elapsed is frozen")
}

func TestStop_FromIdleFails(t *testing.T) {
	tm := NewTimer("u1", "org1", false)
	_, err := tm.Stop(t0)
	var invalid *InvalidStateError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, TimerIdle, invalid.Mode)
}

func TestStop_PauseResumeScenario(t *testing.T) {
	// Start at T0, pause at T0+30m, resume at T0+45m, stop at T0+75m.
	tm := newRunningTimer(t, KindQuick)
	require.NoError(t, tm.SetTask("task-1", "proj-1"))
	require.NoError(t, tm.SetDescription("design review"))
	require.NoError(t, tm.Pause(t0.Add(30*time.Minute)))
	require.NoError(t, tm.Resume(t0.Add(45*time.Minute)))

	stopAt := t0.Add(75 * time.Minute)
	cand, err := tm.Stop(stopAt)
	require.NoError(t, err)

	assert.Equal(t, int64(3600), cand.DurationSeconds, "30m + 30m of running time")
	assert.Equal(t, stopAt, cand.EndTime)
	assert.Equal(t, stopAt.Add(-time.Hour), cand.StartTime)
	assert.Equal(t, TypeQuickTimer, cand.TimerType)
	assert.Equal(t, "task-1", cand.TaskID)
	assert.Equal(t, "design review", cand.Description)

	assert.Equal(t, TimerPaused, tm.Mode, "stop holds the timer until save or discard")
	assert.Equal(t, "design review", tm.Description, "mutable fields survive stop for the save step")
}

func TestStop_RetryAfterFailedSave(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)
	cand, err := tm.Stop(t0.Add(30 * time.Minute))
	require.NoError(t, err)
	require.Equal(t, int64(1800), cand.DurationSeconds)

	// The save was rejected (say, no task attached). The stopped timer must
	// still accept a task and a second stop with the measurement intact.
	require.NoError(t, tm.SetTask("task-1", "proj-1"))
	retry, err := tm.Stop(t0.Add(40 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1800), retry.DurationSeconds, "the captured interval is unchanged")
	assert.Equal(t, "task-1", retry.TaskID)
	assert.Equal(t, t0.Add(40*time.Minute), retry.EndTime)
	assert.Equal(t, retry.EndTime.Add(-30*time.Minute), retry.StartTime)
}

func TestStop_FocusTimerProvenance(t *testing.T) {
	tm := NewTimer("u1", "org1", false)
	require.NoError(t, tm.Start(KindFocus, 1500, t0))
	cand, err := tm.Stop(t0.Add(25 * time.Minute))
	require.NoError(t, err)
	assert.Equal(t, TypePomodoroFocus, cand.TimerType)
}

func TestReset_ClearsEverything(t *testing.T) {
	tm := NewTimer("u1", "org1", true)
	require.NoError(t, tm.Start(KindQuick, 0, t0))
	require.NoError(t, tm.SetTask("task-1", "proj-1"))
	require.NoError(t, tm.SetDescription("notes"))
	require.NoError(t, tm.SetBillable(false))
	_, err := tm.Stop(t0.Add(time.Hour))
	require.NoError(t, err)

	tm.Reset()
	assert.Equal(t, TimerIdle, tm.Mode)
	assert.Equal(t, int64(0), tm.AccumulatedSeconds)
	assert.Empty(t, tm.TaskID)
	assert.Empty(t, tm.ProjectID)
	assert.Empty(t, tm.Description)
	assert.True(t, tm.Billable, "billable returns to the profile default")
}

func TestSetters_RejectedWhileIdle(t *testing.T) {
	tm := NewTimer("u1", "org1", false)
	var invalid *InvalidStateError
	require.ErrorAs(t, tm.SetTask("t", "p"), &invalid)
	require.ErrorAs(t, tm.SetDescription("x"), &invalid)
	require.ErrorAs(t, tm.SetBillable(true), &invalid)
}

func TestSetDescription_LengthLimit(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)

	long := make([]byte, MaxDescriptionLen+1)
	for i := range long {
		long[i] = 'a'
	}
	err := tm.SetDescription(string(long))
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	require.NoError(t, tm.SetDescription(string(long[:MaxDescriptionLen])))
}

func TestConflictError_IsNotInvalidState(t *testing.T) {
	tm := newRunningTimer(t, KindQuick)
	err := tm.Start(KindFocus, 0, t0.Add(time.Minute))
	var invalid *InvalidStateError
	assert.False(t, errors.As(err, &invalid))
}
