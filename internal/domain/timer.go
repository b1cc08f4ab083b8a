package domain

import "time"

// MaxDescriptionLen is the longest description accepted on a timer or entry.
const MaxDescriptionLen = 500

// Timer is the per-user in-progress time measurement. At most one timer per
// user is ever running or paused; the storage layer keeps a single row per
// user and the state machine below rejects conflicting starts.
//
// AccumulatedSeconds banks elapsed time from completed running segments.
// While running, the current segment [StartedAt, now) is added on demand by
// ElapsedSeconds and is never memoized.
type Timer struct {
	UserID string
	OrgID  string

	Mode TimerMode
	Kind TimerKind

	// FixedDurationSeconds is the focus-timer target. Informational only:
	// the timer never auto-stops.
	FixedDurationSeconds int

	TaskID    string
	ProjectID string

	StartedAt          time.Time // zero unless running
	AccumulatedSeconds int64

	Description string
	Billable    bool

	// DefaultBillable is what Reset restores Billable to, taken from the
	// user's profile at construction.
	DefaultBillable bool
}

// NewTimer returns an idle timer for the given user.
func NewTimer(userID, orgID string, defaultBillable bool) *Timer {
	return &Timer{
		UserID:          userID,
		OrgID:           orgID,
		Mode:            TimerIdle,
		Billable:        defaultBillable,
		DefaultBillable: defaultBillable,
	}
}

// Start begins (or restarts) measurement. Starting while a timer of a
// different kind is running or paused fails with ConflictError before any
// state changes. A same-kind start from paused behaves like resume; only a
// start from idle resets the accumulated time.
func (t *Timer) Start(kind TimerKind, fixedDurationSeconds int, now time.Time) error {
	if t.Mode != TimerIdle && kind != t.Kind {
		return &ConflictError{Active: t.Kind}
	}
	switch t.Mode {
	case TimerRunning:
		// Bank the open segment so no elapsed time is lost.
		t.AccumulatedSeconds += wholeSeconds(now.Sub(t.StartedAt))
	case TimerIdle:
		t.AccumulatedSeconds = 0
	}
	t.Kind = kind
	t.FixedDurationSeconds = fixedDurationSeconds
	t.Mode = TimerRunning
	t.StartedAt = now
	return nil
}

// Pause banks the current running segment and suspends measurement.
func (t *Timer) Pause(now time.Time) error {
	if t.Mode != TimerRunning {
		return &InvalidStateError{Op: "pause", Mode: t.Mode}
	}
	t.AccumulatedSeconds += wholeSeconds(now.Sub(t.StartedAt))
	t.StartedAt = time.Time{}
	t.Mode = TimerPaused
	return nil
}

// Resume restarts measurement from paused.
func (t *Timer) Resume(now time.Time) error {
	if t.Mode != TimerPaused {
		return &InvalidStateError{Op: "resume", Mode: t.Mode}
	}
	t.StartedAt = now
	t.Mode = TimerRunning
	return nil
}

// ElapsedSeconds reports total measured time as of now.
func (t *Timer) ElapsedSeconds(now time.Time) int64 {
	if t.Mode == TimerRunning {
		return t.AccumulatedSeconds + wholeSeconds(now.Sub(t.StartedAt))
	}
	return t.AccumulatedSeconds
}

// Stop finalizes the measurement into a candidate entry. The timer stays
// paused with the full measurement banked and the mutable fields (task,
// description, billable) intact: if the save step fails, the caller can
// still assign a task and stop again without losing the captured interval.
// Reset completes the cycle back to idle once the candidate has been saved
// or discarded.
func (t *Timer) Stop(now time.Time) (Candidate, error) {
	if t.Mode == TimerIdle {
		return Candidate{}, &InvalidStateError{Op: "stop", Mode: t.Mode}
	}
	elapsed := t.ElapsedSeconds(now)
	t.Mode = TimerPaused
	t.StartedAt = time.Time{}
	t.AccumulatedSeconds = elapsed

	return Candidate{
		UserID:          t.UserID,
		OrgID:           t.OrgID,
		TaskID:          t.TaskID,
		ProjectID:       t.ProjectID,
		StartTime:       now.Add(-time.Duration(elapsed) * time.Second),
		EndTime:         now,
		DurationSeconds: elapsed,
		TimerType:       t.Kind.EntryType(),
		Description:     t.Description,
		Billable:        t.Billable,
	}, nil
}

// Reset unconditionally returns the timer to its idle defaults.
func (t *Timer) Reset() {
	t.Mode = TimerIdle
	t.Kind = ""
	t.FixedDurationSeconds = 0
	t.TaskID = ""
	t.ProjectID = ""
	t.StartedAt = time.Time{}
	t.AccumulatedSeconds = 0
	t.Description = ""
	t.Billable = t.DefaultBillable
}

// SetTask assigns the task/project the measurement is charged against.
func (t *Timer) SetTask(taskID, projectID string) error {
	if t.Mode == TimerIdle {
		return &InvalidStateError{Op: "assign a task to", Mode: t.Mode}
	}
	t.TaskID = taskID
	t.ProjectID = projectID
	return nil
}

// SetDescription updates the free-form note.
func (t *Timer) SetDescription(text string) error {
	if t.Mode == TimerIdle {
		return &InvalidStateError{Op: "describe", Mode: t.Mode}
	}
	if len(text) > MaxDescriptionLen {
		return &ValidationError{Reason: "description must be 500 characters or fewer"}
	}
	t.Description = text
	return nil
}

// SetBillable updates the billable flag.
func (t *Timer) SetBillable(b bool) error {
	if t.Mode == TimerIdle {
		return &InvalidStateError{Op: "flag", Mode: t.Mode}
	}
	t.Billable = b
	return nil
}

// Active reports whether the timer is running or paused.
func (t *Timer) Active() bool {
	return t.Mode == TimerRunning || t.Mode == TimerPaused
}

func wholeSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
