package domain

import (
	"errors"
	"fmt"
	"time"
)

// Business-rule rejections originating from the authoritative persistence checks.
var (
	ErrOverlap        = errors.New("entry overlaps an existing time entry")
	ErrQuotaExceeded  = errors.New("monthly entry limit reached (upgrade your plan to raise it)")
	ErrEmptySelection = errors.New("at least one entry must be selected")
)

// InvalidStateError reports an illegal timer transition. This is a caller
// error and is always surfaced, never swallowed.
type InvalidStateError struct {
	Op   string
	Mode TimerMode
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s a timer that is %s", e.Op, e.Mode)
}

// ConflictError reports an attempt to start a timer while a timer of a
// different kind is already active.
type ConflictError struct {
	Active TimerKind
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a %s timer is already active; stop or discard it first", e.Active)
}

// ValidationError is a user-correctable rule violation. Reason is shown verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConfirmationRequiredError is not a failure: it signals that the candidate
// needs explicit user confirmation (sessions longer than the confirmation
// threshold) before validation can proceed.
type ConfirmationRequiredError struct {
	Duration time.Duration
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("session of %s requires explicit confirmation", e.Duration)
}

// PersistenceError wraps a failure from the storage layer. The core never
// retries these; any retry policy belongs to the storage client.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
