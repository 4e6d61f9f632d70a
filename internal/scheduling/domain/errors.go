package domain

import (
	"errors"
	"fmt"
)

// Stable reason codes surfaced with every rejection so that callers can
// explain a failure without re-deriving it.
const (
	CodeValidationFailed  = "validation_failed"
	CodeScheduleConflict  = "schedule_conflict"
	CodeInvalidTransition = "invalid_state_transition"
	CodeNotFound          = "not_found"
	CodeStoreUnavailable  = "store_unavailable"
	CodeInternal          = "internal_error"
)

var (
	// ErrNotFound is returned when an appointment id does not exist in the store.
	ErrNotFound = errors.New("appointment not found")

	// ErrStoreUnavailable signals a store infrastructure failure. The outcome
	// of the attempted operation is unknown; callers should re-query before
	// retrying. The core never retries on its own.
	ErrStoreUnavailable = errors.New("appointment store unavailable")
)

// ValidationError rejects malformed input before any store call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Code returns the stable reason code.
func (e *ValidationError) Code() string { return CodeValidationFailed }

// ConflictError rejects a candidate window that overlaps an existing
// scheduled appointment for the doctor. Both the advisory pre-check and a
// store-side commit rejection produce this same shape.
type ConflictError struct {
	Report ConflictReport
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("schedule conflict: %d overlapping appointment(s)", len(e.Report.Conflicting))
}

// Code returns the stable reason code.
func (e *ConflictError) Code() string { return CodeScheduleConflict }

// InvalidTransitionError rejects an action on an appointment whose status
// does not permit it.
type InvalidTransitionError struct {
	Status Status
	Action string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s an appointment in status %q", e.Action, e.Status)
}

// Code returns the stable reason code.
func (e *InvalidTransitionError) Code() string { return CodeInvalidTransition }

type coder interface {
	Code() string
}

// ReasonCode maps any error returned by the core onto its stable reason code.
func ReasonCode(err error) string {
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrStoreUnavailable):
		return CodeStoreUnavailable
	}
	return CodeInternal
}
