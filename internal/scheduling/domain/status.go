package domain

// Status represents the lifecycle state of an appointment.
type Status string

const (
	// StatusScheduled is the only initial state and the only state from
	// which transitions are allowed.
	StatusScheduled Status = "scheduled"

	StatusCompleted       Status = "completed"
	StatusCancelled       Status = "cancelled"
	StatusLateCancelled   Status = "late_cancelled"
	StatusClinicCancelled Status = "clinic_cancelled"
	StatusNoShow          Status = "no_show"
)

var allStatuses = []Status{
	StatusScheduled,
	StatusCompleted,
	StatusCancelled,
	StatusLateCancelled,
	StatusClinicCancelled,
	StatusNoShow,
}

// ParseStatus converts a stored string into a Status.
func ParseStatus(s string) (Status, error) {
	for _, status := range allStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", &ValidationError{Field: "status", Reason: "unknown status " + s}
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool {
	return s != StatusScheduled
}

// IsCancellation reports whether the status is one of the cancellation
// terminal states. Which one applies is chosen by the caller; the core
// does not encode a late-vs-clinic cancellation policy.
func (s Status) IsCancellation() bool {
	switch s {
	case StatusCancelled, StatusLateCancelled, StatusClinicCancelled:
		return true
	}
	return false
}

// CanTransitionTo validates a transition from s to target.
func (s Status) CanTransitionTo(target Status) error {
	if s != StatusScheduled {
		return &InvalidTransitionError{Status: s, Action: "transition to " + string(target)}
	}
	if !target.IsTerminal() {
		return &InvalidTransitionError{Status: s, Action: "transition to " + string(target)}
	}
	return nil
}
