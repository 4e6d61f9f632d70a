package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AppointmentRepository is the external store abstraction the core builds
// on. Persistence format, transactions and cross-caller serialization are
// the store's concern; implementations must reject a commit that would
// violate the no-overlap invariant even when the advisory pre-check passed.
type AppointmentRepository interface {
	// Create persists a new appointment.
	Create(ctx context.Context, appointment *Appointment) error

	// Update persists changes to an existing appointment.
	Update(ctx context.Context, appointment *Appointment) error

	// Delete removes an appointment. This is a raw store operation, not a
	// state transition.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID returns the appointment with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// ListByDoctor returns appointments for a doctor, optionally narrowed
	// to a single status, ordered by start time.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *Status) ([]*Appointment, error)

	// ListByDateRange returns appointments starting within [from, to),
	// ordered by start time. Feeds the agenda projection.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]*Appointment, error)
}
