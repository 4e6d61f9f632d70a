package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// ConflictDetector gates every create, edit and move against the no-overlap
// invariant. The check is advisory at the moment it runs: two schedulers can
// race between check and commit, so repositories independently reject a
// conflicting commit with the same error shape.
type ConflictDetector struct {
	repo domain.AppointmentRepository
}

// NewConflictDetector creates a new ConflictDetector.
func NewConflictDetector(repo domain.AppointmentRepository) *ConflictDetector {
	return &ConflictDetector{repo: repo}
}

// CheckConflict evaluates a candidate 30-minute window for a doctor against
// that doctor's scheduled appointments. excludeID, when non-nil, removes the
// appointment being edited from the comparison so it does not flag itself.
func (d *ConflictDetector) CheckConflict(
	ctx context.Context,
	doctorID uuid.UUID,
	candidateStart time.Time,
	excludeID *uuid.UUID,
) (domain.ConflictReport, error) {
	if doctorID == uuid.Nil {
		return domain.ConflictReport{}, &domain.ValidationError{Field: "doctor_id", Reason: "required"}
	}
	if candidateStart.IsZero() {
		return domain.ConflictReport{}, &domain.ValidationError{Field: "start_time", Reason: "required"}
	}

	scheduled := domain.StatusScheduled
	appointments, err := d.repo.ListByDoctor(ctx, doctorID, &scheduled)
	if err != nil {
		return domain.ConflictReport{}, err
	}

	candidate := domain.NewSlot(candidateStart)

	var conflicting []*domain.Appointment
	for _, a := range appointments {
		if excludeID != nil && a.ID() == *excludeID {
			continue
		}
		if a.Window().Overlaps(candidate) {
			conflicting = append(conflicting, a)
		}
	}

	return domain.NewConflictReport(conflicting), nil
}
