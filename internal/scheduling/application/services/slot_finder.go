package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// DefaultHorizonDays bounds how far ahead the finder searches for free slots.
const DefaultHorizonDays = 14

// SlotFinder enumerates free business-hour slots for a doctor after a
// booking attempt was rejected. It is a read-only query and reserves
// nothing: a caller picking an offered slot must re-run the conflict check
// before committing, because another scheduler may have claimed it.
type SlotFinder struct {
	repo        domain.AppointmentRepository
	horizonDays int
}

// NewSlotFinder creates a SlotFinder. horizonDays <= 0 selects the default.
func NewSlotFinder(repo domain.AppointmentRepository, horizonDays int) *SlotFinder {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &SlotFinder{repo: repo, horizonDays: horizonDays}
}

// FindAlternatives returns the free slots of the first business day, at or
// after the day of rejectedStart, that has any availability for the doctor.
// Slots are ordered earliest first. An empty result within the horizon is
// not an error, just "no alternatives".
func (f *SlotFinder) FindAlternatives(
	ctx context.Context,
	doctorID uuid.UUID,
	rejectedStart time.Time,
) ([]domain.TimeWindow, error) {
	if doctorID == uuid.Nil {
		return nil, &domain.ValidationError{Field: "doctor_id", Reason: "required"}
	}
	if rejectedStart.IsZero() {
		return nil, &domain.ValidationError{Field: "start_time", Reason: "required"}
	}

	scheduled := domain.StatusScheduled
	booked, err := f.repo.ListByDoctor(ctx, doctorID, &scheduled)
	if err != nil {
		return nil, err
	}

	day := domain.StartOfDay(rejectedStart)
	if !domain.IsBusinessDay(day) {
		day = domain.NextBusinessDay(day)
	}
	deadline := domain.StartOfDay(rejectedStart).AddDate(0, 0, f.horizonDays)

	for ; day.Before(deadline); day = domain.NextBusinessDay(day) {
		free := make([]domain.TimeWindow, 0)
		for _, slot := range domain.SlotGrid(day) {
			if !overlapsAny(slot, booked) {
				free = append(free, slot)
			}
		}
		if len(free) > 0 {
			return free, nil
		}
	}

	return []domain.TimeWindow{}, nil
}

func overlapsAny(slot domain.TimeWindow, appointments []*domain.Appointment) bool {
	for _, a := range appointments {
		if a.Window().Overlaps(slot) {
			return true
		}
	}
	return false
}
