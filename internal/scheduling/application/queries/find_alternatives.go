package queries

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/application/services"
)

// TimeSlotDTO is a data transfer object for free slots.
type TimeSlotDTO struct {
	Start       time.Time
	End         time.Time
	DurationMin int
}

// FindAlternativesQuery asks for free slots after a rejected booking.
type FindAlternativesQuery struct {
	DoctorID      uuid.UUID
	RejectedStart time.Time
}

// FindAlternativesHandler handles the FindAlternativesQuery.
type FindAlternativesHandler struct {
	finder *services.SlotFinder
}

// NewFindAlternativesHandler creates a new FindAlternativesHandler.
func NewFindAlternativesHandler(finder *services.SlotFinder) *FindAlternativesHandler {
	return &FindAlternativesHandler{finder: finder}
}

// Handle executes the FindAlternativesQuery.
func (h *FindAlternativesHandler) Handle(ctx context.Context, query FindAlternativesQuery) ([]TimeSlotDTO, error) {
	slots, err := h.finder.FindAlternatives(ctx, query.DoctorID, query.RejectedStart)
	if err != nil {
		return nil, err
	}

	dtos := make([]TimeSlotDTO, len(slots))
	for i, slot := range slots {
		dtos[i] = TimeSlotDTO{
			Start:       slot.Start,
			End:         slot.End,
			DurationMin: int(slot.Duration().Minutes()),
		}
	}
	return dtos, nil
}
