package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// GetAppointmentQuery fetches a single appointment by id.
type GetAppointmentQuery struct {
	ID uuid.UUID
}

// GetAppointmentHandler handles the GetAppointmentQuery.
type GetAppointmentHandler struct {
	repo domain.AppointmentRepository
}

// NewGetAppointmentHandler creates a new GetAppointmentHandler.
func NewGetAppointmentHandler(repo domain.AppointmentRepository) *GetAppointmentHandler {
	return &GetAppointmentHandler{repo: repo}
}

// Handle executes the GetAppointmentQuery.
func (h *GetAppointmentHandler) Handle(ctx context.Context, query GetAppointmentQuery) (*domain.Appointment, error) {
	if query.ID == uuid.Nil {
		return nil, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return h.repo.FindByID(ctx, query.ID)
}
