package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// DeleteAppointmentCommand physically removes an appointment. This is a
// raw store operation outside the lifecycle guarantees; normal workflow
// ends appointments through cancellation or completion instead.
type DeleteAppointmentCommand struct {
	ID uuid.UUID
}

// DeleteAppointmentHandler handles the DeleteAppointmentCommand.
type DeleteAppointmentHandler struct {
	repo domain.AppointmentRepository
}

// NewDeleteAppointmentHandler creates a new DeleteAppointmentHandler.
func NewDeleteAppointmentHandler(repo domain.AppointmentRepository) *DeleteAppointmentHandler {
	return &DeleteAppointmentHandler{repo: repo}
}

// Handle executes the DeleteAppointmentCommand.
func (h *DeleteAppointmentHandler) Handle(ctx context.Context, cmd DeleteAppointmentCommand) error {
	if cmd.ID == uuid.Nil {
		return &domain.ValidationError{Field: "id", Reason: "required"}
	}
	return h.repo.Delete(ctx, cmd.ID)
}
