package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
)

// CompleteAppointmentCommand marks an appointment as completed.
type CompleteAppointmentCommand struct {
	ID      uuid.UUID
	ActorID string
}

// CompleteAppointmentHandler handles the CompleteAppointmentCommand.
type CompleteAppointmentHandler struct {
	repo       domain.AppointmentRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCompleteAppointmentHandler creates a new CompleteAppointmentHandler.
func NewCompleteAppointmentHandler(
	repo domain.AppointmentRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CompleteAppointmentHandler {
	return &CompleteAppointmentHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the CompleteAppointmentCommand.
func (h *CompleteAppointmentHandler) Handle(ctx context.Context, cmd CompleteAppointmentCommand) (*domain.Appointment, error) {
	if cmd.ID == uuid.Nil {
		return nil, &domain.ValidationError{Field: "id", Reason: "required"}
	}

	var appointment *domain.Appointment
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		appointment, err = h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}

		if err := appointment.Complete(); err != nil {
			return err
		}

		if err := h.repo.Update(txCtx, appointment); err != nil {
			return err
		}

		return stageEvents(txCtx, h.outboxRepo, appointment, sharedApplication.NewEventMetadata(cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return appointment, nil
}
