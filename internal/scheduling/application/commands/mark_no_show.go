package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
)

// MarkNoShowCommand records that a patient missed a scheduled appointment.
type MarkNoShowCommand struct {
	ID      uuid.UUID
	ActorID string
}

// MarkNoShowHandler handles the MarkNoShowCommand.
type MarkNoShowHandler struct {
	repo       domain.AppointmentRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewMarkNoShowHandler creates a new MarkNoShowHandler.
func NewMarkNoShowHandler(
	repo domain.AppointmentRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *MarkNoShowHandler {
	return &MarkNoShowHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the MarkNoShowCommand.
func (h *MarkNoShowHandler) Handle(ctx context.Context, cmd MarkNoShowCommand) (*domain.Appointment, error) {
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

		if err := appointment.MarkNoShow(); err != nil {
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
