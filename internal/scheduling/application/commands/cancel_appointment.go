package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
)

// CancelAppointmentCommand cancels a scheduled appointment. Target selects
// which cancellation terminal state applies; the core takes it as given
// rather than inferring a lateness policy.
type CancelAppointmentCommand struct {
	ID          uuid.UUID
	Target      domain.Status
	InitiatedBy string
	Reason      string
	ActorID     string
}

// CancelAppointmentHandler handles the CancelAppointmentCommand.
type CancelAppointmentHandler struct {
	repo       domain.AppointmentRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCancelAppointmentHandler creates a new CancelAppointmentHandler.
func NewCancelAppointmentHandler(
	repo domain.AppointmentRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *CancelAppointmentHandler {
	return &CancelAppointmentHandler{repo: repo, outboxRepo: outboxRepo, uow: uow}
}

// Handle executes the CancelAppointmentCommand.
func (h *CancelAppointmentHandler) Handle(ctx context.Context, cmd CancelAppointmentCommand) (*domain.Appointment, error) {
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

		if err := appointment.Cancel(cmd.Target, cmd.InitiatedBy, cmd.Reason); err != nil {
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
