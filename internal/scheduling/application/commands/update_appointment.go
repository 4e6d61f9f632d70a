package commands

import (
	"context"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/application/services"
	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
)

// UpdateAppointmentCommand edits a scheduled appointment.
type UpdateAppointmentCommand struct {
	ID        uuid.UUID
	Amendment domain.Amendment
	ActorID   string
}

// UpdateAppointmentHandler handles the UpdateAppointmentCommand.
type UpdateAppointmentHandler struct {
	repo       domain.AppointmentRepository
	detector   *services.ConflictDetector
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewUpdateAppointmentHandler creates a new UpdateAppointmentHandler.
func NewUpdateAppointmentHandler(
	repo domain.AppointmentRepository,
	detector *services.ConflictDetector,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *UpdateAppointmentHandler {
	return &UpdateAppointmentHandler{
		repo:       repo,
		detector:   detector,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle applies the amendment. Moves of the window (start and/or doctor)
// are re-gated through the conflict detector with the appointment itself
// excluded, so an in-place edit never flags its own unchanged window.
func (h *UpdateAppointmentHandler) Handle(ctx context.Context, cmd UpdateAppointmentCommand) (*domain.Appointment, error) {
	if cmd.ID == uuid.Nil {
		return nil, &domain.ValidationError{Field: "id", Reason: "required"}
	}
	if cmd.Amendment.Empty() {
		return nil, &domain.ValidationError{Field: "amendment", Reason: "no changes supplied"}
	}

	var appointment *domain.Appointment
	err := sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		var err error
		appointment, err = h.repo.FindByID(txCtx, cmd.ID)
		if err != nil {
			return err
		}

		excludeID := appointment.ID()
		if err := appointment.Amend(cmd.Amendment); err != nil {
			return err
		}

		if cmd.Amendment.MovesWindow() {
			report, err := h.detector.CheckConflict(txCtx, appointment.DoctorID(), appointment.StartTime(), &excludeID)
			if err != nil {
				return err
			}
			if report.HasConflict {
				return &domain.ConflictError{Report: report}
			}
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
