package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/application/services"
	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
)

// BookAppointmentCommand contains the data needed to book an appointment.
type BookAppointmentCommand struct {
	DoctorID  uuid.UUID
	PatientID uuid.UUID
	Room      string
	Start     time.Time
	Reason    string
	ActorID   string
}

// BookAppointmentHandler handles the BookAppointmentCommand.
type BookAppointmentHandler struct {
	repo       domain.AppointmentRepository
	detector   *services.ConflictDetector
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewBookAppointmentHandler creates a new BookAppointmentHandler.
func NewBookAppointmentHandler(
	repo domain.AppointmentRepository,
	detector *services.ConflictDetector,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *BookAppointmentHandler {
	return &BookAppointmentHandler{
		repo:       repo,
		detector:   detector,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle validates the booking, gates it through the conflict detector and
// persists it as scheduled.
func (h *BookAppointmentHandler) Handle(ctx context.Context, cmd BookAppointmentCommand) (*domain.Appointment, error) {
	// Validation happens before any store call.
	appointment, err := domain.NewAppointment(cmd.DoctorID, cmd.PatientID, cmd.Room, cmd.Start, cmd.Reason)
	if err != nil {
		return nil, err
	}

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		report, err := h.detector.CheckConflict(txCtx, cmd.DoctorID, cmd.Start, nil)
		if err != nil {
			return err
		}
		if report.HasConflict {
			return &domain.ConflictError{Report: report}
		}

		if err := h.repo.Create(txCtx, appointment); err != nil {
			return err
		}

		return stageEvents(txCtx, h.outboxRepo, appointment, sharedApplication.NewEventMetadata(cmd.ActorID))
	})
	if err != nil {
		return nil, err
	}

	return appointment, nil
}
