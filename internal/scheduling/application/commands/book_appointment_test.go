package commands

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/praxis/internal/scheduling/application/services"
	"github.com/praxishq/praxis/internal/scheduling/domain"
)

func TestBookAppointmentHandler_Handle(t *testing.T) {
	ctx := context.Background()
	txCtx := context.WithValue(ctx, "tx", "transaction") //nolint:staticcheck
	doctorID := uuid.New()
	patientID := uuid.New()

	cmd := BookAppointmentCommand{
		DoctorID:  doctorID,
		PatientID: patientID,
		Room:      "A1",
		Start:     mondayAt(9, 0),
		Reason:    "check-up",
		ActorID:   "reception",
	}

	t.Run("books a free slot and stages the booked event", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("ListByDoctor", txCtx, doctorID, mock.AnythingOfType("*domain.Status")).
			Return([]*domain.Appointment{}, nil)
		repo.On("Create", txCtx, mock.AnythingOfType("*domain.Appointment")).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, savedBatchWithRoutingKey(domain.RoutingKeyAppointmentBooked)).
			Return(nil)

		handler := NewBookAppointmentHandler(repo, services.NewConflictDetector(repo), outboxRepo, uow)
		appointment, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusScheduled, appointment.Status())
		assert.Equal(t, mondayAt(9, 30), appointment.EndTime())
		assert.Empty(t, appointment.DomainEvents(), "events are drained into the outbox")
		repo.AssertExpectations(t)
		outboxRepo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("rejects an overlapping slot before writing", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)

		existing := scheduledAppointment(t, doctorID, mondayAt(9, 0))
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("ListByDoctor", txCtx, doctorID, mock.AnythingOfType("*domain.Status")).
			Return([]*domain.Appointment{existing}, nil)

		handler := NewBookAppointmentHandler(repo, services.NewConflictDetector(repo), outboxRepo, uow)
		_, err := handler.Handle(ctx, cmd)

		var conflictErr *domain.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		require.Len(t, conflictErr.Report.Conflicting, 1)
		assert.Equal(t, existing.ID(), conflictErr.Report.Conflicting[0].ID())
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})

	t.Run("validates before any store call", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		uow := new(mockUnitOfWork)

		invalid := cmd
		invalid.Room = ""

		handler := NewBookAppointmentHandler(repo, services.NewConflictDetector(repo), new(mockOutboxRepo), uow)
		_, err := handler.Handle(ctx, invalid)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rolls back when the store rejects the write", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)

		storeErr := &domain.ConflictError{Report: domain.ConflictReport{HasConflict: true}}
		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("ListByDoctor", txCtx, doctorID, mock.AnythingOfType("*domain.Status")).
			Return([]*domain.Appointment{}, nil)
		repo.On("Create", txCtx, mock.AnythingOfType("*domain.Appointment")).Return(storeErr)

		handler := NewBookAppointmentHandler(repo, services.NewConflictDetector(repo), outboxRepo, uow)
		_, err := handler.Handle(ctx, cmd)

		var conflictErr *domain.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		outboxRepo.AssertNotCalled(t, "SaveBatch", mock.Anything, mock.Anything)
		uow.AssertExpectations(t)
	})
}
