package queries

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

type mockAppointmentRepo struct {
	mock.Mock
}

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *domain.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *domain.Status) ([]*domain.Appointment, error) {
	args := m.Called(ctx, doctorID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

func (m *mockAppointmentRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Error(1)
}

type mockAgendaCache struct {
	mock.Mock
}

func (m *mockAgendaCache) Get(ctx context.Context, from, to time.Time) ([]*domain.Appointment, bool) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).([]*domain.Appointment), args.Bool(1)
}

func (m *mockAgendaCache) Set(ctx context.Context, from, to time.Time, appointments []*domain.Appointment) {
	m.Called(ctx, from, to, appointments)
}

// 2026-09-07 is a Monday.
func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 9, 7, hour, min, 0, 0, time.Local)
}

func appointmentAt(t *testing.T, doctorID uuid.UUID, start time.Time) *domain.Appointment {
	t.Helper()
	a, err := domain.NewAppointment(doctorID, uuid.New(), "A1", start, "")
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func TestGetAgendaHandler_Handle(t *testing.T) {
	ctx := context.Background()
	from := mondayAt(0, 0)
	to := from.AddDate(0, 0, 1)

	t.Run("returns the filtered, grouped projection", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		doctorID := uuid.New()

		scheduled := appointmentAt(t, doctorID, mondayAt(9, 0))
		completed := appointmentAt(t, doctorID, mondayAt(10, 0))
		require.NoError(t, completed.Complete())
		otherDoctor := appointmentAt(t, uuid.New(), mondayAt(11, 0))

		repo.On("ListByDateRange", ctx, from, to).
			Return([]*domain.Appointment{completed, otherDoctor, scheduled}, nil)

		handler := NewGetAgendaHandler(repo, nil)
		result, err := handler.Handle(ctx, GetAgendaQuery{
			From:   from,
			To:     to,
			Filter: domain.AgendaFilter{DoctorID: &doctorID},
		})

		require.NoError(t, err)
		require.Len(t, result.Appointments, 2)
		assert.Equal(t, scheduled.ID(), result.Appointments[0].ID(), "ordered by start time")
		assert.Equal(t, completed.ID(), result.Appointments[1].ID())
		require.Len(t, result.Groups.Scheduled, 1)
		require.Len(t, result.Groups.Completed, 1)
		assert.Empty(t, result.Groups.Cancelled)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		handler := NewGetAgendaHandler(new(mockAppointmentRepo), nil)
		_, err := handler.Handle(ctx, GetAgendaQuery{From: to, To: from})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("cache hit skips the store", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		cache := new(mockAgendaCache)

		cached := appointmentAt(t, uuid.New(), mondayAt(9, 0))
		cache.On("Get", ctx, from, to).Return([]*domain.Appointment{cached}, true)

		handler := NewGetAgendaHandler(repo, cache)
		result, err := handler.Handle(ctx, GetAgendaQuery{From: from, To: to})

		require.NoError(t, err)
		require.Len(t, result.Appointments, 1)
		repo.AssertNotCalled(t, "ListByDateRange", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss reads the store and backfills", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		cache := new(mockAgendaCache)

		fresh := []*domain.Appointment{appointmentAt(t, uuid.New(), mondayAt(9, 0))}
		cache.On("Get", ctx, from, to).Return(nil, false)
		repo.On("ListByDateRange", ctx, from, to).Return(fresh, nil)
		cache.On("Set", ctx, from, to, fresh).Return()

		handler := NewGetAgendaHandler(repo, cache)
		result, err := handler.Handle(ctx, GetAgendaQuery{From: from, To: to})

		require.NoError(t, err)
		require.Len(t, result.Appointments, 1)
		cache.AssertExpectations(t)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		repo.On("ListByDateRange", ctx, from, to).Return(nil, domain.ErrStoreUnavailable)

		handler := NewGetAgendaHandler(repo, nil)
		_, err := handler.Handle(ctx, GetAgendaQuery{From: from, To: to})

		assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	})
}

func TestGetAppointmentHandler_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the appointment", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		appointment := appointmentAt(t, uuid.New(), mondayAt(9, 0))
		repo.On("FindByID", ctx, appointment.ID()).Return(appointment, nil)

		handler := NewGetAppointmentHandler(repo)
		got, err := handler.Handle(ctx, GetAppointmentQuery{ID: appointment.ID()})

		require.NoError(t, err)
		assert.Equal(t, appointment.ID(), got.ID())
	})

	t.Run("requires an id", func(t *testing.T) {
		handler := NewGetAppointmentHandler(new(mockAppointmentRepo))
		_, err := handler.Handle(ctx, GetAppointmentQuery{})

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("unknown id surfaces not found", func(t *testing.T) {
		repo := new(mockAppointmentRepo)
		id := uuid.New()
		repo.On("FindByID", ctx, id).Return(nil, domain.ErrNotFound)

		handler := NewGetAppointmentHandler(repo)
		_, err := handler.Handle(ctx, GetAppointmentQuery{ID: id})

		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
