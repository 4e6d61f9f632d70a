package commands

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/praxis/internal/scheduling/domain"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
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

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) FetchUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// 2026-09-07 is a Monday.
func mondayAt(hour, min int) time.Time {
	return time.Date(2026, 9, 7, hour, min, 0, 0, time.Local)
}

func scheduledAppointment(t *testing.T, doctorID uuid.UUID, start time.Time) *domain.Appointment {
	t.Helper()
	a, err := domain.NewAppointment(doctorID, uuid.New(), "A1", start, "")
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func savedBatchWithRoutingKey(key string) interface{} {
	return mock.MatchedBy(func(msgs []*outbox.Message) bool {
		return len(msgs) == 1 && msgs[0].RoutingKey == key
	})
}
