package outbox

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
)

type mockOutboxRepo struct {
	mock.Mock
}

func (m *mockOutboxRepo) SaveBatch(ctx context.Context, msgs []*Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *mockOutboxRepo) FetchUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Message), args.Error(1)
}

func (m *mockOutboxRepo) MarkPublished(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockOutboxRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func bookedMessage(t *testing.T, id int64) *Message {
	t.Helper()
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	a, err := domain.NewAppointment(uuid.New(), uuid.New(), "A1", start, "")
	require.NoError(t, err)

	events := a.DomainEvents()
	require.Len(t, events, 1)
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata("reception"))

	msg, err := NewMessage(events[0])
	require.NoError(t, err)
	msg.ID = id
	return msg
}

func TestProcessor_ProcessBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes and marks each message", func(t *testing.T) {
		repo := new(mockOutboxRepo)
		publisher := new(mockPublisher)

		msg := bookedMessage(t, 1)
		repo.On("FetchUnpublished", ctx, 100).Return([]*Message{msg}, nil)
		publisher.On("Publish", ctx, domain.RoutingKeyAppointmentBooked, []byte(msg.Payload)).Return(nil)
		repo.On("MarkPublished", ctx, int64(1)).Return(nil)

		processor := NewProcessor(repo, publisher, DefaultProcessorConfig(), nil)
		require.NoError(t, processor.ProcessBatch(ctx))

		repo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("publish failure is recorded, not fatal", func(t *testing.T) {
		repo := new(mockOutboxRepo)
		publisher := new(mockPublisher)

		failing := bookedMessage(t, 1)
		ok := bookedMessage(t, 2)
		repo.On("FetchUnpublished", ctx, 100).Return([]*Message{failing, ok}, nil)
		publisher.On("Publish", ctx, mock.Anything, []byte(failing.Payload)).
			Return(errors.New("broker down")).Once()
		repo.On("MarkFailed", ctx, int64(1), "broker down").Return(nil)
		publisher.On("Publish", ctx, mock.Anything, []byte(ok.Payload)).Return(nil).Once()
		repo.On("MarkPublished", ctx, int64(2)).Return(nil)

		processor := NewProcessor(repo, publisher, DefaultProcessorConfig(), nil)
		require.NoError(t, processor.ProcessBatch(ctx))

		repo.AssertExpectations(t)
	})

	t.Run("exhausted messages are skipped", func(t *testing.T) {
		repo := new(mockOutboxRepo)
		publisher := new(mockPublisher)

		exhausted := bookedMessage(t, 1)
		exhausted.RetryCount = DefaultProcessorConfig().MaxRetries
		repo.On("FetchUnpublished", ctx, 100).Return([]*Message{exhausted}, nil)

		processor := NewProcessor(repo, publisher, DefaultProcessorConfig(), nil)
		require.NoError(t, processor.ProcessBatch(ctx))

		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fetch failure surfaces", func(t *testing.T) {
		repo := new(mockOutboxRepo)
		fetchErr := errors.New("db gone")
		repo.On("FetchUnpublished", ctx, 100).Return(nil, fetchErr)

		processor := NewProcessor(repo, new(mockPublisher), DefaultProcessorConfig(), nil)
		assert.ErrorIs(t, processor.ProcessBatch(ctx), fetchErr)
	})
}
