package outbox

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/shared/domain"
)

// Message is a domain event staged for publishing. Messages are written in
// the same transaction as the aggregate change and relayed by the worker.
type Message struct {
	ID            int64
	EventID       uuid.UUID
	AggregateType string
	AggregateID   uuid.UUID
	RoutingKey    string
	Payload       json.RawMessage
	Metadata      json.RawMessage
	CreatedAt     time.Time
	PublishedAt   *time.Time
	RetryCount    int
	LastError     *string
}

// NewMessage creates an outbox message from a domain event.
func NewMessage(event domain.DomainEvent) (*Message, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	metadata, err := json.Marshal(event.Metadata())
	if err != nil {
		return nil, err
	}

	return &Message{
		EventID:       event.EventID(),
		AggregateType: event.AggregateType(),
		AggregateID:   event.AggregateID(),
		RoutingKey:    event.RoutingKey(),
		Payload:       payload,
		Metadata:      metadata,
		CreatedAt:     event.OccurredAt(),
	}, nil
}

// IsPublished returns true if the message has been published.
func (m *Message) IsPublished() bool {
	return m.PublishedAt != nil
}

// CanRetry returns true if the message may be retried.
func (m *Message) CanRetry(maxRetries int) bool {
	return m.RetryCount < maxRetries
}
