package eventbus

import (
	"context"
	"log/slog"
)

// Publisher sends serialized domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload []byte) error
}

// NoopPublisher logs and drops events. Used in local mode when no broker
// is configured.
type NoopPublisher struct {
	logger *slog.Logger
}

// NewNoopPublisher creates a NoopPublisher.
func NewNoopPublisher(logger *slog.Logger) *NoopPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopPublisher{logger: logger}
}

// Publish logs the event and discards it.
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.logger.Debug("dropping event, no broker configured",
		"routing_key", routingKey,
		"bytes", len(payload),
	)
	return nil
}
