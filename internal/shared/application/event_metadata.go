package application

import (
	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/shared/domain"
)

// MetadataSetter is implemented by events that accept metadata after creation.
type MetadataSetter interface {
	SetMetadata(metadata domain.EventMetadata)
}

// NewEventMetadata creates metadata for a fresh command execution.
// Correlation and causation start out identical; downstream consumers
// chain causation when they emit follow-up events.
func NewEventMetadata(actorID string) domain.EventMetadata {
	id := uuid.New()
	return domain.EventMetadata{
		CorrelationID: id,
		CausationID:   id,
		ActorID:       actorID,
	}
}

// ApplyEventMetadata stamps metadata onto every event that supports it.
func ApplyEventMetadata(events []domain.DomainEvent, metadata domain.EventMetadata) {
	for _, event := range events {
		if setter, ok := event.(MetadataSetter); ok {
			setter.SetMetadata(metadata)
		}
	}
}
