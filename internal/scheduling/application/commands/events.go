package commands

import (
	"context"

	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
	sharedDomain "github.com/praxishq/praxis/internal/shared/domain"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
)

// stageEvents writes the aggregate's uncommitted events to the outbox
// within the ambient transaction, then clears them.
func stageEvents(
	ctx context.Context,
	outboxRepo outbox.Repository,
	aggregate sharedDomain.AggregateRoot,
	metadata sharedDomain.EventMetadata,
) error {
	events := aggregate.DomainEvents()
	sharedApplication.ApplyEventMetadata(events, metadata)

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}

	if err := outboxRepo.SaveBatch(ctx, msgs); err != nil {
		return err
	}

	aggregate.ClearDomainEvents()
	return nil
}
