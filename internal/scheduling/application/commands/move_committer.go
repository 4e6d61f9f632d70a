package commands

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// StoreMoveCommitter adapts the update command to the reschedule
// coordinator's commit contract.
type StoreMoveCommitter struct {
	update *UpdateAppointmentHandler
}

// NewStoreMoveCommitter creates a StoreMoveCommitter.
func NewStoreMoveCommitter(update *UpdateAppointmentHandler) *StoreMoveCommitter {
	return &StoreMoveCommitter{update: update}
}

// CommitMove commits a time-only move through the guarded update path.
func (c *StoreMoveCommitter) CommitMove(ctx context.Context, id uuid.UUID, newStart time.Time, actorID string) error {
	_, err := c.update.Handle(ctx, UpdateAppointmentCommand{
		ID:        id,
		Amendment: domain.Amendment{Start: &newStart},
		ActorID:   actorID,
	})
	return err
}
