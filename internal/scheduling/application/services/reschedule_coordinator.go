package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// AppointmentView is the caller-held local view of an appointment, e.g.
// what a calendar surface currently displays. It is a plain value so a
// snapshot restores the exact pre-move state.
type AppointmentView struct {
	ID                    uuid.UUID
	DoctorID              uuid.UUID
	PatientID             uuid.UUID
	Room                  string
	StartTime             time.Time
	Reason                string
	Status                domain.Status
	CancellationInitiator string
	CancellationReason    string
}

// ViewOf projects an appointment into a local view.
func ViewOf(a *domain.Appointment) AppointmentView {
	return AppointmentView{
		ID:                    a.ID(),
		DoctorID:              a.DoctorID(),
		PatientID:             a.PatientID(),
		Room:                  a.Room(),
		StartTime:             a.StartTime(),
		Reason:                a.Reason(),
		Status:                a.Status(),
		CancellationInitiator: a.CancellationInitiator(),
		CancellationReason:    a.CancellationReason(),
	}
}

// MoveCommitter commits a time move to the external store, enforcing the
// status and conflict guards on the way.
type MoveCommitter interface {
	CommitMove(ctx context.Context, id uuid.UUID, newStart time.Time, actorID string) error
}

// RescheduleCoordinator applies a drag-initiated move optimistically to the
// caller's local view, commits it, and reverts the view exactly if the
// commit is rejected. The view passed to Move is owned by the coordinator
// for the duration of the call; no other component touches it.
type RescheduleCoordinator struct {
	committer MoveCommitter
	logger    *slog.Logger
}

// NewRescheduleCoordinator creates a RescheduleCoordinator.
func NewRescheduleCoordinator(committer MoveCommitter, logger *slog.Logger) *RescheduleCoordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &RescheduleCoordinator{committer: committer, logger: logger}
}

// Move applies newStart to the view, commits, and on any failure restores
// the view to its exact pre-move state before surfacing the error. The
// caller decides whether to re-attempt; the coordinator never retries.
func (c *RescheduleCoordinator) Move(
	ctx context.Context,
	view *AppointmentView,
	newStart time.Time,
	actorID string,
) error {
	if view == nil {
		return &domain.ValidationError{Field: "view", Reason: "required"}
	}
	if newStart.IsZero() {
		return &domain.ValidationError{Field: "start_time", Reason: "required"}
	}

	snapshot := *view
	view.StartTime = newStart

	if err := c.committer.CommitMove(ctx, view.ID, newStart, actorID); err != nil {
		*view = snapshot
		c.logger.Info("move rejected, view reverted",
			"appointment_id", view.ID,
			"reason_code", domain.ReasonCode(err),
		)
		return err
	}

	return nil
}
