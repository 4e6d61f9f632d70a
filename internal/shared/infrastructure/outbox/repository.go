package outbox

import "context"

// Repository persists outbox messages.
type Repository interface {
	// SaveBatch stores messages, participating in any transaction carried
	// by the context.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// FetchUnpublished returns up to limit unpublished messages, oldest
	// first.
	FetchUnpublished(ctx context.Context, limit int) ([]*Message, error)

	// MarkPublished records successful publication.
	MarkPublished(ctx context.Context, id int64) error

	// MarkFailed increments the retry counter and records the error.
	MarkFailed(ctx context.Context, id int64, reason string) error
}
