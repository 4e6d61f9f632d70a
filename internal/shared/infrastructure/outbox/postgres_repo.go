package outbox

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	sharedPersistence "github.com/praxishq/praxis/internal/shared/infrastructure/persistence"
)

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres outbox repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveBatch stores messages inside the ambient transaction when present.
func (r *PostgresRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	if len(msgs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO outbox_messages (
			event_id, aggregate_type, aggregate_id, routing_key,
			payload, metadata, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if info, ok := sharedPersistence.PgTxInfoFromContext(ctx); ok {
		for _, m := range msgs {
			if _, err := info.Tx.Exec(ctx, query,
				m.EventID, m.AggregateType, m.AggregateID, m.RoutingKey,
				m.Payload, m.Metadata, m.CreatedAt,
			); err != nil {
				return err
			}
		}
		return nil
	}

	for _, m := range msgs {
		if _, err := r.pool.Exec(ctx, query,
			m.EventID, m.AggregateType, m.AggregateID, m.RoutingKey,
			m.Payload, m.Metadata, m.CreatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

// FetchUnpublished returns unpublished messages, oldest first.
func (r *PostgresRepository) FetchUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	const query = `
		SELECT id, event_id, aggregate_type, aggregate_id, routing_key,
		       payload, metadata, created_at, published_at, retry_count, last_error
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMessages(rows)
}

// MarkPublished records successful publication.
func (r *PostgresRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_messages SET published_at = $1 WHERE id = $2`,
		time.Now().UTC(), id,
	)
	return err
}

// MarkFailed increments the retry counter and records the error.
func (r *PostgresRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE outbox_messages SET retry_count = retry_count + 1, last_error = $1 WHERE id = $2`,
		reason, id,
	)
	return err
}

func scanMessages(rows pgx.Rows) ([]*Message, error) {
	var msgs []*Message
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(
			&m.ID, &m.EventID, &m.AggregateType, &m.AggregateID, &m.RoutingKey,
			&m.Payload, &m.Metadata, &m.CreatedAt, &m.PublishedAt, &m.RetryCount, &m.LastError,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}
