package outbox

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	sharedPersistence "github.com/praxishq/praxis/internal/shared/infrastructure/persistence"
)

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite outbox repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

type sqliteExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (r *SQLiteRepository) execer(ctx context.Context) sqliteExecer {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

// SaveBatch stores messages inside the ambient transaction when present.
func (r *SQLiteRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	const query = `
		INSERT INTO outbox_messages (
			event_id, aggregate_type, aggregate_id, routing_key,
			payload, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	execer := r.execer(ctx)
	for _, m := range msgs {
		if _, err := execer.ExecContext(ctx, query,
			m.EventID.String(), m.AggregateType, m.AggregateID.String(), m.RoutingKey,
			string(m.Payload), string(m.Metadata), m.CreatedAt.Format(time.RFC3339Nano),
		); err != nil {
			return err
		}
	}
	return nil
}

// FetchUnpublished returns unpublished messages, oldest first.
func (r *SQLiteRepository) FetchUnpublished(ctx context.Context, limit int) ([]*Message, error) {
	const query = `
		SELECT id, event_id, aggregate_type, aggregate_id, routing_key,
		       payload, metadata, created_at, published_at, retry_count, last_error
		FROM outbox_messages
		WHERE published_at IS NULL
		ORDER BY id
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var (
			m           Message
			eventID     string
			aggregateID string
			payload     string
			metadata    string
			createdAt   string
			publishedAt sql.NullString
		)
		if err := rows.Scan(
			&m.ID, &eventID, &m.AggregateType, &aggregateID, &m.RoutingKey,
			&payload, &metadata, &createdAt, &publishedAt, &m.RetryCount, &m.LastError,
		); err != nil {
			return nil, err
		}

		if m.EventID, err = uuid.Parse(eventID); err != nil {
			return nil, err
		}
		if m.AggregateID, err = uuid.Parse(aggregateID); err != nil {
			return nil, err
		}
		m.Payload = []byte(payload)
		m.Metadata = []byte(metadata)
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			t, err := time.Parse(time.RFC3339Nano, publishedAt.String)
			if err != nil {
				return nil, err
			}
			m.PublishedAt = &t
		}

		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

// MarkPublished records successful publication.
func (r *SQLiteRepository) MarkPublished(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_messages SET published_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339Nano), id,
	)
	return err
}

// MarkFailed increments the retry counter and records the error.
func (r *SQLiteRepository) MarkFailed(ctx context.Context, id int64, reason string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_messages SET retry_count = retry_count + 1, last_error = ? WHERE id = ?`,
		reason, id,
	)
	return err
}
