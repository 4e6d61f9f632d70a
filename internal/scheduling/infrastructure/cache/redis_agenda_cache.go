package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// RedisAgendaCache caches raw agenda rows per date range. A cache miss or
// any Redis failure degrades to a store read; the cache is never
// authoritative. Entries expire by TTL only, so the agenda feed may show
// a booking or cancellation up to one TTL late.
type RedisAgendaCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedisAgendaCache creates a new RedisAgendaCache.
func NewRedisAgendaCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisAgendaCache {
	return &RedisAgendaCache{client: client, ttl: ttl, logger: logger}
}

// cachedAppointment is the wire form of an appointment row in Redis.
type cachedAppointment struct {
	ID                    uuid.UUID `json:"id"`
	DoctorID              uuid.UUID `json:"doctor_id"`
	PatientID             uuid.UUID `json:"patient_id"`
	Room                  string    `json:"room"`
	StartTime             time.Time `json:"start_time"`
	Reason                string    `json:"reason"`
	Status                string    `json:"status"`
	CancellationInitiator string    `json:"cancellation_initiator,omitempty"`
	CancellationReason    string    `json:"cancellation_reason,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func agendaKey(from, to time.Time) string {
	return fmt.Sprintf("praxis:agenda:%d:%d", from.Unix(), to.Unix())
}

// Get returns the cached rows for the range, or false on miss or error.
func (c *RedisAgendaCache) Get(ctx context.Context, from, to time.Time) ([]*domain.Appointment, bool) {
	payload, err := c.client.Get(ctx, agendaKey(from, to)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("agenda cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}

	var cached []cachedAppointment
	if err := json.Unmarshal(payload, &cached); err != nil {
		c.logger.Warn("agenda cache entry corrupt, dropping", slog.String("error", err.Error()))
		c.client.Del(ctx, agendaKey(from, to))
		return nil, false
	}

	appointments := make([]*domain.Appointment, 0, len(cached))
	for _, row := range cached {
		status, err := domain.ParseStatus(row.Status)
		if err != nil {
			return nil, false
		}
		appointments = append(appointments, domain.RehydrateAppointment(
			row.ID, row.DoctorID, row.PatientID, row.Room, row.StartTime,
			row.Reason, status, row.CancellationInitiator, row.CancellationReason,
			row.CreatedAt, row.UpdatedAt,
		))
	}
	return appointments, true
}

// Set stores the rows for the range. Failures are logged and ignored.
func (c *RedisAgendaCache) Set(ctx context.Context, from, to time.Time, appointments []*domain.Appointment) {
	cached := make([]cachedAppointment, 0, len(appointments))
	for _, a := range appointments {
		cached = append(cached, cachedAppointment{
			ID:                    a.ID(),
			DoctorID:              a.DoctorID(),
			PatientID:             a.PatientID(),
			Room:                  a.Room(),
			StartTime:             a.StartTime(),
			Reason:                a.Reason(),
			Status:                string(a.Status()),
			CancellationInitiator: a.CancellationInitiator(),
			CancellationReason:    a.CancellationReason(),
			CreatedAt:             a.CreatedAt(),
			UpdatedAt:             a.UpdatedAt(),
		})
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		c.logger.Warn("agenda cache encode failed", slog.String("error", err.Error()))
		return
	}
	if err := c.client.Set(ctx, agendaKey(from, to), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("agenda cache write failed", slog.String("error", err.Error()))
	}
}
