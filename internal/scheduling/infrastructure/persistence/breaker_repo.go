package persistence

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker/v2"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

// BreakerAppointmentRepository decorates an AppointmentRepository with a
// circuit breaker. Every infrastructure failure (network error, timeout,
// driver I/O) surfaces as ErrStoreUnavailable: the outcome of the attempted
// write is unknown and callers must re-query before retrying. When the
// store keeps failing the breaker opens and calls fail fast with the same
// error instead of piling up on a dead backend.
//
// Domain outcomes (conflicts, not-found, validation) count as successes:
// only infrastructure failures trip the breaker.
type BreakerAppointmentRepository struct {
	inner   domain.AppointmentRepository
	breaker *gobreaker.CircuitBreaker[any]
	logger  *slog.Logger
}

// NewBreakerAppointmentRepository wraps repo with a circuit breaker.
func NewBreakerAppointmentRepository(repo domain.AppointmentRepository, logger *slog.Logger) *BreakerAppointmentRepository {
	settings := gobreaker.Settings{
		Name:    "appointment-store",
		Timeout: 10 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: isDomainOutcome,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("store breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}

	return &BreakerAppointmentRepository{
		inner:   repo,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
		logger:  logger,
	}
}

func isDomainOutcome(err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrNotFound) {
		return true
	}
	var conflictErr *domain.ConflictError
	if errors.As(err, &conflictErr) {
		return true
	}
	var transitionErr *domain.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		return true
	}
	var validationErr *domain.ValidationError
	return errors.As(err, &validationErr)
}

func (r *BreakerAppointmentRepository) execute(op func() error) error {
	_, err := r.breaker.Execute(func() (any, error) {
		return nil, op()
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("%w: circuit open", domain.ErrStoreUnavailable)
	case isDomainOutcome(err):
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

func (r *BreakerAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.execute(func() error { return r.inner.Create(ctx, a) })
}

func (r *BreakerAppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	return r.execute(func() error { return r.inner.Update(ctx, a) })
}

func (r *BreakerAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.execute(func() error { return r.inner.Delete(ctx, id) })
}

func (r *BreakerAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	var found *domain.Appointment
	err := r.execute(func() error {
		var innerErr error
		found, innerErr = r.inner.FindByID(ctx, id)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func (r *BreakerAppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *domain.Status) ([]*domain.Appointment, error) {
	var listed []*domain.Appointment
	err := r.execute(func() error {
		var innerErr error
		listed, innerErr = r.inner.ListByDoctor(ctx, doctorID, status)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return listed, nil
}

func (r *BreakerAppointmentRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	var listed []*domain.Appointment
	err := r.execute(func() error {
		var innerErr error
		listed, innerErr = r.inner.ListByDateRange(ctx, from, to)
		return innerErr
	})
	if err != nil {
		return nil, err
	}
	return listed, nil
}
