package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedPersistence "github.com/praxishq/praxis/internal/shared/infrastructure/persistence"
)

// exclusionViolation is the SQLSTATE raised by the appointments_no_overlap
// exclusion constraint. The constraint is the store-side serialization
// point: it rejects the loser of a check/commit race even when both
// advisory pre-checks passed.
const exclusionViolation = "23P01"

// PostgresAppointmentRepository implements domain.AppointmentRepository
// using PostgreSQL.
type PostgresAppointmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAppointmentRepository creates a new Postgres repository.
func NewPostgresAppointmentRepository(pool *pgxpool.Pool) *PostgresAppointmentRepository {
	return &PostgresAppointmentRepository{pool: pool}
}

type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (r *PostgresAppointmentRepository) querier(ctx context.Context) pgxQuerier {
	if info, ok := sharedPersistence.PgTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.pool
}

const appointmentColumns = `
	id, doctor_id, patient_id, room, start_time, reason, status,
	cancellation_initiator, cancellation_reason, created_at, updated_at
`

// Create persists a new appointment.
func (r *PostgresAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	const query = `
		INSERT INTO appointments (
			id, doctor_id, patient_id, room, start_time, reason, status,
			cancellation_initiator, cancellation_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.querier(ctx).Exec(ctx, query,
		a.ID(), a.DoctorID(), a.PatientID(), a.Room(), a.StartTime(), a.Reason(),
		string(a.Status()), a.CancellationInitiator(), a.CancellationReason(),
		a.CreatedAt(), a.UpdatedAt(),
	)
	return r.mapWriteError(ctx, err, a)
}

// Update persists changes to an existing appointment.
func (r *PostgresAppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	const query = `
		UPDATE appointments SET
			doctor_id = $2, patient_id = $3, room = $4, start_time = $5,
			reason = $6, status = $7, cancellation_initiator = $8,
			cancellation_reason = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := r.querier(ctx).Exec(ctx, query,
		a.ID(), a.DoctorID(), a.PatientID(), a.Room(), a.StartTime(), a.Reason(),
		string(a.Status()), a.CancellationInitiator(), a.CancellationReason(),
		a.UpdatedAt(),
	)
	if err != nil {
		return r.mapWriteError(ctx, err, a)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an appointment.
func (r *PostgresAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.querier(ctx).Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByID returns the appointment with the given id.
func (r *PostgresAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	row := r.querier(ctx).QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id)

	a, err := scanAppointment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// ListByDoctor returns a doctor's appointments ordered by start time.
func (r *PostgresAppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *domain.Status) ([]*domain.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE doctor_id = $1`
	args := []any{doctorID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY start_time`

	rows, err := r.querier(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// ListByDateRange returns appointments starting within [from, to).
func (r *PostgresAppointmentRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	rows, err := r.querier(ctx).Query(ctx,
		`SELECT `+appointmentColumns+` FROM appointments
		 WHERE start_time >= $1 AND start_time < $2
		 ORDER BY start_time`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// mapWriteError converts an exclusion-constraint rejection into the same
// ConflictError shape the advisory pre-check produces, including the
// overlapping records.
func (r *PostgresAppointmentRepository) mapWriteError(ctx context.Context, err error, a *domain.Appointment) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != exclusionViolation {
		return err
	}

	report, reportErr := r.overlapReport(ctx, a)
	if reportErr != nil {
		// The rejection stands even if the report query failed.
		return &domain.ConflictError{Report: domain.ConflictReport{HasConflict: true}}
	}
	return &domain.ConflictError{Report: report}
}

func (r *PostgresAppointmentRepository) overlapReport(ctx context.Context, a *domain.Appointment) (domain.ConflictReport, error) {
	scheduled := domain.StatusScheduled
	existing, err := r.ListByDoctor(ctx, a.DoctorID(), &scheduled)
	if err != nil {
		return domain.ConflictReport{}, err
	}

	var conflicting []*domain.Appointment
	for _, other := range existing {
		if other.ID() == a.ID() {
			continue
		}
		if other.Window().Overlaps(a.Window()) {
			conflicting = append(conflicting, other)
		}
	}
	return domain.NewConflictReport(conflicting), nil
}

func scanAppointment(row pgx.Row) (*domain.Appointment, error) {
	var (
		id, doctorID, patientID                    uuid.UUID
		room, reason, status                       string
		cancellationInitiator, cancellationReason  string
		startTime, createdAt, updatedAt            time.Time
	)
	if err := row.Scan(
		&id, &doctorID, &patientID, &room, &startTime, &reason, &status,
		&cancellationInitiator, &cancellationReason, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	parsed, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateAppointment(
		id, doctorID, patientID, room, startTime, reason, parsed,
		cancellationInitiator, cancellationReason, createdAt, updatedAt,
	), nil
}

func scanAppointments(rows pgx.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}
