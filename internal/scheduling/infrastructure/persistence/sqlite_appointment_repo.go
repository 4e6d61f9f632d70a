package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/praxishq/praxis/internal/scheduling/domain"
	sharedPersistence "github.com/praxishq/praxis/internal/shared/infrastructure/persistence"
)

// SQLiteAppointmentRepository implements domain.AppointmentRepository on
// SQLite for local single-clinic mode.
//
// SQLite has no exclusion constraints, so the store-side conflict check
// happens as an overlap recheck inside the same transaction as the write.
// With the single-writer connection this is equivalent to the Postgres
// constraint: a check/commit race cannot interleave between the recheck
// and the write.
type SQLiteAppointmentRepository struct {
	db *sql.DB
}

// NewSQLiteAppointmentRepository creates a new SQLite repository.
func NewSQLiteAppointmentRepository(db *sql.DB) *SQLiteAppointmentRepository {
	return &SQLiteAppointmentRepository{db: db}
}

type sqlExecer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (r *SQLiteAppointmentRepository) execer(ctx context.Context) sqlExecer {
	if info, ok := sharedPersistence.SQLiteTxInfoFromContext(ctx); ok {
		return info.Tx
	}
	return r.db
}

const sqliteAppointmentColumns = `
	id, doctor_id, patient_id, room, start_time, reason, status,
	cancellation_initiator, cancellation_reason, created_at, updated_at
`

// Create persists a new appointment.
func (r *SQLiteAppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	if err := r.rejectOverlap(ctx, a); err != nil {
		return err
	}

	const query = `
		INSERT INTO appointments (
			id, doctor_id, patient_id, room, start_time, reason, status,
			cancellation_initiator, cancellation_reason, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.execer(ctx).ExecContext(ctx, query,
		a.ID().String(), a.DoctorID().String(), a.PatientID().String(), a.Room(),
		formatTime(a.StartTime()), a.Reason(), string(a.Status()),
		a.CancellationInitiator(), a.CancellationReason(),
		formatTime(a.CreatedAt()), formatTime(a.UpdatedAt()),
	)
	if err != nil {
		return fmt.Errorf("insert appointment: %w", err)
	}
	return nil
}

// Update persists changes to an existing appointment.
func (r *SQLiteAppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	if err := r.rejectOverlap(ctx, a); err != nil {
		return err
	}

	const query = `
		UPDATE appointments SET
			doctor_id = ?, patient_id = ?, room = ?, start_time = ?,
			reason = ?, status = ?, cancellation_initiator = ?,
			cancellation_reason = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.execer(ctx).ExecContext(ctx, query,
		a.DoctorID().String(), a.PatientID().String(), a.Room(),
		formatTime(a.StartTime()), a.Reason(), string(a.Status()),
		a.CancellationInitiator(), a.CancellationReason(),
		formatTime(a.UpdatedAt()), a.ID().String(),
	)
	if err != nil {
		return fmt.Errorf("update appointment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an appointment.
func (r *SQLiteAppointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.execer(ctx).ExecContext(ctx,
		`DELETE FROM appointments WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// FindByID returns the appointment with the given id.
func (r *SQLiteAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	row := r.execer(ctx).QueryRowContext(ctx,
		`SELECT `+sqliteAppointmentColumns+` FROM appointments WHERE id = ?`, id.String())

	a, err := scanSQLiteAppointment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return a, err
}

// ListByDoctor returns a doctor's appointments ordered by start time.
func (r *SQLiteAppointmentRepository) ListByDoctor(ctx context.Context, doctorID uuid.UUID, status *domain.Status) ([]*domain.Appointment, error) {
	query := `SELECT ` + sqliteAppointmentColumns + ` FROM appointments WHERE doctor_id = ?`
	args := []any{doctorID.String()}
	if status != nil {
		query += ` AND status = ?`
		args = append(args, string(*status))
	}
	query += ` ORDER BY start_time`

	rows, err := r.execer(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list appointments by doctor: %w", err)
	}
	defer rows.Close()

	return scanSQLiteAppointments(rows)
}

// ListByDateRange returns appointments starting within [from, to).
func (r *SQLiteAppointmentRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	rows, err := r.execer(ctx).QueryContext(ctx,
		`SELECT `+sqliteAppointmentColumns+` FROM appointments
		 WHERE start_time >= ? AND start_time < ?
		 ORDER BY start_time`,
		formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("list appointments by date range: %w", err)
	}
	defer rows.Close()

	return scanSQLiteAppointments(rows)
}

// rejectOverlap enforces the no-double-booking rule for scheduled rows.
// Slots all have the same length, so the half-open window overlap test
// reduces to: existing.start in (candidate.start - slot, candidate.end).
func (r *SQLiteAppointmentRepository) rejectOverlap(ctx context.Context, a *domain.Appointment) error {
	if a.Status() != domain.StatusScheduled {
		return nil
	}

	lower := a.StartTime().Add(-domain.SlotDuration)
	upper := a.EndTime()

	rows, err := r.execer(ctx).QueryContext(ctx,
		`SELECT `+sqliteAppointmentColumns+` FROM appointments
		 WHERE doctor_id = ? AND status = ? AND id <> ?
		   AND start_time > ? AND start_time < ?
		 ORDER BY start_time`,
		a.DoctorID().String(), string(domain.StatusScheduled), a.ID().String(),
		formatTime(lower), formatTime(upper))
	if err != nil {
		return fmt.Errorf("check overlap: %w", err)
	}
	defer rows.Close()

	conflicting, err := scanSQLiteAppointments(rows)
	if err != nil {
		return err
	}
	if len(conflicting) > 0 {
		return &domain.ConflictError{Report: domain.NewConflictReport(conflicting)}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		idStr, doctorStr, patientStr              string
		room, reason, status                      string
		cancellationInitiator, cancellationReason string
		startStr, createdStr, updatedStr          string
	)
	if err := row.Scan(
		&idStr, &doctorStr, &patientStr, &room, &startStr, &reason, &status,
		&cancellationInitiator, &cancellationReason, &createdStr, &updatedStr,
	); err != nil {
		return nil, err
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("parse appointment id: %w", err)
	}
	doctorID, err := uuid.Parse(doctorStr)
	if err != nil {
		return nil, fmt.Errorf("parse doctor id: %w", err)
	}
	patientID, err := uuid.Parse(patientStr)
	if err != nil {
		return nil, fmt.Errorf("parse patient id: %w", err)
	}
	startTime, err := parseTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}
	createdAt, err := parseTime(createdStr)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	updatedAt, err := parseTime(updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
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

func scanSQLiteAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanSQLiteAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, a)
	}
	return appointments, rows.Err()
}

// Times are stored as fixed-width UTC timestamps so lexicographic
// comparison in SQL matches chronological order. RFC3339Nano would trim
// trailing zeros, and a fractional second then sorts before a whole one
// ('.' < 'Z'), which would let a sub-second start slip past the overlap
// recheck.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
