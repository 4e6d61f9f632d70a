package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/praxishq/praxis/internal/shared/domain"
)

// Appointment is the central aggregate: a 30-minute booking of a doctor,
// a room and a patient at a clinic-local start time.
//
// Invariant guarded at the command boundary and at commit by the store:
// for any doctor, the windows of all scheduled appointments are pairwise
// non-overlapping. Appointments in terminal states are excluded, so a
// cancelled slot may be reused.
type Appointment struct {
	sharedDomain.BaseAggregateRoot
	doctorID              uuid.UUID
	patientID             uuid.UUID
	room                  string
	startTime             time.Time
	reason                string
	status                Status
	cancellationInitiator string
	cancellationReason    string
}

// Amendment describes an edit to a scheduled appointment. Nil fields are
// left unchanged.
type Amendment struct {
	Start    *time.Time
	DoctorID *uuid.UUID
	Room     *string
	Reason   *string
}

// Empty reports whether the amendment changes nothing.
func (am Amendment) Empty() bool {
	return am.Start == nil && am.DoctorID == nil && am.Room == nil && am.Reason == nil
}

// MovesWindow reports whether the amendment affects the conflict check,
// i.e. changes the start time and/or the doctor.
func (am Amendment) MovesWindow() bool {
	return am.Start != nil || am.DoctorID != nil
}

// NewAppointment creates a new appointment in the scheduled state.
func NewAppointment(doctorID, patientID uuid.UUID, room string, start time.Time, reason string) (*Appointment, error) {
	if doctorID == uuid.Nil {
		return nil, &ValidationError{Field: "doctor_id", Reason: "required"}
	}
	if patientID == uuid.Nil {
		return nil, &ValidationError{Field: "patient_id", Reason: "required"}
	}
	if room == "" {
		return nil, &ValidationError{Field: "room", Reason: "required"}
	}
	if start.IsZero() {
		return nil, &ValidationError{Field: "start_time", Reason: "required"}
	}

	a := &Appointment{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		doctorID:          doctorID,
		patientID:         patientID,
		room:              room,
		startTime:         start,
		reason:            reason,
		status:            StatusScheduled,
	}

	a.AddDomainEvent(NewAppointmentBooked(a))

	return a, nil
}

// Getters
func (a *Appointment) DoctorID() uuid.UUID          { return a.doctorID }
func (a *Appointment) PatientID() uuid.UUID         { return a.patientID }
func (a *Appointment) Room() string                 { return a.room }
func (a *Appointment) StartTime() time.Time         { return a.startTime }
func (a *Appointment) Reason() string               { return a.reason }
func (a *Appointment) Status() Status               { return a.status }
func (a *Appointment) CancellationInitiator() string { return a.cancellationInitiator }
func (a *Appointment) CancellationReason() string   { return a.cancellationReason }

// EndTime returns the end of the occupied window.
func (a *Appointment) EndTime() time.Time {
	return a.startTime.Add(SlotDuration)
}

// Window returns the occupied half-open window.
func (a *Appointment) Window() TimeWindow {
	return NewSlot(a.startTime)
}

// Amend applies an edit. Editing is permitted only while scheduled; any
// attempt on a terminal appointment fails and leaves the record unchanged.
func (a *Appointment) Amend(am Amendment) error {
	if a.status != StatusScheduled {
		return &InvalidTransitionError{Status: a.status, Action: "edit"}
	}
	if am.Start != nil && am.Start.IsZero() {
		return &ValidationError{Field: "start_time", Reason: "required"}
	}
	if am.DoctorID != nil && *am.DoctorID == uuid.Nil {
		return &ValidationError{Field: "doctor_id", Reason: "required"}
	}
	if am.Room != nil && *am.Room == "" {
		return &ValidationError{Field: "room", Reason: "required"}
	}

	oldStart := a.startTime
	oldDoctor := a.doctorID

	if am.Start != nil {
		a.startTime = *am.Start
	}
	if am.DoctorID != nil {
		a.doctorID = *am.DoctorID
	}
	if am.Room != nil {
		a.room = *am.Room
	}
	if am.Reason != nil {
		a.reason = *am.Reason
	}

	if !a.startTime.Equal(oldStart) || a.doctorID != oldDoctor {
		a.AddDomainEvent(NewAppointmentRescheduled(a.ID(), oldStart, a.startTime, oldDoctor, a.doctorID))
	}

	a.Touch()
	return nil
}

// Cancel moves the appointment into the cancellation terminal state chosen
// by the caller. The core does not decide between the cancellation states;
// business policy (who cancelled, how late) lives with the caller.
func (a *Appointment) Cancel(target Status, initiatedBy, reason string) error {
	if !target.IsCancellation() {
		return &ValidationError{Field: "status", Reason: "not a cancellation status: " + string(target)}
	}
	if initiatedBy == "" {
		return &ValidationError{Field: "initiated_by", Reason: "required"}
	}
	if err := a.status.CanTransitionTo(target); err != nil {
		return err
	}

	a.status = target
	a.cancellationInitiator = initiatedBy
	a.cancellationReason = reason
	a.Touch()

	a.AddDomainEvent(NewAppointmentCancelled(a))

	return nil
}

// Complete marks the appointment as completed.
func (a *Appointment) Complete() error {
	if err := a.status.CanTransitionTo(StatusCompleted); err != nil {
		return err
	}

	a.status = StatusCompleted
	a.Touch()

	a.AddDomainEvent(NewAppointmentCompleted(a))

	return nil
}

// MarkNoShow records that the patient did not show up.
func (a *Appointment) MarkNoShow() error {
	if err := a.status.CanTransitionTo(StatusNoShow); err != nil {
		return err
	}

	a.status = StatusNoShow
	a.Touch()

	a.AddDomainEvent(NewAppointmentNoShow(a))

	return nil
}

// RehydrateAppointment recreates an appointment from persisted state.
func RehydrateAppointment(
	id uuid.UUID,
	doctorID, patientID uuid.UUID,
	room string,
	start time.Time,
	reason string,
	status Status,
	cancellationInitiator, cancellationReason string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		BaseAggregateRoot:     sharedDomain.RehydrateBaseAggregateRoot(sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		doctorID:              doctorID,
		patientID:             patientID,
		room:                  room,
		startTime:             start,
		reason:                reason,
		status:                status,
		cancellationInitiator: cancellationInitiator,
		cancellationReason:    cancellationReason,
	}
}
