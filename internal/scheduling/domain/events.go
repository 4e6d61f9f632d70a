package domain

import (
	"time"

	"github.com/google/uuid"

	sharedDomain "github.com/praxishq/praxis/internal/shared/domain"
)

const (
	AggregateType = "Appointment"

	RoutingKeyAppointmentBooked      = "scheduling.appointment.booked"
	RoutingKeyAppointmentRescheduled = "scheduling.appointment.rescheduled"
	RoutingKeyAppointmentCancelled   = "scheduling.appointment.cancelled"
	RoutingKeyAppointmentCompleted   = "scheduling.appointment.completed"
	RoutingKeyAppointmentNoShow      = "scheduling.appointment.no_show"
)

// AppointmentBooked is emitted when a new appointment is created.
type AppointmentBooked struct {
	sharedDomain.BaseEvent
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	Room      string    `json:"room"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// NewAppointmentBooked creates an AppointmentBooked event.
func NewAppointmentBooked(a *Appointment) *AppointmentBooked {
	return &AppointmentBooked{
		BaseEvent: sharedDomain.NewBaseEvent(a.ID(), AggregateType, RoutingKeyAppointmentBooked),
		DoctorID:  a.DoctorID(),
		PatientID: a.PatientID(),
		Room:      a.Room(),
		StartTime: a.StartTime(),
		EndTime:   a.EndTime(),
	}
}

// AppointmentRescheduled is emitted when an appointment moves to a new
// time and/or doctor.
type AppointmentRescheduled struct {
	sharedDomain.BaseEvent
	OldStartTime time.Time `json:"old_start_time"`
	NewStartTime time.Time `json:"new_start_time"`
	OldDoctorID  uuid.UUID `json:"old_doctor_id"`
	NewDoctorID  uuid.UUID `json:"new_doctor_id"`
}

// NewAppointmentRescheduled creates an AppointmentRescheduled event.
func NewAppointmentRescheduled(id uuid.UUID, oldStart, newStart time.Time, oldDoctor, newDoctor uuid.UUID) *AppointmentRescheduled {
	return &AppointmentRescheduled{
		BaseEvent:    sharedDomain.NewBaseEvent(id, AggregateType, RoutingKeyAppointmentRescheduled),
		OldStartTime: oldStart,
		NewStartTime: newStart,
		OldDoctorID:  oldDoctor,
		NewDoctorID:  newDoctor,
	}
}

// AppointmentCancelled is emitted for every cancellation terminal state.
type AppointmentCancelled struct {
	sharedDomain.BaseEvent
	Status      string    `json:"status"`
	InitiatedBy string    `json:"initiated_by"`
	Reason      string    `json:"reason,omitempty"`
	StartTime   time.Time `json:"start_time"`
}

// NewAppointmentCancelled creates an AppointmentCancelled event.
func NewAppointmentCancelled(a *Appointment) *AppointmentCancelled {
	return &AppointmentCancelled{
		BaseEvent:   sharedDomain.NewBaseEvent(a.ID(), AggregateType, RoutingKeyAppointmentCancelled),
		Status:      string(a.Status()),
		InitiatedBy: a.CancellationInitiator(),
		Reason:      a.CancellationReason(),
		StartTime:   a.StartTime(),
	}
}

// AppointmentCompleted is emitted when an appointment is marked completed.
type AppointmentCompleted struct {
	sharedDomain.BaseEvent
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
}

// NewAppointmentCompleted creates an AppointmentCompleted event.
func NewAppointmentCompleted(a *Appointment) *AppointmentCompleted {
	return &AppointmentCompleted{
		BaseEvent: sharedDomain.NewBaseEvent(a.ID(), AggregateType, RoutingKeyAppointmentCompleted),
		DoctorID:  a.DoctorID(),
		PatientID: a.PatientID(),
	}
}

// AppointmentNoShow is emitted when a patient misses an appointment.
type AppointmentNoShow struct {
	sharedDomain.BaseEvent
	DoctorID  uuid.UUID `json:"doctor_id"`
	PatientID uuid.UUID `json:"patient_id"`
	StartTime time.Time `json:"start_time"`
}

// NewAppointmentNoShow creates an AppointmentNoShow event.
func NewAppointmentNoShow(a *Appointment) *AppointmentNoShow {
	return &AppointmentNoShow{
		BaseEvent: sharedDomain.NewBaseEvent(a.ID(), AggregateType, RoutingKeyAppointmentNoShow),
		DoctorID:  a.DoctorID(),
		PatientID: a.PatientID(),
		StartTime: a.StartTime(),
	}
}
