package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validStart() time.Time {
	return time.Date(2026, 9, 7, 9, 0, 0, 0, time.Local)
}

func newTestAppointment(t *testing.T) *Appointment {
	t.Helper()
	a, err := NewAppointment(uuid.New(), uuid.New(), "A1", validStart(), "check-up")
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func TestNewAppointment(t *testing.T) {
	t.Run("creates scheduled appointment and emits booked event", func(t *testing.T) {
		doctorID := uuid.New()
		patientID := uuid.New()

		a, err := NewAppointment(doctorID, patientID, "A1", validStart(), "check-up")

		require.NoError(t, err)
		assert.Equal(t, StatusScheduled, a.Status())
		assert.Equal(t, doctorID, a.DoctorID())
		assert.Equal(t, patientID, a.PatientID())
		assert.Equal(t, validStart().Add(SlotDuration), a.EndTime())

		events := a.DomainEvents()
		require.Len(t, events, 1)
		booked, ok := events[0].(*AppointmentBooked)
		require.True(t, ok)
		assert.Equal(t, a.ID(), booked.AggregateID())
		assert.Equal(t, RoutingKeyAppointmentBooked, booked.RoutingKey())
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		cases := []struct {
			name      string
			doctorID  uuid.UUID
			patientID uuid.UUID
			room      string
			start     time.Time
		}{
			{"missing doctor", uuid.Nil, uuid.New(), "A1", validStart()},
			{"missing patient", uuid.New(), uuid.Nil, "A1", validStart()},
			{"missing room", uuid.New(), uuid.New(), "", validStart()},
			{"missing start", uuid.New(), uuid.New(), "A1", time.Time{}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := NewAppointment(tc.doctorID, tc.patientID, tc.room, tc.start, "")
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
			})
		}
	})
}

func TestAppointment_Amend(t *testing.T) {
	t.Run("changes only the set fields", func(t *testing.T) {
		a := newTestAppointment(t)
		room := "B2"
		reason := "follow-up"

		err := a.Amend(Amendment{Room: &room, Reason: &reason})

		require.NoError(t, err)
		assert.Equal(t, "B2", a.Room())
		assert.Equal(t, "follow-up", a.Reason())
		assert.Equal(t, validStart(), a.StartTime())
		assert.Empty(t, a.DomainEvents(), "room/reason edits do not move the window")
	})

	t.Run("emits rescheduled event when start changes", func(t *testing.T) {
		a := newTestAppointment(t)
		newStart := validStart().Add(2 * time.Hour)

		err := a.Amend(Amendment{Start: &newStart})

		require.NoError(t, err)
		assert.Equal(t, newStart, a.StartTime())

		events := a.DomainEvents()
		require.Len(t, events, 1)
		rescheduled, ok := events[0].(*AppointmentRescheduled)
		require.True(t, ok)
		assert.Equal(t, validStart(), rescheduled.OldStartTime)
		assert.Equal(t, newStart, rescheduled.NewStartTime)
	})

	t.Run("emits rescheduled event when doctor changes", func(t *testing.T) {
		a := newTestAppointment(t)
		oldDoctor := a.DoctorID()
		newDoctor := uuid.New()

		err := a.Amend(Amendment{DoctorID: &newDoctor})

		require.NoError(t, err)
		events := a.DomainEvents()
		require.Len(t, events, 1)
		rescheduled, ok := events[0].(*AppointmentRescheduled)
		require.True(t, ok)
		assert.Equal(t, oldDoctor, rescheduled.OldDoctorID)
		assert.Equal(t, newDoctor, rescheduled.NewDoctorID)
	})

	t.Run("rejects edits on terminal appointments unchanged", func(t *testing.T) {
		a := newTestAppointment(t)
		require.NoError(t, a.Complete())
		before := a.StartTime()

		newStart := validStart().Add(time.Hour)
		err := a.Amend(Amendment{Start: &newStart})

		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, before, a.StartTime(), "record must stay unchanged")
	})

	t.Run("rejects clearing required fields", func(t *testing.T) {
		a := newTestAppointment(t)
		empty := ""
		err := a.Amend(Amendment{Room: &empty})
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})
}

func TestAppointment_Cancel(t *testing.T) {
	t.Run("records the chosen cancellation state and initiator", func(t *testing.T) {
		for _, target := range []Status{StatusCancelled, StatusLateCancelled, StatusClinicCancelled} {
			a := newTestAppointment(t)

			err := a.Cancel(target, "reception", "doctor ill")

			require.NoError(t, err, string(target))
			assert.Equal(t, target, a.Status())
			assert.Equal(t, "reception", a.CancellationInitiator())
			assert.Equal(t, "doctor ill", a.CancellationReason())

			events := a.DomainEvents()
			require.Len(t, events, 1)
			cancelled, ok := events[0].(*AppointmentCancelled)
			require.True(t, ok)
			assert.Equal(t, string(target), cancelled.Status)
		}
	})

	t.Run("reason is optional", func(t *testing.T) {
		a := newTestAppointment(t)
		require.NoError(t, a.Cancel(StatusCancelled, "patient", ""))
		assert.Empty(t, a.CancellationReason())
	})

	t.Run("requires an initiator", func(t *testing.T) {
		a := newTestAppointment(t)
		err := a.Cancel(StatusCancelled, "", "")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, StatusScheduled, a.Status())
	})

	t.Run("rejects non-cancellation targets", func(t *testing.T) {
		a := newTestAppointment(t)
		err := a.Cancel(StatusCompleted, "reception", "")
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
	})

	t.Run("rejects cancelling a terminal appointment", func(t *testing.T) {
		a := newTestAppointment(t)
		require.NoError(t, a.Cancel(StatusCancelled, "patient", ""))

		err := a.Cancel(StatusLateCancelled, "patient", "")
		var transitionErr *InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Equal(t, StatusCancelled, a.Status())
	})
}

func TestAppointment_Complete(t *testing.T) {
	a := newTestAppointment(t)

	require.NoError(t, a.Complete())
	assert.Equal(t, StatusCompleted, a.Status())

	err := a.Complete()
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
}

func TestAppointment_MarkNoShow(t *testing.T) {
	a := newTestAppointment(t)

	require.NoError(t, a.MarkNoShow())
	assert.Equal(t, StatusNoShow, a.Status())
	assert.Empty(t, a.CancellationInitiator(), "no-show is not a cancellation")

	err := a.MarkNoShow()
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
}
