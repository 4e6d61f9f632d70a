package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// AgendaFilter selects a subset of the appointment set for presentation.
// All supplied fields must match; nil fields are wildcards. The filter is
// pure data; it knows nothing about rendering.
type AgendaFilter struct {
	Status   *Status
	DoctorID *uuid.UUID
	Room     *string
	Day      *time.Time
}

// Matches reports whether the appointment satisfies every set filter.
func (f AgendaFilter) Matches(a *Appointment) bool {
	if f.Status != nil && a.Status() != *f.Status {
		return false
	}
	if f.DoctorID != nil && a.DoctorID() != *f.DoctorID {
		return false
	}
	if f.Room != nil && a.Room() != *f.Room {
		return false
	}
	if f.Day != nil && !SameDay(a.StartTime(), *f.Day) {
		return false
	}
	return true
}

// FilterAgenda returns the appointments matching the filter, ordered by
// start time.
func FilterAgenda(appointments []*Appointment, f AgendaFilter) []*Appointment {
	matched := make([]*Appointment, 0)
	for _, a := range appointments {
		if f.Matches(a) {
			matched = append(matched, a)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].StartTime().Before(matched[j].StartTime())
	})
	return matched
}

// AgendaGroups buckets appointments for tabbed presentation. The cancelled
// bucket is the union of the three cancellation states.
type AgendaGroups struct {
	Scheduled []*Appointment
	Completed []*Appointment
	Cancelled []*Appointment
}

// GroupByOutcome buckets appointments by outcome. No-shows belong to none
// of the three tabs.
func GroupByOutcome(appointments []*Appointment) AgendaGroups {
	groups := AgendaGroups{
		Scheduled: make([]*Appointment, 0),
		Completed: make([]*Appointment, 0),
		Cancelled: make([]*Appointment, 0),
	}
	for _, a := range appointments {
		switch {
		case a.Status() == StatusScheduled:
			groups.Scheduled = append(groups.Scheduled, a)
		case a.Status() == StatusCompleted:
			groups.Completed = append(groups.Completed, a)
		case a.Status().IsCancellation():
			groups.Cancelled = append(groups.Cancelled, a)
		}
	}
	return groups
}
