package domain

import "time"

// Clinic business hours: Monday through Friday, 08:00 to 18:00 clinic-local,
// on a 30-minute grid. Weekends are never offered.
const (
	OpeningHour = 8
	ClosingHour = 18
)

// IsBusinessDay reports whether t falls on a weekday.
func IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NextBusinessDay returns the first weekday strictly after the day of t.
func NextBusinessDay(t time.Time) time.Time {
	day := StartOfDay(t).AddDate(0, 0, 1)
	for !IsBusinessDay(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// StartOfDay truncates t to midnight in its location.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayWindow returns the business-hours window for the day of t.
func DayWindow(t time.Time) TimeWindow {
	day := StartOfDay(t)
	return TimeWindow{
		Start: day.Add(OpeningHour * time.Hour),
		End:   day.Add(ClosingHour * time.Hour),
	}
}

// SlotGrid enumerates every bookable window for the day of t, earliest
// first. Slot boundaries fall on :00 and :30 only; the last slot starts
// at 17:30 so that it ends exactly at closing. Returns nil on weekends.
func SlotGrid(t time.Time) []TimeWindow {
	if !IsBusinessDay(t) {
		return nil
	}

	window := DayWindow(t)
	var slots []TimeWindow
	for cur := window.Start; !cur.Add(SlotDuration).After(window.End); cur = cur.Add(SlotDuration) {
		slots = append(slots, NewSlot(cur))
	}
	return slots
}

// WithinBusinessHours reports whether the window lies fully inside the
// business hours of its own day.
func WithinBusinessHours(w TimeWindow) bool {
	if !IsBusinessDay(w.Start) {
		return false
	}
	day := DayWindow(w.Start)
	return !w.Start.Before(day.Start) && !w.End.After(day.End)
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
