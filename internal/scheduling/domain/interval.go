package domain

import "time"

// SlotDuration is the fixed length of every appointment. The clinic books
// on a uniform 30-minute grid; duration is not configurable per record.
const SlotDuration = 30 * time.Minute

// TimeWindow is a half-open interval [Start, End).
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// NewSlot returns the window occupied by an appointment starting at start.
func NewSlot(start time.Time) TimeWindow {
	return TimeWindow{Start: start, End: start.Add(SlotDuration)}
}

// Overlaps reports whether two windows overlap. Because windows are
// half-open, an appointment ending exactly when another starts does not
// overlap: back-to-back bookings are allowed.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && other.Start.Before(w.End)
}

// Contains reports whether t falls within the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Duration returns the window length.
func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}
