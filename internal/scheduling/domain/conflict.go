package domain

// ConflictReport is the result of a single conflict evaluation. It is
// produced fresh on every query and must not be cached: any appointment
// state change invalidates it immediately.
type ConflictReport struct {
	HasConflict bool
	Conflicting []*Appointment
}

// NewConflictReport builds a report from the overlapping appointments found.
func NewConflictReport(conflicting []*Appointment) ConflictReport {
	return ConflictReport{
		HasConflict: len(conflicting) > 0,
		Conflicting: conflicting,
	}
}
