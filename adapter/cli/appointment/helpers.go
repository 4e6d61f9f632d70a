package appointment

import (
	"fmt"
	"time"

	"github.com/praxishq/praxis/internal/scheduling/domain"
)

const startTimeLayout = "2006-01-02 15:04"

// parseStart parses a clinic-local start time in "YYYY-MM-DD HH:MM" form.
func parseStart(value string) (time.Time, error) {
	t, err := time.ParseInLocation(startTimeLayout, value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start time, use \"YYYY-MM-DD HH:MM\": %w", err)
	}
	return t, nil
}

func printAppointment(a *domain.Appointment) {
	fmt.Printf("ID:       %s\n", a.ID())
	fmt.Printf("Doctor:   %s\n", a.DoctorID())
	fmt.Printf("Patient:  %s\n", a.PatientID())
	if a.Room() != "" {
		fmt.Printf("Room:     %s\n", a.Room())
	}
	fmt.Printf("Start:    %s\n", a.StartTime().Format(startTimeLayout))
	fmt.Printf("End:      %s\n", a.EndTime().Format("15:04"))
	fmt.Printf("Status:   %s\n", a.Status())
	if a.Reason() != "" {
		fmt.Printf("Reason:   %s\n", a.Reason())
	}
	if a.Status().IsCancellation() {
		fmt.Printf("Cancelled by: %s\n", a.CancellationInitiator())
		if a.CancellationReason() != "" {
			fmt.Printf("Cancellation reason: %s\n", a.CancellationReason())
		}
	}
}

func printConflictReport(report domain.ConflictReport) {
	if !report.HasConflict {
		fmt.Println("No conflict: the slot is free.")
		return
	}
	fmt.Printf("Conflict with %d scheduled appointment(s):\n", len(report.Conflicting))
	for _, a := range report.Conflicting {
		fmt.Printf("  %s  %s - %s  (patient %s)\n",
			a.ID(), a.StartTime().Format(startTimeLayout),
			a.EndTime().Format("15:04"), a.PatientID())
	}
}
