package appointment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/commands"
	"github.com/praxishq/praxis/internal/scheduling/domain"
)

var (
	bookDoctorID  string
	bookPatientID string
	bookRoom      string
	bookStart     string
	bookReason    string
)

var bookCmd = &cobra.Command{
	Use:   "book",
	Short: "Book a new appointment",
	Long: `Book a 30-minute appointment for a doctor and patient. If the
slot is taken, free alternatives are suggested.

Examples:
  praxis appointment book --doctor <id> --patient <id> --room A2 --start "2026-09-07 09:00"
  praxis appointment book --doctor <id> --patient <id> --room A2 --start "2026-09-07 14:30" --reason "follow-up"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		doctorID, err := uuid.Parse(bookDoctorID)
		if err != nil {
			return fmt.Errorf("invalid doctor ID: %w", err)
		}
		patientID, err := uuid.Parse(bookPatientID)
		if err != nil {
			return fmt.Errorf("invalid patient ID: %w", err)
		}
		start, err := parseStart(bookStart)
		if err != nil {
			return err
		}

		booked, err := app.BookAppointmentHandler.Handle(cmd.Context(), commands.BookAppointmentCommand{
			DoctorID:  doctorID,
			PatientID: patientID,
			Room:      bookRoom,
			Start:     start,
			Reason:    bookReason,
			ActorID:   app.ActorID,
		})

		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			fmt.Println("The slot is already taken.")
			printConflictReport(conflictErr.Report)
			suggestAlternatives(cmd, app, doctorID, start)
			return err
		}
		if err != nil {
			return err
		}

		fmt.Println("Appointment booked.")
		printAppointment(booked)
		return nil
	},
}

func init() {
	bookCmd.Flags().StringVar(&bookDoctorID, "doctor", "", "doctor ID (required)")
	bookCmd.Flags().StringVar(&bookPatientID, "patient", "", "patient ID (required)")
	bookCmd.Flags().StringVar(&bookRoom, "room", "", "room (required)")
	bookCmd.Flags().StringVar(&bookStart, "start", "", "start time \"YYYY-MM-DD HH:MM\" (required)")
	bookCmd.Flags().StringVar(&bookReason, "reason", "", "visit reason")
	_ = bookCmd.MarkFlagRequired("doctor")
	_ = bookCmd.MarkFlagRequired("patient")
	_ = bookCmd.MarkFlagRequired("room")
	_ = bookCmd.MarkFlagRequired("start")
}
