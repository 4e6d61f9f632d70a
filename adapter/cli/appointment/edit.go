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
	editStart  string
	editDoctor string
	editRoom   string
	editReason string
)

var editCmd = &cobra.Command{
	Use:   "edit <appointment-id>",
	Short: "Edit a scheduled appointment",
	Long: `Edit a scheduled appointment. Only flags that are set change the
record; moving the slot or the doctor re-checks for conflicts first.
Finished appointments cannot be edited.

Examples:
  praxis appointment edit <id> --start "2026-09-08 10:30"
  praxis appointment edit <id> --room B1 --reason "check-up"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid appointment ID: %w", err)
		}

		var amendment domain.Amendment
		if cmd.Flags().Changed("start") {
			start, err := parseStart(editStart)
			if err != nil {
				return err
			}
			amendment.Start = &start
		}
		if cmd.Flags().Changed("doctor") {
			doctorID, err := uuid.Parse(editDoctor)
			if err != nil {
				return fmt.Errorf("invalid doctor ID: %w", err)
			}
			amendment.DoctorID = &doctorID
		}
		if cmd.Flags().Changed("room") {
			amendment.Room = &editRoom
		}
		if cmd.Flags().Changed("reason") {
			amendment.Reason = &editReason
		}
		if amendment.Empty() {
			fmt.Println("Nothing to change.")
			return nil
		}

		updated, err := app.UpdateAppointmentHandler.Handle(cmd.Context(), commands.UpdateAppointmentCommand{
			ID:        id,
			Amendment: amendment,
			ActorID:   app.ActorID,
		})

		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			fmt.Println("The target slot is already taken.")
			printConflictReport(conflictErr.Report)
			return err
		}
		if err != nil {
			return err
		}

		fmt.Println("Appointment updated.")
		printAppointment(updated)
		return nil
	},
}

func init() {
	editCmd.Flags().StringVar(&editStart, "start", "", "new start time \"YYYY-MM-DD HH:MM\"")
	editCmd.Flags().StringVar(&editDoctor, "doctor", "", "new doctor ID")
	editCmd.Flags().StringVar(&editRoom, "room", "", "new room")
	editCmd.Flags().StringVar(&editReason, "reason", "", "new visit reason")
}
