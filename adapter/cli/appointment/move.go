package appointment

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
	"github.com/praxishq/praxis/internal/scheduling/application/services"
	"github.com/praxishq/praxis/internal/scheduling/domain"
)

var moveStart string

var moveCmd = &cobra.Command{
	Use:   "move <appointment-id>",
	Short: "Move an appointment to a new slot",
	Long: `Move an appointment to a new start time through the reschedule
flow: the change is applied optimistically and rolled back if the
store rejects it.

Example:
  praxis appointment move <id> --start "2026-09-09 11:00"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid appointment ID: %w", err)
		}
		newStart, err := parseStart(moveStart)
		if err != nil {
			return err
		}

		current, err := app.GetAppointmentHandler.Handle(cmd.Context(), queries.GetAppointmentQuery{ID: id})
		if err != nil {
			return err
		}

		view := services.ViewOf(current)
		err = app.RescheduleCoordinator.Move(cmd.Context(), &view, newStart, app.ActorID)

		var conflictErr *domain.ConflictError
		if errors.As(err, &conflictErr) {
			fmt.Printf("Move rejected, appointment stays at %s.\n",
				view.StartTime.Format(startTimeLayout))
			printConflictReport(conflictErr.Report)
			suggestAlternatives(cmd, app, view.DoctorID, newStart)
			return err
		}
		if err != nil {
			return err
		}

		fmt.Printf("Appointment moved to %s.\n", view.StartTime.Format(startTimeLayout))
		return nil
	},
}

func init() {
	moveCmd.Flags().StringVar(&moveStart, "start", "", "new start time \"YYYY-MM-DD HH:MM\" (required)")
	_ = moveCmd.MarkFlagRequired("start")
}
