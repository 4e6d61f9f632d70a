package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/commands"
)

var completeCmd = &cobra.Command{
	Use:   "complete <appointment-id>",
	Short: "Mark an appointment as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid appointment ID: %w", err)
		}

		completed, err := app.CompleteAppointmentHandler.Handle(cmd.Context(), commands.CompleteAppointmentCommand{
			ID:      id,
			ActorID: app.ActorID,
		})
		if err != nil {
			return err
		}

		fmt.Println("Appointment completed.")
		printAppointment(completed)
		return nil
	},
}

var noShowCmd = &cobra.Command{
	Use:   "no-show <appointment-id>",
	Short: "Mark an appointment as a no-show",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid appointment ID: %w", err)
		}

		marked, err := app.MarkNoShowHandler.Handle(cmd.Context(), commands.MarkNoShowCommand{
			ID:      id,
			ActorID: app.ActorID,
		})
		if err != nil {
			return err
		}

		fmt.Println("Appointment marked as no-show.")
		printAppointment(marked)
		return nil
	},
}
