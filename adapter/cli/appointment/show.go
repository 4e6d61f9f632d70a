package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
)

var showCmd = &cobra.Command{
	Use:   "show <appointment-id>",
	Short: "Show an appointment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid appointment ID: %w", err)
		}

		found, err := app.GetAppointmentHandler.Handle(cmd.Context(), queries.GetAppointmentQuery{ID: id})
		if err != nil {
			return err
		}

		printAppointment(found)
		return nil
	},
}
