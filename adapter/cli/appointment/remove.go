package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/commands"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:   "remove <appointment-id>",
	Short: "Permanently delete an appointment record",
	Long: `Permanently delete an appointment record. This bypasses the
normal lifecycle; prefer cancel or complete unless the record was
created by mistake.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid appointment ID: %w", err)
		}

		if !removeForce {
			return fmt.Errorf("refusing to delete without --force")
		}

		if err := app.DeleteAppointmentHandler.Handle(cmd.Context(), commands.DeleteAppointmentCommand{ID: id}); err != nil {
			return err
		}

		fmt.Println("Appointment deleted.")
		return nil
	},
}

func init() {
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "confirm permanent deletion")
}
