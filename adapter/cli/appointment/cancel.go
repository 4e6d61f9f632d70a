package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/commands"
	"github.com/praxishq/praxis/internal/scheduling/domain"
)

var (
	cancelOutcome     string
	cancelInitiatedBy string
	cancelReason      string
)

var cancelCmd = &cobra.Command{
	Use:   "cancel <appointment-id>",
	Short: "Cancel a scheduled appointment",
	Long: `Cancel a scheduled appointment with an explicit outcome.

Outcomes: cancelled, late_cancelled, clinic_cancelled

Examples:
  praxis appointment cancel <id> --by patient
  praxis appointment cancel <id> --outcome late_cancelled --by patient --reason "no transport"
  praxis appointment cancel <id> --outcome clinic_cancelled --by reception --reason "doctor ill"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		id, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid appointment ID: %w", err)
		}

		target, err := domain.ParseStatus(cancelOutcome)
		if err != nil {
			return err
		}

		cancelled, err := app.CancelAppointmentHandler.Handle(cmd.Context(), commands.CancelAppointmentCommand{
			ID:          id,
			Target:      target,
			InitiatedBy: cancelInitiatedBy,
			Reason:      cancelReason,
			ActorID:     app.ActorID,
		})
		if err != nil {
			return err
		}

		fmt.Println("Appointment cancelled.")
		printAppointment(cancelled)
		return nil
	},
}

func init() {
	cancelCmd.Flags().StringVar(&cancelOutcome, "outcome", string(domain.StatusCancelled),
		"cancellation outcome: cancelled, late_cancelled, clinic_cancelled")
	cancelCmd.Flags().StringVar(&cancelInitiatedBy, "by", "", "who initiated the cancellation (required)")
	cancelCmd.Flags().StringVar(&cancelReason, "reason", "", "cancellation reason")
	_ = cancelCmd.MarkFlagRequired("by")
}
