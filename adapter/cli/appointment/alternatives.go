package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
)

var (
	altDoctorID string
	altStart    string
)

var alternativesCmd = &cobra.Command{
	Use:   "alternatives",
	Short: "Suggest free slots near a rejected time",
	Long: `List the free slots of the first business day on or after the
rejected time that still has availability.

Example:
  praxis appointment alternatives --doctor <id> --start "2026-09-07 09:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		doctorID, err := uuid.Parse(altDoctorID)
		if err != nil {
			return fmt.Errorf("invalid doctor ID: %w", err)
		}
		start, err := parseStart(altStart)
		if err != nil {
			return err
		}

		slots, err := app.FindAlternativesHandler.Handle(cmd.Context(), queries.FindAlternativesQuery{
			DoctorID:      doctorID,
			RejectedStart: start,
		})
		if err != nil {
			return err
		}

		printSlots(slots)
		return nil
	},
}

func init() {
	alternativesCmd.Flags().StringVar(&altDoctorID, "doctor", "", "doctor ID (required)")
	alternativesCmd.Flags().StringVar(&altStart, "start", "", "rejected start time \"YYYY-MM-DD HH:MM\" (required)")
	_ = alternativesCmd.MarkFlagRequired("doctor")
	_ = alternativesCmd.MarkFlagRequired("start")
}

func printSlots(slots []queries.TimeSlotDTO) {
	if len(slots) == 0 {
		fmt.Println("No free slots within the search horizon.")
		return
	}
	fmt.Printf("Free slots on %s:\n", slots[0].Start.Format("2006-01-02"))
	for _, s := range slots {
		fmt.Printf("  %s - %s\n", s.Start.Format("15:04"), s.End.Format("15:04"))
	}
}

// suggestAlternatives is the rebooking shortcut after a conflict.
func suggestAlternatives(cmd *cobra.Command, app *cli.App, doctorID uuid.UUID, rejectedStart time.Time) {
	slots, err := app.FindAlternativesHandler.Handle(cmd.Context(), queries.FindAlternativesQuery{
		DoctorID:      doctorID,
		RejectedStart: rejectedStart,
	})
	if err != nil {
		return
	}
	printSlots(slots)
}
