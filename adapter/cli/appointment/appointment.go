package appointment

import (
	"github.com/spf13/cobra"
)

// Cmd is the appointment command group
var Cmd = &cobra.Command{
	Use:   "appointment",
	Short: "Manage clinic appointments",
	Long:  `Book, edit, move, cancel and close out clinic appointments.`,
	Aliases: []string{"appt"},
}

func init() {
	Cmd.AddCommand(bookCmd)
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(editCmd)
	Cmd.AddCommand(moveCmd)
	Cmd.AddCommand(cancelCmd)
	Cmd.AddCommand(completeCmd)
	Cmd.AddCommand(noShowCmd)
	Cmd.AddCommand(conflictsCmd)
	Cmd.AddCommand(alternativesCmd)
	Cmd.AddCommand(removeCmd)
}
