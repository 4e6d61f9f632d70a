package appointment

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
)

var (
	conflictsDoctorID string
	conflictsStart    string
	conflictsExclude  string
)

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Check a candidate slot for conflicts",
	Long: `Run the advisory conflict check for a doctor and a candidate
start time without booking anything.

Example:
  praxis appointment conflicts --doctor <id> --start "2026-09-07 09:00"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		doctorID, err := uuid.Parse(conflictsDoctorID)
		if err != nil {
			return fmt.Errorf("invalid doctor ID: %w", err)
		}
		start, err := parseStart(conflictsStart)
		if err != nil {
			return err
		}

		var excludeID *uuid.UUID
		if conflictsExclude != "" {
			id, err := uuid.Parse(conflictsExclude)
			if err != nil {
				return fmt.Errorf("invalid exclude ID: %w", err)
			}
			excludeID = &id
		}

		report, err := app.ConflictDetector.CheckConflict(cmd.Context(), doctorID, start, excludeID)
		if err != nil {
			return err
		}

		printConflictReport(report)
		return nil
	},
}

func init() {
	conflictsCmd.Flags().StringVar(&conflictsDoctorID, "doctor", "", "doctor ID (required)")
	conflictsCmd.Flags().StringVar(&conflictsStart, "start", "", "candidate start time \"YYYY-MM-DD HH:MM\" (required)")
	conflictsCmd.Flags().StringVar(&conflictsExclude, "exclude", "", "appointment ID to exclude (when editing)")
	_ = conflictsCmd.MarkFlagRequired("doctor")
	_ = conflictsCmd.MarkFlagRequired("start")
}
