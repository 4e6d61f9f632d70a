package agenda

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
	"github.com/praxishq/praxis/internal/scheduling/domain"
)

var (
	showDate    string
	showDays    int
	showStatus  string
	showDoctor  string
	showRoom    string
	showGrouped bool
)

// Cmd is the agenda command group
var Cmd = &cobra.Command{
	Use:   "agenda",
	Short: "View the clinic agenda",
	Long:  `Project the clinic agenda for a day or range of days.`,
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the agenda",
	Long: `Show the agenda for a date (default today). Filters combine:
an appointment must match every one that is set.

Examples:
  praxis agenda show
  praxis agenda show --date 2026-09-07 --doctor <id>
  praxis agenda show --date 2026-09-07 --days 7 --status scheduled
  praxis agenda show --grouped`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := cli.GetApp()

		day := time.Now()
		if showDate != "" {
			parsed, err := time.ParseInLocation("2006-01-02", showDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid date, use YYYY-MM-DD: %w", err)
			}
			day = parsed
		}
		from := domain.StartOfDay(day)
		days := showDays
		if days < 1 {
			days = 1
		}
		to := from.AddDate(0, 0, days)

		var filter domain.AgendaFilter
		if showStatus != "" {
			status, err := domain.ParseStatus(showStatus)
			if err != nil {
				return err
			}
			filter.Status = &status
		}
		if showDoctor != "" {
			doctorID, err := uuid.Parse(showDoctor)
			if err != nil {
				return fmt.Errorf("invalid doctor ID: %w", err)
			}
			filter.DoctorID = &doctorID
		}
		if showRoom != "" {
			filter.Room = &showRoom
		}

		result, err := app.GetAgendaHandler.Handle(cmd.Context(), queries.GetAgendaQuery{
			From:   from,
			To:     to,
			Filter: filter,
		})
		if err != nil {
			return err
		}

		if showGrouped {
			printGroups(result.Groups)
			return nil
		}
		printEntries(result.Appointments)
		return nil
	},
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "day to show, YYYY-MM-DD (default today)")
	showCmd.Flags().IntVar(&showDays, "days", 1, "number of days to include")
	showCmd.Flags().StringVar(&showStatus, "status", "", "filter by status")
	showCmd.Flags().StringVar(&showDoctor, "doctor", "", "filter by doctor ID")
	showCmd.Flags().StringVar(&showRoom, "room", "", "filter by room")
	showCmd.Flags().BoolVar(&showGrouped, "grouped", false, "group by outcome")

	Cmd.AddCommand(showCmd)
}

func printEntries(appointments []*domain.Appointment) {
	if len(appointments) == 0 {
		fmt.Println("Agenda is empty.")
		return
	}
	for _, a := range appointments {
		line := fmt.Sprintf("%s  %s - %s  %-16s doctor %s  patient %s",
			a.StartTime().Format("2006-01-02"),
			a.StartTime().Format("15:04"), a.EndTime().Format("15:04"),
			a.Status(), a.DoctorID(), a.PatientID())
		if a.Room() != "" {
			line += "  room " + a.Room()
		}
		fmt.Println(line)
	}
}

func printGroups(groups domain.AgendaGroups) {
	printGroup("Scheduled", groups.Scheduled)
	printGroup("Completed", groups.Completed)
	printGroup("Cancelled", groups.Cancelled)
}

func printGroup(label string, appointments []*domain.Appointment) {
	fmt.Printf("%s (%d)\n", label, len(appointments))
	for _, a := range appointments {
		fmt.Printf("  %s  %s - %s  doctor %s  patient %s\n",
			a.StartTime().Format("2006-01-02"),
			a.StartTime().Format("15:04"), a.EndTime().Format("15:04"),
			a.DoctorID(), a.PatientID())
	}
}
