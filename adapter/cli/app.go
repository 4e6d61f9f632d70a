package cli

import (
	"github.com/praxishq/praxis/internal/scheduling/application/commands"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
	"github.com/praxishq/praxis/internal/scheduling/application/services"
)

// App holds the CLI application dependencies.
type App struct {
	// Identifier recorded as the actor on events initiated from the CLI.
	ActorID string

	// Command handlers
	BookAppointmentHandler     *commands.BookAppointmentHandler
	UpdateAppointmentHandler   *commands.UpdateAppointmentHandler
	CancelAppointmentHandler   *commands.CancelAppointmentHandler
	CompleteAppointmentHandler *commands.CompleteAppointmentHandler
	MarkNoShowHandler          *commands.MarkNoShowHandler
	DeleteAppointmentHandler   *commands.DeleteAppointmentHandler

	// Query handlers
	GetAppointmentHandler   *queries.GetAppointmentHandler
	FindAlternativesHandler *queries.FindAlternativesHandler
	GetAgendaHandler        *queries.GetAgendaHandler

	// Domain services
	ConflictDetector      *services.ConflictDetector
	RescheduleCoordinator *services.RescheduleCoordinator
}

var appInstance *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	appInstance = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return appInstance
}
