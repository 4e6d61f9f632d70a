package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/praxishq/praxis/adapter/api"
	"github.com/praxishq/praxis/adapter/cli"
	"github.com/praxishq/praxis/adapter/cli/agenda"
	"github.com/praxishq/praxis/adapter/cli/appointment"
	"github.com/praxishq/praxis/internal/app"
	"github.com/praxishq/praxis/pkg/config"
	"github.com/praxishq/praxis/pkg/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development"}
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = cfg.LogLevel
	if cfg.IsProduction() {
		logCfg.Format = observability.LogFormatJSON
	}
	logger := observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	cli.SetApp(&cli.App{
		ActorID:                    cfg.ActorID,
		BookAppointmentHandler:     container.BookAppointmentHandler,
		UpdateAppointmentHandler:   container.UpdateAppointmentHandler,
		CancelAppointmentHandler:   container.CancelAppointmentHandler,
		CompleteAppointmentHandler: container.CompleteAppointmentHandler,
		MarkNoShowHandler:          container.MarkNoShowHandler,
		DeleteAppointmentHandler:   container.DeleteAppointmentHandler,
		GetAppointmentHandler:      container.GetAppointmentHandler,
		FindAlternativesHandler:    container.FindAlternativesHandler,
		GetAgendaHandler:           container.GetAgendaHandler,
		ConflictDetector:           container.ConflictDetector,
		RescheduleCoordinator:      container.RescheduleCoordinator,
	})

	cli.AddCommand(appointment.Cmd)
	cli.AddCommand(agenda.Cmd)
	cli.AddCommand(newServeCommand(ctx, cfg, container))

	cli.Execute()
}

// newServeCommand runs the HTTP API until interrupted.
func newServeCommand(ctx context.Context, cfg *config.Config, container *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := api.NewAppointmentHandler(api.AppointmentHandlerConfig{
				Book:             container.BookAppointmentHandler,
				Update:           container.UpdateAppointmentHandler,
				Cancel:           container.CancelAppointmentHandler,
				Complete:         container.CompleteAppointmentHandler,
				MarkNoShow:       container.MarkNoShowHandler,
				Delete:           container.DeleteAppointmentHandler,
				Get:              container.GetAppointmentHandler,
				FindAlternatives: container.FindAlternativesHandler,
				GetAgenda:        container.GetAgendaHandler,
				Detector:         container.ConflictDetector,
				ActorID:          cfg.ActorID,
				Logger:           container.Logger,
			})

			serverCfg := api.DefaultServerConfig()
			serverCfg.Addr = cfg.HTTPAddr
			server := api.NewServer(serverCfg, handler, container.Logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case <-ctx.Done():
				return server.Shutdown(context.Background())
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}
}
