package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/praxishq/praxis/internal/app"
	"github.com/praxishq/praxis/internal/shared/infrastructure/eventbus"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
	"github.com/praxishq/praxis/pkg/config"
	"github.com/praxishq/praxis/pkg/observability"
)

// The worker relays committed appointment events from the outbox table to
// the message broker. It is the only publisher; the command handlers just
// stage events in the same transaction as the state change.
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}

	logCfg := observability.DefaultLogConfig()
	logCfg.Level = cfg.LogLevel
	if cfg.IsProduction() {
		logCfg.Format = observability.LogFormatJSON
	}
	logger := observability.NewLogger(logCfg)

	logger.Info("starting praxis worker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to initialize container", "error", err)
		os.Exit(1)
	}
	defer container.Close()

	var publisher eventbus.Publisher
	if cfg.RabbitMQURL != "" {
		rabbitPublisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, logger)
		if err != nil {
			if cfg.IsDevelopment() {
				logger.Warn("RabbitMQ not available, using noop publisher", "error", err)
				publisher = eventbus.NewNoopPublisher(logger)
			} else {
				logger.Error("failed to connect to RabbitMQ", "error", err)
				os.Exit(1)
			}
		} else {
			publisher = rabbitPublisher
			defer rabbitPublisher.Close()
		}
	} else {
		logger.Info("no RabbitMQ configured, using noop publisher")
		publisher = eventbus.NewNoopPublisher(logger)
	}

	processor := outbox.NewProcessor(container.OutboxRepo, publisher, outbox.ProcessorConfig{
		PollInterval: cfg.OutboxPollInterval,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
	}, logger)

	processor.Start(ctx)
}
