package outbox

import (
	"context"
	"log/slog"
	"time"

	"github.com/praxishq/praxis/internal/shared/infrastructure/eventbus"
)

// ProcessorConfig configures the outbox relay loop.
type ProcessorConfig struct {
	PollInterval time.Duration
	BatchSize    int
	MaxRetries   int
}

// DefaultProcessorConfig returns sensible defaults.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		PollInterval: 200 * time.Millisecond,
		BatchSize:    100,
		MaxRetries:   5,
	}
}

// Processor relays unpublished outbox messages to the event publisher.
type Processor struct {
	repo      Repository
	publisher eventbus.Publisher
	cfg       ProcessorConfig
	logger    *slog.Logger
}

// NewProcessor creates a Processor.
func NewProcessor(repo Repository, publisher eventbus.Publisher, cfg ProcessorConfig, logger *slog.Logger) *Processor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultProcessorConfig().PollInterval
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultProcessorConfig().BatchSize
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultProcessorConfig().MaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{repo: repo, publisher: publisher, cfg: cfg, logger: logger}
}

// Start runs the relay loop until the context is cancelled.
func (p *Processor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	p.logger.Info("outbox processor started",
		"poll_interval", p.cfg.PollInterval,
		"batch_size", p.cfg.BatchSize,
	)

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("outbox processor stopped")
			return
		case <-ticker.C:
			if err := p.ProcessBatch(ctx); err != nil {
				p.logger.Error("outbox batch failed", "error", err)
			}
		}
	}
}

// ProcessBatch publishes one batch of unpublished messages.
func (p *Processor) ProcessBatch(ctx context.Context) error {
	msgs, err := p.repo.FetchUnpublished(ctx, p.cfg.BatchSize)
	if err != nil {
		return err
	}

	for _, msg := range msgs {
		if !msg.CanRetry(p.cfg.MaxRetries) {
			p.logger.Warn("outbox message exhausted retries",
				"id", msg.ID,
				"routing_key", msg.RoutingKey,
			)
			continue
		}

		if err := p.publisher.Publish(ctx, msg.RoutingKey, msg.Payload); err != nil {
			if markErr := p.repo.MarkFailed(ctx, msg.ID, err.Error()); markErr != nil {
				p.logger.Error("failed to record publish failure", "id", msg.ID, "error", markErr)
			}
			continue
		}

		if err := p.repo.MarkPublished(ctx, msg.ID); err != nil {
			p.logger.Error("failed to mark message published", "id", msg.ID, "error", err)
		}
	}

	return nil
}
