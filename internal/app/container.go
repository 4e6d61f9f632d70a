package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/praxishq/praxis/internal/scheduling/application/commands"
	"github.com/praxishq/praxis/internal/scheduling/application/queries"
	"github.com/praxishq/praxis/internal/scheduling/application/services"
	"github.com/praxishq/praxis/internal/scheduling/domain"
	schedulingCache "github.com/praxishq/praxis/internal/scheduling/infrastructure/cache"
	schedulingPersistence "github.com/praxishq/praxis/internal/scheduling/infrastructure/persistence"
	sharedApplication "github.com/praxishq/praxis/internal/shared/application"
	"github.com/praxishq/praxis/internal/shared/infrastructure/database"
	"github.com/praxishq/praxis/internal/shared/infrastructure/eventbus"
	"github.com/praxishq/praxis/internal/shared/infrastructure/migrations"
	"github.com/praxishq/praxis/internal/shared/infrastructure/outbox"
	sharedPersistence "github.com/praxishq/praxis/internal/shared/infrastructure/persistence"
	"github.com/praxishq/praxis/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Database. Exactly one of Pool and SQLiteDB is set.
	Pool     *pgxpool.Pool
	SQLiteDB *sql.DB

	RedisClient *redis.Client

	AppointmentRepo domain.AppointmentRepository
	OutboxRepo      outbox.Repository
	UnitOfWork      sharedApplication.UnitOfWork
	EventPublisher  eventbus.Publisher

	// Domain services
	ConflictDetector      *services.ConflictDetector
	SlotFinder            *services.SlotFinder
	RescheduleCoordinator *services.RescheduleCoordinator

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
}

// NewContainer wires all dependencies. DATABASE_URL selects the Postgres
// store; otherwise local single-clinic mode runs on SQLite.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.initStore(ctx); err != nil {
		return nil, err
	}

	var agendaCache queries.AgendaCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		c.RedisClient = redis.NewClient(opts)
		agendaCache = schedulingCache.NewRedisAgendaCache(c.RedisClient, cfg.AgendaCacheTTL, logger)
	}

	c.EventPublisher = eventbus.NewNoopPublisher(logger)

	c.ConflictDetector = services.NewConflictDetector(c.AppointmentRepo)
	c.SlotFinder = services.NewSlotFinder(c.AppointmentRepo, cfg.AlternativeHorizonDays)

	c.BookAppointmentHandler = commands.NewBookAppointmentHandler(
		c.AppointmentRepo, c.ConflictDetector, c.OutboxRepo, c.UnitOfWork)
	c.UpdateAppointmentHandler = commands.NewUpdateAppointmentHandler(
		c.AppointmentRepo, c.ConflictDetector, c.OutboxRepo, c.UnitOfWork)
	c.CancelAppointmentHandler = commands.NewCancelAppointmentHandler(
		c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork)
	c.CompleteAppointmentHandler = commands.NewCompleteAppointmentHandler(
		c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork)
	c.MarkNoShowHandler = commands.NewMarkNoShowHandler(
		c.AppointmentRepo, c.OutboxRepo, c.UnitOfWork)
	c.DeleteAppointmentHandler = commands.NewDeleteAppointmentHandler(c.AppointmentRepo)

	c.RescheduleCoordinator = services.NewRescheduleCoordinator(
		commands.NewStoreMoveCommitter(c.UpdateAppointmentHandler), logger)

	c.GetAppointmentHandler = queries.NewGetAppointmentHandler(c.AppointmentRepo)
	c.FindAlternativesHandler = queries.NewFindAlternativesHandler(c.SlotFinder)
	c.GetAgendaHandler = queries.NewGetAgendaHandler(c.AppointmentRepo, agendaCache)

	return c, nil
}

func (c *Container) initStore(ctx context.Context) error {
	if c.Config.UsePostgres() {
		pool, err := database.NewPostgresPool(ctx, c.Config.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
			pool.Close()
			return fmt.Errorf("run migrations: %w", err)
		}

		c.Pool = pool
		c.AppointmentRepo = schedulingPersistence.NewBreakerAppointmentRepository(
			schedulingPersistence.NewPostgresAppointmentRepository(pool), c.Logger)
		c.OutboxRepo = outbox.NewPostgresRepository(pool)
		c.UnitOfWork = sharedPersistence.NewPgUnitOfWork(pool)
		return nil
	}

	if c.Config.SQLitePath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(c.Config.SQLitePath), 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := database.OpenSQLite(c.Config.SQLitePath)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
		db.Close()
		return fmt.Errorf("run migrations: %w", err)
	}

	c.SQLiteDB = db
	c.AppointmentRepo = schedulingPersistence.NewBreakerAppointmentRepository(
		schedulingPersistence.NewSQLiteAppointmentRepository(db), c.Logger)
	c.OutboxRepo = outbox.NewSQLiteRepository(db)
	c.UnitOfWork = sharedPersistence.NewSQLiteUnitOfWork(db)
	return nil
}

// Close releases all held resources.
func (c *Container) Close() {
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("close redis", slog.String("error", err.Error()))
		}
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.SQLiteDB != nil {
		if err := c.SQLiteDB.Close(); err != nil {
			c.Logger.Warn("close sqlite", slog.String("error", err.Error()))
		}
	}
}
