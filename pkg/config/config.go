package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv   string
	LogLevel string
	ActorID  string

	// Database. DatabaseURL selects Postgres; when empty, SQLitePath is
	// used for local single-clinic mode.
	DatabaseURL string
	SQLitePath  string

	// Redis. Empty disables the agenda cache.
	RedisURL       string
	AgendaCacheTTL time.Duration

	// RabbitMQ. Empty disables event publication (noop publisher).
	RabbitMQURL string

	// HTTP API
	HTTPAddr string

	// Scheduling
	AlternativeHorizonDays int

	// Outbox
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxRetries   int
}

// Load loads configuration from environment variables. A .env file is
// read first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		ActorID:  getEnv("PRAXIS_ACTOR_ID", "00000000-0000-0000-0000-000000000001"),

		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("PRAXIS_SQLITE_PATH", defaultSQLitePath()),

		RedisURL:       getEnv("REDIS_URL", ""),
		AgendaCacheTTL: getDurationEnv("AGENDA_CACHE_TTL", 30*time.Second),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		HTTPAddr: getEnv("HTTP_ADDR", "127.0.0.1:8080"),

		AlternativeHorizonDays: getIntEnv("ALTERNATIVE_HORIZON_DAYS", 14),

		OutboxPollInterval: getDurationEnv("OUTBOX_POLL_INTERVAL", 200*time.Millisecond),
		OutboxBatchSize:    getIntEnv("OUTBOX_BATCH_SIZE", 100),
		OutboxMaxRetries:   getIntEnv("OUTBOX_MAX_RETRIES", 5),
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsePostgres reports whether the Postgres store is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}

func defaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".praxis/praxis.db"
	}
	return home + "/.praxis/praxis.db"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
