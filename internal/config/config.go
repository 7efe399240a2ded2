package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/osse101/GardenSim_Go/internal/logger"
)

// Config holds the application configuration
type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn warning error"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	LogDir      string `env:"LOG_DIR" envDefault:"logs"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev" validate:"oneof=dev staging prod test"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"garden-sim"`
	Version     string `env:"VERSION" envDefault:"dev"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file" validate:"oneof=memory file sqlite postgres"`
	StatePath     string `env:"STATE_PATH" envDefault:"data/gardenGameState.json" validate:"required_if=StorageDriver file"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/garden.db" validate:"required_if=StorageDriver sqlite"`
	SessionSlot   string `env:"SESSION_SLOT" envDefault:"default" validate:"required,max=64"`

	DBUser            string        `env:"DB_USER" envDefault:"postgres"`
	DBPassword        string        `env:"DB_PASSWORD" envDefault:"postgres"`
	DBHost            string        `env:"DB_HOST" envDefault:"localhost"`
	DBPort            string        `env:"DB_PORT" envDefault:"5432"`
	DBName            string        `env:"DB_NAME" envDefault:"garden"`
	DBMaxConns        int           `env:"DB_MAX_CONNS" envDefault:"4" validate:"min=1"`
	DBMaxConnIdle     time.Duration `env:"DB_MAX_CONN_IDLE" envDefault:"5m"`
	DBMaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" envDefault:"1h"`

	TickInterval     time.Duration `env:"TICK_INTERVAL" envDefault:"1s" validate:"min=10ms"`
	CatalogPath      string        `env:"CATALOG_PATH"`
	ResetStaleEvents bool          `env:"RESET_STALE_EVENTS" envDefault:"false"`
	MetricsAddr      string        `env:"METRICS_ADDR"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgParseEnv, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// LoggerConfig returns the logger settings carried by the config
func (c *Config) LoggerConfig() logger.Config {
	return logger.NewConfig(c.LogLevel, c.LogFormat, c.ServiceName, c.Version, c.Environment, c.Environment == logger.EnvironmentDev)
}
