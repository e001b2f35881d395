package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v9"
)

// Backend selects where calculator state is persisted.
type Backend string

const (
	BackendMemory   Backend = "memory"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
	// Redis in front of Postgres, cache-aside.
	BackendCached Backend = "cached"
)

type Config struct {
	HTTPAddr        string        `env:"HTTP_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	DefaultCurrency string `env:"DEFAULT_CURRENCY" envDefault:"USD"`
	// Optional YAML file with bracket table overrides.
	TablesPath string `env:"TABLES_PATH"`

	StateBackend  Backend       `env:"STATE_BACKEND" envDefault:"memory"`
	StateTTL      time.Duration `env:"STATE_TTL" envDefault:"24h"`
	MaxStateBytes int           `env:"MAX_STATE_BYTES" envDefault:"65536"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	DBHost            string        `env:"DB_HOST"`
	DBPort            int           `env:"DB_PORT" envDefault:"5432"`
	DBUser            string        `env:"DB_USER"`
	DBPassword        string        `env:"DB_PASSWORD"`
	DBName            string        `env:"DB_NAME"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"25"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"5m"`
	DBConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"2m"`

	RateLimitEnabled bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	RateLimitPerMin  int64         `env:"RATE_LIMIT_PER_MIN" envDefault:"120"`
	RateLimitWindow  time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate checks the cross-field constraints env tags cannot express:
// each state backend needs its connection settings.
func (c *Config) validate() error {
	switch c.StateBackend {
	case BackendMemory:
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis state backend")
		}
	case BackendPostgres:
		if err := c.requireDatabase(); err != nil {
			return err
		}
	case BackendCached:
		if c.RedisAddr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the cached state backend")
		}
		if err := c.requireDatabase(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown state backend %q", c.StateBackend)
	}

	if c.StateTTL <= 0 {
		return fmt.Errorf("STATE_TTL must be positive, got %s", c.StateTTL)
	}
	if c.MaxStateBytes <= 0 {
		return fmt.Errorf("MAX_STATE_BYTES must be positive, got %d", c.MaxStateBytes)
	}
	if c.RateLimitEnabled && c.RateLimitPerMin <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MIN must be positive, got %d", c.RateLimitPerMin)
	}
	return nil
}

func (c *Config) requireDatabase() error {
	if c.DBHost == "" || c.DBUser == "" || c.DBName == "" {
		return fmt.Errorf("DB_HOST, DB_USER and DB_NAME are required for the %s state backend", c.StateBackend)
	}
	return nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
