package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	AuditBackendSQL   = "sql"
	AuditBackendMongo = "mongo"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	Timezone  string        `env:"TIMEZONE,  default=UTC"`

	// AuditBackend selects where audit entries are written: sql or mongo.
	AuditBackend    string `env:"AUDIT_BACKEND,     default=sql"`
	AuditWorkers    int    `env:"AUDIT_WORKERS,     default=4"`
	PublicRateLimit int    `env:"PUBLIC_RATE_LIMIT, default=20"`

	Database DatabaseConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type DatabaseConfig struct {
	Driver string `env:"DB_DRIVER, default=sqlite"`
	DSN    string `env:"DB_DSN,    default=maturity.db"`
	Debug  bool   `env:"DB_DEBUG,  default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=maturity"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.AuditBackend {
	case AuditBackendSQL, AuditBackendMongo:
	default:
		return fmt.Errorf("AUDIT_BACKEND must be %q or %q, got %q", AuditBackendSQL, AuditBackendMongo, c.AuditBackend)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the server's configured time zone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsDevelopment reports whether pretty logging and verbose SQL are appropriate.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
