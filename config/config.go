package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	MetricsPort string `env:"METRICS_PORT" envDefault:"9090"`

	JWTSecret                 string        `env:"JWT_SECRET,required" validate:"required,min=32"`
	TokenTTL                  time.Duration `env:"TOKEN_TTL" envDefault:"15m" validate:"min=1s"`
	TokenLeeway               time.Duration `env:"TOKEN_LEEWAY" envDefault:"0s" validate:"min=0"`
	AuthExposeRejectionReason bool          `env:"AUTH_EXPOSE_REJECTION_REASON" envDefault:"false"`
	BcryptCost                int           `env:"BCRYPT_COST" envDefault:"12" validate:"min=4,max=31"`

	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"synthetic" validate:"required,oneof=synthetic memory mongo postgres"`
	MongoURI       string `env:"MONGO_URI"       validate:"required_if=StorageBackend mongo"`
	MongoDatabase  string `env:"MONGO_DATABASE"  envDefault:"accounts"`
	DatabaseURL    string `env:"DATABASE_URL"    validate:"required_if=StorageBackend postgres"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto slog levels. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
