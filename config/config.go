package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration, sourced from the environment.
// DatabaseURL may be empty, in which case the process falls back to a local
// sqlite file.
type Config struct {
	HTTPAddr          string   `env:"HTTP_ADDR" envDefault:":8000"`
	DatabaseURL       string   `env:"DATABASE_URL"`
	AuthSecret        string   `env:"AUTH_SECRET"`
	TokenLifetimeDays int      `env:"TOKEN_LIFETIME_DAYS" envDefault:"7"`
	CORSOrigins       []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
}

// Load parses and validates the configuration. Any problem is fatal before
// the first request, never at first use.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.AuthSecret == "" {
		return errors.New("AUTH_SECRET is required")
	}
	if len(c.AuthSecret) < 32 {
		return errors.New("AUTH_SECRET must be at least 32 characters long")
	}
	if c.TokenLifetimeDays <= 0 {
		return errors.New("TOKEN_LIFETIME_DAYS must be positive")
	}
	return nil
}

func (c Config) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeDays) * 24 * time.Hour
}
