// Package config reads service settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// DatabaseURI selects the Postgres store; empty runs on the in-memory store.
	DatabaseURI string `envconfig:"DATABASE_URI"`

	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	MetricsToken   string `envconfig:"METRICS_TOKEN"`

	// RateLimit caps requests per client address within RateLimitWindow;
	// zero turns limiting off.
	RateLimit       int           `envconfig:"RATE_LIMIT" default:"0"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

func Load() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if c.Port == "" {
		return Config{}, fmt.Errorf("load config: PORT must not be empty")
	}
	if c.RateLimit < 0 {
		return Config{}, fmt.Errorf("load config: RATE_LIMIT must not be negative")
	}
	return c, nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
