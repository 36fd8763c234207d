// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor
// principles, plus an optional YAML routing-policy file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Content source: "http" queries the CMS API, "postgres" reads the
	// synced content tables.
	ContentBackend string `env:"CONTENT_BACKEND" envDefault:"http"`
	ContentAPIURL  string `env:"CONTENT_API_URL" envDefault:""`
	DatabaseURL    string `env:"DATABASE_URL" envDefault:""`

	// Cache backend: "memory" (per-instance) or "redis" (shared).
	CacheBackend string `env:"CACHE_BACKEND" envDefault:"memory"`
	RedisURL     string `env:"REDIS_URL" envDefault:""`

	// Base URL used to absolutize relative redirect targets.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// Routing policy file (excluded prefixes, feature vocabulary, ...).
	RoutingConfig string `env:"ROUTING_CONFIG" envDefault:""`

	// Admin API key hash (argon2id PHC string). Empty disables admin routes.
	AdminKeyHash string `env:"ADMIN_KEY_HASH" envDefault:""`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Metrics
	MetricsEnabled bool `env:"METRICS_ENABLED" envDefault:"true"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Validate checks that the selected backends have their settings.
func (c *Config) Validate() error {
	switch c.ContentBackend {
	case "http":
		if c.ContentAPIURL == "" {
			return fmt.Errorf("CONTENT_API_URL is required when CONTENT_BACKEND=http")
		}
	case "postgres":
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CONTENT_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("unknown CONTENT_BACKEND %q", c.ContentBackend)
	}

	switch c.CacheBackend {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	return nil
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
