package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		ContentBackend: "http",
		ContentAPIURL:  "http://cms.test/v1",
		CacheBackend:   "memory",
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid http backend",
			mutate: func(*Config) {},
		},
		{
			name: "valid postgres backend",
			mutate: func(c *Config) {
				c.ContentBackend = "postgres"
				c.DatabaseURL = "postgres://localhost/booldo"
			},
		},
		{
			name: "valid redis cache",
			mutate: func(c *Config) {
				c.CacheBackend = "redis"
				c.RedisURL = "redis://localhost:6379"
			},
		},
		{
			name:    "http backend without api url",
			mutate:  func(c *Config) { c.ContentAPIURL = "" },
			wantErr: "CONTENT_API_URL",
		},
		{
			name: "postgres backend without database url",
			mutate: func(c *Config) {
				c.ContentBackend = "postgres"
			},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "unknown content backend",
			mutate:  func(c *Config) { c.ContentBackend = "ftp" },
			wantErr: "unknown CONTENT_BACKEND",
		},
		{
			name:    "redis cache without url",
			mutate:  func(c *Config) { c.CacheBackend = "redis" },
			wantErr: "REDIS_URL",
		},
		{
			name:    "unknown cache backend",
			mutate:  func(c *Config) { c.CacheBackend = "memcached" },
			wantErr: "unknown CACHE_BACKEND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("CONTENT_BACKEND", "http")
	t.Setenv("CONTENT_API_URL", "http://cms.test/v1")
	t.Setenv("READ_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.AppEnv != "production" || !cfg.IsProduction() {
		t.Errorf("AppEnv = %q", cfg.AppEnv)
	}
	if cfg.AppPort != 9090 {
		t.Errorf("AppPort = %d, want 9090", cfg.AppPort)
	}
	if cfg.ReadTimeout != 2*time.Second {
		t.Errorf("ReadTimeout = %v, want 2s", cfg.ReadTimeout)
	}
	if cfg.CacheBackend != "memory" {
		t.Errorf("CacheBackend = %q, want default memory", cfg.CacheBackend)
	}
}

func TestLoad_InvalidConfigRejected(t *testing.T) {
	t.Setenv("CONTENT_BACKEND", "http")
	t.Setenv("CONTENT_API_URL", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() error = nil, want validation failure")
	}
}
