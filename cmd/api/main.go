// Package main is the entrypoint for the booldo resolution engine.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/booldo/booldo/internal/cache"
	"github.com/booldo/booldo/internal/config"
	"github.com/booldo/booldo/internal/content"
	"github.com/booldo/booldo/internal/gone"
	"github.com/booldo/booldo/internal/handler"
	"github.com/booldo/booldo/internal/metrics"
	"github.com/booldo/booldo/internal/middleware"
	"github.com/booldo/booldo/internal/redirect"
	"github.com/booldo/booldo/internal/repository"
	"github.com/booldo/booldo/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	routing, err := config.LoadRouting(cfg.RoutingConfig)
	if err != nil {
		logger.Error("failed to load routing policy", "error", err, "path", cfg.RoutingConfig)
		os.Exit(1)
	}

	srvShutdown := make([]func(*server.Server), 0, 2)

	// Content source
	var source content.Source
	var contentChecker handler.HealthChecker
	switch cfg.ContentBackend {
	case "postgres":
		repo, err := repository.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error(
				"failed to connect to database",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to database")
		source = repo
		contentChecker = repo
		srvShutdown = append(srvShutdown, func(s *server.Server) {
			s.OnShutdown("postgres", func(context.Context) error {
				repo.Close()
				return nil
			})
		})
	default:
		source = content.NewClient(cfg.ContentAPIURL)
	}

	// Cache store
	var store cache.Store
	var cacheChecker handler.HealthChecker
	clock := cache.SystemClock{}
	switch cfg.CacheBackend {
	case "redis":
		rds, err := cache.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")
		store = rds
		cacheChecker = rds
		srvShutdown = append(srvShutdown, func(s *server.Server) {
			s.OnShutdown("redis", func(context.Context) error {
				return rds.Close()
			})
		})
	default:
		store = cache.NewMemory(clock)
	}

	// Metrics
	var recorder metrics.Recorder = metrics.NewNoop()
	var prom *metrics.PrometheusRecorder
	if cfg.MetricsEnabled {
		prom = metrics.NewPrometheus("booldo")
		recorder = prom
	}

	// Engine
	ruleStore := redirect.NewRuleStore(source, store, clock, logger, recorder)
	resolver := redirect.NewResolver(ruleStore, logger, recorder)
	classifier := gone.NewClassifier(source, store, clock, logger, recorder)

	// Handlers
	dispatcher := handler.NewDispatcher(resolver, classifier, routing, cfg.BaseURL, logger)
	resolveHandler := handler.NewResolveHandler(resolver, classifier, source, routing, logger)
	adminHandler := handler.NewAdminHandler(ruleStore, classifier, logger)
	healthHandler := handler.NewHealthHandler(contentChecker, cacheChecker)

	r := setupRouter(dispatcher, resolveHandler, adminHandler, healthHandler, prom, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	for _, register := range srvShutdown {
		register(srv)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
		"content_backend", cfg.ContentBackend,
		"cache_backend", cfg.CacheBackend,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	dispatcher *handler.Dispatcher,
	resolveHandler *handler.ResolveHandler,
	adminHandler *handler.AdminHandler,
	healthHandler *handler.HealthHandler,
	prom *metrics.PrometheusRecorder,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	if prom != nil {
		r.Method("GET", "/metrics", prom.Handler())
	}

	// Internal resolution endpoint for the renderer
	r.Get("/internal/resolve", resolveHandler.Resolve)

	// Admin endpoints
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminKeyHash, logger))
		r.Use(middleware.MaxBodySize(1 << 20))
		r.Post("/purge", adminHandler.Purge)
	})

	// Everything else goes through the dispatcher.
	r.Get("/*", dispatcher.Dispatch)
	r.Head("/*", dispatcher.Dispatch)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
