// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/campaignhq/campaign-backend/internal/admin"
	"github.com/campaignhq/campaign-backend/internal/audit"
	"github.com/campaignhq/campaign-backend/internal/auth"
	"github.com/campaignhq/campaign-backend/internal/config"
	"github.com/campaignhq/campaign-backend/internal/core"
	"github.com/campaignhq/campaign-backend/internal/health"
	"github.com/campaignhq/campaign-backend/internal/kvstore"
	"github.com/campaignhq/campaign-backend/internal/middleware"
	"github.com/campaignhq/campaign-backend/internal/server"
	"github.com/campaignhq/campaign-backend/internal/user"
)

const (
	drainDelay = 5 * time.Second
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

//nolint:funlen // bootstrap code is inherently verbose
func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting application",
		"name", cfg.App.Name,
		"version", cfg.App.Version,
		"environment", cfg.App.Environment,
	)

	var telemetry *core.Telemetry
	if cfg.Otel.Enabled {
		tel, telErr := core.NewTelemetry(ctx, cfg.Otel, cfg.App)
		if telErr != nil {
			logger.Warn("failed to initialize telemetry", "error", telErr)
		} else {
			telemetry = tel
			logger.Info("OpenTelemetry tracer initialized",
				"endpoint", cfg.Otel.Endpoint,
			)
		}
	}

	kv, storeChecker, redisClient, closeStore, err := buildStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	logger.Info("key-value store ready", "backend", cfg.Store.Backend)

	var sink *audit.Sink
	if cfg.Audit.Enabled {
		sink, err = audit.NewSink(ctx, cfg.Audit.Driver, cfg.Audit.DSN)
		if err != nil {
			return err
		}
		logger.Info("audit sink connected", "driver", cfg.Audit.Driver)
	}

	userStore, err := user.NewStore(kv)
	if err != nil {
		return err
	}
	logger.Info("user store loaded", "users", userStore.Count())

	managerCfg := auth.ManagerConfig{
		Store:   userStore,
		KV:      kv,
		Policy:  cfg.Security,
		BaseURL: cfg.App.BaseURL,
	}
	if sink != nil {
		managerCfg.Sink = sink
	}
	manager := auth.NewManager(managerCfg)

	authHandler := auth.NewHandler(manager)
	usersHandler := auth.NewUsersHandler(manager)

	probes := []health.Probe{
		{Name: "store", Checker: storeChecker},
	}
	if sink != nil {
		probes = append(probes, health.Probe{Name: "audit", Checker: sink})
	}
	healthHandler := health.NewHandler(probes...)

	adminCfg := admin.HandlerConfig{
		UserCounts:   userStore.CountByStatus,
		AttemptCount: manager.AttemptCount,
		StorePing:    storeChecker.Ping,
	}
	if sink != nil {
		adminCfg.RecentAttempts = sink.Recent
		adminCfg.AuditPing = sink.Ping
	}
	adminHandler := admin.NewHandler(adminCfg)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	router := srv.Router()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(logger))
	router.Use(
		middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Limit: middleware.PerMinute(
				cfg.RateLimit.Requests,
				cfg.RateLimit.Burst,
			),
			FailOpen: true,
		}).Handler,
	)
	router.Use(middleware.SecurityHeaders(cfg.App.Environment == "production"))

	healthHandler.RegisterRoutes(router)

	authenticator := middleware.Authenticator(manager)
	adminOnly := middleware.RequireAdmin

	router.Route("/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authenticator)
		usersHandler.RegisterRoutes(r, authenticator, adminOnly)
		adminHandler.RegisterRoutes(r, authenticator, adminOnly)
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}

	if sink != nil {
		if err := sink.Close(); err != nil {
			logger.Error("audit sink close error", "error", err)
		}
	}

	if closeStore != nil {
		if err := closeStore(); err != nil {
			logger.Error("store close error", "error", err)
		}
	}

	logger.Info("application stopped")
	return nil
}

// buildStore wires the configured key-value backend. The returned redis
// client is non-nil only for the redis backend, where the HTTP rate
// limiter can share the connection.
func buildStore(
	ctx context.Context,
	cfg config.StoreConfig,
) (kvstore.Store, health.Checker, *redis.Client, func() error, error) {
	switch cfg.Backend {
	case "memory":
		mem := kvstore.NewMemory()
		return mem, mem, nil, nil, nil

	case "file":
		f, err := kvstore.NewFile(cfg.FilePath)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return f, f, nil, nil, nil

	case "redis":
		r, err := kvstore.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return r, r, r.Client(), r.Close, nil

	default:
		return nil, nil, nil, nil, fmt.Errorf(
			"unknown store backend %q", cfg.Backend)
	}
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
