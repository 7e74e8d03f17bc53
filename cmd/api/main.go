// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.uber.org/multierr"

	"github.com/suprilp8221/Store-Rating-Platform/internal/admin"
	"github.com/suprilp8221/Store-Rating-Platform/internal/auth"
	"github.com/suprilp8221/Store-Rating-Platform/internal/config"
	"github.com/suprilp8221/Store-Rating-Platform/internal/core"
	"github.com/suprilp8221/Store-Rating-Platform/internal/health"
	"github.com/suprilp8221/Store-Rating-Platform/internal/middleware"
	"github.com/suprilp8221/Store-Rating-Platform/internal/rating"
	"github.com/suprilp8221/Store-Rating-Platform/internal/server"
	"github.com/suprilp8221/Store-Rating-Platform/internal/store"
	"github.com/suprilp8221/Store-Rating-Platform/internal/user"
)

const (
	drainDelay     = 5 * time.Second
	tracerName     = "github.com/suprilp8221/Store-Rating-Platform/http"
	shutdownMargin = 5 * time.Second
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
	core.ExposeInternalErrors(!cfg.IsProduction())

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

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	logger.Info("database connected",
		"max_open_conns", cfg.Database.MaxOpenConns,
		"max_idle_conns", cfg.Database.MaxIdleConns,
	)

	if cfg.Database.AutoMigrate {
		if err := core.MigrateUp(ctx, db.DB.DB); err != nil {
			return multierr.Append(err, db.Close())
		}
		logger.Info("database migrations applied")
	}

	healthDeps := []health.Dependency{{Name: "database", Checker: db}}
	adminCfg := admin.HandlerConfig{
		DBStats: db.Stats,
		DBPing:  db.Ping,
	}

	var (
		cache       *core.Redis
		redisClient *redis.Client
	)
	if cfg.UseRedis() {
		cache, err = core.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return multierr.Append(err, db.Close())
		}
		redisClient = cache.Client
		healthDeps = append(healthDeps, health.Dependency{Name: "redis", Checker: cache})
		adminCfg.RedisStats = cache.PoolStats
		adminCfg.RedisPing = cache.Ping
		logger.Info("redis connected", "pool_size", cfg.Redis.PoolSize)
	} else {
		logger.Info("redis not configured, rate limiting is per instance")
	}

	jwtManager, err := auth.NewJWTManager(cfg.JWT)
	if err != nil {
		return multierr.Combine(err, closeRedis(cache), db.Close())
	}
	logger.Info("JWT manager initialized",
		"algorithm", "ES256",
		"key_id", jwtManager.GetKeyID(),
	)

	svc := newServices(
		user.NewRepository(db.DB),
		store.NewRepository(db.DB),
		rating.NewRepository(db.DB),
		jwtManager,
	)

	healthHandler := health.NewHandler(healthDeps...)

	srv := server.New(server.Config{
		ServerConfig:  cfg.Server,
		HealthHandler: healthHandler,
		Logger:        logger,
	})

	mountRoutes(srv.Router(), svc, routerConfig{
		Logger:     logger,
		Tracer:     otel.Tracer(tracerName),
		Metrics:    middleware.NewMetrics(),
		Redis:      redisClient,
		RateLimit:  cfg.RateLimit,
		CORS:       cfg.CORS,
		Production: cfg.IsProduction(),
		JWT:        jwtManager,
		Health:     healthHandler,
		Admin:      adminCfg,
	})

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		return multierr.Combine(err, closeRedis(cache), db.Close())
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		cfg.Server.ShutdownTimeout+drainDelay+shutdownMargin,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx, drainDelay); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	var closeErr error
	if telemetry != nil {
		closeErr = multierr.Append(closeErr, telemetry.Shutdown(shutdownCtx))
	}
	closeErr = multierr.Append(closeErr, closeRedis(cache))
	closeErr = multierr.Append(closeErr, db.Close())

	for _, e := range multierr.Errors(closeErr) {
		logger.Error("resource close error", "error", e)
	}

	logger.Info("application stopped")
	return nil
}

func closeRedis(r *core.Redis) error {
	if r == nil {
		return nil
	}
	return r.Close()
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
