package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Harshitk-cp/wolfmind/internal/api"
	"github.com/Harshitk-cp/wolfmind/internal/buildconfig"
	"github.com/Harshitk-cp/wolfmind/internal/config"
	"github.com/Harshitk-cp/wolfmind/internal/random"
	"github.com/Harshitk-cp/wolfmind/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	seed := config.RandomSeed()
	if seed == 0 {
		var err error
		if seed, err = random.NewSeed(); err != nil {
			logger.Fatal("failed to seed random source", zap.Error(err))
		}
	}
	seeder := random.NewSeeder(seed)
	logger.Info("random source seeded", zap.Int64("seed", seed))

	// The database only backs optional diagnostics; the agents never need it.
	var pool *pgxpool.Pool
	if dbURL := config.DatabaseURL(); dbURL != "" {
		p, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			logger.Fatal("failed to connect to database", zap.Error(err))
		}
		defer p.Close()

		if err := p.Ping(ctx); err != nil {
			logger.Warn("database unreachable, diagnostics will be dropped", zap.Error(err))
		} else {
			logger.Info("connected to database")
		}
		pool = p
	}

	app := api.NewApp(api.Options{
		DB:                pool,
		Diagnostics:       config.DiagnosticsEnabled(),
		DiagnosticsBuffer: config.DiagnosticsBuffer(),
		NewRand:           func() service.Rand { return seeder.New() },
		RateLimitRPS:      config.RateLimitRPS(),
		RateLimitBurst:    config.RateLimitBurst(),
		SessionIdle:       config.SessionIdleTimeout(),
		SessionReap:       config.SessionReapInterval(),
	}, logger)

	app.Start()

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("agent host starting",
			zap.String("addr", addr),
			zap.String("version", buildconfig.Version()),
			zap.String("commit", buildconfig.Commit()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}

	app.Stop()
	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
