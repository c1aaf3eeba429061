// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	redis_a "github.com/ammerola/reorder-engine/internal/adapters/redis_adapter"
	"github.com/ammerola/reorder-engine/internal/app"
	"github.com/ammerola/reorder-engine/internal/handlers"
	"github.com/ammerola/reorder-engine/internal/pkg/config"
	"github.com/ammerola/reorder-engine/internal/pkg/logger"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	slogger := logger.SetupLogger("info", "json")
	slogger.Info("starting reorder engine api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = Version
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slog.SetDefault(slogger)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	engine, err := app.Open(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	inspector := asynq.NewInspector(app.AsynqRedisOpt(cfg))
	defer inspector.Close()

	location, _ := cfg.Reorder.Location()

	reorderHandler := handlers.NewReorderHandler(
		engine.Service,
		engine.Summaries,
		engine.Locker,
		handlers.ReorderHandlerConfig{
			RunTimeout: cfg.Reorder.RunTimeout,
			LockKey:    redis_a.RunLockKey,
			LockTTL:    cfg.Reorder.LockTTL,
			Location:   location,
		},
		slogger,
	)
	healthHandler := handlers.NewHealthHandler(engine.Database, engine.Redis, inspector, engine.Summaries, cfg, slogger)

	server := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        handlers.NewRouter(cfg, reorderHandler, healthHandler, slogger),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(slogger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", "err", err)
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", "err", err)
			server.Close()
		}
		slogger.Info("server shutdown complete")
	}
}
