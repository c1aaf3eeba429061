// cmd/worker/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/reorder-engine/internal/adapters/db"
	redis_a "github.com/ammerola/reorder-engine/internal/adapters/redis_adapter"
	"github.com/ammerola/reorder-engine/internal/app"
	"github.com/ammerola/reorder-engine/internal/pkg/config"
	"github.com/ammerola/reorder-engine/internal/pkg/logger"
	"github.com/ammerola/reorder-engine/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slog.SetDefault(slogger)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.GetRedisAddr()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := app.Open(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	location, _ := cfg.Reorder.Location()
	redisOpt := app.AsynqRedisOpt(cfg)
	asynqLogger := workers.NewAsynqLogger(slogger)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    workers.HandleError(slogger),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc: healthCheck,
		Logger:          asynqLogger,
	})

	reorderProcessor := workers.NewReorderProcessor(engine.Service, engine.Summaries, engine.Locker,
		workers.ReorderProcessorConfig{
			LockKey:  redis_a.RunLockKey,
			LockTTL:  cfg.Reorder.LockTTL,
			Location: location,
		}, slogger)
	cleanupProcessor := workers.NewCleanupProcessor(engine.Audit, cfg.Reorder.StalePendingAfter, slogger)
	mux := workers.NewServeMux(reorderProcessor, cleanupProcessor)

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: location,
		Logger:   asynqLogger,
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				slogger.Error("failed to enqueue scheduled task", "err", err)
			}
		},
	})
	if err := workers.RegisterSchedules(scheduler, workers.ScheduleConfig{
		RunSchedule:   cfg.Reorder.Schedule,
		SweepSchedule: cfg.Reorder.SweepSchedule,
		Queue:         cfg.Reorder.Queue,
		RunTimeout:    cfg.Reorder.RunTimeout,
	}, slogger); err != nil {
		slogger.Error("failed to register schedules", "err", err)
		os.Exit(1)
	}

	client := asynq.NewClient(redisOpt)
	defer client.Close()

	if cfg.Reorder.ListenInventory {
		enqueuer := workers.NewInventoryChangeEnqueuer(client, cfg.Reorder.Queue, cfg.Reorder.RunTimeout, slogger)
		listener := db.NewInventoryListener(engine.Database, enqueuer.Enqueue, slogger)
		go func() {
			if err := listener.Run(ctx); err != nil {
				slogger.Error("inventory listener stopped", "err", err)
			}
		}()
	}

	if err := srv.Start(mux); err != nil {
		slogger.Error("failed to start worker server", "err", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", "err", err)
		srv.Shutdown()
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.String("schedule", cfg.Reorder.Schedule))

	<-ctx.Done()
	slogger.Info("shutdown signal received")

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// exponentialBackoff applies to the sweep only; reorder tasks never retry
func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", "err", err)
	}
}
