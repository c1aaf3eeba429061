// internal/workers/server.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ammerola/reorder-engine/internal/pkg/logger"
)

// NewServeMux routes every reorder task type to its processor
func NewServeMux(reorder *ReorderProcessor, cleanup *CleanupProcessor) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(taskContext)
	mux.HandleFunc(TypeScheduledRun, reorder.HandleScheduledRun)
	mux.HandleFunc(TypeInventoryChange, reorder.HandleInventoryChange)
	mux.HandleFunc(TypeSweepStale, cleanup.SweepStale)
	return mux
}

// taskContext tags logs written while handling a task with its id
func taskContext(next asynq.Handler) asynq.Handler {
	return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
		if id, ok := asynq.GetTaskID(ctx); ok {
			ctx = logger.WithTaskID(ctx, id)
		}
		return next.ProcessTask(ctx, t)
	})
}

// ScheduleConfig names the cron specs for the recurring tasks
type ScheduleConfig struct {
	RunSchedule   string
	SweepSchedule string
	Queue         string
	RunTimeout    time.Duration
}

// Registrar is the part of asynq.Scheduler used to register periodic tasks
type Registrar interface {
	Register(cronspec string, task *asynq.Task, opts ...asynq.Option) (string, error)
}

// RegisterSchedules registers the scheduled run and the stale sweep
func RegisterSchedules(s Registrar, cfg ScheduleConfig, l *slog.Logger) error {
	runID, err := s.Register(cfg.RunSchedule, NewScheduledRunTask(cfg.Queue, cfg.RunTimeout))
	if err != nil {
		return fmt.Errorf("failed to register scheduled run %q: %w", cfg.RunSchedule, err)
	}

	sweepID, err := s.Register(cfg.SweepSchedule, NewSweepStaleTask(cfg.Queue))
	if err != nil {
		return fmt.Errorf("failed to register stale sweep %q: %w", cfg.SweepSchedule, err)
	}

	l.Info("reorder schedules registered",
		slog.String("run_schedule", cfg.RunSchedule),
		slog.String("run_entry", runID),
		slog.String("sweep_schedule", cfg.SweepSchedule),
		slog.String("sweep_entry", sweepID))
	return nil
}

// Enqueuer is the part of asynq.Client used to submit tasks
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// InventoryChangeEnqueuer turns an inventory change into a queued single-SKU pass
type InventoryChangeEnqueuer struct {
	client  Enqueuer
	queue   string
	timeout time.Duration
	logger  *slog.Logger
}

// NewInventoryChangeEnqueuer creates a new enqueuer
func NewInventoryChangeEnqueuer(client Enqueuer, queue string, timeout time.Duration, l *slog.Logger) *InventoryChangeEnqueuer {
	return &InventoryChangeEnqueuer{
		client:  client,
		queue:   queue,
		timeout: timeout,
		logger:  l.With(slog.String("component", "inventory_enqueuer")),
	}
}

// Enqueue submits a task for skuID. A duplicate of a task still pending is
// not an error.
func (e *InventoryChangeEnqueuer) Enqueue(ctx context.Context, skuID uuid.UUID) error {
	task, err := NewInventoryChangeTask(skuID, e.queue, e.timeout)
	if err != nil {
		return err
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			e.logger.DebugContext(ctx, "inventory change already queued",
				slog.String("sku_id", skuID.String()))
			return nil
		}
		return fmt.Errorf("failed to enqueue inventory change: %w", err)
	}

	e.logger.DebugContext(ctx, "inventory change queued",
		slog.String("sku_id", skuID.String()),
		slog.String("task_id", info.ID))
	return nil
}

// HandleError logs tasks that failed for good
func HandleError(l *slog.Logger) asynq.ErrorHandler {
	return asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		l.ErrorContext(ctx, "task processing failed",
			slog.String("type", task.Type()),
			slog.String("payload", string(task.Payload())),
			slog.Int("retried", retried),
			slog.Int("max_retry", maxRetry),
			"err", err)
	})
}

// AsynqLogger adapts slog for asynq
type AsynqLogger struct {
	logger *slog.Logger
	exit   func(int)
}

// NewAsynqLogger creates an asynq logger writing through l
func NewAsynqLogger(l *slog.Logger) *AsynqLogger {
	return &AsynqLogger{
		logger: l.With(slog.String("component", "asynq")),
		exit:   os.Exit,
	}
}

func (l *AsynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *AsynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *AsynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *AsynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *AsynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	l.exit(1)
}
