// internal/workers/reorder_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
	"github.com/ammerola/reorder-engine/internal/pkg/metrics"
)

// ReorderProcessorConfig holds the lock settings and evaluation timezone
type ReorderProcessorConfig struct {
	LockKey  string
	LockTTL  time.Duration
	Location *time.Location
}

// ReorderProcessor runs reorder passes from queued tasks
type ReorderProcessor struct {
	service   ports.ReorderService
	summaries ports.RunSummaryStore
	locker    ports.RunLocker
	cfg       ReorderProcessorConfig
	now       func() time.Time
	logger    *slog.Logger
}

// NewReorderProcessor creates a new reorder processor
func NewReorderProcessor(
	service ports.ReorderService,
	summaries ports.RunSummaryStore,
	locker ports.RunLocker,
	cfg ReorderProcessorConfig,
	logger *slog.Logger,
) *ReorderProcessor {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ReorderProcessor{
		service:   service,
		summaries: summaries,
		locker:    locker,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.With(slog.String("processor", "reorder")),
	}
}

// WithClock overrides the evaluation clock
func (p *ReorderProcessor) WithClock(now func() time.Time) *ReorderProcessor {
	p.now = now
	return p
}

// HandleScheduledRun runs the full pass while holding the run lock. A tick
// that finds the lock held is skipped.
func (p *ReorderProcessor) HandleScheduledRun(ctx context.Context, t *asynq.Task) error {
	lock, err := p.locker.Acquire(ctx, p.cfg.LockKey, p.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, ports.ErrLockHeld) {
			metrics.ObserveLocked(string(domain.RunModeScheduled))
			p.logger.InfoContext(ctx, "scheduled run skipped, another run holds the lock",
				slog.String("lock", p.cfg.LockKey))
			return nil
		}
		return fmt.Errorf("failed to acquire run lock: %w", err)
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			p.logger.WarnContext(ctx, "failed to release run lock", "err", err)
		}
	}()

	result, err := p.service.RunScheduled(ctx, p.now().In(p.cfg.Location))
	if err != nil {
		return fmt.Errorf("scheduled reorder run failed: %w", err)
	}

	if err := p.summaries.SaveLastRun(ctx, result); err != nil {
		p.logger.WarnContext(ctx, "failed to cache run summary", "err", err)
	}

	if result.HasErrors() {
		p.logger.WarnContext(ctx, "scheduled run finished with errors",
			slog.String("run_id", result.RunID.String()),
			slog.Int("errors", len(result.Errors)),
			slog.Int("purchase_orders", len(result.PurchaseOrderIDs)))
	}
	return nil
}

// HandleInventoryChange runs a single-SKU pass. A SKU that is not eligible
// is not a task failure.
func (p *ReorderProcessor) HandleInventoryChange(ctx context.Context, t *asynq.Task) error {
	payload, err := decodeInventoryChange(t)
	if err != nil {
		return err
	}

	log := p.logger.With(slog.String("sku_id", payload.SKUID.String()))

	result, err := p.service.RunForSKU(ctx, payload.SKUID, domain.TriggerInventoryChange, p.now().In(p.cfg.Location))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSKUNotFound):
			return fmt.Errorf("sku %s: %w", payload.SKUID, asynq.SkipRetry)
		case isIneligible(err):
			log.DebugContext(ctx, "sku not eligible after inventory change", "reason", err.Error())
			return nil
		default:
			return fmt.Errorf("inventory change reorder failed: %w", err)
		}
	}

	if result.HasErrors() {
		log.WarnContext(ctx, "inventory change reorder failed",
			slog.String("run_id", result.RunID.String()),
			slog.String("error", result.Errors[0]))
		return nil
	}

	log.InfoContext(ctx, "inventory change reorder processed",
		slog.String("run_id", result.RunID.String()),
		slog.Int("purchase_orders", len(result.PurchaseOrderIDs)),
		slog.Int("skipped", len(result.Skipped)))
	return nil
}

func isIneligible(err error) bool {
	return errors.Is(err, domain.ErrSKUInactive) ||
		errors.Is(err, domain.ErrAutoReorderOff) ||
		errors.Is(err, domain.ErrMissingVendor) ||
		errors.Is(err, domain.ErrMissingCostPrice) ||
		errors.Is(err, domain.ErrNotBelowThreshold)
}
