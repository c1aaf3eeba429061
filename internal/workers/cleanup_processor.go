// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// CleanupProcessor closes reorder history entries a killed run left pending
type CleanupProcessor struct {
	audit     ports.AuditTrail
	olderThan time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor
func NewCleanupProcessor(audit ports.AuditTrail, olderThan time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		audit:     audit,
		olderThan: olderThan,
		now:       time.Now,
		logger:    logger.With(slog.String("processor", "cleanup")),
	}
}

// WithClock overrides the sweep clock
func (p *CleanupProcessor) WithClock(now func() time.Time) *CleanupProcessor {
	p.now = now
	return p
}

// SweepStale fails pending entries older than the configured age
func (p *CleanupProcessor) SweepStale(ctx context.Context, t *asynq.Task) error {
	p.logger.InfoContext(ctx, "sweeping stale reorder entries",
		slog.Duration("older_than", p.olderThan))

	closed, err := p.audit.SweepStale(ctx, p.olderThan, p.now())
	if err != nil {
		return fmt.Errorf("failed to sweep stale entries: %w", err)
	}

	level := slog.LevelInfo
	if closed > 0 {
		level = slog.LevelWarn
	}
	p.logger.Log(ctx, level, "stale reorder entries swept",
		slog.Int("entries_closed", closed))

	return nil
}
