// internal/core/services/audit_trail.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
	"github.com/ammerola/reorder-engine/internal/pkg/metrics"
)

// AbandonedNote is written on pending entries closed by the stale sweep
const AbandonedNote = "abandoned: run did not close this entry"

// AuditTrail manages the reorder history state machine
type AuditTrail struct {
	history ports.ReorderHistoryRepository
	logger  *slog.Logger
}

var _ ports.AuditTrail = (*AuditTrail)(nil)

// NewAuditTrail creates a new audit trail
func NewAuditTrail(history ports.ReorderHistoryRepository, logger *slog.Logger) *AuditTrail {
	return &AuditTrail{
		history: history,
		logger:  logger.With(slog.String("service", "audit_trail")),
	}
}

// Open writes the pending entry for item. A concurrent open for the same SKU
// surfaces as domain.ErrReorderInFlight.
func (a *AuditTrail) Open(ctx context.Context, item *domain.EligibleItem, trigger domain.TriggerType, at time.Time) (*domain.ReorderHistory, error) {
	entry := domain.NewPendingHistory(item, trigger, at)

	if err := a.history.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to open reorder entry: %w", err)
	}

	a.logger.DebugContext(ctx, "reorder entry opened",
		slog.String("history_id", entry.ID.String()),
		slog.String("sku_id", item.SKUID.String()),
		slog.Int("quantity", entry.ReorderQuantity))

	return entry, nil
}

// Close moves a pending entry to po_created or failed
func (a *AuditTrail) Close(ctx context.Context, entry *domain.ReorderHistory, status domain.ReorderStatus, note string, poID *uuid.UUID, at time.Time) error {
	if err := entry.Close(status, note, poID, at); err != nil {
		return err
	}

	if err := a.history.UpdateStatus(ctx, entry); err != nil {
		return fmt.Errorf("failed to close reorder entry %s: %w", entry.ID, err)
	}

	return nil
}

// SweepStale fails pending entries older than olderThan. Each one is a run
// that never closed its entry and is logged at error level.
func (a *AuditTrail) SweepStale(ctx context.Context, olderThan time.Duration, at time.Time) (int, error) {
	cutoff := at.Add(-olderThan)

	closed, err := a.history.ClosePendingOlderThan(ctx, cutoff, AbandonedNote)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep stale reorder entries: %w", err)
	}

	for _, h := range closed {
		a.logger.ErrorContext(ctx, "reorder entry was never closed",
			slog.String("history_id", h.ID.String()),
			slog.String("sku_id", h.SKUID.String()),
			slog.Time("opened_at", h.CreatedAt))
	}
	metrics.UnclosedAuditEntries.Add(float64(len(closed)))

	return len(closed), nil
}
