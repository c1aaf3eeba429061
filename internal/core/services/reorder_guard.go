// internal/core/services/reorder_guard.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// ReorderGuard is the read-side duplicate filter. The insert in the audit
// trail is the authoritative check; this one keeps obvious duplicates out of
// a batch before any write happens.
type ReorderGuard struct {
	history ports.ReorderHistoryRepository
	logger  *slog.Logger
}

var _ ports.ReorderGuard = (*ReorderGuard)(nil)

// NewReorderGuard creates a new reorder guard
func NewReorderGuard(history ports.ReorderHistoryRepository, logger *slog.Logger) *ReorderGuard {
	return &ReorderGuard{
		history: history,
		logger:  logger.With(slog.String("service", "reorder_guard")),
	}
}

// HasOpenReorder reports whether skuID has a pending or po_created entry
func (g *ReorderGuard) HasOpenReorder(ctx context.Context, skuID uuid.UUID) (bool, error) {
	open, err := g.history.HasOpen(ctx, skuID)
	if err != nil {
		return false, fmt.Errorf("failed to check open reorders: %w", err)
	}
	return open, nil
}

// Filter keeps the input order of admitted items
func (g *ReorderGuard) Filter(ctx context.Context, items []domain.EligibleItem) ports.GuardResult {
	result := ports.GuardResult{Admitted: make([]domain.EligibleItem, 0, len(items))}

	for i := range items {
		item := &items[i]

		open, err := g.HasOpenReorder(ctx, item.SKUID)
		if err != nil {
			g.logger.WarnContext(ctx, "guard check failed",
				slog.String("sku_id", item.SKUID.String()),
				"err", err)
			result.Failed = append(result.Failed, domain.NewItemError(item, err))
			continue
		}

		if open {
			g.logger.InfoContext(ctx, "skipping sku with open reorder",
				slog.String("sku_id", item.SKUID.String()),
				slog.String("sku_code", item.SKUCode))
			result.Skipped = append(result.Skipped, domain.NewItemError(item, domain.ErrReorderInFlight))
			continue
		}

		result.Admitted = append(result.Admitted, *item)
	}

	return result
}
