// internal/core/services/reorder_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
	"github.com/ammerola/reorder-engine/internal/pkg/logger"
	"github.com/ammerola/reorder-engine/internal/pkg/metrics"
)

// ReorderService is the run orchestrator. Vendor batches are processed
// sequentially and independently: a failed batch never stops the next one.
type ReorderService struct {
	scanner      ports.EligibilityScanner
	guard        ports.ReorderGuard
	audit        ports.AuditTrail
	materializer ports.PurchaseOrderMaterializer
	logger       *slog.Logger
}

var _ ports.ReorderService = (*ReorderService)(nil)

// NewReorderService creates a new reorder service
func NewReorderService(
	scanner ports.EligibilityScanner,
	guard ports.ReorderGuard,
	audit ports.AuditTrail,
	materializer ports.PurchaseOrderMaterializer,
	logger *slog.Logger,
) *ReorderService {
	return &ReorderService{
		scanner:      scanner,
		guard:        guard,
		audit:        audit,
		materializer: materializer,
		logger:       logger.With(slog.String("service", "reorder")),
	}
}

// RunScheduled runs a full pass over every eligible SKU. Only a failed scan
// is returned as an error; item and vendor failures land in the result.
func (s *ReorderService) RunScheduled(ctx context.Context, at time.Time) (*domain.RunResult, error) {
	started := time.Now()
	result := domain.NewRunResult(at)
	ctx = logger.WithRunID(ctx, result.RunID)

	items, err := s.scanner.Scan(ctx, at)
	if err != nil {
		metrics.ObserveRun(string(domain.RunModeScheduled), metrics.OutcomeError, started)
		return nil, fmt.Errorf("eligibility scan failed: %w", err)
	}

	s.logger.InfoContext(ctx, "reorder run started",
		slog.Int("eligible", len(items)),
		slog.Time("evaluated_at", at))

	for _, batch := range BatchByVendor(items) {
		s.processBatch(ctx, batch, domain.TriggerAutoSchedule, at, result)
	}

	s.finish(ctx, domain.RunModeScheduled, result, started)
	return result, nil
}

// RunForSKU runs a pass over a single SKU. Errors explaining why the SKU is
// not eligible (not found, inactive, no vendor, not below threshold) are
// returned before any write happens.
func (s *ReorderService) RunForSKU(ctx context.Context, skuID uuid.UUID, trigger domain.TriggerType, at time.Time) (*domain.RunResult, error) {
	if !trigger.Valid() {
		return nil, fmt.Errorf("unknown trigger type %q", trigger)
	}

	started := time.Now()
	result := domain.NewRunResult(at)
	ctx = logger.WithSKUID(logger.WithRunID(ctx, result.RunID), skuID)

	item, err := s.scanner.Evaluate(ctx, skuID, trigger, at)
	if err != nil {
		metrics.ObserveRun(string(domain.RunModeSingleSKU), metrics.OutcomeError, started)
		return nil, err
	}

	s.processBatch(ctx, VendorBatch{VendorID: item.VendorID, Items: []domain.EligibleItem{*item}}, trigger, at, result)

	s.finish(ctx, domain.RunModeSingleSKU, result, started)
	return result, nil
}

func (s *ReorderService) processBatch(ctx context.Context, batch VendorBatch, trigger domain.TriggerType, at time.Time, result *domain.RunResult) {
	log := s.logger.With(slog.String("vendor_id", batch.VendorID.String()))

	guarded := s.guard.Filter(ctx, batch.Items)
	for _, skipped := range guarded.Skipped {
		result.AddSkip(skipped.Error())
	}
	for _, failed := range guarded.Failed {
		result.AddError(failed)
	}
	metrics.ObserveItems(metrics.ItemSkipped, len(guarded.Skipped))
	metrics.ObserveItems(metrics.ItemFailed, len(guarded.Failed))

	items := make([]domain.EligibleItem, 0, len(guarded.Admitted))
	entries := make([]*domain.ReorderHistory, 0, len(guarded.Admitted))

	for i := range guarded.Admitted {
		item := guarded.Admitted[i]

		if item.ReorderQuantity() <= 0 {
			result.AddError(domain.NewItemError(&item, domain.ErrInvalidQuantity))
			metrics.ObserveItems(metrics.ItemFailed, 1)
			continue
		}

		entry, err := s.audit.Open(ctx, &item, trigger, at)
		if err != nil {
			itemErr := domain.NewItemError(&item, err)
			if errors.Is(err, domain.ErrReorderInFlight) {
				log.InfoContext(ctx, "skipping sku with open reorder",
					slog.String("sku_id", item.SKUID.String()))
				result.AddSkip(itemErr.Error())
				metrics.ObserveItems(metrics.ItemSkipped, 1)
				continue
			}
			log.WarnContext(ctx, "failed to open reorder entry",
				slog.String("sku_id", item.SKUID.String()),
				"err", err)
			result.AddError(itemErr)
			metrics.ObserveItems(metrics.ItemFailed, 1)
			continue
		}

		items = append(items, item)
		entries = append(entries, entry)
	}

	if len(items) == 0 {
		return
	}

	outcome, matErr := s.materializer.Materialize(ctx, batch.VendorID, items, trigger, at)
	if outcome == nil {
		outcome = &ports.MaterializeResult{}
	}

	for i := range items {
		item := &items[i]
		entry := entries[i]

		if excluded, ok := outcome.Excluded[item.SKUID]; ok {
			log.WarnContext(ctx, "item excluded from purchase order",
				slog.String("sku_id", item.SKUID.String()),
				"err", excluded)
			s.close(ctx, entry, domain.ReorderStatusFailed, excluded.Error(), nil, at, result)
			result.AddError(domain.NewItemError(item, excluded))
			metrics.ObserveItems(metrics.ItemFailed, 1)
			continue
		}

		if matErr != nil || outcome.PurchaseOrder == nil {
			note := "purchase order was not created"
			if matErr != nil {
				note = matErr.Error()
			}
			s.close(ctx, entry, domain.ReorderStatusFailed, note, nil, at, result)
			metrics.ObserveItems(metrics.ItemFailed, 1)
			continue
		}

		po := outcome.PurchaseOrder
		s.close(ctx, entry, domain.ReorderStatusPOCreated, fmt.Sprintf("purchase order %s created", po.PONumber), &po.ID, at, result)
		metrics.ObserveItems(metrics.ItemOrdered, 1)
	}

	if matErr != nil {
		log.ErrorContext(ctx, "vendor batch failed", "err", matErr)
		result.AddError(matErr)
		return
	}
	if outcome.PurchaseOrder != nil {
		result.AddPurchaseOrder(outcome.PurchaseOrder.ID, len(outcome.PurchaseOrder.Lines))
		metrics.PurchaseOrdersTotal.Inc()
	}
}

// close never drops a failure: an entry that cannot be closed is reported in
// the run and left for the stale sweep
func (s *ReorderService) close(ctx context.Context, entry *domain.ReorderHistory, status domain.ReorderStatus, note string, poID *uuid.UUID, at time.Time, result *domain.RunResult) {
	if err := s.audit.Close(ctx, entry, status, note, poID, at); err != nil {
		s.logger.ErrorContext(ctx, "reorder entry left open",
			slog.String("history_id", entry.ID.String()),
			slog.String("sku_id", entry.SKUID.String()),
			slog.String("target_status", string(status)),
			"err", err)
		result.AddError(fmt.Errorf("sku %s: failed to close reorder entry: %w", entry.SKUID, err))
	}
}

func (s *ReorderService) finish(ctx context.Context, mode domain.RunMode, result *domain.RunResult, started time.Time) {
	elapsed := time.Since(started)
	result.FinishedAt = result.StartedAt.Add(elapsed)

	outcome := metrics.OutcomeCompleted
	if result.HasErrors() {
		outcome = metrics.OutcomePartial
	}
	metrics.ObserveRun(string(mode), outcome, started)

	s.logger.InfoContext(ctx, "reorder run completed",
		slog.String("mode", string(mode)),
		slog.Int("processed", result.Processed),
		slog.Int("purchase_orders", len(result.PurchaseOrderIDs)),
		slog.Int("errors", len(result.Errors)),
		slog.Int("skipped", len(result.Skipped)),
		slog.Duration("duration", elapsed))
}
