// internal/core/services/eligibility_scanner.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// EligibilityScanner joins catalog, inventory and thresholds into the set of
// under-stocked SKUs
type EligibilityScanner struct {
	catalog ports.CatalogRepository
	ledger  ports.InventoryLedger
	logger  *slog.Logger
}

var _ ports.EligibilityScanner = (*EligibilityScanner)(nil)

// NewEligibilityScanner creates a new eligibility scanner
func NewEligibilityScanner(catalog ports.CatalogRepository, ledger ports.InventoryLedger, logger *slog.Logger) *EligibilityScanner {
	return &EligibilityScanner{
		catalog: catalog,
		ledger:  ledger,
		logger:  logger.With(slog.String("service", "eligibility_scanner")),
	}
}

// Scan returns every auto-reorder SKU below its minimum at time at. Output
// order follows the catalog order.
func (s *EligibilityScanner) Scan(ctx context.Context, at time.Time) ([]domain.EligibleItem, error) {
	skus, err := s.catalog.ListAutoReorderSKUs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list auto-reorder skus: %w", err)
	}
	if len(skus) == 0 {
		return []domain.EligibleItem{}, nil
	}

	ids := make([]uuid.UUID, 0, len(skus))
	for i := range skus {
		ids = append(ids, skus[i].ID)
	}

	levels, err := s.ledger.AvailableBySKU(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory levels: %w", err)
	}

	month := at.Month()
	eligible := make([]domain.EligibleItem, 0)
	for i := range skus {
		sku := &skus[i]
		if !sku.IsActive || !sku.AutoReorderEnabled || !sku.HasVendor() {
			continue
		}

		thresholds := domain.ResolveThresholds(sku.Thresholds, month)
		item, ok := domain.NewEligibleItem(sku, levels[sku.ID], thresholds)
		if !ok {
			continue
		}
		eligible = append(eligible, item)
	}

	s.logger.DebugContext(ctx, "eligibility scan completed",
		slog.Int("candidates", len(skus)),
		slog.Int("eligible", len(eligible)),
		slog.String("month", month.String()))

	return eligible, nil
}

// Evaluate synthesizes the eligible item for a single SKU. Unlike Scan it
// explains why a SKU is not eligible with a typed error. Manual triggers do
// not require the auto-reorder flag.
func (s *EligibilityScanner) Evaluate(ctx context.Context, skuID uuid.UUID, trigger domain.TriggerType, at time.Time) (*domain.EligibleItem, error) {
	sku, err := s.catalog.FindSKU(ctx, skuID)
	if err != nil {
		return nil, err
	}

	switch {
	case !sku.IsActive:
		return nil, domain.ErrSKUInactive
	case trigger != domain.TriggerManual && !sku.AutoReorderEnabled:
		return nil, domain.ErrAutoReorderOff
	case !sku.HasVendor():
		return nil, domain.ErrMissingVendor
	}

	levels, err := s.ledger.AvailableBySKU(ctx, []uuid.UUID{sku.ID})
	if err != nil {
		return nil, fmt.Errorf("failed to read inventory level: %w", err)
	}

	available := levels[sku.ID]
	thresholds := domain.ResolveThresholds(sku.Thresholds, at.Month())
	item, ok := domain.NewEligibleItem(sku, available, thresholds)
	if !ok {
		return nil, fmt.Errorf("%w: available %d, min %d", domain.ErrNotBelowThreshold, available, thresholds.Min)
	}

	return &item, nil
}
