// internal/core/services/po_materializer.go
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

// PONumbering configures generated purchase order numbers
type PONumbering struct {
	Prefix string
	Width  int
}

// DefaultPONumbering yields PO-000001 style numbers
func DefaultPONumbering() PONumbering {
	return PONumbering{Prefix: domain.DefaultPONumberPrefix, Width: domain.DefaultPONumberWidth}
}

// PurchaseOrderMaterializer writes one purchase order per vendor batch.
// Header and lines are separate writes; a failed line write deletes the
// header so no purchase order is left without lines.
type PurchaseOrderMaterializer struct {
	orders    ports.PurchaseOrderRepository
	numbering PONumbering
	logger    *slog.Logger
}

var _ ports.PurchaseOrderMaterializer = (*PurchaseOrderMaterializer)(nil)

// NewPurchaseOrderMaterializer creates a new materializer
func NewPurchaseOrderMaterializer(orders ports.PurchaseOrderRepository, numbering PONumbering, logger *slog.Logger) *PurchaseOrderMaterializer {
	if numbering.Prefix == "" {
		numbering.Prefix = domain.DefaultPONumberPrefix
	}
	if numbering.Width <= 0 {
		numbering.Width = domain.DefaultPONumberWidth
	}

	return &PurchaseOrderMaterializer{
		orders:    orders,
		numbering: numbering,
		logger:    logger.With(slog.String("service", "po_materializer")),
	}
}

// Materialize prices the batch and writes the purchase order. Items without
// a usable price or quantity are returned in Excluded and left off the order.
// The returned error is always a *domain.VendorError.
func (m *PurchaseOrderMaterializer) Materialize(ctx context.Context, vendorID uuid.UUID, items []domain.EligibleItem, trigger domain.TriggerType, at time.Time) (*ports.MaterializeResult, error) {
	result := &ports.MaterializeResult{Excluded: make(map[uuid.UUID]error)}

	lines := make([]domain.PurchaseOrderLine, 0, len(items))
	for i := range items {
		item := &items[i]

		qty := item.ReorderQuantity()
		if qty <= 0 {
			result.Excluded[item.SKUID] = domain.ErrInvalidQuantity
			continue
		}

		price, err := item.UnitPrice()
		if err != nil {
			result.Excluded[item.SKUID] = err
			continue
		}

		lines = append(lines, domain.NewPurchaseOrderLine(item.SKUID, qty, price))
	}

	if len(lines) == 0 {
		return result, &domain.VendorError{VendorID: vendorID, Err: domain.ErrNoItemsToOrder}
	}

	latest, err := m.orders.LatestPONumber(ctx)
	if err != nil {
		return result, &domain.VendorError{
			VendorID: vendorID,
			Err:      fmt.Errorf("%w: failed to read latest po number: %w", domain.ErrPurchaseOrderWrite, err),
		}
	}

	number := domain.NextPONumber(latest, m.numbering.Prefix, m.numbering.Width, at)
	po := domain.NewAutoPurchaseOrder(vendorID, number, trigger, lines, at)

	if err := m.orders.InsertHeader(ctx, po); err != nil {
		return result, &domain.VendorError{
			VendorID: vendorID,
			Err:      fmt.Errorf("%w: failed to insert header %s: %w", domain.ErrPurchaseOrderWrite, number, err),
		}
	}

	if err := m.orders.InsertLines(ctx, po.ID, po.Lines); err != nil {
		lineErr := fmt.Errorf("%w: failed to insert lines for %s: %w", domain.ErrPurchaseOrderWrite, number, err)

		if delErr := m.orders.DeleteHeader(ctx, po.ID); delErr != nil {
			m.logger.ErrorContext(ctx, "compensating header delete failed",
				slog.String("po_id", po.ID.String()),
				slog.String("po_number", number),
				"err", delErr)
			lineErr = fmt.Errorf("%w (header delete also failed: %v)", lineErr, delErr)
		} else {
			m.logger.WarnContext(ctx, "purchase order header rolled back",
				slog.String("po_id", po.ID.String()),
				slog.String("po_number", number))
		}

		return result, &domain.VendorError{VendorID: vendorID, Err: lineErr}
	}

	m.logger.InfoContext(ctx, "purchase order created",
		slog.String("po_id", po.ID.String()),
		slog.String("po_number", number),
		slog.String("vendor_id", vendorID.String()),
		slog.Int("lines", len(po.Lines)),
		slog.String("total_amount", po.TotalAmount.StringFixed(2)))

	result.PurchaseOrder = po
	return result, nil
}
