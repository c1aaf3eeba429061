// internal/core/ports/purchase_order_repository.go
package ports

import (
	"context"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/google/uuid"
)

// PurchaseOrderRepository is the write port onto the purchasing store. Header
// and lines are separate calls; callers own the compensation between them.
type PurchaseOrderRepository interface {
	// LatestPONumber returns "" when no purchase order exists yet
	LatestPONumber(ctx context.Context) (string, error)
	InsertHeader(ctx context.Context, po *domain.PurchaseOrder) error
	InsertLines(ctx context.Context, poID uuid.UUID, lines []domain.PurchaseOrderLine) error
	DeleteHeader(ctx context.Context, poID uuid.UUID) error
	FindByID(ctx context.Context, poID uuid.UUID) (*domain.PurchaseOrder, error)
}
