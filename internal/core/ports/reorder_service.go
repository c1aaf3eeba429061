// internal/core/ports/reorder_service.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/google/uuid"
)

// EligibilityScanner produces the under-stocked SKUs for an evaluation time
type EligibilityScanner interface {
	Scan(ctx context.Context, at time.Time) ([]domain.EligibleItem, error)
	// Evaluate builds a one-item eligible set for a specific SKU, returning a
	// typed error when the SKU cannot be reordered.
	Evaluate(ctx context.Context, skuID uuid.UUID, trigger domain.TriggerType, at time.Time) (*domain.EligibleItem, error)
}

// ReorderGuard answers whether a SKU already has an in-flight reorder
type ReorderGuard interface {
	HasOpenReorder(ctx context.Context, skuID uuid.UUID) (bool, error)
	// Filter drops items that already have an open reorder. Items whose
	// check failed are reported in Failed rather than admitted.
	Filter(ctx context.Context, items []domain.EligibleItem) GuardResult
}

// GuardResult partitions a vendor batch after the guard check
type GuardResult struct {
	Admitted []domain.EligibleItem
	Skipped  []*domain.ItemError
	Failed   []*domain.ItemError
}

// AuditTrail opens and closes reorder history entries
type AuditTrail interface {
	Open(ctx context.Context, item *domain.EligibleItem, trigger domain.TriggerType, at time.Time) (*domain.ReorderHistory, error)
	Close(ctx context.Context, entry *domain.ReorderHistory, status domain.ReorderStatus, note string, poID *uuid.UUID, at time.Time) error
	SweepStale(ctx context.Context, olderThan time.Duration, at time.Time) (int, error)
}

// PurchaseOrderMaterializer turns one vendor batch into a purchase order
type PurchaseOrderMaterializer interface {
	Materialize(ctx context.Context, vendorID uuid.UUID, items []domain.EligibleItem, trigger domain.TriggerType, at time.Time) (*MaterializeResult, error)
}

// MaterializeResult reports the outcome for a vendor batch. Excluded holds
// items left off the purchase order with their item-level error.
type MaterializeResult struct {
	PurchaseOrder *domain.PurchaseOrder
	Excluded      map[uuid.UUID]error
}

// ReorderService is the run orchestrator
type ReorderService interface {
	RunScheduled(ctx context.Context, at time.Time) (*domain.RunResult, error)
	RunForSKU(ctx context.Context, skuID uuid.UUID, trigger domain.TriggerType, at time.Time) (*domain.RunResult, error)
}
