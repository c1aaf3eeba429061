// internal/core/ports/catalog.go
package ports

import (
	"context"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/google/uuid"
)

// CatalogRepository is the read-only port onto SKU master data. Class
// threshold configuration is joined into each SKU.
type CatalogRepository interface {
	// ListAutoReorderSKUs returns active SKUs with auto-reorder enabled and a preferred vendor
	ListAutoReorderSKUs(ctx context.Context) ([]domain.SKU, error)
	FindSKU(ctx context.Context, skuID uuid.UUID) (*domain.SKU, error)
}

// InventoryLedger exposes available quantity per SKU
type InventoryLedger interface {
	// AvailableBySKU reads all requested SKUs in one query. SKUs with no
	// inventory rows are reported as zero.
	AvailableBySKU(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error)
}
