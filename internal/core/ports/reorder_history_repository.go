// internal/core/ports/reorder_history_repository.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/google/uuid"
)

// ReorderHistoryRepository persists the reorder audit trail
type ReorderHistoryRepository interface {
	// HasOpen reports whether the SKU has a pending or po_created entry
	HasOpen(ctx context.Context, skuID uuid.UUID) (bool, error)
	// Insert writes a pending entry. It returns domain.ErrReorderInFlight when
	// another open entry for the same SKU already exists.
	Insert(ctx context.Context, h *domain.ReorderHistory) error
	// UpdateStatus closes a pending entry. It returns domain.ErrInvalidTransition
	// when the entry is no longer pending and domain.ErrHistoryNotFound when it
	// does not exist.
	UpdateStatus(ctx context.Context, h *domain.ReorderHistory) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.ReorderHistory, error)
	ListBySKU(ctx context.Context, skuID uuid.UUID, limit int) ([]domain.ReorderHistory, error)
	// ClosePendingOlderThan fails every pending entry created before cutoff
	// and returns the entries it closed.
	ClosePendingOlderThan(ctx context.Context, cutoff time.Time, note string) ([]domain.ReorderHistory, error)
}
