// test/helpers/fakes.go
package helpers

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// MemoryStore is an in-memory catalog, inventory ledger and purchase order
// store. Failure injection fields make the next matching call fail.
type MemoryStore struct {
	mu sync.Mutex

	SKUs      []domain.SKU
	Available map[uuid.UUID]int
	Orders    map[uuid.UUID]*domain.PurchaseOrder

	FailInsertHeader error
	FailInsertLines  error
	FailDeleteHeader error
	FailLatestNumber error
	LatestNumber     string

	DeletedHeaders []uuid.UUID
}

// MemoryHistory is an in-memory reorder history store. It enforces the same
// open-entry uniqueness and conditional close as the Postgres schema.
type MemoryHistory struct {
	mu sync.Mutex

	Entries     []*domain.ReorderHistory
	FailHasOpen error
}

var (
	_ ports.CatalogRepository        = (*MemoryStore)(nil)
	_ ports.InventoryLedger          = (*MemoryStore)(nil)
	_ ports.PurchaseOrderRepository  = (*MemoryStore)(nil)
	_ ports.ReorderHistoryRepository = (*MemoryHistory)(nil)
)

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		Available: make(map[uuid.UUID]int),
		Orders:    make(map[uuid.UUID]*domain.PurchaseOrder),
	}
}

// NewMemoryHistory creates an empty history store
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{}
}

// AddSKU registers a SKU with its available quantity
func (m *MemoryStore) AddSKU(sku *domain.SKU, available int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SKUs = append(m.SKUs, *sku)
	m.Available[sku.ID] = available
}

// ListAutoReorderSKUs implements ports.CatalogRepository
func (m *MemoryStore) ListAutoReorderSKUs(ctx context.Context) ([]domain.SKU, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.SKU, 0, len(m.SKUs))
	for _, sku := range m.SKUs {
		if sku.IsActive && sku.AutoReorderEnabled && sku.HasVendor() {
			out = append(out, sku)
		}
	}
	return out, nil
}

// FindSKU implements ports.CatalogRepository
func (m *MemoryStore) FindSKU(ctx context.Context, skuID uuid.UUID) (*domain.SKU, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.SKUs {
		if m.SKUs[i].ID == skuID {
			sku := m.SKUs[i]
			return &sku, nil
		}
	}
	return nil, domain.ErrSKUNotFound
}

// AvailableBySKU implements ports.InventoryLedger
func (m *MemoryStore) AvailableBySKU(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[uuid.UUID]int, len(skuIDs))
	for _, id := range skuIDs {
		out[id] = m.Available[id]
	}
	return out, nil
}

// LatestPONumber implements ports.PurchaseOrderRepository
func (m *MemoryStore) LatestPONumber(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailLatestNumber != nil {
		return "", m.FailLatestNumber
	}
	return m.LatestNumber, nil
}

// InsertHeader implements ports.PurchaseOrderRepository
func (m *MemoryStore) InsertHeader(ctx context.Context, po *domain.PurchaseOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInsertHeader != nil {
		return m.FailInsertHeader
	}
	for _, existing := range m.Orders {
		if existing.PONumber == po.PONumber {
			return errors.New("duplicate po_number")
		}
	}

	header := *po
	header.Lines = nil
	m.Orders[po.ID] = &header
	m.LatestNumber = po.PONumber
	return nil
}

// InsertLines implements ports.PurchaseOrderRepository
func (m *MemoryStore) InsertLines(ctx context.Context, poID uuid.UUID, lines []domain.PurchaseOrderLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInsertLines != nil {
		return m.FailInsertLines
	}
	po, ok := m.Orders[poID]
	if !ok {
		return errors.New("purchase order header not found")
	}
	po.Lines = append(po.Lines, lines...)
	return nil
}

// DeleteHeader implements ports.PurchaseOrderRepository
func (m *MemoryStore) DeleteHeader(ctx context.Context, poID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailDeleteHeader != nil {
		return m.FailDeleteHeader
	}
	delete(m.Orders, poID)
	m.DeletedHeaders = append(m.DeletedHeaders, poID)
	return nil
}

// FindByID implements ports.PurchaseOrderRepository
func (m *MemoryStore) FindByID(ctx context.Context, poID uuid.UUID) (*domain.PurchaseOrder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	po, ok := m.Orders[poID]
	if !ok {
		return nil, nil
	}
	cp := *po
	return &cp, nil
}

// OrdersForVendor returns the purchase orders written for vendorID
func (m *MemoryStore) OrdersForVendor(vendorID uuid.UUID) []domain.PurchaseOrder {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.PurchaseOrder{}
	for _, po := range m.Orders {
		if po.VendorID == vendorID {
			out = append(out, *po)
		}
	}
	return out
}

// HasOpen implements ports.ReorderHistoryRepository
func (m *MemoryHistory) HasOpen(ctx context.Context, skuID uuid.UUID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailHasOpen != nil {
		return false, m.FailHasOpen
	}
	return m.hasOpenLocked(skuID), nil
}

func (m *MemoryHistory) hasOpenLocked(skuID uuid.UUID) bool {
	for _, h := range m.Entries {
		if h.SKUID == skuID && h.Status.IsOpen() {
			return true
		}
	}
	return false
}

// Insert implements ports.ReorderHistoryRepository
func (m *MemoryHistory) Insert(ctx context.Context, h *domain.ReorderHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hasOpenLocked(h.SKUID) {
		return domain.ErrReorderInFlight
	}
	cp := *h
	m.Entries = append(m.Entries, &cp)
	return nil
}

// UpdateStatus implements ports.ReorderHistoryRepository
func (m *MemoryHistory) UpdateStatus(ctx context.Context, h *domain.ReorderHistory) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, stored := range m.Entries {
		if stored.ID != h.ID {
			continue
		}
		if stored.Status != domain.ReorderStatusPending {
			return domain.ErrInvalidTransition
		}
		stored.Status = h.Status
		stored.Note = h.Note
		stored.PurchaseOrderID = h.PurchaseOrderID
		stored.UpdatedAt = h.UpdatedAt
		return nil
	}
	return domain.ErrHistoryNotFound
}

// FindByID implements ports.ReorderHistoryRepository
func (m *MemoryHistory) FindByID(ctx context.Context, id uuid.UUID) (*domain.ReorderHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, h := range m.Entries {
		if h.ID == id {
			cp := *h
			return &cp, nil
		}
	}
	return nil, domain.ErrHistoryNotFound
}

// ListBySKU implements ports.ReorderHistoryRepository
func (m *MemoryHistory) ListBySKU(ctx context.Context, skuID uuid.UUID, limit int) ([]domain.ReorderHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.ReorderHistory{}
	for _, h := range m.Entries {
		if h.SKUID == skuID {
			out = append(out, *h)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ClosePendingOlderThan implements ports.ReorderHistoryRepository
func (m *MemoryHistory) ClosePendingOlderThan(ctx context.Context, cutoff time.Time, note string) ([]domain.ReorderHistory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	closed := []domain.ReorderHistory{}
	for _, h := range m.Entries {
		if h.Status == domain.ReorderStatusPending && h.CreatedAt.Before(cutoff) {
			h.Status = domain.ReorderStatusFailed
			h.Note = note
			closed = append(closed, *h)
		}
	}
	return closed, nil
}

// For returns every entry recorded for skuID in insertion order
func (m *MemoryHistory) For(skuID uuid.UUID) []domain.ReorderHistory {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []domain.ReorderHistory{}
	for _, h := range m.Entries {
		if h.SKUID == skuID {
			out = append(out, *h)
		}
	}
	return out
}
