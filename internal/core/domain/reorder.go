// internal/core/domain/reorder.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TriggerType records what started a reorder attempt
type TriggerType string

// Trigger type constants
const (
	TriggerAutoSchedule    TriggerType = "auto_schedule"
	TriggerInventoryChange TriggerType = "inventory_change"
	TriggerManual          TriggerType = "manual"
)

// Valid reports whether t is a known trigger type
func (t TriggerType) Valid() bool {
	switch t {
	case TriggerAutoSchedule, TriggerInventoryChange, TriggerManual:
		return true
	}
	return false
}

// ReorderStatus is the state of one reorder attempt
type ReorderStatus string

// Reorder status constants
const (
	ReorderStatusPending   ReorderStatus = "pending"
	ReorderStatusPOCreated ReorderStatus = "po_created"
	ReorderStatusFailed    ReorderStatus = "failed"
)

// OpenReorderStatuses are the statuses that block a new reorder for the same SKU
var OpenReorderStatuses = []ReorderStatus{ReorderStatusPending, ReorderStatusPOCreated}

// IsOpen reports whether the status still counts as an in-flight reorder
func (s ReorderStatus) IsOpen() bool {
	return s == ReorderStatusPending || s == ReorderStatusPOCreated
}

// CanTransitionTo enforces pending -> po_created | failed
func (s ReorderStatus) CanTransitionTo(next ReorderStatus) bool {
	return s == ReorderStatusPending &&
		(next == ReorderStatusPOCreated || next == ReorderStatusFailed)
}

// ReorderHistory is one audit-trail row. Inventory level and thresholds are a
// snapshot taken at decision time and are never recomputed.
type ReorderHistory struct {
	ID               uuid.UUID     `json:"id"`
	SKUID            uuid.UUID     `json:"sku_id"`
	TriggerType      TriggerType   `json:"trigger_type"`
	InventoryLevel   int           `json:"inventory_level"`
	MinThreshold     int           `json:"min_threshold"`
	OptimalThreshold int           `json:"optimal_threshold"`
	ReorderQuantity  int           `json:"reorder_quantity"`
	VendorID         uuid.UUID     `json:"vendor_id"`
	PurchaseOrderID  *uuid.UUID    `json:"purchase_order_id,omitempty"`
	Status           ReorderStatus `json:"status"`
	Note             string        `json:"note,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// NewPendingHistory builds the write-ahead entry for an eligible item
func NewPendingHistory(item *EligibleItem, trigger TriggerType, now time.Time) *ReorderHistory {
	return &ReorderHistory{
		ID:               uuid.New(),
		SKUID:            item.SKUID,
		TriggerType:      trigger,
		InventoryLevel:   item.Available,
		MinThreshold:     item.MinThreshold,
		OptimalThreshold: item.OptimalThreshold,
		ReorderQuantity:  item.ReorderQuantity(),
		VendorID:         item.VendorID,
		Status:           ReorderStatusPending,
		Note:             fmt.Sprintf("%s stock: %d available, min %d", item.Status, item.Available, item.MinThreshold),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Close moves the entry to a terminal state
func (h *ReorderHistory) Close(status ReorderStatus, note string, poID *uuid.UUID, now time.Time) error {
	if !h.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, h.Status, status)
	}
	h.Status = status
	h.Note = note
	h.PurchaseOrderID = poID
	h.UpdatedAt = now
	return nil
}
