// internal/core/domain/eligibility.go
package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockStatus is the severity label attached to an under-stocked SKU
type StockStatus string

// Stock status constants
const (
	StockStatusCritical StockStatus = "Critical"
	StockStatusLow      StockStatus = "Low"
)

// EligibleItem is a SKU that is currently under its minimum threshold and
// configured for replenishment.
type EligibleItem struct {
	SKUID            uuid.UUID        `json:"sku_id"`
	SKUCode          string           `json:"sku_code"`
	SKUName          string           `json:"sku_name"`
	VendorID         uuid.UUID        `json:"vendor_id"`
	Available        int              `json:"available"`
	MinThreshold     int              `json:"min_threshold"`
	OptimalThreshold int              `json:"optimal_threshold"`
	Status           StockStatus      `json:"status_label"`
	CostPrice        *decimal.Decimal `json:"cost_price,omitempty"`
}

// IsBelowThreshold is the eligibility rule. A zero minimum never triggers.
func IsBelowThreshold(available int, t Thresholds) bool {
	return t.Min > 0 && available < t.Min
}

// ClassifyStock labels an under-stocked level: Critical at or below half the minimum.
func ClassifyStock(available, minThreshold int) StockStatus {
	if available*2 <= minThreshold {
		return StockStatusCritical
	}
	return StockStatusLow
}

// NewEligibleItem evaluates a SKU against its inventory level. The second
// return value is false when the SKU does not need replenishment.
func NewEligibleItem(sku *SKU, available int, t Thresholds) (EligibleItem, bool) {
	if !IsBelowThreshold(available, t) {
		return EligibleItem{}, false
	}

	item := EligibleItem{
		SKUID:            sku.ID,
		SKUCode:          sku.Code,
		SKUName:          sku.Name,
		Available:        available,
		MinThreshold:     t.Min,
		OptimalThreshold: t.Optimal,
		Status:           ClassifyStock(available, t.Min),
		CostPrice:        sku.CostPrice,
	}
	if sku.HasVendor() {
		item.VendorID = *sku.PreferredVendorID
	}
	return item, true
}

// ReorderQuantity is the amount that restores the optimal level
func (e *EligibleItem) ReorderQuantity() int {
	return e.OptimalThreshold - e.Available
}

// UnitPrice resolves the purchase price from the SKU's cost price
func (e *EligibleItem) UnitPrice() (decimal.Decimal, error) {
	return unitPrice(e.CostPrice)
}

// Thresholds returns the snapshot thresholds carried by the item
func (e *EligibleItem) Thresholds() Thresholds {
	return Thresholds{Min: e.MinThreshold, Optimal: e.OptimalThreshold}
}

// Label is the human-readable identifier used in notes and error strings
func (e *EligibleItem) Label() string {
	if e.SKUCode != "" {
		return e.SKUCode
	}
	return e.SKUID.String()
}
