// internal/core/domain/sku.go
package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ThresholdMode selects how a SKU class expresses its stock thresholds
type ThresholdMode string

// Threshold mode constants
const (
	ThresholdModeOverall ThresholdMode = "overall"
	ThresholdModeMonthly ThresholdMode = "monthly"
)

// MonthlyThreshold is the min/optimal pair for one calendar month (1-12)
type MonthlyThreshold struct {
	Month        int `json:"month"`
	MinStock     int `json:"min_stock"`
	OptimalStock int `json:"optimal_stock"`
}

// StockThresholdConfig is the stock-management configuration carried by a SKU class
type StockThresholdConfig struct {
	Mode         ThresholdMode      `json:"mode"`
	MinStock     *int               `json:"min_stock,omitempty"`
	OptimalStock *int               `json:"optimal_stock,omitempty"`
	Monthly      []MonthlyThreshold `json:"monthly,omitempty"`
}

// Validate checks the configuration shape. Resolution never fails on a bad
// config; this is only used by the seeder and tests.
func (c StockThresholdConfig) Validate() error {
	switch c.Mode {
	case ThresholdModeOverall:
		if c.MinStock != nil && *c.MinStock < 0 {
			return fmt.Errorf("min_stock cannot be negative")
		}
		if c.OptimalStock != nil && *c.OptimalStock < 0 {
			return fmt.Errorf("optimal_stock cannot be negative")
		}
	case ThresholdModeMonthly:
		seen := make(map[int]bool, len(c.Monthly))
		for _, m := range c.Monthly {
			if m.Month < 1 || m.Month > 12 {
				return fmt.Errorf("month must be between 1 and 12, got %d", m.Month)
			}
			if seen[m.Month] {
				return fmt.Errorf("duplicate threshold for month %d", m.Month)
			}
			seen[m.Month] = true
		}
	default:
		return fmt.Errorf("unknown threshold mode %q", c.Mode)
	}
	return nil
}

// Vendor is a supplier record owned by the catalog
type Vendor struct {
	ID       uuid.UUID `json:"id"`
	Code     string    `json:"code"`
	Name     string    `json:"name"`
	IsActive bool      `json:"is_active"`
}

// SKUClass groups SKUs that share a threshold configuration
type SKUClass struct {
	ID         uuid.UUID            `json:"id"`
	Name       string               `json:"name"`
	Thresholds StockThresholdConfig `json:"thresholds"`
}

// SKU is a stockable unit as seen by the reorder engine. The class
// threshold configuration is joined in so the scanner never does a second read.
type SKU struct {
	ID                 uuid.UUID            `json:"id"`
	Code               string               `json:"code"`
	Name               string               `json:"name"`
	ClassID            uuid.UUID            `json:"class_id"`
	Thresholds         StockThresholdConfig `json:"thresholds"`
	PreferredVendorID  *uuid.UUID           `json:"preferred_vendor_id,omitempty"`
	AutoReorderEnabled bool                 `json:"auto_reorder_enabled"`
	CostPrice          *decimal.Decimal     `json:"cost_price,omitempty"`
	IsActive           bool                 `json:"is_active"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

// HasVendor reports whether a preferred vendor is configured
func (s *SKU) HasVendor() bool {
	return s.PreferredVendorID != nil && *s.PreferredVendorID != uuid.Nil
}

// UnitPrice returns the cost price used on purchase order lines.
func (s *SKU) UnitPrice() (decimal.Decimal, error) {
	return unitPrice(s.CostPrice)
}

func unitPrice(cost *decimal.Decimal) (decimal.Decimal, error) {
	if cost == nil || !cost.IsPositive() {
		return decimal.Zero, ErrMissingCostPrice
	}
	return *cost, nil
}
