// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrSKUNotFound        = errors.New("sku not found")
	ErrSKUInactive        = errors.New("sku is not active")
	ErrAutoReorderOff     = errors.New("auto reorder is disabled for sku")
	ErrMissingVendor      = errors.New("sku has no preferred vendor")
	ErrMissingCostPrice   = errors.New("cost price missing or not positive")
	ErrNotBelowThreshold  = errors.New("sku is not below its minimum threshold")
	ErrInvalidQuantity    = errors.New("reorder quantity must be positive")
	ErrReorderInFlight    = errors.New("reorder already in progress for sku")
	ErrNoItemsToOrder     = errors.New("no items to order")
	ErrInvalidTransition  = errors.New("invalid reorder status transition")
	ErrHistoryNotFound    = errors.New("reorder history entry not found")
	ErrPurchaseOrderWrite = errors.New("purchase order write failed")
)

// ItemError ties a failure to the SKU it happened on
type ItemError struct {
	SKUID   uuid.UUID
	SKUCode string
	Err     error
}

func (e *ItemError) Error() string {
	label := e.SKUCode
	if label == "" {
		label = e.SKUID.String()
	}
	return fmt.Sprintf("sku %s: %v", label, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// NewItemError wraps err with the item's identity
func NewItemError(item *EligibleItem, err error) *ItemError {
	return &ItemError{SKUID: item.SKUID, SKUCode: item.SKUCode, Err: err}
}

// VendorError is a failure that applies to a whole vendor batch
type VendorError struct {
	VendorID uuid.UUID
	Err      error
}

func (e *VendorError) Error() string {
	return fmt.Sprintf("vendor %s: %v", e.VendorID, e.Err)
}

func (e *VendorError) Unwrap() error {
	return e.Err
}
