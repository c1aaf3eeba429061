// internal/core/domain/purchase_order.go
package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the lifecycle state of a purchase order
type PurchaseOrderStatus string

// Purchase order status constants. The engine only ever writes drafts; the
// rest of the flow belongs to purchasing.
const (
	POStatusDraft     PurchaseOrderStatus = "draft"
	POStatusSubmitted PurchaseOrderStatus = "submitted"
	POStatusApproved  PurchaseOrderStatus = "approved"
	POStatusCancelled PurchaseOrderStatus = "cancelled"
)

// DefaultPONumberPrefix and DefaultPONumberWidth shape numbers like PO-000042
const (
	DefaultPONumberPrefix = "PO-"
	DefaultPONumberWidth  = 6
)

// PurchaseOrder is a supplier order header
type PurchaseOrder struct {
	ID            uuid.UUID           `json:"id"`
	PONumber      string              `json:"po_number"`
	VendorID      uuid.UUID           `json:"vendor_id"`
	Status        PurchaseOrderStatus `json:"status"`
	TotalAmount   decimal.Decimal     `json:"total_amount"`
	AutoGenerated bool                `json:"auto_generated"`
	TriggerType   TriggerType         `json:"trigger_type"`
	RelatedSKUIDs []uuid.UUID         `json:"related_sku_ids"`
	Lines         []PurchaseOrderLine `json:"lines"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PurchaseOrderLine is one SKU on a purchase order
type PurchaseOrderLine struct {
	ID              uuid.UUID       `json:"id"`
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	SKUID           uuid.UUID       `json:"sku_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Total           decimal.Decimal `json:"total"`
}

// NewPurchaseOrderLine prices a line
func NewPurchaseOrderLine(skuID uuid.UUID, quantity int, unitPrice decimal.Decimal) PurchaseOrderLine {
	return PurchaseOrderLine{
		ID:        uuid.New(),
		SKUID:     skuID,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		Total:     unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}
}

// NewAutoPurchaseOrder builds an engine-authored draft for a vendor
func NewAutoPurchaseOrder(vendorID uuid.UUID, number string, trigger TriggerType, lines []PurchaseOrderLine, now time.Time) *PurchaseOrder {
	po := &PurchaseOrder{
		ID:            uuid.New(),
		PONumber:      number,
		VendorID:      vendorID,
		Status:        POStatusDraft,
		AutoGenerated: true,
		TriggerType:   trigger,
		Lines:         lines,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	po.RelatedSKUIDs = make([]uuid.UUID, 0, len(lines))
	for i := range po.Lines {
		po.Lines[i].PurchaseOrderID = po.ID
		po.RelatedSKUIDs = append(po.RelatedSKUIDs, po.Lines[i].SKUID)
	}
	po.CalculateTotal()

	return po
}

// CalculateTotal sets TotalAmount to the sum of line totals
func (po *PurchaseOrder) CalculateTotal() {
	total := decimal.Zero
	for _, line := range po.Lines {
		total = total.Add(line.Total)
	}
	po.TotalAmount = total
}

// ParsePONumber extracts the sequence from a number like PO-000042
func ParsePONumber(number, prefix string) (int64, error) {
	if !strings.HasPrefix(number, prefix) {
		return 0, fmt.Errorf("po number %q does not start with %q", number, prefix)
	}
	seq, err := strconv.ParseInt(strings.TrimPrefix(number, prefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("po number %q has no numeric sequence: %w", number, err)
	}
	if seq < 0 {
		return 0, fmt.Errorf("po number %q has a negative sequence", number)
	}
	return seq, nil
}

// NextPONumber derives the number after latest. An empty latest starts the
// sequence at 1; an unparseable one falls back to a timestamp-derived number.
// Uniqueness under concurrent runs is left to the store's unique index.
func NextPONumber(latest, prefix string, width int, now time.Time) string {
	if latest == "" {
		return fmt.Sprintf("%s%0*d", prefix, width, 1)
	}

	seq, err := ParsePONumber(latest, prefix)
	if err != nil {
		return fmt.Sprintf("%s%d", prefix, now.UnixMilli())
	}
	return fmt.Sprintf("%s%0*d", prefix, width, seq+1)
}
