// internal/core/services/vendor_batcher.go
package services

import (
	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
)

// VendorBatch is the set of items that go on one vendor's purchase order
type VendorBatch struct {
	VendorID uuid.UUID
	Items    []domain.EligibleItem
}

// GroupByVendor buckets items by preferred vendor. Item order within a
// bucket follows the input.
func GroupByVendor(items []domain.EligibleItem) map[uuid.UUID][]domain.EligibleItem {
	groups := make(map[uuid.UUID][]domain.EligibleItem)
	for _, item := range items {
		groups[item.VendorID] = append(groups[item.VendorID], item)
	}
	return groups
}

// BatchByVendor is GroupByVendor with vendors ordered by first appearance,
// so runs over the same input process vendors in the same order.
func BatchByVendor(items []domain.EligibleItem) []VendorBatch {
	index := make(map[uuid.UUID]int)
	batches := make([]VendorBatch, 0)

	for _, item := range items {
		i, ok := index[item.VendorID]
		if !ok {
			i = len(batches)
			index[item.VendorID] = i
			batches = append(batches, VendorBatch{VendorID: item.VendorID})
		}
		batches[i].Items = append(batches[i].Items, item)
	}

	return batches
}
