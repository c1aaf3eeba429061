// internal/core/domain/run.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunMode distinguishes a full pass from a single-SKU pass
type RunMode string

// Run mode constants
const (
	RunModeScheduled RunMode = "scheduled"
	RunModeSingleSKU RunMode = "single_sku"
)

// RunResult is the ephemeral summary of one orchestrator invocation. It is
// returned to the caller and never written to the store.
//
// Success only reports that the run completed. A run that could not start
// (auth, configuration, a failed scan) returns an error instead of a
// RunResult, so Success is always true here. Item and vendor failures are
// listed in Errors, and callers must inspect it to tell "nothing needed
// reordering" from "everything failed".
type RunResult struct {
	RunID            uuid.UUID   `json:"run_id"`
	Success          bool        `json:"success"`
	Processed        int         `json:"processed"`
	PurchaseOrderIDs []uuid.UUID `json:"purchase_order_ids"`
	Errors           []string    `json:"errors"`
	Skipped          []string    `json:"skipped"`
	StartedAt        time.Time   `json:"started_at"`
	FinishedAt       time.Time   `json:"finished_at"`
}

// NewRunResult starts an empty, successful summary
func NewRunResult(startedAt time.Time) *RunResult {
	return &RunResult{
		RunID:            uuid.New(),
		Success:          true,
		PurchaseOrderIDs: []uuid.UUID{},
		Errors:           []string{},
		Skipped:          []string{},
		StartedAt:        startedAt,
	}
}

// AddError records an item- or vendor-level failure
func (r *RunResult) AddError(err error) {
	r.Errors = append(r.Errors, err.Error())
}

// AddSkip records an item that was intentionally not ordered
func (r *RunResult) AddSkip(reason string) {
	r.Skipped = append(r.Skipped, reason)
}

// AddPurchaseOrder records a created PO and the number of items it covers
func (r *RunResult) AddPurchaseOrder(poID uuid.UUID, items int) {
	r.PurchaseOrderIDs = append(r.PurchaseOrderIDs, poID)
	r.Processed += items
}

// HasErrors reports whether anything failed during the run
func (r *RunResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// ManualResult is the response shape of the single-SKU trigger
type ManualResult struct {
	Success         bool       `json:"success"`
	PurchaseOrderID *uuid.UUID `json:"purchase_order_id,omitempty"`
	Error           string     `json:"error,omitempty"`
}

// ManualResultFrom narrows a single-SKU run to the manual response
func ManualResultFrom(r *RunResult) *ManualResult {
	res := &ManualResult{Success: len(r.PurchaseOrderIDs) > 0 && !r.HasErrors()}
	if len(r.PurchaseOrderIDs) > 0 {
		id := r.PurchaseOrderIDs[0]
		res.PurchaseOrderID = &id
	}
	switch {
	case len(r.Errors) > 0:
		res.Error = r.Errors[0]
	case len(r.Skipped) > 0 && !res.Success:
		res.Error = r.Skipped[0]
	}
	return res
}
