// internal/workers/tasks.go
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	TypeScheduledRun    = "reorder:scheduled_run"
	TypeInventoryChange = "reorder:inventory_change"
	TypeSweepStale      = "reorder:sweep_stale"
)

// InventoryChangeUniqueFor collapses bursts of changes to one SKU into a
// single pending task
const InventoryChangeUniqueFor = time.Minute

// InventoryChangePayload is the payload of TypeInventoryChange
type InventoryChangePayload struct {
	SKUID uuid.UUID `json:"sku_id"`
}

// NewScheduledRunTask builds the recurring full pass. Runs are never retried;
// the next tick picks up whatever this one missed.
func NewScheduledRunTask(queue string, timeout time.Duration) *asynq.Task {
	return asynq.NewTask(TypeScheduledRun, nil,
		asynq.Queue(queue),
		asynq.MaxRetry(0),
		asynq.Timeout(timeout),
	)
}

// NewInventoryChangeTask builds a single-SKU pass for skuID
func NewInventoryChangeTask(skuID uuid.UUID, queue string, timeout time.Duration) (*asynq.Task, error) {
	if skuID == uuid.Nil {
		return nil, fmt.Errorf("sku id is required")
	}

	payload, err := json.Marshal(InventoryChangePayload{SKUID: skuID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	return asynq.NewTask(TypeInventoryChange, payload,
		asynq.Queue(queue),
		asynq.MaxRetry(0),
		asynq.Timeout(timeout),
		asynq.Unique(InventoryChangeUniqueFor),
	), nil
}

// NewSweepStaleTask builds the abandoned audit entry sweep
func NewSweepStaleTask(queue string) *asynq.Task {
	return asynq.NewTask(TypeSweepStale, nil,
		asynq.Queue(queue),
		asynq.MaxRetry(1),
		asynq.Timeout(time.Minute),
	)
}

func decodeInventoryChange(t *asynq.Task) (InventoryChangePayload, error) {
	var p InventoryChangePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return p, fmt.Errorf("failed to unmarshal payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.SKUID == uuid.Nil {
		return p, fmt.Errorf("payload has no sku id: %w", asynq.SkipRetry)
	}
	return p, nil
}
