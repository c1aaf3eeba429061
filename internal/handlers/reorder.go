// internal/handlers/reorder.go
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
	"github.com/ammerola/reorder-engine/internal/pkg/metrics"
)

// ReorderHandlerConfig carries the run limits the handler enforces
type ReorderHandlerConfig struct {
	RunTimeout time.Duration
	LockKey    string
	LockTTL    time.Duration
	Location   *time.Location
}

// ReorderHandler exposes the reorder triggers over HTTP
type ReorderHandler struct {
	service   ports.ReorderService
	summaries ports.RunSummaryStore
	locker    ports.RunLocker
	cfg       ReorderHandlerConfig
	validate  *validator.Validate
	now       func() time.Time
	logger    *slog.Logger
}

// NewReorderHandler creates a new reorder handler. locker may be nil, in
// which case HTTP runs do not coordinate with the scheduled worker.
func NewReorderHandler(
	service ports.ReorderService,
	summaries ports.RunSummaryStore,
	locker ports.RunLocker,
	cfg ReorderHandlerConfig,
	logger *slog.Logger,
) *ReorderHandler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &ReorderHandler{
		service:   service,
		summaries: summaries,
		locker:    locker,
		cfg:       cfg,
		validate:  validator.New(),
		now:       time.Now,
		logger:    logger.With(slog.String("handler", "reorder")),
	}
}

// WithClock overrides the evaluation clock
func (h *ReorderHandler) WithClock(now func() time.Time) *ReorderHandler {
	h.now = now
	return h
}

// ManualTriggerRequest is the optional body of the single-SKU trigger
type ManualTriggerRequest struct {
	Trigger string `json:"trigger" validate:"omitempty,oneof=manual inventory_change"`
}

// RunScheduled handles POST /api/v1/reorder/run
func (h *ReorderHandler) RunScheduled(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	if h.locker != nil {
		lock, err := h.locker.Acquire(ctx, h.cfg.LockKey, h.cfg.LockTTL)
		if err != nil {
			if errors.Is(err, ports.ErrLockHeld) {
				metrics.ObserveLocked(string(domain.RunModeScheduled))
				h.respondError(w, http.StatusConflict, "a reorder run is already in progress")
				return
			}
			h.logger.ErrorContext(ctx, "failed to acquire run lock", "err", err)
			h.respondError(w, http.StatusServiceUnavailable, "could not coordinate reorder run")
			return
		}
		defer func() {
			if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
				h.logger.WarnContext(ctx, "failed to release run lock", "err", err)
			}
		}()
	}

	result, err := h.service.RunScheduled(ctx, h.now().In(h.cfg.Location))
	if err != nil {
		h.logger.ErrorContext(ctx, "reorder run failed", "err", err)
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if err := h.summaries.SaveLastRun(ctx, result); err != nil {
		h.logger.WarnContext(ctx, "failed to cache run summary", "err", err)
	}

	h.respondJSON(w, http.StatusOK, result)
}

// RunForSKU handles POST /api/v1/reorder/skus/{skuId}
func (h *ReorderHandler) RunForSKU(w http.ResponseWriter, r *http.Request) {
	skuID, err := uuid.Parse(r.PathValue("skuId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid SKU ID format")
		return
	}

	trigger, err := h.decodeTrigger(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := h.runContext(r.Context())
	defer cancel()

	result, err := h.service.RunForSKU(ctx, skuID, trigger, h.now().In(h.cfg.Location))
	if err != nil {
		status := statusForEvaluation(err)
		if status == http.StatusInternalServerError {
			h.logger.ErrorContext(ctx, "manual reorder failed",
				slog.String("sku_id", skuID.String()), "err", err)
		}
		h.respondJSON(w, status, &domain.ManualResult{Error: err.Error()})
		return
	}

	manual := domain.ManualResultFrom(result)
	status := http.StatusOK
	if manual.PurchaseOrderID == nil && !result.HasErrors() && len(result.Skipped) > 0 {
		status = http.StatusConflict
	}
	h.respondJSON(w, status, manual)
}

// LastRun handles GET /api/v1/reorder/runs/last
func (h *ReorderHandler) LastRun(w http.ResponseWriter, r *http.Request) {
	result, err := h.summaries.LastRun(r.Context())
	if err != nil {
		if errors.Is(err, ports.ErrCacheMiss) {
			h.respondError(w, http.StatusNotFound, "No reorder run recorded")
			return
		}
		h.logger.ErrorContext(r.Context(), "failed to load run summary", "err", err)
		h.respondError(w, http.StatusInternalServerError, "Failed to load run summary")
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *ReorderHandler) runContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.cfg.RunTimeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, h.cfg.RunTimeout)
}

func (h *ReorderHandler) decodeTrigger(r *http.Request) (domain.TriggerType, error) {
	var req ManualTriggerRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<12)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return "", errors.New("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return "", errors.New("trigger must be manual or inventory_change")
	}
	if req.Trigger == "" {
		return domain.TriggerManual, nil
	}
	return domain.TriggerType(req.Trigger), nil
}

func statusForEvaluation(err error) int {
	switch {
	case errors.Is(err, domain.ErrSKUNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSKUInactive),
		errors.Is(err, domain.ErrAutoReorderOff),
		errors.Is(err, domain.ErrMissingVendor),
		errors.Is(err, domain.ErrMissingCostPrice),
		errors.Is(err, domain.ErrNotBelowThreshold),
		errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrReorderInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *ReorderHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func (h *ReorderHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
