// internal/adapters/db/reorder_history_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
)

var historyColumns = []string{
	"id", "sku_id", "trigger_type", "inventory_level", "min_threshold",
	"optimal_threshold", "reorder_quantity", "vendor_id", "purchase_order_id",
	"status", "note", "created_at", "updated_at",
}

// reorderHistoryRepository implements ports.ReorderHistoryRepository
type reorderHistoryRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewReorderHistoryRepository creates a new reorder history repository
func NewReorderHistoryRepository(db *Database, logger *slog.Logger) ports.ReorderHistoryRepository {
	return &reorderHistoryRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "reorder_history")),
	}
}

func openStatuses() []string {
	out := make([]string, 0, len(domain.OpenReorderStatuses))
	for _, s := range domain.OpenReorderStatuses {
		out = append(out, string(s))
	}
	return out
}

// HasOpen implements ports.ReorderHistoryRepository
func (r *reorderHistoryRepository) HasOpen(ctx context.Context, skuID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM reorder_history WHERE sku_id = $1 AND status = ANY($2))`

	var exists bool
	if err := r.db.QueryRow(ctx, query, skuID, openStatuses()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open reorders: %w", err)
	}
	return exists, nil
}

// Insert relies on the partial unique index over open entries: a conflicting
// row means another run already holds this SKU.
func (r *reorderHistoryRepository) Insert(ctx context.Context, h *domain.ReorderHistory) error {
	query := `
		INSERT INTO reorder_history (
			id, sku_id, trigger_type, inventory_level, min_threshold,
			optimal_threshold, reorder_quantity, vendor_id, purchase_order_id,
			status, note, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (sku_id) WHERE status IN ('pending', 'po_created') DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		h.ID, h.SKUID, h.TriggerType, h.InventoryLevel, h.MinThreshold,
		h.OptimalThreshold, h.ReorderQuantity, h.VendorID, h.PurchaseOrderID,
		h.Status, h.Note, h.CreatedAt, h.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert reorder history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrReorderInFlight
	}

	return nil
}

// UpdateStatus only touches rows that are still pending
func (r *reorderHistoryRepository) UpdateStatus(ctx context.Context, h *domain.ReorderHistory) error {
	query := `
		UPDATE reorder_history
		SET status = $2, note = $3, purchase_order_id = $4, updated_at = $5
		WHERE id = $1 AND status = 'pending'`

	tag, err := r.db.Exec(ctx, query, h.ID, h.Status, h.Note, h.PurchaseOrderID, h.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update reorder history: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	current, err := r.FindByID(ctx, h.ID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: entry is %s", domain.ErrInvalidTransition, current.Status)
}

// FindByID implements ports.ReorderHistoryRepository
func (r *reorderHistoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ReorderHistory, error) {
	query, args, err := squirrel.Select(historyColumns...).
		From("reorder_history").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	h, err := scanHistory(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHistoryNotFound
		}
		return nil, fmt.Errorf("failed to find reorder history: %w", err)
	}
	return h, nil
}

// ListBySKU returns the newest entries first
func (r *reorderHistoryRepository) ListBySKU(ctx context.Context, skuID uuid.UUID, limit int) ([]domain.ReorderHistory, error) {
	qb := squirrel.Select(historyColumns...).
		From("reorder_history").
		Where(squirrel.Eq{"sku_id": skuID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)
	if limit > 0 {
		qb = qb.Limit(uint64(limit))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build history query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reorder history: %w", err)
	}
	return collectHistory(rows)
}

// ClosePendingOlderThan implements ports.ReorderHistoryRepository
func (r *reorderHistoryRepository) ClosePendingOlderThan(ctx context.Context, cutoff time.Time, note string) ([]domain.ReorderHistory, error) {
	query := `
		UPDATE reorder_history
		SET status = 'failed', note = $2, updated_at = NOW()
		WHERE status = 'pending' AND created_at < $1
		RETURNING ` + strings.Join(historyColumns, ", ")

	rows, err := r.db.Query(ctx, query, cutoff, note)
	if err != nil {
		return nil, fmt.Errorf("failed to close stale reorder entries: %w", err)
	}

	closed, err := collectHistory(rows)
	if err != nil {
		return nil, err
	}

	if len(closed) > 0 {
		r.logger.InfoContext(ctx, "stale reorder entries closed",
			slog.Int("count", len(closed)),
			slog.Time("cutoff", cutoff))
	}
	return closed, nil
}

func collectHistory(rows pgx.Rows) ([]domain.ReorderHistory, error) {
	defer rows.Close()

	out := make([]domain.ReorderHistory, 0)
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reorder history: %w", err)
		}
		out = append(out, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reorder history: %w", err)
	}
	return out, nil
}

func scanHistory(row pgx.Row) (*domain.ReorderHistory, error) {
	var (
		h    domain.ReorderHistory
		poID uuid.NullUUID
	)

	err := row.Scan(
		&h.ID, &h.SKUID, &h.TriggerType, &h.InventoryLevel, &h.MinThreshold,
		&h.OptimalThreshold, &h.ReorderQuantity, &h.VendorID, &poID,
		&h.Status, &h.Note, &h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if poID.Valid {
		id := poID.UUID
		h.PurchaseOrderID = &id
	}
	return &h, nil
}
