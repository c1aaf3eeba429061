// internal/adapters/db/purchase_order_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// purchaseOrderRepository implements ports.PurchaseOrderRepository
type purchaseOrderRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewPurchaseOrderRepository creates a new purchase order repository
func NewPurchaseOrderRepository(db *Database, logger *slog.Logger) ports.PurchaseOrderRepository {
	return &purchaseOrderRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "purchase_order")),
	}
}

// LatestPONumber returns the number of the most recently created order.
// Orders of one run share created_at, so ties go to the longest then
// greatest number; PO-1000000 outranks PO-999999.
func (r *purchaseOrderRepository) LatestPONumber(ctx context.Context) (string, error) {
	query := `
		SELECT po_number
		FROM purchase_orders
		ORDER BY created_at DESC, length(po_number) DESC, po_number DESC
		LIMIT 1`

	var number string
	err := r.db.QueryRow(ctx, query).Scan(&number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read latest po number: %w", err)
	}

	return number, nil
}

// InsertHeader writes the purchase order header. A duplicate po_number is
// rejected by the unique index.
func (r *purchaseOrderRepository) InsertHeader(ctx context.Context, po *domain.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (
			id, po_number, vendor_id, status, total_amount,
			auto_generated, trigger_type, related_sku_ids, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(ctx, query,
		po.ID, po.PONumber, po.VendorID, po.Status, po.TotalAmount,
		po.AutoGenerated, po.TriggerType, po.RelatedSKUIDs, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert purchase order: %w", err)
	}

	r.logger.DebugContext(ctx, "purchase order header inserted",
		slog.String("po_id", po.ID.String()),
		slog.String("po_number", po.PONumber))

	return nil
}

// InsertLines writes all lines in one transaction
func (r *purchaseOrderRepository) InsertLines(ctx context.Context, poID uuid.UUID, lines []domain.PurchaseOrderLine) error {
	if len(lines) == 0 {
		return nil
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO purchase_order_items (
				id, purchase_order_id, sku_id, quantity, unit_price, total
			) VALUES ($1, $2, $3, $4, $5, $6)`

		batch := &pgx.Batch{}
		for i := range lines {
			batch.Queue(query,
				lines[i].ID, poID, lines[i].SKUID,
				lines[i].Quantity, lines[i].UnitPrice, lines[i].Total,
			)
		}

		br := tx.SendBatch(ctx, batch)
		defer br.Close()

		for i := range lines {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("failed to insert line %d (sku %s): %w", i, lines[i].SKUID, err)
			}
		}

		return nil
	})
}

// DeleteHeader removes a header; lines cascade
func (r *purchaseOrderRepository) DeleteHeader(ctx context.Context, poID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM purchase_orders WHERE id = $1`, poID)
	if err != nil {
		return fmt.Errorf("failed to delete purchase order: %w", err)
	}
	return nil
}

// FindByID loads a purchase order with its lines. It returns nil, nil when
// the order does not exist.
func (r *purchaseOrderRepository) FindByID(ctx context.Context, poID uuid.UUID) (*domain.PurchaseOrder, error) {
	query := `
		SELECT id, po_number, vendor_id, status, total_amount,
			auto_generated, COALESCE(trigger_type, ''), related_sku_ids, created_at, updated_at
		FROM purchase_orders
		WHERE id = $1`

	po := &domain.PurchaseOrder{}
	err := r.db.QueryRow(ctx, query, poID).Scan(
		&po.ID, &po.PONumber, &po.VendorID, &po.Status, &po.TotalAmount,
		&po.AutoGenerated, &po.TriggerType, &po.RelatedSKUIDs, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find purchase order: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, purchase_order_id, sku_id, quantity, unit_price, total
		FROM purchase_order_items
		WHERE purchase_order_id = $1
		ORDER BY id`, poID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchase order lines: %w", err)
	}
	defer rows.Close()

	po.Lines = make([]domain.PurchaseOrderLine, 0)
	for rows.Next() {
		var line domain.PurchaseOrderLine
		if err := rows.Scan(
			&line.ID, &line.PurchaseOrderID, &line.SKUID,
			&line.Quantity, &line.UnitPrice, &line.Total,
		); err != nil {
			return nil, fmt.Errorf("failed to scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase order lines: %w", err)
	}

	return po, nil
}
