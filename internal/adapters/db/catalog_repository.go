// internal/adapters/db/catalog_repository.go
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
)

// catalogRepository implements ports.CatalogRepository
type catalogRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *Database, logger *slog.Logger) ports.CatalogRepository {
	return &catalogRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "catalog")),
	}
}

func skuSelect() squirrel.SelectBuilder {
	return squirrel.Select(
		"s.id", "s.code", "s.name", "s.class_id",
		"c.threshold_mode", "c.min_stock", "c.optimal_stock", "c.monthly_thresholds",
		"s.preferred_vendor_id", "s.auto_reorder_enabled", "s.cost_price", "s.is_active",
		"s.created_at", "s.updated_at",
	).From("skus s").
		Join("sku_classes c ON c.id = s.class_id").
		PlaceholderFormat(squirrel.Dollar)
}

// ListAutoReorderSKUs returns replenishable SKUs ordered by code
func (r *catalogRepository) ListAutoReorderSKUs(ctx context.Context) ([]domain.SKU, error) {
	query, args, err := skuSelect().
		Where(squirrel.Eq{"s.is_active": true, "s.auto_reorder_enabled": true}).
		Where(squirrel.NotEq{"s.preferred_vendor_id": nil}).
		OrderBy("s.code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sku query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query auto-reorder skus: %w", err)
	}
	defer rows.Close()

	skus := make([]domain.SKU, 0)
	for rows.Next() {
		sku, err := r.scanSKU(ctx, rows)
		if err != nil {
			return nil, err
		}
		skus = append(skus, *sku)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate skus: %w", err)
	}

	return skus, nil
}

// FindSKU returns domain.ErrSKUNotFound for an unknown id
func (r *catalogRepository) FindSKU(ctx context.Context, skuID uuid.UUID) (*domain.SKU, error) {
	query, args, err := skuSelect().Where(squirrel.Eq{"s.id": skuID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sku query: %w", err)
	}

	sku, err := r.scanSKU(ctx, r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSKUNotFound
		}
		return nil, err
	}
	return sku, nil
}

// scanSKU never fails on a malformed monthly configuration: the SKU is
// returned without monthly thresholds, which resolves to "do not reorder".
func (r *catalogRepository) scanSKU(ctx context.Context, row pgx.Row) (*domain.SKU, error) {
	var (
		sku          domain.SKU
		mode         string
		minStock     *int
		optimalStock *int
		monthly      []byte
		vendorID     uuid.NullUUID
		cost         decimal.NullDecimal
	)

	err := row.Scan(
		&sku.ID, &sku.Code, &sku.Name, &sku.ClassID,
		&mode, &minStock, &optimalStock, &monthly,
		&vendorID, &sku.AutoReorderEnabled, &cost, &sku.IsActive,
		&sku.CreatedAt, &sku.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan sku: %w", err)
	}

	sku.Thresholds = domain.StockThresholdConfig{
		Mode:         domain.ThresholdMode(mode),
		MinStock:     minStock,
		OptimalStock: optimalStock,
	}
	if len(monthly) > 0 {
		if err := json.Unmarshal(monthly, &sku.Thresholds.Monthly); err != nil {
			r.logger.WarnContext(ctx, "ignoring malformed monthly thresholds",
				slog.String("sku_id", sku.ID.String()),
				slog.String("class_id", sku.ClassID.String()),
				"err", err)
			sku.Thresholds.Monthly = nil
		}
	}
	if vendorID.Valid {
		id := vendorID.UUID
		sku.PreferredVendorID = &id
	}
	if cost.Valid {
		price := cost.Decimal
		sku.CostPrice = &price
	}

	return &sku, nil
}

// inventoryLedger implements ports.InventoryLedger over inventory_levels.
// Available quantity is summed across warehouses.
type inventoryLedger struct {
	db     *Database
	logger *slog.Logger
}

// NewInventoryLedger creates a new inventory ledger
func NewInventoryLedger(db *Database, logger *slog.Logger) ports.InventoryLedger {
	return &inventoryLedger{
		db:     db,
		logger: logger.With(slog.String("repository", "inventory_ledger")),
	}
}

// AvailableBySKU implements ports.InventoryLedger
func (l *inventoryLedger) AvailableBySKU(ctx context.Context, skuIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	levels := make(map[uuid.UUID]int, len(skuIDs))
	if len(skuIDs) == 0 {
		return levels, nil
	}
	for _, id := range skuIDs {
		levels[id] = 0
	}

	query, args, err := squirrel.Select("sku_id", "COALESCE(SUM(available_quantity), 0)").
		From("inventory_levels").
		Where(squirrel.Eq{"sku_id": skuIDs}).
		GroupBy("sku_id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build inventory query: %w", err)
	}

	rows, err := l.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory levels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			skuID     uuid.UUID
			available int64
		)
		if err := rows.Scan(&skuID, &available); err != nil {
			return nil, fmt.Errorf("failed to scan inventory level: %w", err)
		}
		levels[skuID] = int(available)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inventory levels: %w", err)
	}

	l.logger.DebugContext(ctx, "inventory levels read", slog.Int("skus", len(skuIDs)))
	return levels, nil
}
