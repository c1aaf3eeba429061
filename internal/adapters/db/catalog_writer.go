// internal/adapters/db/catalog_writer.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/reorder-engine/internal/core/domain"
)

// InventoryLevel is the available quantity of a SKU in one warehouse
type InventoryLevel struct {
	SKUID       uuid.UUID
	WarehouseID string
	Available   int
}

// CatalogSeed is master data written by the seeder and the test suites
type CatalogSeed struct {
	Vendors []domain.Vendor
	Classes []domain.SKUClass
	SKUs    []domain.SKU
	Levels  []InventoryLevel
}

// CatalogWriter loads master data. The engine itself never writes the catalog.
type CatalogWriter struct {
	db     *Database
	logger *slog.Logger
}

// NewCatalogWriter creates a new catalog writer
func NewCatalogWriter(db *Database, logger *slog.Logger) *CatalogWriter {
	return &CatalogWriter{
		db:     db,
		logger: logger.With(slog.String("repository", "catalog_writer")),
	}
}

// Seed upserts everything in one transaction, so re-running the same seed
// is a no-op apart from updated_at
func (w *CatalogWriter) Seed(ctx context.Context, seed *CatalogSeed) error {
	return w.db.Transaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}

		for _, v := range seed.Vendors {
			batch.Queue(`
				INSERT INTO vendors (id, code, name, is_active)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO UPDATE SET
					code = EXCLUDED.code, name = EXCLUDED.name,
					is_active = EXCLUDED.is_active, updated_at = NOW()`,
				v.ID, v.Code, v.Name, v.IsActive)
		}

		for _, c := range seed.Classes {
			monthly, err := json.Marshal(monthlyOrEmpty(c.Thresholds.Monthly))
			if err != nil {
				return fmt.Errorf("failed to encode monthly thresholds for class %s: %w", c.Name, err)
			}
			batch.Queue(`
				INSERT INTO sku_classes (id, name, threshold_mode, min_stock, optimal_stock, monthly_thresholds)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO UPDATE SET
					name = EXCLUDED.name, threshold_mode = EXCLUDED.threshold_mode,
					min_stock = EXCLUDED.min_stock, optimal_stock = EXCLUDED.optimal_stock,
					monthly_thresholds = EXCLUDED.monthly_thresholds, updated_at = NOW()`,
				c.ID, c.Name, c.Thresholds.Mode, c.Thresholds.MinStock, c.Thresholds.OptimalStock, monthly)
		}

		for _, s := range seed.SKUs {
			batch.Queue(`
				INSERT INTO skus (id, code, name, class_id, preferred_vendor_id, auto_reorder_enabled, cost_price, is_active)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				ON CONFLICT (id) DO UPDATE SET
					code = EXCLUDED.code, name = EXCLUDED.name, class_id = EXCLUDED.class_id,
					preferred_vendor_id = EXCLUDED.preferred_vendor_id,
					auto_reorder_enabled = EXCLUDED.auto_reorder_enabled,
					cost_price = EXCLUDED.cost_price, is_active = EXCLUDED.is_active, updated_at = NOW()`,
				s.ID, s.Code, s.Name, s.ClassID, s.PreferredVendorID, s.AutoReorderEnabled, s.CostPrice, s.IsActive)
		}

		for _, l := range seed.Levels {
			batch.Queue(upsertLevelSQL, l.SKUID, warehouseOrDefault(l.WarehouseID), l.Available)
		}

		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("failed to write seed row %d: %w", i, err)
			}
		}
		if err := br.Close(); err != nil {
			return fmt.Errorf("failed to close batch results: %w", err)
		}

		w.logger.InfoContext(ctx, "catalog seeded",
			slog.Int("vendors", len(seed.Vendors)),
			slog.Int("classes", len(seed.Classes)),
			slog.Int("skus", len(seed.SKUs)),
			slog.Int("levels", len(seed.Levels)))

		return nil
	})
}

// SetAvailable overwrites one inventory level, which fires inventory_changed
func (w *CatalogWriter) SetAvailable(ctx context.Context, level InventoryLevel) error {
	_, err := w.db.Exec(ctx, upsertLevelSQL, level.SKUID, warehouseOrDefault(level.WarehouseID), level.Available)
	if err != nil {
		return fmt.Errorf("failed to set inventory level: %w", err)
	}
	return nil
}

const upsertLevelSQL = `
	INSERT INTO inventory_levels (sku_id, warehouse_id, available_quantity)
	VALUES ($1, $2, $3)
	ON CONFLICT (sku_id, warehouse_id) DO UPDATE SET
		available_quantity = EXCLUDED.available_quantity, updated_at = NOW()`

func warehouseOrDefault(id string) string {
	if id == "" {
		return "main"
	}
	return id
}

func monthlyOrEmpty(m []domain.MonthlyThreshold) []domain.MonthlyThreshold {
	if m == nil {
		return []domain.MonthlyThreshold{}
	}
	return m
}
