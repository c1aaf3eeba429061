package benchmarks

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/services"
	"github.com/ammerola/reorder-engine/test/helpers"
)

var benchLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// catalogOf fills a store with size SKUs spread over vendors; two in three
// are below their minimum
func catalogOf(size, vendors int) *helpers.MemoryStore {
	store := helpers.NewMemoryStore()
	ids := make([]uuid.UUID, vendors)
	for i := range ids {
		ids[i] = uuid.New()
	}
	for i := 0; i < size; i++ {
		sku := helpers.CreateTestSKU(helpers.WithVendor(ids[i%vendors]), func(sku *domain.SKU) {
			sku.Code = fmt.Sprintf("SKU-%05d", i+1)
		})
		store.AddSKU(sku, (i%3)*15)
	}
	return store
}

func BenchmarkResolveThresholds(b *testing.B) {
	cfg := domain.StockThresholdConfig{Mode: domain.ThresholdModeMonthly}
	for m := 1; m <= 12; m++ {
		cfg.Monthly = append(cfg.Monthly, domain.MonthlyThreshold{
			Month:        m,
			MinStock:     m * 10,
			OptimalStock: m * 20,
		})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.ResolveThresholds(cfg, time.Month(i%12+1))
	}
}

func BenchmarkEligibilityScan(b *testing.B) {
	for _, size := range []int{100, 1000, 10000} {
		b.Run(fmt.Sprintf("skus_%d", size), func(b *testing.B) {
			store := catalogOf(size, 10)
			scanner := services.NewEligibilityScanner(store, store, benchLogger)
			ctx := context.Background()
			at := time.Now().UTC()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := scanner.Scan(ctx, at); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBatchByVendor(b *testing.B) {
	for _, vendors := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("vendors_%d", vendors), func(b *testing.B) {
			ids := make([]uuid.UUID, vendors)
			for i := range ids {
				ids[i] = uuid.New()
			}
			items := helpers.CreateTestEligibleItems(5000, ids)

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = services.BatchByVendor(items)
			}
		})
	}
}

func BenchmarkScheduledRun(b *testing.B) {
	ctx := context.Background()
	at := time.Now().UTC()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		store := catalogOf(1000, 10)
		history := helpers.NewMemoryHistory()
		service := services.NewReorderService(
			services.NewEligibilityScanner(store, store, benchLogger),
			services.NewReorderGuard(history, benchLogger),
			services.NewAuditTrail(history, benchLogger),
			services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), benchLogger),
			benchLogger,
		)
		b.StartTimer()

		if _, err := service.RunScheduled(ctx, at); err != nil {
			b.Fatal(err)
		}
	}
}
