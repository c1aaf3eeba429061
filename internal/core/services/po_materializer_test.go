// internal/core/services/po_materializer_test.go
package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/services"
	"github.com/ammerola/reorder-engine/test/helpers"
	"github.com/ammerola/reorder-engine/test/mocks"
)

func TestPurchaseOrderMaterializer_Materialize(t *testing.T) {
	vendorID := uuid.New()

	t.Run("single_item_prices_line_from_cost", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		item := helpers.CreateTestEligibleItem(func(i *domain.EligibleItem) { i.VendorID = vendorID })
		res, err := m.Materialize(context.Background(), vendorID, []domain.EligibleItem{*item}, domain.TriggerAutoSchedule, july)
		require.NoError(t, err)
		require.NotNil(t, res.PurchaseOrder)

		po := res.PurchaseOrder
		assert.Equal(t, "PO-000001", po.PONumber)
		assert.Equal(t, domain.POStatusDraft, po.Status)
		assert.True(t, po.AutoGenerated)
		assert.Equal(t, domain.TriggerAutoSchedule, po.TriggerType)
		assert.Equal(t, []uuid.UUID{item.SKUID}, po.RelatedSKUIDs)
		require.Len(t, po.Lines, 1)
		assert.Equal(t, 35, po.Lines[0].Quantity)
		assert.True(t, decimal.RequireFromString("350.00").Equal(po.TotalAmount))

		stored := store.OrdersForVendor(vendorID)
		require.Len(t, stored, 1)
		assert.Len(t, stored[0].Lines, 1)
	})

	t.Run("total_is_sum_of_lines", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		items := []domain.EligibleItem{
			*helpers.CreateTestEligibleItem(func(i *domain.EligibleItem) {
				i.Available, i.OptimalThreshold = 0, 10
				i.CostPrice = helpers.DecimalPtr("2.50")
			}),
			*helpers.CreateTestEligibleItem(func(i *domain.EligibleItem) {
				i.Available, i.OptimalThreshold = 3, 10
				i.CostPrice = helpers.DecimalPtr("1.10")
			}),
		}
		res, err := m.Materialize(context.Background(), vendorID, items, domain.TriggerAutoSchedule, july)
		require.NoError(t, err)

		// 10*2.50 + 7*1.10
		assert.Equal(t, "32.70", res.PurchaseOrder.TotalAmount.StringFixed(2))
	})

	t.Run("continues_existing_sequence", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		store.LatestNumber = "PO-000041"
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		res, err := m.Materialize(context.Background(), vendorID,
			[]domain.EligibleItem{*helpers.CreateTestEligibleItem()}, domain.TriggerManual, july)
		require.NoError(t, err)
		assert.Equal(t, "PO-000042", res.PurchaseOrder.PONumber)
	})

	t.Run("unparseable_latest_falls_back_to_timestamp", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		store.LatestNumber = "LEGACY-7"
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		res, err := m.Materialize(context.Background(), vendorID,
			[]domain.EligibleItem{*helpers.CreateTestEligibleItem()}, domain.TriggerManual, july)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("PO-%d", july.UnixMilli()), res.PurchaseOrder.PONumber)
	})

	t.Run("custom_numbering", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		m := services.NewPurchaseOrderMaterializer(store, services.PONumbering{Prefix: "AUTO-", Width: 4}, helpers.TestLogger())

		res, err := m.Materialize(context.Background(), vendorID,
			[]domain.EligibleItem{*helpers.CreateTestEligibleItem()}, domain.TriggerManual, july)
		require.NoError(t, err)
		assert.Equal(t, "AUTO-0001", res.PurchaseOrder.PONumber)
	})

	t.Run("excludes_items_without_price", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		priced := helpers.CreateTestEligibleItem()
		unpriced := helpers.CreateTestEligibleItem(func(i *domain.EligibleItem) { i.CostPrice = nil })
		free := helpers.CreateTestEligibleItem(func(i *domain.EligibleItem) { i.CostPrice = helpers.DecimalPtr("0") })

		res, err := m.Materialize(context.Background(), vendorID,
			[]domain.EligibleItem{*priced, *unpriced, *free}, domain.TriggerAutoSchedule, july)
		require.NoError(t, err)

		require.Len(t, res.PurchaseOrder.Lines, 1)
		assert.Equal(t, priced.SKUID, res.PurchaseOrder.Lines[0].SKUID)
		assert.ErrorIs(t, res.Excluded[unpriced.SKUID], domain.ErrMissingCostPrice)
		assert.ErrorIs(t, res.Excluded[free.SKUID], domain.ErrMissingCostPrice)
	})

	t.Run("nothing_orderable_writes_nothing", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		item := helpers.CreateTestEligibleItem(func(i *domain.EligibleItem) { i.CostPrice = nil })
		res, err := m.Materialize(context.Background(), vendorID, []domain.EligibleItem{*item}, domain.TriggerAutoSchedule, july)

		var vendorErr *domain.VendorError
		require.ErrorAs(t, err, &vendorErr)
		assert.Equal(t, vendorID, vendorErr.VendorID)
		assert.ErrorIs(t, err, domain.ErrNoItemsToOrder)
		assert.Nil(t, res.PurchaseOrder)
		assert.Empty(t, store.Orders)
	})

	t.Run("header_failure_reports_vendor_error", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		store.FailInsertHeader = errors.New("unique violation")
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		_, err := m.Materialize(context.Background(), vendorID,
			[]domain.EligibleItem{*helpers.CreateTestEligibleItem()}, domain.TriggerAutoSchedule, july)
		assert.ErrorIs(t, err, domain.ErrPurchaseOrderWrite)
		assert.Contains(t, err.Error(), "unique violation")
		assert.Empty(t, store.DeletedHeaders)
	})

	t.Run("line_failure_deletes_header", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		store.FailInsertLines = errors.New("fk violation")
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		res, err := m.Materialize(context.Background(), vendorID,
			[]domain.EligibleItem{*helpers.CreateTestEligibleItem()}, domain.TriggerAutoSchedule, july)
		assert.ErrorIs(t, err, domain.ErrPurchaseOrderWrite)
		assert.Nil(t, res.PurchaseOrder)
		assert.Len(t, store.DeletedHeaders, 1)
		assert.Empty(t, store.Orders, "no header left without lines")
	})

	t.Run("line_failure_with_failed_delete_reports_both", func(t *testing.T) {
		store := helpers.NewMemoryStore()
		store.FailInsertLines = errors.New("fk violation")
		store.FailDeleteHeader = errors.New("connection reset")
		m := services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), helpers.TestLogger())

		_, err := m.Materialize(context.Background(), vendorID,
			[]domain.EligibleItem{*helpers.CreateTestEligibleItem()}, domain.TriggerAutoSchedule, july)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "fk violation")
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestPurchaseOrderMaterializer_LatestNumberFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockPurchaseOrderRepository(ctrl)
	orders.EXPECT().LatestPONumber(gomock.Any()).Return("", errors.New("timeout"))

	m := services.NewPurchaseOrderMaterializer(orders, services.PONumbering{}, helpers.TestLogger())
	_, err := m.Materialize(context.Background(), uuid.New(),
		[]domain.EligibleItem{*helpers.CreateTestEligibleItem()}, domain.TriggerAutoSchedule, july)

	assert.ErrorIs(t, err, domain.ErrPurchaseOrderWrite)
	assert.Contains(t, err.Error(), "failed to read latest po number")
}
