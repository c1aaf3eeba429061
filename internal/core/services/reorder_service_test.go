// internal/core/services/reorder_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/reorder-engine/internal/core/domain"
	"github.com/ammerola/reorder-engine/internal/core/ports"
	"github.com/ammerola/reorder-engine/internal/core/services"
	"github.com/ammerola/reorder-engine/test/helpers"
	"github.com/ammerola/reorder-engine/test/mocks"
)

func newEngine(store *helpers.MemoryStore, history *helpers.MemoryHistory) *services.ReorderService {
	log := helpers.TestLogger()
	return services.NewReorderService(
		services.NewEligibilityScanner(store, store, log),
		services.NewReorderGuard(history, log),
		services.NewAuditTrail(history, log),
		services.NewPurchaseOrderMaterializer(store, services.DefaultPONumbering(), log),
		log,
	)
}

func TestReorderService_RunScheduled_CreatesPurchaseOrder(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	sku := helpers.CreateTestSKU()
	store.AddSKU(sku, 5)

	result, err := newEngine(store, history).RunScheduled(context.Background(), july)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Processed)
	assert.Empty(t, result.Errors)
	require.Len(t, result.PurchaseOrderIDs, 1)

	pos := store.OrdersForVendor(*sku.PreferredVendorID)
	require.Len(t, pos, 1)
	po := pos[0]
	assert.Equal(t, result.PurchaseOrderIDs[0], po.ID)
	assert.Equal(t, "350.00", po.TotalAmount.StringFixed(2))
	require.Len(t, po.Lines, 1)
	assert.Equal(t, 35, po.Lines[0].Quantity)

	entries := history.For(sku.ID)
	require.Len(t, entries, 1)
	assert.Equal(t, domain.ReorderStatusPOCreated, entries[0].Status)
	assert.Equal(t, domain.TriggerAutoSchedule, entries[0].TriggerType)
	assert.Equal(t, &po.ID, entries[0].PurchaseOrderID)
	assert.Equal(t, "purchase order PO-000001 created", entries[0].Note)
	assert.Equal(t, 5, entries[0].InventoryLevel)
}

func TestReorderService_RunScheduled_QuantityRestoresOptimal(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	sku := helpers.CreateTestSKU(helpers.WithOverall(15, 20))
	store.AddSKU(sku, 13)

	result, err := newEngine(store, history).RunScheduled(context.Background(), july)
	require.NoError(t, err)
	require.Len(t, result.PurchaseOrderIDs, 1)

	po := store.Orders[result.PurchaseOrderIDs[0]]
	require.Len(t, po.Lines, 1)
	assert.Equal(t, 7, po.Lines[0].Quantity)
	assert.Equal(t, 7, history.For(sku.ID)[0].ReorderQuantity)
}

func TestReorderService_RunScheduled_OnePurchaseOrderPerVendor(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	vendorA, vendorB := uuid.New(), uuid.New()

	for i := 0; i < 3; i++ {
		store.AddSKU(helpers.CreateTestSKU(helpers.WithVendor(vendorA)), i)
	}
	for i := 0; i < 2; i++ {
		store.AddSKU(helpers.CreateTestSKU(helpers.WithVendor(vendorB)), i)
	}
	store.AddSKU(helpers.CreateTestSKU(helpers.WithVendor(vendorB)), 50)

	result, err := newEngine(store, history).RunScheduled(context.Background(), july)
	require.NoError(t, err)

	assert.Len(t, result.PurchaseOrderIDs, 2)
	assert.Equal(t, 5, result.Processed)

	a := store.OrdersForVendor(vendorA)
	b := store.OrdersForVendor(vendorB)
	require.Len(t, a, 1)
	require.Len(t, b, 1)
	assert.Len(t, a[0].Lines, 3)
	assert.Len(t, b[0].Lines, 2)
	assert.NotEqual(t, a[0].PONumber, b[0].PONumber)
}

func TestReorderService_RunScheduled_SkipsOpenReorder(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	sku := helpers.CreateTestSKU()
	store.AddSKU(sku, 5)

	item, err := services.NewEligibilityScanner(store, store, helpers.TestLogger()).Evaluate(context.Background(), sku.ID, domain.TriggerManual, july)
	require.NoError(t, err)
	require.NoError(t, history.Insert(context.Background(), domain.NewPendingHistory(item, domain.TriggerManual, july)))

	result, err := newEngine(store, history).RunScheduled(context.Background(), july)
	require.NoError(t, err)

	assert.Empty(t, result.PurchaseOrderIDs)
	assert.Empty(t, result.Errors)
	require.Len(t, result.Skipped, 1)
	assert.Contains(t, result.Skipped[0], domain.ErrReorderInFlight.Error())
	assert.Empty(t, store.Orders)
	assert.Len(t, history.For(sku.ID), 1)
}

func TestReorderService_RunScheduled_IsIdempotent(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	for i := 0; i < 4; i++ {
		store.AddSKU(helpers.CreateTestSKU(), i)
	}
	engine := newEngine(store, history)

	first, err := engine.RunScheduled(context.Background(), july)
	require.NoError(t, err)
	require.Len(t, first.PurchaseOrderIDs, 4)

	second, err := engine.RunScheduled(context.Background(), july)
	require.NoError(t, err)

	assert.Empty(t, second.PurchaseOrderIDs)
	assert.Len(t, second.Skipped, 4)
	assert.Len(t, store.Orders, 4)
	assert.Len(t, history.Entries, 4)
}

func TestReorderService_RunScheduled_PartialFailureAcrossVendors(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	vendorA, vendorB := uuid.New(), uuid.New()

	unpriced := helpers.CreateTestSKU(helpers.WithVendor(vendorA), func(s *domain.SKU) { s.CostPrice = nil })
	priced := helpers.CreateTestSKU(helpers.WithVendor(vendorB))
	store.AddSKU(unpriced, 5)
	store.AddSKU(priced, 5)

	result, err := newEngine(store, history).RunScheduled(context.Background(), july)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.True(t, result.HasErrors())
	assert.Len(t, result.PurchaseOrderIDs, 1)
	assert.Equal(t, 1, result.Processed)

	assert.Empty(t, store.OrdersForVendor(vendorA))
	assert.Len(t, store.OrdersForVendor(vendorB), 1)

	failed := history.For(unpriced.ID)
	require.Len(t, failed, 1)
	assert.Equal(t, domain.ReorderStatusFailed, failed[0].Status)
	assert.Contains(t, failed[0].Note, domain.ErrMissingCostPrice.Error())
	assert.Equal(t, domain.ReorderStatusPOCreated, history.For(priced.ID)[0].Status)
}

func TestReorderService_RunScheduled_LineFailureRollsBackVendor(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	store.FailInsertLines = errors.New("fk violation")
	vendorID := uuid.New()

	skus := []*domain.SKU{
		helpers.CreateTestSKU(helpers.WithVendor(vendorID)),
		helpers.CreateTestSKU(helpers.WithVendor(vendorID)),
	}
	for _, sku := range skus {
		store.AddSKU(sku, 1)
	}

	result, err := newEngine(store, history).RunScheduled(context.Background(), july)
	require.NoError(t, err)

	assert.Empty(t, result.PurchaseOrderIDs)
	assert.Equal(t, 0, result.Processed)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "fk violation")

	assert.Empty(t, store.Orders)
	assert.Len(t, store.DeletedHeaders, 1)
	for _, sku := range skus {
		entries := history.For(sku.ID)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.ReorderStatusFailed, entries[0].Status)
		assert.Nil(t, entries[0].PurchaseOrderID)
	}
}

func TestReorderService_RunScheduled_NonPositiveQuantityFailsItem(t *testing.T) {
	store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
	sku := helpers.CreateTestSKU(helpers.WithOverall(20, 10))
	store.AddSKU(sku, 15)

	result, err := newEngine(store, history).RunScheduled(context.Background(), july)
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], domain.ErrInvalidQuantity.Error())
	assert.Empty(t, history.Entries)
	assert.Empty(t, store.Orders)
}

func TestReorderService_RunScheduled_ScanFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	scanner := mocks.NewMockEligibilityScanner(ctrl)
	scanner.EXPECT().Scan(gomock.Any(), july).Return(nil, errors.New("catalog unavailable"))

	svc := services.NewReorderService(scanner,
		mocks.NewMockReorderGuard(ctrl),
		mocks.NewMockAuditTrail(ctrl),
		mocks.NewMockPurchaseOrderMaterializer(ctrl),
		helpers.TestLogger())

	result, err := svc.RunScheduled(context.Background(), july)
	assert.Nil(t, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "eligibility scan failed")
}

func TestReorderService_RunScheduled_CloseFailureIsReported(t *testing.T) {
	ctrl := gomock.NewController(t)
	scanner := mocks.NewMockEligibilityScanner(ctrl)
	guard := mocks.NewMockReorderGuard(ctrl)
	audit := mocks.NewMockAuditTrail(ctrl)
	materializer := mocks.NewMockPurchaseOrderMaterializer(ctrl)

	item := *helpers.CreateTestEligibleItem()
	entry := domain.NewPendingHistory(&item, domain.TriggerAutoSchedule, july)
	po := domain.NewAutoPurchaseOrder(item.VendorID, "PO-000001", domain.TriggerAutoSchedule,
		[]domain.PurchaseOrderLine{domain.NewPurchaseOrderLine(item.SKUID, 35, *item.CostPrice)}, july)

	scanner.EXPECT().Scan(gomock.Any(), july).Return([]domain.EligibleItem{item}, nil)
	guard.EXPECT().Filter(gomock.Any(), gomock.Len(1)).Return(ports.GuardResult{Admitted: []domain.EligibleItem{item}})
	audit.EXPECT().Open(gomock.Any(), gomock.Any(), domain.TriggerAutoSchedule, july).Return(entry, nil)
	materializer.EXPECT().
		Materialize(gomock.Any(), item.VendorID, gomock.Len(1), domain.TriggerAutoSchedule, july).
		Return(&ports.MaterializeResult{PurchaseOrder: po, Excluded: map[uuid.UUID]error{}}, nil)
	audit.EXPECT().
		Close(gomock.Any(), entry, domain.ReorderStatusPOCreated, gomock.Any(), &po.ID, july).
		Return(errors.New("connection reset"))

	svc := services.NewReorderService(scanner, guard, audit, materializer, helpers.TestLogger())
	result, err := svc.RunScheduled(context.Background(), july)
	require.NoError(t, err)

	assert.Len(t, result.PurchaseOrderIDs, 1)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "failed to close reorder entry")
}

func TestReorderService_RunForSKU(t *testing.T) {
	t.Run("manual_trigger_creates_purchase_order", func(t *testing.T) {
		store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
		sku := helpers.CreateTestSKU(func(s *domain.SKU) { s.AutoReorderEnabled = false })
		store.AddSKU(sku, 5)

		result, err := newEngine(store, history).RunForSKU(context.Background(), sku.ID, domain.TriggerManual, july)
		require.NoError(t, err)

		manual := domain.ManualResultFrom(result)
		assert.True(t, manual.Success)
		require.NotNil(t, manual.PurchaseOrderID)
		assert.Equal(t, domain.TriggerManual, store.Orders[*manual.PurchaseOrderID].TriggerType)
		assert.Equal(t, domain.TriggerManual, history.For(sku.ID)[0].TriggerType)
	})

	t.Run("already_open_is_rejected_without_writes", func(t *testing.T) {
		store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
		sku := helpers.CreateTestSKU()
		store.AddSKU(sku, 5)
		engine := newEngine(store, history)

		_, err := engine.RunScheduled(context.Background(), july)
		require.NoError(t, err)

		result, err := engine.RunForSKU(context.Background(), sku.ID, domain.TriggerManual, july)
		require.NoError(t, err)

		manual := domain.ManualResultFrom(result)
		assert.False(t, manual.Success)
		assert.Nil(t, manual.PurchaseOrderID)
		assert.Contains(t, manual.Error, domain.ErrReorderInFlight.Error())
		assert.Len(t, store.Orders, 1)
		assert.Len(t, history.For(sku.ID), 1)
	})

	t.Run("ineligible_sku_errors_before_writes", func(t *testing.T) {
		store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
		sku := helpers.CreateTestSKU(func(s *domain.SKU) { s.IsActive = false })
		store.AddSKU(sku, 5)

		result, err := newEngine(store, history).RunForSKU(context.Background(), sku.ID, domain.TriggerManual, july)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrSKUInactive)
		assert.Empty(t, history.Entries)
	})

	t.Run("inventory_change_respects_auto_reorder_flag", func(t *testing.T) {
		store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()
		sku := helpers.CreateTestSKU(func(s *domain.SKU) { s.AutoReorderEnabled = false })
		store.AddSKU(sku, 5)

		_, err := newEngine(store, history).RunForSKU(context.Background(), sku.ID, domain.TriggerInventoryChange, july)
		assert.ErrorIs(t, err, domain.ErrAutoReorderOff)
	})

	t.Run("unknown_trigger_is_rejected", func(t *testing.T) {
		store, history := helpers.NewMemoryStore(), helpers.NewMemoryHistory()

		_, err := newEngine(store, history).RunForSKU(context.Background(), uuid.New(), domain.TriggerType("cron"), july)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown trigger type")
	})
}
