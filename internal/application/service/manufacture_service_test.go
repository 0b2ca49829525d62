package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/mocks"
	"github.com/sangkips/inventra-api/pkg/apperror"
)

func newManufactureFixture(t *testing.T, stocked int64) (*bomFixture, *ManufactureService, *entity.BOM, *entity.Warehouse) {
	f := newBOMFixture(t)
	w := f.env.warehouse(t, "PLANT")
	for _, p := range f.components {
		f.env.stockItem(t, p, w, stocked)
	}

	b, err := f.svc.CreateBOM(context.Background(), &CreateBOMInput{
		Code:           "LAP",
		Name:           "Laptop",
		FinalProductID: f.final.ID,
		Components:     f.inputs(1),
	})
	require.NoError(t, err)

	svc := NewManufactureService(f.env.tx, f.env.orders, f.env.boms, f.env.warehouses, f.env.products, f.env.stock)
	return f, svc, b, w
}

func TestManufactureCompletionConsumesComponents(t *testing.T) {
	f, svc, b, w := newManufactureFixture(t, 5)
	ctx := context.Background()

	order, err := svc.CreateManufactureOrder(ctx, &CreateManufactureOrderInput{
		BOMID:             b.ID,
		WarehouseID:       w.ID,
		QuantityToProduce: 3,
		Actor:             tester,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.Number, "MFG-"))
	assert.Equal(t, enum.ManufactureStatusPending, order.Status)
	assert.Equal(t, f.final.Name, order.ProductName)
	assert.True(t, order.TotalCost.Equal(dec("849900")), "total cost %s", order.TotalCost)
	require.Len(t, order.ComponentsUsed, 4)
	for _, c := range order.ComponentsUsed {
		assert.Equal(t, int64(3), c.QuantityUsed)
	}

	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusInProgress)
	require.NoError(t, err)
	done, err := svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, enum.ManufactureStatusCompleted, done.Status)
	assert.NotNil(t, done.CompletedDate)

	for _, p := range f.components {
		assert.Equal(t, int64(2), f.env.onHand(t, p, w), p.SKU)
	}
	assert.Equal(t, int64(3), f.env.onHand(t, f.final, w))

	stored, err := f.svc.GetBOM(ctx, b.ID)
	require.NoError(t, err)
	for _, c := range stored.Components {
		assert.Equal(t, int64(2), c.AvailableStock, "snapshot refreshed after production")
	}

	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusCancelled)
	requireStatus(t, err, http.StatusConflict)
}

func TestManufactureCompletionIsAllOrNothing(t *testing.T) {
	f, svc, b, w := newManufactureFixture(t, 5)
	ctx := context.Background()

	// one component runs short after the order is placed
	short := f.components[3]
	item, err := f.env.stock.GetForUpdate(ctx, short.ID, w.ID)
	require.NoError(t, err)
	item.SetQuantity(1, now())
	require.NoError(t, f.env.stock.Update(ctx, item))

	order, err := svc.CreateManufactureOrder(ctx, &CreateManufactureOrderInput{
		BOMID:             b.ID,
		WarehouseID:       w.ID,
		QuantityToProduce: 2,
	})
	require.NoError(t, err, "shortage does not block creation")

	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusInProgress)
	require.NoError(t, err)
	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusCompleted)
	requireStatus(t, err, http.StatusConflict)

	got, err := svc.GetManufactureOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ManufactureStatusInProgress, got.Status)
	for _, p := range f.components[:3] {
		assert.Equal(t, int64(5), f.env.onHand(t, p, w), p.SKU)
	}
	assert.Equal(t, int64(1), f.env.onHand(t, short, w))
	assert.Equal(t, int64(0), f.env.onHand(t, f.final, w))
}

func TestCreateManufactureOrderGuards(t *testing.T) {
	f, svc, b, w := newManufactureFixture(t, 5)
	ctx := context.Background()

	_, err := svc.CreateManufactureOrder(ctx, &CreateManufactureOrderInput{BOMID: b.ID, WarehouseID: w.ID, QuantityToProduce: 0})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	inactive := enum.RecordStatusInactive
	_, err = f.svc.UpdateBOM(ctx, &UpdateBOMInput{ID: b.ID, Status: &inactive})
	require.NoError(t, err)
	_, err = svc.CreateManufactureOrder(ctx, &CreateManufactureOrderInput{BOMID: b.ID, WarehouseID: w.ID, QuantityToProduce: 1})
	requireStatus(t, err, http.StatusConflict)
}

func TestDeleteBOMWithOpenOrderConflicts(t *testing.T) {
	f, svc, b, w := newManufactureFixture(t, 5)
	ctx := context.Background()

	order, err := svc.CreateManufactureOrder(ctx, &CreateManufactureOrderInput{BOMID: b.ID, WarehouseID: w.ID, QuantityToProduce: 1})
	require.NoError(t, err)

	err = f.svc.DeleteBOM(ctx, b.ID)
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusCancelled)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteBOM(ctx, b.ID))

	_, err = f.svc.GetBOM(ctx, b.ID)
	requireStatus(t, err, http.StatusNotFound)
}

func TestCompletedOrderRejectedBeforeLocking(t *testing.T) {
	f, svc, b, w := newManufactureFixture(t, 5)
	ctx := context.Background()

	order, err := svc.CreateManufactureOrder(ctx, &CreateManufactureOrderInput{BOMID: b.ID, WarehouseID: w.ID, QuantityToProduce: 1})
	require.NoError(t, err)
	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusInProgress)
	require.NoError(t, err)
	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusCompleted)
	require.NoError(t, err)

	// the locker has no expectations, any Acquire fails the test
	ctrl := gomock.NewController(t)
	strict := f.env.tx
	strict.Locker = mocks.NewMockLocker(ctrl)
	svc = NewManufactureService(strict, f.env.orders, f.env.boms, f.env.warehouses, f.env.products, f.env.stock)

	_, err = svc.UpdateManufactureStatus(ctx, order.ID, enum.ManufactureStatusCompleted)
	requireStatus(t, err, http.StatusConflict)
	assert.Contains(t, apperror.GetAppError(err).Message, "is completed")
	assert.Equal(t, int64(1), f.env.onHand(t, f.final, w))
}
