package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
)

func newSupplier(t *testing.T, env *testEnv, email string) *entity.Supplier {
	t.Helper()
	s := &entity.Supplier{Name: "Supplier " + email, Email: email, Status: enum.RecordStatusActive}
	require.NoError(t, env.suppliers.Create(context.Background(), s))
	return s
}

func TestReceivePurchaseStocksAndChargesSupplier(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.tx, env.purchases, env.suppliers, env.warehouses, env.products, env.stock)
	ctx := context.Background()

	bolts := env.product(t, "BOLT", 2, 1, 10)
	nuts := env.product(t, "NUT", 1, 0, 0)
	w := env.warehouse(t, "DOCK")
	env.stockItem(t, bolts, w, 5)
	supplier := newSupplier(t, env, "parts@example.com")

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		SupplierID:  supplier.ID,
		WarehouseID: w.ID,
		Items: []PurchaseItemInput{
			{ProductID: bolts.ID, Quantity: 100},
			{ProductID: nuts.ID, Quantity: 50, UnitCost: decPtr("0.25")},
		},
		Actor: tester,
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(purchase.Number, "PUR-"))
	assert.Equal(t, enum.PurchaseStatusPending, purchase.Status)
	assert.True(t, purchase.TotalAmount.Equal(dec("112.5")), "total %s", purchase.TotalAmount)
	assert.Equal(t, int64(5), env.onHand(t, bolts, w), "pending purchases are not stocked")

	received, err := svc.ReceivePurchase(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PurchaseStatusReceived, received.Status)
	assert.NotNil(t, received.ReceivedDate)

	assert.Equal(t, int64(105), env.onHand(t, bolts, w))
	assert.Equal(t, int64(50), env.onHand(t, nuts, w))

	got, err := env.suppliers.GetByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPurchases.Equal(dec("112.5")))
	assert.True(t, got.Balance.Equal(dec("112.5")))

	_, err = svc.ReceivePurchase(ctx, purchase.ID)
	requireStatus(t, err, http.StatusConflict)
	_, err = svc.CancelPurchase(ctx, purchase.ID)
	requireStatus(t, err, http.StatusConflict)
}

func TestCancelPurchase(t *testing.T) {
	env := newTestEnv(t)
	svc := NewPurchaseService(env.tx, env.purchases, env.suppliers, env.warehouses, env.products, env.stock)
	ctx := context.Background()

	p := env.product(t, "GEAR", 10, 4, 0)
	w := env.warehouse(t, "DOCK")
	supplier := newSupplier(t, env, "gears@example.com")

	purchase, err := svc.CreatePurchase(ctx, &CreatePurchaseInput{
		SupplierID:  supplier.ID,
		WarehouseID: w.ID,
		Items:       []PurchaseItemInput{{ProductID: p.ID, Quantity: 3}},
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelPurchase(ctx, purchase.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.PurchaseStatusCancelled, cancelled.Status)

	_, err = svc.ReceivePurchase(ctx, purchase.ID)
	requireStatus(t, err, http.StatusConflict)
	assert.Equal(t, int64(0), env.onHand(t, p, w))
}

func TestSupplierPaymentsAndReconcile(t *testing.T) {
	env := newTestEnv(t)
	svc := NewSupplierService(env.tx, env.suppliers, "US")
	ctx := context.Background()

	supplier := newSupplier(t, env, "pay-me@example.com")
	supplier.ApplyCharge(dec("500"))
	require.NoError(t, env.suppliers.Update(ctx, supplier))

	payment, err := svc.RecordPayment(ctx, &RecordPaymentInput{
		CounterpartyID: supplier.ID,
		Amount:         dec("650"),
		Method:         enum.PaymentMethodCredit,
		Actor:          tester,
	})
	require.NoError(t, err)

	got, err := svc.GetSupplier(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPaid.Equal(dec("650")))
	assert.True(t, got.Balance.Equal(dec("-150")))

	_, err = svc.RecordPayment(ctx, &RecordPaymentInput{
		CounterpartyID: supplier.ID,
		Amount:         dec("1"),
		Method:         enum.PaymentMethodMobilePayment,
	})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	require.NoError(t, svc.DeletePayment(ctx, supplier.ID, payment.ID))
	got, err = svc.GetSupplier(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPaid.IsZero())
	assert.True(t, got.Balance.Equal(dec("500")))

	require.NoError(t, env.db.Model(&entity.Supplier{}).Where("id = ?", supplier.ID).Update("balance", "420").Error)
	result, err := svc.ReconcileSupplier(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, result.Drift.Equal(dec("-80")), "drift %s", result.Drift)
	assert.True(t, result.Record.Balance.Equal(dec("500")))
}
