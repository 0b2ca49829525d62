package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

func TestExportStock(t *testing.T) {
	env := newTestEnv(t)
	customers := NewCustomerService(env.tx, env.customers, "US")
	svc := NewReportService(env.stock, customers)

	p := env.product(t, "GEAR", 10, 4, 1)
	w := env.warehouse(t, "MAIN")
	env.stockItem(t, p, w, 5)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportStock(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Stock")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Warehouse MAIN", rows[1][0])
	assert.Equal(t, "GEAR", rows[1][1])
	assert.Equal(t, "5", rows[1][3])
	assert.Equal(t, "in-stock", rows[1][6])
	assert.Equal(t, "20", rows[1][8])
}

func TestExportCustomerLedger(t *testing.T) {
	env := newTestEnv(t)
	customers := NewCustomerService(env.tx, env.customers, "US")
	svc := NewReportService(env.stock, customers)
	ctx := context.Background()

	c := env.customer(t, "ledger@example.com")
	_, err := customers.RecordPayment(ctx, &RecordPaymentInput{
		CounterpartyID: c.ID,
		Amount:         dec("40"),
		Method:         enum.PaymentMethodCash,
		Actor:          tester,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	name, err := svc.ExportCustomerLedger(ctx, c.ID, &buf)
	require.NoError(t, err)
	assert.Equal(t, c.Name, name)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Ledger", "Summary"}, f.GetSheetList())

	rows, err := f.GetRows("Ledger")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "40", rows[1][6])
	assert.Equal(t, "-40", rows[1][7])

	_, err = svc.ExportCustomerLedger(ctx, uuid.New(), &bytes.Buffer{})
	requireStatus(t, err, http.StatusNotFound)
}

func TestDeleteWarehouseHoldingStockConflicts(t *testing.T) {
	env := newTestEnv(t)
	svc := NewWarehouseService(env.warehouses, env.stock, "US")
	ctx := context.Background()

	w, err := svc.CreateWarehouse(ctx, &CreateWarehouseInput{Code: "east", Name: "East"})
	require.NoError(t, err)
	assert.Equal(t, "EAST", w.Code)

	_, err = svc.CreateWarehouse(ctx, &CreateWarehouseInput{Code: "EAST", Name: "Again"})
	requireStatus(t, err, http.StatusConflict)

	item := env.stockItem(t, env.product(t, "BOX", 1, 1, 0), w, 3)
	requireStatus(t, svc.DeleteWarehouse(ctx, w.ID), http.StatusConflict)

	item.SetQuantity(0, now())
	require.NoError(t, env.stock.Update(ctx, item))
	require.NoError(t, svc.DeleteWarehouse(ctx, w.ID))

	_, err = svc.GetWarehouse(ctx, w.ID)
	requireStatus(t, err, http.StatusNotFound)
}
