package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/inventra-api/internal/config"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
)

type returnFixture struct {
	env       *testEnv
	svc       *ReturnService
	sales     *SaleService
	product   *entity.Product
	warehouse *entity.Warehouse
	customer  *entity.Customer
	sale      *entity.Sale
}

// newReturnFixture sells 3 units at 100 on account from a warehouse holding 10
func newReturnFixture(t *testing.T, policy string) *returnFixture {
	env := newTestEnv(t)
	f := &returnFixture{
		env:       env,
		svc:       NewReturnService(env.tx, env.returns, env.sales, env.customers, env.products, env.stock, policy),
		sales:     newSaleService(env, decimal.Zero),
		product:   env.product(t, "RET-1", 100, 60, 0),
		warehouse: env.warehouse(t, "SHOP"),
		customer:  env.customer(t, "returns@example.com"),
	}
	env.stockItem(t, f.product, f.warehouse, 10)

	sale, err := f.sales.CreateSale(context.Background(), &CreateSaleInput{
		CustomerID:  &f.customer.ID,
		WarehouseID: &f.warehouse.ID,
		Items:       []SaleItemInput{{ProductID: f.product.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	f.sale = sale
	return f
}

func (f *returnFixture) create(t *testing.T, qty int64) (*entity.SaleReturn, error) {
	t.Helper()
	return f.svc.CreateReturn(context.Background(), &CreateReturnInput{
		SaleID:       f.sale.ID,
		Items:        []ReturnItemInput{{ProductID: f.product.ID, Quantity: qty}},
		Reason:       "damaged",
		RefundMethod: enum.RefundMethodCash,
		Actor:        tester,
	})
}

func (f *returnFixture) reloadSale(t *testing.T) *entity.Sale {
	t.Helper()
	sale, err := f.sales.GetSale(context.Background(), f.sale.ID)
	require.NoError(t, err)
	return sale
}

func TestLegacyApprovalMarksWholeSaleReturned(t *testing.T) {
	f := newReturnFixture(t, config.ReturnPolicyLegacy)
	ctx := context.Background()

	ret, err := f.create(t, 1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ret.Number, "RET-"))
	assert.Equal(t, enum.ReturnStatusPending, ret.Status)
	assert.True(t, ret.TotalAmount.Equal(dec("100")))

	approved, err := f.svc.ApproveReturn(ctx, ret.ID, tester)
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedByID)
	assert.Equal(t, tester.ID, *approved.ReviewedByID)

	// one of three units came back, the sale still reads returned
	sale := f.reloadSale(t)
	assert.Equal(t, enum.SaleStatusReturned, sale.Status)
	assert.True(t, sale.AmountRefunded.IsZero())
	assert.Equal(t, int64(0), sale.Items[0].ReturnedQuantity)

	// no refund and no restock
	assert.True(t, f.env.reloadCustomer(t, f.customer.ID).Balance.Equal(dec("300")))
	assert.Equal(t, int64(7), f.env.onHand(t, f.product, f.warehouse))

	_, err = f.create(t, 1)
	requireStatus(t, err, http.StatusConflict)
}

func TestProportionalApprovalRefundsAndRestocks(t *testing.T) {
	f := newReturnFixture(t, config.ReturnPolicyProportional)
	ctx := context.Background()

	ret, err := f.create(t, 1)
	require.NoError(t, err)
	_, err = f.svc.ApproveReturn(ctx, ret.ID, tester)
	require.NoError(t, err)

	sale := f.reloadSale(t)
	assert.Equal(t, enum.SaleStatusPartiallyReturned, sale.Status)
	assert.True(t, sale.AmountRefunded.Equal(dec("100")))
	require.Len(t, sale.Items, 1)
	assert.Equal(t, int64(1), sale.Items[0].ReturnedQuantity)
	assert.Equal(t, int64(8), f.env.onHand(t, f.product, f.warehouse))

	customer := f.env.reloadCustomer(t, f.customer.ID)
	assert.True(t, customer.TotalPurchases.Equal(dec("200")))
	assert.True(t, customer.Balance.Equal(dec("200")))

	entries, err := f.env.customers.LedgerEntries(ctx, f.customer.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, enum.LedgerEntryTypeCredit, entries[1].Type)
	assert.True(t, entries[1].Credit.Equal(dec("100")))
	assert.True(t, entries[1].Balance.Equal(dec("200")))

	// only two units are left to return
	_, err = f.create(t, 3)
	requireStatus(t, err, http.StatusUnprocessableEntity)

	rest, err := f.create(t, 2)
	require.NoError(t, err)
	_, err = f.svc.ApproveReturn(ctx, rest.ID, tester)
	require.NoError(t, err)

	sale = f.reloadSale(t)
	assert.Equal(t, enum.SaleStatusReturned, sale.Status)
	assert.True(t, sale.AmountRefunded.Equal(dec("300")))
	assert.Equal(t, int64(10), f.env.onHand(t, f.product, f.warehouse))
	assert.True(t, f.env.reloadCustomer(t, f.customer.ID).Balance.IsZero())
}

func TestProportionalApprovalRechecksReturnable(t *testing.T) {
	f := newReturnFixture(t, config.ReturnPolicyProportional)
	ctx := context.Background()

	// two pending returns may each fit, but not both
	first, err := f.create(t, 2)
	require.NoError(t, err)
	second, err := f.create(t, 2)
	require.NoError(t, err)

	_, err = f.svc.ApproveReturn(ctx, first.ID, tester)
	require.NoError(t, err)
	_, err = f.svc.ApproveReturn(ctx, second.ID, tester)
	requireStatus(t, err, http.StatusConflict)

	got, err := f.svc.GetReturn(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusPending, got.Status)
	assert.Equal(t, int64(9), f.env.onHand(t, f.product, f.warehouse))
}

func TestRejectReturnChangesNothingElse(t *testing.T) {
	f := newReturnFixture(t, config.ReturnPolicyProportional)
	ctx := context.Background()

	ret, err := f.create(t, 1)
	require.NoError(t, err)

	rejected, err := f.svc.RejectReturn(ctx, ret.ID, tester)
	require.NoError(t, err)
	assert.Equal(t, enum.ReturnStatusRejected, rejected.Status)
	assert.NotNil(t, rejected.ReviewedAt)

	_, err = f.svc.ApproveReturn(ctx, ret.ID, tester)
	requireStatus(t, err, http.StatusConflict)

	sale := f.reloadSale(t)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, int64(7), f.env.onHand(t, f.product, f.warehouse))
}

func TestCreateReturnValidation(t *testing.T) {
	f := newReturnFixture(t, config.ReturnPolicyProportional)
	ctx := context.Background()

	_, err := f.svc.CreateReturn(ctx, &CreateReturnInput{
		SaleID:       f.sale.ID,
		Items:        []ReturnItemInput{{ProductID: f.product.ID, Quantity: 1}},
		RefundMethod: "store-credit",
	})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = f.create(t, 0)
	requireStatus(t, err, http.StatusUnprocessableEntity)

	other := f.env.product(t, "RET-2", 10, 5, 0)
	_, err = f.svc.CreateReturn(ctx, &CreateReturnInput{
		SaleID:       f.sale.ID,
		Items:        []ReturnItemInput{{ProductID: other.ID, Quantity: 1}},
		Reason:       "wrong item",
		RefundMethod: enum.RefundMethodCreditNote,
	})
	requireStatus(t, err, http.StatusUnprocessableEntity)
}

func TestProportionalRefundIncludesTax(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewReturnService(env.tx, env.returns, env.sales, env.customers, env.products, env.stock, config.ReturnPolicyProportional)
	salesSvc := newSaleService(env, dec("0.15"))

	p := env.product(t, "TAXED", 100, 60, 0)
	w := env.warehouse(t, "TAX")
	env.stockItem(t, p, w, 5)
	c := env.customer(t, "taxed@example.com")

	sale, err := salesSvc.CreateSale(ctx, &CreateSaleInput{
		CustomerID:  &c.ID,
		WarehouseID: &w.ID,
		Items:       []SaleItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	require.True(t, sale.Total.Equal(dec("115")), "total %s", sale.Total)

	ret, err := svc.CreateReturn(ctx, &CreateReturnInput{
		SaleID:       sale.ID,
		Items:        []ReturnItemInput{{ProductID: p.ID, Quantity: 1}},
		Reason:       "unwanted",
		RefundMethod: enum.RefundMethodCreditNote,
		Actor:        tester,
	})
	require.NoError(t, err)
	assert.True(t, ret.TotalAmount.Equal(dec("100")), "gross %s", ret.TotalAmount)

	approved, err := svc.ApproveReturn(ctx, ret.ID, tester)
	require.NoError(t, err)
	assert.True(t, approved.RefundAmount.Equal(dec("115")), "refund %s", approved.RefundAmount)

	got, err := salesSvc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SaleStatusReturned, got.Status)
	assert.True(t, got.AmountRefunded.Equal(dec("115")), "refunded %s", got.AmountRefunded)

	customer := env.reloadCustomer(t, c.ID)
	assert.True(t, customer.Balance.IsZero(), "balance %s", customer.Balance)
	assert.True(t, customer.TotalPurchases.IsZero(), "purchases %s", customer.TotalPurchases)
}

func TestProductReturnSpreadsOverSaleLines(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewReturnService(env.tx, env.returns, env.sales, env.customers, env.products, env.stock, config.ReturnPolicyProportional)
	salesSvc := newSaleService(env, decimal.Zero)

	p := env.product(t, "SPLIT", 10, 5, 0)
	w := env.warehouse(t, "SPLIT")
	env.stockItem(t, p, w, 10)

	sale, err := salesSvc.CreateSale(ctx, &CreateSaleInput{
		WarehouseID: &w.ID,
		Items: []SaleItemInput{
			{ProductID: p.ID, Quantity: 2},
			{ProductID: p.ID, Quantity: 2},
		},
	})
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)

	returnOf := func(qty int64) (*entity.SaleReturn, error) {
		return svc.CreateReturn(ctx, &CreateReturnInput{
			SaleID:       sale.ID,
			Items:        []ReturnItemInput{{ProductID: p.ID, Quantity: qty}},
			Reason:       "surplus",
			RefundMethod: enum.RefundMethodCash,
			Actor:        tester,
		})
	}

	_, err = returnOf(5)
	requireStatus(t, err, http.StatusUnprocessableEntity)

	ret, err := returnOf(3)
	require.NoError(t, err)
	require.Len(t, ret.Items, 2)
	assert.ElementsMatch(t, []int64{2, 1}, []int64{ret.Items[0].Quantity, ret.Items[1].Quantity})
	assert.NotEqual(t, ret.Items[0].SaleItemID, ret.Items[1].SaleItemID)
	assert.True(t, ret.TotalAmount.Equal(dec("30")))

	_, err = svc.ApproveReturn(ctx, ret.ID, tester)
	require.NoError(t, err)
	assert.Equal(t, int64(9), env.onHand(t, p, w))

	// one unit is left across both lines
	_, err = returnOf(2)
	requireStatus(t, err, http.StatusUnprocessableEntity)
	last, err := returnOf(1)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
}
