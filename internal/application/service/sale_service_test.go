package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

func newSaleService(env *testEnv, taxRate decimal.Decimal) *SaleService {
	return NewSaleService(env.tx, env.sales, env.customers, env.products, env.warehouses, env.stock, taxRate)
}

func TestCreateSaleChargesCustomerAndDeductsStock(t *testing.T) {
	env := newTestEnv(t)
	svc := newSaleService(env, dec("0.10"))
	ctx := context.Background()

	p := env.product(t, "SALE-1", 100, 60, 0)
	w := env.warehouse(t, "SHOP")
	env.stockItem(t, p, w, 5)
	c := env.customer(t, "buyer@example.com")

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{
		CustomerID:  &c.ID,
		WarehouseID: &w.ID,
		Items:       []SaleItemInput{{ProductID: p.ID, Quantity: 2}},
		AmountPaid:  dec("100"),
		Actor:       tester,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(sale.Number, "INV-"))
	assert.Equal(t, c.Name, sale.CustomerName)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assert.Equal(t, enum.PaymentMethodCash, sale.PaymentMethod)
	assert.Equal(t, enum.PaymentStatusPartial, sale.PaymentStatus)
	assert.True(t, sale.Subtotal.Equal(dec("200")))
	assert.True(t, sale.Tax.Equal(dec("20")))
	assert.True(t, sale.Total.Equal(dec("220")))
	assert.True(t, sale.Balance.Equal(dec("120")))
	require.Len(t, sale.Items, 1)
	assert.True(t, sale.Items[0].UnitPrice.Equal(dec("100")), "price defaults to the catalog price")

	assert.Equal(t, int64(3), env.onHand(t, p, w))

	got := env.reloadCustomer(t, c.ID)
	assert.True(t, got.TotalPurchases.Equal(dec("220")))
	assert.True(t, got.TotalPaid.Equal(dec("100")))
	assert.True(t, got.Balance.Equal(dec("120")))

	entries, err := env.customers.LedgerEntries(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, enum.LedgerEntryTypeSale, entries[0].Type)
	assert.True(t, entries[0].Debit.Equal(dec("220")))
	assert.True(t, entries[0].Balance.Equal(dec("220")))
	assert.Equal(t, enum.LedgerEntryTypePayment, entries[1].Type)
	assert.True(t, entries[1].Credit.Equal(dec("100")))
	assert.True(t, entries[1].Balance.Equal(dec("120")))
	require.NotNil(t, entries[1].Reference)
	assert.Equal(t, sale.Number, *entries[1].Reference)
}

func TestCreateWalkInSale(t *testing.T) {
	env := newTestEnv(t)
	svc := newSaleService(env, decimal.Zero)
	ctx := context.Background()

	p := env.product(t, "SALE-2", 50, 20, 0)

	sale, err := svc.CreateSale(ctx, &CreateSaleInput{
		Items:      []SaleItemInput{{ProductID: p.ID, Quantity: 1, UnitPrice: decPtr("45")}},
		AmountPaid: dec("45"),
	})
	require.NoError(t, err)
	assert.Equal(t, walkInCustomer, sale.CustomerName)
	assert.Nil(t, sale.CustomerID)
	assert.Equal(t, enum.PaymentStatusPaid, sale.PaymentStatus)
	assert.True(t, sale.Total.Equal(dec("45")))
}

func TestCreateSaleShortOfStockRollsBack(t *testing.T) {
	env := newTestEnv(t)
	svc := newSaleService(env, decimal.Zero)
	ctx := context.Background()

	p := env.product(t, "SALE-3", 100, 60, 0)
	w := env.warehouse(t, "SHOP")
	env.stockItem(t, p, w, 1)
	c := env.customer(t, "short@example.com")

	_, err := svc.CreateSale(ctx, &CreateSaleInput{
		CustomerID:  &c.ID,
		WarehouseID: &w.ID,
		Items:       []SaleItemInput{{ProductID: p.ID, Quantity: 2}},
	})
	requireStatus(t, err, http.StatusConflict)

	var count int64
	require.NoError(t, env.db.Model(&entity.Sale{}).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, int64(1), env.onHand(t, p, w))
	assert.True(t, env.reloadCustomer(t, c.ID).Balance.IsZero())
}

func TestCreateSaleGuards(t *testing.T) {
	env := newTestEnv(t)
	svc := newSaleService(env, decimal.Zero)
	ctx := context.Background()

	p := env.product(t, "SALE-4", 100, 60, 0)
	c := env.customer(t, "gone@example.com")
	c.Status = enum.RecordStatusInactive
	require.NoError(t, env.customers.Update(ctx, c))

	_, err := svc.CreateSale(ctx, &CreateSaleInput{
		CustomerID: &c.ID,
		Items:      []SaleItemInput{{ProductID: p.ID, Quantity: 1}},
	})
	requireStatus(t, err, http.StatusConflict)

	_, err = svc.CreateSale(ctx, &CreateSaleInput{Items: nil})
	requireStatus(t, err, http.StatusUnprocessableEntity)

	_, err = svc.CreateSale(ctx, &CreateSaleInput{Items: []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}}})
	requireStatus(t, err, http.StatusNotFound)

	_, err = svc.CreateSale(ctx, &CreateSaleInput{
		Items:    []SaleItemInput{{ProductID: p.ID, Quantity: 1}},
		Discount: dec("500"),
	})
	requireStatus(t, err, http.StatusBadRequest)

	_, err = svc.CreateSale(ctx, &CreateSaleInput{
		Items:         []SaleItemInput{{ProductID: p.ID, Quantity: 1}},
		PaymentMethod: enum.PaymentMethodCredit,
	})
	requireStatus(t, err, http.StatusUnprocessableEntity)
}

func TestListSalesByNumber(t *testing.T) {
	env := newTestEnv(t)
	svc := newSaleService(env, decimal.Zero)
	ctx := context.Background()

	p := env.product(t, "SALE-5", 10, 5, 0)
	var numbers []string
	for i := 0; i < 2; i++ {
		sale, err := svc.CreateSale(ctx, &CreateSaleInput{Items: []SaleItemInput{{ProductID: p.ID, Quantity: 1}}})
		require.NoError(t, err)
		numbers = append(numbers, sale.Number)
	}

	list := func(number string) (*pagination.PaginatedResult[entity.Sale], error) {
		return svc.ListSales(ctx, &repository.SaleFilterParams{
			Pagination: &pagination.PaginationParams{Page: 1, PerPage: 20},
			Number:     number,
		})
	}

	all, err := list("")
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	one, err := list(numbers[1])
	require.NoError(t, err)
	require.Len(t, one.Items, 1)
	assert.Equal(t, numbers[1], one.Items[0].Number)

	for _, bad := range []string{"INV-2026", "RET-2026-001", "INV-year-001"} {
		_, err = list(bad)
		requireStatus(t, err, http.StatusUnprocessableEntity)
	}
}
