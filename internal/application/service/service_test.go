package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	infraRepo "github.com/sangkips/inventra-api/internal/infrastructure/repository"
	"github.com/sangkips/inventra-api/internal/testutil"
	"github.com/sangkips/inventra-api/pkg/apperror"
)

var tester = Actor{ID: uuid.New(), Name: "Test Clerk"}

type testEnv struct {
	db *gorm.DB
	tx Tx

	products   repository.ProductRepository
	warehouses repository.WarehouseRepository
	stock      repository.StockRepository
	transfers  repository.TransferRepository
	customers  repository.CustomerRepository
	suppliers  repository.SupplierRepository
	purchases  repository.PurchaseRepository
	sales      repository.SaleRepository
	returns    repository.SaleReturnRepository
	boms       repository.BOMRepository
	orders     repository.ManufactureOrderRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	return &testEnv{
		db: db,
		tx: Tx{
			Manager:   infraRepo.NewTxManager(db),
			Sequencer: infraRepo.NewSequencer(db),
			Locker:    lock.NewLocalLocker(),
		},
		products:   infraRepo.NewProductRepository(db),
		warehouses: infraRepo.NewWarehouseRepository(db),
		stock:      infraRepo.NewStockRepository(db),
		transfers:  infraRepo.NewTransferRepository(db),
		customers:  infraRepo.NewCustomerRepository(db),
		suppliers:  infraRepo.NewSupplierRepository(db),
		purchases:  infraRepo.NewPurchaseRepository(db),
		sales:      infraRepo.NewSaleRepository(db),
		returns:    infraRepo.NewSaleReturnRepository(db),
		boms:       infraRepo.NewBOMRepository(db),
		orders:     infraRepo.NewManufactureOrderRepository(db),
	}
}

func (e *testEnv) product(t *testing.T, sku string, price, cost int64, minStock int64) *entity.Product {
	t.Helper()
	p := &entity.Product{
		SKU:      sku,
		Name:     "Product " + sku,
		Price:    decimal.NewFromInt(price),
		Cost:     decimal.NewFromInt(cost),
		MinStock: minStock,
		Unit:     "pcs",
		Status:   enum.RecordStatusActive,
	}
	require.NoError(t, e.products.Create(context.Background(), p))
	return p
}

func (e *testEnv) warehouse(t *testing.T, code string) *entity.Warehouse {
	t.Helper()
	w := &entity.Warehouse{Code: code, Name: "Warehouse " + code, Status: enum.RecordStatusActive}
	require.NoError(t, e.warehouses.Create(context.Background(), w))
	return w
}

func (e *testEnv) stockItem(t *testing.T, p *entity.Product, w *entity.Warehouse, qty int64) *entity.StockItem {
	t.Helper()
	item := &entity.StockItem{ProductID: p.ID, WarehouseID: w.ID, MinStock: p.MinStock}
	item.SetQuantity(qty, now())
	require.NoError(t, e.stock.Create(context.Background(), item))
	return item
}

func (e *testEnv) onHand(t *testing.T, p *entity.Product, w *entity.Warehouse) int64 {
	t.Helper()
	item, err := e.stock.GetForUpdate(context.Background(), p.ID, w.ID)
	require.NoError(t, err)
	if item == nil {
		return 0
	}
	return item.Quantity
}

func (e *testEnv) customer(t *testing.T, email string) *entity.Customer {
	t.Helper()
	c := &entity.Customer{
		Name:         "Customer " + email,
		Email:        email,
		CustomerType: enum.CustomerTypeIndividual,
		Status:       enum.RecordStatusActive,
	}
	require.NoError(t, e.customers.Create(context.Background(), c))
	return c
}

func (e *testEnv) reloadCustomer(t *testing.T, id uuid.UUID) *entity.Customer {
	t.Helper()
	c, err := e.customers.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func requireStatus(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, apperror.IsAppError(err), "expected an AppError, got %v", err)
	appErr := apperror.GetAppError(err)
	require.Equal(t, code, appErr.Code, appErr.Message)
}
