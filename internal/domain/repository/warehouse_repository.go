package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// WarehouseRepository defines the interface for warehouse data operations
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error)
	GetByCode(ctx context.Context, code string) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Warehouse, int64, error)
}

// StockRepository defines the interface for stock item and adjustment operations
type StockRepository interface {
	Create(ctx context.Context, item *entity.StockItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error)
	// GetForUpdate loads the stock item of a product in a warehouse and locks
	// the row until the surrounding transaction ends. Returns nil when the
	// product has never been stocked there.
	GetForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*entity.StockItem, error)
	// GetByIDForUpdate is GetForUpdate addressed by stock item id
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.StockItem, error)
	Update(ctx context.Context, item *entity.StockItem) error
	List(ctx context.Context, params *StockFilterParams) ([]entity.StockItem, int64, error)
	// ListAll returns every stock item with product and warehouse preloaded
	ListAll(ctx context.Context) ([]entity.StockItem, error)
	// OnHandByProducts sums quantity per product, optionally within one warehouse
	OnHandByProducts(ctx context.Context, productIDs []uuid.UUID, warehouseID *uuid.UUID) (map[uuid.UUID]int64, error)
	// TotalOnHand is the quantity held for a product across warehouses
	TotalOnHand(ctx context.Context, productID uuid.UUID) (int64, error)
	// WarehouseOnHand is the quantity held in a warehouse across products
	WarehouseOnHand(ctx context.Context, warehouseID uuid.UUID) (int64, error)

	CreateAdjustment(ctx context.Context, adjustment *entity.StockAdjustment) error
	ListAdjustments(ctx context.Context, params *AdjustmentFilterParams) ([]entity.StockAdjustment, int64, error)
}

// StockFilterParams contains filtering parameters for stock queries
type StockFilterParams struct {
	Pagination  *pagination.PaginationParams
	WarehouseID *uuid.UUID
	ProductID   *uuid.UUID
	Status      enum.StockStatus
	Search      string
}

// AdjustmentFilterParams contains filtering parameters for adjustment history
type AdjustmentFilterParams struct {
	Pagination  *pagination.PaginationParams
	WarehouseID *uuid.UUID
	ProductID   *uuid.UUID
	StockItemID *uuid.UUID
}

// TransferRepository defines the interface for warehouse transfer operations
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transfer, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Transfer, error)
	Update(ctx context.Context, transfer *entity.Transfer) error
	List(ctx context.Context, params *TransferFilterParams) ([]entity.Transfer, int64, error)
}

// TransferFilterParams contains filtering parameters for transfer queries
type TransferFilterParams struct {
	Pagination  *pagination.PaginationParams
	Status      enum.TransferStatus
	WarehouseID *uuid.UUID
	ProductID   *uuid.UUID
}
