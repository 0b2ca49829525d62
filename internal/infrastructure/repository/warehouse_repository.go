package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

type warehouseRepository struct {
	db *gorm.DB
}

// NewWarehouseRepository creates a new warehouse repository
func NewWarehouseRepository(db *gorm.DB) domainRepo.WarehouseRepository {
	return &warehouseRepository{db: db}
}

func (r *warehouseRepository) Create(ctx context.Context, warehouse *entity.Warehouse) error {
	return conn(ctx, r.db).Create(warehouse).Error
}

func (r *warehouseRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	var warehouse entity.Warehouse
	err := conn(ctx, r.db).First(&warehouse, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &warehouse, err
}

func (r *warehouseRepository) GetByCode(ctx context.Context, code string) (*entity.Warehouse, error) {
	var warehouse entity.Warehouse
	err := conn(ctx, r.db).First(&warehouse, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &warehouse, err
}

func (r *warehouseRepository) Update(ctx context.Context, warehouse *entity.Warehouse) error {
	return conn(ctx, r.db).Save(warehouse).Error
}

func (r *warehouseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Warehouse{}, "id = ?", id).Error
}

func (r *warehouseRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Warehouse, int64, error) {
	var warehouses []entity.Warehouse
	var total int64

	query := conn(ctx, r.db).Model(&entity.Warehouse{}).
		Scopes(Search(search, "name", "code", "location"))
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("name ASC").Find(&warehouses).Error
	return warehouses, total, err
}

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, item *entity.StockItem) error {
	return conn(ctx, r.db).Omit("Product", "Warehouse").Create(item).Error
}

func (r *stockRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := conn(ctx, r.db).
		Preload("Product").Preload("Warehouse").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *stockRepository) GetForUpdate(ctx context.Context, productID, warehouseID uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := conn(ctx, r.db).Scopes(ForUpdate).
		Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *stockRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	var item entity.StockItem
	err := conn(ctx, r.db).Scopes(ForUpdate).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

func (r *stockRepository) Update(ctx context.Context, item *entity.StockItem) error {
	return conn(ctx, r.db).Omit("Product", "Warehouse").Save(item).Error
}

func (r *stockRepository) List(ctx context.Context, params *domainRepo.StockFilterParams) ([]entity.StockItem, int64, error) {
	var items []entity.StockItem
	var total int64

	query := conn(ctx, r.db).Model(&entity.StockItem{})
	if params.WarehouseID != nil {
		query = query.Where("stock_items.warehouse_id = ?", *params.WarehouseID)
	}
	if params.ProductID != nil {
		query = query.Where("stock_items.product_id = ?", *params.ProductID)
	}
	if params.Status != "" {
		query = query.Where("stock_items.status = ?", params.Status)
	}
	if params.Search != "" {
		query = query.Joins("JOIN products ON products.id = stock_items.product_id").
			Scopes(Search(params.Search, "products.name", "products.sku"))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Product").Preload("Warehouse").
		Order("stock_items.last_updated DESC").
		Find(&items).Error

	return items, total, err
}

func (r *stockRepository) ListAll(ctx context.Context) ([]entity.StockItem, error) {
	var items []entity.StockItem
	err := conn(ctx, r.db).
		Preload("Product").Preload("Warehouse").
		Order("warehouse_id ASC, product_id ASC").
		Find(&items).Error
	return items, err
}

func (r *stockRepository) OnHandByProducts(ctx context.Context, productIDs []uuid.UUID, warehouseID *uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64, len(productIDs))
	if len(productIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ProductID uuid.UUID
		Quantity  int64
	}
	query := conn(ctx, r.db).Model(&entity.StockItem{}).
		Select("product_id, COALESCE(SUM(quantity), 0) AS quantity").
		Where("product_id IN ?", productIDs)
	if warehouseID != nil {
		query = query.Where("warehouse_id = ?", *warehouseID)
	}
	if err := query.Group("product_id").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ProductID] = row.Quantity
	}
	return out, nil
}

func (r *stockRepository) TotalOnHand(ctx context.Context, productID uuid.UUID) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.StockItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("product_id = ?", productID).
		Scan(&total).Error
	return total, err
}

func (r *stockRepository) WarehouseOnHand(ctx context.Context, warehouseID uuid.UUID) (int64, error) {
	var total int64
	err := conn(ctx, r.db).Model(&entity.StockItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("warehouse_id = ?", warehouseID).
		Scan(&total).Error
	return total, err
}

func (r *stockRepository) CreateAdjustment(ctx context.Context, adjustment *entity.StockAdjustment) error {
	return conn(ctx, r.db).Omit("Product", "Warehouse").Create(adjustment).Error
}

func (r *stockRepository) ListAdjustments(ctx context.Context, params *domainRepo.AdjustmentFilterParams) ([]entity.StockAdjustment, int64, error) {
	var adjustments []entity.StockAdjustment
	var total int64

	query := conn(ctx, r.db).Model(&entity.StockAdjustment{})
	if params.WarehouseID != nil {
		query = query.Where("warehouse_id = ?", *params.WarehouseID)
	}
	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}
	if params.StockItemID != nil {
		query = query.Where("stock_item_id = ?", *params.StockItemID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Product").Preload("Warehouse").
		Order("created_at DESC").
		Find(&adjustments).Error

	return adjustments, total, err
}

type transferRepository struct {
	db *gorm.DB
}

// NewTransferRepository creates a new transfer repository
func NewTransferRepository(db *gorm.DB) domainRepo.TransferRepository {
	return &transferRepository{db: db}
}

func (r *transferRepository) Create(ctx context.Context, transfer *entity.Transfer) error {
	return conn(ctx, r.db).Omit("Product", "FromWarehouse", "ToWarehouse").Create(transfer).Error
}

func (r *transferRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transfer, error) {
	var transfer entity.Transfer
	err := conn(ctx, r.db).
		Preload("Product").Preload("FromWarehouse").Preload("ToWarehouse").
		First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *transferRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Transfer, error) {
	var transfer entity.Transfer
	err := conn(ctx, r.db).Scopes(ForUpdate).First(&transfer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &transfer, err
}

func (r *transferRepository) Update(ctx context.Context, transfer *entity.Transfer) error {
	return conn(ctx, r.db).Omit("Product", "FromWarehouse", "ToWarehouse").Save(transfer).Error
}

func (r *transferRepository) List(ctx context.Context, params *domainRepo.TransferFilterParams) ([]entity.Transfer, int64, error) {
	var transfers []entity.Transfer
	var total int64

	query := conn(ctx, r.db).Model(&entity.Transfer{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.WarehouseID != nil {
		query = query.Where("from_warehouse_id = ? OR to_warehouse_id = ?", *params.WarehouseID, *params.WarehouseID)
	}
	if params.ProductID != nil {
		query = query.Where("product_id = ?", *params.ProductID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Product").Preload("FromWarehouse").Preload("ToWarehouse").
		Order("requested_date DESC").
		Find(&transfers).Error

	return transfers, total, err
}
