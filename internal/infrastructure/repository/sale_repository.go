package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	return conn(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).Preload("Items").First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := conn(ctx, r.db).Scopes(ForUpdate).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = conn(ctx, r.db).Where("sale_id = ?", sale.ID).Order("id ASC").Find(&sale.Items).Error
	return &sale, err
}

func (r *saleRepository) Update(ctx context.Context, sale *entity.Sale) error {
	return conn(ctx, r.db).Omit("Items").Save(sale).Error
}

func (r *saleRepository) UpdateItem(ctx context.Context, item *entity.SaleItem) error {
	return conn(ctx, r.db).Save(item).Error
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := conn(ctx, r.db).Model(&entity.Sale{}).
		Scopes(Search(params.Search, "number", "customer_name"))

	if params.Number != "" {
		query = query.Where("number = ?", params.Number)
	}
	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}
	if params.PaymentStatus != "" {
		query = query.Where("payment_status = ?", params.PaymentStatus)
	}
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params.Pagination)).
		Preload("Items").
		Order("date DESC, created_at DESC").
		Find(&sales).Error

	return sales, total, err
}

type saleReturnRepository struct {
	db *gorm.DB
}

// NewSaleReturnRepository creates a new sale return repository
func NewSaleReturnRepository(db *gorm.DB) domainRepo.SaleReturnRepository {
	return &saleReturnRepository{db: db}
}

func (r *saleReturnRepository) Create(ctx context.Context, ret *entity.SaleReturn) error {
	return conn(ctx, r.db).Create(ret).Error
}

func (r *saleReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	var ret entity.SaleReturn
	err := conn(ctx, r.db).Preload("Items").First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ret, err
}

func (r *saleReturnRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	var ret entity.SaleReturn
	err := conn(ctx, r.db).Scopes(ForUpdate).First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = conn(ctx, r.db).Where("sale_return_id = ?", ret.ID).Find(&ret.Items).Error
	return &ret, err
}

func (r *saleReturnRepository) Update(ctx context.Context, ret *entity.SaleReturn) error {
	return conn(ctx, r.db).Omit("Items").Save(ret).Error
}

func (r *saleReturnRepository) List(ctx context.Context, params *pagination.PaginationParams, status enum.ReturnStatus, saleID *uuid.UUID) ([]entity.SaleReturn, int64, error) {
	var returns []entity.SaleReturn
	var total int64

	query := conn(ctx, r.db).Model(&entity.SaleReturn{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if saleID != nil {
		query = query.Where("sale_id = ?", *saleID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Items").
		Order("date DESC, created_at DESC").
		Find(&returns).Error

	return returns, total, err
}
