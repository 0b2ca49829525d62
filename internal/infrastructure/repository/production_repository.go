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

func componentOrder(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC, id ASC")
}

type bomRepository struct {
	db *gorm.DB
}

// NewBOMRepository creates a new bill of materials repository
func NewBOMRepository(db *gorm.DB) domainRepo.BOMRepository {
	return &bomRepository{db: db}
}

func (r *bomRepository) Create(ctx context.Context, b *entity.BOM) error {
	return conn(ctx, r.db).Omit("FinalProduct").Create(b).Error
}

func (r *bomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BOM, error) {
	var b entity.BOM
	err := conn(ctx, r.db).
		Preload("FinalProduct").
		Preload("Components", componentOrder).
		First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *bomRepository) GetByCode(ctx context.Context, code string) (*entity.BOM, error) {
	var b entity.BOM
	err := conn(ctx, r.db).First(&b, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

// Update rewrites the component list wholesale; callers always send the full list
func (r *bomRepository) Update(ctx context.Context, b *entity.BOM) error {
	db := conn(ctx, r.db)
	if err := db.Where("bom_id = ?", b.ID).Delete(&entity.BOMComponent{}).Error; err != nil {
		return err
	}
	for i := range b.Components {
		b.Components[i].ID = uuid.Nil
		b.Components[i].BOMID = b.ID
	}
	if len(b.Components) > 0 {
		if err := db.Create(&b.Components).Error; err != nil {
			return err
		}
	}
	return db.Omit("FinalProduct", "Components").Save(b).Error
}

func (r *bomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	db := conn(ctx, r.db)
	if err := db.Where("bom_id = ?", id).Delete(&entity.BOMComponent{}).Error; err != nil {
		return err
	}
	return db.Delete(&entity.BOM{}, "id = ?", id).Error
}

func (r *bomRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) ([]entity.BOM, int64, error) {
	var boms []entity.BOM
	var total int64

	query := conn(ctx, r.db).Model(&entity.BOM{}).Scopes(Search(search, "name", "code"))
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("FinalProduct").Preload("Components", componentOrder).
		Order("created_at DESC").
		Find(&boms).Error
	return boms, total, err
}

type manufactureOrderRepository struct {
	db *gorm.DB
}

// NewManufactureOrderRepository creates a new manufacture order repository
func NewManufactureOrderRepository(db *gorm.DB) domainRepo.ManufactureOrderRepository {
	return &manufactureOrderRepository{db: db}
}

func (r *manufactureOrderRepository) Create(ctx context.Context, order *entity.ManufactureOrder) error {
	return conn(ctx, r.db).Omit("Warehouse").Create(order).Error
}

func (r *manufactureOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ManufactureOrder, error) {
	var order entity.ManufactureOrder
	err := conn(ctx, r.db).
		Preload("Warehouse").Preload("ComponentsUsed").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *manufactureOrderRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ManufactureOrder, error) {
	var order entity.ManufactureOrder
	err := conn(ctx, r.db).Scopes(ForUpdate).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	err = conn(ctx, r.db).Where("manufacture_order_id = ?", order.ID).Find(&order.ComponentsUsed).Error
	return &order, err
}

func (r *manufactureOrderRepository) Update(ctx context.Context, order *entity.ManufactureOrder) error {
	return conn(ctx, r.db).Omit("Warehouse", "ComponentsUsed").Save(order).Error
}

func (r *manufactureOrderRepository) List(ctx context.Context, params *pagination.PaginationParams, status enum.ManufactureStatus, bomID *uuid.UUID) ([]entity.ManufactureOrder, int64, error) {
	var orders []entity.ManufactureOrder
	var total int64

	query := conn(ctx, r.db).Model(&entity.ManufactureOrder{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if bomID != nil {
		query = query.Where("bom_id = ?", *bomID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Warehouse").Preload("ComponentsUsed").
		Order("start_date DESC, created_at DESC").
		Find(&orders).Error
	return orders, total, err
}

func (r *manufactureOrderRepository) CountOpenByBOM(ctx context.Context, bomID uuid.UUID) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&entity.ManufactureOrder{}).
		Where("bom_id = ? AND status IN ?", bomID, []enum.ManufactureStatus{enum.ManufactureStatusPending, enum.ManufactureStatusInProgress}).
		Count(&count).Error
	return count, err
}
