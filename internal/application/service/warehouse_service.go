package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// WarehouseService handles warehouse-related operations
type WarehouseService struct {
	warehouseRepo repository.WarehouseRepository
	stockRepo     repository.StockRepository
	region        string
}

// NewWarehouseService creates a new warehouse service. region is the default
// region used to parse phone numbers without a country code.
func NewWarehouseService(warehouseRepo repository.WarehouseRepository, stockRepo repository.StockRepository, region string) *WarehouseService {
	return &WarehouseService{
		warehouseRepo: warehouseRepo,
		stockRepo:     stockRepo,
		region:        region,
	}
}

// CreateWarehouseInput represents the create warehouse input
type CreateWarehouseInput struct {
	Code     string
	Name     string
	Location string
	Manager  string
	Phone    *string
	Capacity int64
	Status   enum.RecordStatus
}

// CreateWarehouse creates a new warehouse
func (s *WarehouseService) CreateWarehouse(ctx context.Context, input *CreateWarehouseInput) (*entity.Warehouse, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	existing, err := s.warehouseRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Warehouse with this code already exists")
	}
	if input.Capacity < 0 {
		return nil, apperror.NewFieldError("capacity", "must not be negative")
	}

	phone, err := normalizePhone(input.Phone, s.region)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enum.RecordStatusActive
	}

	warehouse := &entity.Warehouse{
		Code:     code,
		Name:     strings.TrimSpace(input.Name),
		Location: strings.TrimSpace(input.Location),
		Manager:  strings.TrimSpace(input.Manager),
		Phone:    phone,
		Capacity: input.Capacity,
		Status:   status,
	}

	if err := s.warehouseRepo.Create(ctx, warehouse); err != nil {
		return nil, err
	}

	return warehouse, nil
}

// GetWarehouse retrieves a warehouse by ID
func (s *WarehouseService) GetWarehouse(ctx context.Context, id uuid.UUID) (*entity.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}
	return warehouse, nil
}

// ListWarehouses lists warehouses
func (s *WarehouseService) ListWarehouses(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Warehouse], error) {
	warehouses, total, err := s.warehouseRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(warehouses, pag), nil
}

// UpdateWarehouseInput represents the update warehouse input
type UpdateWarehouseInput struct {
	ID       uuid.UUID
	Code     *string
	Name     *string
	Location *string
	Manager  *string
	Phone    *string
	Capacity *int64
	Status   *enum.RecordStatus
}

// UpdateWarehouse updates a warehouse
func (s *WarehouseService) UpdateWarehouse(ctx context.Context, input *UpdateWarehouseInput) (*entity.Warehouse, error) {
	warehouse, err := s.warehouseRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}

	if input.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Code))
		if code != warehouse.Code {
			existing, err := s.warehouseRepo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.NewConflictError("Warehouse with this code already exists")
			}
			warehouse.Code = code
		}
	}
	if input.Name != nil {
		warehouse.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		warehouse.Location = strings.TrimSpace(*input.Location)
	}
	if input.Manager != nil {
		warehouse.Manager = strings.TrimSpace(*input.Manager)
	}
	if input.Phone != nil {
		phone, err := normalizePhone(input.Phone, s.region)
		if err != nil {
			return nil, err
		}
		warehouse.Phone = phone
	}
	if input.Capacity != nil {
		if *input.Capacity < 0 {
			return nil, apperror.NewFieldError("capacity", "must not be negative")
		}
		warehouse.Capacity = *input.Capacity
	}
	if input.Status != nil {
		warehouse.Status = *input.Status
	}

	if err := s.warehouseRepo.Update(ctx, warehouse); err != nil {
		return nil, err
	}

	return warehouse, nil
}

// DeleteWarehouse deletes an empty warehouse
func (s *WarehouseService) DeleteWarehouse(ctx context.Context, id uuid.UUID) error {
	warehouse, err := s.warehouseRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return apperror.NewNotFoundError("Warehouse")
	}

	onHand, err := s.stockRepo.WarehouseOnHand(ctx, id)
	if err != nil {
		return err
	}
	if onHand > 0 {
		return apperror.NewConflictError("Warehouse still holds stock")
	}

	return s.warehouseRepo.Delete(ctx, id)
}
