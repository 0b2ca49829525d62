package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/domain/stock"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// stockMover moves quantities in and out of stock items. Callers hold the
// stock key lock and run inside a transaction.
type stockMover struct {
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// withdraw takes qty of a product out of a warehouse. A missing or short
// stock item is an insufficient stock conflict.
func (m stockMover) withdraw(ctx context.Context, productID, warehouseID uuid.UUID, productName string, qty int64) (*entity.StockItem, error) {
	item, err := m.stockRepo.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewInsufficientStockError(productName, 0, qty)
	}

	remaining, ok := stock.Withdraw(item.Quantity, qty)
	if !ok {
		return nil, apperror.NewInsufficientStockError(productName, item.Quantity, qty)
	}

	item.SetQuantity(remaining, now())
	if err := m.stockRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// deposit adds qty of a product to a warehouse, opening the stock item with
// the product's minimum when the product was never stocked there.
func (m stockMover) deposit(ctx context.Context, productID, warehouseID uuid.UUID, qty int64) (*entity.StockItem, error) {
	item, err := m.stockRepo.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}

	if item == nil {
		product, err := m.productRepo.GetByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperror.NewNotFoundError("Product")
		}
		item = &entity.StockItem{
			ProductID:   productID,
			WarehouseID: warehouseID,
			MinStock:    product.MinStock,
		}
		item.SetQuantity(qty, now())
		if err := m.stockRepo.Create(ctx, item); err != nil {
			return nil, err
		}
		return item, nil
	}

	item.SetQuantity(item.Quantity+qty, now())
	if err := m.stockRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// StockService handles stock items and manual adjustments
type StockService struct {
	tx            Tx
	stockRepo     repository.StockRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewStockService creates a new stock service
func NewStockService(
	tx Tx,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockService {
	return &StockService{
		tx:            tx,
		stockRepo:     stockRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// OpenStockItemInput represents the input for stocking a product in a warehouse
type OpenStockItemInput struct {
	ProductID   uuid.UUID
	WarehouseID uuid.UUID
	Quantity    int64
	MinStock    *int64
	MaxStock    int64
}

// OpenStockItem creates the stock item of a product in a warehouse
func (s *StockService) OpenStockItem(ctx context.Context, input *OpenStockItemInput) (*entity.StockItem, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	warehouse, err := s.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}

	minStock := product.MinStock
	if input.MinStock != nil {
		minStock = *input.MinStock
	}
	if err := validateLimits(input.Quantity, minStock, input.MaxStock); err != nil {
		return nil, err
	}

	var item *entity.StockItem
	err = s.tx.run(ctx, []string{lock.StockKey(product.ID, warehouse.ID)}, func(ctx context.Context) error {
		existing, err := s.stockRepo.GetForUpdate(ctx, product.ID, warehouse.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Product is already stocked in this warehouse")
		}

		item = &entity.StockItem{
			ProductID:   product.ID,
			WarehouseID: warehouse.ID,
			MinStock:    minStock,
			MaxStock:    input.MaxStock,
		}
		item.SetQuantity(input.Quantity, now())
		return s.stockRepo.Create(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.stockRepo.GetByID(ctx, item.ID)
}

// GetStockItem retrieves a stock item by ID
func (s *StockService) GetStockItem(ctx context.Context, id uuid.UUID) (*entity.StockItem, error) {
	item, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}
	return item, nil
}

// ListStock lists stock items with filtering
func (s *StockService) ListStock(ctx context.Context, params *repository.StockFilterParams) (*pagination.PaginatedResult[entity.StockItem], error) {
	items, total, err := s.stockRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, pag), nil
}

// UpdateLimits changes the minimum and maximum of a stock item. The status
// is re-derived against the new minimum.
func (s *StockService) UpdateLimits(ctx context.Context, id uuid.UUID, minStock, maxStock *int64) (*entity.StockItem, error) {
	current, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}

	err = s.tx.run(ctx, []string{lock.StockKey(current.ProductID, current.WarehouseID)}, func(ctx context.Context) error {
		item, err := s.stockRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NewNotFoundError("Stock item")
		}
		if minStock != nil {
			item.MinStock = *minStock
		}
		if maxStock != nil {
			item.MaxStock = *maxStock
		}
		if err := validateLimits(item.Quantity, item.MinStock, item.MaxStock); err != nil {
			return err
		}
		item.SetQuantity(item.Quantity, now())
		return s.stockRepo.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}

	return s.stockRepo.GetByID(ctx, id)
}

// AdjustStockInput represents a manual stock correction
type AdjustStockInput struct {
	StockItemID    uuid.UUID
	AdjustmentType enum.AdjustmentType
	Quantity       int64
	Reason         string
	Notes          *string
	Actor          Actor
}

// AdjustStock applies a manual adjustment and records it with an ADJ number
func (s *StockService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.StockAdjustment, error) {
	if !input.AdjustmentType.IsValid() {
		return nil, apperror.NewFieldError("adjustment_type", "must be one of add, remove, set")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewFieldError("quantity", "must not be negative")
	}
	if strings.TrimSpace(input.Reason) == "" {
		return nil, apperror.NewFieldError("reason", "is required")
	}

	current, err := s.stockRepo.GetByID(ctx, input.StockItemID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Stock item")
	}

	var adjustment *entity.StockAdjustment
	err = s.tx.run(ctx, []string{lock.StockKey(current.ProductID, current.WarehouseID)}, func(ctx context.Context) error {
		item, err := s.stockRepo.GetByIDForUpdate(ctx, input.StockItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return apperror.NewNotFoundError("Stock item")
		}

		previous := item.Quantity
		next, err := stock.ApplyAdjustment(previous, input.AdjustmentType, input.Quantity)
		if err != nil {
			return apperror.NewFieldError("quantity", err.Error())
		}

		at := now()
		number, err := s.tx.nextNumber(ctx, enum.DocumentTypeAdjustment, at)
		if err != nil {
			return err
		}

		item.SetQuantity(next, at)
		if err := s.stockRepo.Update(ctx, item); err != nil {
			return err
		}

		adjustment = &entity.StockAdjustment{
			Number:             number,
			StockItemID:        item.ID,
			ProductID:          item.ProductID,
			WarehouseID:        item.WarehouseID,
			AdjustmentType:     input.AdjustmentType,
			PreviousQuantity:   previous,
			AdjustmentQuantity: input.Quantity,
			NewQuantity:        next,
			Reason:             strings.TrimSpace(input.Reason),
			Notes:              optionalString(input.Notes),
			AdjustedBy:         input.Actor.Name,
			AdjustedByID:       input.Actor.ID,
			CreatedAt:          at,
		}
		return s.stockRepo.CreateAdjustment(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	return adjustment, nil
}

// ListAdjustments lists the adjustment history
func (s *StockService) ListAdjustments(ctx context.Context, params *repository.AdjustmentFilterParams) (*pagination.PaginatedResult[entity.StockAdjustment], error) {
	adjustments, total, err := s.stockRepo.ListAdjustments(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(adjustments, pag), nil
}

func validateLimits(quantity, minStock, maxStock int64) error {
	var fields []apperror.FieldError
	if quantity < 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "must not be negative"})
	}
	if minStock < 0 {
		fields = append(fields, apperror.FieldError{Field: "min_stock", Message: "must not be negative"})
	}
	if maxStock < 0 {
		fields = append(fields, apperror.FieldError{Field: "max_stock", Message: "must not be negative"})
	}
	if maxStock > 0 && maxStock < minStock {
		fields = append(fields, apperror.FieldError{Field: "max_stock", Message: "must not be below min_stock"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}
