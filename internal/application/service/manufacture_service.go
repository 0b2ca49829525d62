package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/bom"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/logger"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// ManufactureService handles production runs
type ManufactureService struct {
	tx            Tx
	orderRepo     repository.ManufactureOrderRepository
	bomRepo       repository.BOMRepository
	warehouseRepo repository.WarehouseRepository
	boms          *BOMService
	mover         stockMover
}

// NewManufactureService creates a new manufacture service
func NewManufactureService(
	tx Tx,
	orderRepo repository.ManufactureOrderRepository,
	bomRepo repository.BOMRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
) *ManufactureService {
	return &ManufactureService{
		tx:            tx,
		orderRepo:     orderRepo,
		bomRepo:       bomRepo,
		warehouseRepo: warehouseRepo,
		boms:          NewBOMService(tx, bomRepo, orderRepo, productRepo, stockRepo),
		mover:         stockMover{stockRepo: stockRepo, productRepo: productRepo},
	}
}

// CreateManufactureOrderInput represents the create manufacture order input
type CreateManufactureOrderInput struct {
	BOMID             uuid.UUID
	WarehouseID       uuid.UUID
	QuantityToProduce int64
	StartDate         *time.Time
	Notes             *string
	Actor             Actor
}

// CreateManufactureOrder freezes the BOM consumption for the requested
// quantity and records a pending order with an MFG number
func (s *ManufactureService) CreateManufactureOrder(ctx context.Context, input *CreateManufactureOrderInput) (*entity.ManufactureOrder, error) {
	if input.QuantityToProduce <= 0 {
		return nil, apperror.NewFieldError("quantity_to_produce", "must be greater than zero")
	}

	b, err := s.bomRepo.GetByID(ctx, input.BOMID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NewNotFoundError("BOM")
	}
	if b.Status != enum.RecordStatusActive {
		return nil, apperror.NewConflictError("BOM is inactive")
	}

	warehouse, err := s.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}

	if err := s.boms.refreshAvailability(ctx, b, nil); err != nil {
		return nil, err
	}
	if err := s.boms.saveSnapshot(ctx, b); err != nil {
		return nil, err
	}

	productName := ""
	if b.FinalProduct != nil {
		productName = b.FinalProduct.Name
	}

	usage := bom.Consumption(b.Lines(), input.QuantityToProduce)
	components := make([]entity.ComponentUsage, 0, len(usage))
	for _, u := range usage {
		components = append(components, entity.ComponentUsage{
			ProductID:    u.ProductID,
			ProductName:  u.ProductName,
			QuantityUsed: u.QuantityUsed,
			UnitCost:     u.UnitCost,
			TotalCost:    u.TotalCost,
		})
	}

	order := &entity.ManufactureOrder{
		BOMID:             b.ID,
		BOMName:           b.Name,
		FinalProductID:    b.FinalProductID,
		ProductName:       productName,
		WarehouseID:       warehouse.ID,
		QuantityToProduce: input.QuantityToProduce,
		TotalCost:         b.TotalCost.Mul(decimal.NewFromInt(input.QuantityToProduce)),
		Status:            enum.ManufactureStatusPending,
		Notes:             optionalString(input.Notes),
		CreatedByID:       input.Actor.ID,
		ComponentsUsed:    components,
	}

	err = s.tx.run(ctx, nil, func(ctx context.Context) error {
		at := now()
		order.StartDate = at
		if input.StartDate != nil {
			order.StartDate = input.StartDate.UTC()
		}
		number, err := s.tx.nextNumber(ctx, enum.DocumentTypeManufacture, at)
		if err != nil {
			return err
		}
		order.Number = number
		return s.orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetByID(ctx, order.ID)
}

// GetManufactureOrder retrieves a manufacture order by ID
func (s *ManufactureService) GetManufactureOrder(ctx context.Context, id uuid.UUID) (*entity.ManufactureOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Manufacture order")
	}
	return order, nil
}

// ListManufactureOrders lists manufacture orders
func (s *ManufactureService) ListManufactureOrders(ctx context.Context, params *pagination.PaginationParams, status enum.ManufactureStatus, bomID *uuid.UUID) (*pagination.PaginatedResult[entity.ManufactureOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params, status, bomID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateManufactureStatus moves an order through its state machine.
// Completing consumes the frozen component quantities from the order's
// warehouse and adds the finished product there, all or nothing.
func (s *ManufactureService) UpdateManufactureStatus(ctx context.Context, id uuid.UUID, next enum.ManufactureStatus) (*entity.ManufactureOrder, error) {
	if !next.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of pending, in-progress, completed, cancelled")
	}

	current, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Manufacture order")
	}
	if current.Status.IsTerminal() {
		return nil, apperror.NewConflictError(fmt.Sprintf("Manufacture order %s is %s and can no longer change", current.Number, current.Status))
	}

	var keys []string
	if next == enum.ManufactureStatusCompleted {
		keys = append(keys, lock.StockKey(current.FinalProductID, current.WarehouseID))
		for _, c := range current.ComponentsUsed {
			keys = append(keys, lock.StockKey(c.ProductID, current.WarehouseID))
		}
	}

	err = s.tx.run(ctx, keys, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Manufacture order")
		}
		if !order.Status.CanTransitionTo(next) {
			return apperror.NewInvalidTransitionError("Manufacture order", order.Status.String(), next.String())
		}

		if next == enum.ManufactureStatusCompleted {
			for _, c := range order.ComponentsUsed {
				if _, err := s.mover.withdraw(ctx, c.ProductID, order.WarehouseID, c.ProductName, c.QuantityUsed); err != nil {
					return err
				}
			}
			if _, err := s.mover.deposit(ctx, order.FinalProductID, order.WarehouseID, order.QuantityToProduce); err != nil {
				return err
			}
			completed := now()
			order.CompletedDate = &completed
		}

		order.Status = next
		return s.orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if next == enum.ManufactureStatusCompleted {
		if err := s.refreshBOMSnapshot(ctx, current.BOMID); err != nil {
			logger.LogError(logger.Get(), "manufacture", "UpdateManufactureStatus", "refresh bom availability", current.BOMID, err)
		}
	}

	return s.orderRepo.GetByID(ctx, id)
}

// refreshBOMSnapshot stores the post-production availability on the BOM.
// The order is already committed, so failures are only logged.
func (s *ManufactureService) refreshBOMSnapshot(ctx context.Context, bomID uuid.UUID) error {
	b, err := s.bomRepo.GetByID(ctx, bomID)
	if err != nil || b == nil {
		return err
	}
	if err := s.boms.refreshAvailability(ctx, b, nil); err != nil {
		return err
	}
	return s.boms.saveSnapshot(ctx, b)
}
