package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// TransferService handles stock transfers between warehouses
type TransferService struct {
	tx            Tx
	transferRepo  repository.TransferRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	mover         stockMover
}

// NewTransferService creates a new transfer service
func NewTransferService(
	tx Tx,
	transferRepo repository.TransferRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
) *TransferService {
	return &TransferService{
		tx:            tx,
		transferRepo:  transferRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		mover:         stockMover{stockRepo: stockRepo, productRepo: productRepo},
	}
}

// CreateTransferInput represents the create transfer input
type CreateTransferInput struct {
	ProductID       uuid.UUID
	FromWarehouseID uuid.UUID
	ToWarehouseID   uuid.UUID
	Quantity        int64
	Notes           *string
	Actor           Actor
}

// CreateTransfer records a pending transfer with a TRF number
func (s *TransferService) CreateTransfer(ctx context.Context, input *CreateTransferInput) (*entity.Transfer, error) {
	var fields []apperror.FieldError
	if input.Quantity <= 0 {
		fields = append(fields, apperror.FieldError{Field: "quantity", Message: "must be greater than zero"})
	}
	if input.FromWarehouseID == input.ToWarehouseID {
		fields = append(fields, apperror.FieldError{Field: "to_warehouse_id", Message: "must differ from the source warehouse"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	for _, id := range []uuid.UUID{input.FromWarehouseID, input.ToWarehouseID} {
		warehouse, err := s.warehouseRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, apperror.NewNotFoundError("Warehouse")
		}
	}

	transfer := &entity.Transfer{
		ProductID:       product.ID,
		FromWarehouseID: input.FromWarehouseID,
		ToWarehouseID:   input.ToWarehouseID,
		Quantity:        input.Quantity,
		Status:          enum.TransferStatusPending,
		RequestedBy:     input.Actor.Name,
		RequestedByID:   input.Actor.ID,
		Notes:           optionalString(input.Notes),
	}

	err = s.tx.run(ctx, nil, func(ctx context.Context) error {
		at := now()
		number, err := s.tx.nextNumber(ctx, enum.DocumentTypeTransfer, at)
		if err != nil {
			return err
		}
		transfer.Number = number
		transfer.RequestedDate = at
		return s.transferRepo.Create(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	return s.transferRepo.GetByID(ctx, transfer.ID)
}

// GetTransfer retrieves a transfer by ID
func (s *TransferService) GetTransfer(ctx context.Context, id uuid.UUID) (*entity.Transfer, error) {
	transfer, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if transfer == nil {
		return nil, apperror.NewNotFoundError("Transfer")
	}
	return transfer, nil
}

// ListTransfers lists transfers with filtering
func (s *TransferService) ListTransfers(ctx context.Context, params *repository.TransferFilterParams) (*pagination.PaginatedResult[entity.Transfer], error) {
	transfers, total, err := s.transferRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(transfers, pag), nil
}

// UpdateTransferStatus moves a transfer through its state machine.
// Completing it moves the quantity from the source to the destination
// warehouse in the same transaction.
func (s *TransferService) UpdateTransferStatus(ctx context.Context, id uuid.UUID, next enum.TransferStatus) (*entity.Transfer, error) {
	if !next.IsValid() {
		return nil, apperror.NewFieldError("status", "must be one of pending, in-transit, completed, cancelled")
	}

	current, err := s.transferRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Transfer")
	}
	if current.Status.IsTerminal() {
		return nil, apperror.NewConflictError(fmt.Sprintf("Transfer %s is %s and can no longer change", current.Number, current.Status))
	}

	var keys []string
	if next == enum.TransferStatusCompleted {
		keys = []string{
			lock.StockKey(current.ProductID, current.FromWarehouseID),
			lock.StockKey(current.ProductID, current.ToWarehouseID),
		}
	}

	err = s.tx.run(ctx, keys, func(ctx context.Context) error {
		transfer, err := s.transferRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if transfer == nil {
			return apperror.NewNotFoundError("Transfer")
		}
		if !transfer.Status.CanTransitionTo(next) {
			return apperror.NewInvalidTransitionError("Transfer", transfer.Status.String(), next.String())
		}

		if next == enum.TransferStatusCompleted {
			name := transfer.ProductID.String()
			if current.Product != nil {
				name = current.Product.Name
			}
			if _, err := s.mover.withdraw(ctx, transfer.ProductID, transfer.FromWarehouseID, name, transfer.Quantity); err != nil {
				return err
			}
			if _, err := s.mover.deposit(ctx, transfer.ProductID, transfer.ToWarehouseID, transfer.Quantity); err != nil {
				return err
			}
			completed := now()
			transfer.CompletedDate = &completed
		}

		transfer.Status = next
		return s.transferRepo.Update(ctx, transfer)
	})
	if err != nil {
		return nil, err
	}

	return s.transferRepo.GetByID(ctx, id)
}
