package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// PurchaseService handles purchase-related operations
type PurchaseService struct {
	tx            Tx
	purchaseRepo  repository.PurchaseRepository
	supplierRepo  repository.SupplierRepository
	warehouseRepo repository.WarehouseRepository
	productRepo   repository.ProductRepository
	mover         stockMover
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	tx Tx,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	warehouseRepo repository.WarehouseRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
) *PurchaseService {
	return &PurchaseService{
		tx:            tx,
		purchaseRepo:  purchaseRepo,
		supplierRepo:  supplierRepo,
		warehouseRepo: warehouseRepo,
		productRepo:   productRepo,
		mover:         stockMover{stockRepo: stockRepo, productRepo: productRepo},
	}
}

// PurchaseItemInput represents a purchase line
type PurchaseItemInput struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitCost  *decimal.Decimal
}

// CreatePurchaseInput represents the create purchase input
type CreatePurchaseInput struct {
	SupplierID  uuid.UUID
	WarehouseID uuid.UUID
	Items       []PurchaseItemInput
	Notes       *string
	Date        *time.Time
	Actor       Actor
}

// CreatePurchase records a pending purchase with a PUR number
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	warehouse, err := s.warehouseRepo.GetByID(ctx, input.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, apperror.NewNotFoundError("Warehouse")
	}

	productIDs := make([]uuid.UUID, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		productMap[p.ID] = p
	}

	var details []entity.PurchaseDetail
	total := decimal.Zero
	for i, item := range input.Items {
		product, ok := productMap[item.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		if item.Quantity <= 0 {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].quantity", i), "must be greater than zero")
		}
		unitCost := product.Cost
		if item.UnitCost != nil {
			unitCost = *item.UnitCost
		}
		if unitCost.IsNegative() {
			return nil, apperror.NewFieldError(fmt.Sprintf("items[%d].unit_cost", i), "must not be negative")
		}

		lineTotal := unitCost.Mul(decimal.NewFromInt(item.Quantity))
		total = total.Add(lineTotal)
		details = append(details, entity.PurchaseDetail{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitCost:  unitCost,
			Total:     lineTotal,
		})
	}

	purchase := &entity.Purchase{
		SupplierID:  supplier.ID,
		WarehouseID: warehouse.ID,
		Status:      enum.PurchaseStatusPending,
		TotalAmount: total,
		Notes:       optionalString(input.Notes),
		CreatedByID: input.Actor.ID,
		Details:     details,
	}

	err = s.tx.run(ctx, nil, func(ctx context.Context) error {
		at := now()
		purchase.Date = at
		if input.Date != nil {
			purchase.Date = input.Date.UTC()
		}
		number, err := s.tx.nextNumber(ctx, enum.DocumentTypePurchase, at)
		if err != nil {
			return err
		}
		purchase.Number = number
		return s.purchaseRepo.Create(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetByID(ctx, purchase.ID)
}

// GetPurchase retrieves a purchase by ID
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filtering
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// ReceivePurchase books the purchased goods into the warehouse and charges
// the supplier's account with the purchase total
func (s *PurchaseService) ReceivePurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	current, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}

	keys := []string{lock.SupplierKey(current.SupplierID)}
	for _, d := range current.Details {
		keys = append(keys, lock.StockKey(d.ProductID, current.WarehouseID))
	}

	err = s.tx.run(ctx, keys, func(ctx context.Context) error {
		purchase, err := s.purchaseRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return apperror.NewNotFoundError("Purchase")
		}
		if !purchase.Status.CanTransitionTo(enum.PurchaseStatusReceived) {
			return apperror.NewInvalidTransitionError("Purchase", purchase.Status.String(), enum.PurchaseStatusReceived.String())
		}

		for _, d := range purchase.Details {
			if _, err := s.mover.deposit(ctx, d.ProductID, purchase.WarehouseID, d.Quantity); err != nil {
				return err
			}
		}

		supplier, err := s.supplierRepo.GetByIDForUpdate(ctx, purchase.SupplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}
		supplier.ApplyCharge(purchase.TotalAmount)
		if err := s.supplierRepo.Update(ctx, supplier); err != nil {
			return err
		}

		received := now()
		purchase.ReceivedDate = &received
		purchase.Status = enum.PurchaseStatusReceived
		return s.purchaseRepo.Update(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetByID(ctx, id)
}

// CancelPurchase cancels a pending purchase
func (s *PurchaseService) CancelPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	err := s.tx.run(ctx, nil, func(ctx context.Context) error {
		purchase, err := s.purchaseRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if purchase == nil {
			return apperror.NewNotFoundError("Purchase")
		}
		if !purchase.Status.CanTransitionTo(enum.PurchaseStatusCancelled) {
			return apperror.NewInvalidTransitionError("Purchase", purchase.Status.String(), enum.PurchaseStatusCancelled.String())
		}
		purchase.Status = enum.PurchaseStatusCancelled
		return s.purchaseRepo.Update(ctx, purchase)
	})
	if err != nil {
		return nil, err
	}

	return s.purchaseRepo.GetByID(ctx, id)
}
