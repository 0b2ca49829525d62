package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/numbering"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/domain/sales"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

const walkInCustomer = "Walk-in Customer"

// SaleService handles invoicing
type SaleService struct {
	tx            Tx
	saleRepo      repository.SaleRepository
	customerRepo  repository.CustomerRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	ledger        customerLedger
	mover         stockMover
	taxRate       decimal.Decimal
}

// NewSaleService creates a new sale service
func NewSaleService(
	tx Tx,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	stockRepo repository.StockRepository,
	taxRate decimal.Decimal,
) *SaleService {
	return &SaleService{
		tx:            tx,
		saleRepo:      saleRepo,
		customerRepo:  customerRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		ledger:        customerLedger{customerRepo: customerRepo},
		mover:         stockMover{stockRepo: stockRepo, productRepo: productRepo},
		taxRate:       taxRate,
	}
}

// SaleItemInput represents an invoice line. UnitPrice defaults to the
// product's price.
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice *decimal.Decimal
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerID    *uuid.UUID
	CustomerName  string
	WarehouseID   *uuid.UUID
	Items         []SaleItemInput
	Discount      decimal.Decimal
	AmountPaid    decimal.Decimal
	PaymentMethod enum.PaymentMethod
	Notes         *string
	Date          *time.Time
	Actor         Actor
}

// CreateSale prices and records a completed sale with an INV number.
// A customer sale is charged to the customer's account and the amount paid
// is applied against it; a sale from a warehouse deducts the sold stock.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	if input.PaymentMethod == "" {
		input.PaymentMethod = enum.PaymentMethodCash
	}
	if !input.PaymentMethod.IsValidForCustomer() {
		return nil, apperror.NewFieldError("payment_method", "must be one of cash, bank-transfer, cheque, credit-card, mobile-payment")
	}

	customerName := strings.TrimSpace(input.CustomerName)
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		if customer.Status != enum.RecordStatusActive {
			return nil, apperror.NewConflictError("Customer is inactive")
		}
		customerName = customer.Name
	}
	if customerName == "" {
		customerName = walkInCustomer
	}

	if input.WarehouseID != nil {
		warehouse, err := s.warehouseRepo.GetByID(ctx, *input.WarehouseID)
		if err != nil {
			return nil, err
		}
		if warehouse == nil {
			return nil, apperror.NewNotFoundError("Warehouse")
		}
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	priced := make([]sales.Item, len(items))
	for i, item := range items {
		priced[i] = sales.Item{Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	totals, err := sales.Compute(priced, s.taxRate, input.Discount, input.AmountPaid)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	sale := &entity.Sale{
		CustomerID:    input.CustomerID,
		CustomerName:  customerName,
		WarehouseID:   input.WarehouseID,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Discount:      totals.Discount,
		Total:         totals.Total,
		AmountPaid:    totals.AmountPaid,
		Balance:       totals.Balance,
		PaymentStatus: totals.PaymentStatus,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.SaleStatusCompleted,
		Notes:         optionalString(input.Notes),
		SoldBy:        input.Actor.Name,
		SoldByID:      input.Actor.ID,
		Items:         items,
	}

	var keys []string
	if input.CustomerID != nil {
		keys = append(keys, lock.CustomerKey(*input.CustomerID))
	}
	if input.WarehouseID != nil {
		for _, item := range items {
			keys = append(keys, lock.StockKey(item.ProductID, *input.WarehouseID))
		}
	}

	err = s.tx.run(ctx, keys, func(ctx context.Context) error {
		at := now()
		sale.Date = at
		if input.Date != nil {
			sale.Date = input.Date.UTC()
		}
		number, err := s.tx.nextNumber(ctx, enum.DocumentTypeSale, at)
		if err != nil {
			return err
		}
		sale.Number = number

		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		if sale.WarehouseID != nil {
			for _, item := range sale.Items {
				if _, err := s.mover.withdraw(ctx, item.ProductID, *sale.WarehouseID, item.ProductName, item.Quantity); err != nil {
					return err
				}
			}
		}

		if sale.CustomerID != nil {
			return s.chargeCustomer(ctx, sale)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.saleRepo.GetByID(ctx, sale.ID)
}

func (s *SaleService) chargeCustomer(ctx context.Context, sale *entity.Sale) error {
	customer, err := s.customerRepo.GetByIDForUpdate(ctx, *sale.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	reference := sale.Number
	customer.ApplyCharge(sale.Total)
	if err := s.ledger.post(ctx, customer, enum.LedgerEntryTypeSale,
		"Sale "+sale.Number, sale.Total, decimal.Zero, &reference, sale.Date); err != nil {
		return err
	}

	if !sale.AmountPaid.IsPositive() {
		return nil
	}
	customer.ApplyPayment(sale.AmountPaid)
	return s.ledger.post(ctx, customer, enum.LedgerEntryTypePayment,
		fmt.Sprintf("Payment for %s (%s)", sale.Number, sale.PaymentMethod),
		decimal.Zero, sale.AmountPaid, &reference, sale.Date)
}

func (s *SaleService) buildItems(ctx context.Context, inputs []SaleItemInput) ([]entity.SaleItem, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	ids := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		ids[i] = in.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]entity.SaleItem, 0, len(inputs))
	for _, in := range inputs {
		product, ok := byID[in.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Product")
		}
		price := product.Price
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		items = append(items, entity.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   price,
			Total:       sales.Item{Quantity: in.Quantity, UnitPrice: price}.Total(),
		})
	}
	return items, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filtering
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	if params.Number != "" {
		prefix, _, _, err := numbering.Parse(params.Number)
		if err != nil || prefix != enum.DocumentTypeSale.Prefix() {
			return nil, apperror.NewFieldError("number", fmt.Sprintf("must be a sale number like %s-YYYY-NNN", enum.DocumentTypeSale.Prefix()))
		}
	}

	list, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(list, pag), nil
}
