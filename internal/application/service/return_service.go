package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/config"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/domain/sales"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// ReturnService handles sale returns
type ReturnService struct {
	tx           Tx
	returnRepo   repository.SaleReturnRepository
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	ledger       customerLedger
	mover        stockMover
	policy       string
}

// NewReturnService creates a new return service. policy is
// config.ReturnPolicyLegacy or config.ReturnPolicyProportional.
func NewReturnService(
	tx Tx,
	returnRepo repository.SaleReturnRepository,
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
	policy string,
) *ReturnService {
	return &ReturnService{
		tx:           tx,
		returnRepo:   returnRepo,
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		ledger:       customerLedger{customerRepo: customerRepo},
		mover:        stockMover{stockRepo: stockRepo, productRepo: productRepo},
		policy:       policy,
	}
}

// ReturnItemInput is one returned line. SaleItemID picks the sale line when
// a product was sold on several lines; otherwise the quantity is spread over
// the product's lines. UnitPrice defaults to the sold price.
type ReturnItemInput struct {
	SaleItemID *uuid.UUID
	ProductID  uuid.UUID
	Quantity   int64
	UnitPrice  *decimal.Decimal
}

// CreateReturnInput represents the create return input
type CreateReturnInput struct {
	SaleID       uuid.UUID
	Items        []ReturnItemInput
	Reason       string
	RefundMethod enum.RefundMethod
	Notes        *string
	Actor        Actor
}

// CreateReturn records a pending return with a RET number. Quantities may
// not exceed what was sold minus what earlier approved returns took back.
func (s *ReturnService) CreateReturn(ctx context.Context, input *CreateReturnInput) (*entity.SaleReturn, error) {
	var fields []apperror.FieldError
	if strings.TrimSpace(input.Reason) == "" {
		fields = append(fields, apperror.FieldError{Field: "reason", Message: "is required"})
	}
	if !input.RefundMethod.IsValid() {
		fields = append(fields, apperror.FieldError{Field: "refund_method", Message: "must be one of cash, bank-transfer, credit-note"})
	}
	if len(fields) > 0 {
		return nil, apperror.NewValidationError(fields)
	}

	sale, err := s.saleRepo.GetByID(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if !sale.Status.IsReturnable() {
		return nil, apperror.NewConflictError(fmt.Sprintf("Sale %s is %s and cannot be returned", sale.Number, sale.Status))
	}

	items, total, err := matchReturnItems(sale, input.Items)
	if err != nil {
		return nil, err
	}

	ret := &entity.SaleReturn{
		SaleID:        sale.ID,
		SaleNumber:    sale.Number,
		CustomerName:  sale.CustomerName,
		TotalAmount:   total,
		Reason:        strings.TrimSpace(input.Reason),
		RefundMethod:  input.RefundMethod,
		Status:        enum.ReturnStatusPending,
		Notes:         optionalString(input.Notes),
		ProcessedBy:   input.Actor.Name,
		ProcessedByID: input.Actor.ID,
		Items:         items,
	}

	err = s.tx.run(ctx, nil, func(ctx context.Context) error {
		at := now()
		ret.Date = at
		number, err := s.tx.nextNumber(ctx, enum.DocumentTypeSaleReturn, at)
		if err != nil {
			return err
		}
		ret.Number = number
		return s.returnRepo.Create(ctx, ret)
	})
	if err != nil {
		return nil, err
	}

	return s.returnRepo.GetByID(ctx, ret.ID)
}

// matchReturnItems ties every requested line to sale lines and prices it.
// Lines with quantity zero are dropped. A request keyed by product alone is
// spread over that product's sale lines in order.
func matchReturnItems(sale *entity.Sale, inputs []ReturnItemInput) ([]entity.ReturnItem, decimal.Decimal, error) {
	total := decimal.Zero
	requested := make(map[uuid.UUID]int64, len(inputs))
	var items []entity.ReturnItem

	for i, in := range inputs {
		if in.Quantity < 0 {
			return nil, total, apperror.NewFieldError(fmt.Sprintf("items[%d].quantity", i), "must not be negative")
		}
		if in.Quantity == 0 {
			continue
		}

		lines := candidateLines(sale, in)
		if len(lines) == 0 {
			return nil, total, apperror.NewFieldError(fmt.Sprintf("items[%d].product_id", i), "was not sold on this sale")
		}

		var available int64
		for _, line := range lines {
			available += line.Returnable() - requested[line.ID]
		}
		if in.Quantity > available {
			return nil, total, apperror.NewFieldError(fmt.Sprintf("items[%d].quantity", i),
				fmt.Sprintf("at most %d of %s can be returned", available, lines[0].ProductName))
		}

		if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
			return nil, total, apperror.NewFieldError(fmt.Sprintf("items[%d].unit_price", i), "must not be negative")
		}

		remaining := in.Quantity
		for _, line := range lines {
			take := min(remaining, line.Returnable()-requested[line.ID])
			if take <= 0 {
				continue
			}
			requested[line.ID] += take
			remaining -= take

			price := line.UnitPrice
			if in.UnitPrice != nil {
				price = *in.UnitPrice
			}
			lineTotal := price.Mul(decimal.NewFromInt(take))
			total = total.Add(lineTotal)

			items = append(items, entity.ReturnItem{
				SaleItemID:  line.ID,
				ProductID:   line.ProductID,
				ProductName: line.ProductName,
				Quantity:    take,
				UnitPrice:   price,
				Total:       lineTotal,
			})
			if remaining == 0 {
				break
			}
		}
	}

	if len(items) == 0 {
		return nil, total, apperror.NewFieldError("items", "at least one item must have a quantity")
	}
	return items, total, nil
}

// candidateLines is the sale line named by SaleItemID, or every line of the
// product in sale order
func candidateLines(sale *entity.Sale, in ReturnItemInput) []*entity.SaleItem {
	var lines []*entity.SaleItem
	for i := range sale.Items {
		item := &sale.Items[i]
		if in.SaleItemID != nil {
			if item.ID == *in.SaleItemID {
				return []*entity.SaleItem{item}
			}
			continue
		}
		if item.ProductID == in.ProductID {
			lines = append(lines, item)
		}
	}
	return lines
}

// GetReturn retrieves a return by ID
func (s *ReturnService) GetReturn(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error) {
	ret, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Sale return")
	}
	return ret, nil
}

// ListReturns lists returns
func (s *ReturnService) ListReturns(ctx context.Context, params *pagination.PaginationParams, status enum.ReturnStatus, saleID *uuid.UUID) (*pagination.PaginatedResult[entity.SaleReturn], error) {
	returns, total, err := s.returnRepo.List(ctx, params, status, saleID)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// ApproveReturn approves a pending return under the configured policy
func (s *ReturnService) ApproveReturn(ctx context.Context, id uuid.UUID, reviewer Actor) (*entity.SaleReturn, error) {
	current, err := s.returnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Sale return")
	}
	sale, err := s.saleRepo.GetByID(ctx, current.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	var keys []string
	if s.policy == config.ReturnPolicyProportional {
		if sale.CustomerID != nil {
			keys = append(keys, lock.CustomerKey(*sale.CustomerID))
		}
		if sale.WarehouseID != nil {
			for _, item := range current.Items {
				keys = append(keys, lock.StockKey(item.ProductID, *sale.WarehouseID))
			}
		}
	}

	err = s.tx.run(ctx, keys, func(ctx context.Context) error {
		ret, err := s.lockPending(ctx, id, enum.ReturnStatusApproved)
		if err != nil {
			return err
		}
		sale, err := s.saleRepo.GetByIDForUpdate(ctx, ret.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return apperror.NewNotFoundError("Sale")
		}

		if s.policy == config.ReturnPolicyLegacy {
			sale.Status = enum.SaleStatusReturned
		} else if err := s.applyProportional(ctx, sale, ret); err != nil {
			return err
		}
		if err := s.saleRepo.Update(ctx, sale); err != nil {
			return err
		}

		return s.review(ctx, ret, enum.ReturnStatusApproved, reviewer)
	})
	if err != nil {
		return nil, err
	}

	return s.returnRepo.GetByID(ctx, id)
}

// applyProportional books the returned quantities against the sale lines,
// refunds the customer and restocks the sale's warehouse
func (s *ReturnService) applyProportional(ctx context.Context, sale *entity.Sale, ret *entity.SaleReturn) error {
	lines := make(map[uuid.UUID]*entity.SaleItem, len(sale.Items))
	for i := range sale.Items {
		lines[sale.Items[i].ID] = &sale.Items[i]
	}

	for _, ri := range ret.Items {
		line, ok := lines[ri.SaleItemID]
		if !ok {
			return apperror.NewConflictError(fmt.Sprintf("Sale line of %s no longer exists", ri.ProductName))
		}
		if ri.Quantity > line.Returnable() {
			return apperror.NewConflictError(fmt.Sprintf("Only %d of %s can still be returned", line.Returnable(), ri.ProductName))
		}
		line.ReturnedQuantity += ri.Quantity
		if err := s.saleRepo.UpdateItem(ctx, line); err != nil {
			return err
		}
		if sale.WarehouseID != nil {
			if _, err := s.mover.deposit(ctx, ri.ProductID, *sale.WarehouseID, ri.Quantity); err != nil {
				return err
			}
		}
	}

	sale.Status = enum.SaleStatusReturned
	for _, item := range sale.Items {
		if item.Returnable() > 0 {
			sale.Status = enum.SaleStatusPartiallyReturned
			break
		}
	}
	ret.RefundAmount = refundFor(sale, ret.TotalAmount)
	sale.AmountRefunded = sale.AmountRefunded.Add(ret.RefundAmount)

	if sale.CustomerID == nil || ret.RefundAmount.IsZero() {
		return nil
	}
	customer, err := s.customerRepo.GetByIDForUpdate(ctx, *sale.CustomerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	reference := ret.Number
	customer.ReverseCharge(ret.RefundAmount)
	return s.ledger.post(ctx, customer, enum.LedgerEntryTypeCredit,
		fmt.Sprintf("Return %s against %s (%s)", ret.Number, sale.Number, ret.RefundMethod),
		decimal.Zero, ret.RefundAmount, &reference, now())
}

// refundFor is the sale total's share for gross returned goods, never more
// than what is left unrefunded on the sale
func refundFor(sale *entity.Sale, gross decimal.Decimal) decimal.Decimal {
	refund := sales.RefundShare(gross, sale.Subtotal, sale.Total)
	left := sale.Total.Sub(sale.AmountRefunded)
	if sale.Status == enum.SaleStatusReturned && refund.Sub(left).Abs().LessThan(decimal.New(1, -2)) {
		// last units back: absorb the rounding left over from earlier shares
		return left
	}
	return decimal.Min(refund, decimal.Max(left, decimal.Zero))
}

// RejectReturn rejects a pending return. Nothing else changes.
func (s *ReturnService) RejectReturn(ctx context.Context, id uuid.UUID, reviewer Actor) (*entity.SaleReturn, error) {
	err := s.tx.run(ctx, nil, func(ctx context.Context) error {
		ret, err := s.lockPending(ctx, id, enum.ReturnStatusRejected)
		if err != nil {
			return err
		}
		return s.review(ctx, ret, enum.ReturnStatusRejected, reviewer)
	})
	if err != nil {
		return nil, err
	}

	return s.returnRepo.GetByID(ctx, id)
}

func (s *ReturnService) lockPending(ctx context.Context, id uuid.UUID, next enum.ReturnStatus) (*entity.SaleReturn, error) {
	ret, err := s.returnRepo.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Sale return")
	}
	if !ret.Status.CanTransitionTo(next) {
		return nil, apperror.NewInvalidTransitionError("Sale return", ret.Status.String(), next.String())
	}
	return ret, nil
}

func (s *ReturnService) review(ctx context.Context, ret *entity.SaleReturn, status enum.ReturnStatus, reviewer Actor) error {
	reviewedAt := now()
	reviewerID := reviewer.ID
	ret.Status = status
	ret.ReviewedAt = &reviewedAt
	ret.ReviewedByID = &reviewerID
	return s.returnRepo.Update(ctx, ret)
}
