package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/bom"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// BOMService handles bills of materials
type BOMService struct {
	tx          Tx
	bomRepo     repository.BOMRepository
	orderRepo   repository.ManufactureOrderRepository
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewBOMService creates a new BOM service
func NewBOMService(
	tx Tx,
	bomRepo repository.BOMRepository,
	orderRepo repository.ManufactureOrderRepository,
	productRepo repository.ProductRepository,
	stockRepo repository.StockRepository,
) *BOMService {
	return &BOMService{
		tx:          tx,
		bomRepo:     bomRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		stockRepo:   stockRepo,
	}
}

// ComponentInput is one requested BOM line. UnitCost defaults to the
// product's cost.
type ComponentInput struct {
	ProductID        uuid.UUID
	QuantityRequired int64
	UnitCost         *decimal.Decimal
}

// CreateBOMInput represents the create BOM input
type CreateBOMInput struct {
	Code           string
	Name           string
	FinalProductID uuid.UUID
	Description    *string
	EstimatedTime  int64
	Status         enum.RecordStatus
	Components     []ComponentInput
}

// CreateBOM creates a BOM and rolls up its cost
func (s *BOMService) CreateBOM(ctx context.Context, input *CreateBOMInput) (*entity.BOM, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	existing, err := s.bomRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("BOM with this code already exists")
	}
	if input.EstimatedTime < 0 {
		return nil, apperror.NewFieldError("estimated_time", "must not be negative")
	}

	final, err := s.productRepo.GetByID(ctx, input.FinalProductID)
	if err != nil {
		return nil, err
	}
	if final == nil {
		return nil, apperror.NewNotFoundError("Final product")
	}

	components, err := s.buildComponents(ctx, final.ID, input.Components)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enum.RecordStatusActive
	}

	b := &entity.BOM{
		Code:           code,
		Name:           strings.TrimSpace(input.Name),
		FinalProductID: final.ID,
		Description:    optionalString(input.Description),
		EstimatedTime:  input.EstimatedTime,
		Status:         status,
		Components:     components,
	}
	b.Recalculate()

	if err := s.tx.run(ctx, nil, func(ctx context.Context) error {
		return s.bomRepo.Create(ctx, b)
	}); err != nil {
		return nil, err
	}

	return s.bomRepo.GetByID(ctx, b.ID)
}

// GetBOM retrieves a BOM by ID
func (s *BOMService) GetBOM(ctx context.Context, id uuid.UUID) (*entity.BOM, error) {
	b, err := s.bomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NewNotFoundError("BOM")
	}
	return b, nil
}

// ListBOMs lists bills of materials
func (s *BOMService) ListBOMs(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) (*pagination.PaginatedResult[entity.BOM], error) {
	boms, total, err := s.bomRepo.List(ctx, params, search, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(boms, pag), nil
}

// UpdateBOMInput represents the update BOM input. A non-nil Components
// replaces the whole component list.
type UpdateBOMInput struct {
	ID            uuid.UUID
	Code          *string
	Name          *string
	Description   *string
	EstimatedTime *int64
	Status        *enum.RecordStatus
	Components    []ComponentInput
}

// UpdateBOM updates a BOM. The total cost is rolled up again on every edit.
func (s *BOMService) UpdateBOM(ctx context.Context, input *UpdateBOMInput) (*entity.BOM, error) {
	b, err := s.bomRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NewNotFoundError("BOM")
	}

	if input.Code != nil {
		code := strings.ToUpper(strings.TrimSpace(*input.Code))
		if code != b.Code {
			existing, err := s.bomRepo.GetByCode(ctx, code)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.NewConflictError("BOM with this code already exists")
			}
			b.Code = code
		}
	}
	if input.Name != nil {
		b.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		b.Description = optionalString(input.Description)
	}
	if input.EstimatedTime != nil {
		if *input.EstimatedTime < 0 {
			return nil, apperror.NewFieldError("estimated_time", "must not be negative")
		}
		b.EstimatedTime = *input.EstimatedTime
	}
	if input.Status != nil {
		b.Status = *input.Status
	}
	if input.Components != nil {
		components, err := s.buildComponents(ctx, b.FinalProductID, input.Components)
		if err != nil {
			return nil, err
		}
		b.Components = components
	}
	b.Recalculate()
	b.FinalProduct = nil

	if err := s.tx.run(ctx, nil, func(ctx context.Context) error {
		return s.bomRepo.Update(ctx, b)
	}); err != nil {
		return nil, err
	}

	return s.bomRepo.GetByID(ctx, b.ID)
}

// DeleteBOM deletes a BOM that has no open manufacture orders
func (s *BOMService) DeleteBOM(ctx context.Context, id uuid.UUID) error {
	b, err := s.bomRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return apperror.NewNotFoundError("BOM")
	}

	open, err := s.orderRepo.CountOpenByBOM(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return apperror.NewConflictError("BOM has open manufacture orders")
	}

	return s.tx.run(ctx, nil, func(ctx context.Context) error {
		return s.bomRepo.Delete(ctx, id)
	})
}

// Availability is the answer to "can this BOM be built N times"
type Availability struct {
	BOM        *entity.BOM    `json:"bom"`
	Quantity   int64          `json:"quantity"`
	CanProduce bool           `json:"can_produce"`
	Shortages  []bom.Shortage `json:"shortages"`
}

// CheckAvailability refreshes the available stock of every component and
// reports the shortages for quantity units. With a warehouse the check runs
// against that warehouse only and the snapshot stored on the BOM is left alone.
func (s *BOMService) CheckAvailability(ctx context.Context, id uuid.UUID, quantity int64, warehouseID *uuid.UUID) (*Availability, error) {
	if quantity <= 0 {
		return nil, apperror.NewFieldError("quantity", "must be greater than zero")
	}

	b, err := s.bomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperror.NewNotFoundError("BOM")
	}

	if err := s.refreshAvailability(ctx, b, warehouseID); err != nil {
		return nil, err
	}
	if warehouseID == nil {
		if err := s.saveSnapshot(ctx, b); err != nil {
			return nil, err
		}
	}

	shortages := bom.Shortages(b.Lines(), quantity)
	if shortages == nil {
		shortages = []bom.Shortage{}
	}

	return &Availability{
		BOM:        b,
		Quantity:   quantity,
		CanProduce: len(shortages) == 0,
		Shortages:  shortages,
	}, nil
}

// refreshAvailability loads live on-hand quantities into the components
func (s *BOMService) refreshAvailability(ctx context.Context, b *entity.BOM, warehouseID *uuid.UUID) error {
	ids := make([]uuid.UUID, 0, len(b.Components))
	for _, c := range b.Components {
		ids = append(ids, c.ProductID)
	}
	onHand, err := s.stockRepo.OnHandByProducts(ctx, ids, warehouseID)
	if err != nil {
		return err
	}
	for i := range b.Components {
		b.Components[i].AvailableStock = onHand[b.Components[i].ProductID]
	}
	return nil
}

// saveSnapshot persists the refreshed availability
func (s *BOMService) saveSnapshot(ctx context.Context, b *entity.BOM) error {
	final := b.FinalProduct
	b.FinalProduct = nil
	defer func() { b.FinalProduct = final }()

	return s.tx.run(ctx, nil, func(ctx context.Context) error {
		return s.bomRepo.Update(ctx, b)
	})
}

func (s *BOMService) buildComponents(ctx context.Context, finalProductID uuid.UUID, inputs []ComponentInput) ([]entity.BOMComponent, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewFieldError("components", "at least one component is required")
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	seen := make(map[uuid.UUID]bool, len(inputs))
	for _, in := range inputs {
		if in.ProductID == finalProductID {
			return nil, apperror.NewFieldError("components", "a BOM cannot consume its own final product")
		}
		if seen[in.ProductID] {
			return nil, apperror.NewFieldError("components", "each product may appear once")
		}
		seen[in.ProductID] = true
		ids = append(ids, in.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	onHand, err := s.stockRepo.OnHandByProducts(ctx, ids, nil)
	if err != nil {
		return nil, err
	}

	components := make([]entity.BOMComponent, 0, len(inputs))
	for _, in := range inputs {
		product, ok := byID[in.ProductID]
		if !ok {
			return nil, apperror.NewNotFoundError("Component product")
		}
		unitCost := product.Cost
		if in.UnitCost != nil {
			unitCost = *in.UnitCost
		}
		line, err := bom.NewLine(product.ID, product.Name, in.QuantityRequired, unitCost)
		if err != nil {
			return nil, apperror.NewFieldError("components", err.Error())
		}
		components = append(components, entity.BOMComponent{
			ProductID:        line.ProductID,
			ProductName:      line.ProductName,
			QuantityRequired: line.QuantityRequired,
			UnitCost:         line.UnitCost,
			AvailableStock:   onHand[product.ID],
			Position:         len(components),
		})
	}
	return components, nil
}
