package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// ProductService handles product-related operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	brandRepo    repository.BrandRepository
	stockRepo    repository.StockRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	brandRepo repository.BrandRepository,
	stockRepo repository.StockRepository,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		brandRepo:    brandRepo,
		stockRepo:    stockRepo,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	SKU         string
	Name        string
	Description *string
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	Price       decimal.Decimal
	Cost        decimal.Decimal
	MinStock    int64
	Unit        string
	Status      enum.RecordStatus
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	sku := strings.TrimSpace(input.SKU)
	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Product with this SKU already exists")
	}

	if err := s.checkReferences(ctx, input.CategoryID, input.BrandID); err != nil {
		return nil, err
	}
	if err := validatePricing(input.Price, input.Cost, input.MinStock); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enum.RecordStatusActive
	}
	unit := strings.TrimSpace(input.Unit)
	if unit == "" {
		unit = "pcs"
	}

	product := &entity.Product{
		SKU:         sku,
		Name:        strings.TrimSpace(input.Name),
		Description: optionalString(input.Description),
		CategoryID:  input.CategoryID,
		BrandID:     input.BrandID,
		Price:       input.Price,
		Cost:        input.Cost,
		MinStock:    input.MinStock,
		Unit:        unit,
		Status:      status,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// ListProductsWithCursor lists products using cursor-based pagination
func (s *ProductService) ListProductsWithCursor(ctx context.Context, params *repository.ProductCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Product], error) {
	products, err := s.productRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewCursorPage(products, params.Cursor, func(p entity.Product) pagination.Cursor {
		return pagination.Cursor{ID: p.ID.String(), CreatedAt: p.CreatedAt}
	}), nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	ID          uuid.UUID
	SKU         *string
	Name        *string
	Description *string
	CategoryID  *uuid.UUID
	BrandID     *uuid.UUID
	Price       *decimal.Decimal
	Cost        *decimal.Decimal
	MinStock    *int64
	Unit        *string
	Status      *enum.RecordStatus
}

// UpdateProduct updates a product
func (s *ProductService) UpdateProduct(ctx context.Context, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.SKU != nil {
		sku := strings.TrimSpace(*input.SKU)
		if sku != product.SKU {
			existing, err := s.productRepo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if existing != nil {
				return nil, apperror.NewConflictError("Product with this SKU already exists")
			}
			product.SKU = sku
		}
	}
	if err := s.checkReferences(ctx, input.CategoryID, input.BrandID); err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		product.Description = optionalString(input.Description)
	}
	if input.CategoryID != nil {
		product.CategoryID = input.CategoryID
		product.Category = nil
	}
	if input.BrandID != nil {
		product.BrandID = input.BrandID
		product.Brand = nil
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Cost != nil {
		product.Cost = *input.Cost
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}
	if input.Unit != nil {
		product.Unit = strings.TrimSpace(*input.Unit)
	}
	if input.Status != nil {
		product.Status = *input.Status
	}

	if err := validatePricing(product.Price, product.Cost, product.MinStock); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// DeleteProduct deletes a product. Products with stock on hand are kept.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	onHand, err := s.stockRepo.TotalOnHand(ctx, id)
	if err != nil {
		return err
	}
	if onHand > 0 {
		return apperror.NewConflictError("Product still has stock on hand")
	}

	return s.productRepo.Delete(ctx, id)
}

func (s *ProductService) checkReferences(ctx context.Context, categoryID, brandID *uuid.UUID) error {
	if categoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFoundError("Category")
		}
	}
	if brandID != nil {
		brand, err := s.brandRepo.GetByID(ctx, *brandID)
		if err != nil {
			return err
		}
		if brand == nil {
			return apperror.NewNotFoundError("Brand")
		}
	}
	return nil
}

func validatePricing(price, cost decimal.Decimal, minStock int64) error {
	var fields []apperror.FieldError
	if price.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "price", Message: "must not be negative"})
	}
	if cost.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "cost", Message: "must not be negative"})
	}
	if minStock < 0 {
		fields = append(fields, apperror.FieldError{Field: "min_stock", Message: "must not be negative"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}
