package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// CategoryService handles category-related operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, name string, description *string) (*entity.Category, error) {
	name = strings.TrimSpace(name)
	existing, err := s.categoryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category with this name already exists")
	}

	category := &entity.Category{
		Name:        name,
		Description: optionalString(description),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID
func (s *CategoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}
	return category, nil
}

// ListCategories lists categories
func (s *CategoryService) ListCategories(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Category], error) {
	categories, total, err := s.categoryRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(categories, pag), nil
}

// UpdateCategory updates a category
func (s *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, name, description *string) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, apperror.NewNotFoundError("Category")
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if !strings.EqualFold(trimmed, category.Name) {
			existing, err := s.categoryRepo.GetByName(ctx, trimmed)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, apperror.NewConflictError("Category with this name already exists")
			}
		}
		category.Name = trimmed
	}
	if description != nil {
		category.Description = optionalString(description)
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory deletes a category that no product uses
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}

	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Category is used by products")
	}

	return s.categoryRepo.Delete(ctx, id)
}

// BrandService handles brand-related operations
type BrandService struct {
	brandRepo repository.BrandRepository
}

// NewBrandService creates a new brand service
func NewBrandService(brandRepo repository.BrandRepository) *BrandService {
	return &BrandService{brandRepo: brandRepo}
}

// CreateBrand creates a new brand
func (s *BrandService) CreateBrand(ctx context.Context, name string, description *string) (*entity.Brand, error) {
	name = strings.TrimSpace(name)
	existing, err := s.brandRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Brand with this name already exists")
	}

	brand := &entity.Brand{
		Name:        name,
		Description: optionalString(description),
	}

	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// GetBrand retrieves a brand by ID
func (s *BrandService) GetBrand(ctx context.Context, id uuid.UUID) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, apperror.NewNotFoundError("Brand")
	}
	return brand, nil
}

// ListBrands lists brands
func (s *BrandService) ListBrands(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Brand], error) {
	brands, total, err := s.brandRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(brands, pag), nil
}

// UpdateBrand updates a brand
func (s *BrandService) UpdateBrand(ctx context.Context, id uuid.UUID, name, description *string) (*entity.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, apperror.NewNotFoundError("Brand")
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if !strings.EqualFold(trimmed, brand.Name) {
			existing, err := s.brandRepo.GetByName(ctx, trimmed)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != id {
				return nil, apperror.NewConflictError("Brand with this name already exists")
			}
		}
		brand.Name = trimmed
	}
	if description != nil {
		brand.Description = optionalString(description)
	}

	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// DeleteBrand deletes a brand that no product uses
func (s *BrandService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if brand == nil {
		return apperror.NewNotFoundError("Brand")
	}

	count, err := s.brandRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Brand is used by products")
	}

	return s.brandRepo.Delete(ctx, id)
}
