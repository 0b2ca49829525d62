package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// BOMRepository defines the interface for bill of materials operations
type BOMRepository interface {
	// Create inserts the BOM together with its components
	Create(ctx context.Context, b *entity.BOM) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BOM, error)
	GetByCode(ctx context.Context, code string) (*entity.BOM, error)
	// Update saves the header and replaces the component list
	Update(ctx context.Context, b *entity.BOM) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) ([]entity.BOM, int64, error)
}

// ManufactureOrderRepository defines the interface for production run operations
type ManufactureOrderRepository interface {
	Create(ctx context.Context, order *entity.ManufactureOrder) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ManufactureOrder, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.ManufactureOrder, error)
	Update(ctx context.Context, order *entity.ManufactureOrder) error
	List(ctx context.Context, params *pagination.PaginationParams, status enum.ManufactureStatus, bomID *uuid.UUID) ([]entity.ManufactureOrder, int64, error)
	// CountOpenByBOM counts orders of a BOM that are not completed or cancelled
	CountOpenByBOM(ctx context.Context, bomID uuid.UUID) (int64, error)
}
