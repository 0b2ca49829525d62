package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create inserts the sale together with its items
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetByIDForUpdate locks the sale and loads its items
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	UpdateItem(ctx context.Context, item *entity.SaleItem) error
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Number        string
	CustomerID    *uuid.UUID
	Status        enum.SaleStatus
	PaymentStatus enum.PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
}

// SaleReturnRepository defines the interface for sale return operations
type SaleReturnRepository interface {
	Create(ctx context.Context, ret *entity.SaleReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.SaleReturn, error)
	Update(ctx context.Context, ret *entity.SaleReturn) error
	List(ctx context.Context, params *pagination.PaginationParams, status enum.ReturnStatus, saleID *uuid.UUID) ([]entity.SaleReturn, int64, error)
}
