package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByIDForUpdate locks the customer row for a balance change
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns customers with page-based pagination
	List(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) ([]entity.Customer, int64, error)
	// ListWithCursor returns customers using cursor-based pagination
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error)
	// HasActivity reports whether payments or sales reference the customer
	HasActivity(ctx context.Context, id uuid.UUID) (bool, error)

	CreatePayment(ctx context.Context, payment *entity.CustomerPayment) error
	GetPayment(ctx context.Context, customerID, paymentID uuid.UUID) (*entity.CustomerPayment, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	ListPayments(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.CustomerPayment, int64, error)

	AppendLedgerEntry(ctx context.Context, entry *entity.LedgerEntry) error
	ListLedger(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error)
	// LedgerEntries returns the whole statement, oldest first
	LedgerEntries(ctx context.Context, customerID uuid.UUID) ([]entity.LedgerEntry, error)
}

// SupplierRepository defines the interface for supplier data operations
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Supplier, error)
	GetByEmail(ctx context.Context, email string) (*entity.Supplier, error)
	Update(ctx context.Context, supplier *entity.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) ([]entity.Supplier, int64, error)
	// HasActivity reports whether payments or purchases reference the supplier
	HasActivity(ctx context.Context, id uuid.UUID) (bool, error)

	CreatePayment(ctx context.Context, payment *entity.SupplierPayment) error
	GetPayment(ctx context.Context, supplierID, paymentID uuid.UUID) (*entity.SupplierPayment, error)
	DeletePayment(ctx context.Context, paymentID uuid.UUID) error
	ListPayments(ctx context.Context, supplierID uuid.UUID, params *pagination.PaginationParams) ([]entity.SupplierPayment, int64, error)
}
