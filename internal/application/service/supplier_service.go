package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// SupplierService handles supplier-related operations
type SupplierService struct {
	tx           Tx
	supplierRepo repository.SupplierRepository
	region       string
}

// NewSupplierService creates a new supplier service
func NewSupplierService(tx Tx, supplierRepo repository.SupplierRepository, region string) *SupplierService {
	return &SupplierService{
		tx:           tx,
		supplierRepo: supplierRepo,
		region:       region,
	}
}

// CreateSupplierInput represents the create supplier input
type CreateSupplierInput struct {
	Name    string
	Company *string
	Email   string
	Phone   *string
	Address *string
	City    *string
	Country *string
	TaxID   *string
	Status  enum.RecordStatus
}

// CreateSupplier creates a new supplier
func (s *SupplierService) CreateSupplier(ctx context.Context, input *CreateSupplierInput) (*entity.Supplier, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.supplierRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Supplier with this email already exists")
	}

	phone, err := normalizePhone(input.Phone, s.region)
	if err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enum.RecordStatusActive
	}

	supplier := &entity.Supplier{
		Name:    strings.TrimSpace(input.Name),
		Company: optionalString(input.Company),
		Email:   email,
		Phone:   phone,
		Address: optionalString(input.Address),
		City:    optionalString(input.City),
		Country: optionalString(input.Country),
		TaxID:   optionalString(input.TaxID),
		Status:  status,
	}

	if err := s.supplierRepo.Create(ctx, supplier); err != nil {
		return nil, err
	}

	return supplier, nil
}

// GetSupplier retrieves a supplier by ID
func (s *SupplierService) GetSupplier(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}
	return supplier, nil
}

// ListSuppliers lists suppliers with pagination
func (s *SupplierService) ListSuppliers(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) (*pagination.PaginatedResult[entity.Supplier], error) {
	suppliers, total, err := s.supplierRepo.List(ctx, params, search, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(suppliers, pag), nil
}

// UpdateSupplierInput represents the update supplier input
type UpdateSupplierInput struct {
	ID      uuid.UUID
	Name    *string
	Company *string
	Email   *string
	Phone   *string
	Address *string
	City    *string
	Country *string
	TaxID   *string
	Status  *enum.RecordStatus
}

// UpdateSupplier updates a supplier's profile
func (s *SupplierService) UpdateSupplier(ctx context.Context, input *UpdateSupplierInput) (*entity.Supplier, error) {
	var phone *string
	if input.Phone != nil {
		var err error
		if phone, err = normalizePhone(input.Phone, s.region); err != nil {
			return nil, err
		}
	}

	var supplier *entity.Supplier
	err := s.tx.run(ctx, []string{lock.SupplierKey(input.ID)}, func(ctx context.Context) error {
		var err error
		supplier, err = s.supplierRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}

		if input.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*input.Email))
			if email != supplier.Email {
				existing, err := s.supplierRepo.GetByEmail(ctx, email)
				if err != nil {
					return err
				}
				if existing != nil {
					return apperror.NewConflictError("Supplier with this email already exists")
				}
				supplier.Email = email
			}
		}
		if input.Name != nil {
			supplier.Name = strings.TrimSpace(*input.Name)
		}
		if input.Company != nil {
			supplier.Company = optionalString(input.Company)
		}
		if input.Phone != nil {
			supplier.Phone = phone
		}
		if input.Address != nil {
			supplier.Address = optionalString(input.Address)
		}
		if input.City != nil {
			supplier.City = optionalString(input.City)
		}
		if input.Country != nil {
			supplier.Country = optionalString(input.Country)
		}
		if input.TaxID != nil {
			supplier.TaxID = optionalString(input.TaxID)
		}
		if input.Status != nil {
			supplier.Status = *input.Status
		}

		return s.supplierRepo.Update(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}

	return supplier, nil
}

// DeleteSupplier deletes a supplier with no payments or purchases
func (s *SupplierService) DeleteSupplier(ctx context.Context, id uuid.UUID) error {
	supplier, err := s.supplierRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return apperror.NewNotFoundError("Supplier")
	}

	active, err := s.supplierRepo.HasActivity(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return apperror.NewConflictError("Supplier has payments or purchases and cannot be deleted")
	}

	return s.supplierRepo.Delete(ctx, id)
}

// RecordPayment applies a payment made to the supplier
func (s *SupplierService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.SupplierPayment, error) {
	if err := input.validate(input.Method.IsValidForSupplier(), "cash, bank-transfer, cheque, credit"); err != nil {
		return nil, err
	}

	var payment *entity.SupplierPayment
	err := s.tx.run(ctx, []string{lock.SupplierKey(input.CounterpartyID)}, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.GetByIDForUpdate(ctx, input.CounterpartyID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}

		payment = &entity.SupplierPayment{
			SupplierID:   supplier.ID,
			Amount:       input.Amount,
			Method:       input.Method,
			Reference:    optionalString(input.Reference),
			Notes:        optionalString(input.Notes),
			Date:         input.date(),
			RecordedByID: input.Actor.ID,
		}
		if err := s.supplierRepo.CreatePayment(ctx, payment); err != nil {
			return err
		}

		supplier.ApplyPayment(payment.Amount)
		return s.supplierRepo.Update(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment reverses a supplier payment
func (s *SupplierService) DeletePayment(ctx context.Context, supplierID, paymentID uuid.UUID) error {
	return s.tx.run(ctx, []string{lock.SupplierKey(supplierID)}, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.GetByIDForUpdate(ctx, supplierID)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}

		payment, err := s.supplierRepo.GetPayment(ctx, supplierID, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}

		if err := s.supplierRepo.DeletePayment(ctx, payment.ID); err != nil {
			return err
		}

		supplier.ReversePayment(payment.Amount)
		return s.supplierRepo.Update(ctx, supplier)
	})
}

// ListPayments lists a supplier's payments
func (s *SupplierService) ListPayments(ctx context.Context, supplierID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SupplierPayment], error) {
	if _, err := s.GetSupplier(ctx, supplierID); err != nil {
		return nil, err
	}

	payments, total, err := s.supplierRepo.ListPayments(ctx, supplierID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// ReconcileSupplier re-derives the balance from the totals
func (s *SupplierService) ReconcileSupplier(ctx context.Context, id uuid.UUID) (*ReconcileResult[entity.Supplier], error) {
	var result ReconcileResult[entity.Supplier]
	err := s.tx.run(ctx, []string{lock.SupplierKey(id)}, func(ctx context.Context) error {
		supplier, err := s.supplierRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return apperror.NewNotFoundError("Supplier")
		}

		result = ReconcileResult[entity.Supplier]{Record: supplier, Drift: supplier.Reconcile()}
		if result.Drift.IsZero() {
			return nil
		}
		return s.supplierRepo.Update(ctx, supplier)
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
