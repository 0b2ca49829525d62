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
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/infrastructure/lock"
	"github.com/sangkips/inventra-api/pkg/apperror"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// customerLedger writes a customer's account and statement together.
// Callers hold the customer lock and the row lock.
type customerLedger struct {
	customerRepo repository.CustomerRepository
}

// post saves the customer's updated account and appends a statement line
// carrying the resulting balance
func (l customerLedger) post(ctx context.Context, customer *entity.Customer, typ enum.LedgerEntryType, description string, debit, credit decimal.Decimal, reference *string, at time.Time) error {
	if err := l.customerRepo.Update(ctx, customer); err != nil {
		return err
	}
	return l.customerRepo.AppendLedgerEntry(ctx, &entity.LedgerEntry{
		CustomerID:  customer.ID,
		Type:        typ,
		Description: description,
		Debit:       debit,
		Credit:      credit,
		Balance:     customer.Balance,
		Reference:   reference,
		Date:        at,
	})
}

// CustomerService handles customer-related operations
type CustomerService struct {
	tx           Tx
	customerRepo repository.CustomerRepository
	ledger       customerLedger
	region       string
}

// NewCustomerService creates a new customer service
func NewCustomerService(tx Tx, customerRepo repository.CustomerRepository, region string) *CustomerService {
	return &CustomerService{
		tx:           tx,
		customerRepo: customerRepo,
		ledger:       customerLedger{customerRepo: customerRepo},
		region:       region,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name         string
	Email        string
	Phone        *string
	Address      *string
	City         *string
	Country      *string
	CustomerType enum.CustomerType
	CompanyName  *string
	TaxID        *string
	CreditLimit  decimal.Decimal
	Status       enum.RecordStatus
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.customerRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Customer with this email already exists")
	}
	if input.CreditLimit.IsNegative() {
		return nil, apperror.NewFieldError("credit_limit", "must not be negative")
	}

	phone, err := normalizePhone(input.Phone, s.region)
	if err != nil {
		return nil, err
	}

	customerType := input.CustomerType
	if customerType == "" {
		customerType = enum.CustomerTypeIndividual
	}
	status := input.Status
	if status == "" {
		status = enum.RecordStatusActive
	}

	customer := &entity.Customer{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		Phone:        phone,
		Address:      optionalString(input.Address),
		City:         optionalString(input.City),
		Country:      optionalString(input.Country),
		CustomerType: customerType,
		CompanyName:  optionalString(input.CompanyName),
		TaxID:        optionalString(input.TaxID),
		CreditLimit:  input.CreditLimit,
		Status:       status,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// ListCustomers lists customers with pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search, status)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}

// ListCustomersWithCursor lists customers using cursor-based pagination
func (s *CustomerService) ListCustomersWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Customer], error) {
	customers, err := s.customerRepo.ListWithCursor(ctx, params, search)
	if err != nil {
		return nil, err
	}

	return pagination.NewCursorPage(customers, params, func(c entity.Customer) pagination.Cursor {
		return pagination.Cursor{ID: c.ID.String(), CreatedAt: c.CreatedAt}
	}), nil
}

// UpdateCustomerInput represents the update customer input
type UpdateCustomerInput struct {
	ID           uuid.UUID
	Name         *string
	Email        *string
	Phone        *string
	Address      *string
	City         *string
	Country      *string
	CustomerType *enum.CustomerType
	CompanyName  *string
	TaxID        *string
	CreditLimit  *decimal.Decimal
	Status       *enum.RecordStatus
}

// UpdateCustomer updates a customer's profile. The account totals are
// never touched here.
func (s *CustomerService) UpdateCustomer(ctx context.Context, input *UpdateCustomerInput) (*entity.Customer, error) {
	var phone *string
	if input.Phone != nil {
		var err error
		if phone, err = normalizePhone(input.Phone, s.region); err != nil {
			return nil, err
		}
	}
	if input.CreditLimit != nil && input.CreditLimit.IsNegative() {
		return nil, apperror.NewFieldError("credit_limit", "must not be negative")
	}

	var customer *entity.Customer
	err := s.tx.run(ctx, []string{lock.CustomerKey(input.ID)}, func(ctx context.Context) error {
		var err error
		customer, err = s.customerRepo.GetByIDForUpdate(ctx, input.ID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		if input.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*input.Email))
			if email != customer.Email {
				existing, err := s.customerRepo.GetByEmail(ctx, email)
				if err != nil {
					return err
				}
				if existing != nil {
					return apperror.NewConflictError("Customer with this email already exists")
				}
				customer.Email = email
			}
		}
		if input.Name != nil {
			customer.Name = strings.TrimSpace(*input.Name)
		}
		if input.Phone != nil {
			customer.Phone = phone
		}
		if input.Address != nil {
			customer.Address = optionalString(input.Address)
		}
		if input.City != nil {
			customer.City = optionalString(input.City)
		}
		if input.Country != nil {
			customer.Country = optionalString(input.Country)
		}
		if input.CustomerType != nil {
			customer.CustomerType = *input.CustomerType
		}
		if input.CompanyName != nil {
			customer.CompanyName = optionalString(input.CompanyName)
		}
		if input.TaxID != nil {
			customer.TaxID = optionalString(input.TaxID)
		}
		if input.CreditLimit != nil {
			customer.CreditLimit = *input.CreditLimit
		}
		if input.Status != nil {
			customer.Status = *input.Status
		}

		return s.customerRepo.Update(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer with no payments or sales
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}

	active, err := s.customerRepo.HasActivity(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return apperror.NewConflictError("Customer has payments or sales and cannot be deleted")
	}

	return s.customerRepo.Delete(ctx, id)
}

// RecordPaymentInput represents money received from a customer
type RecordPaymentInput struct {
	CounterpartyID uuid.UUID
	Amount         decimal.Decimal
	Method         enum.PaymentMethod
	Reference      *string
	Notes          *string
	Date           *time.Time
	Actor          Actor
}

func (in *RecordPaymentInput) validate(methodOK bool, methods string) error {
	var fields []apperror.FieldError
	if !in.Amount.IsPositive() {
		fields = append(fields, apperror.FieldError{Field: "amount", Message: "must be greater than zero"})
	}
	if !methodOK {
		fields = append(fields, apperror.FieldError{Field: "method", Message: "must be one of " + methods})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func (in *RecordPaymentInput) date() time.Time {
	if in.Date != nil {
		return in.Date.UTC()
	}
	return now()
}

// RecordPayment applies a payment to the customer's account and appends a
// credit line to the statement
func (s *CustomerService) RecordPayment(ctx context.Context, input *RecordPaymentInput) (*entity.CustomerPayment, error) {
	if err := input.validate(input.Method.IsValidForCustomer(), "cash, bank-transfer, cheque, credit-card, mobile-payment"); err != nil {
		return nil, err
	}

	var payment *entity.CustomerPayment
	err := s.tx.run(ctx, []string{lock.CustomerKey(input.CounterpartyID)}, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByIDForUpdate(ctx, input.CounterpartyID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		payment = &entity.CustomerPayment{
			CustomerID:   customer.ID,
			Amount:       input.Amount,
			Method:       input.Method,
			Reference:    optionalString(input.Reference),
			Notes:        optionalString(input.Notes),
			Date:         input.date(),
			RecordedByID: input.Actor.ID,
		}
		if err := s.customerRepo.CreatePayment(ctx, payment); err != nil {
			return err
		}

		customer.ApplyPayment(payment.Amount)
		return s.ledger.post(ctx, customer, enum.LedgerEntryTypePayment,
			fmt.Sprintf("Payment received (%s)", payment.Method),
			decimal.Zero, payment.Amount, payment.Reference, payment.Date)
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// DeletePayment reverses a payment. The statement keeps the original
// credit and gains a reversing debit.
func (s *CustomerService) DeletePayment(ctx context.Context, customerID, paymentID uuid.UUID) error {
	return s.tx.run(ctx, []string{lock.CustomerKey(customerID)}, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByIDForUpdate(ctx, customerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		payment, err := s.customerRepo.GetPayment(ctx, customerID, paymentID)
		if err != nil {
			return err
		}
		if payment == nil {
			return apperror.NewNotFoundError("Payment")
		}

		if err := s.customerRepo.DeletePayment(ctx, payment.ID); err != nil {
			return err
		}

		customer.ReversePayment(payment.Amount)
		return s.ledger.post(ctx, customer, enum.LedgerEntryTypeDebit,
			fmt.Sprintf("Payment reversed (%s)", payment.Method),
			payment.Amount, decimal.Zero, payment.Reference, now())
	})
}

// ListPayments lists a customer's payments
func (s *CustomerService) ListPayments(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CustomerPayment], error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	payments, total, err := s.customerRepo.ListPayments(ctx, customerID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}

// ListLedger lists a customer's statement, newest first
func (s *CustomerService) ListLedger(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.LedgerEntry], error) {
	if _, err := s.GetCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	entries, total, err := s.customerRepo.ListLedger(ctx, customerID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// Statement returns the customer and the full statement, oldest first
func (s *CustomerService) Statement(ctx context.Context, customerID uuid.UUID) (*entity.Customer, []entity.LedgerEntry, error) {
	customer, err := s.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.customerRepo.LedgerEntries(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}
	return customer, entries, nil
}

// ReconcileResult reports the drift removed from an account
type ReconcileResult[T any] struct {
	Record *T              `json:"record"`
	Drift  decimal.Decimal `json:"drift"`
}

// ReconcileCustomer re-derives the balance from the totals. A non-zero
// drift is written to the statement as a correcting line.
func (s *CustomerService) ReconcileCustomer(ctx context.Context, id uuid.UUID) (*ReconcileResult[entity.Customer], error) {
	var result ReconcileResult[entity.Customer]
	err := s.tx.run(ctx, []string{lock.CustomerKey(id)}, func(ctx context.Context) error {
		customer, err := s.customerRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		drift := customer.Reconcile()
		result = ReconcileResult[entity.Customer]{Record: customer, Drift: drift}
		if drift.IsZero() {
			return nil
		}

		debit, credit := decimal.Zero, drift
		typ := enum.LedgerEntryTypeCredit
		if drift.IsNegative() {
			debit, credit = drift.Neg(), decimal.Zero
			typ = enum.LedgerEntryTypeDebit
		}
		return s.ledger.post(ctx, customer, typ, "Balance reconciliation", debit, credit, nil, now())
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}
