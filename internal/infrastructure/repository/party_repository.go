package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/entity"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	domainRepo "github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).Scopes(ForUpdate).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) GetByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	var customer entity.Customer
	err := conn(ctx, r.db).First(&customer, "LOWER(email) = LOWER(?)", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return conn(ctx, r.db).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := conn(ctx, r.db).Model(&entity.Customer{}).
		Scopes(Search(search, "name", "email", "phone", "company_name"))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&customers).Error

	return customers, total, err
}

// ListWithCursor returns customers using cursor-based pagination
// Fetches limit+1 items to detect if there are more results
func (r *customerRepository) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Customer, error) {
	var customers []entity.Customer

	params.Validate()
	query := conn(ctx, r.db).Model(&entity.Customer{}).
		Scopes(Search(search, "name", "email", "phone", "company_name"))

	cond, args, err := params.Keyset()
	if err != nil {
		return nil, err
	}
	if cond != "" {
		query = query.Where(cond, args...)
	}

	err = query.Limit(params.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&customers).Error

	return customers, err
}

func (r *customerRepository) HasActivity(ctx context.Context, id uuid.UUID) (bool, error) {
	var payments, sales int64
	db := conn(ctx, r.db)
	if err := db.Model(&entity.CustomerPayment{}).Where("customer_id = ?", id).Count(&payments).Error; err != nil {
		return false, err
	}
	if err := db.Model(&entity.Sale{}).Where("customer_id = ?", id).Count(&sales).Error; err != nil {
		return false, err
	}
	return payments+sales > 0, nil
}

func (r *customerRepository) CreatePayment(ctx context.Context, payment *entity.CustomerPayment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *customerRepository) GetPayment(ctx context.Context, customerID, paymentID uuid.UUID) (*entity.CustomerPayment, error) {
	var payment entity.CustomerPayment
	err := conn(ctx, r.db).
		First(&payment, "id = ? AND customer_id = ?", paymentID, customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *customerRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.CustomerPayment{}, "id = ?", paymentID).Error
}

func (r *customerRepository) ListPayments(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.CustomerPayment, int64, error) {
	var payments []entity.CustomerPayment
	var total int64

	query := conn(ctx, r.db).Model(&entity.CustomerPayment{}).Where("customer_id = ?", customerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("date DESC, created_at DESC").Find(&payments).Error
	return payments, total, err
}

// AppendLedgerEntry numbers the entry after the customer's last one. Callers
// hold the customer row lock, so the max is stable until commit.
func (r *customerRepository) AppendLedgerEntry(ctx context.Context, entry *entity.LedgerEntry) error {
	db := conn(ctx, r.db)
	var last int64
	if err := db.Model(&entity.LedgerEntry{}).
		Select("COALESCE(MAX(line_no), 0)").
		Where("customer_id = ?", entry.CustomerID).
		Scan(&last).Error; err != nil {
		return err
	}
	entry.Sequence = last + 1
	return db.Create(entry).Error
}

func (r *customerRepository) ListLedger(ctx context.Context, customerID uuid.UUID, params *pagination.PaginationParams) ([]entity.LedgerEntry, int64, error) {
	var entries []entity.LedgerEntry
	var total int64

	query := conn(ctx, r.db).Model(&entity.LedgerEntry{}).Where("customer_id = ?", customerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("line_no DESC").Find(&entries).Error
	return entries, total, err
}

func (r *customerRepository) LedgerEntries(ctx context.Context, customerID uuid.UUID) ([]entity.LedgerEntry, error) {
	var entries []entity.LedgerEntry
	err := conn(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("line_no ASC").
		Find(&entries).Error
	return entries, err
}

type supplierRepository struct {
	db *gorm.DB
}

// NewSupplierRepository creates a new supplier repository
func NewSupplierRepository(db *gorm.DB) domainRepo.SupplierRepository {
	return &supplierRepository{db: db}
}

func (r *supplierRepository) Create(ctx context.Context, supplier *entity.Supplier) error {
	return conn(ctx, r.db).Create(supplier).Error
}

func (r *supplierRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).Scopes(ForUpdate).First(&supplier, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) GetByEmail(ctx context.Context, email string) (*entity.Supplier, error) {
	var supplier entity.Supplier
	err := conn(ctx, r.db).First(&supplier, "LOWER(email) = LOWER(?)", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &supplier, err
}

func (r *supplierRepository) Update(ctx context.Context, supplier *entity.Supplier) error {
	return conn(ctx, r.db).Save(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Supplier{}, "id = ?", id).Error
}

func (r *supplierRepository) List(ctx context.Context, params *pagination.PaginationParams, search string, status enum.RecordStatus) ([]entity.Supplier, int64, error) {
	var suppliers []entity.Supplier
	var total int64

	query := conn(ctx, r.db).Model(&entity.Supplier{}).
		Scopes(Search(search, "name", "company", "email", "phone"))
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("name ASC").
		Find(&suppliers).Error

	return suppliers, total, err
}

func (r *supplierRepository) HasActivity(ctx context.Context, id uuid.UUID) (bool, error) {
	var payments, purchases int64
	db := conn(ctx, r.db)
	if err := db.Model(&entity.SupplierPayment{}).Where("supplier_id = ?", id).Count(&payments).Error; err != nil {
		return false, err
	}
	if err := db.Model(&entity.Purchase{}).Where("supplier_id = ?", id).Count(&purchases).Error; err != nil {
		return false, err
	}
	return payments+purchases > 0, nil
}

func (r *supplierRepository) CreatePayment(ctx context.Context, payment *entity.SupplierPayment) error {
	return conn(ctx, r.db).Create(payment).Error
}

func (r *supplierRepository) GetPayment(ctx context.Context, supplierID, paymentID uuid.UUID) (*entity.SupplierPayment, error) {
	var payment entity.SupplierPayment
	err := conn(ctx, r.db).
		First(&payment, "id = ? AND supplier_id = ?", paymentID, supplierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &payment, err
}

func (r *supplierRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.SupplierPayment{}, "id = ?", paymentID).Error
}

func (r *supplierRepository) ListPayments(ctx context.Context, supplierID uuid.UUID, params *pagination.PaginationParams) ([]entity.SupplierPayment, int64, error) {
	var payments []entity.SupplierPayment
	var total int64

	query := conn(ctx, r.db).Model(&entity.SupplierPayment{}).Where("supplier_id = ?", supplierID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).Order("date DESC, created_at DESC").Find(&payments).Error
	return payments, total, err
}
