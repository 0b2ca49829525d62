package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/ledger"
)

// Customer represents a buyer with a running account
type Customer struct {
	ID           uuid.UUID         `gorm:"type:char(36);primary_key" json:"id"`
	Name         string            `gorm:"size:255;not null;index" json:"name"`
	Email        string            `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone        *string           `gorm:"size:50" json:"phone,omitempty"`
	Address      *string           `gorm:"type:text" json:"address,omitempty"`
	City         *string           `gorm:"size:100" json:"city,omitempty"`
	Country      *string           `gorm:"size:100" json:"country,omitempty"`
	CustomerType enum.CustomerType `gorm:"size:20;not null;default:'individual'" json:"customer_type"`
	CompanyName  *string           `gorm:"size:255" json:"company_name,omitempty"`
	TaxID        *string           `gorm:"size:100" json:"tax_id,omitempty"`
	CreditLimit  decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"credit_limit"`
	Status       enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	ledger.Account
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// CustomerPayment is money received from a customer
type CustomerPayment struct {
	ID           uuid.UUID          `gorm:"type:char(36);primary_key" json:"id"`
	CustomerID   uuid.UUID          `gorm:"type:char(36);not null;index" json:"customer_id"`
	Amount       decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"amount"`
	Method       enum.PaymentMethod `gorm:"size:30;not null" json:"method"`
	Reference    *string            `gorm:"size:255" json:"reference,omitempty"`
	Notes        *string            `gorm:"type:text" json:"notes,omitempty"`
	Date         time.Time          `gorm:"not null;index" json:"date"`
	RecordedByID uuid.UUID          `gorm:"type:char(36)" json:"recorded_by_id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (p *CustomerPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (CustomerPayment) TableName() string {
	return "customer_payments"
}

// LedgerEntry is one append-only line of a customer statement. Balance is
// the customer balance right after the entry; Sequence orders the statement.
type LedgerEntry struct {
	ID          uuid.UUID            `gorm:"type:char(36);primary_key" json:"id"`
	CustomerID  uuid.UUID            `gorm:"type:char(36);not null;uniqueIndex:idx_ledger_customer_seq" json:"customer_id"`
	Sequence    int64                `gorm:"column:line_no;not null;uniqueIndex:idx_ledger_customer_seq" json:"sequence"`
	Type        enum.LedgerEntryType `gorm:"size:20;not null" json:"type"`
	Description string               `gorm:"size:255;not null" json:"description"`
	Debit       decimal.Decimal      `gorm:"type:decimal(20,4);not null;default:0" json:"debit"`
	Credit      decimal.Decimal      `gorm:"type:decimal(20,4);not null;default:0" json:"credit"`
	Balance     decimal.Decimal      `gorm:"type:decimal(20,4);not null;default:0" json:"balance"`
	Reference   *string              `gorm:"size:100" json:"reference,omitempty"`
	Date        time.Time            `gorm:"not null;index" json:"date"`
	CreatedAt   time.Time            `json:"created_at"`
}

func (e *LedgerEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

func (LedgerEntry) TableName() string {
	return "customer_ledger_entries"
}

// Supplier represents a vendor we buy from
type Supplier struct {
	ID      uuid.UUID         `gorm:"type:char(36);primary_key" json:"id"`
	Name    string            `gorm:"size:255;not null;index" json:"name"`
	Company *string           `gorm:"size:255" json:"company,omitempty"`
	Email   string            `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone   *string           `gorm:"size:50" json:"phone,omitempty"`
	Address *string           `gorm:"type:text" json:"address,omitempty"`
	City    *string           `gorm:"size:100" json:"city,omitempty"`
	Country *string           `gorm:"size:100" json:"country,omitempty"`
	TaxID   *string           `gorm:"size:100" json:"tax_id,omitempty"`
	Status  enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	ledger.Account
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new supplier
func (s *Supplier) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}

// SupplierPayment is money paid to a supplier
type SupplierPayment struct {
	ID           uuid.UUID          `gorm:"type:char(36);primary_key" json:"id"`
	SupplierID   uuid.UUID          `gorm:"type:char(36);not null;index" json:"supplier_id"`
	Amount       decimal.Decimal    `gorm:"type:decimal(20,4);not null" json:"amount"`
	Method       enum.PaymentMethod `gorm:"size:30;not null" json:"method"`
	Reference    *string            `gorm:"size:255" json:"reference,omitempty"`
	Notes        *string            `gorm:"type:text" json:"notes,omitempty"`
	Date         time.Time          `gorm:"not null;index" json:"date"`
	RecordedByID uuid.UUID          `gorm:"type:char(36)" json:"recorded_by_id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (p *SupplierPayment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (SupplierPayment) TableName() string {
	return "supplier_payments"
}
