package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// Sale is an invoice. CustomerID is empty for walk-in sales.
type Sale struct {
	ID             uuid.UUID          `gorm:"type:char(36);primary_key" json:"id"`
	Number         string             `gorm:"size:50;not null;uniqueIndex" json:"number"`
	CustomerID     *uuid.UUID         `gorm:"type:char(36);index" json:"customer_id,omitempty"`
	CustomerName   string             `gorm:"size:255" json:"customer_name"`
	WarehouseID    *uuid.UUID         `gorm:"type:char(36);index" json:"warehouse_id,omitempty"`
	Subtotal       decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"subtotal"`
	Tax            decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"tax"`
	Discount       decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"discount"`
	Total          decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"total"`
	AmountPaid     decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"amount_paid"`
	Balance        decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"balance"`
	AmountRefunded decimal.Decimal    `gorm:"type:decimal(20,4);not null;default:0" json:"amount_refunded"`
	PaymentStatus  enum.PaymentStatus `gorm:"size:20;not null" json:"payment_status"`
	PaymentMethod  enum.PaymentMethod `gorm:"size:30" json:"payment_method"`
	Status         enum.SaleStatus    `gorm:"size:30;not null;index" json:"status"`
	Notes          *string            `gorm:"type:text" json:"notes,omitempty"`
	SoldBy         string             `gorm:"size:255" json:"sold_by"`
	SoldByID       uuid.UUID          `gorm:"type:char(36)" json:"sold_by_id"`
	Date           time.Time          `gorm:"not null;index" json:"date"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
	DeletedAt      gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Items []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one invoice line. ReturnedQuantity only counts approved returns.
type SaleItem struct {
	ID               uuid.UUID       `gorm:"type:char(36);primary_key" json:"id"`
	SaleID           uuid.UUID       `gorm:"type:char(36);not null;index" json:"sale_id"`
	ProductID        uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	ProductName      string          `gorm:"size:255" json:"product_name"`
	Quantity         int64           `gorm:"not null" json:"quantity"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Total            decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
	ReturnedQuantity int64           `gorm:"not null;default:0" json:"returned_quantity"`
}

func (i *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (SaleItem) TableName() string {
	return "sale_items"
}

// Returnable is how many units of the line can still be returned
func (i SaleItem) Returnable() int64 {
	return i.Quantity - i.ReturnedQuantity
}

// SaleReturn is a request to take goods back against a sale. TotalAmount is
// the gross value of the returned goods; RefundAmount is what approval
// credited back, tax and discount included.
type SaleReturn struct {
	ID            uuid.UUID         `gorm:"type:char(36);primary_key" json:"id"`
	Number        string            `gorm:"size:50;not null;uniqueIndex" json:"number"`
	SaleID        uuid.UUID         `gorm:"type:char(36);not null;index" json:"sale_id"`
	SaleNumber    string            `gorm:"size:50" json:"sale_number"`
	CustomerName  string            `gorm:"size:255" json:"customer_name"`
	TotalAmount   decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"total_amount"`
	RefundAmount  decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"refund_amount"`
	Reason        string            `gorm:"size:255;not null" json:"reason"`
	RefundMethod  enum.RefundMethod `gorm:"size:30;not null" json:"refund_method"`
	Status        enum.ReturnStatus `gorm:"size:20;not null;index" json:"status"`
	Notes         *string           `gorm:"type:text" json:"notes,omitempty"`
	ProcessedBy   string            `gorm:"size:255" json:"processed_by"`
	ProcessedByID uuid.UUID         `gorm:"type:char(36)" json:"processed_by_id"`
	ReviewedByID  *uuid.UUID        `gorm:"type:char(36)" json:"reviewed_by_id,omitempty"`
	ReviewedAt    *time.Time        `json:"reviewed_at,omitempty"`
	Date          time.Time         `gorm:"not null;index" json:"date"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`

	Items []ReturnItem `gorm:"foreignKey:SaleReturnID" json:"items,omitempty"`
}

func (r *SaleReturn) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (SaleReturn) TableName() string {
	return "sale_returns"
}

// ReturnItem is one returned line
type ReturnItem struct {
	ID           uuid.UUID       `gorm:"type:char(36);primary_key" json:"id"`
	SaleReturnID uuid.UUID       `gorm:"type:char(36);not null;index" json:"sale_return_id"`
	SaleItemID   uuid.UUID       `gorm:"type:char(36);not null" json:"sale_item_id"`
	ProductID    uuid.UUID       `gorm:"type:char(36);not null" json:"product_id"`
	ProductName  string          `gorm:"size:255" json:"product_name"`
	Quantity     int64           `gorm:"not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	Total        decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
}

func (i *ReturnItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

func (ReturnItem) TableName() string {
	return "sale_return_items"
}
