package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// Purchase represents a supplier purchase order
type Purchase struct {
	ID           uuid.UUID           `gorm:"type:char(36);primary_key" json:"id"`
	Number       string              `gorm:"size:50;not null;uniqueIndex" json:"number"`
	SupplierID   uuid.UUID           `gorm:"type:char(36);not null;index" json:"supplier_id"`
	WarehouseID  uuid.UUID           `gorm:"type:char(36);not null;index" json:"warehouse_id"`
	Status       enum.PurchaseStatus `gorm:"size:20;not null;index" json:"status"`
	TotalAmount  decimal.Decimal     `gorm:"type:decimal(20,4);not null;default:0" json:"total_amount"`
	Notes        *string             `gorm:"type:text" json:"notes,omitempty"`
	Date         time.Time           `gorm:"not null;index" json:"date"`
	ReceivedDate *time.Time          `json:"received_date,omitempty"`
	CreatedByID  uuid.UUID           `gorm:"type:char(36)" json:"created_by_id"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	DeletedAt    gorm.DeletedAt      `gorm:"index" json:"-"`

	// Relationships
	Supplier  *Supplier        `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	Warehouse *Warehouse       `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	Details   []PurchaseDetail `gorm:"foreignKey:PurchaseID" json:"details,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase
func (p *Purchase) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Purchase model
func (Purchase) TableName() string {
	return "purchases"
}

// PurchaseDetail represents a line item in a purchase
type PurchaseDetail struct {
	ID         uuid.UUID       `gorm:"type:char(36);primary_key" json:"id"`
	PurchaseID uuid.UUID       `gorm:"type:char(36);not null;index" json:"purchase_id"`
	ProductID  uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_cost"`
	Total      decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total"`
	CreatedAt  time.Time       `json:"created_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new purchase detail
func (d *PurchaseDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PurchaseDetail model
func (PurchaseDetail) TableName() string {
	return "purchase_details"
}
