package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// Category groups products in the catalog
type Category struct {
	ID          uuid.UUID      `gorm:"type:char(36);primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}

// Brand is the manufacturer label of a product
type Brand struct {
	ID          uuid.UUID      `gorm:"type:char(36);primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string        `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (b *Brand) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (Brand) TableName() string {
	return "brands"
}

// Product is a catalog entry. Quantities live on StockItem, one per warehouse.
type Product struct {
	ID          uuid.UUID         `gorm:"type:char(36);primary_key" json:"id"`
	SKU         string            `gorm:"column:sku;size:100;not null;uniqueIndex" json:"sku"`
	Name        string            `gorm:"size:255;not null;index" json:"name"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	CategoryID  *uuid.UUID        `gorm:"type:char(36);index" json:"category_id,omitempty"`
	BrandID     *uuid.UUID        `gorm:"type:char(36);index" json:"brand_id,omitempty"`
	Price       decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"price"`
	Cost        decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"cost"`
	MinStock    int64             `gorm:"not null;default:0" json:"min_stock"`
	Unit        string            `gorm:"size:50;not null;default:'pcs'" json:"unit"`
	Status      enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
	DeletedAt   gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand    *Brand    `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}
