package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/stock"
)

// Warehouse is a physical stock location
type Warehouse struct {
	ID        uuid.UUID         `gorm:"type:char(36);primary_key" json:"id"`
	Code      string            `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name      string            `gorm:"size:255;not null" json:"name"`
	Location  string            `gorm:"size:255" json:"location"`
	Manager   string            `gorm:"size:255" json:"manager"`
	Phone     *string           `gorm:"size:50" json:"phone,omitempty"`
	Capacity  int64             `gorm:"not null;default:0" json:"capacity"`
	Status    enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

func (w *Warehouse) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

func (Warehouse) TableName() string {
	return "warehouses"
}

// StockItem is the quantity of one product held in one warehouse
type StockItem struct {
	ID          uuid.UUID        `gorm:"type:char(36);primary_key" json:"id"`
	ProductID   uuid.UUID        `gorm:"type:char(36);not null;uniqueIndex:idx_stock_product_warehouse" json:"product_id"`
	WarehouseID uuid.UUID        `gorm:"type:char(36);not null;uniqueIndex:idx_stock_product_warehouse;index" json:"warehouse_id"`
	Quantity    int64            `gorm:"not null;default:0" json:"quantity"`
	MinStock    int64            `gorm:"not null;default:0" json:"min_stock"`
	MaxStock    int64            `gorm:"not null;default:0" json:"max_stock"`
	Status      enum.StockStatus `gorm:"size:20;not null;index" json:"status"`
	LastUpdated time.Time        `json:"last_updated"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (s *StockItem) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps Status in line with Quantity on every write
func (s *StockItem) BeforeSave(tx *gorm.DB) error {
	s.Status = stock.DeriveStatus(s.Quantity, s.MinStock)
	return nil
}

func (StockItem) TableName() string {
	return "stock_items"
}

// SetQuantity changes the on-hand quantity and re-derives the status
func (s *StockItem) SetQuantity(qty int64, at time.Time) {
	s.Quantity = qty
	s.Status = stock.DeriveStatus(qty, s.MinStock)
	s.LastUpdated = at
}

// StockAdjustment is the audit record of a manual quantity correction
type StockAdjustment struct {
	ID                 uuid.UUID           `gorm:"type:char(36);primary_key" json:"id"`
	Number             string              `gorm:"size:50;not null;uniqueIndex" json:"number"`
	StockItemID        uuid.UUID           `gorm:"type:char(36);not null;index" json:"stock_item_id"`
	ProductID          uuid.UUID           `gorm:"type:char(36);not null;index" json:"product_id"`
	WarehouseID        uuid.UUID           `gorm:"type:char(36);not null;index" json:"warehouse_id"`
	AdjustmentType     enum.AdjustmentType `gorm:"size:20;not null" json:"adjustment_type"`
	PreviousQuantity   int64               `gorm:"not null" json:"previous_quantity"`
	AdjustmentQuantity int64               `gorm:"not null" json:"adjustment_quantity"`
	NewQuantity        int64               `gorm:"not null" json:"new_quantity"`
	Reason             string              `gorm:"size:255;not null" json:"reason"`
	Notes              *string             `gorm:"type:text" json:"notes,omitempty"`
	AdjustedBy         string              `gorm:"size:255" json:"adjusted_by"`
	AdjustedByID       uuid.UUID           `gorm:"type:char(36)" json:"adjusted_by_id"`
	CreatedAt          time.Time           `json:"created_at"`

	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Warehouse *Warehouse `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
}

func (a *StockAdjustment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// Transfer moves stock of one product between two warehouses
type Transfer struct {
	ID              uuid.UUID           `gorm:"type:char(36);primary_key" json:"id"`
	Number          string              `gorm:"size:50;not null;uniqueIndex" json:"number"`
	ProductID       uuid.UUID           `gorm:"type:char(36);not null;index" json:"product_id"`
	FromWarehouseID uuid.UUID           `gorm:"type:char(36);not null;index" json:"from_warehouse_id"`
	ToWarehouseID   uuid.UUID           `gorm:"type:char(36);not null;index" json:"to_warehouse_id"`
	Quantity        int64               `gorm:"not null" json:"quantity"`
	Status          enum.TransferStatus `gorm:"size:20;not null;index" json:"status"`
	RequestedBy     string              `gorm:"size:255" json:"requested_by"`
	RequestedByID   uuid.UUID           `gorm:"type:char(36)" json:"requested_by_id"`
	Notes           *string             `gorm:"type:text" json:"notes,omitempty"`
	RequestedDate   time.Time           `gorm:"not null" json:"requested_date"`
	CompletedDate   *time.Time          `json:"completed_date,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`

	Product       *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	FromWarehouse *Warehouse `gorm:"foreignKey:FromWarehouseID" json:"from_warehouse,omitempty"`
	ToWarehouse   *Warehouse `gorm:"foreignKey:ToWarehouseID" json:"to_warehouse,omitempty"`
}

func (t *Transfer) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (Transfer) TableName() string {
	return "transfers"
}
