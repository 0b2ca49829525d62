package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sangkips/inventra-api/internal/domain/bom"
	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// BOM is a bill of materials: the components needed to build one unit of a
// finished product
type BOM struct {
	ID             uuid.UUID         `gorm:"type:char(36);primary_key" json:"id"`
	Code           string            `gorm:"size:50;not null;uniqueIndex" json:"code"`
	Name           string            `gorm:"size:255;not null" json:"name"`
	FinalProductID uuid.UUID         `gorm:"type:char(36);not null;index" json:"final_product_id"`
	Description    *string           `gorm:"type:text" json:"description,omitempty"`
	EstimatedTime  int64             `gorm:"not null;default:0" json:"estimated_time"`
	Status         enum.RecordStatus `gorm:"size:20;not null;default:'active'" json:"status"`
	TotalCost      decimal.Decimal   `gorm:"type:decimal(20,4);not null;default:0" json:"total_cost"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	DeletedAt      gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relationships
	FinalProduct *Product       `gorm:"foreignKey:FinalProductID" json:"final_product,omitempty"`
	Components   []BOMComponent `gorm:"foreignKey:BOMID" json:"components,omitempty"`
}

func (b *BOM) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

func (BOM) TableName() string {
	return "boms"
}

// Lines converts the components for the roll-up helpers
func (b *BOM) Lines() []bom.Line {
	lines := make([]bom.Line, 0, len(b.Components))
	for _, c := range b.Components {
		lines = append(lines, bom.Line{
			ProductID:        c.ProductID,
			ProductName:      c.ProductName,
			QuantityRequired: c.QuantityRequired,
			UnitCost:         c.UnitCost,
			AvailableStock:   c.AvailableStock,
		})
	}
	return lines
}

// Recalculate refreshes every component total and the BOM total cost
func (b *BOM) Recalculate() {
	for i := range b.Components {
		b.Components[i].TotalCost = b.Components[i].UnitCost.Mul(decimal.NewFromInt(b.Components[i].QuantityRequired))
	}
	b.TotalCost = bom.RollUp(b.Lines())
}

// BOMComponent is one line of a BOM. Position keeps the order the lines
// were entered in.
type BOMComponent struct {
	ID               uuid.UUID       `gorm:"type:char(36);primary_key" json:"id"`
	BOMID            uuid.UUID       `gorm:"column:bom_id;type:char(36);not null;index" json:"bom_id"`
	ProductID        uuid.UUID       `gorm:"type:char(36);not null;index" json:"product_id"`
	ProductName      string          `gorm:"size:255" json:"product_name"`
	QuantityRequired int64           `gorm:"not null" json:"quantity_required"`
	UnitCost         decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_cost"`
	AvailableStock   int64           `gorm:"not null;default:0" json:"available_stock"`
	TotalCost        decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_cost"`
	Position         int             `gorm:"not null;default:0" json:"position"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func (c *BOMComponent) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (BOMComponent) TableName() string {
	return "bom_components"
}

// ManufactureOrder is a production run of a BOM
type ManufactureOrder struct {
	ID                uuid.UUID              `gorm:"type:char(36);primary_key" json:"id"`
	Number            string                 `gorm:"size:50;not null;uniqueIndex" json:"number"`
	BOMID             uuid.UUID              `gorm:"column:bom_id;type:char(36);not null;index" json:"bom_id"`
	BOMName           string                 `gorm:"column:bom_name;size:255" json:"bom_name"`
	FinalProductID    uuid.UUID              `gorm:"type:char(36);not null;index" json:"final_product_id"`
	ProductName       string                 `gorm:"size:255" json:"product_name"`
	WarehouseID       uuid.UUID              `gorm:"type:char(36);not null;index" json:"warehouse_id"`
	QuantityToProduce int64                  `gorm:"not null" json:"quantity_to_produce"`
	TotalCost         decimal.Decimal        `gorm:"type:decimal(20,4);not null;default:0" json:"total_cost"`
	Status            enum.ManufactureStatus `gorm:"size:20;not null;index" json:"status"`
	StartDate         time.Time              `gorm:"not null" json:"start_date"`
	CompletedDate     *time.Time             `json:"completed_date,omitempty"`
	Notes             *string                `gorm:"type:text" json:"notes,omitempty"`
	CreatedByID       uuid.UUID              `gorm:"type:char(36)" json:"created_by_id"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`

	// Relationships
	Warehouse      *Warehouse       `gorm:"foreignKey:WarehouseID" json:"warehouse,omitempty"`
	ComponentsUsed []ComponentUsage `gorm:"foreignKey:ManufactureOrderID" json:"components_used,omitempty"`
}

func (m *ManufactureOrder) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

func (ManufactureOrder) TableName() string {
	return "manufacture_orders"
}

// ComponentUsage is the frozen consumption of one component by an order
type ComponentUsage struct {
	ID                 uuid.UUID       `gorm:"type:char(36);primary_key" json:"id"`
	ManufactureOrderID uuid.UUID       `gorm:"type:char(36);not null;index" json:"manufacture_order_id"`
	ProductID          uuid.UUID       `gorm:"type:char(36);not null" json:"product_id"`
	ProductName        string          `gorm:"size:255" json:"product_name"`
	QuantityUsed       int64           `gorm:"not null" json:"quantity_used"`
	UnitCost           decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"unit_cost"`
	TotalCost          decimal.Decimal `gorm:"type:decimal(20,4);not null;default:0" json:"total_cost"`
}

func (c *ComponentUsage) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (ComponentUsage) TableName() string {
	return "manufacture_component_usages"
}
