package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// ComponentRequest is one line of a bill of materials
type ComponentRequest struct {
	ProductID        uuid.UUID        `json:"product_id" binding:"required"`
	QuantityRequired int64            `json:"quantity_required" binding:"required,min=1"`
	UnitCost         *decimal.Decimal `json:"unit_cost" binding:"omitempty,decimalgte0"`
}

// CreateBOMRequest represents a bill of materials creation request
type CreateBOMRequest struct {
	Code           string             `json:"code" binding:"required,notblank,max=50"`
	Name           string             `json:"name" binding:"required,notblank,max=255"`
	FinalProductID uuid.UUID          `json:"final_product_id" binding:"required"`
	Description    *string            `json:"description"`
	EstimatedTime  int64              `json:"estimated_time" binding:"min=0"`
	Status         enum.RecordStatus  `json:"status" binding:"omitempty,oneof=active inactive"`
	Components     []ComponentRequest `json:"components" binding:"required,min=1,dive"`
}

// UpdateBOMRequest represents a bill of materials update request.
// Components replace the whole list when present.
type UpdateBOMRequest struct {
	Code          *string            `json:"code" binding:"omitempty,notblank,max=50"`
	Name          *string            `json:"name" binding:"omitempty,notblank,max=255"`
	Description   *string            `json:"description"`
	EstimatedTime *int64             `json:"estimated_time" binding:"omitempty,min=0"`
	Status        *enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
	Components    []ComponentRequest `json:"components" binding:"omitempty,dive"`
}

// AvailabilityRequest asks whether a BOM can be produced
type AvailabilityRequest struct {
	Quantity    int64  `form:"quantity" binding:"required,min=1"`
	WarehouseID string `form:"warehouse_id"`
}

// CreateManufactureOrderRequest represents a manufacture order creation request
type CreateManufactureOrderRequest struct {
	BOMID             uuid.UUID  `json:"bom_id" binding:"required"`
	WarehouseID       uuid.UUID  `json:"warehouse_id" binding:"required"`
	QuantityToProduce int64      `json:"quantity_to_produce" binding:"required,min=1"`
	StartDate         *time.Time `json:"start_date"`
	Notes             *string    `json:"notes"`
}

// StatusRequest moves a document through its state machine
type StatusRequest struct {
	Status string `json:"status" binding:"required,notblank"`
}
