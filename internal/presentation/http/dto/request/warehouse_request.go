package request

import (
	"github.com/google/uuid"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// CreateWarehouseRequest represents a warehouse creation request
type CreateWarehouseRequest struct {
	Code     string            `json:"code" binding:"required,notblank,max=50"`
	Name     string            `json:"name" binding:"required,notblank,max=255"`
	Location string            `json:"location" binding:"max=255"`
	Manager  string            `json:"manager" binding:"max=255"`
	Phone    *string           `json:"phone"`
	Capacity int64             `json:"capacity" binding:"min=0"`
	Status   enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateWarehouseRequest represents a warehouse update request
type UpdateWarehouseRequest struct {
	Code     *string            `json:"code" binding:"omitempty,notblank,max=50"`
	Name     *string            `json:"name" binding:"omitempty,notblank,max=255"`
	Location *string            `json:"location" binding:"omitempty,max=255"`
	Manager  *string            `json:"manager" binding:"omitempty,max=255"`
	Phone    *string            `json:"phone"`
	Capacity *int64             `json:"capacity" binding:"omitempty,min=0"`
	Status   *enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// OpenStockItemRequest places a product in a warehouse
type OpenStockItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID `json:"warehouse_id" binding:"required"`
	Quantity    int64     `json:"quantity" binding:"min=0"`
	MinStock    *int64    `json:"min_stock" binding:"omitempty,min=0"`
	MaxStock    int64     `json:"max_stock" binding:"min=0"`
}

// StockLimitsRequest updates the thresholds of a stock item
type StockLimitsRequest struct {
	MinStock *int64 `json:"min_stock" binding:"omitempty,min=0"`
	MaxStock *int64 `json:"max_stock" binding:"omitempty,min=0"`
}

// AdjustStockRequest represents a stock adjustment
type AdjustStockRequest struct {
	AdjustmentType enum.AdjustmentType `json:"adjustment_type" binding:"required,oneof=add remove set"`
	Quantity       int64               `json:"quantity" binding:"min=0"`
	Reason         string              `json:"reason" binding:"required,notblank,max=255"`
	Notes          *string             `json:"notes"`
}

// StockFilterRequest represents stock and adjustment list filters
type StockFilterRequest struct {
	WarehouseID string `form:"warehouse_id"`
	ProductID   string `form:"product_id"`
	StockItemID string `form:"stock_item_id"`
	Status      string `form:"status"`
	Search      string `form:"search"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}

// CreateTransferRequest represents a transfer request between warehouses
type CreateTransferRequest struct {
	ProductID       uuid.UUID `json:"product_id" binding:"required"`
	FromWarehouseID uuid.UUID `json:"from_warehouse_id" binding:"required"`
	ToWarehouseID   uuid.UUID `json:"to_warehouse_id" binding:"required,nefield=FromWarehouseID"`
	Quantity        int64     `json:"quantity" binding:"required,min=1"`
	Notes           *string   `json:"notes"`
}

// TransferFilterRequest represents transfer list filters
type TransferFilterRequest struct {
	Status      string `form:"status"`
	WarehouseID string `form:"warehouse_id"`
	ProductID   string `form:"product_id"`
	Page        int    `form:"page"`
	PerPage     int    `form:"per_page"`
}
