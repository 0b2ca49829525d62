package request

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// SaleItemRequest is one invoice line. UnitPrice defaults to the catalog price.
type SaleItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"omitempty,decimalgte0"`
}

// CreateSaleRequest represents an invoice
type CreateSaleRequest struct {
	CustomerID    *uuid.UUID         `json:"customer_id"`
	CustomerName  string             `json:"customer_name" binding:"max=255"`
	WarehouseID   *uuid.UUID         `json:"warehouse_id"`
	Items         []SaleItemRequest  `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal    `json:"discount" binding:"decimalgte0"`
	AmountPaid    decimal.Decimal    `json:"amount_paid" binding:"decimalgte0"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Notes         *string            `json:"notes"`
	Date          *time.Time         `json:"date"`
}

// SaleFilterRequest represents sale list filters
type SaleFilterRequest struct {
	Search        string     `form:"search"`
	Number        string     `form:"number"`
	CustomerID    string     `form:"customer_id"`
	Status        string     `form:"status"`
	PaymentStatus string     `form:"payment_status"`
	StartDate     *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate       *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page          int        `form:"page"`
	PerPage       int        `form:"per_page"`
}

// ReturnItemRequest is one returned line
type ReturnItemRequest struct {
	SaleItemID *uuid.UUID       `json:"sale_item_id"`
	ProductID  uuid.UUID        `json:"product_id" binding:"required"`
	Quantity   int64            `json:"quantity" binding:"min=0"`
	UnitPrice  *decimal.Decimal `json:"unit_price" binding:"omitempty,decimalgte0"`
}

// CreateReturnRequest represents a sale return
type CreateReturnRequest struct {
	SaleID       uuid.UUID           `json:"sale_id" binding:"required"`
	Items        []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
	Reason       string              `json:"reason" binding:"required,notblank,max=255"`
	RefundMethod enum.RefundMethod   `json:"refund_method" binding:"required"`
	Notes        *string             `json:"notes"`
}

// ReturnFilterRequest represents return list filters
type ReturnFilterRequest struct {
	Status  string `form:"status"`
	SaleID  string `form:"sale_id"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}

// PurchaseItemRequest is one purchase line. UnitCost defaults to the product cost.
type PurchaseItemRequest struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,min=1"`
	UnitCost  *decimal.Decimal `json:"unit_cost" binding:"omitempty,decimalgte0"`
}

// CreatePurchaseRequest represents a supplier purchase
type CreatePurchaseRequest struct {
	SupplierID  uuid.UUID             `json:"supplier_id" binding:"required"`
	WarehouseID uuid.UUID             `json:"warehouse_id" binding:"required"`
	Items       []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes       *string               `json:"notes"`
	Date        *time.Time            `json:"date"`
}

// PurchaseFilterRequest represents purchase list filters
type PurchaseFilterRequest struct {
	Search     string     `form:"search"`
	SupplierID string     `form:"supplier_id"`
	Status     string     `form:"status"`
	StartDate  *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate    *time.Time `form:"end_date" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PerPage    int        `form:"per_page"`
}

// ListFilterRequest carries the common list parameters
type ListFilterRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	BOMID   string `form:"bom_id"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
}
