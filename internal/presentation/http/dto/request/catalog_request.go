package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// CreateProductRequest represents a product creation request
type CreateProductRequest struct {
	SKU         string            `json:"sku" binding:"required,notblank,max=100"`
	Name        string            `json:"name" binding:"required,notblank,max=255"`
	Description *string           `json:"description"`
	CategoryID  *uuid.UUID        `json:"category_id"`
	BrandID     *uuid.UUID        `json:"brand_id"`
	Price       decimal.Decimal   `json:"price" binding:"decimalgte0"`
	Cost        decimal.Decimal   `json:"cost" binding:"decimalgte0"`
	MinStock    int64             `json:"min_stock" binding:"min=0"`
	Unit        string            `json:"unit" binding:"max=30"`
	Status      enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateProductRequest represents a product update request
type UpdateProductRequest struct {
	SKU         *string            `json:"sku" binding:"omitempty,notblank,max=100"`
	Name        *string            `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string            `json:"description"`
	CategoryID  *uuid.UUID         `json:"category_id"`
	BrandID     *uuid.UUID         `json:"brand_id"`
	Price       *decimal.Decimal   `json:"price" binding:"omitempty,decimalgte0"`
	Cost        *decimal.Decimal   `json:"cost" binding:"omitempty,decimalgte0"`
	MinStock    *int64             `json:"min_stock" binding:"omitempty,min=0"`
	Unit        *string            `json:"unit" binding:"omitempty,max=30"`
	Status      *enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id"`
	BrandID    string `form:"brand_id"`
	Status     string `form:"status"`
	SortBy     string `form:"sort_by"`
	SortOrder  string `form:"sort_order"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
	Limit      int    `form:"limit"` // For cursor-based pagination
}

// NamedRequest creates or renames a category or a brand
type NamedRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=255"`
	Description *string `json:"description"`
}

// UpdateNamedRequest updates a category or a brand
type UpdateNamedRequest struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description"`
}
