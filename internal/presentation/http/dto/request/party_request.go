package request

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/inventra-api/internal/domain/enum"
)

// CreateCustomerRequest represents a customer creation request
type CreateCustomerRequest struct {
	Name         string            `json:"name" binding:"required,notblank,max=255"`
	Email        string            `json:"email" binding:"required,email"`
	Phone        *string           `json:"phone"`
	Address      *string           `json:"address"`
	City         *string           `json:"city"`
	Country      *string           `json:"country"`
	CustomerType enum.CustomerType `json:"customer_type" binding:"omitempty,oneof=individual business"`
	CompanyName  *string           `json:"company_name"`
	TaxID        *string           `json:"tax_id"`
	CreditLimit  decimal.Decimal   `json:"credit_limit" binding:"decimalgte0"`
	Status       enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateCustomerRequest represents a customer update request
type UpdateCustomerRequest struct {
	Name         *string            `json:"name" binding:"omitempty,notblank,max=255"`
	Email        *string            `json:"email" binding:"omitempty,email"`
	Phone        *string            `json:"phone"`
	Address      *string            `json:"address"`
	City         *string            `json:"city"`
	Country      *string            `json:"country"`
	CustomerType *enum.CustomerType `json:"customer_type" binding:"omitempty,oneof=individual business"`
	CompanyName  *string            `json:"company_name"`
	TaxID        *string            `json:"tax_id"`
	CreditLimit  *decimal.Decimal   `json:"credit_limit" binding:"omitempty,decimalgte0"`
	Status       *enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreateSupplierRequest represents a supplier creation request
type CreateSupplierRequest struct {
	Name    string            `json:"name" binding:"required,notblank,max=255"`
	Company *string           `json:"company"`
	Email   string            `json:"email" binding:"required,email"`
	Phone   *string           `json:"phone"`
	Address *string           `json:"address"`
	City    *string           `json:"city"`
	Country *string           `json:"country"`
	TaxID   *string           `json:"tax_id"`
	Status  enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// UpdateSupplierRequest represents a supplier update request
type UpdateSupplierRequest struct {
	Name    *string            `json:"name" binding:"omitempty,notblank,max=255"`
	Company *string            `json:"company"`
	Email   *string            `json:"email" binding:"omitempty,email"`
	Phone   *string            `json:"phone"`
	Address *string            `json:"address"`
	City    *string            `json:"city"`
	Country *string            `json:"country"`
	TaxID   *string            `json:"tax_id"`
	Status  *enum.RecordStatus `json:"status" binding:"omitempty,oneof=active inactive"`
}

// PaymentRequest records a payment against a customer or supplier
type PaymentRequest struct {
	Amount    decimal.Decimal    `json:"amount" binding:"decimalgt0"`
	Method    enum.PaymentMethod `json:"method" binding:"required"`
	Reference *string            `json:"reference"`
	Notes     *string            `json:"notes"`
	Date      *time.Time         `json:"date"`
}

// PartyFilterRequest represents customer and supplier list filters
type PartyFilterRequest struct {
	Search  string `form:"search"`
	Status  string `form:"status"`
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Cursor  string `form:"cursor"`
	Limit   int    `form:"limit"`
}
