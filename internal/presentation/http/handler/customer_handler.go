package handler

import (
	"bytes"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/inventra-api/internal/application/service"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/request"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/response"
	"github.com/sangkips/inventra-api/pkg/excel"
	"github.com/sangkips/inventra-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
	reportService   *service.ReportService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService, reportService *service.ReportService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		reportService:   reportService,
	}
}

// List handles listing customers (supports both page-based and cursor-based pagination)
func (h *CustomerHandler) List(c *gin.Context) {
	var filter request.PartyFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	if filter.Cursor != "" || filter.Limit > 0 {
		h.listWithCursor(c, &filter)
		return
	}

	result, err := h.customerService.ListCustomers(c.Request.Context(), pageParams(filter.Page, filter.PerPage), filter.Search, enum.RecordStatus(filter.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// listWithCursor handles listing customers with cursor-based pagination
func (h *CustomerHandler) listWithCursor(c *gin.Context, filter *request.PartyFilterRequest) {
	limit := 15
	if filter.Limit > 0 {
		limit = filter.Limit
	}

	result, err := h.customerService.ListCustomersWithCursor(c.Request.Context(), &pagination.CursorParams{
		Cursor:    filter.Cursor,
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}, filter.Search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		CustomerType: req.CustomerType,
		CompanyName:  req.CompanyName,
		TaxID:        req.TaxID,
		CreditLimit:  req.CreditLimit,
		Status:       req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		Country:      req.Country,
		CustomerType: req.CustomerType,
		CompanyName:  req.CompanyName,
		TaxID:        req.TaxID,
		CreditLimit:  req.CreditLimit,
		Status:       req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer. Customers with payments or sales answer 409.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// RecordPayment records a payment received from the customer
func (h *CustomerHandler) RecordPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.customerService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		CounterpartyID: id,
		Amount:         req.Amount,
		Method:         req.Method,
		Reference:      req.Reference,
		Notes:          req.Notes,
		Date:           req.Date,
		Actor:          actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// DeletePayment reverses a payment
func (h *CustomerHandler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "paymentId", "payment")
	if !ok {
		return
	}

	if err := h.customerService.DeletePayment(c.Request.Context(), id, paymentID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListPayments handles listing a customer's payments
func (h *CustomerHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	result, err := h.customerService.ListPayments(c.Request.Context(), id, queryPage(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Ledger handles listing a customer's ledger, newest first
func (h *CustomerHandler) Ledger(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	result, err := h.customerService.ListLedger(c.Request.Context(), id, queryPage(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Ledger retrieved successfully", result)
}

// Statement returns the customer with the full ledger in posting order
func (h *CustomerHandler) Statement(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	customer, entries, err := h.customerService.Statement(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Statement retrieved successfully", gin.H{
		"customer": customer,
		"entries":  entries,
	})
}

// ExportLedger streams the customer's ledger as a spreadsheet
func (h *CustomerHandler) ExportLedger(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	var buf bytes.Buffer
	filename, err := h.reportService.ExportCustomerLedger(c.Request.Context(), id, &buf)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, filename, excel.ContentType, buf.Bytes())
}

// Reconcile re-derives the balance from the account totals
func (h *CustomerHandler) Reconcile(c *gin.Context) {
	id, ok := pathID(c, "id", "customer")
	if !ok {
		return
	}

	result, err := h.customerService.ReconcileCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer reconciled successfully", result)
}

// SupplierHandler handles supplier-related HTTP requests
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	var filter request.PartyFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.supplierService.ListSuppliers(c.Request.Context(), pageParams(filter.Page, filter.PerPage), filter.Search, enum.RecordStatus(filter.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Suppliers retrieved successfully", result)
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req request.CreateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), &service.CreateSupplierInput{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		TaxID:   req.TaxID,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// Get handles getting a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Update handles updating a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}

	var req request.UpdateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), &service.UpdateSupplierInput{
		ID:      id,
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Country: req.Country,
		TaxID:   req.TaxID,
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// Delete handles deleting a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// RecordPayment records a payment made to the supplier
func (h *SupplierHandler) RecordPayment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}

	var req request.PaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.supplierService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		CounterpartyID: id,
		Amount:         req.Amount,
		Method:         req.Method,
		Reference:      req.Reference,
		Notes:          req.Notes,
		Date:           req.Date,
		Actor:          actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// DeletePayment reverses a supplier payment
func (h *SupplierHandler) DeletePayment(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}
	paymentID, ok := pathID(c, "paymentId", "payment")
	if !ok {
		return
	}

	if err := h.supplierService.DeletePayment(c.Request.Context(), id, paymentID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListPayments handles listing a supplier's payments
func (h *SupplierHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}

	result, err := h.supplierService.ListPayments(c.Request.Context(), id, queryPage(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Payments retrieved successfully", result)
}

// Reconcile re-derives the supplier balance from the account totals
func (h *SupplierHandler) Reconcile(c *gin.Context) {
	id, ok := pathID(c, "id", "supplier")
	if !ok {
		return
	}

	result, err := h.supplierService.ReconcileSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier reconciled successfully", result)
}
