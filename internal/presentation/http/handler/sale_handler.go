package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/inventra-api/internal/application/service"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/request"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/response"
)

// SaleHandler handles invoice HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.saleService.ListSales(c.Request.Context(), &repository.SaleFilterParams{
		Pagination:    pageParams(filter.Page, filter.PerPage),
		Search:        filter.Search,
		Number:        strings.TrimSpace(filter.Number),
		CustomerID:    queryID(filter.CustomerID),
		Status:        enum.SaleStatus(filter.Status),
		PaymentStatus: enum.PaymentStatus(filter.PaymentStatus),
		StartDate:     filter.StartDate,
		EndDate:       filter.EndDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles getting a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "sale")
	if !ok {
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// Create handles creating a sale
func (h *SaleHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req request.CreateSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.SaleItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.SaleItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	sale, err := h.saleService.CreateSale(c.Request.Context(), &service.CreateSaleInput{
		CustomerID:    req.CustomerID,
		CustomerName:  req.CustomerName,
		WarehouseID:   req.WarehouseID,
		Items:         items,
		Discount:      req.Discount,
		AmountPaid:    req.AmountPaid,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
		Date:          req.Date,
		Actor:         actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale created successfully", sale)
}

// ReturnHandler handles sale return HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// List handles listing sale returns
func (h *ReturnHandler) List(c *gin.Context) {
	var filter request.ReturnFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.returnService.ListReturns(
		c.Request.Context(),
		pageParams(filter.Page, filter.PerPage),
		enum.ReturnStatus(filter.Status),
		queryID(filter.SaleID),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Returns retrieved successfully", result)
}

// Get handles getting a single sale return
func (h *ReturnHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "return")
	if !ok {
		return
	}

	ret, err := h.returnService.GetReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return retrieved successfully", ret)
}

// Create handles requesting a sale return
func (h *ReturnHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req request.CreateReturnRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]service.ReturnItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.ReturnItemInput{
			SaleItemID: item.SaleItemID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
		}
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), &service.CreateReturnInput{
		SaleID:       req.SaleID,
		Items:        items,
		Reason:       req.Reason,
		RefundMethod: req.RefundMethod,
		Notes:        req.Notes,
		Actor:        actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Return created successfully", ret)
}

// Approve approves a pending return
func (h *ReturnHandler) Approve(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "return")
	if !ok {
		return
	}

	ret, err := h.returnService.ApproveReturn(c.Request.Context(), id, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return approved successfully", ret)
}

// Reject rejects a pending return
func (h *ReturnHandler) Reject(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "return")
	if !ok {
		return
	}

	ret, err := h.returnService.RejectReturn(c.Request.Context(), id, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Return rejected successfully", ret)
}
