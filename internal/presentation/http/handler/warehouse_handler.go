package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/inventra-api/internal/application/service"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/domain/repository"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/request"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/response"
)

// WarehouseHandler handles warehouse and stock HTTP requests
type WarehouseHandler struct {
	warehouseService *service.WarehouseService
	stockService     *service.StockService
}

// NewWarehouseHandler creates a new warehouse handler
func NewWarehouseHandler(warehouseService *service.WarehouseService, stockService *service.StockService) *WarehouseHandler {
	return &WarehouseHandler{
		warehouseService: warehouseService,
		stockService:     stockService,
	}
}

// List handles listing warehouses
func (h *WarehouseHandler) List(c *gin.Context) {
	result, err := h.warehouseService.ListWarehouses(c.Request.Context(), queryPage(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Warehouses retrieved successfully", result)
}

// Get handles getting a single warehouse
func (h *WarehouseHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "warehouse")
	if !ok {
		return
	}

	warehouse, err := h.warehouseService.GetWarehouse(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Warehouse retrieved successfully", warehouse)
}

// Create handles creating a warehouse
func (h *WarehouseHandler) Create(c *gin.Context) {
	var req request.CreateWarehouseRequest
	if !bindJSON(c, &req) {
		return
	}

	warehouse, err := h.warehouseService.CreateWarehouse(c.Request.Context(), &service.CreateWarehouseInput{
		Code:     req.Code,
		Name:     req.Name,
		Location: req.Location,
		Manager:  req.Manager,
		Phone:    req.Phone,
		Capacity: req.Capacity,
		Status:   req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Warehouse created successfully", warehouse)
}

// Update handles updating a warehouse
func (h *WarehouseHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "warehouse")
	if !ok {
		return
	}

	var req request.UpdateWarehouseRequest
	if !bindJSON(c, &req) {
		return
	}

	warehouse, err := h.warehouseService.UpdateWarehouse(c.Request.Context(), &service.UpdateWarehouseInput{
		ID:       id,
		Code:     req.Code,
		Name:     req.Name,
		Location: req.Location,
		Manager:  req.Manager,
		Phone:    req.Phone,
		Capacity: req.Capacity,
		Status:   req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Warehouse updated successfully", warehouse)
}

// Delete handles deleting a warehouse. Warehouses holding stock answer 409.
func (h *WarehouseHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "warehouse")
	if !ok {
		return
	}

	if err := h.warehouseService.DeleteWarehouse(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListStock handles listing stock items
func (h *WarehouseHandler) ListStock(c *gin.Context) {
	var filter request.StockFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.stockService.ListStock(c.Request.Context(), &repository.StockFilterParams{
		Pagination:  pageParams(filter.Page, filter.PerPage),
		WarehouseID: queryID(filter.WarehouseID),
		ProductID:   queryID(filter.ProductID),
		Status:      enum.StockStatus(filter.Status),
		Search:      filter.Search,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Stock retrieved successfully", result)
}

// GetStock handles getting a single stock item
func (h *WarehouseHandler) GetStock(c *gin.Context) {
	id, ok := pathID(c, "id", "stock item")
	if !ok {
		return
	}

	item, err := h.stockService.GetStockItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock item retrieved successfully", item)
}

// OpenStock places a product in a warehouse with its opening quantity
func (h *WarehouseHandler) OpenStock(c *gin.Context) {
	var req request.OpenStockItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.stockService.OpenStockItem(c.Request.Context(), &service.OpenStockItemInput{
		ProductID:   req.ProductID,
		WarehouseID: req.WarehouseID,
		Quantity:    req.Quantity,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock item created successfully", item)
}

// UpdateLimits changes the min/max thresholds of a stock item
func (h *WarehouseHandler) UpdateLimits(c *gin.Context) {
	id, ok := pathID(c, "id", "stock item")
	if !ok {
		return
	}

	var req request.StockLimitsRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.stockService.UpdateLimits(c.Request.Context(), id, req.MinStock, req.MaxStock)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock limits updated successfully", item)
}

// Adjust applies a stock adjustment
func (h *WarehouseHandler) Adjust(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "stock item")
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if !bindJSON(c, &req) {
		return
	}

	adjustment, err := h.stockService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		StockItemID:    id,
		AdjustmentType: req.AdjustmentType,
		Quantity:       req.Quantity,
		Reason:         req.Reason,
		Notes:          req.Notes,
		Actor:          actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Stock adjusted successfully", adjustment)
}

// ListAdjustments handles listing the adjustment history
func (h *WarehouseHandler) ListAdjustments(c *gin.Context) {
	var filter request.StockFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.stockService.ListAdjustments(c.Request.Context(), &repository.AdjustmentFilterParams{
		Pagination:  pageParams(filter.Page, filter.PerPage),
		WarehouseID: queryID(filter.WarehouseID),
		ProductID:   queryID(filter.ProductID),
		StockItemID: queryID(filter.StockItemID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Adjustments retrieved successfully", result)
}

// TransferHandler handles warehouse transfer HTTP requests
type TransferHandler struct {
	transferService *service.TransferService
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(transferService *service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// List handles listing transfers
func (h *TransferHandler) List(c *gin.Context) {
	var filter request.TransferFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.transferService.ListTransfers(c.Request.Context(), &repository.TransferFilterParams{
		Pagination:  pageParams(filter.Page, filter.PerPage),
		Status:      enum.TransferStatus(filter.Status),
		WarehouseID: queryID(filter.WarehouseID),
		ProductID:   queryID(filter.ProductID),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transfers retrieved successfully", result)
}

// Get handles getting a single transfer
func (h *TransferHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "transfer")
	if !ok {
		return
	}

	transfer, err := h.transferService.GetTransfer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer retrieved successfully", transfer)
}

// Create handles requesting a transfer
func (h *TransferHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req request.CreateTransferRequest
	if !bindJSON(c, &req) {
		return
	}

	transfer, err := h.transferService.CreateTransfer(c.Request.Context(), &service.CreateTransferInput{
		ProductID:       req.ProductID,
		FromWarehouseID: req.FromWarehouseID,
		ToWarehouseID:   req.ToWarehouseID,
		Quantity:        req.Quantity,
		Notes:           req.Notes,
		Actor:           actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transfer created successfully", transfer)
}

// UpdateStatus moves a transfer along pending, in-transit, completed or cancelled
func (h *TransferHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "transfer")
	if !ok {
		return
	}

	var req request.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	transfer, err := h.transferService.UpdateTransferStatus(c.Request.Context(), id, enum.TransferStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transfer status updated successfully", transfer)
}
