package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/inventra-api/internal/application/service"
	"github.com/sangkips/inventra-api/internal/domain/enum"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/request"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/response"
)

// BOMHandler handles bill of materials HTTP requests
type BOMHandler struct {
	bomService *service.BOMService
}

// NewBOMHandler creates a new BOM handler
func NewBOMHandler(bomService *service.BOMService) *BOMHandler {
	return &BOMHandler{bomService: bomService}
}

func componentInputs(reqs []request.ComponentRequest) []service.ComponentInput {
	if reqs == nil {
		return nil
	}
	inputs := make([]service.ComponentInput, len(reqs))
	for i, r := range reqs {
		inputs[i] = service.ComponentInput{
			ProductID:        r.ProductID,
			QuantityRequired: r.QuantityRequired,
			UnitCost:         r.UnitCost,
		}
	}
	return inputs
}

// List handles listing BOMs
func (h *BOMHandler) List(c *gin.Context) {
	var filter request.ListFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.bomService.ListBOMs(c.Request.Context(), pageParams(filter.Page, filter.PerPage), filter.Search, enum.RecordStatus(filter.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "BOMs retrieved successfully", result)
}

// Get handles getting a single BOM with its components
func (h *BOMHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "BOM")
	if !ok {
		return
	}

	b, err := h.bomService.GetBOM(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "BOM retrieved successfully", b)
}

// Create handles creating a BOM
func (h *BOMHandler) Create(c *gin.Context) {
	var req request.CreateBOMRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.bomService.CreateBOM(c.Request.Context(), &service.CreateBOMInput{
		Code:           req.Code,
		Name:           req.Name,
		FinalProductID: req.FinalProductID,
		Description:    req.Description,
		EstimatedTime:  req.EstimatedTime,
		Status:         req.Status,
		Components:     componentInputs(req.Components),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "BOM created successfully", b)
}

// Update handles updating a BOM
func (h *BOMHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", "BOM")
	if !ok {
		return
	}

	var req request.UpdateBOMRequest
	if !bindJSON(c, &req) {
		return
	}

	b, err := h.bomService.UpdateBOM(c.Request.Context(), &service.UpdateBOMInput{
		ID:            id,
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		EstimatedTime: req.EstimatedTime,
		Status:        req.Status,
		Components:    componentInputs(req.Components),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "BOM updated successfully", b)
}

// Delete handles deleting a BOM. BOMs with open manufacture orders answer 409.
func (h *BOMHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", "BOM")
	if !ok {
		return
	}

	if err := h.bomService.DeleteBOM(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Availability reports whether quantity units can be produced from live stock
func (h *BOMHandler) Availability(c *gin.Context) {
	id, ok := pathID(c, "id", "BOM")
	if !ok {
		return
	}

	var req request.AvailabilityRequest
	if !bindQuery(c, &req) {
		return
	}

	availability, err := h.bomService.CheckAvailability(c.Request.Context(), id, req.Quantity, queryID(req.WarehouseID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Availability checked successfully", availability)
}

// ManufactureHandler handles manufacture order HTTP requests
type ManufactureHandler struct {
	manufactureService *service.ManufactureService
}

// NewManufactureHandler creates a new manufacture handler
func NewManufactureHandler(manufactureService *service.ManufactureService) *ManufactureHandler {
	return &ManufactureHandler{manufactureService: manufactureService}
}

// List handles listing manufacture orders
func (h *ManufactureHandler) List(c *gin.Context) {
	var filter request.ListFilterRequest
	if !bindQuery(c, &filter) {
		return
	}

	result, err := h.manufactureService.ListManufactureOrders(
		c.Request.Context(),
		pageParams(filter.Page, filter.PerPage),
		enum.ManufactureStatus(filter.Status),
		queryID(filter.BOMID),
	)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Manufacture orders retrieved successfully", result)
}

// Get handles getting a single manufacture order
func (h *ManufactureHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", "manufacture order")
	if !ok {
		return
	}

	order, err := h.manufactureService.GetManufactureOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Manufacture order retrieved successfully", order)
}

// Create handles creating a manufacture order
func (h *ManufactureHandler) Create(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req request.CreateManufactureOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.manufactureService.CreateManufactureOrder(c.Request.Context(), &service.CreateManufactureOrderInput{
		BOMID:             req.BOMID,
		WarehouseID:       req.WarehouseID,
		QuantityToProduce: req.QuantityToProduce,
		StartDate:         req.StartDate,
		Notes:             req.Notes,
		Actor:             actor,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Manufacture order created successfully", order)
}

// UpdateStatus moves an order along its state machine; completion consumes components
func (h *ManufactureHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id", "manufacture order")
	if !ok {
		return
	}

	var req request.StatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := h.manufactureService.UpdateManufactureStatus(c.Request.Context(), id, enum.ManufactureStatus(req.Status))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Manufacture order status updated successfully", order)
}
