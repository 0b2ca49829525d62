package handler

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/inventra-api/internal/application/service"
	"github.com/sangkips/inventra-api/internal/presentation/http/dto/response"
	"github.com/sangkips/inventra-api/pkg/excel"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetStats handles getting dashboard statistics
func (h *DashboardHandler) GetStats(c *gin.Context) {
	stats, err := h.dashboardService.GetDashboardStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard stats retrieved successfully", stats)
}

// ReportHandler serves spreadsheet exports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// ExportStock streams every stock item as a spreadsheet
func (h *ReportHandler) ExportStock(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportService.ExportStock(c.Request.Context(), &buf); err != nil {
		response.Error(c, err)
		return
	}

	filename := "stock-" + time.Now().UTC().Format("20060102") + ".xlsx"
	response.Attachment(c, filename, excel.ContentType, buf.Bytes())
}
