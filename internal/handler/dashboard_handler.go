package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// DashboardHandler handles bill summary and export HTTP requests
type DashboardHandler struct {
	billService service.BillService
	logger      *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(billService service.BillService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		billService: billService,
		logger:      logger,
	}
}

// TenantSummary handles GET /api/v1/bills/summary
// @Summary Tenant bill summary
// @Description Counts and totals of the tenant's bills by status, for one period or overall
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period (YYYY-MM)"
// @Success 200 {object} utils.APIResponse{data=response.BillSummaryResponse}
// @Failure 400 {object} utils.APIResponse "Invalid period"
// @Router /api/v1/bills/summary [get]
func (h *DashboardHandler) TenantSummary(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	summary, err := h.billService.TenantSummary(c.Request.Context(), caller, c.Query("period"))
	if err != nil {
		respondError(c, h.logger, "Failed to get bill summary", err)
		return
	}
	utils.SuccessResponse(c, "Bill summary retrieved successfully", summary)
}

// LandlordSummary handles GET /api/v1/bills/landlord/summary
// @Summary Landlord bill summary
// @Description Counts and totals by status, overall and per property
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period (YYYY-MM)"
// @Success 200 {object} utils.APIResponse{data=response.LandlordBillSummaryResponse}
// @Failure 400 {object} utils.APIResponse "Invalid period"
// @Router /api/v1/bills/landlord/summary [get]
func (h *DashboardHandler) LandlordSummary(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	summary, err := h.billService.LandlordSummary(c.Request.Context(), caller, c.Query("period"))
	if err != nil {
		respondError(c, h.logger, "Failed to get bill summary", err)
		return
	}
	utils.SuccessResponse(c, "Bill summary retrieved successfully", summary)
}

// ExportLandlordBills handles GET /api/v1/bills/landlord/export
// @Summary Export landlord bills
// @Description Download the landlord's bills as an Excel workbook
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param period query string false "Period (YYYY-MM)"
// @Param property_id query int false "Property ID"
// @Param status query string false "pending, paid or overdue"
// @Success 200 {file} file "Excel workbook"
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Router /api/v1/bills/landlord/export [get]
func (h *DashboardHandler) ExportLandlordBills(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	filter, ok := billFilter(c)
	if !ok {
		return
	}

	data, filename, err := h.billService.ExportLandlordBills(c.Request.Context(), caller, filter)
	if err != nil {
		respondError(c, h.logger, "Failed to export bills", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
