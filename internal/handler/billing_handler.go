package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/repository"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// GenerateBillsRequest represents the request for generating one period of bills.
// Omitted rent_amount and utilities fall back to the values stored on the property.
type GenerateBillsRequest struct {
	PropertyID      uint                    `json:"property_id" binding:"required" example:"1"`
	Period          string                  `json:"period" binding:"required,period" example:"2025-03"`
	DueDate         string                  `json:"due_date,omitempty" example:"2025-03-05"`
	RentAmount      *float64                `json:"rent_amount,omitempty" binding:"omitempty,gte=0" example:"1200"`
	Utilities       []billing.Charge        `json:"utilities"`
	OtherFees       []billing.Charge        `json:"other_fees"`
	CustomSplits    []billing.Assignment    `json:"custom_splits"`
	FeeAssignments  []billing.FeeAssignment `json:"fee_assignments"`
}

// dueDate accepts YYYY-MM-DD or RFC 3339
func (r GenerateBillsRequest) dueDate() (*time.Time, error) {
	if r.DueDate == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", r.DueDate); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, r.DueDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// BillingHandler handles bill generation and listing HTTP requests
type BillingHandler struct {
	billService service.BillService
	logger      *logger.Logger
}

// NewBillingHandler creates a new BillingHandler instance
func NewBillingHandler(billService service.BillService, logger *logger.Logger) *BillingHandler {
	return &BillingHandler{
		billService: billService,
		logger:      logger,
	}
}

// GenerateBills replaces a property's bills for one period
// @Summary Generate bills
// @Description Split rent, utilities and fees of one property for one period across its tenants. Any earlier bills of that period are replaced.
// @Tags bills
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateBillsRequest true "Generation request"
// @Success 201 {object} utils.APIResponse{data=response.GenerateBillsResponse} "Bills generated"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Not your property"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Failure 409 {object} utils.APIResponse "Generation already running"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/generate [post]
func (h *BillingHandler) GenerateBills(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req GenerateBillsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid generate bills request")
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}
	due, err := req.dueDate()
	if err != nil {
		utils.BadRequestResponse(c, "due_date must be YYYY-MM-DD or RFC 3339", err)
		return
	}

	res, err := h.billService.Generate(c.Request.Context(), caller, service.GenerateInput{
		PropertyID:      req.PropertyID,
		Period:          req.Period,
		DueDate:         due,
		RentAmount:      req.RentAmount,
		Utilities:       req.Utilities,
		Fees:            req.OtherFees,
		PoolAssignments: req.CustomSplits,
		FeeAssignments:  req.FeeAssignments,
	})
	if err != nil {
		respondError(c, h.logger, "Failed to generate bills", err)
		return
	}

	utils.CreatedResponse(c, "Bills generated successfully", res)
}

// ListLandlordBills lists bills across the landlord's properties
// @Summary List landlord bills
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period (YYYY-MM)"
// @Param property_id query int false "Property ID"
// @Param status query string false "pending, paid or overdue"
// @Param page query int false "Page number, enables paging"
// @Param limit query int false "Items per page (default 20, max 100)"
// @Success 200 {object} utils.APIResponse{data=[]models.Bill}
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Router /api/v1/bills/landlord [get]
func (h *BillingHandler) ListLandlordBills(c *gin.Context) {
	h.listBills(c)
}

// ListTenantBills lists the tenant's own bills
// @Summary List tenant bills
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param period query string false "Period (YYYY-MM)"
// @Param status query string false "pending, paid or overdue"
// @Param page query int false "Page number, enables paging"
// @Param limit query int false "Items per page (default 20, max 100)"
// @Success 200 {object} utils.APIResponse{data=[]models.Bill}
// @Failure 400 {object} utils.APIResponse "Invalid filter"
// @Router /api/v1/bills/tenant [get]
func (h *BillingHandler) ListTenantBills(c *gin.Context) {
	h.listBills(c)
}

func (h *BillingHandler) listBills(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	filter, ok := billFilter(c)
	if !ok {
		return
	}

	bills, err := h.billService.ListBills(c.Request.Context(), caller, filter)
	if err != nil {
		respondError(c, h.logger, "Failed to list bills", err)
		return
	}
	if filter.Limit == 0 {
		utils.SuccessResponse(c, "Bills retrieved successfully", bills)
		return
	}

	total, err := h.billService.CountBills(c.Request.Context(), caller, filter)
	if err != nil {
		respondError(c, h.logger, "Failed to count bills", err)
		return
	}
	utils.PaginatedSuccessResponse(c, "Bills retrieved successfully", bills, filter.Page, filter.Limit, total)
}

// GetBill returns one bill to its tenant or the property's landlord
// @Summary Get bill
// @Tags bills
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bill ID"
// @Success 200 {object} utils.APIResponse{data=models.Bill}
// @Failure 403 {object} utils.APIResponse "Not your bill"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Router /api/v1/bills/{id} [get]
func (h *BillingHandler) GetBill(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	bill, err := h.billService.GetBill(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, h.logger, "Failed to get bill", err)
		return
	}
	utils.SuccessResponse(c, "Bill retrieved successfully", bill)
}

// billFilter reads period, property_id and status query parameters
func billFilter(c *gin.Context) (repository.BillFilter, bool) {
	filter := repository.BillFilter{
		Period: c.Query("period"),
		Status: billing.Status(c.Query("status")),
	}
	if c.Query("property_id") != "" {
		var q struct {
			PropertyID uint `form:"property_id" binding:"required"`
		}
		if err := c.ShouldBindQuery(&q); err != nil {
			utils.BadRequestResponse(c, "Invalid property_id", err)
			return filter, false
		}
		filter.PropertyID = q.PropertyID
	}
	if c.Query("page") != "" || c.Query("limit") != "" {
		q := struct {
			Page  int `form:"page" binding:"omitempty,min=1"`
			Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
		}{Page: 1, Limit: 20}
		if err := c.ShouldBindQuery(&q); err != nil {
			utils.BadRequestResponse(c, "Invalid page or limit", err)
			return filter, false
		}
		filter.Page, filter.Limit = q.Page, q.Limit
	}
	return filter, true
}
