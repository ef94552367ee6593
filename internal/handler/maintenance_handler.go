package handler

import (
	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/models"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// CreateMaintenanceRequest represents a tenant's maintenance request
type CreateMaintenanceRequest struct {
	PropertyID  uint   `json:"property_id" binding:"required" example:"1"`
	Title       string `json:"title" binding:"required" example:"Leaking tap"`
	Description string `json:"description" binding:"required" example:"Kitchen tap drips all night"`
}

// UpdateMaintenanceStatusRequest represents a landlord's status change
type UpdateMaintenanceStatusRequest struct {
	Status        string   `json:"status" binding:"required,oneof=pending in_progress resolved rejected" example:"in_progress"`
	LandlordNotes *string  `json:"landlord_notes,omitempty" example:"Plumber booked for Monday"`
	CostAmount    *float64 `json:"cost_amount,omitempty" binding:"omitempty,gte=0" example:"80"`
}

// MaintenanceHandler handles maintenance HTTP requests
type MaintenanceHandler struct {
	maintenanceService service.MaintenanceService
	logger             *logger.Logger
}

// NewMaintenanceHandler creates a new maintenance handler
func NewMaintenanceHandler(maintenanceService service.MaintenanceService, logger *logger.Logger) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenanceService: maintenanceService,
		logger:             logger,
	}
}

// CreateRequest handles POST /api/v1/maintenance
// @Summary Create maintenance request
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateMaintenanceRequest true "Request"
// @Success 201 {object} utils.APIResponse{data=models.MaintenanceRequest}
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Not a tenant of the property"
// @Router /api/v1/maintenance [post]
func (h *MaintenanceHandler) CreateRequest(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req CreateMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	created, err := h.maintenanceService.Create(c.Request.Context(), caller, req.PropertyID, req.Title, req.Description)
	if err != nil {
		respondError(c, h.logger, "Failed to create maintenance request", err)
		return
	}
	utils.CreatedResponse(c, "Maintenance request created successfully", created)
}

// ListRequests handles GET /api/v1/maintenance/rentee and /api/v1/maintenance/landlord
// @Summary List maintenance requests
// @Description Tenants get their own requests, landlords every request on their properties
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.MaintenanceRequest}
// @Router /api/v1/maintenance/rentee [get]
// @Router /api/v1/maintenance/landlord [get]
func (h *MaintenanceHandler) ListRequests(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	reqs, err := h.maintenanceService.List(c.Request.Context(), caller)
	if err != nil {
		respondError(c, h.logger, "Failed to list maintenance requests", err)
		return
	}
	utils.SuccessResponse(c, "Maintenance requests retrieved successfully", reqs)
}

// ListPropertyRequests handles GET /api/v1/maintenance/property/:property_id
// @Summary List maintenance requests of a property
// @Tags maintenance
// @Produce json
// @Security BearerAuth
// @Param property_id path int true "Property ID"
// @Success 200 {object} utils.APIResponse{data=[]models.MaintenanceRequest}
// @Failure 403 {object} utils.APIResponse "Not your property"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/maintenance/property/{property_id} [get]
func (h *MaintenanceHandler) ListPropertyRequests(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	propertyID, ok := paramID(c, "property_id")
	if !ok {
		return
	}
	reqs, err := h.maintenanceService.ListForProperty(c.Request.Context(), caller, propertyID)
	if err != nil {
		respondError(c, h.logger, "Failed to list maintenance requests", err)
		return
	}
	utils.SuccessResponse(c, "Maintenance requests retrieved successfully", reqs)
}

// UpdateStatus handles PUT /api/v1/maintenance/:id/status
// @Summary Update maintenance request status
// @Tags maintenance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Maintenance request ID"
// @Param request body UpdateMaintenanceStatusRequest true "Status change"
// @Success 200 {object} utils.APIResponse{data=models.MaintenanceRequest}
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Not your property"
// @Failure 404 {object} utils.APIResponse "Request not found"
// @Router /api/v1/maintenance/{id}/status [put]
func (h *MaintenanceHandler) UpdateStatus(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req UpdateMaintenanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	updated, err := h.maintenanceService.UpdateStatus(c.Request.Context(), caller, id, service.MaintenanceUpdateInput{
		Status:        models.MaintenanceStatus(req.Status),
		LandlordNotes: req.LandlordNotes,
		CostAmount:    req.CostAmount,
	})
	if err != nil {
		respondError(c, h.logger, "Failed to update maintenance request", err)
		return
	}
	utils.SuccessResponse(c, "Maintenance request updated successfully", updated)
}
