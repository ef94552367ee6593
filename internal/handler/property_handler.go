package handler

import (
	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/models"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// PropertyRequest represents the create and update property payload
type PropertyRequest struct {
	Name       string                 `json:"name" binding:"required" example:"Maple House"`
	Address    models.Address         `json:"address"`
	RentAmount float64                `json:"rent_amount" binding:"gte=0" example:"1200"`
	Utilities  []models.UtilityCharge `json:"utilities"`
}

func (r PropertyRequest) input() service.PropertyInput {
	return service.PropertyInput{
		Name:       r.Name,
		Address:    r.Address,
		RentAmount: r.RentAmount,
		Utilities:  r.Utilities,
	}
}

// AddTenantRequest identifies a property and a tenant account by email
type AddTenantRequest struct {
	PropertyID uint   `json:"property_id" binding:"required" example:"1"`
	Email      string `json:"email" binding:"required,email" example:"ari@example.com"`
}

// PropertyHandler handles property HTTP requests
type PropertyHandler struct {
	propertyService service.PropertyService
	logger          *logger.Logger
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService service.PropertyService, logger *logger.Logger) *PropertyHandler {
	return &PropertyHandler{
		propertyService: propertyService,
		logger:          logger,
	}
}

// CreateProperty handles POST /api/v1/properties
// @Summary Create property
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PropertyRequest true "Property"
// @Success 201 {object} utils.APIResponse{data=models.Property}
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Landlords only"
// @Router /api/v1/properties [post]
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	property, err := h.propertyService.Create(c.Request.Context(), caller, req.input())
	if err != nil {
		respondError(c, h.logger, "Failed to create property", err)
		return
	}
	utils.CreatedResponse(c, "Property created successfully", property)
}

// ListProperties handles GET /api/v1/properties/landlord and /api/v1/properties/rentee
// @Summary List properties
// @Description Landlords get the properties they own, tenants the properties they rent
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Property}
// @Router /api/v1/properties/landlord [get]
// @Router /api/v1/properties/rentee [get]
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	properties, err := h.propertyService.List(c.Request.Context(), caller)
	if err != nil {
		respondError(c, h.logger, "Failed to list properties", err)
		return
	}
	utils.SuccessResponse(c, "Properties retrieved successfully", properties)
}

// GetProperty handles GET /api/v1/properties/:id
// @Summary Get property
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Success 200 {object} utils.APIResponse{data=models.Property}
// @Failure 403 {object} utils.APIResponse "Not your property"
// @Failure 404 {object} utils.APIResponse "Property not found"
// @Router /api/v1/properties/{id} [get]
func (h *PropertyHandler) GetProperty(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	property, err := h.propertyService.Get(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, h.logger, "Failed to get property", err)
		return
	}
	utils.SuccessResponse(c, "Property retrieved successfully", property)
}

// UpdateProperty handles PUT /api/v1/properties/:id
// @Summary Update property
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param request body PropertyRequest true "Property"
// @Success 200 {object} utils.APIResponse{data=models.Property}
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 403 {object} utils.APIResponse "Not your property"
// @Router /api/v1/properties/{id} [put]
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req PropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	property, err := h.propertyService.Update(c.Request.Context(), caller, id, req.input())
	if err != nil {
		respondError(c, h.logger, "Failed to update property", err)
		return
	}
	utils.SuccessResponse(c, "Property updated successfully", property)
}

// AddTenant handles POST /api/v1/properties/add-tenant
// @Summary Add tenant to property
// @Tags properties
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddTenantRequest true "Property and tenant email"
// @Success 200 {object} utils.APIResponse{data=models.Property}
// @Failure 404 {object} utils.APIResponse "Tenant not found"
// @Failure 409 {object} utils.APIResponse "Tenant already assigned"
// @Router /api/v1/properties/add-tenant [post]
func (h *PropertyHandler) AddTenant(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	var req AddTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	property, err := h.propertyService.AddTenant(c.Request.Context(), caller, req.PropertyID, req.Email)
	if err != nil {
		respondError(c, h.logger, "Failed to add tenant", err)
		return
	}
	utils.SuccessResponse(c, "Tenant added successfully", property)
}

// RemoveTenant handles DELETE /api/v1/properties/:id/tenants/:tenant_id
// @Summary Remove tenant from property
// @Tags properties
// @Produce json
// @Security BearerAuth
// @Param id path int true "Property ID"
// @Param tenant_id path int true "Tenant user ID"
// @Success 200 {object} utils.APIResponse{data=models.Property}
// @Failure 404 {object} utils.APIResponse "Tenant not on property"
// @Router /api/v1/properties/{id}/tenants/{tenant_id} [delete]
func (h *PropertyHandler) RemoveTenant(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tenantID, ok := paramID(c, "tenant_id")
	if !ok {
		return
	}

	property, err := h.propertyService.RemoveTenant(c.Request.Context(), caller, id, tenantID)
	if err != nil {
		respondError(c, h.logger, "Failed to remove tenant", err)
		return
	}
	utils.SuccessResponse(c, "Tenant removed successfully", property)
}
