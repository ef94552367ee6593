package handler

import (
	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	billService service.BillService
	logger      *logger.Logger
}

// NewPaymentHandler creates a new PaymentHandler instance
func NewPaymentHandler(billService service.BillService, logger *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		billService: billService,
		logger:      logger,
	}
}

// MarkPaid marks a bill as paid
// @Summary Mark bill paid
// @Description Move a pending or overdue bill to paid. Allowed for the bill's tenant and the property's landlord. Paying an already paid bill returns it unchanged.
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bill ID"
// @Success 200 {object} utils.APIResponse{data=models.Bill} "Bill paid"
// @Failure 400 {object} utils.APIResponse "Invalid bill ID"
// @Failure 403 {object} utils.APIResponse "Not your bill"
// @Failure 404 {object} utils.APIResponse "Bill not found"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/bills/{id}/paid [put]
func (h *PaymentHandler) MarkPaid(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	bill, err := h.billService.MarkPaid(c.Request.Context(), caller, id)
	if err != nil {
		respondError(c, h.logger, "Failed to mark bill as paid", err)
		return
	}

	h.logger.WithFields(map[string]interface{}{
		"bill_id": bill.ID,
		"status":  bill.Status,
	}).Info("Bill payment recorded")

	utils.SuccessResponse(c, "Bill marked as paid", bill)
}
