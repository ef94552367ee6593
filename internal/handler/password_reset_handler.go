package handler

import (
	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// ForgotPasswordRequest asks for a reset link
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email" example:"ari@example.com"`
}

// ResetPasswordRequest sets a new password with a reset token
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email" example:"ari@example.com"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6" example:"new-secret"`
}

// PasswordResetHandler handles the forgot-password flow
type PasswordResetHandler struct {
	resetService service.PasswordResetService
	logger       *logger.Logger
}

// NewPasswordResetHandler creates a new password reset handler
func NewPasswordResetHandler(resetService service.PasswordResetService, logger *logger.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetService: resetService,
		logger:       logger,
	}
}

// RequestReset handles POST /api/v1/password-reset/request
// @Summary Request password reset
// @Description Mail a reset link if the email is registered. The response is the same either way.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Router /api/v1/password-reset/request [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}
	if err := h.resetService.Request(c.Request.Context(), req.Email); err != nil {
		respondError(c, h.logger, "Failed to process password reset", err)
		return
	}
	utils.SuccessResponse(c, "If an account exists with that email, a reset link has been sent", nil)
}

// VerifyToken handles GET /api/v1/password-reset/verify
// @Summary Verify reset token
// @Tags auth
// @Produce json
// @Param email query string true "Email"
// @Param token query string true "Reset token"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse "Invalid or expired token"
// @Router /api/v1/password-reset/verify [get]
func (h *PasswordResetHandler) VerifyToken(c *gin.Context) {
	if err := h.resetService.Verify(c.Request.Context(), c.Query("email"), c.Query("token")); err != nil {
		respondError(c, h.logger, "Invalid or expired reset token", err)
		return
	}
	utils.SuccessResponse(c, "Reset token is valid", nil)
}

// ResetPassword handles POST /api/v1/password-reset/reset
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse "Invalid or expired token"
// @Router /api/v1/password-reset/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}
	if err := h.resetService.Reset(c.Request.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		respondError(c, h.logger, "Failed to reset password", err)
		return
	}
	utils.SuccessResponse(c, "Password has been reset successfully", nil)
}
