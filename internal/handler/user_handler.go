package handler

import (
	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// RegisterRequest represents the registration payload
type RegisterRequest struct {
	Name     string `json:"name" binding:"required" example:"Jane Doe"`
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required,min=6" example:"secret1"`
	Role     string `json:"role" binding:"required,oneof=landlord rentee tenant" example:"landlord"`
	Phone    string `json:"phone,omitempty" example:"+15550100"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"jane@example.com"`
	Password string `json:"password" binding:"required" example:"secret1"`
}

// UserHandler handles account HTTP requests
type UserHandler struct {
	userService service.UserService
	logger      *logger.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// Register handles POST /api/v1/auth/register
// @Summary Register an account
// @Description Create a landlord or tenant account and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} utils.APIResponse{data=response.AuthResponse} "Account created"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 409 {object} utils.APIResponse "Email already registered"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.WithError(err).Warn("Invalid register request")
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	res, err := h.userService.Register(c.Request.Context(), service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, h.logger, "Failed to register", err)
		return
	}

	utils.CreatedResponse(c, "Account created successfully", res)
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Exchange email and password for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} utils.APIResponse{data=response.AuthResponse} "Logged in"
// @Failure 400 {object} utils.APIResponse "Invalid request"
// @Failure 401 {object} utils.APIResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	res, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.logger, "Invalid credentials", err)
		return
	}

	utils.SuccessResponse(c, "Logged in successfully", res)
}

// Me handles GET /api/v1/auth/me
// @Summary Current user
// @Description Return the account behind the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=models.User} "Current user"
// @Failure 401 {object} utils.APIResponse "Unauthorized"
// @Router /api/v1/auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	caller, ok := actor(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), caller.ID)
	if err != nil {
		respondError(c, h.logger, "Failed to get user", err)
		return
	}

	utils.SuccessResponse(c, "User retrieved successfully", user)
}
