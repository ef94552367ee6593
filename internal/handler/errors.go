package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"letly-be-svc/internal/auth"
	"letly-be-svc/internal/billing"
	"letly-be-svc/internal/middleware"
	"letly-be-svc/internal/service"
	"letly-be-svc/pkg/logger"
	"letly-be-svc/pkg/utils"
)

// respondError maps service and domain errors onto the response envelope.
// Anything unrecognised is logged and reported as a 500.
func respondError(c *gin.Context, log *logger.Logger, message string, err error) {
	switch {
	case billing.IsValidationError(err),
		errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, service.ErrInvalidResetToken):
		utils.BadRequestResponse(c, message, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, message, err)
	case errors.Is(err, auth.ErrForbidden),
		errors.Is(err, service.ErrNotAuthorized):
		utils.ForbiddenResponse(c, message, err)
	case errors.Is(err, service.ErrNotFound):
		utils.NotFoundResponse(c, message, err)
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, auth.ErrEmailExists):
		utils.ConflictResponse(c, message, err)
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error(message)
		utils.InternalServerErrorResponse(c, message, err)
	}
}

// paramID parses a positive numeric path parameter
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.BadRequestResponse(c, "Invalid "+name, err)
		return 0, false
	}
	return uint(id), true
}

// actor returns the authenticated caller or writes a 401
func actor(c *gin.Context) (auth.Actor, bool) {
	a, ok := middleware.CurrentActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "No token, authorization denied", auth.ErrMissingToken)
	}
	return a, ok
}
