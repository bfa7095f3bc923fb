package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/services"
	"github.com/mentorhub/matching-service/internal/utils"
)

// ErrorResponse is the common error payload for all endpoints.
type ErrorResponse = models.ErrorResponse

// BaseHandler carries the shared logging and error mapping used by all
// HTTP handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

// LogRequest logs the start of a request with the request-scoped logger.
func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	h.requestLogger(c).Info(msg, args...)
}

// LogError logs a request failure with the request-scoped logger.
func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	h.requestLogger(c).Error(msg, args...)
}

func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	return utils.LoggerFromContext(c.Request.Context(), h.logger)
}

// parseIDParam parses a numeric path parameter. On failure it writes a
// 400 response and returns ok=false.
func (h *BaseHandler) parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name + " parameter",
		})
		return 0, false
	}
	return uint(id), true
}

// handleServiceError translates service errors into HTTP responses.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	// Handle custom error types first
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: permissionError.Reason,
		})
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Email already registered",
		})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Incorrect email or password",
		})
	case errors.Is(err, services.ErrInvalidToken), errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	// User errors
	case errors.Is(err, services.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid image format",
		})
	case errors.Is(err, services.ErrMentorNotFound):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Mentor not found",
		})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found",
		})
	// Match request errors
	case errors.Is(err, services.ErrRequestExists):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Request already exists",
		})
	case errors.Is(err, services.ErrMatchRequestNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Match request not found",
		})
	// Meeting errors
	case errors.Is(err, services.ErrMeetingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Meeting not found",
		})
	case errors.Is(err, services.ErrMeetingOverlap):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Meeting time conflicts with an existing meeting",
		})
	// Generic errors
	case errors.Is(err, services.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: err.Error(),
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
		})
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrBadRequest):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Bad request",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
