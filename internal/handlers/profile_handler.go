package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/services"
	"github.com/mentorhub/matching-service/internal/utils"
)

type ProfileHandler struct {
	BaseHandler
	userService services.UserService
}

func NewProfileHandler(userService services.UserService, logger utils.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// Me returns the authenticated user's profile
// @Summary Get current user profile
// @Tags profile
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /me [get]
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile updates name, bio, image and skills of the current user
// @Summary Update current user profile
// @Tags profile
// @Accept json
// @Produce json
// @Success 200 {object} models.ProfileResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /profile [put]
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating profile", "user_id", userID)

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetImage serves a user's profile image, falling back to a placeholder
// @Summary Get a user's profile image
// @Tags profile
// @Produce jpeg
// @Success 200 {file} binary
// @Failure 404 {object} ErrorResponse "User not found"
// @Router /images/{role}/{userId} [get]
func (h *ProfileHandler) GetImage(c *gin.Context) {
	role := models.UserRole(c.Param("role"))
	if !role.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid role parameter",
		})
		return
	}

	userID, ok := h.parseIDParam(c, "userId")
	if !ok {
		return
	}

	image, err := h.userService.GetProfileImage(c.Request.Context(), role, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	if image.RedirectURL != "" {
		c.Redirect(http.StatusTemporaryRedirect, image.RedirectURL)
		return
	}

	c.Data(http.StatusOK, image.ContentType, image.Data)
}
