package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/matching-service/internal/services"
	"github.com/mentorhub/matching-service/internal/utils"
)

type AuthHandler struct {
	BaseHandler
	userService services.UserService
}

func NewAuthHandler(userService services.UserService, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		userService: userService,
	}
}

// Signup creates a new account
// @Summary Register a new mentor or mentee account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} models.SignupResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Router /signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Signup requested", "email", req.Email, "role", req.Role)

	response, err := h.userService.SignUp(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login authenticates a user and returns a token
// @Summary Exchange credentials for a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} models.LoginResponse
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	response, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
