package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/services"
	"github.com/mentorhub/matching-service/internal/utils"
)

type MatchRequestHandler struct {
	BaseHandler
	matchRequestService services.MatchRequestService
}

func NewMatchRequestHandler(matchRequestService services.MatchRequestService, logger utils.Logger) *MatchRequestHandler {
	return &MatchRequestHandler{
		BaseHandler:         NewBaseHandler(logger),
		matchRequestService: matchRequestService,
	}
}

// Create sends a match request from the current mentee to a mentor
// @Summary Create a match request
// @Tags match-requests
// @Accept json
// @Produce json
// @Success 200 {object} models.MatchRequestResponse
// @Failure 400 {object} ErrorResponse "Mentor not found or request already exists"
// @Router /match-requests [post]
func (h *MatchRequestHandler) Create(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.CreateMatchRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating match request", "mentor_id", req.MentorID)

	response, err := h.matchRequestService.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListIncoming returns requests addressed to the current mentor
// @Summary List incoming match requests
// @Tags match-requests
// @Produce json
// @Success 200 {array} models.MatchRequestResponse
// @Router /match-requests/incoming [get]
func (h *MatchRequestHandler) ListIncoming(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	responses, err := h.matchRequestService.ListIncoming(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// ListOutgoing returns requests sent by the current mentee
// @Summary List outgoing match requests
// @Tags match-requests
// @Produce json
// @Success 200 {array} models.OutgoingMatchRequestResponse
// @Router /match-requests/outgoing [get]
func (h *MatchRequestHandler) ListOutgoing(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	responses, err := h.matchRequestService.ListOutgoing(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// Accept accepts a request and rejects the mentor's other pending ones
// @Summary Accept a match request
// @Tags match-requests
// @Produce json
// @Success 200 {object} models.MatchRequestResponse
// @Failure 404 {object} ErrorResponse "Match request not found"
// @Router /match-requests/{id}/accept [put]
func (h *MatchRequestHandler) Accept(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Accepting match request", "request_id", id)

	response, err := h.matchRequestService.Accept(c.Request.Context(), user, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Reject rejects a match request
// @Summary Reject a match request
// @Tags match-requests
// @Produce json
// @Success 200 {object} models.MatchRequestResponse
// @Failure 404 {object} ErrorResponse "Match request not found"
// @Router /match-requests/{id}/reject [put]
func (h *MatchRequestHandler) Reject(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Rejecting match request", "request_id", id)

	response, err := h.matchRequestService.Reject(c.Request.Context(), user, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Cancel cancels a request the current mentee sent earlier
// @Summary Cancel a match request
// @Tags match-requests
// @Produce json
// @Success 200 {object} models.MatchRequestResponse
// @Failure 404 {object} ErrorResponse "Match request not found"
// @Router /match-requests/{id} [delete]
func (h *MatchRequestHandler) Cancel(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Cancelling match request", "request_id", id)

	request, err := h.matchRequestService.Cancel(c.Request.Context(), user, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *MatchRequestHandler) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return nil, false
	}
	return user, true
}
