package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/services"
	"github.com/mentorhub/matching-service/internal/utils"
)

type MeetingHandler struct {
	BaseHandler
	meetingService services.MeetingService
}

func NewMeetingHandler(meetingService services.MeetingService, logger utils.Logger) *MeetingHandler {
	return &MeetingHandler{
		BaseHandler:    NewBaseHandler(logger),
		meetingService: meetingService,
	}
}

// Create schedules a new meeting
// @Summary Schedule a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Success 201 {object} models.MeetingResponse
// @Failure 400 {object} ErrorResponse "Time conflict or invalid input"
// @Router /meetings [post]
func (h *MeetingHandler) Create(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req services.CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Scheduling meeting", "mentor_id", req.MentorID, "mentee_id", req.MenteeID)

	response, err := h.meetingService.Create(c.Request.Context(), user, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// List returns the current user's meetings, newest first
// @Summary List meetings
// @Tags meetings
// @Produce json
// @Success 200 {array} models.MeetingResponse
// @Router /meetings [get]
func (h *MeetingHandler) List(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	responses, err := h.meetingService.List(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, responses)
}

// Get returns a single meeting the current user participates in
// @Summary Get a meeting
// @Tags meetings
// @Produce json
// @Success 200 {object} models.MeetingResponse
// @Failure 404 {object} ErrorResponse "Meeting not found"
// @Router /meetings/{id} [get]
func (h *MeetingHandler) Get(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	response, err := h.meetingService.Get(c.Request.Context(), user, id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Update applies a partial update to a meeting
// @Summary Update a meeting
// @Tags meetings
// @Accept json
// @Produce json
// @Success 200 {object} models.MeetingResponse
// @Failure 404 {object} ErrorResponse "Meeting not found"
// @Router /meetings/{id} [put]
func (h *MeetingHandler) Update(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating meeting", "meeting_id", id)

	response, err := h.meetingService.Update(c.Request.Context(), user, id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Delete removes a meeting
// @Summary Delete a meeting
// @Tags meetings
// @Produce json
// @Success 200 {object} models.SuccessResponse
// @Failure 404 {object} ErrorResponse "Meeting not found"
// @Router /meetings/{id} [delete]
func (h *MeetingHandler) Delete(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	h.LogRequest(c, "Deleting meeting", "meeting_id", id)

	if err := h.meetingService.Delete(c.Request.Context(), user, id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse{
		Message: "Meeting deleted",
	})
}

// Calendar returns the user's meetings for a month grouped by day
// @Summary Monthly meeting calendar
// @Tags meetings
// @Produce json
// @Success 200 {object} models.CalendarResponse
// @Router /meetings/calendar/{year}/{month} [get]
func (h *MeetingHandler) Calendar(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid year parameter",
		})
		return
	}

	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid month parameter",
		})
		return
	}

	calendar, err := h.meetingService.Calendar(c.Request.Context(), user, year, month)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, calendar)
}

// Export downloads the user's meetings as an Excel workbook
// @Summary Export meetings
// @Tags meetings
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} binary
// @Router /meetings/export [get]
func (h *MeetingHandler) Export(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	h.LogRequest(c, "Exporting meetings")

	data, err := h.meetingService.Export(c.Request.Context(), user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("meetings-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *MeetingHandler) currentUser(c *gin.Context) (*models.User, bool) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return nil, false
	}
	return user, true
}
