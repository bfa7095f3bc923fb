package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorhub/matching-service/internal/services"
	"github.com/mentorhub/matching-service/internal/utils"
)

type MentorHandler struct {
	BaseHandler
	mentorService services.MentorService
}

func NewMentorHandler(mentorService services.MentorService, logger utils.Logger) *MentorHandler {
	return &MentorHandler{
		BaseHandler:   NewBaseHandler(logger),
		mentorService: mentorService,
	}
}

// List returns the mentor directory, optionally filtered and ordered
// @Summary List mentors
// @Tags mentors
// @Produce json
// @Param skill query string false "Skill substring filter"
// @Param order_by query string false "Ordering (name or skill)"
// @Success 200 {array} models.ProfileResponse
// @Failure 403 {object} ErrorResponse "Mentee-only endpoint"
// @Router /mentors [get]
func (h *MentorHandler) List(c *gin.Context) {
	user, err := GetUserFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	opts := services.MentorListOptions{
		Skill:   c.Query("skill"),
		OrderBy: c.Query("order_by"),
	}

	h.LogRequest(c, "Listing mentors", "skill", opts.Skill, "order_by", opts.OrderBy)

	mentors, err := h.mentorService.List(c.Request.Context(), user, opts)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, mentors)
}
