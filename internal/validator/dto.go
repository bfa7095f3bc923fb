package validator

import (
	"time"

	"github.com/mentorhub/matching-service/internal/models"
)

// SignupRequest represents the request structure for account creation.
type SignupRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=1"`
	Name     string          `json:"name" validate:"required,max=100"`
	Role     models.UserRole `json:"role" validate:"required,user_role"`
}

// LoginRequest represents the request structure for authentication.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest represents a profile update. Image is optional
// base64-encoded bytes; Skills is applied only for mentors.
type UpdateProfileRequest struct {
	Name   string   `json:"name" validate:"required,max=100"`
	Bio    string   `json:"bio" validate:"max=2000"`
	Image  string   `json:"image" validate:"omitempty"`
	Skills []string `json:"skills" validate:"omitempty,dive,max=50"`
}

// CreateMatchRequestRequest represents a mentee's request to a mentor.
type CreateMatchRequestRequest struct {
	MentorID uint   `json:"mentorId" validate:"required"`
	Message  string `json:"message" validate:"max=2000"`
}

// CreateMeetingRequest represents a meeting booking.
type CreateMeetingRequest struct {
	MentorID    uint      `json:"mentorId" validate:"required"`
	MenteeID    uint      `json:"menteeId" validate:"required"`
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"max=2000"`
	StartTime   time.Time `json:"startTime" validate:"required"`
	EndTime     time.Time `json:"endTime" validate:"required,gtfield=StartTime"`
	MeetingLink string    `json:"meetingLink" validate:"omitempty,max=500"`
}

// UpdateMeetingRequest represents a partial meeting update. Only
// provided fields are applied.
type UpdateMeetingRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Status      *string    `json:"status" validate:"omitempty,meeting_status"`
	MeetingLink *string    `json:"meetingLink" validate:"omitempty,max=500"`
}
