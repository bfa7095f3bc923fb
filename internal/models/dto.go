package models

import (
	"fmt"
	"time"
)

// ===== AUTH RESPONSES =====

type SignupResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// ===== PROFILE RESPONSES =====

// ProfileData is the nested profile object shared by /me, /profile and
// the mentor directory. Skills is a pointer so that mentee responses
// omit the field entirely while mentors always carry an array, even an
// empty one.
type ProfileData struct {
	Name     string    `json:"name"`
	Bio      string    `json:"bio"`
	ImageURL string    `json:"imageUrl"`
	Skills   *[]string `json:"skills,omitempty"`
}

type ProfileResponse struct {
	ID      uint        `json:"id"`
	Email   string      `json:"email"`
	Role    UserRole    `json:"role"`
	Profile ProfileData `json:"profile"`
}

// NewProfileResponse builds the canonical profile shape for a user.
func NewProfileResponse(u *User) *ProfileResponse {
	resp := &ProfileResponse{
		ID:    u.ID,
		Email: u.Email,
		Role:  u.Role,
		Profile: ProfileData{
			Name:     u.Name,
			Bio:      u.Bio,
			ImageURL: fmt.Sprintf("/api/images/%s/%d", u.Role, u.ID),
		},
	}
	if u.Role == RoleMentor {
		skills := u.SkillList()
		resp.Profile.Skills = &skills
	}
	return resp
}

// ===== MATCH REQUEST RESPONSES =====

type MatchRequestResponse struct {
	ID       uint               `json:"id"`
	MentorID uint               `json:"mentorId"`
	MenteeID uint               `json:"menteeId"`
	Message  string             `json:"message"`
	Status   MatchRequestStatus `json:"status"`
}

// OutgoingMatchRequestResponse intentionally carries no message field;
// the mentee side of the listing never exposes it.
type OutgoingMatchRequestResponse struct {
	ID       uint               `json:"id"`
	MentorID uint               `json:"mentorId"`
	MenteeID uint               `json:"menteeId"`
	Status   MatchRequestStatus `json:"status"`
}

func NewMatchRequestResponse(r *MatchRequest) *MatchRequestResponse {
	return &MatchRequestResponse{
		ID:       r.ID,
		MentorID: r.MentorID,
		MenteeID: r.MenteeID,
		Message:  r.Message,
		Status:   r.Status,
	}
}

func NewOutgoingMatchRequestResponse(r *MatchRequest) *OutgoingMatchRequestResponse {
	return &OutgoingMatchRequestResponse{
		ID:       r.ID,
		MentorID: r.MentorID,
		MenteeID: r.MenteeID,
		Status:   r.Status,
	}
}

// ===== MEETING RESPONSES =====

type MeetingUserInfo struct {
	ID    uint     `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

type MeetingResponse struct {
	ID          uint             `json:"id"`
	MentorID    uint             `json:"mentorId"`
	MenteeID    uint             `json:"menteeId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	StartTime   time.Time        `json:"startTime"`
	EndTime     time.Time        `json:"endTime"`
	Status      MeetingStatus    `json:"status"`
	MeetingLink string           `json:"meetingLink"`
	OtherUser   *MeetingUserInfo `json:"otherUser,omitempty"`
}

func NewMeetingResponse(m *Meeting, counterpart *User) *MeetingResponse {
	resp := &MeetingResponse{
		ID:          m.ID,
		MentorID:    m.MentorID,
		MenteeID:    m.MenteeID,
		Title:       m.Title,
		Description: m.Description,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Status:      m.Status,
		MeetingLink: m.MeetingLink,
	}
	if counterpart != nil {
		resp.OtherUser = &MeetingUserInfo{
			ID:    counterpart.ID,
			Name:  counterpart.Name,
			Email: counterpart.Email,
			Role:  counterpart.Role,
		}
	}
	return resp
}

// CalendarEntry is one meeting rendered for the month view. Times are
// clock times, not full timestamps.
type CalendarEntry struct {
	ID        uint               `json:"id"`
	Title     string             `json:"title"`
	StartTime string             `json:"startTime"`
	EndTime   string             `json:"endTime"`
	Status    MeetingStatus      `json:"status"`
	OtherUser *CalendarUserBrief `json:"otherUser,omitempty"`
}

type CalendarUserBrief struct {
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

// CalendarResponse maps "YYYY-MM-DD" date keys to that day's meetings.
type CalendarResponse map[string][]*CalendarEntry

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
