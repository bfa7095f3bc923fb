package models

import "time"

type MatchRequestStatus string

const (
	MatchStatusPending   MatchRequestStatus = "pending"
	MatchStatusAccepted  MatchRequestStatus = "accepted"
	MatchStatusRejected  MatchRequestStatus = "rejected"
	MatchStatusCancelled MatchRequestStatus = "cancelled"
)

// IsLive reports whether the request still blocks a new request for the
// same mentor/mentee pair. Rejected and cancelled requests do not.
func (s MatchRequestStatus) IsLive() bool {
	return s == MatchStatusPending || s == MatchStatusAccepted
}

type MatchRequest struct {
	ID       uint               `json:"id" gorm:"primaryKey"`
	MentorID uint               `json:"mentorId" gorm:"not null;index"`
	MenteeID uint               `json:"menteeId" gorm:"not null;index"`
	Message  string             `json:"message" gorm:"type:text;default:''"`
	Status   MatchRequestStatus `json:"status" gorm:"not null;size:20;default:'pending'"`

	CreatedAt time.Time `json:"created_at"`

	Mentor *User `json:"-" gorm:"foreignKey:MentorID"`
	Mentee *User `json:"-" gorm:"foreignKey:MenteeID"`
}

func (MatchRequest) TableName() string {
	return "match_requests"
}
