package models

import "time"

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCompleted MeetingStatus = "completed"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

type Meeting struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	MentorID    uint          `json:"mentorId" gorm:"not null;index"`
	MenteeID    uint          `json:"menteeId" gorm:"not null;index"`
	Title       string        `json:"title" gorm:"not null;size:200"`
	Description string        `json:"description" gorm:"type:text;default:''"`
	StartTime   time.Time     `json:"startTime" gorm:"not null;index"`
	EndTime     time.Time     `json:"endTime" gorm:"not null"`
	Status      MeetingStatus `json:"status" gorm:"not null;size:20;default:'scheduled'"`
	MeetingLink string        `json:"meetingLink" gorm:"size:500;default:''"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Mentor *User `json:"-" gorm:"foreignKey:MentorID"`
	Mentee *User `json:"-" gorm:"foreignKey:MenteeID"`
}

func (Meeting) TableName() string {
	return "meetings"
}

// CounterpartID returns the other participant for the given user, assuming the
// user is one of the two participants.
func (m *Meeting) CounterpartID(userID uint) uint {
	if m.MentorID == userID {
		return m.MenteeID
	}
	return m.MentorID
}

// HasParticipant reports whether the user takes part in the meeting.
func (m *Meeting) HasParticipant(userID uint) bool {
	return m.MentorID == userID || m.MenteeID == userID
}

// Overlaps applies the half-open interval rule [start, end) against
// another time range.
func (m *Meeting) Overlaps(start, end time.Time) bool {
	return m.StartTime.Before(end) && start.Before(m.EndTime)
}
