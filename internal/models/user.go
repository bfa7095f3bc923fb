package models

import (
	"encoding/json"
	"time"
)

type UserRole string

const (
	RoleMentor UserRole = "mentor"
	RoleMentee UserRole = "mentee"
)

// IsValid reports whether the role is one of the two supported roles.
// Role is fixed at signup and never changes afterwards.
func (r UserRole) IsValid() bool {
	return r == RoleMentor || r == RoleMentee
}

type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Email        string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	PasswordHash string   `json:"-" gorm:"not null;size:255"`
	Name         string   `json:"name" gorm:"not null;size:100"`
	Role         UserRole `json:"role" gorm:"not null;size:20"`

	// Profile info
	Bio string `json:"bio" gorm:"type:text;default:''"`

	// Skills are stored as a serialized JSON array of strings.
	// Mentees always keep the empty string here.
	Skills string `json:"-" gorm:"type:text;default:''"`

	// Raw profile image bytes, empty when no image was uploaded.
	ProfileImage []byte `json:"-" gorm:"type:bytea"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// SkillList parses the serialized skills column. A malformed or empty
// value yields an empty list rather than an error so that a single bad
// row never breaks profile or directory responses.
func (u *User) SkillList() []string {
	if u.Skills == "" {
		return []string{}
	}
	var skills []string
	if err := json.Unmarshal([]byte(u.Skills), &skills); err != nil {
		return []string{}
	}
	return skills
}

// SetSkills serializes the given skills into the storage column,
// preserving order.
func (u *User) SetSkills(skills []string) error {
	if skills == nil {
		skills = []string{}
	}
	data, err := json.Marshal(skills)
	if err != nil {
		return err
	}
	u.Skills = string(data)
	return nil
}
