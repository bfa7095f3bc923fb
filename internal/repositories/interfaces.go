package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// MentorFilters narrows the mentor directory query. Skill matching is
// substring containment of the lowercased term against the stored
// skills text; ordering is applied by the service afterwards.
type MentorFilters struct {
	Skill string `json:"skill"`
}

// MeetingWindow bounds a calendar query, [From, To).
type MeetingWindow struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, user *models.User) error

	// ListMentors returns all users with the mentor role matching the
	// filters, in id order.
	ListMentors(ctx context.Context, tx *gorm.DB, filters MentorFilters) ([]*models.User, error)
}

type MatchRequestRepository interface {
	Create(ctx context.Context, tx *gorm.DB, request *models.MatchRequest) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MatchRequest, error)

	// GetForMentor and GetForMentee scope the lookup to the given
	// participant; a request owned by someone else reads as not found.
	GetForMentor(ctx context.Context, tx *gorm.DB, id, mentorID uint) (*models.MatchRequest, error)
	GetForMentee(ctx context.Context, tx *gorm.DB, id, menteeID uint) (*models.MatchRequest, error)

	ListByMentor(ctx context.Context, tx *gorm.DB, mentorID uint) ([]*models.MatchRequest, error)
	ListByMentee(ctx context.Context, tx *gorm.DB, menteeID uint) ([]*models.MatchRequest, error)

	// HasLiveRequest reports whether a pending or accepted request
	// already exists for the mentor/mentee pair.
	HasLiveRequest(ctx context.Context, tx *gorm.DB, mentorID, menteeID uint) (bool, error)

	UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MatchRequestStatus) error

	// RejectOtherPending flips every pending request of the mentor
	// except the given one to rejected.
	RejectOtherPending(ctx context.Context, tx *gorm.DB, mentorID, exceptID uint) error
}

type MeetingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, meeting *models.Meeting) error

	// GetForParticipant scopes the lookup to meetings the user takes
	// part in.
	GetForParticipant(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Meeting, error)

	// ListByParticipant returns the user's meetings, newest start first.
	ListByParticipant(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Meeting, error)

	// ListInWindow returns the user's meetings starting inside the
	// window, start ascending.
	ListInWindow(ctx context.Context, tx *gorm.DB, userID uint, window MeetingWindow) ([]*models.Meeting, error)

	// HasOverlap reports whether any scheduled meeting involving the
	// mentor or the mentee overlaps [start, end). excludeID skips one
	// meeting, 0 skips none.
	HasOverlap(ctx context.Context, tx *gorm.DB, mentorID, menteeID uint, start, end time.Time, excludeID uint) (bool, error)

	Update(ctx context.Context, tx *gorm.DB, meeting *models.Meeting) error
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}
