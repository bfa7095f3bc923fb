package services

import (
	"context"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type SignupRequest = validator.SignupRequest
type LoginRequest = validator.LoginRequest
type UpdateProfileRequest = validator.UpdateProfileRequest
type CreateMatchRequestRequest = validator.CreateMatchRequestRequest
type CreateMeetingRequest = validator.CreateMeetingRequest
type UpdateMeetingRequest = validator.UpdateMeetingRequest

// ProfileImage is the resolved payload for an image lookup. When Data is
// empty the caller should redirect to RedirectURL instead.
type ProfileImage struct {
	Data        []byte
	ContentType string
	RedirectURL string
}

// MentorListOptions controls filtering and ordering of the mentor directory.
type MentorListOptions struct {
	Skill   string
	OrderBy string `validate:"omitempty,mentor_order"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	// Account operations
	SignUp(ctx context.Context, req *SignupRequest) (*models.SignupResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error)

	// Profile operations
	GetProfile(ctx context.Context, userID uint) (*models.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.ProfileResponse, error)
	GetProfileImage(ctx context.Context, role models.UserRole, userID uint) (*ProfileImage, error)
}

type MentorService interface {
	List(ctx context.Context, requester *models.User, opts MentorListOptions) ([]*models.ProfileResponse, error)
}

type MatchRequestService interface {
	Create(ctx context.Context, requester *models.User, req *CreateMatchRequestRequest) (*models.MatchRequestResponse, error)
	ListIncoming(ctx context.Context, requester *models.User) ([]*models.MatchRequestResponse, error)
	ListOutgoing(ctx context.Context, requester *models.User) ([]*models.OutgoingMatchRequestResponse, error)
	Accept(ctx context.Context, requester *models.User, id uint) (*models.MatchRequestResponse, error)
	Reject(ctx context.Context, requester *models.User, id uint) (*models.MatchRequestResponse, error)
	Cancel(ctx context.Context, requester *models.User, id uint) (*models.MatchRequestResponse, error)
}

type MeetingService interface {
	Create(ctx context.Context, requester *models.User, req *CreateMeetingRequest) (*models.MeetingResponse, error)
	List(ctx context.Context, requester *models.User) ([]*models.MeetingResponse, error)
	Get(ctx context.Context, requester *models.User, id uint) (*models.MeetingResponse, error)
	Update(ctx context.Context, requester *models.User, id uint, req *UpdateMeetingRequest) (*models.MeetingResponse, error)
	Delete(ctx context.Context, requester *models.User, id uint) error

	// Calendar and reporting
	Calendar(ctx context.Context, requester *models.User, year, month int) (models.CalendarResponse, error)
	Export(ctx context.Context, requester *models.User) ([]byte, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	// Core service getters
	User() UserService
	Mentor() MentorService
	MatchRequest() MatchRequestService
	Meeting() MeetingService

	// Health and lifecycle
	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Repository is re-exported for mock implementations in tests.
type Repository = repositories.Repository
