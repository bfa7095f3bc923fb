package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/auth"
	"github.com/mentorhub/matching-service/internal/events"
	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/validator"
)

const (
	eventSource  = "matching-service"
	eventVersion = "1.0"

	placeholderImageURL = "https://placehold.co/500x500.jpg?text=%s"
)

type userService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	tokenManager   *auth.TokenManager
	eventPublisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, tokenManager *auth.TokenManager, eventPublisher events.EventPublisher) UserService {
	return &userService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		tokenManager:   tokenManager,
		eventPublisher: eventPublisher,
	}
}

// ===== ACCOUNT OPERATIONS =====

func (s *userService) SignUp(ctx context.Context, req *SignupRequest) (*models.SignupResponse, error) {
	s.logger.Info("Creating user account", "email", req.Email, "role", req.Role)

	// Validate request
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, nil, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         models.UserRole(req.Role),
	}
	if user.Role == models.RoleMentor {
		user.Skills = "[]"
	}

	if err = s.repo.User().Create(ctx, nil, user); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created successfully", "user_id", user.ID, "role", user.Role)

	s.publishEvent(ctx, events.EventUserRegistered, map[string]interface{}{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
	})

	return &models.SignupResponse{Message: "User created successfully"}, nil
}

func (s *userService) Login(ctx context.Context, req *LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.repo.User().GetByEmail(ctx, nil, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			// Same error for unknown email and wrong password
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokenManager.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("User logged in", "user_id", user.ID)

	return &models.LoginResponse{Token: token}, nil
}

// ===== PROFILE OPERATIONS =====

func (s *userService) GetProfile(ctx context.Context, userID uint) (*models.ProfileResponse, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return models.NewProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uint, req *UpdateProfileRequest) (*models.ProfileResponse, error) {
	s.logger.Info("Updating profile", "user_id", userID)

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Name = req.Name
	user.Bio = req.Bio

	if req.Image != "" {
		image, err := decodeProfileImage(req.Image)
		if err != nil {
			return nil, ErrInvalidImage
		}
		user.ProfileImage = image
	}

	// Skills are only stored for mentors
	if user.Role == models.RoleMentor && len(req.Skills) > 0 {
		if err := user.SetSkills(req.Skills); err != nil {
			return nil, fmt.Errorf("failed to serialize skills: %w", err)
		}
	}

	user.UpdatedAt = time.Now()

	if err = s.repo.User().Update(ctx, nil, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("Profile updated successfully", "user_id", user.ID)

	s.publishEvent(ctx, events.EventProfileUpdated, map[string]interface{}{
		"user_id": user.ID,
		"role":    user.Role,
	})

	return models.NewProfileResponse(user), nil
}

func (s *userService) GetProfileImage(ctx context.Context, role models.UserRole, userID uint) (*ProfileImage, error) {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if len(user.ProfileImage) > 0 {
		return &ProfileImage{
			Data:        user.ProfileImage,
			ContentType: "image/jpeg",
		}, nil
	}

	// No stored image, fall back to a role-labeled placeholder
	label := strings.ToUpper(string(role))
	return &ProfileImage{
		RedirectURL: fmt.Sprintf(placeholderImageURL, label),
	}, nil
}

// ===== HELPER METHODS =====

// decodeProfileImage accepts both raw base64 payloads and data URLs
// such as "data:image/jpeg;base64,...".
func decodeProfileImage(encoded string) ([]byte, error) {
	if idx := strings.Index(encoded, ","); idx >= 0 && strings.HasPrefix(encoded, "data:") {
		encoded = encoded[idx+1:]
	}
	return base64.StdEncoding.DecodeString(encoded)
}

func (s *userService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	event := &events.Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Version:   eventVersion,
		Timestamp: time.Now(),
		Data:      data,
	}

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}
