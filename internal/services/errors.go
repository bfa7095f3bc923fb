package services

import (
	"errors"
	"fmt"

	"github.com/mentorhub/matching-service/internal/validator"
)

// ===== SENTINEL ERRORS =====

var (
	// Generic errors
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("conflict")

	// Auth errors
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = errors.New("invalid token")

	// User errors
	ErrUserNotFound   = errors.New("user not found")
	ErrMentorNotFound = errors.New("mentor not found")
	ErrInvalidImage   = errors.New("invalid image format")

	// Match request errors
	ErrMatchRequestNotFound = errors.New("match request not found")
	ErrRequestExists        = errors.New("request already exists")

	// Meeting errors
	ErrMeetingNotFound = errors.New("meeting not found")
	ErrMeetingOverlap  = errors.New("meeting time overlaps an existing meeting")
)

// ValidationErrors is re-exported so handlers can unwrap it with errors.As.
type ValidationErrors = validator.ValidationErrors

// ===== PERMISSION ERROR =====

// PermissionError carries the context of a role or ownership check failure.
type PermissionError struct {
	UserID     uint
	ResourceID uint
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s: %s",
		e.UserID, e.Action, e.Resource, e.Reason)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrForbidden
}

func NewPermissionError(userID, resourceID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}
