package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/auth"
	"github.com/mentorhub/matching-service/internal/events"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/validator"
)

// ServiceManagerConfig holds configuration for the service manager
type ServiceManagerConfig struct {
	EnableDebugLogging bool
	LogLevel           slog.Level

	DefaultTimeout time.Duration
}

// serviceManager implements ServiceManager interface
type serviceManager struct {
	// Dependencies
	db             *gorm.DB
	repo           repositories.Repository
	logger         *slog.Logger
	validator      *validator.Validator
	tokenManager   *auth.TokenManager
	eventPublisher events.EventPublisher
	config         ServiceManagerConfig

	// Service instances
	userService         UserService
	mentorService       MentorService
	matchRequestService MatchRequestService
	meetingService      MeetingService

	// Lifecycle management
	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a new service manager with all dependencies
func NewServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, tokenManager *auth.TokenManager, eventPublisher events.EventPublisher, config ServiceManagerConfig) ServiceManager {
	return &serviceManager{
		db:             db,
		repo:           repo,
		logger:         logger,
		validator:      validator,
		tokenManager:   tokenManager,
		eventPublisher: eventPublisher,
		config:         config,
	}
}

// NewDefaultServiceManager creates a service manager with default configuration
func NewDefaultServiceManager(db *gorm.DB, repo repositories.Repository, logger *slog.Logger, validator *validator.Validator, tokenManager *auth.TokenManager, eventPublisher events.EventPublisher) ServiceManager {
	config := ServiceManagerConfig{
		EnableDebugLogging: false,
		LogLevel:           slog.LevelInfo,
		DefaultTimeout:     30 * time.Second,
	}

	return NewServiceManager(db, repo, logger, validator, tokenManager, eventPublisher, config)
}

// Initialize sets up all services and their dependencies
func (sm *serviceManager) Initialize(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	sm.logger.Info("Initializing service manager")

	sm.userService = NewUserService(sm.repo, sm.db, sm.logger, sm.validator, sm.tokenManager, sm.eventPublisher)
	sm.logger.Info("User service initialized")

	sm.mentorService = NewMentorService(sm.repo, sm.db, sm.logger, sm.validator)
	sm.logger.Info("Mentor service initialized")

	sm.matchRequestService = NewMatchRequestService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher)
	sm.logger.Info("Match request service initialized")

	sm.meetingService = NewMeetingService(sm.repo, sm.db, sm.logger, sm.validator, sm.eventPublisher)
	sm.logger.Info("Meeting service initialized")

	sm.initialized = true
	sm.logger.Info("Service manager initialized successfully")

	return nil
}

// ===== SERVICE GETTERS =====

func (sm *serviceManager) User() UserService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.userService != nil {
		return sm.userService
	}

	panic("user service not initialized")
}

func (sm *serviceManager) Mentor() MentorService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.mentorService != nil {
		return sm.mentorService
	}

	panic("mentor service not initialized")
}

func (sm *serviceManager) MatchRequest() MatchRequestService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.matchRequestService != nil {
		return sm.matchRequestService
	}

	panic("match request service not initialized")
}

func (sm *serviceManager) Meeting() MeetingService {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		panic("service manager not initialized")
	}

	if sm.meetingService != nil {
		return sm.meetingService
	}

	panic("meeting service not initialized")
}

// ===== HEALTH AND LIFECYCLE =====

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if !sm.initialized {
		return fmt.Errorf("service manager not initialized")
	}

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}

	if err := sm.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository health check failed: %w", err)
	}

	return nil
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("Shutting down service manager")

	if err := sm.eventPublisher.Close(); err != nil {
		sm.logger.Warn("Failed to close event publisher", "error", err)
	}

	sm.shutdown = true
	sm.initialized = false

	sm.logger.Info("Service manager shut down")

	return nil
}
