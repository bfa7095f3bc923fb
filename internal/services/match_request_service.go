package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/events"
	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/validator"
)

type matchRequestService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewMatchRequestService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, eventPublisher events.EventPublisher) MatchRequestService {
	return &matchRequestService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// ===== CORE OPERATIONS =====

func (s *matchRequestService) Create(ctx context.Context, requester *models.User, req *CreateMatchRequestRequest) (*models.MatchRequestResponse, error) {
	if requester.Role != models.RoleMentee {
		return nil, NewPermissionError(requester.ID, 0, "match_request", "create",
			"Only mentees can send requests")
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.logger.Info("Creating match request",
		"mentee_id", requester.ID, "mentor_id", req.MentorID)

	mentor, err := s.repo.User().GetByID(ctx, nil, req.MentorID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to look up mentor: %w", err)
	}
	if mentor.Role != models.RoleMentor {
		return nil, ErrMentorNotFound
	}

	request := &models.MatchRequest{
		MentorID: req.MentorID,
		MenteeID: requester.ID,
		Message:  req.Message,
		Status:   models.MatchStatusPending,
	}

	// Uniqueness against live requests is checked and inserted at
	// serializable isolation, with a partial unique index on live
	// pairs backing it at the schema level.
	err = s.repo.WithSerializableTransaction(ctx, func(txRepo repositories.Repository) error {
		exists, err := txRepo.MatchRequest().HasLiveRequest(ctx, nil, req.MentorID, requester.ID)
		if err != nil {
			return fmt.Errorf("failed to check existing requests: %w", err)
		}
		if exists {
			return ErrRequestExists
		}

		return txRepo.MatchRequest().Create(ctx, nil, request)
	})
	if err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrRequestExists
		}
		return nil, err
	}

	s.logger.Info("Match request created", "request_id", request.ID)

	s.publishEvent(ctx, events.EventMatchRequestCreated, map[string]interface{}{
		"request_id": request.ID,
		"mentor_id":  request.MentorID,
		"mentee_id":  request.MenteeID,
	})

	return models.NewMatchRequestResponse(request), nil
}

func (s *matchRequestService) ListIncoming(ctx context.Context, requester *models.User) ([]*models.MatchRequestResponse, error) {
	if requester.Role != models.RoleMentor {
		return nil, NewPermissionError(requester.ID, 0, "match_request", "list",
			"Only mentors can access this endpoint")
	}

	requests, err := s.repo.MatchRequest().ListByMentor(ctx, nil, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming requests: %w", err)
	}

	responses := make([]*models.MatchRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, models.NewMatchRequestResponse(request))
	}

	return responses, nil
}

func (s *matchRequestService) ListOutgoing(ctx context.Context, requester *models.User) ([]*models.OutgoingMatchRequestResponse, error) {
	if requester.Role != models.RoleMentee {
		return nil, NewPermissionError(requester.ID, 0, "match_request", "list",
			"Only mentees can access this endpoint")
	}

	requests, err := s.repo.MatchRequest().ListByMentee(ctx, nil, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing requests: %w", err)
	}

	responses := make([]*models.OutgoingMatchRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, models.NewOutgoingMatchRequestResponse(request))
	}

	return responses, nil
}

// ===== STATUS TRANSITIONS =====

func (s *matchRequestService) Accept(ctx context.Context, requester *models.User, id uint) (*models.MatchRequestResponse, error) {
	if requester.Role != models.RoleMentor {
		return nil, NewPermissionError(requester.ID, id, "match_request", "accept",
			"Only mentors can accept requests")
	}

	s.logger.Info("Accepting match request", "request_id", id, "mentor_id", requester.ID)

	var request *models.MatchRequest
	err := s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		found, err := txRepo.MatchRequest().GetForMentor(ctx, nil, id, requester.ID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrMatchRequestNotFound
			}
			return fmt.Errorf("failed to get match request: %w", err)
		}

		// Accepting one request rejects every other pending request
		// addressed to the same mentor.
		if err := txRepo.MatchRequest().RejectOtherPending(ctx, nil, requester.ID, id); err != nil {
			return fmt.Errorf("failed to reject pending requests: %w", err)
		}

		if err := txRepo.MatchRequest().UpdateStatus(ctx, nil, id, models.MatchStatusAccepted); err != nil {
			return fmt.Errorf("failed to accept request: %w", err)
		}

		found.Status = models.MatchStatusAccepted
		request = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Match request accepted", "request_id", id)

	s.publishEvent(ctx, events.EventMatchRequestAccepted, map[string]interface{}{
		"request_id": request.ID,
		"mentor_id":  request.MentorID,
		"mentee_id":  request.MenteeID,
	})

	return models.NewMatchRequestResponse(request), nil
}

func (s *matchRequestService) Reject(ctx context.Context, requester *models.User, id uint) (*models.MatchRequestResponse, error) {
	if requester.Role != models.RoleMentor {
		return nil, NewPermissionError(requester.ID, id, "match_request", "reject",
			"Only mentors can reject requests")
	}

	request, err := s.repo.MatchRequest().GetForMentor(ctx, nil, id, requester.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMatchRequestNotFound
		}
		return nil, fmt.Errorf("failed to get match request: %w", err)
	}

	if err := s.repo.MatchRequest().UpdateStatus(ctx, nil, id, models.MatchStatusRejected); err != nil {
		return nil, fmt.Errorf("failed to reject request: %w", err)
	}
	request.Status = models.MatchStatusRejected

	s.logger.Info("Match request rejected", "request_id", id)

	s.publishEvent(ctx, events.EventMatchRequestRejected, map[string]interface{}{
		"request_id": request.ID,
		"mentor_id":  request.MentorID,
		"mentee_id":  request.MenteeID,
	})

	return models.NewMatchRequestResponse(request), nil
}

func (s *matchRequestService) Cancel(ctx context.Context, requester *models.User, id uint) (*models.MatchRequestResponse, error) {
	if requester.Role != models.RoleMentee {
		return nil, NewPermissionError(requester.ID, id, "match_request", "cancel",
			"Only mentees can cancel requests")
	}

	request, err := s.repo.MatchRequest().GetForMentee(ctx, nil, id, requester.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMatchRequestNotFound
		}
		return nil, fmt.Errorf("failed to get match request: %w", err)
	}

	if err := s.repo.MatchRequest().UpdateStatus(ctx, nil, id, models.MatchStatusCancelled); err != nil {
		return nil, fmt.Errorf("failed to cancel request: %w", err)
	}
	request.Status = models.MatchStatusCancelled

	s.logger.Info("Match request cancelled", "request_id", id)

	s.publishEvent(ctx, events.EventMatchRequestCancelled, map[string]interface{}{
		"request_id": request.ID,
		"mentor_id":  request.MentorID,
		"mentee_id":  request.MenteeID,
	})

	return models.NewMatchRequestResponse(request), nil
}

// ===== HELPER METHODS =====

func (s *matchRequestService) publishEvent(ctx context.Context, eventType string, data interface{}) {
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
