package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/events"
	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/validator"
)

type meetingService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewMeetingService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, eventPublisher events.EventPublisher) MeetingService {
	return &meetingService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      validator,
		eventPublisher: eventPublisher,
	}
}

// ===== CORE CRUD OPERATIONS =====

func (s *meetingService) Create(ctx context.Context, requester *models.User, req *CreateMeetingRequest) (*models.MeetingResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// The caller must hold their own slot in the meeting: a mentor can
	// only book as the meeting's mentor, a mentee as its mentee.
	participantID := req.MenteeID
	if requester.Role == models.RoleMentor {
		participantID = req.MentorID
	}
	if requester.ID != participantID {
		return nil, NewPermissionError(requester.ID, 0, "meeting", "create",
			"Meetings can only be scheduled by one of their participants")
	}

	s.logger.Info("Scheduling meeting",
		"mentor_id", req.MentorID, "mentee_id", req.MenteeID,
		"start_time", req.StartTime, "end_time", req.EndTime)

	if err := s.checkParticipant(ctx, req.MentorID, models.RoleMentor); err != nil {
		return nil, err
	}
	if err := s.checkParticipant(ctx, req.MenteeID, models.RoleMentee); err != nil {
		return nil, err
	}

	meeting := &models.Meeting{
		MentorID:    req.MentorID,
		MenteeID:    req.MenteeID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.MeetingStatusScheduled,
		MeetingLink: req.MeetingLink,
	}

	// Overlap check and insert run at serializable isolation so two
	// requests for the same slot cannot both succeed.
	err := s.repo.WithSerializableTransaction(ctx, func(txRepo repositories.Repository) error {
		overlaps, err := txRepo.Meeting().HasOverlap(ctx, nil,
			req.MentorID, req.MenteeID, req.StartTime, req.EndTime, 0)
		if err != nil {
			return fmt.Errorf("failed to check overlap: %w", err)
		}
		if overlaps {
			return ErrMeetingOverlap
		}

		return txRepo.Meeting().Create(ctx, nil, meeting)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Meeting scheduled", "meeting_id", meeting.ID)

	s.publishEvent(ctx, events.EventMeetingScheduled, map[string]interface{}{
		"meeting_id": meeting.ID,
		"mentor_id":  meeting.MentorID,
		"mentee_id":  meeting.MenteeID,
		"start_time": meeting.StartTime,
		"end_time":   meeting.EndTime,
	})

	return s.buildResponse(ctx, meeting, requester.ID)
}

func (s *meetingService) List(ctx context.Context, requester *models.User) ([]*models.MeetingResponse, error) {
	meetings, err := s.repo.Meeting().ListByParticipant(ctx, nil, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	responses := make([]*models.MeetingResponse, 0, len(meetings))
	for _, meeting := range meetings {
		response, err := s.buildResponse(ctx, meeting, requester.ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, response)
	}

	return responses, nil
}

func (s *meetingService) Get(ctx context.Context, requester *models.User, id uint) (*models.MeetingResponse, error) {
	meeting, err := s.repo.Meeting().GetForParticipant(ctx, nil, id, requester.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	return s.buildResponse(ctx, meeting, requester.ID)
}

func (s *meetingService) Update(ctx context.Context, requester *models.User, id uint, req *UpdateMeetingRequest) (*models.MeetingResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	s.logger.Info("Updating meeting", "meeting_id", id, "user_id", requester.ID)

	// Rescheduling re-checks overlap, so it needs the same isolation
	// as scheduling.
	var meeting *models.Meeting
	err := s.repo.WithSerializableTransaction(ctx, func(txRepo repositories.Repository) error {
		found, err := txRepo.Meeting().GetForParticipant(ctx, nil, id, requester.ID)
		if err != nil {
			if repositories.IsNotFoundError(err) {
				return ErrMeetingNotFound
			}
			return fmt.Errorf("failed to get meeting: %w", err)
		}

		rescheduled := applyMeetingUpdate(found, req)

		if found.EndTime.Before(found.StartTime) || found.EndTime.Equal(found.StartTime) {
			return fmt.Errorf("%w: end time must be after start time", ErrValidationFailed)
		}

		if rescheduled && found.Status == models.MeetingStatusScheduled {
			overlaps, err := txRepo.Meeting().HasOverlap(ctx, nil,
				found.MentorID, found.MenteeID, found.StartTime, found.EndTime, found.ID)
			if err != nil {
				return fmt.Errorf("failed to check overlap: %w", err)
			}
			if overlaps {
				return ErrMeetingOverlap
			}
		}

		found.UpdatedAt = time.Now()
		if err := txRepo.Meeting().Update(ctx, nil, found); err != nil {
			return fmt.Errorf("failed to update meeting: %w", err)
		}

		meeting = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Meeting updated", "meeting_id", id)

	s.publishEvent(ctx, events.EventMeetingUpdated, map[string]interface{}{
		"meeting_id": meeting.ID,
		"mentor_id":  meeting.MentorID,
		"mentee_id":  meeting.MenteeID,
		"status":     meeting.Status,
	})

	return s.buildResponse(ctx, meeting, requester.ID)
}

func (s *meetingService) Delete(ctx context.Context, requester *models.User, id uint) error {
	meeting, err := s.repo.Meeting().GetForParticipant(ctx, nil, id, requester.ID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMeetingNotFound
		}
		return fmt.Errorf("failed to get meeting: %w", err)
	}

	if err := s.repo.Meeting().Delete(ctx, nil, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrMeetingNotFound
		}
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	s.logger.Info("Meeting deleted", "meeting_id", id, "user_id", requester.ID)

	s.publishEvent(ctx, events.EventMeetingCancelled, map[string]interface{}{
		"meeting_id": meeting.ID,
		"mentor_id":  meeting.MentorID,
		"mentee_id":  meeting.MenteeID,
	})

	return nil
}

// ===== CALENDAR AND REPORTING =====

func (s *meetingService) Calendar(ctx context.Context, requester *models.User, year, month int) (models.CalendarResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrValidationFailed)
	}
	if year < 1970 || year > 9999 {
		return nil, fmt.Errorf("%w: year out of range", ErrValidationFailed)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	window := repositories.MeetingWindow{From: from, To: from.AddDate(0, 1, 0)}

	meetings, err := s.repo.Meeting().ListInWindow(ctx, nil, requester.ID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	calendar := make(models.CalendarResponse)
	for _, meeting := range meetings {
		counterpart, err := s.counterpart(ctx, meeting, requester.ID)
		if err != nil {
			return nil, err
		}

		entry := &models.CalendarEntry{
			ID:        meeting.ID,
			Title:     meeting.Title,
			StartTime: meeting.StartTime.Format("15:04"),
			EndTime:   meeting.EndTime.Format("15:04"),
			Status:    meeting.Status,
		}
		if counterpart != nil {
			entry.OtherUser = &models.CalendarUserBrief{
				Name: counterpart.Name,
				Role: counterpart.Role,
			}
		}

		day := meeting.StartTime.Format("2006-01-02")
		calendar[day] = append(calendar[day], entry)
	}

	return calendar, nil
}

func (s *meetingService) Export(ctx context.Context, requester *models.User) ([]byte, error) {
	meetings, err := s.repo.Meeting().ListByParticipant(ctx, nil, requester.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	file := excelize.NewFile()
	defer file.Close()

	const sheet = "Meetings"
	file.SetSheetName(file.GetSheetName(0), sheet)

	headers := []string{"ID", "Title", "Description", "With", "Start Time", "End Time", "Status", "Meeting Link"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, meeting := range meetings {
		counterpart, err := s.counterpart(ctx, meeting, requester.ID)
		if err != nil {
			return nil, err
		}
		counterpartName := ""
		if counterpart != nil {
			counterpartName = counterpart.Name
		}

		values := []interface{}{
			meeting.ID,
			meeting.Title,
			meeting.Description,
			counterpartName,
			meeting.StartTime.Format(time.RFC3339),
			meeting.EndTime.Format(time.RFC3339),
			string(meeting.Status),
			meeting.MeetingLink,
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Exported meetings", "user_id", requester.ID, "count", len(meetings))

	return buf.Bytes(), nil
}

// ===== HELPER METHODS =====

func applyMeetingUpdate(meeting *models.Meeting, req *UpdateMeetingRequest) (rescheduled bool) {
	if req.Title != nil {
		meeting.Title = *req.Title
	}
	if req.Description != nil {
		meeting.Description = *req.Description
	}
	if req.StartTime != nil {
		meeting.StartTime = *req.StartTime
		rescheduled = true
	}
	if req.EndTime != nil {
		meeting.EndTime = *req.EndTime
		rescheduled = true
	}
	if req.Status != nil {
		meeting.Status = models.MeetingStatus(*req.Status)
	}
	if req.MeetingLink != nil {
		meeting.MeetingLink = *req.MeetingLink
	}
	return rescheduled
}

func (s *meetingService) checkParticipant(ctx context.Context, userID uint, role models.UserRole) error {
	user, err := s.repo.User().GetByID(ctx, nil, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to look up participant: %w", err)
	}
	if user.Role != role {
		return fmt.Errorf("%w: user %d is not a %s", ErrValidationFailed, userID, role)
	}
	return nil
}

func (s *meetingService) counterpart(ctx context.Context, meeting *models.Meeting, userID uint) (*models.User, error) {
	counterpartID := meeting.CounterpartID(userID)
	if counterpartID == 0 {
		return nil, nil
	}

	counterpart, err := s.repo.User().GetByID(ctx, nil, counterpartID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up counterpart: %w", err)
	}
	return counterpart, nil
}

func (s *meetingService) buildResponse(ctx context.Context, meeting *models.Meeting, userID uint) (*models.MeetingResponse, error) {
	counterpart, err := s.counterpart(ctx, meeting, userID)
	if err != nil {
		return nil, err
	}
	return models.NewMeetingResponse(meeting, counterpart), nil
}

func (s *meetingService) publishEvent(ctx context.Context, eventType string, data interface{}) {
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
