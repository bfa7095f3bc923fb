package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
)

type meetingRepository struct {
	db *gorm.DB
}

func NewMeetingPostgreSQL(db *gorm.DB) repositories.MeetingRepository {
	return &meetingRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *meetingRepository) Create(ctx context.Context, tx *gorm.DB, meeting *models.Meeting) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(meeting).Error; err != nil {
		return handleDBError(err, "create meeting")
	}
	return nil
}

func (r *meetingRepository) GetForParticipant(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Meeting, error) {
	db := r.getDB(tx)
	var meeting models.Meeting
	if err := db.WithContext(ctx).
		Where("id = ? AND (mentor_id = ? OR mentee_id = ?)", id, userID, userID).
		First(&meeting).Error; err != nil {
		return nil, handleDBError(err, "get meeting for participant")
	}
	return &meeting, nil
}

func (r *meetingRepository) Update(ctx context.Context, tx *gorm.DB, meeting *models.Meeting) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(meeting).Error; err != nil {
		return handleDBError(err, "update meeting")
	}
	return nil
}

func (r *meetingRepository) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := r.getDB(tx)
	result := db.WithContext(ctx).Delete(&models.Meeting{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete meeting")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete meeting")
	}
	return nil
}

// ===== QUERY OPERATIONS =====

func (r *meetingRepository) ListByParticipant(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Meeting, error) {
	db := r.getDB(tx)
	var meetings []*models.Meeting
	if err := db.WithContext(ctx).
		Where("mentor_id = ? OR mentee_id = ?", userID, userID).
		Order("start_time DESC").
		Find(&meetings).Error; err != nil {
		return nil, handleDBError(err, "list meetings by participant")
	}
	return meetings, nil
}

func (r *meetingRepository) ListInWindow(ctx context.Context, tx *gorm.DB, userID uint, window repositories.MeetingWindow) ([]*models.Meeting, error) {
	db := r.getDB(tx)
	var meetings []*models.Meeting
	if err := db.WithContext(ctx).
		Where("(mentor_id = ? OR mentee_id = ?) AND start_time >= ? AND start_time < ?",
			userID, userID, window.From, window.To).
		Order("start_time ASC").
		Find(&meetings).Error; err != nil {
		return nil, handleDBError(err, "list meetings in window")
	}
	return meetings, nil
}

// HasOverlap reports whether any scheduled meeting sharing either
// participant intersects the half-open interval [start, end).
func (r *meetingRepository) HasOverlap(ctx context.Context, tx *gorm.DB, mentorID, menteeID uint, start, end time.Time, excludeID uint) (bool, error) {
	db := r.getDB(tx)
	query := db.WithContext(ctx).
		Model(&models.Meeting{}).
		Where("status = ?", models.MeetingStatusScheduled).
		Where("(mentor_id IN ? OR mentee_id IN ?)", []uint{mentorID, menteeID}, []uint{mentorID, menteeID}).
		Where("start_time < ? AND end_time > ?", end, start)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, handleDBError(err, "check meeting overlap")
	}
	return count > 0, nil
}

// ===== HELPER METHODS =====

func (r *meetingRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
