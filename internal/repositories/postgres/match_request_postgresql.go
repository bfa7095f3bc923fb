package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
)

type matchRequestRepository struct {
	db *gorm.DB
}

func NewMatchRequestPostgreSQL(db *gorm.DB) repositories.MatchRequestRepository {
	return &matchRequestRepository{db: db}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *matchRequestRepository) Create(ctx context.Context, tx *gorm.DB, request *models.MatchRequest) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(request).Error; err != nil {
		return handleDBError(err, "create match request")
	}
	return nil
}

func (r *matchRequestRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MatchRequest, error) {
	db := r.getDB(tx)
	var request models.MatchRequest
	if err := db.WithContext(ctx).First(&request, id).Error; err != nil {
		return nil, handleDBError(err, "get match request by id")
	}
	return &request, nil
}

func (r *matchRequestRepository) GetForMentor(ctx context.Context, tx *gorm.DB, id, mentorID uint) (*models.MatchRequest, error) {
	db := r.getDB(tx)
	var request models.MatchRequest
	if err := db.WithContext(ctx).
		Where("id = ? AND mentor_id = ?", id, mentorID).
		First(&request).Error; err != nil {
		return nil, handleDBError(err, "get match request for mentor")
	}
	return &request, nil
}

func (r *matchRequestRepository) GetForMentee(ctx context.Context, tx *gorm.DB, id, menteeID uint) (*models.MatchRequest, error) {
	db := r.getDB(tx)
	var request models.MatchRequest
	if err := db.WithContext(ctx).
		Where("id = ? AND mentee_id = ?", id, menteeID).
		First(&request).Error; err != nil {
		return nil, handleDBError(err, "get match request for mentee")
	}
	return &request, nil
}

// ===== QUERY OPERATIONS =====

func (r *matchRequestRepository) ListByMentor(ctx context.Context, tx *gorm.DB, mentorID uint) ([]*models.MatchRequest, error) {
	db := r.getDB(tx)
	var requests []*models.MatchRequest
	if err := db.WithContext(ctx).
		Where("mentor_id = ?", mentorID).
		Order("id ASC").
		Find(&requests).Error; err != nil {
		return nil, handleDBError(err, "list match requests by mentor")
	}
	return requests, nil
}

func (r *matchRequestRepository) ListByMentee(ctx context.Context, tx *gorm.DB, menteeID uint) ([]*models.MatchRequest, error) {
	db := r.getDB(tx)
	var requests []*models.MatchRequest
	if err := db.WithContext(ctx).
		Where("mentee_id = ?", menteeID).
		Order("id ASC").
		Find(&requests).Error; err != nil {
		return nil, handleDBError(err, "list match requests by mentee")
	}
	return requests, nil
}

func (r *matchRequestRepository) HasLiveRequest(ctx context.Context, tx *gorm.DB, mentorID, menteeID uint) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.MatchRequest{}).
		Where("mentor_id = ? AND mentee_id = ? AND status IN ?",
			mentorID, menteeID,
			[]models.MatchRequestStatus{models.MatchStatusPending, models.MatchStatusAccepted}).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check live match request")
	}
	return count > 0, nil
}

// ===== STATUS OPERATIONS =====

func (r *matchRequestRepository) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MatchRequestStatus) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(&models.MatchRequest{}).
		Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return handleDBError(err, "update match request status")
	}
	return nil
}

func (r *matchRequestRepository) RejectOtherPending(ctx context.Context, tx *gorm.DB, mentorID, exceptID uint) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).
		Model(&models.MatchRequest{}).
		Where("mentor_id = ? AND status = ? AND id <> ?",
			mentorID, models.MatchStatusPending, exceptID).
		Update("status", models.MatchStatusRejected).Error; err != nil {
		return handleDBError(err, "reject other pending requests")
	}
	return nil
}

// ===== HELPER METHODS =====

func (r *matchRequestRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
