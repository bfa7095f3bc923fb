package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/cache"
	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
)

const (
	userCacheTTL       = 5 * time.Minute
	mentorListCacheTTL = 5 * time.Minute
	mentorListKey      = "all"
)

type userRepository struct {
	db     *gorm.DB
	caches *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, caches *cache.CacheManager) repositories.UserRepository {
	return &userRepository{
		db:     db,
		caches: caches,
	}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *userRepository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}

	r.flushMentorListings(ctx, user)

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	// Within a transaction the row may have been changed by the same
	// transaction, so the cache is bypassed.
	if tx != nil {
		var user models.User
		if err := tx.WithContext(ctx).First(&user, id).Error; err != nil {
			return nil, handleDBError(err, "get user by id")
		}
		return &user, nil
	}

	var user models.User
	err := r.caches.User.CacheOrExecute(ctx, r.idKey(id), &user, userCacheTTL, func() (interface{}, error) {
		var row models.User
		if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
			return nil, err
		}
		return &row, nil
	})
	if err != nil {
		return nil, handleDBError(err, "get user by id")
	}

	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	db := r.getDB(tx)
	var user models.User
	if err := db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, handleDBError(err, "get user by email")
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	db := r.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, handleDBError(err, "check email exists")
	}
	return count > 0, nil
}

func (r *userRepository) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	db := r.getDB(tx)
	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		return handleDBError(err, "update user")
	}

	r.caches.InvalidateUser(ctx, user.ID)

	return nil
}

// ===== QUERY OPERATIONS =====

func (r *userRepository) ListMentors(ctx context.Context, tx *gorm.DB, filters repositories.MentorFilters) ([]*models.User, error) {
	// Only the unfiltered listing is cached, filtered queries go to
	// the database directly.
	cacheable := tx == nil && filters.Skill == ""
	if cacheable {
		var cached []*models.User
		if err := r.caches.MentorList.Get(ctx, mentorListKey, &cached); err == nil {
			return cached, nil
		}
	}

	db := r.getDB(tx)
	var mentors []*models.User

	query := db.WithContext(ctx).
		Model(&models.User{}).
		Where("role = ?", models.RoleMentor)

	// Skill matching is raw substring containment against the stored
	// skills text, term lowered first.
	if filters.Skill != "" {
		query = query.Where("skills LIKE ?", "%"+strings.ToLower(filters.Skill)+"%")
	}

	if err := query.Order("id ASC").Find(&mentors).Error; err != nil {
		return nil, handleDBError(err, "list mentors")
	}

	if cacheable {
		_ = r.caches.MentorList.Set(ctx, mentorListKey, mentors, mentorListCacheTTL)
	}

	return mentors, nil
}

// ===== HELPER METHODS =====

// flushMentorListings drops cached directory listings so a newly
// registered mentor becomes visible immediately.
func (r *userRepository) flushMentorListings(ctx context.Context, user *models.User) {
	if user.Role != models.RoleMentor {
		return
	}
	cache.SafeInvalidatePattern(ctx, r.caches.MentorList, "*")
}

func (r *userRepository) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *userRepository) idKey(id uint) string {
	return fmt.Sprintf("id:%d", id)
}
