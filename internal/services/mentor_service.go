package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/validator"
)

type mentorService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewMentorService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) MentorService {
	return &mentorService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// ===== DIRECTORY OPERATIONS =====

func (s *mentorService) List(ctx context.Context, requester *models.User, opts MentorListOptions) ([]*models.ProfileResponse, error) {
	if requester.Role != models.RoleMentee {
		return nil, NewPermissionError(requester.ID, 0, "mentor_directory", "list",
			"Only mentees can access this endpoint")
	}

	if err := s.validator.Validate(&opts); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	mentors, err := s.repo.User().ListMentors(ctx, nil, repositories.MentorFilters{Skill: opts.Skill})
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}

	sortMentors(mentors, opts.OrderBy)

	responses := make([]*models.ProfileResponse, 0, len(mentors))
	for _, mentor := range mentors {
		responses = append(responses, models.NewProfileResponse(mentor))
	}

	return responses, nil
}

// sortMentors orders the directory in memory. The database already
// returns rows in id order, which is the default.
func sortMentors(mentors []*models.User, orderBy string) {
	switch orderBy {
	case "name":
		sort.SliceStable(mentors, func(i, j int) bool {
			return mentors[i].Name < mentors[j].Name
		})
	case "skill":
		sort.SliceStable(mentors, func(i, j int) bool {
			return firstSkill(mentors[i]) < firstSkill(mentors[j])
		})
	}
}

func firstSkill(user *models.User) string {
	skills := user.SkillList()
	if len(skills) == 0 {
		return ""
	}
	return skills[0]
}
