package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
)

// mockRepository is an in-memory Repository implementation for tests.
type mockRepository struct {
	users    map[uint]*models.User
	requests map[uint]*models.MatchRequest
	meetings map[uint]*models.Meeting
	nextID   uint

	// requestCreateErr simulates a constraint violation on insert.
	requestCreateErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:    make(map[uint]*models.User),
		requests: make(map[uint]*models.MatchRequest),
		meetings: make(map[uint]*models.Meeting),
	}
}

func (m *mockRepository) addUser(user *models.User) *models.User {
	if user.ID == 0 {
		m.nextID++
		user.ID = m.nextID
	} else if user.ID > m.nextID {
		m.nextID = user.ID
	}
	m.users[user.ID] = user
	return user
}

func (m *mockRepository) User() repositories.UserRepository {
	return &mockUserRepo{m}
}

func (m *mockRepository) MatchRequest() repositories.MatchRequestRepository {
	return &mockMatchRequestRepo{m}
}

func (m *mockRepository) Meeting() repositories.MeetingRepository {
	return &mockMeetingRepo{m}
}

func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) WithSerializableTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}

func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// ===== USER REPOSITORY =====

type mockUserRepo struct {
	m *mockRepository
}

func (r *mockUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	for _, existing := range r.m.users {
		if existing.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	r.m.addUser(user)
	return nil
}

func (r *mockUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	user, ok := r.m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *mockUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	for _, user := range r.m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	for _, user := range r.m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	if _, ok := r.m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.m.users[user.ID] = user
	return nil
}

func (r *mockUserRepo) ListMentors(ctx context.Context, tx *gorm.DB, filters repositories.MentorFilters) ([]*models.User, error) {
	var mentors []*models.User
	for _, user := range r.m.users {
		if user.Role != models.RoleMentor {
			continue
		}
		if filters.Skill != "" && !strings.Contains(user.Skills, strings.ToLower(filters.Skill)) {
			continue
		}
		mentors = append(mentors, user)
	}
	sort.Slice(mentors, func(i, j int) bool { return mentors[i].ID < mentors[j].ID })
	return mentors, nil
}

// ===== MATCH REQUEST REPOSITORY =====

type mockMatchRequestRepo struct {
	m *mockRepository
}

func (r *mockMatchRequestRepo) Create(ctx context.Context, tx *gorm.DB, request *models.MatchRequest) error {
	if r.m.requestCreateErr != nil {
		return r.m.requestCreateErr
	}
	r.m.nextID++
	request.ID = r.m.nextID
	r.m.requests[request.ID] = request
	return nil
}

func (r *mockMatchRequestRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.MatchRequest, error) {
	request, ok := r.m.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (r *mockMatchRequestRepo) GetForMentor(ctx context.Context, tx *gorm.DB, id, mentorID uint) (*models.MatchRequest, error) {
	request, ok := r.m.requests[id]
	if !ok || request.MentorID != mentorID {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (r *mockMatchRequestRepo) GetForMentee(ctx context.Context, tx *gorm.DB, id, menteeID uint) (*models.MatchRequest, error) {
	request, ok := r.m.requests[id]
	if !ok || request.MenteeID != menteeID {
		return nil, gorm.ErrRecordNotFound
	}
	return request, nil
}

func (r *mockMatchRequestRepo) ListByMentor(ctx context.Context, tx *gorm.DB, mentorID uint) ([]*models.MatchRequest, error) {
	var requests []*models.MatchRequest
	for _, request := range r.m.requests {
		if request.MentorID == mentorID {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (r *mockMatchRequestRepo) ListByMentee(ctx context.Context, tx *gorm.DB, menteeID uint) ([]*models.MatchRequest, error) {
	var requests []*models.MatchRequest
	for _, request := range r.m.requests {
		if request.MenteeID == menteeID {
			requests = append(requests, request)
		}
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID < requests[j].ID })
	return requests, nil
}

func (r *mockMatchRequestRepo) HasLiveRequest(ctx context.Context, tx *gorm.DB, mentorID, menteeID uint) (bool, error) {
	for _, request := range r.m.requests {
		if request.MentorID == mentorID && request.MenteeID == menteeID && request.Status.IsLive() {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockMatchRequestRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uint, status models.MatchRequestStatus) error {
	request, ok := r.m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	request.Status = status
	return nil
}

func (r *mockMatchRequestRepo) RejectOtherPending(ctx context.Context, tx *gorm.DB, mentorID, exceptID uint) error {
	for _, request := range r.m.requests {
		if request.MentorID == mentorID && request.Status == models.MatchStatusPending && request.ID != exceptID {
			request.Status = models.MatchStatusRejected
		}
	}
	return nil
}

// ===== MEETING REPOSITORY =====

type mockMeetingRepo struct {
	m *mockRepository
}

func (r *mockMeetingRepo) Create(ctx context.Context, tx *gorm.DB, meeting *models.Meeting) error {
	r.m.nextID++
	meeting.ID = r.m.nextID
	r.m.meetings[meeting.ID] = meeting
	return nil
}

func (r *mockMeetingRepo) GetForParticipant(ctx context.Context, tx *gorm.DB, id, userID uint) (*models.Meeting, error) {
	meeting, ok := r.m.meetings[id]
	if !ok || !meeting.HasParticipant(userID) {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *meeting
	return &copied, nil
}

func (r *mockMeetingRepo) ListByParticipant(ctx context.Context, tx *gorm.DB, userID uint) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	for _, meeting := range r.m.meetings {
		if meeting.HasParticipant(userID) {
			meetings = append(meetings, meeting)
		}
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.After(meetings[j].StartTime)
	})
	return meetings, nil
}

func (r *mockMeetingRepo) ListInWindow(ctx context.Context, tx *gorm.DB, userID uint, window repositories.MeetingWindow) ([]*models.Meeting, error) {
	var meetings []*models.Meeting
	for _, meeting := range r.m.meetings {
		if !meeting.HasParticipant(userID) {
			continue
		}
		if meeting.StartTime.Before(window.From) || !meeting.StartTime.Before(window.To) {
			continue
		}
		meetings = append(meetings, meeting)
	}
	sort.Slice(meetings, func(i, j int) bool {
		return meetings[i].StartTime.Before(meetings[j].StartTime)
	})
	return meetings, nil
}

func (r *mockMeetingRepo) HasOverlap(ctx context.Context, tx *gorm.DB, mentorID, menteeID uint, start, end time.Time, excludeID uint) (bool, error) {
	for _, meeting := range r.m.meetings {
		if meeting.ID == excludeID || meeting.Status != models.MeetingStatusScheduled {
			continue
		}
		if !meeting.HasParticipant(mentorID) && !meeting.HasParticipant(menteeID) {
			continue
		}
		if meeting.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (r *mockMeetingRepo) Update(ctx context.Context, tx *gorm.DB, meeting *models.Meeting) error {
	if _, ok := r.m.meetings[meeting.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	copied := *meeting
	r.m.meetings[meeting.ID] = &copied
	return nil
}

func (r *mockMeetingRepo) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	if _, ok := r.m.meetings[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.m.meetings, id)
	return nil
}
