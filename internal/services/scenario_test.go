package services

import (
	"context"
	"testing"

	"github.com/mentorhub/matching-service/internal/models"
)

// Walks the full mentee path: signup, login, directory search, request,
// mentor accept, outgoing status check.
func TestMatchingScenario(t *testing.T) {
	ctx := context.Background()
	repo := newMockRepository()
	userService, _ := newTestUserService(repo)
	mentorService := newTestMentorService(repo)
	matchService, _ := newTestMatchRequestService(repo)
	tokenManager := testTokenManager()

	signUp := func(email, name string, role models.UserRole) *models.User {
		t.Helper()
		if _, err := userService.SignUp(ctx, &SignupRequest{
			Email: email, Password: "secret", Name: name, Role: role,
		}); err != nil {
			t.Fatalf("SignUp %s failed: %v", email, err)
		}

		login, err := userService.Login(ctx, &LoginRequest{Email: email, Password: "secret"})
		if err != nil {
			t.Fatalf("Login %s failed: %v", email, err)
		}

		claims, err := tokenManager.Parse(login.Token)
		if err != nil {
			t.Fatalf("Token for %s did not verify: %v", email, err)
		}

		user, err := repo.User().GetByID(ctx, nil, claims.UserID)
		if err != nil {
			t.Fatalf("Token subject for %s did not resolve: %v", email, err)
		}
		return user
	}

	mentor := signUp("grace@example.com", "Grace", models.RoleMentor)
	mentee := signUp("linus@example.com", "Linus", models.RoleMentee)

	if _, err := userService.UpdateProfile(ctx, mentor.ID, &UpdateProfileRequest{
		Name:   "Grace",
		Bio:    "Compilers and career advice",
		Skills: []string{"python", "compilers"},
	}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	mentors, err := mentorService.List(ctx, mentee, MentorListOptions{Skill: "python"})
	if err != nil {
		t.Fatalf("List mentors failed: %v", err)
	}
	if len(mentors) != 1 || mentors[0].ID != mentor.ID {
		t.Fatalf("Expected the python mentor in the directory, got %+v", mentors)
	}

	created, err := matchService.Create(ctx, mentee, &CreateMatchRequestRequest{
		MentorID: mentor.ID,
		Message:  "Would love some guidance",
	})
	if err != nil {
		t.Fatalf("Create match request failed: %v", err)
	}

	incoming, err := matchService.ListIncoming(ctx, mentor)
	if err != nil {
		t.Fatalf("ListIncoming failed: %v", err)
	}
	if len(incoming) != 1 || incoming[0].Status != models.MatchStatusPending {
		t.Fatalf("Expected one pending incoming request, got %+v", incoming)
	}

	if _, err := matchService.Accept(ctx, mentor, created.ID); err != nil {
		t.Fatalf("Accept failed: %v", err)
	}

	outgoing, err := matchService.ListOutgoing(ctx, mentee)
	if err != nil {
		t.Fatalf("ListOutgoing failed: %v", err)
	}
	if len(outgoing) != 1 || outgoing[0].Status != models.MatchStatusAccepted {
		t.Fatalf("Expected the outgoing request to be accepted, got %+v", outgoing)
	}
}
