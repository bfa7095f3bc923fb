package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mentorhub/matching-service/internal/auth"
	"github.com/mentorhub/matching-service/internal/config"
	"github.com/mentorhub/matching-service/internal/models"
	"github.com/mentorhub/matching-service/internal/repositories"
	"github.com/mentorhub/matching-service/internal/utils"
)

// stubUserRepo serves only the GetByID lookup the middleware performs.
type stubUserRepo struct {
	users map[uint]*models.User
}

func (r *stubUserRepo) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) ExistsByEmail(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	return false, nil
}

func (r *stubUserRepo) Update(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return nil
}

func (r *stubUserRepo) ListMentors(ctx context.Context, tx *gorm.DB, filters repositories.MentorFilters) ([]*models.User, error) {
	return nil, nil
}

func newTestMiddleware(t *testing.T) (*JWTAuthMiddleware, *auth.TokenManager, *models.User) {
	t.Helper()

	tokenManager := auth.NewTokenManager(config.JWTConfig{
		Secret:   "test-secret",
		Issuer:   "matching-service",
		Audience: "matching-clients",
		Lifetime: time.Hour,
	})

	user := &models.User{
		ID:    1,
		Email: "ada@example.com",
		Name:  "Ada",
		Role:  models.RoleMentor,
	}
	repo := &stubUserRepo{users: map[uint]*models.User{user.ID: user}}

	return NewJWTAuthMiddleware(tokenManager, repo), tokenManager, user
}

func authTestRouter(am *JWTAuthMiddleware, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	handlers := []gin.HandlerFunc{am.AuthMiddleware()}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		user, err := GetUserFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, ErrorResponse{Message: err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"name": user.Name})
	})

	router.GET("/protected", handlers...)
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	am, tokenManager, user := newTestMiddleware(t)
	router := authTestRouter(am)

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokenManager.Issue(user)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		w := doRequest(router, "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var body map[string]string
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if body["name"] != "Ada" {
			t.Errorf("Expected user loaded from repository, got %v", body)
		}
	})

	t.Run("MissingHeader", func(t *testing.T) {
		w := doRequest(router, "")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		w := doRequest(router, "Token abc")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("GarbageToken", func(t *testing.T) {
		w := doRequest(router, "Bearer not.a.token")
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected 401, got %d", w.Code)
		}
	})

	t.Run("DeletedUser", func(t *testing.T) {
		ghost := &models.User{ID: 99, Email: "gone@example.com", Name: "Gone", Role: models.RoleMentee}
		token, err := tokenManager.Issue(ghost)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		w := doRequest(router, "Bearer "+token)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("Expected token of a deleted user to fail with 401, got %d", w.Code)
		}
	})
}

func TestRequireRoleMiddleware(t *testing.T) {
	am, tokenManager, mentor := newTestMiddleware(t)

	token, err := tokenManager.Issue(mentor)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	t.Run("AllowedRole", func(t *testing.T) {
		router := authTestRouter(am, am.RequireRoleMiddleware(models.RoleMentor))
		w := doRequest(router, "Bearer "+token)
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for mentor route, got %d", w.Code)
		}
	})

	t.Run("ForbiddenRole", func(t *testing.T) {
		router := authTestRouter(am, am.RequireRoleMiddleware(models.RoleMentee))
		w := doRequest(router, "Bearer "+token)
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403 for mentee-only route, got %d", w.Code)
		}
	})

	t.Run("NoAuthContext", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/protected", am.RequireRoleMiddleware(models.RoleMentor), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})

		w := doRequest(router, "")
		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403 without auth context, got %d", w.Code)
		}
	})
}

func TestBaseHandler_ParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	base := NewBaseHandler(logger)

	router := gin.New()
	router.GET("/items/:id", func(c *gin.Context) {
		id, ok := base.parseIDParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	tests := []struct {
		name string
		path string
		code int
	}{
		{"Valid", "/items/42", http.StatusOK},
		{"Zero", "/items/0", http.StatusBadRequest},
		{"NotANumber", "/items/abc", http.StatusBadRequest},
		{"Negative", "/items/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.code {
				t.Errorf("Expected %d, got %d", tt.code, w.Code)
			}
		})
	}
}
