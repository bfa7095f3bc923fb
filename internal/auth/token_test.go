package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mentorhub/matching-service/internal/config"
	"github.com/mentorhub/matching-service/internal/models"
)

func testConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:   "test-secret",
		Issuer:   "mentor-mentee-app",
		Audience: "mentor-mentee-client",
		Lifetime: time.Hour,
	}
}

func testUser() *models.User {
	return &models.User{
		ID:    42,
		Email: "user@example.com",
		Name:  "Ada",
		Role:  models.RoleMentor,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testConfig())

	token, err := tm.Issue(testUser())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	claims, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if claims.UserID != 42 {
		t.Errorf("Expected user ID 42, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Unexpected email: %s", claims.Email)
	}
	if claims.Role != models.RoleMentor {
		t.Errorf("Unexpected role: %s", claims.Role)
	}
	if claims.Subject != "42" {
		t.Errorf("Unexpected subject: %s", claims.Subject)
	}
	if claims.ID == "" {
		t.Error("Expected a jti claim")
	}
}

func TestTokenManager_Parse(t *testing.T) {
	tm := NewTokenManager(testConfig())

	t.Run("WrongSecret", func(t *testing.T) {
		otherCfg := testConfig()
		otherCfg.Secret = "different-secret"
		other := NewTokenManager(otherCfg)

		token, err := other.Issue(testUser())
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("Expired", func(t *testing.T) {
		cfg := testConfig()
		cfg.Lifetime = -time.Minute
		expired := NewTokenManager(cfg)

		// Negative lifetime falls back to the default, so build the
		// token by hand with an exp in the past.
		claims := Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "42",
				Issuer:    cfg.Issuer,
				Audience:  jwt.ClaimStrings{cfg.Audience},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.Secret))
		if err != nil {
			t.Fatalf("Signing failed: %v", err)
		}

		if _, err := expired.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
		}
	})

	t.Run("WrongIssuer", func(t *testing.T) {
		cfg := testConfig()
		cfg.Issuer = "someone-else"
		other := NewTokenManager(cfg)

		token, err := other.Issue(testUser())
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for wrong issuer, got %v", err)
		}
	})

	t.Run("WrongAudience", func(t *testing.T) {
		cfg := testConfig()
		cfg.Audience = "another-client"
		other := NewTokenManager(cfg)

		token, err := other.Issue(testUser())
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for wrong audience, got %v", err)
		}
	})

	t.Run("NoneAlgorithmRejected", func(t *testing.T) {
		claims := Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "42",
				Issuer:    "mentor-mentee-app",
				Audience:  jwt.ClaimStrings{"mentor-mentee-client"},
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("Signing failed: %v", err)
		}

		if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for alg=none, got %v", err)
		}
	})

	t.Run("MissingExpiry", func(t *testing.T) {
		claims := Claims{
			UserID: 42,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:  "42",
				Issuer:   "mentor-mentee-app",
				Audience: jwt.ClaimStrings{"mentor-mentee-client"},
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("Signing failed: %v", err)
		}

		if _, err := tm.Parse(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken for missing exp, got %v", err)
		}
	})

	t.Run("Garbage", func(t *testing.T) {
		if _, err := tm.Parse("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("SubjectFallback", func(t *testing.T) {
		claims := jwt.RegisteredClaims{
			Subject:   "7",
			Issuer:    "mentor-mentee-app",
			Audience:  jwt.ClaimStrings{"mentor-mentee-client"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("Signing failed: %v", err)
		}

		parsed, err := tm.Parse(token)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		if parsed.UserID != 7 {
			t.Errorf("Expected user ID from subject, got %d", parsed.UserID)
		}
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "hunter2" {
		t.Error("Hash should not equal plaintext")
	}

	if !CheckPassword(hash, "hunter2") {
		t.Error("Correct password rejected")
	}
	if CheckPassword(hash, "hunter3") {
		t.Error("Wrong password accepted")
	}
}
