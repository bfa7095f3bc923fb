package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mentorhub/matching-service/internal/config"
	"github.com/mentorhub/matching-service/internal/models"
)

// ErrInvalidToken is the single failure mode exposed by Parse. Callers
// must not learn whether a token was expired, malformed or forged.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the registered claim set plus the user attributes the
// frontend reads directly out of the token.
type Claims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email"`
	Name   string          `json:"name"`
	Role   models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret   []byte
	issuer   string
	audience string
	lifetime time.Duration
}

func NewTokenManager(cfg config.JWTConfig) *TokenManager {
	lifetime := cfg.Lifetime
	if lifetime <= 0 {
		lifetime = time.Hour
	}
	return &TokenManager{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		lifetime: lifetime,
	}
}

// Issue creates a signed access token for the user.
func (tm *TokenManager) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			Issuer:    tm.issuer,
			Audience:  jwt.ClaimStrings{tm.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.lifetime)),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, signing method, issuer, audience and expiry.
// All failures collapse to ErrInvalidToken.
func (tm *TokenManager) Parse(raw string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithAudience(tm.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.UserID == 0 {
		// Tokens signed before the user_id claim existed carry only sub.
		id, convErr := strconv.ParseUint(claims.Subject, 10, 64)
		if convErr != nil {
			return nil, ErrInvalidToken
		}
		claims.UserID = uint(id)
	}

	return claims, nil
}

// Lifetime returns the configured token lifetime.
func (tm *TokenManager) Lifetime() time.Duration {
	return tm.lifetime
}
