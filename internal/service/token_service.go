package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrTokenInvalid covers every token rejection: malformed, mis-signed, or
// expired. Callers are never told which, so a probe learns nothing.
var ErrTokenInvalid = errors.New("invalid or expired token")

// Claims binds a token to a user identifier alongside the registered
// issued-at and expiry claims. Tokens carry no other state.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService mints and validates stateless signed tokens. There is no
// server-side session record; validity is a function of signature and expiry.
type TokenService interface {
	GenerateAccessToken(userID string) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ValidateToken(token string) (string, error)
	AccessTTL() time.Duration
	RefreshTTL() time.Duration
}

type tokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) TokenService {
	return &tokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *tokenService) GenerateAccessToken(userID string) (string, error) {
	return s.generate(userID, s.accessTTL)
}

func (s *tokenService) GenerateRefreshToken(userID string) (string, error) {
	return s.generate(userID, s.refreshTTL)
}

func (s *tokenService) generate(userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken returns the bound user id, or ErrTokenInvalid for any failure.
func (s *tokenService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}
	return claims.UserID, nil
}

func (s *tokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

func (s *tokenService) RefreshTTL() time.Duration {
	return s.refreshTTL
}
