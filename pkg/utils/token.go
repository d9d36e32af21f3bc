package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims represents the claims carried by the auth-token cookie.
type SessionClaims struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	jwt.RegisteredClaims
}

// TokenManager signs and validates the HMAC-signed session tokens carried
// by the auth cookie.
type TokenManager struct {
	secretKey []byte
	expiry    time.Duration
}

// NewTokenManager creates a new token manager
func NewTokenManager(secret string, expiry time.Duration) *TokenManager {
	return &TokenManager{
		secretKey: []byte(secret),
		expiry:    expiry,
	}
}

// Expiry returns the configured token lifetime.
func (m *TokenManager) Expiry() time.Duration {
	return m.expiry
}

// Generate creates a signed session token for the given user.
func (m *TokenManager) Generate(userID uuid.UUID, email, name string) (string, error) {
	claims := &SessionClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "bizbooks-api",
			Subject:   userID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// Validate parses a session token and returns its claims.
func (m *TokenManager) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
