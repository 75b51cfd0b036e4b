package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/rishavm/todoapi/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	Purpose string `json:"purpose"`
}

// TokenManager signs and verifies session tokens with a process-wide
// symmetric secret. Verification only proves the token was issued for a
// user; whether the session is still live is decided against the user's
// stored token sequence.
type TokenManager struct {
	secretKey     []byte
	tokenDuration time.Duration
}

// NewTokenManager creates a token manager. A zero duration produces
// non-expiring tokens; revocation then relies entirely on the stored
// token sequence.
func NewTokenManager(secretKey string, tokenDuration time.Duration) *TokenManager {
	return &TokenManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
	}
}

func (m *TokenManager) Generate(userID string) (string, error) {
	claims := Claims{
		UserID:  userID,
		Purpose: models.TokenPurposeAuth,
	}
	if m.tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(m.tokenDuration))
	}
	claims.IssuedAt = jwt.NewNumericDate(time.Now())
	// iat has second precision; the jti keeps back-to-back tokens for the
	// same user distinct.
	claims.ID = uuid.New().String()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and payload and returns the user id the token
// was issued for. Bad signatures, malformed payloads, expired tokens, and
// tokens with a purpose other than "auth" all fail with ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	if claims.Purpose != models.TokenPurposeAuth || claims.UserID == "" {
		return "", ErrInvalidToken
	}

	return claims.UserID, nil
}
