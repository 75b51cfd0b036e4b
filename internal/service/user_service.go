package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rishavm/todoapi/internal/auth"
	"github.com/rishavm/todoapi/internal/logger"
	"github.com/rishavm/todoapi/internal/models"
	"github.com/rishavm/todoapi/internal/storage"
	"github.com/rishavm/todoapi/internal/validation"
)

type UserService struct {
	users  storage.UserStore
	tokens *auth.TokenManager
	log    *logger.Logger
}

func NewUserService(users storage.UserStore, tokens *auth.TokenManager) *UserService {
	return &UserService{
		users:  users,
		tokens: tokens,
		log:    logger.New("user-service"),
	}
}

// Register creates a user and issues their first session token. The returned
// user never carries the plaintext secret; only its bcrypt hash is stored.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, string, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", &ValidationError{Field: "email", Reason: err.Error()}
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, "", &ValidationError{Field: "password", Reason: err.Error()}
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			s.log.Warn("registration rejected, email taken: %s", email)
			return nil, "", &ValidationError{Field: "email", Reason: "email already in use"}
		}
		return nil, "", err
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user registered: %s", user.ID)
	return user, token, nil
}

// Login verifies credentials and issues a new session token. Earlier tokens
// stay valid, so a user may hold several concurrent sessions.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.Warn("login failed, unknown email: %s", email)
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		s.log.Warn("login failed, wrong password: %s", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user logged in: %s", user.ID)
	return user, token, nil
}

// Logout revokes one session token. Revoking a token that is already gone is
// still success; repeated logouts are harmless.
func (s *UserService) Logout(ctx context.Context, userID, token string) error {
	if err := s.users.RemoveToken(ctx, userID, token); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return err
	}
	s.log.Info("session revoked: %s", userID)
	return nil
}

// Authenticate resolves a raw token to its owning user. It verifies the
// signature and payload, then confirms the user still exists and the token
// is still present in their stored sequence, so logged-out tokens fail even
// though their signature remains valid.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Valid signature but the user is gone. Same outcome as a bad
			// token, different cause.
			s.log.Warn("token verified but user missing: %s", userID)
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	present, err := s.users.HasToken(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if !present {
		s.log.Warn("revoked token presented: %s", userID)
		return nil, ErrInvalidToken
	}

	return user, nil
}

func (s *UserService) issueToken(ctx context.Context, user *models.User) (string, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", err
	}

	entry := models.AuthToken{Purpose: models.TokenPurposeAuth, Token: token}
	if err := s.users.AppendToken(ctx, user.ID, entry); err != nil {
		return "", err
	}
	user.Tokens = append(user.Tokens, entry)

	return token, nil
}
