package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rishavm/todoapi/internal/auth"
	"github.com/rishavm/todoapi/internal/models"
	"github.com/rishavm/todoapi/internal/storage"
)

func newUserService() (*UserService, *storage.MemoryUserStore) {
	store := storage.NewMemoryUserStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewUserService(store, tokens), store
}

func TestRegister(t *testing.T) {
	svc, store := newUserService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected user to have an id")
	}
	if user.Email != "a@x.com" {
		t.Errorf("expected email 'a@x.com', got %q", user.Email)
	}
	if user.PasswordHash == "pass123" {
		t.Error("password must not be stored in plaintext")
	}
	if token == "" {
		t.Error("expected a session token")
	}

	tokens, err := store.ListTokens(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("expected 1 stored token, got %d", len(tokens))
	}
	if tokens[0].Purpose != models.TokenPurposeAuth {
		t.Errorf("expected purpose %q, got %q", models.TokenPurposeAuth, tokens[0].Purpose)
	}
	if tokens[0].Token != token {
		t.Error("stored token does not match issued token")
	}
}

func TestRegister_InvalidEmail(t *testing.T) {
	svc, _ := newUserService()

	_, _, err := svc.Register(context.Background(), "not-an-email", "pass123")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "email" {
		t.Errorf("expected field 'email', got %q", validationErr.Field)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc, _ := newUserService()

	_, _, err := svc.Register(context.Background(), "a@x.com", "12345")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "password" {
		t.Errorf("expected field 'password', got %q", validationErr.Field)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, store := newUserService()
	ctx := context.Background()

	first, _, err := svc.Register(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err = svc.Register(ctx, "a@x.com", "otherpass")
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError for duplicate email, got %v", err)
	}

	// Exactly the first registration persists.
	user, err := store.GetUserByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != first.ID {
		t.Error("duplicate registration must not replace the existing user")
	}
}

func TestLogin(t *testing.T) {
	svc, store := newUserService()
	ctx := context.Background()

	registered, firstToken, err := svc.Register(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, secondToken, err := svc.Login(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Error("login resolved a different user")
	}
	if secondToken == firstToken {
		t.Error("login must issue a fresh token")
	}

	// Earlier sessions stay valid: the sequence grows, it is not replaced.
	tokens, err := store.ListTokens(ctx, user.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("expected 2 stored tokens, got %d", len(tokens))
	}
	if tokens[0].Token != firstToken || tokens[1].Token != secondToken {
		t.Error("tokens must be stored in issuance order")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newUserService()

	_, _, err := svc.Login(context.Background(), "nobody@x.com", "pass123")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@x.com", "pass123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, err := svc.Login(ctx, "a@x.com", "wrongpass")
	if err != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_FailureCausesIndistinguishable(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@x.com", "pass123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, _, unknownErr := svc.Login(ctx, "nobody@x.com", "pass123")
	_, _, wrongPassErr := svc.Login(ctx, "a@x.com", "wrongpass")

	if unknownErr != wrongPassErr {
		t.Error("unknown email and wrong password must yield the same error")
	}
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	registered, token, err := svc.Register(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Error("authenticate resolved the wrong user")
	}
}

func TestAuthenticate_EmptyToken(t *testing.T) {
	svc, _ := newUserService()

	if _, err := svc.Authenticate(context.Background(), ""); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticate_GarbageToken(t *testing.T) {
	svc, _ := newUserService()

	if _, err := svc.Authenticate(context.Background(), "not-a-token"); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthenticate_UserGone(t *testing.T) {
	// A token can verify cryptographically while its user no longer exists;
	// that is a distinct failure cause with the same outcome.
	store := storage.NewMemoryUserStore()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	svc := NewUserService(store, tokens)

	orphan, err := tokens.Generate("no-such-user")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Authenticate(context.Background(), orphan); err != ErrInvalidToken {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestLogout(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, user.ID, token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The signature is still valid, but the token left the stored sequence.
	if _, err := svc.Authenticate(ctx, token); err != ErrInvalidToken {
		t.Errorf("expected revoked token to be rejected, got %v", err)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, user.ID, token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Logout(ctx, user.ID, token); err != nil {
		t.Errorf("expected logout of absent token to succeed, got %v", err)
	}
}

func TestLogout_OtherSessionsSurvive(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	user, firstToken, err := svc.Register(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, secondToken, err := svc.Login(ctx, "a@x.com", "pass123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Logout(ctx, user.ID, secondToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Authenticate(ctx, firstToken); err != nil {
		t.Errorf("expected the remaining session to stay valid, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, secondToken); err != ErrInvalidToken {
		t.Errorf("expected the revoked session to be rejected, got %v", err)
	}
}
