package storage

import (
	"context"
	"errors"

	"github.com/rishavm/todoapi/internal/models"
)

var (
	// ErrNotFound is returned when no record matches; for creator-scoped
	// lookups an ownership mismatch is reported the same way.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when creating a user whose email is
	// already taken.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserStore persists user records and their session token sequences.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// AppendToken adds a token to the end of the user's sequence.
	AppendToken(ctx context.Context, userID string, token models.AuthToken) error

	// RemoveToken deletes the exact matching token entry. Removing a token
	// that is not present is not an error.
	RemoveToken(ctx context.Context, userID, token string) error

	// HasToken reports whether the exact token string is still present in
	// the user's sequence.
	HasToken(ctx context.Context, userID, token string) (bool, error)

	// ListTokens returns the user's tokens in issuance order.
	ListTokens(ctx context.Context, userID string) ([]models.AuthToken, error)
}

// TodoStore persists todos. Every operation that takes an id is scoped to a
// creator; a todo owned by someone else behaves exactly like a missing one.
type TodoStore interface {
	CreateTodo(ctx context.Context, todo *models.Todo) error
	ListTodosByCreator(ctx context.Context, creator string) ([]*models.Todo, error)
	GetTodoForCreator(ctx context.Context, creator, todoID string) (*models.Todo, error)
	UpdateTodoForCreator(ctx context.Context, creator string, todo *models.Todo) error
	DeleteTodoForCreator(ctx context.Context, creator, todoID string) error
}
