package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/rishavm/todoapi/internal/database"
	"github.com/rishavm/todoapi/internal/models"
)

const uniqueViolationCode = "23505"

type PostgresUserStore struct {
	db *database.Manager
}

func NewPostgresUserStore(db *database.Manager) *PostgresUserStore {
	return &PostgresUserStore{db: db}
}

func (s *PostgresUserStore) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.Pool().Exec(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (s *PostgresUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := s.db.Pool().QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStore) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := s.db.Pool().QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStore) AppendToken(ctx context.Context, userID string, token models.AuthToken) error {
	query := `
		INSERT INTO user_tokens (user_id, purpose, token)
		VALUES ($1, $2, $3)
	`

	_, err := s.db.Pool().Exec(ctx, query, userID, token.Purpose, token.Token)
	if err != nil {
		return fmt.Errorf("failed to append token: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) RemoveToken(ctx context.Context, userID, token string) error {
	query := `
		DELETE FROM user_tokens
		WHERE user_id = $1 AND token = $2
	`

	// Deleting zero rows is fine: revoking an absent token is a no-op.
	_, err := s.db.Pool().Exec(ctx, query, userID, token)
	if err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	return nil
}

func (s *PostgresUserStore) HasToken(ctx context.Context, userID, token string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM user_tokens
			WHERE user_id = $1 AND token = $2
		)
	`

	var exists bool
	if err := s.db.Pool().QueryRow(ctx, query, userID, token).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return exists, nil
}

func (s *PostgresUserStore) ListTokens(ctx context.Context, userID string) ([]models.AuthToken, error) {
	query := `
		SELECT purpose, token
		FROM user_tokens
		WHERE user_id = $1
		ORDER BY position ASC
	`

	rows, err := s.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tokens: %w", err)
	}
	defer rows.Close()

	var tokens []models.AuthToken
	for rows.Next() {
		var token models.AuthToken
		if err := rows.Scan(&token.Purpose, &token.Token); err != nil {
			return nil, fmt.Errorf("failed to scan token: %w", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read tokens: %w", err)
	}

	return tokens, nil
}
