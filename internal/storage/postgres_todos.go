package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rishavm/todoapi/internal/database"
	"github.com/rishavm/todoapi/internal/models"
)

type PostgresTodoStore struct {
	db *database.Manager
}

func NewPostgresTodoStore(db *database.Manager) *PostgresTodoStore {
	return &PostgresTodoStore{db: db}
}

func (s *PostgresTodoStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	query := `
		INSERT INTO todos (id, text, completed, completed_at, creator, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := s.db.Pool().Exec(ctx, query,
		todo.ID,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.Creator,
		todo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create todo: %w", err)
	}
	return nil
}

func (s *PostgresTodoStore) ListTodosByCreator(ctx context.Context, creator string) ([]*models.Todo, error) {
	query := `
		SELECT id, text, completed, completed_at, creator, created_at
		FROM todos
		WHERE creator = $1
	`

	rows, err := s.db.Pool().Query(ctx, query, creator)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := make([]*models.Todo, 0)
	for rows.Next() {
		var todo models.Todo
		if err := rows.Scan(
			&todo.ID,
			&todo.Text,
			&todo.Completed,
			&todo.CompletedAt,
			&todo.Creator,
			&todo.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, &todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read todos: %w", err)
	}

	return todos, nil
}

func (s *PostgresTodoStore) GetTodoForCreator(ctx context.Context, creator, todoID string) (*models.Todo, error) {
	query := `
		SELECT id, text, completed, completed_at, creator, created_at
		FROM todos
		WHERE id = $1 AND creator = $2
	`

	var todo models.Todo
	err := s.db.Pool().QueryRow(ctx, query, todoID, creator).Scan(
		&todo.ID,
		&todo.Text,
		&todo.Completed,
		&todo.CompletedAt,
		&todo.Creator,
		&todo.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get todo: %w", err)
	}

	return &todo, nil
}

func (s *PostgresTodoStore) UpdateTodoForCreator(ctx context.Context, creator string, todo *models.Todo) error {
	query := `
		UPDATE todos
		SET text = $1, completed = $2, completed_at = $3
		WHERE id = $4 AND creator = $5
	`

	tag, err := s.db.Pool().Exec(ctx, query,
		todo.Text,
		todo.Completed,
		todo.CompletedAt,
		todo.ID,
		creator,
	)
	if err != nil {
		return fmt.Errorf("failed to update todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresTodoStore) DeleteTodoForCreator(ctx context.Context, creator, todoID string) error {
	query := `
		DELETE FROM todos
		WHERE id = $1 AND creator = $2
	`

	tag, err := s.db.Pool().Exec(ctx, query, todoID, creator)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
