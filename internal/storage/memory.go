package storage

import (
	"context"
	"sync"

	"github.com/rishavm/todoapi/internal/models"
)

// MemoryUserStore is a mutex-guarded in-memory UserStore. It honors the same
// contract as the Postgres implementation, including the unique-email
// constraint, and backs service and handler tests.
type MemoryUserStore struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	byEmail map[string]string
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{
		users:   make(map[string]*models.User),
		byEmail: make(map[string]string),
	}
}

func (s *MemoryUserStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return ErrDuplicateEmail
	}

	stored := *user
	stored.Tokens = append([]models.AuthToken(nil), user.Tokens...)
	s.users[user.ID] = &stored
	s.byEmail[user.Email] = user.ID
	return nil
}

func (s *MemoryUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return s.copyUser(id), nil
}

func (s *MemoryUserStore) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, ErrNotFound
	}
	return s.copyUser(userID), nil
}

func (s *MemoryUserStore) AppendToken(ctx context.Context, userID string, token models.AuthToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}
	user.Tokens = append(user.Tokens, token)
	return nil
}

func (s *MemoryUserStore) RemoveToken(ctx context.Context, userID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}

	kept := user.Tokens[:0]
	for _, t := range user.Tokens {
		if t.Token != token {
			kept = append(kept, t)
		}
	}
	user.Tokens = kept
	return nil
}

func (s *MemoryUserStore) HasToken(ctx context.Context, userID, token string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	for _, t := range user.Tokens {
		if t.Token == token {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryUserStore) ListTokens(ctx context.Context, userID string) ([]models.AuthToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]models.AuthToken(nil), user.Tokens...), nil
}

// copyUser must be called with the lock held.
func (s *MemoryUserStore) copyUser(id string) *models.User {
	user := *s.users[id]
	user.Tokens = append([]models.AuthToken(nil), s.users[id].Tokens...)
	return &user
}

// MemoryTodoStore is the in-memory TodoStore counterpart.
type MemoryTodoStore struct {
	mu    sync.RWMutex
	todos map[string]*models.Todo
}

func NewMemoryTodoStore() *MemoryTodoStore {
	return &MemoryTodoStore{
		todos: make(map[string]*models.Todo),
	}
}

func (s *MemoryTodoStore) CreateTodo(ctx context.Context, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *todo
	s.todos[todo.ID] = &stored
	return nil
}

func (s *MemoryTodoStore) ListTodosByCreator(ctx context.Context, creator string) ([]*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todos := make([]*models.Todo, 0)
	for _, todo := range s.todos {
		if todo.Creator == creator {
			copied := *todo
			todos = append(todos, &copied)
		}
	}
	return todos, nil
}

func (s *MemoryTodoStore) GetTodoForCreator(ctx context.Context, creator, todoID string) (*models.Todo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	todo, ok := s.todos[todoID]
	if !ok || todo.Creator != creator {
		return nil, ErrNotFound
	}
	copied := *todo
	return &copied, nil
}

func (s *MemoryTodoStore) UpdateTodoForCreator(ctx context.Context, creator string, todo *models.Todo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.todos[todo.ID]
	if !ok || existing.Creator != creator {
		return ErrNotFound
	}
	stored := *todo
	stored.Creator = existing.Creator
	stored.CreatedAt = existing.CreatedAt
	s.todos[todo.ID] = &stored
	return nil
}

func (s *MemoryTodoStore) DeleteTodoForCreator(ctx context.Context, creator, todoID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	todo, ok := s.todos[todoID]
	if !ok || todo.Creator != creator {
		return ErrNotFound
	}
	delete(s.todos, todoID)
	return nil
}
