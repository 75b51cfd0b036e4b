package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/rishavm/todoapi/internal/events"
	"github.com/rishavm/todoapi/internal/logger"
	"github.com/rishavm/todoapi/internal/models"
	"github.com/rishavm/todoapi/internal/storage"
	"github.com/rishavm/todoapi/internal/validation"
)

type TodoService struct {
	todos    storage.TodoStore
	producer *events.Producer
	log      *logger.Logger
}

// NewTodoService creates the todo service. producer may be nil, in which
// case activity events are dropped.
func NewTodoService(todos storage.TodoStore, producer *events.Producer) *TodoService {
	return &TodoService{
		todos:    todos,
		producer: producer,
		log:      logger.New("todo-service"),
	}
}

// TodoPatch carries one partial update. Pointer fields distinguish an
// omitted field from an explicit value; only text and completed exist, so
// anything else a caller sends is unrepresentable here.
type TodoPatch struct {
	Text      *string
	Completed *bool
}

func (s *TodoService) Create(ctx context.Context, creator, text string) (*models.Todo, error) {
	trimmed, err := validation.ValidateTodoText(text)
	if err != nil {
		return nil, &ValidationError{Field: "text", Reason: err.Error()}
	}

	todo := &models.Todo{
		ID:        uuid.New().String(),
		Text:      trimmed,
		Completed: false,
		Creator:   creator,
		CreatedAt: time.Now(),
	}

	if err := s.todos.CreateTodo(ctx, todo); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ActionCreated, todo)
	return todo, nil
}

func (s *TodoService) List(ctx context.Context, creator string) ([]*models.Todo, error) {
	return s.todos.ListTodosByCreator(ctx, creator)
}

func (s *TodoService) Get(ctx context.Context, creator, todoID string) (*models.Todo, error) {
	if _, err := uuid.Parse(todoID); err != nil {
		// A malformed id behaves exactly like an unknown one.
		return nil, ErrNotFound
	}

	todo, err := s.todos.GetTodoForCreator(ctx, creator, todoID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return todo, nil
}

// Update applies a partial update. Completed=true stamps completedAt with
// the current epoch milliseconds; a false or omitted completed resets both,
// whatever the caller thought completedAt should be.
func (s *TodoService) Update(ctx context.Context, creator, todoID string, patch TodoPatch) (*models.Todo, error) {
	todo, err := s.Get(ctx, creator, todoID)
	if err != nil {
		return nil, err
	}

	if patch.Text != nil {
		trimmed, err := validation.ValidateTodoText(*patch.Text)
		if err != nil {
			return nil, &ValidationError{Field: "text", Reason: err.Error()}
		}
		todo.Text = trimmed
	}

	wasCompleted := todo.Completed
	if patch.Completed != nil && *patch.Completed {
		now := time.Now().UnixMilli()
		todo.Completed = true
		todo.CompletedAt = &now
	} else {
		todo.Completed = false
		todo.CompletedAt = nil
	}

	if err := s.todos.UpdateTodoForCreator(ctx, creator, todo); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if todo.Completed && !wasCompleted {
		s.publish(ctx, events.ActionCompleted, todo)
	} else if !todo.Completed && wasCompleted {
		s.publish(ctx, events.ActionReopened, todo)
	}

	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, creator, todoID string) error {
	if _, err := uuid.Parse(todoID); err != nil {
		return ErrNotFound
	}

	if err := s.todos.DeleteTodoForCreator(ctx, creator, todoID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.publish(ctx, events.ActionDeleted, &models.Todo{ID: todoID, Creator: creator})
	return nil
}

func (s *TodoService) publish(ctx context.Context, action string, todo *models.Todo) {
	event := &events.TodoEvent{
		Action:  action,
		TodoID:  todo.ID,
		Creator: todo.Creator,
		At:      time.Now(),
	}
	if err := s.producer.Publish(ctx, event); err != nil {
		s.log.Warn("failed to publish %s event for %s: %v", action, todo.ID, err)
	}
}
