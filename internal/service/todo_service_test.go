package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rishavm/todoapi/internal/storage"
)

func newTodoService() *TodoService {
	return NewTodoService(storage.NewMemoryTodoStore(), nil)
}

func TestCreateTodo(t *testing.T) {
	svc := newTodoService()

	todo, err := svc.Create(context.Background(), "user-a", "  buy milk  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if todo.ID == "" {
		t.Error("expected todo to have an id")
	}
	if todo.Text != "buy milk" {
		t.Errorf("expected trimmed text 'buy milk', got %q", todo.Text)
	}
	if todo.Completed {
		t.Error("new todo must not be completed")
	}
	if todo.CompletedAt != nil {
		t.Error("new todo must have nil completedAt")
	}
	if todo.Creator != "user-a" {
		t.Errorf("expected creator 'user-a', got %q", todo.Creator)
	}
}

func TestCreateTodo_EmptyText(t *testing.T) {
	svc := newTodoService()

	_, err := svc.Create(context.Background(), "user-a", "   ")

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestGetTodo_MalformedID(t *testing.T) {
	svc := newTodoService()

	_, err := svc.Get(context.Background(), "user-a", "123abc!")
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}
}

func TestGetTodo_OwnershipMismatch(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Someone else's todo and a nonexistent one must be told apart by
	// nobody.
	_, otherErr := svc.Get(ctx, "user-b", todo.ID)
	if otherErr != ErrNotFound {
		t.Errorf("expected ErrNotFound for another user's todo, got %v", otherErr)
	}
}

func TestListTodos_ScopedToCreator(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, "user-a", "a's todo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Create(ctx, "user-b", "b's todo"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	todos, err := svc.List(ctx, "user-a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("expected 1 todo, got %d", len(todos))
	}
	if todos[0].Text != "a's todo" {
		t.Errorf("expected only user-a's todo, got %q", todos[0].Text)
	}
}

func TestUpdateTodo_Complete(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completed := true
	updated, err := svc.Update(ctx, "user-a", todo.ID, TodoPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !updated.Completed {
		t.Error("expected todo to be completed")
	}
	if updated.CompletedAt == nil {
		t.Fatal("expected completedAt to be set")
	}
	if *updated.CompletedAt <= 0 {
		t.Errorf("expected completedAt to be a positive epoch-millis value, got %d", *updated.CompletedAt)
	}
}

func TestUpdateTodo_OmittedCompletedResets(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completed := true
	if _, err := svc.Update(ctx, "user-a", todo.ID, TodoPatch{Completed: &completed}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A patch that omits completed forces the todo back to incomplete.
	text := "x"
	updated, err := svc.Update(ctx, "user-a", todo.ID, TodoPatch{Text: &text})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.Text != "x" {
		t.Errorf("expected text 'x', got %q", updated.Text)
	}
	if updated.Completed {
		t.Error("expected completed to reset to false")
	}
	if updated.CompletedAt != nil {
		t.Error("expected completedAt to reset to nil")
	}
}

func TestUpdateTodo_FalseBranchIdempotent(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completed := false
	first, err := svc.Update(ctx, "user-a", todo.ID, TodoPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Update(ctx, "user-a", todo.ID, TodoPatch{Completed: &completed})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Completed != second.Completed || first.Text != second.Text {
		t.Error("applying the false branch twice must yield the same state")
	}
	if second.CompletedAt != nil {
		t.Error("expected completedAt to stay nil")
	}
}

func TestUpdateTodo_EmptyText(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := "   "
	_, err = svc.Update(ctx, "user-a", todo.ID, TodoPatch{Text: &text})

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestUpdateTodo_OwnershipMismatch(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	completed := true
	if _, err := svc.Update(ctx, "user-b", todo.ID, TodoPatch{Completed: &completed}); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for another user's todo, got %v", err)
	}
}

func TestDeleteTodo(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, "user-a", todo.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Get(ctx, "user-a", todo.ID); err != ErrNotFound {
		t.Errorf("expected deleted todo to be gone, got %v", err)
	}
	if err := svc.Delete(ctx, "user-a", todo.ID); err != ErrNotFound {
		t.Errorf("expected second delete to report ErrNotFound, got %v", err)
	}
}

func TestDeleteTodo_OwnershipMismatch(t *testing.T) {
	svc := newTodoService()
	ctx := context.Background()

	todo, err := svc.Create(ctx, "user-a", "buy milk")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.Delete(ctx, "user-b", todo.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for another user's todo, got %v", err)
	}

	// Still there for the owner.
	if _, err := svc.Get(ctx, "user-a", todo.ID); err != nil {
		t.Errorf("expected todo to survive, got %v", err)
	}
}

func TestDeleteTodo_MalformedID(t *testing.T) {
	svc := newTodoService()

	if err := svc.Delete(context.Background(), "user-a", "!!!"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for malformed id, got %v", err)
	}
}
