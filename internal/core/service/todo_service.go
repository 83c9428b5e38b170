package service

import (
	"context"
	"strings"
	"time"

	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
)

// TodoService implements owner-gated task CRUD. Every mutation verifies the
// caller owns the todo before touching the store.
type TodoService struct {
	repo ports.TodoRepository
}

func NewTodoService(repo ports.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

// List returns the caller's todos ordered by scheduled time ascending.
func (s *TodoService) List(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Create validates and stores a new todo owned by the caller. The schedule
// must lie in the future.
func (s *TodoService) Create(ctx context.Context, ownerID, title, description string, scheduledAt time.Time) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" || scheduledAt.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if !scheduledAt.After(time.Now()) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Todo{
		UserID:      ownerID,
		Title:       title,
		Description: description,
		ScheduledAt: scheduledAt.UTC(),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

// Update applies a partial update to a todo the caller owns.
func (s *TodoService) Update(ctx context.Context, ownerID, id string, patch ports.TodoPatch) (*domain.Todo, error) {
	if err := s.checkOwner(ctx, ownerID, id); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, patch)
}

// Delete removes a todo the caller owns.
func (s *TodoService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.checkOwner(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TodoService) checkOwner(ctx context.Context, ownerID, id string) error {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if todo.UserID != ownerID {
		return domain.ErrForbidden
	}
	return nil
}
