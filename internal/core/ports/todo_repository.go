package ports

import (
	"context"
	"time"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

// TodoPatch carries the optional fields of a todo update; nil means "leave
// unchanged".
type TodoPatch struct {
	Title       *string
	Description *string
	ScheduledAt *time.Time
	Completed   *bool
}

// TodoRepository persists tasks. Ownership checks live in the service layer;
// the repository only stores and retrieves.
type TodoRepository interface {
	ListByOwner(ctx context.Context, userID string) ([]domain.Todo, error)
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Update(ctx context.Context, id string, patch TodoPatch) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
}
