package ports

import (
	"context"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

// ProfilePatch carries the optional profile fields of an update; nil means
// "leave unchanged".
type ProfilePatch struct {
	Name  *string
	Image *string
}

// UserRepository persists canonical identity records. The backing store
// enforces uniqueness of the normalized email; Create surfaces a violation
// as domain.ErrUserExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (*domain.User, error)
	UpdateRole(ctx context.Context, id, role string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
