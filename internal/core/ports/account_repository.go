package ports

import (
	"context"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

// AccountRepository persists provider account links. The backing store
// enforces uniqueness of (provider, provider_account_id); Create surfaces a
// violation as domain.ErrAccountConflict.
type AccountRepository interface {
	FindByProvider(ctx context.Context, provider, providerAccountID string) (*domain.LinkedAccount, error)
	Create(ctx context.Context, account *domain.LinkedAccount) (*domain.LinkedAccount, error)
}
