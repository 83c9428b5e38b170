package ports

import (
	"context"

	"github.com/taskhive/task-tracker/internal/core/domain"
)

// AuthService implements credential registration and sign-in.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

// ExternalIdentity is the normalized claim set a provider callback hands to
// the reconciler: identity facts plus the opaque provider tokens to store on
// the link. Nothing here has been matched against the identity store yet.
type ExternalIdentity struct {
	Provider          string
	ProviderAccountID string
	Email             string
	Name              string
	Image             string

	AccessToken  string
	RefreshToken string
	IDToken      string
	ExpiresAt    int64
	Scope        string
}

// Reconciler resolves an external sign-in to exactly one identity and one
// account link. A nil error is the permit; any error denies the sign-in.
type Reconciler interface {
	Reconcile(ctx context.Context, ext ExternalIdentity) (*domain.User, error)
}
