package oauth

import (
	"context"
	"fmt"

	"github.com/taskhive/task-tracker/internal/core/ports"
)

// Provider is the contract every external auth provider implements.
// Implementations return identity facts only; identity creation, linking,
// and session minting belong to the reconciler and token service.
type Provider interface {
	// Name returns the provider identifier (e.g. "google").
	Name() string

	// AuthCodeURL returns the provider's authorization URL for the given
	// state nonce.
	AuthCodeURL(state string) string

	// Exchange trades the authorization code for provider credentials and
	// returns the normalized external identity claims.
	Exchange(ctx context.Context, code string) (ports.ExternalIdentity, error)
}

// Registry holds the configured providers keyed by name. Provider selection
// happens here once, by registry lookup, instead of string branching spread
// through the sign-in flow.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry registers the given providers by name. Names must be unique.
func NewRegistry(list ...Provider) *Registry {
	m := make(map[string]Provider, len(list))
	for _, p := range list {
		m[p.Name()] = p
	}
	return &Registry{providers: m}
}

// Get returns the provider by name or an error if not registered.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("unknown oauth provider: %s", name)
	}
	return p, nil
}
