package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-tracker/internal/api/metrics"
	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
)

// ReconcileService resolves OAuth sign-ins to exactly one identity and one
// account link. The find-or-create sequence is not transactional: two
// concurrent first-time sign-ins for the same external identity race, and
// the store's uniqueness constraints turn the loser's insert into a
// duplicate error. Each create therefore retries as a lookup, so both
// attempts converge on the single surviving row.
type ReconcileService struct {
	users    ports.UserRepository
	accounts ports.AccountRepository
	log      zerolog.Logger
}

func NewReconcileService(users ports.UserRepository, accounts ports.AccountRepository, log zerolog.Logger) *ReconcileService {
	return &ReconcileService{users: users, accounts: accounts, log: log}
}

// Reconcile finds or creates the identity for an external sign-in and binds
// its provider account link. A nil error permits the sign-in; any error
// denies it outright (fail closed). Partial writes left behind by a failed
// attempt are benign: a retry resolves them through the same find-or-create
// steps.
func (s *ReconcileService) Reconcile(ctx context.Context, ext ports.ExternalIdentity) (*domain.User, error) {
	if ext.Provider == "" || ext.ProviderAccountID == "" || ext.Email == "" {
		metrics.ReconcilesTotal.WithLabelValues("denied").Inc()
		return nil, domain.ErrInvalidInput
	}

	user, err := s.resolveUser(ctx, ext)
	if err != nil {
		metrics.ReconcilesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reconcile user: %w", err)
	}

	owner, err := s.resolveLink(ctx, ext, user)
	if err != nil {
		metrics.ReconcilesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("reconcile link: %w", err)
	}

	metrics.ReconcilesTotal.WithLabelValues("ok").Inc()
	return sanitize(owner), nil
}

// resolveUser finds the identity by normalized email or creates it with role
// USER. A legacy row with an empty role is repaired to USER, never SUPER.
func (s *ReconcileService) resolveUser(ctx context.Context, ext ports.ExternalIdentity) (*domain.User, error) {
	email := domain.NormalizeEmail(ext.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		if user.Role == "" {
			if user, err = s.users.UpdateRole(ctx, user.ID, domain.RoleUser); err != nil {
				return nil, err
			}
		}
		return user, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:      ext.Name,
		Email:     email,
		Image:     ext.Image,
		Role:      domain.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		s.log.Info().Str("user_id", created.ID).Str("provider", ext.Provider).Msg("identity created from oauth sign-in")
		return created, nil
	}
	if !errors.Is(err, domain.ErrUserExists) {
		return nil, err
	}

	// Lost the creation race: the row exists now, re-resolve by lookup.
	return s.users.FindByEmail(ctx, email)
}

// resolveLink finds or creates the (provider, providerAccountId) link and
// returns the identity the sign-in is bound to. When an existing link points
// at a different owner, the sign-in proceeds against that owner: ownership is
// never silently reassigned, the anomaly is reported for operators.
func (s *ReconcileService) resolveLink(ctx context.Context, ext ports.ExternalIdentity, user *domain.User) (*domain.User, error) {
	existing, err := s.accounts.FindByProvider(ctx, ext.Provider, ext.ProviderAccountID)
	if err == nil {
		return s.bindOwner(ctx, existing, user)
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	_, err = s.accounts.Create(ctx, &domain.LinkedAccount{
		UserID:            user.ID,
		Provider:          ext.Provider,
		ProviderAccountID: ext.ProviderAccountID,
		AccessToken:       ext.AccessToken,
		RefreshToken:      ext.RefreshToken,
		IDToken:           ext.IDToken,
		ExpiresAt:         ext.ExpiresAt,
		Scope:             ext.Scope,
		CreatedAt:         time.Now().UTC(),
	})
	if err == nil {
		s.log.Info().Str("user_id", user.ID).Str("provider", ext.Provider).Msg("account link created")
		return user, nil
	}
	if !errors.Is(err, domain.ErrAccountConflict) {
		return nil, err
	}

	// Lost the creation race: fetch the surviving link and bind to its owner.
	existing, err = s.accounts.FindByProvider(ctx, ext.Provider, ext.ProviderAccountID)
	if err != nil {
		return nil, err
	}
	return s.bindOwner(ctx, existing, user)
}

func (s *ReconcileService) bindOwner(ctx context.Context, link *domain.LinkedAccount, user *domain.User) (*domain.User, error) {
	if link.UserID == user.ID {
		return user, nil
	}

	s.log.Warn().
		Str("provider", link.Provider).
		Str("linked_user_id", link.UserID).
		Str("resolved_user_id", user.ID).
		Msg("account link bound to a different identity")
	metrics.LinkAnomaliesTotal.Inc()

	return s.users.FindByID(ctx, link.UserID)
}
