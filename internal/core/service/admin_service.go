package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
)

// AdminService owns the privileged identity operations. Its role-set call is
// the only path in the system that can produce role SUPER; the HTTP layer
// gates every entry point with the SUPER role check.
type AdminService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewAdminService(repo ports.UserRepository, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

// ListUsers returns every identity record.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// SetRole assigns a role to the target identity. Idempotent at target state:
// re-setting the current role succeeds. The token's cached role copy is NOT
// invalidated here; the target sees the new role after re-authenticating.
func (s *AdminService) SetRole(ctx context.Context, targetID, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.repo.UpdateRole(ctx, targetID, role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", targetID).Str("role", role).Msg("role updated by admin")
	return sanitize(user), nil
}
