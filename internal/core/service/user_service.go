package service

import (
	"context"
	"strings"

	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
)

// UserService serves the session-bound profile surface.
type UserService struct {
	repo ports.UserRepository
}

func NewUserService(repo ports.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Me returns the caller's identity record.
func (s *UserService) Me(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return sanitize(user), nil
}

// UpdateProfile applies the provided profile fields; blank fields are
// ignored. An update that provides nothing is rejected.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, avatarData string) (*domain.User, error) {
	var patch ports.ProfilePatch
	if v := strings.TrimSpace(name); v != "" {
		patch.Name = &v
	}
	if v := strings.TrimSpace(avatarData); v != "" {
		patch.Image = &v
	}
	if patch.Name == nil && patch.Image == nil {
		return nil, domain.ErrNothingToUpdate
	}

	user, err := s.repo.UpdateProfile(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	return sanitize(user), nil
}
