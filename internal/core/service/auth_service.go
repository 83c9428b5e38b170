package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/task-tracker/internal/api/metrics"
	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
)

// AuthService implements credential registration and sign-in.
type AuthService struct {
	repo       ports.UserRepository
	tokens     *TokenService
	bcryptCost int
	log        zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens *TokenService, bcryptCost int, log zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{repo: repo, tokens: tokens, bcryptCost: bcryptCost, log: log}
}

// Register creates a credential identity with role USER. Email is normalized
// before the write so the store's uniqueness constraint applies to the
// canonical form.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login verifies email+password and mints a session token. Unknown email,
// a pure-OAuth identity without a hash, and a wrong password all return
// ErrInvalidCredentials; callers must not learn which factor failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		metrics.SignInsTotal.WithLabelValues("credentials", "denied").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			metrics.SignInsTotal.WithLabelValues("credentials", "error").Inc()
			return "", nil, err
		}
		metrics.SignInsTotal.WithLabelValues("credentials", "denied").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.SignInsTotal.WithLabelValues("credentials", "denied").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Mint(user)
	if err != nil {
		metrics.SignInsTotal.WithLabelValues("credentials", "error").Inc()
		return "", nil, err
	}

	metrics.SignInsTotal.WithLabelValues("credentials", "ok").Inc()
	return token, sanitize(user), nil
}

// sanitize strips the password hash from a user before it leaves the service.
func sanitize(u *domain.User) *domain.User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}
