package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskhive/task-tracker/internal/api/metrics"
	"github.com/taskhive/task-tracker/internal/core/domain"
	"github.com/taskhive/task-tracker/internal/core/ports"
)

// TokenService mints and enriches session tokens. The role claim is a cached
// copy of the stored role: it is written at sign-in and backfilled at most
// once per request when absent, so role changes become visible only after
// the next full re-authentication.
type TokenService struct {
	users    ports.UserRepository
	secret   string
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewTokenService(users ports.UserRepository, secret string, tokenTTL time.Duration, log zerolog.Logger) *TokenService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &TokenService{users: users, secret: secret, tokenTTL: tokenTTL, log: log}
}

// Mint issues a signed session token for a freshly authenticated user,
// copying id and role into the claims.
func (s *TokenService) Mint(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"role":  user.Role,
		"name":  user.Name,
		"email": user.Email,
		"jti":   uuid.NewString(),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

// Enrich backfills a missing role claim with a single store lookup. A lookup
// failure leaves the role unset; Expose degrades that to RoleUser. Never more
// than one store round-trip per call.
func (s *TokenService) Enrich(ctx context.Context, claims jwt.MapClaims) jwt.MapClaims {
	if role, _ := claims["role"].(string); role != "" {
		return claims
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return claims
	}

	user, err := s.users.FindByID(ctx, sub)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", sub).Msg("role backfill lookup failed")
		metrics.RoleBackfillsTotal.WithLabelValues("error").Inc()
		return claims
	}

	claims["role"] = user.Role
	metrics.RoleBackfillsTotal.WithLabelValues("ok").Inc()
	return claims
}

// Expose projects token claims into the session shape consumers read.
// Absent fields degrade to the safe default: no role means RoleUser.
func Expose(claims jwt.MapClaims) domain.Session {
	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	if role == "" {
		role = domain.RoleUser
	}
	return domain.Session{UserID: sub, Role: role}
}

// Verify parses and validates a signed token, enforcing HS256.
func (s *TokenService) Verify(tokenString string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
