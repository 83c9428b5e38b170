package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const stateTTL = 5 * time.Minute

// StateStore issues and consumes single-use OAuth state nonces backed by
// Redis. A nonce is valid for one callback within stateTTL; consuming it
// deletes it, so a replayed callback fails validation.
// Key format: oauth_state:<nonce>
type StateStore struct {
	client *redis.Client
}

// NewStateStore creates a StateStore wrapping the given Redis client.
func NewStateStore(client *redis.Client) *StateStore {
	return &StateStore{client: client}
}

// Issue creates a fresh state nonce bound to the provider name.
func (s *StateStore) Issue(ctx context.Context, provider string) (string, error) {
	state := uuid.NewString()
	if err := s.client.Set(ctx, s.key(state), provider, stateTTL).Err(); err != nil {
		return "", fmt.Errorf("issue state: %w", err)
	}
	return state, nil
}

// Consume validates and burns a state nonce, returning whether it was issued
// for the given provider. Unknown or expired nonces report false.
func (s *StateStore) Consume(ctx context.Context, provider, state string) (bool, error) {
	if state == "" {
		return false, nil
	}

	val, err := s.client.GetDel(ctx, s.key(state)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("consume state: %w", err)
	}
	return val == provider, nil
}

func (s *StateStore) key(state string) string {
	return "oauth_state:" + state
}
