package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RefreshTokenStore = (*RefreshTokenStore)(nil)

// refreshTokenPrefix namespaces refresh token keys
const refreshTokenPrefix = "auth:refresh:"

// RefreshTokenStore implements driven.RefreshTokenStore using Redis.
// One key per user; SET overwrites atomically and the TTL evicts the record
// when the token itself would have expired anyway.
type RefreshTokenStore struct {
	client *redis.Client
}

// NewRefreshTokenStore creates a new Redis-backed RefreshTokenStore
func NewRefreshTokenStore(client *redis.Client) *RefreshTokenStore {
	return &RefreshTokenStore{client: client}
}

// Save overwrites the user's refresh token with the token's own lifetime
func (s *RefreshTokenStore) Save(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}
	return nil
}

// Get returns the user's current refresh token
func (s *RefreshTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	token, err := s.client.Get(ctx, key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

// Clear removes the user's refresh token. Clearing an absent key is not an
// error.
func (s *RefreshTokenStore) Clear(ctx context.Context, userID int64) error {
	if err := s.client.Del(ctx, key(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return nil
}

func key(userID int64) string {
	return fmt.Sprintf("%s%d", refreshTokenPrefix, userID)
}
