package driven

import (
	"context"
	"time"
)

// RefreshTokenStore persists the single refresh token owned by each user.
// Last write wins: a new login replaces the previous token, logout clears it.
// Implementations must make Save an atomic single-row (or single-key) write;
// concurrent logins for the same user must never interleave partial state.
type RefreshTokenStore interface {
	// Save overwrites the user's refresh token. ttl is the refresh token
	// lifetime; TTL-capable backends expire the record with it.
	Save(ctx context.Context, userID int64, token string, ttl time.Duration) error

	// Get returns the user's current refresh token, or domain.ErrNotFound
	// when none is stored.
	Get(ctx context.Context, userID int64) (string, error)

	// Clear removes the user's refresh token. Clearing an absent token is
	// not an error.
	Clear(ctx context.Context, userID int64) error
}
