package driven

import (
	"context"
	"time"
)

// OAuthState represents a pending OAuth login flow.
// Used for CSRF protection: the state travels to the provider and must come
// back unchanged on the callback.
type OAuthState struct {
	// State is a cryptographically random string used for CSRF protection.
	State string

	// RegistrationID names the identity provider (google, kakao, naver).
	RegistrationID string

	// RedirectURI is the callback URL the provider will redirect to.
	RedirectURI string

	// CreatedAt is when the state was created.
	CreatedAt time.Time

	// ExpiresAt is when the state expires (typically 10 minutes).
	ExpiresAt time.Time
}

// OAuthStateStore manages OAuth flow state for CSRF protection.
// States are single-use and expire after a short period.
type OAuthStateStore interface {
	// Save stores a new OAuth state.
	Save(ctx context.Context, state *OAuthState) error

	// GetAndDelete atomically retrieves and deletes the state.
	// Returns nil (no error) when the state is unknown or expired.
	GetAndDelete(ctx context.Context, state string) (*OAuthState, error)

	// Cleanup removes expired states.
	Cleanup(ctx context.Context) error
}
