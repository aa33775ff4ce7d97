package driving

import (
	"context"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
)

// AuthService handles local credential authentication and token lifecycle
type AuthService interface {
	// Signup registers a new local user.
	// Returns domain.ErrDuplicateEmail if the email is taken.
	Signup(ctx context.Context, req domain.SignupRequest) (*domain.UserSummary, error)

	// Login verifies local credentials, issues an access/refresh pair and
	// persists the refresh token. Returns domain.ErrInvalidCredentials on
	// any credential failure.
	Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ResolvePrincipal validates an access token and returns the caller's
	// identity. Token failures surface as domain token errors.
	ResolvePrincipal(ctx context.Context, token string) (*domain.Principal, error)

	// Refresh exchanges a valid, currently-stored refresh token for a new
	// access/refresh pair (the stored token is rotated).
	Refresh(ctx context.Context, refreshToken string) (*domain.LoginResponse, error)

	// RefreshPossible reports whether the refresh token verifies against
	// the refresh key. Diagnostic only; it does not touch the stored record
	// and grants nothing.
	RefreshPossible(ctx context.Context, refreshToken string) bool

	// Logout clears the caller's stored refresh token. An absent or invalid
	// access token is not an error; logout always succeeds.
	Logout(ctx context.Context, accessToken string) error
}
