package driven

import (
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
)

// TokenProvider issues and validates signed, time-bound tokens.
// Access and refresh tokens use independent signing keys; a token issued for
// one kind never validates against the other's key.
// Implementations are immutable after construction and safe for concurrent use.
type TokenProvider interface {
	// IssueAccessToken signs claims {sub, email, role} for the access window.
	IssueAccessToken(user *domain.User) (string, error)

	// IssueRefreshToken signs subject-only claims for the refresh window.
	IssueRefreshToken(user *domain.User) (string, error)

	// Validate verifies the token against the key for kind and returns its
	// claims. Fails closed with exactly one of domain.ErrTokenMalformed,
	// domain.ErrTokenSignatureInvalid, or domain.ErrTokenExpired.
	Validate(token string, kind domain.TokenKind) (*domain.TokenClaims, error)

	// AccessTTL is the access token lifetime (drives the access cookie age).
	AccessTTL() time.Duration

	// RefreshTTL is the refresh token lifetime (drives the refresh cookie
	// age and the refresh-token store TTL).
	RefreshTTL() time.Duration
}
