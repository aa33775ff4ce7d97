package domain

import "time"

// TokenKind selects which signing key a token is issued and verified with.
// Access and refresh keys are independent: a leaked refresh key cannot forge
// access tokens, and vice versa.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// TokenClaims represents the verified JWT payload.
// Instances are only produced by token validation; fields can be trusted.
type TokenClaims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email,omitempty"`
	Role      Role   `json:"role,omitempty"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Principal is the authenticated identity attached to a request after
// successful access-token validation. Immutable, request-scoped.
type Principal struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
}

// IsAdmin checks if the authenticated caller is an admin
func (p *Principal) IsAdmin() bool {
	return p.Role == RoleAdmin || p.Role == RoleSuperadmin
}

// CanManageRoles checks if the caller may change other users' roles
func (p *Principal) CanManageRoles() bool {
	return p.Role == RoleSuperadmin
}

// PrincipalFromClaims builds a Principal from validated access-token claims
func PrincipalFromClaims(claims *TokenClaims) *Principal {
	return &Principal{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
}

// SignupRequest represents a local registration attempt
type SignupRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IP        string `json:"-"`
	UserAgent string `json:"-"`
}

// LoginResponse is returned after successful authentication.
// The refresh token travels only in its cookie, never in the body.
type LoginResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         Role   `json:"role"`
	ProfileImage string `json:"profileImage,omitempty"`
	AccessToken  string `json:"accessToken"`

	RefreshToken string `json:"-"`
}

// TokenPair bundles a freshly issued access/refresh pair
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExpiry time.Time
}
