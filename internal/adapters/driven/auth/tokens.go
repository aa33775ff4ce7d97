package auth

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Ensure TokenProvider implements the port
var _ driven.TokenProvider = (*TokenProvider)(nil)

// jwtClaims wraps domain.TokenClaims for JWT compatibility.
// The user id travels as the registered subject; email and role ride along
// on access tokens only.
type jwtClaims struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// TokenProviderConfig holds the signing material and lifetimes
type TokenProviderConfig struct {
	// AccessSecret and RefreshSecret are operator-supplied strings. They are
	// stretched to 32-byte HMAC keys before use, so short or long inputs both
	// end up with a uniform key. The two must differ.
	AccessSecret  string
	RefreshSecret string

	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// TokenProvider signs and validates HS256 JWTs with one key per token kind
type TokenProvider struct {
	accessKey  []byte
	refreshKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenProvider creates a TokenProvider from the given config
func NewTokenProvider(cfg TokenProviderConfig) (*TokenProvider, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token secrets must not be empty")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, errors.New("access and refresh secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token lifetimes must be positive")
	}

	return &TokenProvider{
		accessKey:  stretchKey(cfg.AccessSecret),
		refreshKey: stretchKey(cfg.RefreshSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}, nil
}

// IssueAccessToken signs {sub, email, role} for the access window
func (p *TokenProvider) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	return p.sign(p.accessKey, jwtClaims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.accessTTL)),
		},
	})
}

// IssueRefreshToken signs subject-only claims for the refresh window
func (p *TokenProvider) IssueRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	return p.sign(p.refreshKey, jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(p.refreshTTL)),
		},
	})
}

// Validate verifies a token against the key for kind and extracts its claims
func (p *TokenProvider) Validate(tokenString string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	key := p.accessKey
	if kind == domain.TokenKindRefresh {
		key = p.refreshKey
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, mapValidationError(err)
	}

	claims, ok := token.Claims.(*jwtClaims)
	if !ok || !token.Valid {
		return nil, domain.ErrTokenMalformed
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	out := &domain.TokenClaims{
		UserID: userID,
		Email:  claims.Email,
		Role:   claims.Role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return out, nil
}

// AccessTTL returns the access token lifetime
func (p *TokenProvider) AccessTTL() time.Duration {
	return p.accessTTL
}

// RefreshTTL returns the refresh token lifetime
func (p *TokenProvider) RefreshTTL() time.Duration {
	return p.refreshTTL
}

func (p *TokenProvider) sign(key []byte, claims jwtClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// mapValidationError collapses jwt library errors onto the domain sentinels.
// The library may join several failures; signature wins over expiry, and
// anything else counts as malformed.
func mapValidationError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}

// stretchKey derives a fixed 32-byte HMAC key from an operator secret
func stretchKey(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return sum[:]
}
