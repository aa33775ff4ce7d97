package mocks

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Ensure mocks implement the ports
var (
	_ driven.PasswordHasher = (*MockPasswordHasher)(nil)
	_ driven.TokenProvider  = (*MockTokenProvider)(nil)
)

// MockPasswordHasher uses plain text comparison. NOT secure - only for testing.
type MockPasswordHasher struct{}

// NewMockPasswordHasher creates a new MockPasswordHasher
func NewMockPasswordHasher() *MockPasswordHasher {
	return &MockPasswordHasher{}
}

// Hash returns the password as-is (for testing only)
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	return password, nil
}

// Verify compares password with hash directly (for testing only)
func (m *MockPasswordHasher) Verify(password, hash string) bool {
	return password == hash
}

// MockTokenProvider encodes claims as kind-prefixed base64 JSON.
// NOT secure - only for testing. The kind prefix stands in for key
// separation: a token validates only against the kind it was issued for.
type MockTokenProvider struct {
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewMockTokenProvider creates a new MockTokenProvider
func NewMockTokenProvider() *MockTokenProvider {
	return &MockTokenProvider{
		accessTTL:  time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

// IssueAccessToken creates an access-kind mock token
func (m *MockTokenProvider) IssueAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	return m.encode(domain.TokenKindAccess, &domain.TokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.accessTTL).Unix(),
	})
}

// IssueRefreshToken creates a refresh-kind mock token (subject only)
func (m *MockTokenProvider) IssueRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	return m.encode(domain.TokenKindRefresh, &domain.TokenClaims{
		UserID:    user.ID,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(m.refreshTTL).Unix(),
	})
}

// Validate decodes a mock token, enforcing kind and expiry
func (m *MockTokenProvider) Validate(token string, kind domain.TokenKind) (*domain.TokenClaims, error) {
	prefix := string(kind) + ":"
	if !strings.HasPrefix(token, prefix) {
		if strings.Contains(token, ":") {
			return nil, domain.ErrTokenSignatureInvalid
		}
		return nil, domain.ErrTokenMalformed
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(token, prefix))
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	var claims domain.TokenClaims
	if err := json.Unmarshal(data, &claims); err != nil {
		return nil, domain.ErrTokenMalformed
	}

	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, domain.ErrTokenExpired
	}

	return &claims, nil
}

// AccessTTL returns the mock access token lifetime
func (m *MockTokenProvider) AccessTTL() time.Duration {
	return m.accessTTL
}

// RefreshTTL returns the mock refresh token lifetime
func (m *MockTokenProvider) RefreshTTL() time.Duration {
	return m.refreshTTL
}

func (m *MockTokenProvider) encode(kind domain.TokenKind, claims *domain.TokenClaims) (string, error) {
	data, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal claims: %w", err)
	}
	return string(kind) + ":" + base64.StdEncoding.EncodeToString(data), nil
}
