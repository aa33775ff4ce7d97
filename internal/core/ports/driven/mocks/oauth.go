package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Ensure mocks implement the ports
var (
	_ driven.OAuthStateStore = (*MockOAuthStateStore)(nil)
	_ driven.OAuthClient     = (*MockOAuthClient)(nil)
)

// MockOAuthStateStore is an in-memory OAuthStateStore for testing
type MockOAuthStateStore struct {
	mu     sync.Mutex
	states map[string]*driven.OAuthState
}

// NewMockOAuthStateStore creates a new MockOAuthStateStore
func NewMockOAuthStateStore() *MockOAuthStateStore {
	return &MockOAuthStateStore{
		states: make(map[string]*driven.OAuthState),
	}
}

func (m *MockOAuthStateStore) Save(ctx context.Context, state *driven.OAuthState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *state
	m.states[state.State] = &clone
	return nil
}

func (m *MockOAuthStateStore) GetAndDelete(ctx context.Context, state string) (*driven.OAuthState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[state]
	if !ok {
		return nil, nil
	}
	delete(m.states, state)
	if time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	clone := *s
	return &clone, nil
}

func (m *MockOAuthStateStore) Cleanup(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	for k, s := range m.states {
		if now.After(s.ExpiresAt) {
			delete(m.states, k)
		}
	}
	return nil
}

// MockOAuthClient is a scriptable OAuthClient for testing
type MockOAuthClient struct {
	Registration string
	AuthURL      string
	ExchangeFn   func(ctx context.Context, code string) (string, error)
	UserInfoFn   func(ctx context.Context, accessToken string) (map[string]any, error)
}

func (m *MockOAuthClient) RegistrationID() string {
	return m.Registration
}

func (m *MockOAuthClient) AuthCodeURL(state string) string {
	return m.AuthURL + "?state=" + state
}

func (m *MockOAuthClient) Exchange(ctx context.Context, code string) (string, error) {
	if m.ExchangeFn != nil {
		return m.ExchangeFn(ctx, code)
	}
	return "provider-access-token", nil
}

func (m *MockOAuthClient) FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	if m.UserInfoFn != nil {
		return m.UserInfoFn(ctx, accessToken)
	}
	return map[string]any{}, nil
}
