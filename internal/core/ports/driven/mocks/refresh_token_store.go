package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Ensure MockRefreshTokenStore implements RefreshTokenStore
var _ driven.RefreshTokenStore = (*MockRefreshTokenStore)(nil)

// MockRefreshTokenStore is an in-memory RefreshTokenStore for testing
type MockRefreshTokenStore struct {
	mu     sync.RWMutex
	tokens map[int64]string
}

// NewMockRefreshTokenStore creates a new MockRefreshTokenStore
func NewMockRefreshTokenStore() *MockRefreshTokenStore {
	return &MockRefreshTokenStore{
		tokens: make(map[int64]string),
	}
}

func (m *MockRefreshTokenStore) Save(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = token
	return nil
}

func (m *MockRefreshTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[userID]
	if !ok || token == "" {
		return "", domain.ErrNotFound
	}
	return token, nil
}

func (m *MockRefreshTokenStore) Clear(ctx context.Context, userID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, userID)
	return nil
}
