package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Ensure MockUserStore implements UserStore
var _ driven.UserStore = (*MockUserStore)(nil)

// MockUserStore is an in-memory UserStore for testing
type MockUserStore struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*domain.User
}

// NewMockUserStore creates a new MockUserStore
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		nextID: 1,
		users:  make(map[int64]*domain.User),
	}
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == user.Email && existing.Provider == user.Provider {
			return nil, domain.ErrDuplicateEmail
		}
	}

	clone := *user
	clone.ID = m.nextID
	m.nextID++
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	clone.UpdatedAt = clone.CreatedAt
	m.users[clone.ID] = &clone

	result := clone
	return &result, nil
}

func (m *MockUserStore) Get(ctx context.Context, id int64) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserStore) GetByEmailAndProvider(ctx context.Context, email string, provider domain.Provider) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email && user.Provider == provider {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.User, 0, len(m.users))
	for _, user := range m.users {
		clone := *user
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[user.ID]
	if !ok {
		return domain.ErrNotFound
	}
	clone := *user
	clone.RefreshToken = existing.RefreshToken
	m.users[user.ID] = &clone
	return nil
}

func (m *MockUserStore) UpdateLastLogin(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	user.LastLogin = &now
	return nil
}
