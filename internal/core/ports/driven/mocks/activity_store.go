package mocks

import (
	"context"
	"sync"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Ensure MockActivityStore implements ActivityStore
var _ driven.ActivityStore = (*MockActivityStore)(nil)

// MockActivityStore is an in-memory ActivityStore for testing
type MockActivityStore struct {
	mu         sync.RWMutex
	activities []*domain.UserActivity
}

// NewMockActivityStore creates a new MockActivityStore
func NewMockActivityStore() *MockActivityStore {
	return &MockActivityStore{}
}

func (m *MockActivityStore) Record(ctx context.Context, activity *domain.UserActivity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *activity
	m.activities = append(m.activities, &clone)
	return nil
}

func (m *MockActivityStore) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.UserActivity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.UserActivity
	for i := len(m.activities) - 1; i >= 0; i-- {
		if m.activities[i].UserID != userID {
			continue
		}
		clone := *m.activities[i]
		result = append(result, &clone)
		if limit > 0 && len(result) >= limit {
			break
		}
	}
	return result, nil
}

// CountByType returns how many recorded activities carry the given type.
// Test helper, not part of the port.
func (m *MockActivityStore) CountByType(activityType string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, a := range m.activities {
		if a.ActivityType == activityType {
			count++
		}
	}
	return count
}
