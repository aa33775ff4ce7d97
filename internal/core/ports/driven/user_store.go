package driven

import (
	"context"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
)

// UserStore persists user accounts
type UserStore interface {
	// Create inserts a new user and returns it with the assigned id.
	// Returns domain.ErrDuplicateEmail when the (email, provider) pair is
	// already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	// Get retrieves a user by id. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id int64) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns domain.ErrNotFound if missing.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByEmailAndProvider retrieves a user by email scoped to one provider.
	GetByEmailAndProvider(ctx context.Context, email string, provider domain.Provider) (*domain.User, error)

	// List retrieves all users, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// Update persists mutable profile fields (name, profile image, role,
	// password hash, updated_at).
	Update(ctx context.Context, user *domain.User) error

	// UpdateLastLogin stamps the last login time.
	UpdateLastLogin(ctx context.Context, id int64) error
}
