package driving

import (
	"context"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
)

// UpdateProfileRequest represents a self-service profile update
type UpdateProfileRequest struct {
	Name         string  `json:"name"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// ChangePasswordRequest represents a password change by an authenticated user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserService manages user accounts
type UserService interface {
	// Get retrieves a user by id
	Get(ctx context.Context, id int64) (*domain.User, error)

	// UpdateProfile updates the user's own name and profile image
	UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*domain.User, error)

	// ChangePassword changes a LOCAL user's password after verifying the
	// current one. OAuth-provider users have no password to change.
	ChangePassword(ctx context.Context, id int64, req ChangePasswordRequest) error

	// List retrieves all users (admin only)
	List(ctx context.Context) ([]*domain.User, error)

	// UpdateRole changes a user's role (superadmin only; enforced by the
	// route guard, re-checked here against the acting principal)
	UpdateRole(ctx context.Context, actor *domain.Principal, id int64, role domain.Role) (*domain.User, error)

	// Activities returns the user's recent activity log entries
	Activities(ctx context.Context, id int64, limit int) ([]*domain.UserActivity, error)
}
