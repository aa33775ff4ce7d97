package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// defaultActivityLimit caps activity listings when the caller passes no limit
const defaultActivityLimit = 50

// userService implements the UserService interface
type userService struct {
	userStore     driven.UserStore
	activityStore driven.ActivityStore
	hasher        driven.PasswordHasher
	logger        *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	userStore driven.UserStore,
	activityStore driven.ActivityStore,
	hasher driven.PasswordHasher,
	logger *slog.Logger,
) driving.UserService {
	return &userService{
		userStore:     userStore,
		activityStore: activityStore,
		hasher:        hasher,
		logger:        logger,
	}
}

// Get retrieves a user by id
func (s *userService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.userStore.Get(ctx, id)
}

// UpdateProfile updates the user's own name and profile image
func (s *userService) UpdateProfile(ctx context.Context, id int64, req driving.UpdateProfileRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}
	user.UpdatedAt = time.Now()

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// ChangePassword changes a LOCAL user's password after verifying the current
// one. OAuth accounts carry no local password, so there is nothing to change.
func (s *userService) ChangePassword(ctx context.Context, id int64, req driving.ChangePasswordRequest) error {
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return domain.ErrInvalidInput
	}

	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return err
	}

	if !user.Provider.IsLocal() {
		return domain.ErrForbidden
	}

	if !s.hasher.Verify(req.CurrentPassword, user.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	newHash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = newHash
	user.UpdatedAt = time.Now()

	return s.userStore.Update(ctx, user)
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.userStore.List(ctx)
}

// UpdateRole changes a user's role. Only superadmins may do this; the route
// guard enforces it too, but the service re-checks the acting principal.
func (s *userService) UpdateRole(ctx context.Context, actor *domain.Principal, id int64, role domain.Role) (*domain.User, error) {
	if actor == nil || !actor.CanManageRoles() {
		return nil, domain.ErrForbidden
	}

	switch role {
	case domain.RoleUser, domain.RoleAdmin, domain.RoleSuperadmin:
	default:
		return nil, domain.ErrInvalidInput
	}

	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	previous := user.Role
	user.Role = role
	user.UpdatedAt = time.Now()

	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	err = s.activityStore.Record(ctx, &domain.UserActivity{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ActivityType: domain.ActivityRoleChanged,
		Details:      map[string]string{"from": string(previous), "to": string(role), "by": actor.Email},
		CreatedAt:    time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to record role change", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Activities returns the user's recent activity log entries
func (s *userService) Activities(ctx context.Context, id int64, limit int) ([]*domain.UserActivity, error) {
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	return s.activityStore.ListByUser(ctx, id, limit)
}
