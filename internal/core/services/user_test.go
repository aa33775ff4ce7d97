package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven/mocks"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driving"
)

func newTestUserService() (*mocks.MockUserStore, *mocks.MockActivityStore, *userService) {
	userStore := mocks.NewMockUserStore()
	activityStore := mocks.NewMockActivityStore()
	svc := NewUserService(userStore, activityStore, mocks.NewMockPasswordHasher(), testLogger()).(*userService)
	return userStore, activityStore, svc
}

func seedUser(t *testing.T, store *mocks.MockUserStore, user *domain.User) *domain.User {
	t.Helper()
	created, err := store.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return created
}

func TestUserService_UpdateProfile(t *testing.T) {
	userStore, _, svc := newTestUserService()
	ctx := context.Background()

	user := seedUser(t, userStore, &domain.User{
		Email:        "profile@example.com",
		Name:         "Before",
		Provider:     domain.ProviderLocal,
		Role:         domain.RoleUser,
		ProfileImage: "https://img.example.com/old.png",
	})

	newImage := "https://img.example.com/new.png"
	updated, err := svc.UpdateProfile(ctx, user.ID, driving.UpdateProfileRequest{
		Name:         "  After  ",
		ProfileImage: &newImage,
	})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.Name != "After" {
		t.Errorf("name = %q, want trimmed %q", updated.Name, "After")
	}
	if updated.ProfileImage != newImage {
		t.Errorf("profile image = %q, want %q", updated.ProfileImage, newImage)
	}

	// Nil image pointer leaves the stored image alone.
	updated, err = svc.UpdateProfile(ctx, user.ID, driving.UpdateProfileRequest{Name: "Again"})
	if err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}
	if updated.ProfileImage != newImage {
		t.Errorf("profile image = %q, want unchanged %q", updated.ProfileImage, newImage)
	}
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	userStore, _, svc := newTestUserService()
	ctx := context.Background()

	user := seedUser(t, userStore, &domain.User{
		Email:    "blank@example.com",
		Name:     "Blank",
		Provider: domain.ProviderLocal,
		Role:     domain.RoleUser,
	})

	if _, err := svc.UpdateProfile(ctx, user.ID, driving.UpdateProfileRequest{Name: "   "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("UpdateProfile(blank name) error = %v, want ErrInvalidInput", err)
	}
	if _, err := svc.UpdateProfile(ctx, 999, driving.UpdateProfileRequest{Name: "X"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("UpdateProfile(unknown id) error = %v, want ErrNotFound", err)
	}
}

func TestUserService_ChangePassword(t *testing.T) {
	userStore, _, svc := newTestUserService()
	ctx := context.Background()

	local := seedUser(t, userStore, &domain.User{
		Email:        "pw@example.com",
		PasswordHash: "oldpassword", // mock hasher stores plain text
		Name:         "Local",
		Provider:     domain.ProviderLocal,
		Role:         domain.RoleUser,
	})
	social := seedUser(t, userStore, &domain.User{
		Email:    "google_123@example.com",
		Name:     "Social",
		Provider: domain.ProviderGoogle,
		Role:     domain.RoleUser,
	})

	tests := []struct {
		name    string
		userID  int64
		req     driving.ChangePasswordRequest
		wantErr error
	}{
		{
			name:    "success",
			userID:  local.ID,
			req:     driving.ChangePasswordRequest{CurrentPassword: "oldpassword", NewPassword: "newpassword"},
			wantErr: nil,
		},
		{
			name:    "wrong current password",
			userID:  local.ID,
			req:     driving.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "newpassword"},
			wantErr: domain.ErrInvalidCredentials,
		},
		{
			name:    "empty new password",
			userID:  local.ID,
			req:     driving.ChangePasswordRequest{CurrentPassword: "oldpassword"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "oauth account has no password",
			userID:  social.ID,
			req:     driving.ChangePasswordRequest{CurrentPassword: "x", NewPassword: "y"},
			wantErr: domain.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangePassword(ctx, tt.userID, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ChangePassword() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// The first case rewrote the hash; the new password must now verify.
	stored, err := userStore.Get(ctx, local.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if stored.PasswordHash != "newpassword" {
		t.Errorf("stored hash = %q, want rehash of the new password", stored.PasswordHash)
	}
}

func TestUserService_UpdateRole(t *testing.T) {
	userStore, activityStore, svc := newTestUserService()
	ctx := context.Background()

	target := seedUser(t, userStore, &domain.User{
		Email:    "target@example.com",
		Name:     "Target",
		Provider: domain.ProviderLocal,
		Role:     domain.RoleUser,
	})

	superadmin := &domain.Principal{UserID: 99, Email: "root@example.com", Role: domain.RoleSuperadmin}
	admin := &domain.Principal{UserID: 98, Email: "admin@example.com", Role: domain.RoleAdmin}

	tests := []struct {
		name    string
		actor   *domain.Principal
		role    domain.Role
		wantErr error
	}{
		{name: "superadmin promotes", actor: superadmin, role: domain.RoleAdmin, wantErr: nil},
		{name: "admin cannot manage roles", actor: admin, role: domain.RoleUser, wantErr: domain.ErrForbidden},
		{name: "nil actor", actor: nil, role: domain.RoleUser, wantErr: domain.ErrForbidden},
		{name: "unknown role", actor: superadmin, role: domain.Role("OWNER"), wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, err := svc.UpdateRole(ctx, tt.actor, target.ID, tt.role)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("UpdateRole() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && updated.Role != tt.role {
				t.Errorf("role = %q, want %q", updated.Role, tt.role)
			}
		})
	}

	activities, err := activityStore.ListByUser(ctx, target.ID, 10)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(activities) != 1 {
		t.Fatalf("activities = %d, want 1 role change entry", len(activities))
	}
	entry := activities[0]
	if entry.ActivityType != domain.ActivityRoleChanged {
		t.Errorf("activity type = %q, want %q", entry.ActivityType, domain.ActivityRoleChanged)
	}
	if entry.Details["from"] != "USER" || entry.Details["to"] != "ADMIN" || entry.Details["by"] != "root@example.com" {
		t.Errorf("role change details = %v", entry.Details)
	}
}

func TestUserService_Activities_DefaultLimit(t *testing.T) {
	userStore, activityStore, svc := newTestUserService()
	ctx := context.Background()

	user := seedUser(t, userStore, &domain.User{
		Email:    "active@example.com",
		Name:     "Active",
		Provider: domain.ProviderLocal,
		Role:     domain.RoleUser,
	})

	for i := 0; i < defaultActivityLimit+10; i++ {
		err := activityStore.Record(ctx, &domain.UserActivity{
			ID:           "act",
			UserID:       user.ID,
			ActivityType: domain.ActivityLogin,
			CreatedAt:    time.Now(),
		})
		if err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	got, err := svc.Activities(ctx, user.ID, 0)
	if err != nil {
		t.Fatalf("Activities() error = %v", err)
	}
	if len(got) != defaultActivityLimit {
		t.Errorf("activities = %d, want capped at %d", len(got), defaultActivityLimit)
	}
}
