package domain

import "time"

// Role defines user permission level
type Role string

const (
	RoleUser       Role = "USER"       // Regular account
	RoleAdmin      Role = "ADMIN"      // Manage users and platform content
	RoleSuperadmin Role = "SUPERADMIN" // Admin plus role management
)

// ParseRole maps a stored role string to a Role, defaulting to USER for
// anything unrecognised.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperadmin:
		return RoleSuperadmin
	default:
		return RoleUser
	}
}

// Provider identifies how an account authenticates
type Provider string

const (
	ProviderLocal  Provider = "LOCAL" // Email + password
	ProviderGoogle Provider = "GOOGLE"
	ProviderKakao  Provider = "KAKAO"
	ProviderNaver  Provider = "NAVER"
)

// IsLocal reports whether the account holds a local password
func (p Provider) IsLocal() bool {
	return p == ProviderLocal
}

// User represents an account holder
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Never serialize
	Name         string     `json:"name"`
	Provider     Provider   `json:"provider"`
	ProviderID   string     `json:"provider_id,omitempty"`
	Role         Role       `json:"role"`
	ProfileImage string     `json:"profile_image,omitempty"`
	RefreshToken string     `json:"-"` // Never serialize
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// UserSummary provides a safe view of user data (no secrets)
type UserSummary struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Provider     Provider   `json:"provider"`
	Role         Role       `json:"role"`
	ProfileImage string     `json:"profile_image,omitempty"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ToSummary converts a User to UserSummary
func (u *User) ToSummary() *UserSummary {
	return &UserSummary{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Provider:     u.Provider,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
}

// IsAdmin checks if the user has admin privileges
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperadmin
}

// CanManageRoles checks if the user can change other users' roles
func (u *User) CanManageRoles() bool {
	return u.Role == RoleSuperadmin
}
