package domain

import "time"

// Activity types recorded by this core
const (
	ActivityRegister    = "user_register"
	ActivityLogin       = "user_login"
	ActivityLogout      = "user_logout"
	ActivityOAuthLogin  = "oauth_login"
	ActivityRoleChanged = "role_changed"
)

// UserActivity is an audit record of an auth-relevant user action
type UserActivity struct {
	ID           string            `json:"id"`
	UserID       int64             `json:"user_id"`
	ActivityType string            `json:"activity_type"`
	Details      map[string]string `json:"details,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}
