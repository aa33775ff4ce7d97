package driven

import (
	"context"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
)

// ActivityStore records auth-relevant user actions for auditing
type ActivityStore interface {
	// Record appends one activity entry.
	Record(ctx context.Context, activity *domain.UserActivity) error

	// ListByUser returns the user's activities, newest first, up to limit.
	ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.UserActivity, error)
}
