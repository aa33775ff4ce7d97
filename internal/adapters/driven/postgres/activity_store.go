package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ActivityStore = (*ActivityStore)(nil)

// ActivityStore implements driven.ActivityStore using PostgreSQL.
// Details are stored as JSONB; a nil map stores SQL NULL.
type ActivityStore struct {
	db *DB
}

// NewActivityStore creates a new ActivityStore
func NewActivityStore(db *DB) *ActivityStore {
	return &ActivityStore{db: db}
}

// Record appends one activity entry
func (s *ActivityStore) Record(ctx context.Context, activity *domain.UserActivity) error {
	query := `
		INSERT INTO user_activities (id, user_id, activity_type, details, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	var details any
	if len(activity.Details) > 0 {
		data, err := json.Marshal(activity.Details)
		if err != nil {
			return fmt.Errorf("marshal activity details: %w", err)
		}
		details = data
	}

	_, err := s.db.ExecContext(ctx, query,
		activity.ID,
		activity.UserID,
		activity.ActivityType,
		details,
		activity.CreatedAt,
	)
	return err
}

// ListByUser returns the user's activities, newest first, up to limit
func (s *ActivityStore) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.UserActivity, error) {
	query := `
		SELECT id, user_id, activity_type, details, created_at
		FROM user_activities
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*domain.UserActivity
	for rows.Next() {
		var activity domain.UserActivity
		var details sql.NullString

		err := rows.Scan(
			&activity.ID,
			&activity.UserID,
			&activity.ActivityType,
			&details,
			&activity.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if details.Valid && details.String != "" {
			if err := json.Unmarshal([]byte(details.String), &activity.Details); err != nil {
				return nil, fmt.Errorf("unmarshal activity details: %w", err)
			}
		}

		activities = append(activities, &activity)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return activities, nil
}
