package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.RefreshTokenStore = (*RefreshTokenStore)(nil)

// RefreshTokenStore implements driven.RefreshTokenStore on the users table.
// Each user owns at most one refresh token; Save is a single-row UPDATE, so
// concurrent logins serialize on the row and the last writer wins.
// The ttl is ignored: the token carries its own expiry and validation
// rejects it once past, so a stale row is harmless.
type RefreshTokenStore struct {
	db *DB
}

// NewRefreshTokenStore creates a new RefreshTokenStore
func NewRefreshTokenStore(db *DB) *RefreshTokenStore {
	return &RefreshTokenStore{db: db}
}

// Save overwrites the user's refresh token
func (s *RefreshTokenStore) Save(ctx context.Context, userID int64, token string, ttl time.Duration) error {
	query := `UPDATE users SET refresh_token = $1 WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, token, userID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Get returns the user's current refresh token
func (s *RefreshTokenStore) Get(ctx context.Context, userID int64) (string, error) {
	query := `SELECT refresh_token FROM users WHERE id = $1`

	var token sql.NullString
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	if !token.Valid || token.String == "" {
		return "", domain.ErrNotFound
	}

	return token.String, nil
}

// Clear removes the user's refresh token. Clearing an absent token or an
// unknown user is not an error.
func (s *RefreshTokenStore) Clear(ctx context.Context, userID int64) error {
	query := `UPDATE users SET refresh_token = NULL WHERE id = $1`

	_, err := s.db.ExecContext(ctx, query, userID)
	return err
}
