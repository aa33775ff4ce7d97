package services

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driving"
)

// Ensure authService implements AuthService
var _ driving.AuthService = (*authService)(nil)

// authService implements the AuthService interface
type authService struct {
	userStore     driven.UserStore
	refreshStore  driven.RefreshTokenStore
	activityStore driven.ActivityStore
	tokens        driven.TokenProvider
	hasher        driven.PasswordHasher
	logger        *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userStore driven.UserStore,
	refreshStore driven.RefreshTokenStore,
	activityStore driven.ActivityStore,
	tokens driven.TokenProvider,
	hasher driven.PasswordHasher,
	logger *slog.Logger,
) driving.AuthService {
	return &authService{
		userStore:     userStore,
		refreshStore:  refreshStore,
		activityStore: activityStore,
		tokens:        tokens,
		hasher:        hasher,
		logger:        logger,
	}
}

// Signup registers a new local user.
// The password is hashed here, at construction time, so the side effect is
// visible at the call site rather than hidden in persistence.
func (s *authService) Signup(ctx context.Context, req domain.SignupRequest) (*domain.UserSummary, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" || req.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	if _, err := s.userStore.GetByEmail(ctx, email); err == nil {
		return nil, domain.ErrDuplicateEmail
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user, err := s.userStore.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		Provider:     domain.ProviderLocal,
		Role:         domain.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.recordActivity(ctx, user.ID, domain.ActivityRegister, map[string]string{"email": user.Email})

	return user.ToSummary(), nil
}

// Login verifies local credentials and issues an access/refresh pair.
// "No such user" and "wrong password" both come back as ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.userStore.GetByEmailAndProvider(ctx, strings.ToLower(req.Email), domain.ProviderLocal)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to stamp last login", "user_id", user.ID, "error", err)
	}

	details := map[string]string{}
	if req.IP != "" {
		details["ip"] = req.IP
	}
	if req.UserAgent != "" {
		details["user_agent"] = req.UserAgent
	}
	s.recordActivity(ctx, user.ID, domain.ActivityLogin, details)

	return resp, nil
}

// ResolvePrincipal validates an access token and returns the caller identity
func (s *authService) ResolvePrincipal(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := s.tokens.Validate(token, domain.TokenKindAccess)
	if err != nil {
		return nil, err
	}
	return domain.PrincipalFromClaims(claims), nil
}

// Refresh rotates the caller's token pair. The presented refresh token must
// both verify against the refresh key and match the stored record, so a token
// replaced by a newer login is unusable even before it expires.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.LoginResponse, error) {
	claims, err := s.tokens.Validate(refreshToken, domain.TokenKindRefresh)
	if err != nil {
		return nil, err
	}

	stored, err := s.refreshStore.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrRefreshTokenMismatch
		}
		return nil, err
	}
	if stored != refreshToken {
		return nil, domain.ErrRefreshTokenMismatch
	}

	user, err := s.userStore.Get(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

// RefreshPossible reports whether the token verifies against the refresh key
func (s *authService) RefreshPossible(ctx context.Context, refreshToken string) bool {
	_, err := s.tokens.Validate(refreshToken, domain.TokenKindRefresh)
	return err == nil
}

// Logout clears the stored refresh token. An invalid or absent access token
// means there is nothing to clear; logout still succeeds.
func (s *authService) Logout(ctx context.Context, accessToken string) error {
	if accessToken == "" {
		return nil
	}

	claims, err := s.tokens.Validate(accessToken, domain.TokenKindAccess)
	if err != nil {
		return nil // Already invalid, nothing to do
	}

	if err := s.refreshStore.Clear(ctx, claims.UserID); err != nil {
		return err
	}

	s.recordActivity(ctx, claims.UserID, domain.ActivityLogout, nil)
	return nil
}

// issueTokens creates an access/refresh pair and overwrites the stored
// refresh token (last write wins, single atomic write in the store).
func (s *authService) issueTokens(ctx context.Context, user *domain.User) (*domain.LoginResponse, error) {
	return issueTokenPair(ctx, s.tokens, s.refreshStore, user)
}

// issueTokenPair signs both tokens for user and persists the refresh token.
// Shared by local login, refresh, and OAuth login.
func issueTokenPair(ctx context.Context, tokens driven.TokenProvider, refreshStore driven.RefreshTokenStore, user *domain.User) (*domain.LoginResponse, error) {
	accessToken, err := tokens.IssueAccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := tokens.IssueRefreshToken(user)
	if err != nil {
		return nil, err
	}

	if err := refreshStore.Save(ctx, user.ID, refreshToken, tokens.RefreshTTL()); err != nil {
		return nil, err
	}

	return &domain.LoginResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// recordActivity appends an audit entry. Audit failures are logged, never
// surfaced: they must not turn a successful login into an error.
func (s *authService) recordActivity(ctx context.Context, userID int64, activityType string, details map[string]string) {
	err := s.activityStore.Record(ctx, &domain.UserActivity{
		ID:           uuid.NewString(),
		UserID:       userID,
		ActivityType: activityType,
		Details:      details,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to record user activity",
			"user_id", userID, "activity", activityType, "error", err)
	}
}

// generateState produces a URL-safe random string for OAuth state values
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
