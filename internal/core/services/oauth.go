package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driving"
)

// Ensure oauthLoginService implements OAuthLoginService
var _ driving.OAuthLoginService = (*oauthLoginService)(nil)

// stateTTL bounds how long a pending OAuth flow stays valid
const stateTTL = 10 * time.Minute

// OAuthLoginConfig holds the collaborators of the OAuth login service
type OAuthLoginConfig struct {
	// Clients holds one OAuthClient per supported registration id.
	Clients []driven.OAuthClient

	// StateStore persists single-use CSRF states.
	StateStore driven.OAuthStateStore

	// UserStore looks up and creates accounts.
	UserStore driven.UserStore

	// RefreshStore persists issued refresh tokens.
	RefreshStore driven.RefreshTokenStore

	// ActivityStore records oauth_login events.
	ActivityStore driven.ActivityStore

	// Tokens issues the access/refresh pair after a successful login.
	Tokens driven.TokenProvider

	// Logger receives normalization fallback warnings.
	Logger *slog.Logger
}

// oauthLoginService implements the OAuthLoginService interface
type oauthLoginService struct {
	clients       map[string]driven.OAuthClient
	stateStore    driven.OAuthStateStore
	userStore     driven.UserStore
	refreshStore  driven.RefreshTokenStore
	activityStore driven.ActivityStore
	tokens        driven.TokenProvider
	logger        *slog.Logger
}

// NewOAuthLoginService creates a new OAuthLoginService
func NewOAuthLoginService(cfg OAuthLoginConfig) driving.OAuthLoginService {
	clients := make(map[string]driven.OAuthClient, len(cfg.Clients))
	for _, c := range cfg.Clients {
		clients[strings.ToLower(c.RegistrationID())] = c
	}
	return &oauthLoginService{
		clients:       clients,
		stateStore:    cfg.StateStore,
		userStore:     cfg.UserStore,
		refreshStore:  cfg.RefreshStore,
		activityStore: cfg.ActivityStore,
		tokens:        cfg.Tokens,
		logger:        cfg.Logger,
	}
}

// Authorize starts a login flow with the named provider
func (s *oauthLoginService) Authorize(ctx context.Context, registrationID string) (*driving.AuthorizeResponse, error) {
	client, ok := s.clients[strings.ToLower(registrationID)]
	if !ok {
		return nil, domain.ErrUnknownProvider
	}

	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	now := time.Now()
	err = s.stateStore.Save(ctx, &driven.OAuthState{
		State:          state,
		RegistrationID: strings.ToLower(registrationID),
		CreatedAt:      now,
		ExpiresAt:      now.Add(stateTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("save oauth state: %w", err)
	}

	return &driving.AuthorizeResponse{
		AuthorizationURL: client.AuthCodeURL(state),
		State:            state,
	}, nil
}

// Callback completes the flow and logs the user in
func (s *oauthLoginService) Callback(ctx context.Context, req driving.CallbackRequest) (*domain.LoginResponse, error) {
	if req.Error != "" {
		return nil, fmt.Errorf("provider returned error: %s", req.Error)
	}
	if req.State == "" || req.Code == "" {
		return nil, domain.ErrOAuthStateInvalid
	}

	// Single-use: the state is consumed even if the rest of the flow fails.
	state, err := s.stateStore.GetAndDelete(ctx, req.State)
	if err != nil {
		return nil, fmt.Errorf("lookup oauth state: %w", err)
	}
	if state == nil {
		return nil, domain.ErrOAuthStateInvalid
	}

	client, ok := s.clients[state.RegistrationID]
	if !ok {
		return nil, domain.ErrUnknownProvider
	}

	providerToken, err := client.Exchange(ctx, req.Code)
	if err != nil {
		return nil, fmt.Errorf("exchange code: %w", err)
	}

	attrs, err := client.FetchUserInfo(ctx, providerToken)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}

	identity := domain.NormalizeOAuthAttributes(s.logger, state.RegistrationID, attrs)

	user, err := s.upsertUser(ctx, identity)
	if err != nil {
		return nil, err
	}

	resp, err := issueTokenPair(ctx, s.tokens, s.refreshStore, user)
	if err != nil {
		return nil, err
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to stamp last login", "user_id", user.ID, "error", err)
	}

	err = s.activityStore.Record(ctx, &domain.UserActivity{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		ActivityType: domain.ActivityOAuthLogin,
		Details:      map[string]string{"provider": string(identity.Provider)},
		CreatedAt:    time.Now(),
	})
	if err != nil {
		s.logger.Warn("failed to record oauth login", "user_id", user.ID, "error", err)
	}

	return resp, nil
}

// upsertUser finds the account for this identity or creates it on first
// login. Matching is by (email, provider): the same email via a different
// provider is a distinct account.
func (s *oauthLoginService) upsertUser(ctx context.Context, identity domain.OAuthIdentity) (*domain.User, error) {
	seed := identity.NewUser()

	user, err := s.userStore.GetByEmailAndProvider(ctx, seed.Email, identity.Provider)
	if errors.Is(err, domain.ErrNotFound) {
		now := time.Now()
		seed.CreatedAt = now
		seed.UpdatedAt = now
		return s.userStore.Create(ctx, seed)
	}
	if err != nil {
		return nil, err
	}

	// Providers own name and picture for their accounts; refresh both.
	user.Name = seed.Name
	user.ProfileImage = seed.ProfileImage
	user.UpdatedAt = time.Now()
	if err := s.userStore.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
