package driving

import (
	"context"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
)

// AuthorizeResponse carries the provider consent URL to redirect the user to
type AuthorizeResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	State            string `json:"state"`
}

// CallbackRequest is the provider redirect back to this service
type CallbackRequest struct {
	State string
	Code  string
	Error string
}

// OAuthLoginService runs the OAuth2 login flow end to end: consent redirect,
// code exchange, identity normalization, user upsert, token issuance.
type OAuthLoginService interface {
	// Authorize starts a login flow with the named provider.
	// Returns domain.ErrUnknownProvider for unconfigured registration ids.
	Authorize(ctx context.Context, registrationID string) (*AuthorizeResponse, error)

	// Callback completes the flow: validates state, exchanges the code,
	// normalizes the provider payload, creates or updates the user, and
	// issues an access/refresh pair.
	Callback(ctx context.Context, req CallbackRequest) (*domain.LoginResponse, error)
}
