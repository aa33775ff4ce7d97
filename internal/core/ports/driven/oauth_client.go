package driven

import "context"

// OAuthClient talks to one identity provider's OAuth endpoints.
// Implementations wrap the provider's authorize/token/userinfo URLs; the raw
// userinfo payload is handed to domain.NormalizeOAuthAttributes untouched.
type OAuthClient interface {
	// RegistrationID is the provider name this client serves.
	RegistrationID() string

	// AuthCodeURL builds the provider consent URL carrying the CSRF state.
	AuthCodeURL(state string) string

	// Exchange trades an authorization code for a provider access token.
	Exchange(ctx context.Context, code string) (string, error)

	// FetchUserInfo retrieves the raw identity payload for the access token,
	// in the provider's native attribute nesting.
	FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error)
}
