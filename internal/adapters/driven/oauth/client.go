package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.OAuthClient = (*Client)(nil)

// Provider endpoints. Kakao and naver are not in the oauth2 endpoint
// catalog, so all three are spelled out here.
var (
	googleEndpoint = oauth2.Endpoint{
		AuthURL:  "https://accounts.google.com/o/oauth2/v2/auth",
		TokenURL: "https://oauth2.googleapis.com/token",
	}
	kakaoEndpoint = oauth2.Endpoint{
		AuthURL:  "https://kauth.kakao.com/oauth/authorize",
		TokenURL: "https://kauth.kakao.com/oauth/token",
	}
	naverEndpoint = oauth2.Endpoint{
		AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
		TokenURL: "https://nid.naver.com/oauth2.0/token",
	}
)

// Userinfo endpoints per provider
const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"
	kakaoUserInfoURL  = "https://kapi.kakao.com/v2/user/me"
	naverUserInfoURL  = "https://openapi.naver.com/v1/nid/me"
)

// Credentials holds one provider's client id/secret pair
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Client implements driven.OAuthClient on top of golang.org/x/oauth2
type Client struct {
	registrationID string
	userInfoURL    string
	config         *oauth2.Config

	// httpClient is used for the userinfo request. Overridable in tests.
	httpClient *http.Client
}

// NewGoogle creates the google login client
func NewGoogle(creds Credentials, redirectURL string) *Client {
	return newClient(domain.RegistrationGoogle, creds, redirectURL, googleEndpoint, googleUserInfoURL,
		[]string{"openid", "email", "profile"})
}

// NewKakao creates the kakao login client
func NewKakao(creds Credentials, redirectURL string) *Client {
	return newClient(domain.RegistrationKakao, creds, redirectURL, kakaoEndpoint, kakaoUserInfoURL,
		[]string{"profile_nickname", "profile_image", "account_email"})
}

// NewNaver creates the naver login client
func NewNaver(creds Credentials, redirectURL string) *Client {
	return newClient(domain.RegistrationNaver, creds, redirectURL, naverEndpoint, naverUserInfoURL, nil)
}

func newClient(registrationID string, creds Credentials, redirectURL string, endpoint oauth2.Endpoint, userInfoURL string, scopes []string) *Client {
	return &Client{
		registrationID: registrationID,
		userInfoURL:    userInfoURL,
		config: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			Endpoint:     endpoint,
			RedirectURL:  redirectURL,
			Scopes:       scopes,
		},
		httpClient: http.DefaultClient,
	}
}

// RegistrationID is the provider name this client serves
func (c *Client) RegistrationID() string {
	return c.registrationID
}

// AuthCodeURL builds the provider consent URL carrying the CSRF state
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// Exchange trades an authorization code for a provider access token
func (c *Client) Exchange(ctx context.Context, code string) (string, error) {
	token, err := c.config.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("failed to exchange code: %w", err)
	}
	return token.AccessToken, nil
}

// FetchUserInfo retrieves the raw identity payload for the access token
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}

	return attrs, nil
}
