package http

import (
	"net/http"
	"time"
)

// Cookie names for the token pair
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// CookieConfig controls the security attributes of the token cookies
type CookieConfig struct {
	// Production toggles the Secure attribute and the Domain scope. In
	// development cookies stay host-only and travel over plain HTTP.
	Production bool

	// Domain scopes the cookies in production. Ignored otherwise.
	Domain string

	// AccessTTL and RefreshTTL bound each cookie's Max-Age to its token's
	// own lifetime.
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// CookieWriter writes and clears the access/refresh cookie pair.
// Both cookies are HttpOnly always; Secure and Domain apply in production
// only, so local development over http keeps working.
type CookieWriter struct {
	cfg CookieConfig
}

// NewCookieWriter creates a new CookieWriter
func NewCookieWriter(cfg CookieConfig) *CookieWriter {
	return &CookieWriter{cfg: cfg}
}

// WritePair sets both token cookies on the response
func (c *CookieWriter) WritePair(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, c.cookie(AccessTokenCookie, accessToken, int(c.cfg.AccessTTL.Seconds())))
	http.SetCookie(w, c.cookie(RefreshTokenCookie, refreshToken, int(c.cfg.RefreshTTL.Seconds())))
}

// ClearPair expires both token cookies. Attributes match WritePair so the
// browser evicts the same cookies it was given.
func (c *CookieWriter) ClearPair(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(AccessTokenCookie, "", -1))
	http.SetCookie(w, c.cookie(RefreshTokenCookie, "", -1))
}

func (c *CookieWriter) cookie(name, value string, maxAge int) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	}
	if c.cfg.Production {
		cookie.Secure = true
		cookie.Domain = c.cfg.Domain
	}
	return cookie
}
