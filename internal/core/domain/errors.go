package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail indicates the email is already registered
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidCredentials indicates wrong email/password combination.
	// Deliberately covers both "no such user" and "wrong password" so the
	// login endpoint cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTokenMalformed indicates the token is not a structurally valid JWT
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenSignatureInvalid indicates the signature does not verify
	// against the key for the requested token kind
	ErrTokenSignatureInvalid = errors.New("token signature invalid")

	// ErrTokenExpired indicates the token expiry has passed
	ErrTokenExpired = errors.New("token expired")

	// ErrRefreshTokenMismatch indicates the presented refresh token does not
	// match the one stored for the user (replaced by a newer login)
	ErrRefreshTokenMismatch = errors.New("refresh token mismatch")

	// ErrUnknownProvider indicates an OAuth registration id that is not a
	// configured identity provider
	ErrUnknownProvider = errors.New("unknown oauth provider")

	// ErrOAuthStateInvalid indicates a missing, expired, or replayed OAuth
	// state parameter
	ErrOAuthStateInvalid = errors.New("oauth state invalid")
)

// IsTokenError reports whether err is one of the token validation failures.
// All of them collapse to "unauthenticated" for callers; they stay distinct
// for diagnostics.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenMalformed) ||
		errors.Is(err, ErrTokenSignatureInvalid) ||
		errors.Is(err, ErrTokenExpired)
}
