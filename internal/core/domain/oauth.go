package domain

import (
	"fmt"
	"log/slog"
	"strings"
)

// OAuth registration ids as sent by the identity providers
const (
	RegistrationGoogle = "google"
	RegistrationKakao  = "kakao"
	RegistrationNaver  = "naver"
)

// OAuthIdentity is the provider-agnostic identity record produced from a raw
// provider payload. Field values are best-effort: providers may omit email or
// picture depending on consent scopes.
type OAuthIdentity struct {
	Provider     Provider `json:"provider"`
	ProviderID   string   `json:"provider_id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	ProfileImage string   `json:"profile_image"`
}

// NormalizeOAuthAttributes maps a raw provider payload to an OAuthIdentity.
// Each provider nests the real attributes differently:
//   - google: flat map with name/email/picture/sub
//   - kakao: email under kakao_account, name and picture under
//     kakao_account.profile, numeric id at the top level
//   - naver: everything one level down under response
//
// An unknown registration id falls through to the google (flat) extraction.
// That keeps logins working for providers added upstream before this service
// learns about them, but the extracted fields are likely empty, so the
// fallback is logged loudly rather than silently.
func NormalizeOAuthAttributes(logger *slog.Logger, registrationID string, attrs map[string]any) OAuthIdentity {
	switch strings.ToLower(registrationID) {
	case RegistrationKakao:
		return normalizeKakao(attrs)
	case RegistrationNaver:
		return normalizeNaver(attrs)
	case RegistrationGoogle:
		return normalizeGoogle(attrs)
	default:
		logger.Warn("unknown oauth registration id, using flat attribute extraction",
			"registration_id", registrationID)
		identity := normalizeGoogle(attrs)
		identity.Provider = ProviderFromRegistrationID(logger, registrationID)
		return identity
	}
}

func normalizeGoogle(attrs map[string]any) OAuthIdentity {
	return OAuthIdentity{
		Provider:     ProviderGoogle,
		ProviderID:   stringAttr(attrs, "sub"),
		Name:         stringAttr(attrs, "name"),
		Email:        stringAttr(attrs, "email"),
		ProfileImage: stringAttr(attrs, "picture"),
	}
}

func normalizeKakao(attrs map[string]any) OAuthIdentity {
	account := mapAttr(attrs, "kakao_account")
	profile := mapAttr(account, "profile")

	return OAuthIdentity{
		Provider:     ProviderKakao,
		ProviderID:   anyAttr(attrs, "id"), // numeric in kakao payloads
		Name:         stringAttr(profile, "nickname"),
		Email:        stringAttr(account, "email"),
		ProfileImage: stringAttr(profile, "profile_image_url"),
	}
}

func normalizeNaver(attrs map[string]any) OAuthIdentity {
	response := mapAttr(attrs, "response")

	return OAuthIdentity{
		Provider:     ProviderNaver,
		ProviderID:   stringAttr(response, "id"),
		Name:         stringAttr(response, "name"),
		Email:        stringAttr(response, "email"),
		ProfileImage: stringAttr(response, "profile_image"),
	}
}

// ProviderFromRegistrationID maps an external registration id to the internal
// Provider enumeration. Unrecognised ids degrade to LOCAL, so callers must
// treat the result as best-effort; the degradation is logged as a warning.
func ProviderFromRegistrationID(logger *slog.Logger, registrationID string) Provider {
	switch Provider(strings.ToUpper(registrationID)) {
	case ProviderGoogle:
		return ProviderGoogle
	case ProviderKakao:
		return ProviderKakao
	case ProviderNaver:
		return ProviderNaver
	case ProviderLocal:
		return ProviderLocal
	default:
		logger.Warn("unknown oauth provider string, defaulting to LOCAL",
			"registration_id", registrationID)
		return ProviderLocal
	}
}

// NewUser builds a user seed for first-time OAuth logins. Providers that hide
// the email behind consent scopes get a synthesized, provider-unique address.
func (id OAuthIdentity) NewUser() *User {
	email := id.Email
	if email == "" {
		email = fmt.Sprintf("%s_%s@example.com", strings.ToLower(string(id.Provider)), id.ProviderID)
	}

	return &User{
		Email:        email,
		Name:         id.Name,
		Provider:     id.Provider,
		ProviderID:   id.ProviderID,
		Role:         RoleUser,
		ProfileImage: id.ProfileImage,
	}
}

// stringAttr reads a string value, tolerating absence and wrong types
func stringAttr(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	s, _ := attrs[key].(string)
	return s
}

// anyAttr renders any scalar value as a string (kakao ids are numbers)
func anyAttr(attrs map[string]any, key string) string {
	if attrs == nil {
		return ""
	}
	v, ok := attrs[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}

// mapAttr reads a nested object, tolerating absence and wrong types
func mapAttr(attrs map[string]any, key string) map[string]any {
	if attrs == nil {
		return nil
	}
	m, _ := attrs[key].(map[string]any)
	return m
}
