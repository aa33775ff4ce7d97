package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
)

func newTestAuthMiddleware(auth *mockAuthService) *AuthMiddleware {
	return NewAuthMiddleware(auth, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// principalCapture records what the downstream handler saw
func principalCapture(captured **domain.Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = GetPrincipal(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestResolve_BearerHeader(t *testing.T) {
	middleware := newTestAuthMiddleware(&mockAuthService{
		resolveFn: func(ctx context.Context, token string) (*domain.Principal, error) {
			if token != "good-token" {
				return nil, domain.ErrTokenMalformed
			}
			return &domain.Principal{UserID: 1, Email: "a@example.com", Role: domain.RoleUser}, nil
		},
	})

	var got *domain.Principal
	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rr := httptest.NewRecorder()

	middleware.Resolve(principalCapture(&got)).ServeHTTP(rr, req)

	if got == nil || got.UserID != 1 {
		t.Fatal("expected principal from header token")
	}
}

func TestResolve_CookieFallback(t *testing.T) {
	middleware := newTestAuthMiddleware(&mockAuthService{
		resolveFn: func(ctx context.Context, token string) (*domain.Principal, error) {
			if token != "cookie-token" {
				return nil, domain.ErrTokenMalformed
			}
			return &domain.Principal{UserID: 2}, nil
		},
	})

	var got *domain.Principal
	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	rr := httptest.NewRecorder()

	middleware.Resolve(principalCapture(&got)).ServeHTTP(rr, req)

	if got == nil || got.UserID != 2 {
		t.Fatal("expected principal from cookie token")
	}
}

func TestResolve_HeaderWinsOverCookie(t *testing.T) {
	var seenToken string
	middleware := newTestAuthMiddleware(&mockAuthService{
		resolveFn: func(ctx context.Context, token string) (*domain.Principal, error) {
			seenToken = token
			return &domain.Principal{UserID: 1}, nil
		},
	})

	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "cookie-token"})
	rr := httptest.NewRecorder()

	var got *domain.Principal
	middleware.Resolve(principalCapture(&got)).ServeHTTP(rr, req)

	if seenToken != "header-token" {
		t.Errorf("resolved token = %q, want the header token", seenToken)
	}
}

func TestResolve_NoToken(t *testing.T) {
	resolved := false
	middleware := newTestAuthMiddleware(&mockAuthService{
		resolveFn: func(ctx context.Context, token string) (*domain.Principal, error) {
			resolved = true
			return nil, domain.ErrTokenMalformed
		},
	})

	var got *domain.Principal
	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()

	middleware.Resolve(principalCapture(&got)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected pass-through, got %d", rr.Code)
	}
	if got != nil {
		t.Error("expected no principal")
	}
	if resolved {
		t.Error("validation should not run without a token")
	}
}

func TestResolve_InvalidTokenPassesThrough(t *testing.T) {
	refreshProbed := false
	middleware := newTestAuthMiddleware(&mockAuthService{
		resolveFn: func(ctx context.Context, token string) (*domain.Principal, error) {
			return nil, domain.ErrTokenExpired
		},
		refreshPossibleFn: func(ctx context.Context, refreshToken string) bool {
			refreshProbed = true
			return refreshToken == "live-refresh"
		},
	})

	var got *domain.Principal
	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "live-refresh"})
	rr := httptest.NewRecorder()

	middleware.Resolve(principalCapture(&got)).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected pass-through, got %d", rr.Code)
	}
	if got != nil {
		t.Error("invalid token must not yield a principal")
	}
	if !refreshProbed {
		t.Error("expected the refresh cookie to be probed")
	}
}

func TestResolve_RefreshProbeGrantsNothing(t *testing.T) {
	middleware := newTestAuthMiddleware(&mockAuthService{
		resolveFn: func(ctx context.Context, token string) (*domain.Principal, error) {
			return nil, domain.ErrTokenExpired
		},
		refreshPossibleFn: func(ctx context.Context, refreshToken string) bool {
			return true
		},
	})

	var got *domain.Principal
	req := httptest.NewRequest("GET", "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	req.AddCookie(&http.Cookie{Name: RefreshTokenCookie, Value: "live-refresh"})
	rr := httptest.NewRecorder()

	handler := middleware.Resolve(middleware.RequireAuth(principalCapture(&got)))
	handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("a valid refresh token alone must not authenticate, got %d", rr.Code)
	}
}

func TestRequireAuth(t *testing.T) {
	middleware := newTestAuthMiddleware(&mockAuthService{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me", nil)
		rr := httptest.NewRecorder()

		middleware.RequireAuth(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("expected status 401, got %d", rr.Code)
		}
	})

	t.Run("authenticated", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/me", nil)
		req = withPrincipal(req, &domain.Principal{UserID: 1})
		rr := httptest.NewRecorder()

		middleware.RequireAuth(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rr.Code)
		}
	})
}

func TestRequireAdmin(t *testing.T) {
	middleware := newTestAuthMiddleware(&mockAuthService{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name       string
		principal  *domain.Principal
		wantStatus int
	}{
		{name: "anonymous", principal: nil, wantStatus: http.StatusUnauthorized},
		{name: "regular user", principal: &domain.Principal{Role: domain.RoleUser}, wantStatus: http.StatusForbidden},
		{name: "admin", principal: &domain.Principal{Role: domain.RoleAdmin}, wantStatus: http.StatusOK},
		{name: "superadmin", principal: &domain.Principal{Role: domain.RoleSuperadmin}, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/admin/users", nil)
			if tt.principal != nil {
				req = withPrincipal(req, tt.principal)
			}
			rr := httptest.NewRecorder()

			middleware.RequireAdmin(next).ServeHTTP(rr, req)

			if rr.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	middleware := newTestAuthMiddleware(&mockAuthService{})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	guard := middleware.RequireRole(domain.RoleSuperadmin)

	t.Run("matching role", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = withPrincipal(req, &domain.Principal{Role: domain.RoleSuperadmin})
		rr := httptest.NewRecorder()

		guard(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rr.Code)
		}
	})

	t.Run("wrong role", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req = withPrincipal(req, &domain.Principal{Role: domain.RoleAdmin})
		rr := httptest.NewRecorder()

		guard(next).ServeHTTP(rr, req)

		if rr.Code != http.StatusForbidden {
			t.Errorf("expected status 403, got %d", rr.Code)
		}
	})
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "valid bearer", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "no header", header: "", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
		{name: "scheme only", header: "Bearer", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	recovery := NewRecoveryMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	panicking := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("boom"))
	})

	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	recovery.Handler(panicking).ServeHTTP(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", rr.Code)
	}
}
