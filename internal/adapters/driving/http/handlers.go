package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/cocoh-labs/auth-core/internal/core/domain"
	"github.com/cocoh-labs/auth-core/internal/core/ports/driving"
)

// ErrorResponse represents an API error response
// @Description API error response
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request body"`
}

// StatusResponse represents a simple status response
// @Description Simple status response
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}

// Health endpoints

// handleHealth godoc
// @Summary      Health check
// @Description  Returns the health status of the API
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /health [get]
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReady godoc
// @Summary      Readiness check
// @Description  Returns readiness, checking backing store connectivity
// @Tags         Health
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Failure      503  {object}  ErrorResponse  "A backing store is unreachable"
// @Router       /ready [get]
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Ping(r.Context()); err != nil {
			writeError(w, http.StatusServiceUnavailable, "redis unreachable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleVersion godoc
// @Summary      Get API version
// @Tags         Health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /version [get]
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
}

// Auth endpoints

// handleSignup godoc
// @Summary      Register a local account
// @Description  Create a new user with email and password
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SignupRequest  true  "Registration details"
// @Success      201      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input or duplicate email"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/signup [post]
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req domain.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	summary, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "email, name, and password are required")
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "email already registered")
		default:
			writeError(w, http.StatusInternalServerError, "signup failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, summary)
}

// handleLogin godoc
// @Summary      User login
// @Description  Authenticate with email and password; sets the token cookie pair
// @Tags         Authentication
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "Login credentials"
// @Success      200      {object}  domain.LoginResponse
// @Failure      400      {object}  ErrorResponse  "Invalid request body"
// @Failure      401      {object}  ErrorResponse  "Invalid credentials"
// @Failure      500      {object}  ErrorResponse  "Internal server error"
// @Router       /auth/login [post]
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.IP = clientIP(r)
	req.UserAgent = r.UserAgent()

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
		} else {
			writeError(w, http.StatusInternalServerError, "authentication failed")
		}
		return
	}

	s.cookies.WritePair(w, resp.AccessToken, resp.RefreshToken)
	writeJSON(w, http.StatusOK, resp)
}

// handleLogout godoc
// @Summary      Logout user
// @Description  Clears the token cookies and the stored refresh token. Always succeeds.
// @Tags         Authentication
// @Produce      json
// @Success      200  {object}  StatusResponse
// @Router       /auth/logout [post]
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := extractBearerToken(r)
	if token == "" {
		if cookie, err := r.Cookie(AccessTokenCookie); err == nil {
			token = cookie.Value
		}
	}

	_ = s.authService.Logout(r.Context(), token)
	s.cookies.ClearPair(w)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRefresh godoc
// @Summary      Rotate the token pair
// @Description  Exchange the refresh cookie for a new access/refresh pair
// @Tags         Authentication
// @Produce      json
// @Success      200  {object}  domain.LoginResponse
// @Failure      401  {object}  ErrorResponse  "Missing, invalid, or superseded refresh token"
// @Router       /auth/refresh [post]
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(RefreshTokenCookie)
	if err != nil || cookie.Value == "" {
		writeError(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	resp, err := s.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	s.cookies.WritePair(w, resp.AccessToken, resp.RefreshToken)
	writeJSON(w, http.StatusOK, resp)
}

// OAuth endpoints

// handleOAuthAuthorize godoc
// @Summary      Start an OAuth login
// @Description  Redirects to the provider's consent screen
// @Tags         Authentication
// @Param        provider  path  string  true  "Provider name (google, kakao, naver)"
// @Success      302
// @Failure      404  {object}  ErrorResponse  "Unknown provider"
// @Router       /auth/oauth/{provider}/authorize [get]
func (s *Server) handleOAuthAuthorize(w http.ResponseWriter, r *http.Request) {
	provider := r.PathValue("provider")

	resp, err := s.oauthService.Authorize(r.Context(), provider)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownProvider) {
			writeError(w, http.StatusNotFound, "unknown provider")
		} else {
			writeError(w, http.StatusInternalServerError, "authorization failed")
		}
		return
	}

	http.Redirect(w, r, resp.AuthorizationURL, http.StatusFound)
}

// handleOAuthCallback godoc
// @Summary      Complete an OAuth login
// @Description  Exchanges the provider code, logs the user in, sets cookies, and redirects to the frontend
// @Tags         Authentication
// @Param        code   query  string  false  "Authorization code"
// @Param        state  query  string  false  "CSRF state"
// @Param        error  query  string  false  "Provider-reported error"
// @Success      302
// @Failure      401  {object}  ErrorResponse  "Login failed"
// @Router       /auth/oauth/callback [get]
func (s *Server) handleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	resp, err := s.oauthService.Callback(r.Context(), driving.CallbackRequest{
		State: r.URL.Query().Get("state"),
		Code:  r.URL.Query().Get("code"),
		Error: r.URL.Query().Get("error"),
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, "oauth login failed")
		return
	}

	s.cookies.WritePair(w, resp.AccessToken, resp.RefreshToken)

	if s.frontendURL != "" {
		http.Redirect(w, r, s.frontendURL, http.StatusFound)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// User endpoints

// handleGetMe godoc
// @Summary      Get current user
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      404  {object}  ErrorResponse  "User not found"
// @Router       /api/v1/me [get]
func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	principal := GetPrincipal(r.Context())

	user, err := s.userService.Get(r.Context(), principal.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "user not found")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to load user")
		}
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleUpdateMe godoc
// @Summary      Update current user's profile
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.UpdateProfileRequest  true  "Profile changes"
// @Success      200      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Unauthorized"
// @Router       /api/v1/me [put]
func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	principal := GetPrincipal(r.Context())

	var req driving.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.userService.UpdateProfile(r.Context(), principal.UserID, req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "name is required")
		} else {
			writeError(w, http.StatusInternalServerError, "failed to update profile")
		}
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// handleChangePassword godoc
// @Summary      Change the current user's password
// @Description  Local accounts only; requires the current password
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      driving.ChangePasswordRequest  true  "Current and new password"
// @Success      200      {object}  StatusResponse
// @Failure      400      {object}  ErrorResponse  "Invalid input"
// @Failure      401      {object}  ErrorResponse  "Wrong current password"
// @Failure      403      {object}  ErrorResponse  "OAuth account has no local password"
// @Router       /api/v1/me/password [post]
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	principal := GetPrincipal(r.Context())

	var req driving.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	err := s.userService.ChangePassword(r.Context(), principal.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "current and new password are required")
		case errors.Is(err, domain.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "current password is incorrect")
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "account has no local password")
		default:
			writeError(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMyActivities godoc
// @Summary      List the current user's recent activity
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum entries (default 50)"
// @Success      200    {array}   domain.UserActivity
// @Failure      401    {object}  ErrorResponse  "Unauthorized"
// @Router       /api/v1/me/activities [get]
func (s *Server) handleMyActivities(w http.ResponseWriter, r *http.Request) {
	principal := GetPrincipal(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	activities, err := s.userService.Activities(r.Context(), principal.UserID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load activities")
		return
	}
	if activities == nil {
		activities = []*domain.UserActivity{}
	}

	writeJSON(w, http.StatusOK, activities)
}

// Admin endpoints

// handleListUsers godoc
// @Summary      List all users
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.UserSummary
// @Failure      401  {object}  ErrorResponse  "Unauthorized"
// @Failure      403  {object}  ErrorResponse  "Admin access required"
// @Router       /api/v1/admin/users [get]
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.userService.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list users")
		return
	}

	summaries := make([]*domain.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.ToSummary())
	}

	writeJSON(w, http.StatusOK, summaries)
}

// updateRoleRequest carries the role change payload
type updateRoleRequest struct {
	Role string `json:"role"`
}

// handleUpdateUserRole godoc
// @Summary      Change a user's role
// @Description  Superadmin only
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      int                true  "User id"
// @Param        request  body      updateRoleRequest  true  "New role"
// @Success      200      {object}  domain.UserSummary
// @Failure      400      {object}  ErrorResponse  "Invalid role"
// @Failure      403      {object}  ErrorResponse  "Superadmin access required"
// @Failure      404      {object}  ErrorResponse  "User not found"
// @Router       /api/v1/admin/users/{id}/role [patch]
func (s *Server) handleUpdateUserRole(w http.ResponseWriter, r *http.Request) {
	principal := GetPrincipal(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req updateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Role validity is checked by the service; unknown values come back
	// as ErrInvalidInput.
	user, err := s.userService.UpdateRole(r.Context(), principal, id, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrForbidden):
			writeError(w, http.StatusForbidden, "superadmin access required")
		case errors.Is(err, domain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid role")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to update role")
		}
		return
	}

	writeJSON(w, http.StatusOK, user.ToSummary())
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// clientIP picks the forwarded address when present, else the peer address
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	return r.RemoteAddr
}
