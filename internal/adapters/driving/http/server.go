package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cocoh-labs/auth-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string
	logger     *slog.Logger

	// Services
	authService  driving.AuthService
	userService  driving.UserService
	oauthService driving.OAuthLoginService

	// Transport
	cookies *CookieWriter

	// frontendURL is where the OAuth callback redirects after login.
	// Empty means respond with JSON instead.
	frontendURL string

	// Infrastructure
	db          Pinger // PostgreSQL health check
	redisClient Pinger // Redis health check (optional)
}

// Config holds server configuration
type Config struct {
	Host        string
	Port        int
	Version     string
	FrontendURL string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	userService driving.UserService,
	oauthService driving.OAuthLoginService,
	cookies *CookieWriter,
	db Pinger,
	redisClient Pinger, // can be nil
	logger *slog.Logger,
) *Server {
	s := &Server{
		router:       http.NewServeMux(),
		version:      cfg.Version,
		logger:       logger,
		authService:  authService,
		userService:  userService,
		oauthService: oauthService,
		cookies:      cookies,
		frontendURL:  cfg.FrontendURL,
		db:           db,
		redisClient:  redisClient,
	}

	logging := NewLoggingMiddleware(logger)
	recovery := NewRecoveryMiddleware(logger)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      recovery.Handler(logging.Handler(s.router)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	auth := NewAuthMiddleware(s.authService, s.logger)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /auth/signup", s.handleSignup)
	s.router.HandleFunc("POST /auth/login", s.handleLogin)
	s.router.HandleFunc("POST /auth/logout", s.handleLogout)
	s.router.HandleFunc("POST /auth/refresh", s.handleRefresh)

	// OAuth login flow (public; callback receives provider redirects)
	s.router.HandleFunc("GET /auth/oauth/{provider}/authorize", s.handleOAuthAuthorize)
	s.router.HandleFunc("GET /auth/oauth/callback", s.handleOAuthCallback)

	// Current-user endpoints (authenticated)
	s.router.Handle("GET /api/v1/me",
		auth.Resolve(auth.RequireAuth(http.HandlerFunc(s.handleGetMe))))
	s.router.Handle("PUT /api/v1/me",
		auth.Resolve(auth.RequireAuth(http.HandlerFunc(s.handleUpdateMe))))
	s.router.Handle("POST /api/v1/me/password",
		auth.Resolve(auth.RequireAuth(http.HandlerFunc(s.handleChangePassword))))
	s.router.Handle("GET /api/v1/me/activities",
		auth.Resolve(auth.RequireAuth(http.HandlerFunc(s.handleMyActivities))))

	// Admin endpoints
	s.router.Handle("GET /api/v1/admin/users",
		auth.Resolve(auth.RequireAdmin(http.HandlerFunc(s.handleListUsers))))
	s.router.Handle("PATCH /api/v1/admin/users/{id}/role",
		auth.Resolve(auth.RequireAdmin(http.HandlerFunc(s.handleUpdateUserRole))))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		s.logger.Info("starting server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	<-stop
	s.logger.Info("shutting down server")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info("server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
