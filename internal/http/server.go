package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidbz/quill/internal/auth"
	"github.com/davidbz/quill/internal/config"
	"github.com/davidbz/quill/internal/http/middleware"
	"github.com/davidbz/quill/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      *config.ServerConfig
	handler     *Handler
	middlewares middleware.Middleware
	tokens      *auth.Manager
	srv         *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	middlewares middleware.Middleware,
	tokens *auth.Manager,
) *Server {
	return &Server{
		config:      cfg,
		handler:     handler,
		middlewares: middlewares,
		tokens:      tokens,
		srv:         nil,
	}
}

// Routes returns the routed handler wrapped in the middleware chain.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	editor := middleware.Authorize(s.tokens, auth.CapEditPosts)
	admin := middleware.Authorize(s.tokens, auth.CapManageOptions)

	mux.Handle("POST /v1/generate", editor(http.HandlerFunc(s.handler.HandleGenerate)))
	mux.Handle("GET /v1/settings/api-key", editor(http.HandlerFunc(s.handler.HandleCredentialStatus)))
	mux.Handle("PUT /v1/settings/api-key", admin(http.HandlerFunc(s.handler.HandleSetCredential)))
	mux.Handle("DELETE /v1/settings/api-key", admin(http.HandlerFunc(s.handler.HandleClearCredential)))
	mux.HandleFunc("GET /health", s.handler.HandleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	if s.middlewares == nil {
		return mux
	}
	return s.middlewares(mux)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Routes(),
		ReadTimeout:       time.Duration(s.config.ReadTimeout) * time.Second,
		ReadHeaderTimeout: time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.config.WriteTimeout) * time.Second,
	}

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	if s.srv == nil {
		return nil
	}

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
