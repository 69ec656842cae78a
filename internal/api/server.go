package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ignite/ad-launcher/internal/config"
)

// Server wraps the HTTP server with graceful shutdown.
type Server struct {
	cfg    config.ServerConfig
	server *http.Server
}

// NewServer builds the front-door server around a configured router.
func NewServer(cfg config.ServerConfig, handler http.Handler) *Server {
	return &Server{
		cfg: cfg,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
			Handler:      handler,
			ReadTimeout:  30 * time.Second,
			// launches walk a whole creation tree; give them room
			WriteTimeout: 10 * time.Minute,
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Start blocks serving HTTP until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
