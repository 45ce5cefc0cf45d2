// Package api exposes the transfer protocol over HTTP: upload, list,
// content fetch, raw download and delete, plus register/login. Every object
// operation requires an authenticated owner id resolved by the bearer-token
// middleware; the handlers add no business logic beyond routing and mapping
// errors to boundary-visible outcomes.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cryptopix/internal/logging"
	"github.com/dmitrijs2005/cryptopix/internal/server/services"
)

// Server is the HTTP transfer boundary.
type Server struct {
	address   string
	logger    logging.Logger
	objects   *services.ObjectService
	users     *services.UserService
	jwtSecret []byte
}

// NewServer wires the boundary onto the object and user services.
func NewServer(address string, logger logging.Logger, objects *services.ObjectService, users *services.UserService, secretKey string) *Server {
	return &Server{
		address:   address,
		logger:    logger.With("module", "api"),
		objects:   objects,
		users:     users,
		jwtSecret: []byte(secretKey),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/users/register", s.handleRegister)
	mux.HandleFunc("POST /api/users/login", s.handleLogin)

	mux.Handle("POST /api/objects", s.withAuth(s.handleUpload))
	mux.Handle("GET /api/objects", s.withAuth(s.handleList))
	mux.Handle("GET /api/objects/{id}/content", s.withAuth(s.handleContent))
	mux.Handle("GET /api/objects/{id}/download", s.withAuth(s.handleDownload))
	mux.Handle("DELETE /api/objects/{id}", s.withAuth(s.handleRemove))

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
