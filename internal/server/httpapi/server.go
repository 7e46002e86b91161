// Package httpapi exposes the todo service over HTTP: the login endpoint,
// the token-gated CRUD routes, and the middleware around them.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"todoapi/internal/logging"
	"todoapi/internal/server/services"
)

type Server struct {
	address   string
	users     *services.UserService
	todos     *services.TodoService
	logger    logging.Logger
	jwtSecret []byte
}

func NewServer(a string, l logging.Logger, us *services.UserService, ts *services.TodoService, secretKey string) (*Server, error) {
	return &Server{
		address:   a,
		logger:    l.With("module", "http_server"),
		users:     us,
		todos:     ts,
		jwtSecret: []byte(secretKey),
	}, nil
}

// Handler builds the full route table wrapped in the middleware chain.
// Every data route sits behind requireAuth; only the liveness root and
// the login endpoint are open.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /get", s.requireAuth(s.handleListOpen))
	mux.HandleFunc("GET /complete", s.requireAuth(s.handleListComplete))
	mux.HandleFunc("GET /getUser", s.requireAuth(s.handleGetByID))
	mux.HandleFunc("POST /create", s.requireAuth(s.handleCreate))
	mux.HandleFunc("PUT /update/{id}", s.requireAuth(s.handleUpdate))
	mux.HandleFunc("DELETE /delete/{id}", s.requireAuth(s.handleDelete))

	var h http.Handler = mux
	h = corsMiddleware(h)
	h = recoveryMiddleware(s.logger, h)
	h = loggingMiddleware(s.logger, h)

	return h
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
