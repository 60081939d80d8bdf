package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"notesum/internal/api"
	"notesum/internal/config"
	"notesum/internal/logging"
	"notesum/internal/summarizer"
	"notesum/internal/summary"
)

// Summarizer is the subset of summarizer.Service used by the HTTP API.
type Summarizer interface {
	Summarize(ctx context.Context, req summarizer.Request) (*summary.Summary, error)
	Busy() bool
	State() summarizer.State
}

// Deps bundles the collaborators the handlers call.
type Deps struct {
	Summaries  *api.SummaryService
	Summarizer Summarizer
	// Status fills the static parts of GET /api/status (database path,
	// counts, dependencies). Busy and last-state fields are added by the
	// server.
	Status func(ctx context.Context) api.Status
}

// Server serves the HTTP API.
type Server struct {
	bind    string
	logger  *slog.Logger
	deps    Deps
	handler http.Handler

	listener net.Listener
	server   *http.Server
}

// New constructs a server from configuration.
func New(cfg *config.Config, deps Deps, logger *slog.Logger) *Server {
	srv := &Server{
		bind:   strings.TrimSpace(cfg.Paths.APIBind),
		logger: logging.NewComponentLogger(logger, "api-server"),
		deps:   deps,
	}
	timeout := time.Duration(cfg.Server.RequestTimeoutSeconds) * time.Second
	srv.handler = srv.routes(cfg.Paths.APIToken, cfg.Server.AllowedOrigins, timeout)
	srv.server = &http.Server{
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes(token string, origins []string, timeout time.Duration) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(s.logger))
	router.Use(middleware.Recoverer)
	if len(origins) > 0 {
		router.Use(corsHandler(origins))
	}
	if timeout > 0 {
		router.Use(middleware.Timeout(timeout))
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware(token))
		r.Get("/status", s.handleStatus)
		r.Get("/tags", s.handleTags)
		r.Post("/summarize", s.handleSummarize)
		r.Route("/summaries", func(r chi.Router) {
			r.Get("/", s.handleList)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.handleGet)
				r.Patch("/", s.handleUpdate)
				r.Delete("/", s.handleDelete)
				r.Post("/pin", s.handlePin)
			})
		})
	})
	return router
}

// Start begins listening and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Addr returns the bound address once Start succeeded.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() {
	if s.server == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = s.server.Shutdown(shutdownCtx)
}
