// Package api exposes the structuring service over HTTP.
package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/alexvargashn/doc23/internal/config"
	"github.com/alexvargashn/doc23/internal/doc"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP API server.
type Server struct {
	router     chi.Router
	docService *doc.Service
	log        *log.Logger
	cfg        *config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(docService *doc.Service, logger *log.Logger, cfg *config.Config) *Server {
	s := &Server{
		docService: docService,
		log:        logger,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/structure", s.handleStructure)
		r.Post("/extract", s.handleExtract)
		r.Post("/schema/validate", s.handleValidateSchema)
		r.Get("/formats", s.handleFormats)
	})

	s.router = r
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Address(),
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
