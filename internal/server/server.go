// Package server implements the books/authors REST backend the admin client
// talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexisbeaulieu97/shelf/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	Addr   string
	Debug  bool
	Logger *logger.Logger
}

// Server serves the REST surface over a Library.
type Server struct {
	library *Library
	log     *logger.Logger
	debug   bool
	addr    string
	router  chi.Router
}

// New builds a Server and its routes.
func New(library *Library, opts Options) *Server {
	s := &Server{
		library: library,
		log:     opts.Logger,
		debug:   opts.Debug,
		addr:    opts.Addr,
	}
	s.router = s.routes()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api/books", func(r chi.Router) {
		r.Get("/", s.handleListBooks)
		r.Post("/", s.handleCreateBook)
		r.Get("/{book_id}", s.handleGetBook)
		r.Put("/{book_id}", s.handleUpdateBook)
		r.Delete("/{book_id}", s.handleDeleteBook)
	})

	r.Route("/api/authors", func(r chi.Router) {
		r.Get("/", s.handleListAuthors)
		r.Post("/", s.handleCreateAuthor)
		r.Get("/{author_id}", s.handleGetAuthor)
		r.Put("/{author_id}", s.handleUpdateAuthor)
		r.Delete("/{author_id}", s.handleDeleteAuthor)
	})

	return r
}

// logRequests writes one entry per request with its outcome and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		fields := map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      ww.Status(),
			"duration_ms": time.Since(start).Milliseconds(),
			"rqID":        middleware.GetReqID(r.Context()),
		}
		log := s.log.WithFields(fields)
		log.Info(fmt.Sprintf("%s %s -> %d", r.Method, r.URL.Path, ww.Status()))
		if s.debug {
			log.WithFields(map[string]any{
				"query":  r.URL.RawQuery,
				"client": r.RemoteAddr,
			}).Debug("request_debug")
		}
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.WithFields(map[string]any{"addr": s.addr}).Info("server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutdown signal received, stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
