// Package apiserver is the HTTP face of the scorecard API: CRUD over the
// SQLite repository plus a server-side stats roll-up, with optional AMQP
// round events for the archive worker.
package apiserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"

	"fairway/internal/storage"
)

// RoundPublisher emits round change events. The AMQP client satisfies it;
// a nil publisher disables eventing.
type RoundPublisher interface {
	PublishRoundEvent(ctx context.Context, scorecardID, op, courseName string) error
}

type Server struct {
	repo      *storage.SQLiteRepository
	publisher RoundPublisher
	router    *chi.Mux
}

func New(repo *storage.SQLiteRepository, publisher RoundPublisher) *Server {
	s := &Server{
		repo:      repo,
		publisher: publisher,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	// The dashboard may be served from anywhere, so the API stays open.
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}).Handler)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/readyz", s.handleReady)

	s.router.Route("/scorecards", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		// stats must be registered before {id} so it is not read as one.
		r.Get("/stats", s.handleStats)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleUpdate)
		r.Delete("/{id}", s.handleDelete)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if _, err := s.repo.Count(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "database not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
