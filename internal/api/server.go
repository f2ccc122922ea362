// Package api is the HTTP presentation-adapter boundary of the High-Low
// engine. It hosts many independent single-player sessions, serializes all
// state transitions per session, and exposes the core contract (start,
// peek, commit, snapshot, odds) as JSON endpoints plus a websocket
// snapshot stream. The game rules live in internal/game; nothing here
// interprets cards.
package api

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server handles HTTP requests.
type Server struct {
	registry  *Registry
	logger    *log.Logger
	startTime time.Time
}

// NewServer creates an API server over a session registry.
func NewServer(registry *Registry) *Server {
	return &Server{
		registry:  registry,
		logger:    log.New(os.Stdout, "[API] ", log.LstdFlags),
		startTime: time.Now(),
	}
}

// Routes sets up the HTTP routes with middleware.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/sessions", s.handleCreateSession)
		r.Post("/odds", s.handleOdds)

		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/peek", s.handlePeek)
			r.Post("/moves", s.handleCommit)
			r.Get("/odds", s.handleSessionOdds)
			r.Get("/watch", s.handleWatch)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Sessions:      s.registry.Len(),
		EngineVersion: EngineVersion,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, VersionResponse{EngineVersion: EngineVersion})
}
