package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/pfranke/highlow/internal/game"
)

// classify maps a domain error to an HTTP status and error type. Anything
// unrecognized is an internal error.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		return http.StatusNotFound, ErrTypeNotFound
	case errors.Is(err, ErrSessionLimit):
		return http.StatusServiceUnavailable, ErrTypeSessionLimit
	case errors.Is(err, game.ErrOutOfCards):
		return http.StatusConflict, ErrTypeOutOfCards
	case errors.Is(err, game.ErrInvalidMove):
		return http.StatusConflict, ErrTypeInvalidMove
	}
	return http.StatusInternalServerError, ErrTypeInternal
}

// writeJSON writes a JSON response with the engine version header.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Engine-Version", EngineVersion)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeError writes a structured error response.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, errType, message string, context map[string]any) {
	s.logger.Printf("request_failed type=%s status=%d path=%s message=%q",
		errType, status, r.URL.Path, message)
	s.writeJSON(w, status, EngineError{
		Type:      errType,
		Message:   message,
		Context:   context,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// writeDomainError classifies err and writes it.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error, context map[string]any) {
	status, errType := classify(err)
	s.writeError(w, r, status, errType, err.Error(), context)
}
