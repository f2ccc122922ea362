package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pfranke/highlow/internal/game"
	"github.com/pfranke/highlow/internal/prob"
)

// decodeJSON decodes a request body strictly, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// sessionFromRequest resolves the {id} URL param to a hosted session.
func (s *Server) sessionFromRequest(w http.ResponseWriter, r *http.Request) (*hostedSession, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid session id", map[string]any{
			"id": chi.URLParam(r, "id"),
		})
		return nil, false
	}
	h, err := s.registry.Get(id)
	if err != nil {
		s.writeDomainError(w, r, err, map[string]any{"id": id.String()})
		return nil, false
	}
	return h, true
}

// moveFromRequest decodes and field-validates a move body.
func (s *Server) moveFromRequest(w http.ResponseWriter, r *http.Request) (game.Move, bool) {
	var req MoveRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", map[string]any{
			"error": err.Error(),
		})
		return game.Move{}, false
	}
	m := req.toMove()
	if err := m.Validate(); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid move", map[string]any{
			"field_errors": err.Error(),
		})
		return game.Move{}, false
	}
	return m, true
}

// handleCreateSession starts a new game. POST /v1/sessions
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req NewSessionRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", map[string]any{
				"error": err.Error(),
			})
			return
		}
	}

	var opts []game.Option
	if req.Seed != nil {
		opts = append(opts, game.WithSeed(*req.Seed))
	}
	id, h, err := s.registry.Create(opts...)
	if err != nil {
		s.writeDomainError(w, r, err, nil)
		return
	}
	snap := h.Snapshot()
	s.logger.Printf("session_created id=%s seed=%d live=%d", id, snap.Seed, s.registry.Len())
	s.writeJSON(w, http.StatusCreated, SessionResponse{
		SessionID:     id.String(),
		State:         snap,
		EngineVersion: EngineVersion,
	})
}

// handleGetSession returns the state snapshot. GET /v1/sessions/{id}
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	h, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, SessionResponse{
		SessionID:     chi.URLParam(r, "id"),
		State:         h.Snapshot(),
		EngineVersion: EngineVersion,
	})
}

// handleDeleteSession drops a session. DELETE /v1/sessions/{id}
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid session id", nil)
		return
	}
	if err := s.registry.Delete(id); err != nil {
		s.writeDomainError(w, r, err, map[string]any{"id": id.String()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handlePeek previews a move without committing it. POST /v1/sessions/{id}/peek
func (s *Server) handlePeek(w http.ResponseWriter, r *http.Request) {
	h, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	m, ok := s.moveFromRequest(w, r)
	if !ok {
		return
	}
	res, err := h.Peek(m)
	if err != nil {
		s.writeDomainError(w, r, err, moveContext(m))
		return
	}
	s.writeJSON(w, http.StatusOK, PeekResponse{
		DrawnCard:      res.Drawn,
		WouldBeCorrect: res.Correct,
	})
}

// handleCommit applies a move. POST /v1/sessions/{id}/moves
func (s *Server) handleCommit(w http.ResponseWriter, r *http.Request) {
	h, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	m, ok := s.moveFromRequest(w, r)
	if !ok {
		return
	}
	res, err := h.Commit(m)
	if err != nil {
		s.writeDomainError(w, r, err, moveContext(m))
		return
	}
	if res.drawn != nil {
		s.logger.Printf("move_committed stack=%d,%d prediction=%s drawn=%s correct=%t draw_remaining=%d",
			m.Row, m.Col, m.Prediction, res.drawn, *res.correct, res.snapshot.DrawRemaining)
	}
	s.writeJSON(w, http.StatusOK, CommitResponse{
		DrawnCard:  res.drawn,
		WasCorrect: res.correct,
		State:      res.snapshot,
	})
}

// handleSessionOdds quotes odds for one stack's top card against the
// session ledger. GET /v1/sessions/{id}/odds?row=&col=
func (s *Server) handleSessionOdds(w http.ResponseWriter, r *http.Request) {
	h, ok := s.sessionFromRequest(w, r)
	if !ok {
		return
	}
	row, errRow := strconv.Atoi(r.URL.Query().Get("row"))
	col, errCol := strconv.Atoi(r.URL.Query().Get("col"))
	if errRow != nil || errCol != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "row and col query params are required integers", nil)
		return
	}
	ref, outcome, err := h.Odds(row, col)
	if err != nil {
		s.writeDomainError(w, r, err, map[string]any{"row": row, "col": col})
		return
	}
	s.writeJSON(w, http.StatusOK, quoteOdds(ref, outcome))
}

// handleOdds is the stateless probability query. POST /v1/odds
func (s *Server) handleOdds(w http.ResponseWriter, r *http.Request) {
	var req OddsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, ErrTypeValidation, "invalid JSON body", map[string]any{
			"error": err.Error(),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, quoteOdds(req.Reference, prob.FromSeen(req.Reference, req.Seen)))
}

func moveContext(m game.Move) map[string]any {
	return map[string]any{
		"row":        m.Row,
		"col":        m.Col,
		"prediction": string(m.Prediction),
		"reference":  m.Reference.String(),
	}
}
