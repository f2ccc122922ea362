package api

import (
	"github.com/shopspring/decimal"

	"github.com/pfranke/highlow/internal/cards"
	"github.com/pfranke/highlow/internal/game"
	"github.com/pfranke/highlow/internal/prob"
)

// oddsDecimalPlaces is the precision probability quotes are divided at.
const oddsDecimalPlaces = 6

// EngineError is the structured error body every failing endpoint returns.
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e EngineError) Error() string { return e.Message }

// Error types.
const (
	ErrTypeValidation   = "validation_error"
	ErrTypeNotFound     = "session_not_found"
	ErrTypeOutOfCards   = "out_of_cards"
	ErrTypeInvalidMove  = "invalid_move"
	ErrTypeSessionLimit = "session_limit"
	ErrTypeInternal     = "internal_error"
)

// NewSessionRequest creates a session. Seed is optional; when present the
// deal is reproducible.
type NewSessionRequest struct {
	Seed *uint64 `json:"seed,omitempty"`
}

// SessionResponse wraps a session snapshot with its registry identity.
type SessionResponse struct {
	SessionID     string        `json:"session_id"`
	State         game.Snapshot `json:"state"`
	EngineVersion string        `json:"engine_version"`
}

// MoveRequest is the wire form of a game.Move.
type MoveRequest struct {
	Row        int        `json:"row"`
	Col        int        `json:"col"`
	Prediction string     `json:"prediction"`
	Reference  cards.Card `json:"reference"`
}

func (r MoveRequest) toMove() game.Move {
	return game.Move{
		Row:        r.Row,
		Col:        r.Col,
		Prediction: game.Prediction(r.Prediction),
		Reference:  r.Reference,
	}
}

// PeekResponse reports what a move would do, for animating before commit.
type PeekResponse struct {
	DrawnCard      cards.Card `json:"drawn_card"`
	WouldBeCorrect bool       `json:"would_be_correct"`
}

// CommitResponse echoes the authoritative outcome alongside the new state
// so adapters animate from what actually happened.
type CommitResponse struct {
	DrawnCard  *cards.Card   `json:"drawn_card,omitempty"`
	WasCorrect *bool         `json:"was_correct,omitempty"`
	State      game.Snapshot `json:"state"`
}

// OddsRequest is the stateless probability query: a reference card and the
// ledger of every card already seen.
type OddsRequest struct {
	Reference cards.Card   `json:"reference"`
	Seen      []cards.Card `json:"seen"`
}

// OddsQuote is one prediction's odds: the raw count over the remaining
// population, the float probability, and the same division quoted as a
// fixed-precision decimal string so presentation layers never re-derive
// from floats.
type OddsQuote struct {
	Count   int     `json:"count"`
	P       float64 `json:"p"`
	Decimal string  `json:"decimal"`
}

// OddsResponse quotes all three predictions for a reference card.
type OddsResponse struct {
	Reference cards.Card `json:"reference"`
	Higher    OddsQuote  `json:"higher"`
	Lower     OddsQuote  `json:"lower"`
	Same      OddsQuote  `json:"same"`
	Total     int        `json:"total"`
}

func quoteOdds(ref cards.Card, o prob.Outcome) OddsResponse {
	return OddsResponse{
		Reference: ref,
		Higher:    quote(o.HigherCount, o.Higher, o.Total),
		Lower:     quote(o.LowerCount, o.Lower, o.Total),
		Same:      quote(o.SameCount, o.Same, o.Total),
		Total:     o.Total,
	}
}

func quote(count int, p float64, total int) OddsQuote {
	q := OddsQuote{Count: count, P: p, Decimal: "0"}
	if total > 0 {
		q.Decimal = decimal.NewFromInt(int64(count)).
			DivRound(decimal.NewFromInt(int64(total)), oddsDecimalPlaces).
			String()
	}
	return q
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status        string `json:"status"`
	Sessions      int    `json:"sessions"`
	EngineVersion string `json:"engine_version"`
	Timestamp     string `json:"timestamp"`
}

// VersionResponse is the /version payload.
type VersionResponse struct {
	EngineVersion string `json:"engine_version"`
}
