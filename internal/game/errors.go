package game

import "errors"

var (
	// ErrOutOfCards signals a draw attempted against an empty pile.
	// Exhausting the deck is equivalent to having won, so callers treat
	// this as "the game already ended", not as a failure.
	ErrOutOfCards = errors.New("draw pile is empty")

	// ErrInvalidMove signals a move the presentation layer should never
	// have offered, like targeting a failed stack or carrying a stale
	// reference card. It indicates a caller bug and is a hard failure.
	ErrInvalidMove = errors.New("invalid move")
)
