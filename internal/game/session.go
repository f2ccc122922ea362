// Package game owns the authoritative High-Low solitaire state: the draw
// pile, the 3x3 stack grid, the win/loss flags and the seen-card ledger.
// A Session is constructed by New, mutated only by CommitMove, and read
// through Snapshot and the accessors. It assumes the single-writer
// discipline described by the serving layer; it takes no locks itself.
package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/pfranke/highlow/internal/cards"
	"github.com/pfranke/highlow/internal/prob"
)

// GridSize is the fixed width and height of the stack grid.
const GridSize = 3

// initialDeal is one card per stack.
const initialDeal = GridSize * GridSize

// Stack status values as they appear in snapshots.
const (
	StatusActive = "active"
	StatusFailed = "failed"
)

// Stack is one position of the grid: an append-only pile of cards and a
// one-way Active -> Failed status. Cards are ordered bottom to top and the
// drawn card always lands on top, even when the guess was wrong, so a
// failed stack still shows the card that killed it.
type Stack struct {
	cards  []cards.Card
	failed bool
}

// Top returns the stack's top card. Stacks are never empty after the deal.
func (st *Stack) Top() cards.Card { return st.cards[len(st.cards)-1] }

// Failed reports whether the stack has been lost to a wrong guess.
func (st *Stack) Failed() bool { return st.failed }

// Cards returns a copy of the stack's cards, bottom to top.
func (st *Stack) Cards() []cards.Card {
	return append([]cards.Card(nil), st.cards...)
}

// Session is one solitaire game. The zero value is not usable; construct
// with New.
type Session struct {
	drawPile []cards.Card
	stacks   [GridSize][GridSize]*Stack
	seen     []cards.Card
	won      bool
	lost     bool
	seed     uint64
}

// Option configures New.
type Option func(*sessionConfig)

type sessionConfig struct {
	seed    uint64
	hasSeed bool
}

// WithSeed pins the shuffle to a PCG seed so the deal can be reproduced.
func WithSeed(seed uint64) Option {
	return func(cfg *sessionConfig) {
		cfg.seed = seed
		cfg.hasSeed = true
	}
}

// New starts a fresh game: it shuffles a full 52-card deck, deals one card
// to each of the nine stacks in row-major order and keeps the remaining 43
// cards as the draw pile. The seen ledger starts as exactly the nine dealt
// cards. New always succeeds and wholly replaces whatever session the
// caller held before.
func New(opts ...Option) *Session {
	var cfg sessionConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.hasSeed {
		cfg.seed = rand.Uint64()
	}
	rng := rand.New(rand.NewPCG(cfg.seed, 0x9e3779b97f4a7c15))

	pile := cards.ShuffleWith(rng, cards.Full())
	dealt, rest, err := cards.Deal(pile, initialDeal)
	if err != nil {
		// Not reachable: a full deck always covers the opening deal.
		panic(err)
	}

	s := &Session{
		drawPile: rest,
		seen:     make([]cards.Card, 0, cards.DeckSize),
		seed:     cfg.seed,
	}
	i := 0
	for r := range s.stacks {
		for c := range s.stacks[r] {
			s.stacks[r][c] = &Stack{cards: []cards.Card{dealt[i]}}
			s.seen = append(s.seen, dealt[i])
			i++
		}
	}
	return s
}

// Seed returns the shuffle seed, for reproducing the deal.
func (s *Session) Seed() uint64 { return s.seed }

// Won reports whether a correct guess emptied the draw pile.
func (s *Session) Won() bool { return s.won }

// Lost reports whether every stack has failed.
func (s *Session) Lost() bool { return s.lost }

// DrawRemaining returns the number of cards left in the draw pile.
func (s *Session) DrawRemaining() int { return len(s.drawPile) }

// SeenCards returns a copy of the seen ledger: every card ever placed on
// any stack, buried ones included. It is the sole input to probability
// computation.
func (s *Session) SeenCards() []cards.Card {
	return append([]cards.Card(nil), s.seen...)
}

// TopCard returns the current top card of the stack at the 1-based row and
// column.
func (s *Session) TopCard(row, col int) (cards.Card, error) {
	if row < 1 || row > GridSize || col < 1 || col > GridSize {
		return cards.Card{}, fmt.Errorf("%w: no stack at (%d,%d)", ErrInvalidMove, row, col)
	}
	return s.stackAt(row, col).Top(), nil
}

// Odds returns the Higher/Lower/Same odds for ref against everything this
// session has seen so far.
func (s *Session) Odds(ref cards.Card) prob.Outcome {
	return prob.FromSeen(ref, s.seen)
}

func (s *Session) stackAt(row, col int) *Stack {
	return s.stacks[row-1][col-1]
}

// checkMove rejects moves the presentation layer should have filtered:
// malformed fields, a failed target stack, or a reference card that no
// longer matches the stack's top. Peek and commit share this so a peeked
// outcome is always the outcome a commit would score.
func (s *Session) checkMove(m Move) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidMove, err)
	}
	st := s.stackAt(m.Row, m.Col)
	if st.failed {
		return fmt.Errorf("%w: stack (%d,%d) already failed", ErrInvalidMove, m.Row, m.Col)
	}
	if top := st.Top(); top != m.Reference {
		return fmt.Errorf("%w: reference card %s is stale, stack (%d,%d) shows %s",
			ErrInvalidMove, m.Reference, m.Row, m.Col, top)
	}
	return nil
}

// PeekResult describes what a move would do without doing it.
type PeekResult struct {
	Drawn   cards.Card
	Correct bool
}

// PeekMove looks at the top of the draw pile and reports whether the move
// would score correct, mutating nothing. Repeated peeks return identical
// results until a commit intervenes. Returns ErrOutOfCards when the pile
// is empty, which callers treat as the game already having been won.
func (s *Session) PeekMove(m Move) (PeekResult, error) {
	if err := s.checkMove(m); err != nil {
		return PeekResult{}, err
	}
	if len(s.drawPile) == 0 {
		return PeekResult{}, ErrOutOfCards
	}
	drawn := s.drawPile[len(s.drawPile)-1]
	return PeekResult{
		Drawn:   drawn,
		Correct: m.Prediction.matches(cards.Compare(drawn, m.Reference)),
	}, nil
}

// CommitMove is the sole mutator. It draws the top card, scores it against
// the move's reference snapshot, appends it to the targeted stack whether
// or not the guess was right, records it in the seen ledger, and updates
// the win/loss flags: won when a correct guess drains the pile, lost when
// every stack has failed.
//
// Committing after the game is won is a no-op; the win was flagged by the
// move that drew the last card. Hitting an empty pile on a game that is
// not won is an invariant breach and is surfaced instead of masked.
func (s *Session) CommitMove(m Move) error {
	if err := s.checkMove(m); err != nil {
		return err
	}
	if len(s.drawPile) == 0 {
		if !s.won {
			return fmt.Errorf("%w: pile exhausted on an unfinished game", ErrOutOfCards)
		}
		return nil
	}

	drawn := s.drawPile[len(s.drawPile)-1]
	s.drawPile = s.drawPile[:len(s.drawPile)-1]

	st := s.stackAt(m.Row, m.Col)
	correct := m.Prediction.matches(cards.Compare(drawn, m.Reference))
	st.cards = append(st.cards, drawn)
	s.seen = append(s.seen, drawn)

	if correct {
		if len(s.drawPile) == 0 {
			s.won = true
		}
		return nil
	}

	st.failed = true
	lost := true
	for r := range s.stacks {
		for c := range s.stacks[r] {
			if !s.stacks[r][c].failed {
				lost = false
			}
		}
	}
	s.lost = lost
	return nil
}

// StackSnapshot is the read-only view of one stack.
type StackSnapshot struct {
	Cards  []cards.Card `json:"cards"`
	Status string       `json:"status"`
}

// Snapshot is the read-only view of the whole session, safe to hand to
// presentation adapters: all card slices are copies.
type Snapshot struct {
	Seed          uint64                            `json:"seed"`
	DrawRemaining int                               `json:"draw_remaining"`
	Stacks        [GridSize][GridSize]StackSnapshot `json:"stacks"`
	Won           bool                              `json:"won"`
	Lost          bool                              `json:"lost"`
	SeenCards     []cards.Card                      `json:"seen_cards"`
}

// Snapshot captures the current state.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Seed:          s.seed,
		DrawRemaining: len(s.drawPile),
		Won:           s.won,
		Lost:          s.lost,
		SeenCards:     s.SeenCards(),
	}
	for r := range s.stacks {
		for c := range s.stacks[r] {
			st := s.stacks[r][c]
			status := StatusActive
			if st.failed {
				status = StatusFailed
			}
			snap.Stacks[r][c] = StackSnapshot{Cards: st.Cards(), Status: status}
		}
	}
	return snap
}
