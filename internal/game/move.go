package game

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/pfranke/highlow/internal/cards"
)

// Prediction is the player's call on how the next drawn card ranks against
// the reference card.
type Prediction string

const (
	Higher Prediction = "higher"
	Lower  Prediction = "lower"
	Same   Prediction = "same"
)

func (p Prediction) valid() bool {
	switch p {
	case Higher, Lower, Same:
		return true
	}
	return false
}

// matches reports whether the prediction agrees with the sign of a rank
// comparison (drawn vs reference). A Same call is correct on exact rank
// equality regardless of suit; there is no partial credit.
func (p Prediction) matches(cmp int) bool {
	switch p {
	case Higher:
		return cmp > 0
	case Lower:
		return cmp < 0
	case Same:
		return cmp == 0
	}
	return false
}

// Move targets one stack of the 3x3 grid. Row and Col are 1-based.
// Reference must be the top card of the targeted stack as the caller last
// observed it: the evaluator compares the draw against this snapshot rather
// than re-deriving the top card, and rejects the move if the snapshot no
// longer matches reality.
type Move struct {
	Row        int
	Col        int
	Prediction Prediction
	Reference  cards.Card
}

// Validate checks the statically checkable fields of the move. Every bad
// field is reported, not just the first.
func (m Move) Validate() error {
	var err error
	if m.Row < 1 || m.Row > GridSize {
		err = multierr.Append(err, fmt.Errorf("row must be 1..%d, got %d", GridSize, m.Row))
	}
	if m.Col < 1 || m.Col > GridSize {
		err = multierr.Append(err, fmt.Errorf("col must be 1..%d, got %d", GridSize, m.Col))
	}
	if !m.Prediction.valid() {
		err = multierr.Append(err, fmt.Errorf("unknown prediction %q", m.Prediction))
	}
	return err
}
