// Package prob derives exact Higher/Lower/Same odds from the population of
// cards not yet seen. Everything here is a pure function of its inputs: the
// seen-card ledger maintained by the game session is the only source of
// truth, and the remaining population is always recomputed from it rather
// than mirrored anywhere.
package prob

import "github.com/pfranke/highlow/internal/cards"

// Outcome holds the odds of the three predictions for one reference card
// against a remaining-card population. Counts are kept alongside the
// probabilities so callers can requote the division at whatever precision
// they need.
type Outcome struct {
	Higher float64
	Lower  float64
	Same   float64

	HigherCount int
	LowerCount  int
	SameCount   int
	Total       int
}

// Remaining returns the full 52-card set minus every card present in seen.
// Set difference is by suit+rank identity; order of seen is irrelevant.
func Remaining(seen []cards.Card) []cards.Card {
	taken := make(map[cards.Card]struct{}, len(seen))
	for _, c := range seen {
		taken[c] = struct{}{}
	}
	out := make([]cards.Card, 0, cards.DeckSize-len(taken))
	for _, c := range cards.Full() {
		if _, ok := taken[c]; !ok {
			out = append(out, c)
		}
	}
	return out
}

// Outcomes computes the exact probabilities of the next drawn card ranking
// higher, lower or the same as ref, given the population it will be drawn
// from. With a non-empty population the three probabilities sum to 1. With
// an empty one every field is zero; callers must read that as "the game has
// ended", never divide by Total.
func Outcomes(ref cards.Card, population []cards.Card) Outcome {
	var o Outcome
	o.Total = len(population)
	for _, c := range population {
		switch cmp := cards.Compare(c, ref); {
		case cmp > 0:
			o.HigherCount++
		case cmp < 0:
			o.LowerCount++
		default:
			o.SameCount++
		}
	}
	if o.Total == 0 {
		return o
	}
	n := float64(o.Total)
	o.Higher = float64(o.HigherCount) / n
	o.Lower = float64(o.LowerCount) / n
	o.Same = float64(o.SameCount) / n
	return o
}

// FromSeen is the one-call form used by presentation adapters: odds for ref
// against whatever the seen ledger says is still out there.
func FromSeen(ref cards.Card, seen []cards.Card) Outcome {
	return Outcomes(ref, Remaining(seen))
}
