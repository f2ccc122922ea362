package cards

import (
	"fmt"
	"math/rand/v2"
)

// DeckSize is the number of cards in the single standard deck this engine
// plays with.
const DeckSize = 52

// Full returns the canonical 52-card deck in deterministic order:
// ♦2, ♥2, ♠2, ♣2, ♦3, ... ♣A. Not shuffled.
func Full() []Card {
	deck := make([]Card, 0, DeckSize)
	for rank := Two; rank <= Ace; rank++ {
		for suit := Diamonds; suit <= Clubs; suit++ {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// Shuffle returns a new slice holding the same cards in uniformly random
// order, drawn from the shared math/rand/v2 source.
func Shuffle(deck []Card) []Card {
	return shuffle(deck, rand.IntN)
}

// ShuffleWith is Shuffle with a caller-owned source, for reproducible deals.
func ShuffleWith(rng *rand.Rand, deck []Card) []Card {
	return shuffle(deck, rng.IntN)
}

// shuffle is a Fisher-Yates permutation: walking from the last index down,
// each element swaps with a uniformly random index at or below it, so every
// one of the n! orderings is equally likely. The input is left untouched.
func shuffle(deck []Card, intN func(int) int) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	for i := len(out) - 1; i > 0; i-- {
		j := intN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Deal removes n cards from the top (the end) of the pile, returning the
// dealt cards in draw order and the remaining pile. Neither result aliases
// the input. Fails only when the pile holds fewer than n cards, which is
// unreachable with a 52-card deck and a 9-card opening deal.
func Deal(pile []Card, n int) (dealt, rest []Card, err error) {
	if n < 0 || n > len(pile) {
		return nil, nil, fmt.Errorf("cannot deal %d cards from a pile of %d", n, len(pile))
	}
	dealt = make([]Card, n)
	for i := 0; i < n; i++ {
		dealt[i] = pile[len(pile)-1-i]
	}
	rest = make([]Card, len(pile)-n)
	copy(rest, pile[:len(pile)-n])
	return dealt, rest, nil
}
