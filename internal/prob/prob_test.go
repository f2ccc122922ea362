package prob

import (
	"math"
	"testing"

	"github.com/pfranke/highlow/internal/cards"
)

func TestRemainingFullWhenNothingSeen(t *testing.T) {
	if got := len(Remaining(nil)); got != cards.DeckSize {
		t.Errorf("expected %d remaining, got %d", cards.DeckSize, got)
	}
}

func TestRemainingExcludesSeen(t *testing.T) {
	seen := []cards.Card{
		{Suit: cards.Hearts, Rank: cards.Seven},
		{Suit: cards.Spades, Rank: cards.Ace},
		{Suit: cards.Diamonds, Rank: cards.Two},
	}
	rem := Remaining(seen)
	if len(rem) != cards.DeckSize-len(seen) {
		t.Fatalf("expected %d remaining, got %d", cards.DeckSize-len(seen), len(rem))
	}
	for _, s := range seen {
		for _, c := range rem {
			if c == s {
				t.Errorf("seen card %s still in remaining population", s)
			}
		}
	}
}

func TestRemainingIgnoresOrderAndDuplicates(t *testing.T) {
	a := []cards.Card{{Suit: cards.Hearts, Rank: cards.Five}, {Suit: cards.Clubs, Rank: cards.King}}
	b := []cards.Card{{Suit: cards.Clubs, Rank: cards.King}, {Suit: cards.Hearts, Rank: cards.Five}}
	ra, rb := Remaining(a), Remaining(b)
	if len(ra) != len(rb) {
		t.Fatalf("order changed the population size: %d vs %d", len(ra), len(rb))
	}
	for i := range ra {
		if ra[i] != rb[i] {
			t.Fatalf("order changed the population at %d", i)
		}
	}
}

func TestOutcomesCountsOverFullDeck(t *testing.T) {
	// Against a full population, a 7 reference sees 7 ranks above it
	// (8..A, 28 cards), 5 below (2..6, 20 cards) and 4 of its own rank.
	ref := cards.Card{Suit: cards.Hearts, Rank: cards.Seven}
	o := Outcomes(ref, cards.Full())
	if o.Total != 52 {
		t.Errorf("total = %d, want 52", o.Total)
	}
	if o.HigherCount != 28 || o.LowerCount != 20 || o.SameCount != 4 {
		t.Errorf("counts = %d/%d/%d, want 28/20/4", o.HigherCount, o.LowerCount, o.SameCount)
	}
}

func TestOutcomesProbabilityLaw(t *testing.T) {
	population := Remaining([]cards.Card{
		{Suit: cards.Diamonds, Rank: cards.Ace},
		{Suit: cards.Hearts, Rank: cards.Ace},
		{Suit: cards.Clubs, Rank: cards.Two},
	})
	for rank := cards.Two; rank <= cards.Ace; rank++ {
		ref := cards.Card{Suit: cards.Spades, Rank: rank}
		o := Outcomes(ref, population)
		if o.Total != len(population) {
			t.Errorf("ref %s: total %d, want %d", ref, o.Total, len(population))
		}
		if sum := o.Higher + o.Lower + o.Same; math.Abs(sum-1) > 1e-12 {
			t.Errorf("ref %s: probabilities sum to %v", ref, sum)
		}
		if o.HigherCount+o.LowerCount+o.SameCount != o.Total {
			t.Errorf("ref %s: counts do not sum to total", ref)
		}
	}
}

func TestOutcomesRankBoundaries(t *testing.T) {
	pop := cards.Full()
	ace := Outcomes(cards.Card{Suit: cards.Spades, Rank: cards.Ace}, pop)
	if ace.Higher != 0 || ace.HigherCount != 0 {
		t.Errorf("nothing outranks an Ace, got higher=%v count=%d", ace.Higher, ace.HigherCount)
	}
	two := Outcomes(cards.Card{Suit: cards.Spades, Rank: cards.Two}, pop)
	if two.Lower != 0 || two.LowerCount != 0 {
		t.Errorf("nothing ranks under a 2, got lower=%v count=%d", two.Lower, two.LowerCount)
	}
}

func TestOutcomesEmptyPopulation(t *testing.T) {
	o := Outcomes(cards.Card{Suit: cards.Hearts, Rank: cards.Nine}, nil)
	if o.Total != 0 || o.Higher != 0 || o.Lower != 0 || o.Same != 0 {
		t.Errorf("empty population must zero everything, got %+v", o)
	}
}

func TestFromSeenMatchesExplicitComposition(t *testing.T) {
	seen := cards.Full()[:20]
	ref := cards.Card{Suit: cards.Clubs, Rank: cards.Jack}
	direct := Outcomes(ref, Remaining(seen))
	composed := FromSeen(ref, seen)
	if direct != composed {
		t.Errorf("FromSeen diverged: %+v vs %+v", composed, direct)
	}
}
