package cards

import (
	"encoding/json"
	"fmt"
)

// Suit identifies one of the four French suits. Suit never participates in
// game logic; it only exists so the 52 cards are distinct values.
type Suit uint8

// Suits in deck order: ♦, ♥, ♠, ♣
const (
	Diamonds Suit = iota
	Hearts
	Spades
	Clubs
)

var suitSymbols = [...]string{"♦", "♥", "♠", "♣"}

func (s Suit) String() string {
	if int(s) < len(suitSymbols) {
		return suitSymbols[s]
	}
	return fmt.Sprintf("Suit(%d)", uint8(s))
}

// ParseSuit accepts a suit symbol (♦ ♥ ♠ ♣) or its letter code (D H S C).
func ParseSuit(s string) (Suit, error) {
	switch s {
	case "♦", "D", "d":
		return Diamonds, nil
	case "♥", "H", "h":
		return Hearts, nil
	case "♠", "S", "s":
		return Spades, nil
	case "♣", "C", "c":
		return Clubs, nil
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

// Rank is a card rank carrying its comparison value directly: Two is 2,
// Ten is 10, Jack 11, Queen 12, King 13 and Ace 14. Ace is always high.
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var rankLabels = map[Rank]string{
	Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "10", Jack: "J", Queen: "Q", King: "K", Ace: "A",
}

func (r Rank) String() string {
	if label, ok := rankLabels[r]; ok {
		return label
	}
	return fmt.Sprintf("Rank(%d)", uint8(r))
}

// ParseRank accepts the labels 2-10, J, Q, K, A.
func ParseRank(s string) (Rank, error) {
	for r, label := range rankLabels {
		if s == label {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// Card is an immutable suit+rank pair. Identity is structural: two Cards
// are the same card exactly when suit and rank both match, so Card values
// compare with == and can key a map.
type Card struct {
	Suit Suit
	Rank Rank
}

// String returns a human-readable representation like "♦2" or "♠A".
func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// RankValue returns the numeric ordering of the card's rank, 2 through 14.
func (c Card) RankValue() int { return int(c.Rank) }

// Compare orders two cards by rank alone: 1 when a outranks b, -1 when b
// outranks a, 0 on equal rank. Suit is never consulted.
func Compare(a, b Card) int {
	switch {
	case a.Rank > b.Rank:
		return 1
	case a.Rank < b.Rank:
		return -1
	}
	return 0
}

// cardJSON is the wire shape used everywhere a card crosses the API:
// {"rank":"K","suit":"♠"}.
type cardJSON struct {
	Rank string `json:"rank"`
	Suit string `json:"suit"`
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(cardJSON{Rank: c.Rank.String(), Suit: c.Suit.String()})
}

func (c *Card) UnmarshalJSON(data []byte) error {
	var raw cardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	rank, err := ParseRank(raw.Rank)
	if err != nil {
		return err
	}
	suit, err := ParseSuit(raw.Suit)
	if err != nil {
		return err
	}
	c.Rank, c.Suit = rank, suit
	return nil
}
