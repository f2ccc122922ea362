package cards

import (
	"encoding/json"
	"testing"
)

func TestRankValues(t *testing.T) {
	tests := []struct {
		rank Rank
		want int
	}{
		{Two, 2},
		{Nine, 9},
		{Ten, 10},
		{Jack, 11},
		{Queen, 12},
		{King, 13},
		{Ace, 14},
	}
	for _, tt := range tests {
		c := Card{Suit: Spades, Rank: tt.rank}
		if got := c.RankValue(); got != tt.want {
			t.Errorf("RankValue(%s) = %d, want %d", tt.rank, got, tt.want)
		}
	}
}

func TestCompareIgnoresSuit(t *testing.T) {
	tests := []struct {
		a, b Card
		want int
	}{
		{Card{Hearts, Seven}, Card{Diamonds, Seven}, 0},
		{Card{Clubs, Ace}, Card{Spades, King}, 1},
		{Card{Diamonds, Two}, Card{Diamonds, Three}, -1},
		{Card{Spades, Ten}, Card{Hearts, Jack}, -1},
		{Card{Hearts, Queen}, Card{Hearts, Jack}, 1},
	}
	for _, tt := range tests {
		if got := Compare(tt.a, tt.b); got != tt.want {
			t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCardString(t *testing.T) {
	if got := (Card{Diamonds, Two}).String(); got != "♦2" {
		t.Errorf("expected ♦2, got %s", got)
	}
	if got := (Card{Spades, Ace}).String(); got != "♠A" {
		t.Errorf("expected ♠A, got %s", got)
	}
}

func TestCardJSONRoundTrip(t *testing.T) {
	orig := Card{Suit: Hearts, Rank: Ten}
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"rank":"10","suit":"♥"}` {
		t.Errorf("unexpected wire form: %s", data)
	}
	var back Card
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back != orig {
		t.Errorf("round trip changed card: %s -> %s", orig, back)
	}
}

func TestCardJSONAcceptsLetterSuits(t *testing.T) {
	var c Card
	if err := json.Unmarshal([]byte(`{"rank":"K","suit":"S"}`), &c); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if c != (Card{Spades, King}) {
		t.Errorf("expected ♠K, got %s", c)
	}
}

func TestCardJSONRejectsGarbage(t *testing.T) {
	var c Card
	if err := json.Unmarshal([]byte(`{"rank":"1","suit":"♥"}`), &c); err == nil {
		t.Error("expected error for rank 1")
	}
	if err := json.Unmarshal([]byte(`{"rank":"7","suit":"X"}`), &c); err == nil {
		t.Error("expected error for suit X")
	}
}
