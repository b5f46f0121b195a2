package poker

import (
	"math/rand"
	"testing"
)

func TestNewDeckHas52UniqueCards(t *testing.T) {
	deck := NewDeck(rand.NewSource(1))
	if deck.Size() != 52 {
		t.Fatalf("expected 52 cards, got %d", deck.Size())
	}

	seen := make(map[Card]bool)
	for _, c := range deck.Remaining() {
		if seen[c] {
			t.Fatalf("duplicate card %s in deck", c)
		}
		seen[c] = true
	}
}

func TestDrawShrinksDeck(t *testing.T) {
	deck := NewDeckNoShuffle()
	first := deck.Draw(2)
	if len(first) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(first))
	}
	if deck.Size() != 50 {
		t.Errorf("expected 50 cards after drawing 2, got %d", deck.Size())
	}

	second := deck.Draw(2)
	for _, c := range second {
		if c == first[0] || c == first[1] {
			t.Errorf("card %s drawn twice", c)
		}
	}
}

func TestDeckFromScript(t *testing.T) {
	playerCards := []CardsInAscii{
		{"Ah", "Kh"},
		{"Qd", "Qc"},
		{"7s", "2d"},
	}
	deck := DeckFromScript(playerCards, CardsInAscii{"3c", "4c", "5c"}, "Td", "Js")

	if deck.Size() != 52 {
		t.Fatalf("scripted deck must still have 52 cards, got %d", deck.Size())
	}

	// the engine deals one card per player per round
	expectedOrder := []string{"Ah", "Qd", "7s", "Kh", "Qc", "2d", "3c", "4c", "5c", "Td", "Js"}
	top := deck.Draw(len(expectedOrder))
	for i, want := range expectedOrder {
		if top[i].String() != want {
			t.Errorf("card %d: expected %s, got %s", i, want, top[i])
		}
	}

	seen := make(map[Card]bool)
	for _, c := range top {
		seen[c] = true
	}
	for _, c := range deck.Remaining() {
		if seen[c] {
			t.Errorf("card %s appears twice in the scripted deck", c)
		}
		seen[c] = true
	}
}

func TestDeckByteRoundTrip(t *testing.T) {
	deck := NewDeck(rand.NewSource(7))
	restored := DeckFromBytes(deck.GetBytes())
	if restored.Size() != deck.Size() {
		t.Fatalf("expected %d cards, got %d", deck.Size(), restored.Size())
	}
	orig := deck.Remaining()
	for i, c := range restored.Remaining() {
		if c != orig[i] {
			t.Fatalf("card %d changed in round trip: %s vs %s", i, c, orig[i])
		}
	}
}
