package poker

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cardsFromStrings(strs ...string) []Card {
	cards := make([]Card, len(strs))
	for i, s := range strs {
		cards[i] = NewCard(s)
	}
	return cards
}

func TestEvaluateCategories(t *testing.T) {
	testCases := []struct {
		name     string
		cards    []string
		category int32
	}{
		{
			name:     "royal flush",
			cards:    []string{"As", "Ks", "Qs", "Js", "Ts", "2d", "3c"},
			category: RoyalFlush,
		},
		{
			name:     "straight flush",
			cards:    []string{"9h", "8h", "7h", "6h", "5h", "As", "Ad"},
			category: StraightFlush,
		},
		{
			name:     "wheel straight flush",
			cards:    []string{"Ad", "2d", "3d", "4d", "5d", "Kc", "Kh"},
			category: StraightFlush,
		},
		{
			name:     "four of a kind",
			cards:    []string{"Qc", "Qd", "Qh", "Qs", "2c", "7d", "9h"},
			category: FourOfAKind,
		},
		{
			name:     "full house",
			cards:    []string{"Jc", "Jd", "Jh", "4s", "4c", "9d", "2h"},
			category: FullHouse,
		},
		{
			name:     "flush",
			cards:    []string{"Ac", "Tc", "7c", "4c", "2c", "Kd", "Kh"},
			category: Flush,
		},
		{
			name:     "straight",
			cards:    []string{"9c", "8d", "7h", "6s", "5c", "Ad", "Ah"},
			category: Straight,
		},
		{
			name:     "wheel",
			cards:    []string{"Ac", "2d", "3h", "4s", "5c", "Kd", "9h"},
			category: Straight,
		},
		{
			name:     "three of a kind",
			cards:    []string{"8c", "8d", "8h", "Ks", "2c", "5d", "Jh"},
			category: ThreeOfAKind,
		},
		{
			name:     "two pair",
			cards:    []string{"Ac", "Ad", "Kh", "Ks", "2c", "5d", "9h"},
			category: TwoPair,
		},
		{
			name:     "pair",
			cards:    []string{"Tc", "Td", "Ah", "7s", "4c", "2d", "9h"},
			category: Pair,
		},
		{
			name:     "high card",
			cards:    []string{"Ac", "Jd", "9h", "7s", "5c", "3d", "2h"},
			category: HighCard,
		},
	}

	for _, tc := range testCases {
		result := Evaluate(cardsFromStrings(tc.cards...))
		if result.Category != tc.category {
			t.Errorf("%s: expected %s, got %s",
				tc.name, RankString(tc.category), RankString(result.Category))
		}
	}
}

func TestEvaluateTooFewCards(t *testing.T) {
	result := Evaluate(cardsFromStrings("As", "Ks", "Qs", "Js"))
	if !cmp.Equal(result, NoHand) {
		t.Errorf("expected NoHand for four cards, got %+v", result)
	}
}

func TestEvaluateOrderInvariance(t *testing.T) {
	cards := cardsFromStrings("Qc", "Qd", "Qh", "Js", "Jc", "9d", "2h")
	want := Evaluate(cards)

	r := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := make([]Card, len(cards))
		copy(shuffled, cards)
		r.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Evaluate(shuffled)
		if got.Category != want.Category || got.Tiebreak != want.Tiebreak {
			t.Fatalf("shuffle %d changed the result: %+v vs %+v", i, got, want)
		}
	}
}

func TestWheelLosesToHigherStraight(t *testing.T) {
	wheel := Evaluate(cardsFromStrings("Ac", "2d", "3h", "4s", "5c"))
	sixHigh := Evaluate(cardsFromStrings("2c", "3d", "4h", "5s", "6c"))
	if wheel.Category != Straight || sixHigh.Category != Straight {
		t.Fatalf("expected straights, got %s and %s", wheel, sixHigh)
	}
	if !sixHigh.Beats(wheel) {
		t.Error("a six-high straight must beat the wheel")
	}
	if wheel.Beats(sixHigh) {
		t.Error("the wheel must not beat a six-high straight")
	}
}

func TestBeatsKickers(t *testing.T) {
	// same pair, better kicker
	aceKicker := Evaluate(cardsFromStrings("Tc", "Td", "Ah", "7s", "4c"))
	kingKicker := Evaluate(cardsFromStrings("Th", "Ts", "Kh", "7d", "4d"))
	if !aceKicker.Beats(kingKicker) {
		t.Error("tens with an ace kicker must beat tens with a king kicker")
	}

	// category dominates tiebreak
	lowTwoPair := Evaluate(cardsFromStrings("3c", "3d", "2h", "2s", "7c"))
	highPair := Evaluate(cardsFromStrings("Ac", "Ad", "Kh", "Qs", "Jc"))
	if !lowTwoPair.Beats(highPair) {
		t.Error("the lowest two pair must beat the highest one pair")
	}
}

func TestEvaluatePicksBestFive(t *testing.T) {
	// the five hearts must be chosen over any offsuit kicker combination
	result := Evaluate(cardsFromStrings("Ah", "Kh", "7h", "4h", "2h", "Qc", "Jd"))
	if result.Category != Flush {
		t.Fatalf("expected Flush, got %s", result)
	}
	expectedFive := cardsFromStrings("Ah", "Kh", "7h", "4h", "2h")
	if diff := cmp.Diff(expectedFive, result.BestFive); diff != "" {
		t.Errorf("best five mismatch (-want +got):\n%s", diff)
	}
}
