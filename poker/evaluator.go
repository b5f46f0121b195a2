package poker

import (
	"sort"
)

// Hand categories, highest wins. A royal flush is a straight flush with an
// ace-high run; it gets its own value so the label survives the showdown log.
const (
	NoHandCategory int32 = -1
	HighCard       int32 = 0
	Pair           int32 = 1
	TwoPair        int32 = 2
	ThreeOfAKind   int32 = 3
	Straight       int32 = 4
	Flush          int32 = 5
	FullHouse      int32 = 6
	FourOfAKind    int32 = 7
	StraightFlush  int32 = 8
	RoyalFlush     int32 = 9
)

var categoryToString = map[int32]string{
	RoyalFlush:    "Royal Flush",
	StraightFlush: "Straight Flush",
	FourOfAKind:   "Four of a Kind",
	FullHouse:     "Full House",
	Flush:         "Flush",
	Straight:      "Straight",
	ThreeOfAKind:  "Three of a Kind",
	TwoPair:       "Two Pair",
	Pair:          "Pair",
	HighCard:      "High Card",
}

// HandResult is the outcome of evaluating 5 to 7 cards.
type HandResult struct {
	Category int32  `json:"category"`
	Tiebreak int32  `json:"tiebreak"`
	BestFive []Card `json:"bestFive"`
}

// NoHand is returned when fewer than five cards are supplied.
var NoHand = HandResult{Category: NoHandCategory}

func RankString(category int32) string {
	if s, ok := categoryToString[category]; ok {
		return s
	}
	return "No Hand"
}

// Beats reports whether r outranks o by (category, tiebreak).
func (r HandResult) Beats(o HandResult) bool {
	if r.Category != o.Category {
		return r.Category > o.Category
	}
	return r.Tiebreak > o.Tiebreak
}

func (r HandResult) String() string {
	return RankString(r.Category)
}

// Evaluate finds the best five-card hand among every 5-card subset of the
// input (C(7,5) = 21 subsets in the worst case).
func Evaluate(cards []Card) HandResult {
	if len(cards) < 5 {
		return NoHand
	}

	best := NoHand
	for _, five := range combinations(cards, 5) {
		result := scoreFive(five)
		if best.Category == NoHandCategory || result.Beats(best) {
			best = result
		}
	}
	return best
}

func scoreFive(cards []Card) HandResult {
	sorted := make([]Card, 5)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].RankValue() > sorted[j].RankValue()
	})

	isFlush := true
	for _, c := range sorted[1:] {
		if c.Suit() != sorted[0].Suit() {
			isFlush = false
			break
		}
	}

	isStraight := true
	for i := 1; i < 5; i++ {
		if sorted[i].RankValue() != sorted[i-1].RankValue()-1 {
			isStraight = false
			break
		}
	}
	// the wheel: ace plays low in A-2-3-4-5 only
	isWheel := !isStraight && isWheelRanks(sorted)
	isStraight = isStraight || isWheel
	if isWheel {
		// move the ace to the back so the tiebreak ranks the wheel
		// below every other straight
		sorted = append(sorted[1:], sorted[0])
	}

	counts := rankCounts(sorted)

	tiebreak := int32(0)
	for _, c := range sorted {
		tiebreak = tiebreak*15 + c.RankValue()
	}

	category := HighCard
	switch {
	case isStraight && isFlush:
		if sorted[0].RankValue() == 14 && !isWheel {
			category = RoyalFlush
		} else {
			category = StraightFlush
		}
	case counts[0] == 4:
		category = FourOfAKind
	case counts[0] == 3 && counts[1] == 2:
		category = FullHouse
	case isFlush:
		category = Flush
	case isStraight:
		category = Straight
	case counts[0] == 3:
		category = ThreeOfAKind
	case counts[0] == 2 && counts[1] == 2:
		category = TwoPair
	case counts[0] == 2:
		category = Pair
	}

	return HandResult{
		Category: category,
		Tiebreak: tiebreak,
		BestFive: sorted,
	}
}

func isWheelRanks(sorted []Card) bool {
	wheel := []int32{14, 5, 4, 3, 2}
	for i, c := range sorted {
		if c.RankValue() != wheel[i] {
			return false
		}
	}
	return true
}

// rankCounts returns the rank multiplicities sorted descending,
// e.g. [3 2] for a full house, [2 2 1] for two pair.
func rankCounts(cards []Card) []int {
	byRank := make(map[int32]int)
	for _, c := range cards {
		byRank[c.RankValue()]++
	}
	counts := make([]int, 0, len(byRank))
	for _, n := range byRank {
		counts = append(counts, n)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(counts)))
	return counts
}

func combinations(cards []Card, k int) [][]Card {
	var result [][]Card
	combo := make([]Card, k)
	var recurse func(start, depth int)
	recurse = func(start, depth int) {
		if depth == k {
			subset := make([]Card, k)
			copy(subset, combo)
			result = append(result, subset)
			return
		}
		for i := start; i <= len(cards)-(k-depth); i++ {
			combo[depth] = cards[i]
			recurse(i+1, depth+1)
		}
	}
	recurse(0, 0)
	return result
}
