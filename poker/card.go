package poker

import (
	"fmt"
	"strings"
)

// Card packs a rank and a suit into a single byte.
// High 4 bits: rank index (0 = deuce .. 12 = ace).
// Low 4 bits: suit bit (1 = spade, 2 = heart, 4 = diamond, 8 = club).
type Card uint8

var (
	strRanks = "23456789TJQKA"

	charRankToIntRank = map[uint8]uint8{}
	charSuitToIntSuit = map[uint8]uint8{
		's': 1, // spades
		'h': 2, // hearts
		'd': 4, // diamonds
		'c': 8, // clubs
	}
	intSuitToCharSuit = "xshxdxxxc"

	prettySuits = map[int]string{
		1: "♠", // spades
		2: "❤", // hearts
		4: "♦", // diamonds
		8: "♣", // clubs
	}
)

func init() {
	for i := range strRanks {
		charRankToIntRank[strRanks[i]] = uint8(i)
	}
}

// NewCard parses a two-character card string, e.g. "As" or "Td".
func NewCard(s string) Card {
	rankInt := charRankToIntRank[s[0]]
	suitInt := charSuitToIntSuit[s[1]]
	return Card(rankInt<<4 | suitInt)
}

func NewCardFromByte(cardByte uint8) Card {
	return Card(cardByte)
}

// Rank returns the rank index 0..12.
func (c Card) Rank() int32 {
	return int32(c>>4) & 0xF
}

// RankValue returns the poker rank value 2..14, Ace high.
func (c Card) RankValue() int32 {
	return c.Rank() + 2
}

func (c Card) Suit() int32 {
	return int32(c) & 0xF
}

func (c Card) GetByte() uint8 {
	return uint8(c)
}

func (c Card) String() string {
	return string(strRanks[c.Rank()]) + string(intSuitToCharSuit[c.Suit()])
}

func (c Card) MarshalJSON() ([]byte, error) {
	return []byte("\"" + c.String() + "\""), nil
}

func (c *Card) UnmarshalJSON(b []byte) error {
	*c = NewCard(string(b[1:3]))
	return nil
}

func CardToString(card Card) string {
	return fmt.Sprintf("%s%s", string(strRanks[card.Rank()]), prettySuits[int(card.Suit())])
}

func CardsToString(cards []Card) string {
	var b strings.Builder
	b.Grow(32)
	fmt.Fprintf(&b, "[")
	for _, c := range cards {
		fmt.Fprintf(&b, " %s ", CardToString(c))
	}
	fmt.Fprintf(&b, "]")
	return b.String()
}

func FromByteCards(cardBytes []byte) []Card {
	cards := make([]Card, len(cardBytes))
	for i, b := range cardBytes {
		cards[i] = NewCardFromByte(b)
	}
	return cards
}

func CardsToByteCards(cards []Card) []byte {
	cardBytes := make([]byte, len(cards))
	for i, c := range cards {
		cardBytes[i] = c.GetByte()
	}
	return cardBytes
}
