package poker

import (
	"math/rand"

	"cardroom.io/holdem/util/random"
)

var fullDeck *Deck

func init() {
	fullDeck = &Deck{cards: initializeFullCards()}
}

type Deck struct {
	cards []Card
}

// NewDeck returns a freshly shuffled 52-card deck. A nil source
// uses a cryptographically seeded generator.
func NewDeck(source rand.Source) *Deck {
	if source == nil {
		source = rand.NewSource(random.NewSeed())
	}
	deck := &Deck{}
	deck.shuffle(rand.New(source))
	return deck
}

func NewDeckNoShuffle() *Deck {
	deck := &Deck{}
	deck.cards = make([]Card, len(fullDeck.cards))
	copy(deck.cards, fullDeck.cards)
	return deck
}

func (deck *Deck) shuffle(randGen *rand.Rand) *Deck {
	deck.cards = make([]Card, len(fullDeck.cards))
	copy(deck.cards, fullDeck.cards)

	for i := range deck.cards {
		loc := randGen.Intn(len(deck.cards))
		deck.cards[i], deck.cards[loc] = deck.cards[loc], deck.cards[i]
	}

	return deck
}

// Draw removes and returns the top n cards.
func (deck *Deck) Draw(n int) []Card {
	cards := make([]Card, n)
	copy(cards, deck.cards[:n])
	deck.cards = deck.cards[n:]
	return cards
}

func (deck *Deck) Size() int {
	return len(deck.cards)
}

func (deck *Deck) Empty() bool {
	return len(deck.cards) == 0
}

// Remaining returns a copy of the undealt cards in order.
func (deck *Deck) Remaining() []Card {
	cards := make([]Card, len(deck.cards))
	copy(cards, deck.cards)
	return cards
}

func (deck *Deck) GetBytes() []uint8 {
	return CardsToByteCards(deck.cards)
}

func DeckFromBytes(cardsInByte []byte) *Deck {
	return &Deck{cards: FromByteCards(cardsInByte)}
}

func (deck *Deck) PrettyPrint() string {
	return CardsToString(deck.cards)
}

func initializeFullCards() []Card {
	var cards []Card

	for _, rank := range strRanks {
		for suit := range charSuitToIntSuit {
			cards = append(cards, NewCard(string(rank)+string(suit)))
		}
	}

	return cards
}

type CardsInAscii []string

// DeckFromScript arranges a shuffled deck so that the hole cards and the
// board come off the top in dealing order: one card per player per round,
// then flop, turn and river. Used by the script-driven tests.
func DeckFromScript(playerCards []CardsInAscii, flop CardsInAscii, turn string, river string) *Deck {
	deck := NewDeck(nil)
	noOfPlayers := len(playerCards)
	for i, hole := range playerCards {
		for j, cardStr := range hole {
			deck.placeCard(NewCard(cardStr), i+j*noOfPlayers)
		}
	}

	deckIndex := noOfPlayers * len(playerCards[0])
	for _, cardStr := range flop {
		deck.placeCard(NewCard(cardStr), deckIndex)
		deckIndex++
	}

	deck.placeCard(NewCard(turn), deckIndex)
	deckIndex++
	deck.placeCard(NewCard(river), deckIndex)

	return deck
}

func (deck *Deck) placeCard(card Card, deckIndex int) {
	cardLoc := deck.getCardLoc(card)
	deck.cards[cardLoc] = deck.cards[deckIndex]
	deck.cards[deckIndex] = card
}

func (deck *Deck) getCardLoc(cardToLocate Card) int {
	for i, card := range deck.cards {
		if card == cardToLocate {
			return i
		}
	}
	return -1
}
