package game

import (
	"github.com/rs/zerolog/log"

	"cardroom.io/holdem/poker"
)

var handLogger = log.With().Str("logger_name", "game::hand").Logger()

const holeCardCount = 2

// StartHand deals a new hand: fresh shuffled deck, dealer rotation, hole
// cards, blinds. It requires at least two players with chips; otherwise the
// table is returned unchanged with an InsufficientPlayersError.
func StartHand(t *Table) (*Table, error) {
	return StartHandWithDeck(t, poker.NewDeck(nil))
}

// StartHandWithDeck is StartHand with a caller-supplied deck. The script
// driver uses it to deal predetermined cards.
func StartHandWithDeck(t *Table, deck *poker.Deck) (*Table, error) {
	withChips := 0
	for _, p := range t.Players {
		if p.Chips > 0 {
			withChips++
		}
	}
	if withChips < 2 {
		err := InsufficientPlayersError{Need: 2, Have: withChips}
		handLogger.Info().Str("tableCode", t.Code).Msg(err.Error())
		return t, err
	}

	next := t.Clone()
	next.HandNum++
	next.Status = TableStatusPlaying
	next.Stage = StagePreflop
	next.Pot = 0
	next.Community = nil
	next.CurrentBet = 0
	next.MinRaise = 0
	next.LastRaiserID = ""

	for _, p := range next.Players {
		p.Cards = nil
		p.Bet = 0
		p.Folded = false
		p.HasActed = false
		p.LastAction = ""
		p.Pending = nil
	}

	next.moveDealer()
	dealer := next.Player(next.DealerID)
	next.appendLog("Hand #%d started, dealer is %s", next.HandNum, dealer.Name)

	// cards have not been dealt yet, so hand participation is decided by
	// chips alone, not by canAct
	var dealTo []string
	for _, id := range SeatingOrder(next.Players, next.DealerID) {
		if next.Player(id).Chips > 0 {
			dealTo = append(dealTo, id)
		}
	}

	// one card per player per round, starting after the dealer
	for round := 0; round < holeCardCount; round++ {
		for _, id := range dealTo {
			p := next.Player(id)
			p.Cards = append(p.Cards, deck.Draw(1)...)
		}
	}
	next.Deck = deck.Remaining()

	smallBlind := next.Player(dealTo[0])
	bigBlind := next.Player(dealTo[1])
	next.postBlind(smallBlind, next.SmallBlind, "small blind")
	smallBlind.LastAction = "SB"
	next.postBlind(bigBlind, next.BigBlind, "big blind")
	bigBlind.LastAction = "BB"

	next.CurrentBet = next.BigBlind
	next.MinRaise = next.BigBlind
	next.LastRaiserID = bigBlind.ID

	// first to act is the third eligible seat after the dealer
	next.CurrentPlayerID = next.nextEligibleAfter(bigBlind.ID)
	if next.CurrentPlayerID == "" {
		// the blinds put everyone all-in; run the board out
		next.runStreetsOut()
	}

	return next, nil
}

// moveDealer advances the dealer round-robin among seats with chips.
func (t *Table) moveDealer() {
	n := len(t.Players)
	for i := 1; i <= n; i++ {
		idx := (t.LastDealerIndex + i) % n
		if t.Players[idx].Chips > 0 {
			t.LastDealerIndex = idx
			t.DealerID = t.Players[idx].ID
			return
		}
	}
}

func (t *Table) postBlind(p *Player, amount int64, label string) {
	if amount > p.Chips {
		amount = p.Chips
	}
	p.Chips -= amount
	p.Bet += amount
	t.Pot += amount
	if p.Chips == 0 {
		t.appendLog("%s posts %s %d and is all-in", p.Name, label, amount)
		return
	}
	t.appendLog("%s posts %s %d", p.Name, label, amount)
}

// endHand returns the table to the waiting state after a pot award.
func (t *Table) endHand() {
	t.Pot = 0
	t.Community = nil
	t.Deck = nil
	t.CurrentPlayerID = ""
	t.CurrentBet = 0
	t.MinRaise = 0
	t.LastRaiserID = ""
	t.Stage = StageWaiting
	t.Status = TableStatusWaiting
	for _, p := range t.Players {
		p.Cards = nil
		p.Bet = 0
		p.Folded = false
		p.HasActed = false
		p.Pending = nil
	}

	withChips := 0
	for _, p := range t.Players {
		if p.Chips > 0 {
			withChips++
		}
	}
	if withChips < 2 {
		t.appendLog("Game over: not enough players with chips")
	}
}
