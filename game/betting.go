package game

import (
	"github.com/rs/zerolog/log"

	"cardroom.io/holdem/poker"
)

var bettingLogger = log.With().Str("logger_name", "game::betting").Logger()

// ApplyAction applies one declared action from the given player and returns
// the next table snapshot. Actions that violate the preconditions (wrong
// table status, not the player's turn, player folded or out of chips,
// illegal check/raise) are dropped: the input snapshot is returned as-is.
func ApplyAction(t *Table, playerID string, action Action) *Table {
	if t.Status != TableStatusPlaying {
		return dropAction(t, playerID, action, "table is not playing")
	}
	if playerID != t.CurrentPlayerID {
		return dropAction(t, playerID, action, "not the player's turn")
	}
	actor := t.Player(playerID)
	if actor == nil || actor.Folded || actor.Chips <= 0 {
		return dropAction(t, playerID, action, "player cannot act")
	}

	next := t.Clone()
	p := next.Player(playerID)
	p.Pending = nil

	switch action.Kind {
	case ActionFold:
		p.Folded = true
		p.LastAction = "Fold"
		next.appendLog("%s folds", p.Name)

	case ActionCheck:
		if p.Bet != next.CurrentBet {
			return dropAction(t, playerID, action, "check with an outstanding bet")
		}
		p.LastAction = "Check"
		next.appendLog("%s checks", p.Name)

	case ActionCall:
		owed := next.CurrentBet - p.Bet
		pay := owed
		if pay > p.Chips {
			pay = p.Chips
		}
		p.Chips -= pay
		p.Bet += pay
		next.Pot += pay
		if p.Chips == 0 {
			p.LastAction = "All-In"
			next.appendLog("%s calls %d and is all-in", p.Name, pay)
		} else {
			p.LastAction = "Call"
			next.appendLog("%s calls %d", p.Name, pay)
		}

	case ActionBet:
		amount := action.Amount
		if amount <= next.CurrentBet {
			return dropAction(t, playerID, action, "bet does not exceed the current bet")
		}
		delta := amount - p.Bet
		allIn := delta >= p.Chips
		if allIn {
			delta = p.Chips
			amount = p.Bet + delta
			if amount <= next.CurrentBet {
				return dropAction(t, playerID, action, "all-in below the current bet; call instead")
			}
		}
		// Raises below the minimum are rejected unless they put the
		// raiser all-in (a short all-in raise is allowed).
		if !allIn && amount < next.CurrentBet+next.MinRaise {
			return dropAction(t, playerID, action, "raise below the minimum")
		}
		p.Chips -= delta
		p.Bet = amount
		next.Pot += delta
		next.MinRaise = amount - next.CurrentBet
		next.CurrentBet = amount
		next.LastRaiserID = p.ID
		next.raiseReopensAction(p.ID)
		if allIn {
			p.LastAction = "All-In"
			next.appendLog("%s raises to %d and is all-in", p.Name, amount)
		} else {
			p.LastAction = "Bet"
			next.appendLog("%s bets %d", p.Name, amount)
		}

	default:
		return dropAction(t, playerID, action, "unknown action kind")
	}

	p.HasActed = true
	next.resolveAfterAction(playerID)
	return next
}

// ApplyPending consumes the current player's queued intent, if any.
func ApplyPending(t *Table) *Table {
	p := t.Player(t.CurrentPlayerID)
	if p == nil || p.Pending == nil {
		return t
	}
	return ApplyAction(t, p.ID, p.Pending.Action)
}

func dropAction(t *Table, playerID string, action Action, reason string) *Table {
	bettingLogger.Debug().
		Str("tableCode", t.Code).
		Str("playerID", playerID).
		Str("action", action.String()).
		Msgf("Action dropped: %s", reason)
	return t
}

// raiseReopensAction resets HasActed for everyone else still able to act,
// so the betting loop runs back around to the raiser.
func (t *Table) raiseReopensAction(raiserID string) {
	for _, p := range t.Players {
		if p.ID == raiserID || !p.canAct() {
			continue
		}
		p.HasActed = false
	}
}

// resolveAfterAction decides what follows an applied action: award the pot
// to a lone survivor, pass the turn, advance the street, or show down.
func (t *Table) resolveAfterAction(actorID string) {
	survivors := t.playersInHand()
	if len(survivors) == 1 {
		t.awardPot(survivors[0], "")
		return
	}

	if !t.roundOver() {
		t.CurrentPlayerID = t.nextEligibleAfter(actorID)
		if t.CurrentPlayerID != "" {
			return
		}
		// nobody left who can act; fall through and run the board out
	}

	if t.Stage == StageRiver {
		t.showdown()
		return
	}
	t.advanceStreet()
	t.runStreetsOut()
}

// roundOver reports whether the betting round is closed: every player who
// can still act has acted and matches the current bet.
func (t *Table) roundOver() bool {
	for _, p := range t.Players {
		if !p.canAct() {
			continue
		}
		if !p.HasActed || p.Bet != t.CurrentBet {
			return false
		}
	}
	return true
}

// runStreetsOut keeps advancing streets while no more betting is possible
// (zero or one player with chips behind), ending with the showdown.
func (t *Table) runStreetsOut() {
	for t.Status == TableStatusPlaying && t.CurrentPlayerID == "" {
		if t.Stage == StageRiver {
			t.showdown()
			return
		}
		t.advanceStreet()
	}
}

var streetDeals = map[Stage]int{
	StageFlop:  3,
	StageTurn:  1,
	StageRiver: 1,
}

func (t *Table) advanceStreet() {
	for _, p := range t.Players {
		p.Bet = 0
		p.HasActed = false
	}
	t.CurrentBet = 0
	t.MinRaise = t.BigBlind
	t.LastRaiserID = ""
	t.Stage++

	deal := streetDeals[t.Stage]
	t.Community = append(t.Community, t.Deck[:deal]...)
	t.Deck = t.Deck[deal:]
	t.appendLog("%s: %s", t.Stage, poker.CardsToString(t.Community))

	t.CurrentPlayerID = t.nextEligibleAfter(t.DealerID)
	eligible := Eligible(t.Players, SeatingOrder(t.Players, t.DealerID))
	if len(eligible) < 2 {
		// no betting possible on this street
		t.CurrentPlayerID = ""
	}
}

// showdown evaluates every hand still in play and awards the whole pot to
// the single best hand; on exact ties the earliest seat in the sorted
// seating order wins.
func (t *Table) showdown() {
	order := SeatingOrder(t.Players, t.DealerID)

	var winner *Player
	var winning poker.HandResult
	for _, id := range order {
		p := t.Player(id)
		if p == nil || !p.inHand() {
			continue
		}
		cards := make([]poker.Card, 0, 7)
		cards = append(cards, p.Cards...)
		cards = append(cards, t.Community...)
		result := poker.Evaluate(cards)
		t.appendLog("%s shows %s: %s", p.Name, poker.CardsToString(p.Cards), result)
		if winner == nil || result.Beats(winning) {
			winner = p
			winning = result
		}
	}

	t.awardPot(winner, poker.RankString(winning.Category))
}

func (t *Table) awardPot(winner *Player, rankStr string) {
	pot := t.Pot
	winner.Chips += pot
	if rankStr != "" {
		t.appendLog("%s wins %d with %s", winner.Name, pot, rankStr)
	} else {
		t.appendLog("%s wins %d", winner.Name, pot)
	}
	t.endHand()
}
