package game

import (
	"strings"
	"testing"

	"cardroom.io/holdem/poker"
)

// startScripted deals a hand with known cards so showdown outcomes are
// deterministic. Cards are listed in dealing order (first seat after the
// dealer first).
func startScripted(t *testing.T, table *Table, holeCards []poker.CardsInAscii, flop poker.CardsInAscii, turn, river string) *Table {
	t.Helper()
	deck := poker.DeckFromScript(holeCards, flop, turn, river)
	next, err := StartHandWithDeck(table, deck)
	if err != nil {
		t.Fatalf("StartHandWithDeck returned error [%s]", err)
	}
	return next
}

func TestApplyActionDropsOutOfTurn(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	// action is on alice; bob may not act
	next := ApplyAction(table, "bob", Action{Kind: ActionFold})
	if next != table {
		t.Error("an out-of-turn action must be dropped")
	}

	next = ApplyAction(table, "nobody", Action{Kind: ActionFold})
	if next != table {
		t.Error("an unknown player must be dropped")
	}
}

func TestApplyActionDropsIllegalCheck(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	// alice owes 20 and cannot check
	next := ApplyAction(table, "alice", Action{Kind: ActionCheck})
	if next != table {
		t.Error("a check facing a bet must be dropped")
	}
}

func TestApplyActionDropsUnderRaise(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	// current bet 20, min raise 20: raising to 30 is short
	next := ApplyAction(table, "alice", Action{Kind: ActionBet, Amount: 30})
	if next != table {
		t.Error("a raise below the minimum must be dropped")
	}

	next = ApplyAction(table, "alice", Action{Kind: ActionBet, Amount: 40})
	if next == table {
		t.Fatal("a minimum raise must be applied")
	}
	if next.CurrentBet != 40 || next.MinRaise != 20 {
		t.Errorf("expected current bet 40 min raise 20, got %d/%d", next.CurrentBet, next.MinRaise)
	}
}

func TestShortAllInRaiseIsAllowed(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 55)
	table = mustStartHand(t, table)

	// alice raises so carol faces a bet she cannot min-raise over
	table = ApplyAction(table, "alice", Action{Kind: ActionBet, Amount: 40})
	table = ApplyAction(table, "bob", Action{Kind: ActionCall})

	// carol shoves 55 total: above the current bet 40 but short of the
	// minimum raise to 60
	next := ApplyAction(table, "carol", Action{Kind: ActionBet, Amount: 100})
	if next == table {
		t.Fatal("carol's all-in must be applied even though it is short")
	}
	carol := next.Player("carol")
	if carol.Chips != 0 || carol.Bet != 55 {
		t.Errorf("expected carol all-in for 55, got chips %d bet %d", carol.Chips, carol.Bet)
	}
	if carol.LastAction != "All-In" {
		t.Errorf("expected All-In, got %s", carol.LastAction)
	}
}

func TestAllInBelowCurrentBetMustCall(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 50)
	table = mustStartHand(t, table)

	table = ApplyAction(table, "alice", Action{Kind: ActionBet, Amount: 60})
	table = ApplyAction(table, "bob", Action{Kind: ActionCall})

	// carol can put in 50 total against a bet of 60; a raise cannot stand
	next := ApplyAction(table, "carol", Action{Kind: ActionBet, Amount: 100})
	if next != table {
		t.Fatal("an all-in below the current bet is not a raise")
	}

	next = ApplyAction(table, "carol", Action{Kind: ActionCall})
	if next == table {
		t.Fatal("the short call must be applied")
	}
	carol := next.Player("carol")
	if carol.Chips != 0 {
		t.Errorf("expected carol all-in, got chips %d", carol.Chips)
	}
}

func TestRaiseReopensAction(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	table = ApplyAction(table, "alice", Action{Kind: ActionCall})
	table = ApplyAction(table, "bob", Action{Kind: ActionCall})
	// carol raises from the big blind; alice and bob must get the action back
	table = ApplyAction(table, "carol", Action{Kind: ActionBet, Amount: 60})
	if table.Stage != StagePreflop {
		t.Fatalf("the raise must keep the street open, got %s", table.Stage)
	}
	if table.CurrentPlayerID != "alice" {
		t.Fatalf("expected action back on alice, got %s", table.CurrentPlayerID)
	}

	table = ApplyAction(table, "alice", Action{Kind: ActionCall})
	table = ApplyAction(table, "bob", Action{Kind: ActionCall})
	if table.Stage != StageFlop {
		t.Errorf("expected the flop after the calls, got %s", table.Stage)
	}
	if table.Pot != 180 {
		t.Errorf("expected pot 180, got %d", table.Pot)
	}
}

func TestFoldToSingleSurvivorAwardsPot(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	table = ApplyAction(table, "alice", Action{Kind: ActionFold})
	table = ApplyAction(table, "bob", Action{Kind: ActionFold})

	if table.Status != TableStatusWaiting || table.Stage != StageWaiting {
		t.Fatalf("expected the hand to end, got %s/%s", table.Status, table.Stage)
	}
	if table.Pot != 0 {
		t.Errorf("expected the pot cleared, got %d", table.Pot)
	}
	carol := table.Player("carol")
	if carol.Chips != 1010 {
		t.Errorf("expected carol at 1010, got %d", carol.Chips)
	}
	if !strings.Contains(table.LastLogEntry(), "carol wins 30") {
		t.Errorf("unexpected log entry %q", table.LastLogEntry())
	}
}

func TestStreetProgressionAndFirstActor(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	table = ApplyAction(table, "alice", Action{Kind: ActionCall})
	table = ApplyAction(table, "bob", Action{Kind: ActionCall})
	table = ApplyAction(table, "carol", Action{Kind: ActionCheck})

	if table.Stage != StageFlop {
		t.Fatalf("expected the flop, got %s", table.Stage)
	}
	if len(table.Community) != 3 {
		t.Fatalf("expected 3 community cards, got %d", len(table.Community))
	}
	// postflop the first eligible seat after the button opens
	if table.CurrentPlayerID != "bob" {
		t.Fatalf("expected bob to open the flop, got %s", table.CurrentPlayerID)
	}
	for _, p := range table.Players {
		if p.Bet != 0 || p.HasActed {
			t.Errorf("%s carried street state across the flop", p.Name)
		}
	}
	if table.CurrentBet != 0 || table.MinRaise != 20 {
		t.Errorf("expected bet 0 min raise 20, got %d/%d", table.CurrentBet, table.MinRaise)
	}

	table = ApplyAction(table, "bob", Action{Kind: ActionCheck})
	table = ApplyAction(table, "carol", Action{Kind: ActionCheck})
	table = ApplyAction(table, "alice", Action{Kind: ActionCheck})
	if table.Stage != StageTurn || len(table.Community) != 4 {
		t.Errorf("expected the turn with 4 cards, got %s/%d", table.Stage, len(table.Community))
	}
}

func TestHeadsUpHand(t *testing.T) {
	table := newTestTable(t, 1000, 1000)
	// dealing order is bob (small blind) then alice (big blind)
	table = startScripted(t, table,
		[]poker.CardsInAscii{{"Ah", "Kh"}, {"Qd", "Qc"}},
		poker.CardsInAscii{"Kd", "7s", "2h"}, "3c", "9d")

	if table.DealerID != "alice" || table.CurrentPlayerID != "bob" {
		t.Fatalf("heads up: dealer %s, action %s", table.DealerID, table.CurrentPlayerID)
	}

	table = ApplyAction(table, "bob", Action{Kind: ActionCall})
	table = ApplyAction(table, "alice", Action{Kind: ActionCheck})
	if table.Stage != StageFlop || table.Pot != 40 {
		t.Fatalf("expected flop with pot 40, got %s/%d", table.Stage, table.Pot)
	}

	for _, street := range []Stage{StageTurn, StageRiver, StageWaiting} {
		table = ApplyAction(table, "bob", Action{Kind: ActionCheck})
		table = ApplyAction(table, "alice", Action{Kind: ActionCheck})
		if table.Stage != street {
			t.Fatalf("expected %s, got %s", street, table.Stage)
		}
	}

	// bob paired his king at the showdown
	if got := table.Player("bob").Chips; got != 1020 {
		t.Errorf("expected bob at 1020, got %d", got)
	}
	if got := table.Player("alice").Chips; got != 980 {
		t.Errorf("expected alice at 980, got %d", got)
	}
}

func TestAllInRunsBoardOut(t *testing.T) {
	table := newTestTable(t, 1000, 100)
	// bob is the short stack in the small blind
	table = startScripted(t, table,
		[]poker.CardsInAscii{{"Ks", "Kd"}, {"As", "Ad"}},
		poker.CardsInAscii{"2h", "7c", "9s"}, "Jd", "3c")

	table = ApplyAction(table, "bob", Action{Kind: ActionBet, Amount: 100})
	table = ApplyAction(table, "alice", Action{Kind: ActionCall})

	if table.Status != TableStatusWaiting {
		t.Fatalf("expected the board to run out, got %s", table.Status)
	}
	if got := table.Player("alice").Chips; got != 1100 {
		t.Errorf("expected alice at 1100, got %d", got)
	}
	if got := table.Player("bob").Chips; got != 0 {
		t.Errorf("expected bob busted, got %d", got)
	}
	found := false
	for _, entry := range table.Log {
		if strings.Contains(entry, "Game over") {
			found = true
		}
	}
	if !found {
		t.Error("expected a game-over entry once only one stack remains")
	}
}

func TestShowdownTieGoesToEarliestSeatAfterDealer(t *testing.T) {
	table := newTestTable(t, 1000, 1000)
	// both seats play the board; bob sits first after the dealer
	table = startScripted(t, table,
		[]poker.CardsInAscii{{"2c", "3d"}, {"2d", "3h"}},
		poker.CardsInAscii{"Ah", "Kh", "Qh"}, "Jh", "Th")

	table = ApplyAction(table, "bob", Action{Kind: ActionCall})
	table = ApplyAction(table, "alice", Action{Kind: ActionCheck})
	for i := 0; i < 3; i++ {
		table = ApplyAction(table, "bob", Action{Kind: ActionCheck})
		table = ApplyAction(table, "alice", Action{Kind: ActionCheck})
	}

	if got := table.Player("bob").Chips; got != 1020 {
		t.Errorf("expected the tie to go to bob, got %d", got)
	}
	if !strings.Contains(strings.Join(table.Log, "\n"), "Royal Flush") {
		t.Error("expected a royal flush in the showdown log")
	}
}

func TestPendingActionConsumed(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	// nothing queued: ApplyPending is a no-op returning the same snapshot
	if next := ApplyPending(table); next != table {
		t.Fatal("ApplyPending without an intent must be a no-op")
	}

	table.Player("alice").Pending = &PendingAction{Action: Action{Kind: ActionCall}}
	next := ApplyPending(table)
	if next == table {
		t.Fatal("the queued call must be applied")
	}
	alice := next.Player("alice")
	if alice.Bet != 20 || alice.Pending != nil {
		t.Errorf("expected the intent consumed with bet 20, got bet %d pending %v", alice.Bet, alice.Pending)
	}
}
