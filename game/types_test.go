package game

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCloneIsDeep(t *testing.T) {
	table := newTestTable(t, 1000, 1000, 1000)
	table = mustStartHand(t, table)

	clone := table.Clone()
	if diff := cmp.Diff(table, clone); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	clone.Players[0].Chips = 1
	clone.Players[0].Cards[0] = clone.Players[0].Cards[1]
	clone.Pot = 999
	clone.Deck[0] = clone.Deck[1]
	clone.Log[0] = "tampered"

	if table.Players[0].Chips == 1 {
		t.Error("player mutation leaked into the original")
	}
	if table.Players[0].Cards[0] == table.Players[0].Cards[1] {
		t.Error("card mutation leaked into the original")
	}
	if table.Pot == 999 {
		t.Error("pot mutation leaked into the original")
	}
	if table.Deck[0] == table.Deck[1] {
		t.Error("deck mutation leaked into the original")
	}
	if table.Log[0] == "tampered" {
		t.Error("log mutation leaked into the original")
	}
}

func TestAddPlayerRules(t *testing.T) {
	table := NewTable(1, "abcdef", 10, 20)
	if err := table.AddPlayer("p1", "alice", 1000); err != nil {
		t.Fatalf("AddPlayer returned error [%s]", err)
	}
	if err := table.AddPlayer("p1", "alice again", 500); err == nil {
		t.Error("a taken seat must be refused")
	} else if _, ok := err.(SeatTakenError); !ok {
		t.Errorf("expected SeatTakenError, got %T", err)
	}

	if err := table.AddPlayer("p2", "bob", 1000); err != nil {
		t.Fatalf("AddPlayer returned error [%s]", err)
	}
	started := mustStartHand(t, table)
	if err := started.AddPlayer("p3", "carol", 1000); err == nil {
		t.Error("joining a live hand must be refused")
	} else if _, ok := err.(TableBusyError); !ok {
		t.Errorf("expected TableBusyError, got %T", err)
	}
}

func TestRemovePlayerRules(t *testing.T) {
	table := NewTable(1, "abcdef", 10, 20)
	if err := table.RemovePlayer("ghost"); err == nil {
		t.Error("removing an unknown player must fail")
	} else if _, ok := err.(PlayerNotFoundError); !ok {
		t.Errorf("expected PlayerNotFoundError, got %T", err)
	}

	_ = table.AddPlayer("p1", "alice", 1000)
	_ = table.AddPlayer("p2", "bob", 1000)
	started := mustStartHand(t, table)
	if err := started.RemovePlayer("p1"); err == nil {
		t.Error("leaving a live hand must be refused")
	}

	if err := table.RemovePlayer("p1"); err != nil {
		t.Fatalf("RemovePlayer returned error [%s]", err)
	}
	if table.Player("p1") != nil {
		t.Error("p1 still seated after removal")
	}
}
