package game

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	yaml "gopkg.in/yaml.v2"

	"cardroom.io/holdem/poker"
)

var scriptLogger = log.With().Str("logger_name", "game::scriptdriver").Logger()

// ReadScript loads a hand script from a YAML file.
func ReadScript(path string) (*Script, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading script file %s", path)
	}
	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, errors.Wrapf(err, "parsing script file %s", path)
	}
	return &script, nil
}

// RunScripts runs the script at fileOrDir, or every .yaml script under it
// when it is a directory. It returns the first failure encountered.
func RunScripts(fileOrDir string) error {
	info, err := os.Stat(fileOrDir)
	if err != nil {
		return errors.Wrapf(err, "cannot stat %s", fileOrDir)
	}

	files := []string{fileOrDir}
	if info.IsDir() {
		files = files[:0]
		err = filepath.Walk(fileOrDir, func(path string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() && (strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return errors.Wrapf(err, "walking script dir %s", fileOrDir)
		}
	}

	for _, f := range files {
		script, err := ReadScript(f)
		if err != nil {
			return err
		}
		if script.Disabled {
			scriptLogger.Info().Msgf("Skipping disabled script %s", f)
			continue
		}
		scriptLogger.Info().Msgf("Running script %s", f)
		driver := NewScriptDriver(script)
		if err := driver.Run(); err != nil {
			return errors.Wrapf(err, "script %s failed", f)
		}
		scriptLogger.Info().Msgf("Script %s passed", f)
	}
	return nil
}

// ScriptDriver plays the hands of a script against a table and verifies
// the resulting state after each street and at the end of each hand.
type ScriptDriver struct {
	script *Script
	table  *Table

	// index into the table log where the current hand began, so that
	// verification only looks at this hand's entries
	logStart int
}

func NewScriptDriver(script *Script) *ScriptDriver {
	return &ScriptDriver{script: script}
}

func (d *ScriptDriver) Run() error {
	table := NewTable(1, "script", d.script.Table.SmallBlind, d.script.Table.BigBlind)
	for i, sp := range d.script.Players {
		if err := table.AddPlayer(seatID(i+1), sp.Name, sp.BuyIn); err != nil {
			return errors.Wrapf(err, "seating player %s", sp.Name)
		}
	}
	d.table = table

	for _, hand := range d.script.Hands {
		if err := d.runHand(&hand); err != nil {
			return errors.Wrapf(err, "hand %d", hand.Num)
		}
	}
	return nil
}

// seatID is the player id used for the 1-based seat no. Seats map to the
// players list in order.
func seatID(seat int) string {
	return fmt.Sprintf("seat-%d", seat)
}

func (d *ScriptDriver) runHand(hand *ScriptHand) error {
	deck, err := d.buildDeck(&hand.Setup)
	if err != nil {
		return err
	}

	d.logStart = len(d.table.Log)
	next, err := StartHandWithDeck(d.table, deck)
	if err != nil {
		return errors.Wrap(err, "starting hand")
	}
	d.table = next

	if err := d.verifySetup(&hand.Setup.Verify); err != nil {
		return err
	}

	rounds := []struct {
		name  string
		round *ScriptBettingRound
	}{
		{"preflop", &hand.PreflopAction},
		{"flop", &hand.FlopAction},
		{"turn", &hand.TurnAction},
		{"river", &hand.RiverAction},
	}
	for _, r := range rounds {
		if err := d.runBettingRound(r.name, r.round); err != nil {
			return err
		}
	}

	return d.verifyResult(&hand.Result)
}

// buildDeck arranges a deck so the engine deals the scripted hole cards and
// board. It predicts the upcoming dealer the same way the engine rotates the
// button and lays hole cards out in dealing order, one card per player per
// round, starting left of the dealer.
func (d *ScriptDriver) buildDeck(setup *HandSetup) (*poker.Deck, error) {
	t := d.table
	n := len(t.Players)
	dealerIdx := -1
	for i := 1; i <= n; i++ {
		idx := (t.LastDealerIndex + i) % n
		if t.Players[idx].Chips > 0 {
			dealerIdx = idx
			break
		}
	}
	if dealerIdx == -1 {
		return nil, errors.New("no player with chips to take the button")
	}

	var dealOrder []int
	for i := 1; i <= n; i++ {
		idx := (dealerIdx + i) % n
		if t.Players[idx].Chips > 0 {
			dealOrder = append(dealOrder, idx)
		}
	}

	bySeat := make(map[int][]string)
	for _, sc := range setup.SeatCards {
		bySeat[sc.Seat] = sc.Cards
	}

	playerCards := make([]poker.CardsInAscii, 0, len(dealOrder))
	for _, idx := range dealOrder {
		seat := idx + 1
		cards, ok := bySeat[seat]
		if !ok {
			return nil, errors.Errorf("setup has no cards for seat %d", seat)
		}
		if len(cards) != 2 {
			return nil, errors.Errorf("seat %d must have exactly 2 cards", seat)
		}
		playerCards = append(playerCards, poker.CardsInAscii(cards))
	}

	flop := poker.CardsInAscii(setup.Flop)
	return poker.DeckFromScript(playerCards, flop, setup.Turn, setup.River), nil
}

func (d *ScriptDriver) verifySetup(v *HandSetupVerification) error {
	t := d.table
	if v.Dealer != 0 && t.DealerID != seatID(v.Dealer) {
		return errors.Errorf("expected dealer seat %d, got %s", v.Dealer, t.DealerID)
	}
	if v.NextAction != 0 && t.CurrentPlayerID != seatID(v.NextAction) {
		return errors.Errorf("expected next action at seat %d, got %s", v.NextAction, t.CurrentPlayerID)
	}
	if v.SB != 0 {
		if err := d.verifyBlindLog(v.SB, "small blind"); err != nil {
			return err
		}
	}
	if v.BB != 0 {
		if err := d.verifyBlindLog(v.BB, "big blind"); err != nil {
			return err
		}
	}
	return d.verifyState("setup", v.State)
}

func (d *ScriptDriver) verifyBlindLog(seat int, blind string) error {
	p := d.table.Player(seatID(seat))
	if p == nil {
		return errors.Errorf("no player at seat %d", seat)
	}
	want := fmt.Sprintf("%s posts %s", p.Name, blind)
	for _, entry := range d.table.Log[d.logStart:] {
		if strings.Contains(entry, want) {
			return nil
		}
	}
	return errors.Errorf("expected seat %d (%s) to post the %s", seat, p.Name, blind)
}

func (d *ScriptDriver) runBettingRound(name string, round *ScriptBettingRound) error {
	for _, a := range round.Actions {
		kind, err := ParseActionKind(a.Action)
		if err != nil {
			return errors.Wrapf(err, "%s action at seat %d", name, a.Seat)
		}
		before := d.table
		d.table = ApplyAction(before, seatID(a.Seat), Action{Kind: kind, Amount: a.Amount})
		if d.table == before {
			return errors.Errorf("%s: seat %d %s %d was not applied", name, a.Seat, a.Action, a.Amount)
		}
	}

	v := &round.Verify
	if v.Pot != 0 && d.table.Pot != v.Pot {
		return errors.Errorf("%s: expected pot %d, got %d", name, v.Pot, d.table.Pot)
	}
	if len(v.Board) > 0 {
		var got []string
		for _, c := range d.table.Community {
			got = append(got, c.String())
		}
		if strings.Join(got, " ") != strings.Join(v.Board, " ") {
			return errors.Errorf("%s: expected board %v, got %v", name, v.Board, got)
		}
	}
	return d.verifyState(name, v.State)
}

func (d *ScriptDriver) verifyState(where, state string) error {
	if state == "" {
		return nil
	}
	want, ok := ParseStage(state)
	if !ok {
		return errors.Errorf("%s: unknown state %q in script", where, state)
	}
	if d.table.Stage != want {
		return errors.Errorf("%s: expected state %s, got %s", where, want, d.table.Stage)
	}
	return nil
}

func (d *ScriptDriver) verifyResult(v *HandResultVerification) error {
	t := d.table
	if v.Winner != 0 {
		p := t.Player(seatID(v.Winner))
		if p == nil {
			return errors.Errorf("no player at seat %d", v.Winner)
		}
		want := fmt.Sprintf("%s wins", p.Name)
		found := ""
		for _, entry := range t.Log[d.logStart:] {
			if strings.Contains(entry, want) {
				found = entry
			}
		}
		if found == "" {
			return errors.Errorf("expected seat %d (%s) to win the pot", v.Winner, p.Name)
		}
		if v.Rank != "" && !strings.Contains(found, v.Rank) {
			return errors.Errorf("expected winning rank %q in %q", v.Rank, found)
		}
	}
	for _, ss := range v.Stacks {
		p := t.Player(seatID(ss.Seat))
		if p == nil {
			return errors.Errorf("no player at seat %d", ss.Seat)
		}
		if p.Chips != ss.Stack {
			return errors.Errorf("seat %d (%s): expected stack %d, got %d", ss.Seat, p.Name, ss.Stack, p.Chips)
		}
	}
	return nil
}
