package game

import (
	"fmt"
	"time"

	"cardroom.io/holdem/poker"
)

// Stage is the betting street the table is on.
type Stage int32

const (
	StageWaiting Stage = iota
	StagePreflop
	StageFlop
	StageTurn
	StageRiver
)

var stageNames = map[Stage]string{
	StageWaiting: "WAITING",
	StagePreflop: "PREFLOP",
	StageFlop:    "FLOP",
	StageTurn:    "TURN",
	StageRiver:   "RIVER",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("STAGE(%d)", int32(s))
}

// ParseStage maps a stage name used by the hand scripts back to a Stage.
func ParseStage(name string) (Stage, bool) {
	for stage, stageName := range stageNames {
		if stageName == name {
			return stage, true
		}
	}
	return StageWaiting, false
}

type TableStatus int32

const (
	TableStatusWaiting TableStatus = iota
	TableStatusPlaying
)

func (s TableStatus) String() string {
	if s == TableStatusPlaying {
		return "PLAYING"
	}
	return "WAITING"
}

// PendingAction is a queued player intent waiting to be consumed by the
// betting machine.
type PendingAction struct {
	Action      Action    `json:"action"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Player is one seat at the table. Bet tracks the chips the player has put
// in on the current street; those chips are already counted in Table.Pot.
type Player struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Chips      int64          `json:"chips"`
	Cards      []poker.Card   `json:"cards,omitempty"`
	Bet        int64          `json:"bet"`
	Folded     bool           `json:"folded"`
	HasActed   bool           `json:"hasActed"`
	LastAction string         `json:"lastAction,omitempty"`
	Pending    *PendingAction `json:"pendingAction,omitempty"`
}

// inHand reports whether the player was dealt into the current hand and has
// not folded. All-in players stay in hand with zero chips.
func (p *Player) inHand() bool {
	return !p.Folded && len(p.Cards) == 2
}

// canAct reports whether the player can still take betting actions.
func (p *Player) canAct() bool {
	return p.inHand() && p.Chips > 0
}

func (p *Player) clone() *Player {
	c := *p
	if p.Cards != nil {
		c.Cards = make([]poker.Card, len(p.Cards))
		copy(c.Cards, p.Cards)
	}
	if p.Pending != nil {
		pending := *p.Pending
		c.Pending = &pending
	}
	return &c
}

// Table is the authoritative snapshot of one hold'em table. The engine
// never mutates a Table in place; every transition clones it first.
type Table struct {
	ID              uint64       `json:"id"`
	Code            string       `json:"code"`
	SmallBlind      int64        `json:"smallBlind"`
	BigBlind        int64        `json:"bigBlind"`
	Players         []*Player    `json:"players"`
	Deck            []poker.Card `json:"deck,omitempty"`
	Community       []poker.Card `json:"community,omitempty"`
	Pot             int64        `json:"pot"`
	DealerID        string       `json:"dealerId,omitempty"`
	CurrentPlayerID string       `json:"currentPlayerId,omitempty"`
	CurrentBet      int64        `json:"currentBet"`
	MinRaise        int64        `json:"minRaise"`
	Stage           Stage        `json:"stage"`
	LastRaiserID    string       `json:"lastRaiserId,omitempty"`
	LastDealerIndex int          `json:"lastDealerIndex"`
	Status          TableStatus  `json:"status"`
	HandNum         uint32       `json:"handNum"`
	Log             []string     `json:"log,omitempty"`
}

func NewTable(id uint64, code string, smallBlind int64, bigBlind int64) *Table {
	return &Table{
		ID:              id,
		Code:            code,
		SmallBlind:      smallBlind,
		BigBlind:        bigBlind,
		Players:         make([]*Player, 0),
		LastDealerIndex: -1,
	}
}

func (t *Table) Clone() *Table {
	c := *t
	c.Players = make([]*Player, len(t.Players))
	for i, p := range t.Players {
		c.Players[i] = p.clone()
	}
	if t.Deck != nil {
		c.Deck = make([]poker.Card, len(t.Deck))
		copy(c.Deck, t.Deck)
	}
	if t.Community != nil {
		c.Community = make([]poker.Card, len(t.Community))
		copy(c.Community, t.Community)
	}
	if t.Log != nil {
		c.Log = make([]string, len(t.Log))
		copy(c.Log, t.Log)
	}
	return &c
}

// Player returns the seat with the given id, or nil.
func (t *Table) Player(id string) *Player {
	for _, p := range t.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (t *Table) seatIndex(id string) int {
	for i, p := range t.Players {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// AddPlayer seats a new player. Seating order is join order. Joining is
// only allowed between hands.
func (t *Table) AddPlayer(id string, name string, buyIn int64) error {
	if t.Status == TableStatusPlaying {
		return TableBusyError{Code: t.Code}
	}
	if t.Player(id) != nil {
		return SeatTakenError{PlayerID: id}
	}
	t.Players = append(t.Players, &Player{ID: id, Name: name, Chips: buyIn})
	t.appendLog("%s joined with %d chips", name, buyIn)
	return nil
}

// RemovePlayer vacates a seat between hands.
func (t *Table) RemovePlayer(id string) error {
	if t.Status == TableStatusPlaying {
		return TableBusyError{Code: t.Code}
	}
	idx := t.seatIndex(id)
	if idx == -1 {
		return PlayerNotFoundError{PlayerID: id}
	}
	t.appendLog("%s left the table", t.Players[idx].Name)
	t.Players = append(t.Players[:idx], t.Players[idx+1:]...)
	return nil
}

// ChipsInPlay is the conserved quantity: the pot plus every stack. Street
// bets are already inside the pot, so they are not added again.
func (t *Table) ChipsInPlay() int64 {
	total := t.Pot
	for _, p := range t.Players {
		total += p.Chips
	}
	return total
}

func (t *Table) appendLog(format string, args ...interface{}) {
	t.Log = append(t.Log, fmt.Sprintf(format, args...))
}

// LastLogEntry returns the most recent narrative line, shown by clients as
// a transient banner.
func (t *Table) LastLogEntry() string {
	if len(t.Log) == 0 {
		return ""
	}
	return t.Log[len(t.Log)-1]
}
