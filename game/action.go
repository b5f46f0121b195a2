package game

import (
	"fmt"
	"strings"
)

// ActionKind is the closed set of player intents. Unknown kinds are dropped
// by the betting machine, never applied.
type ActionKind int32

const (
	ActionFold ActionKind = iota
	ActionCheck
	ActionCall
	ActionBet
)

var actionNames = map[ActionKind]string{
	ActionFold:  "FOLD",
	ActionCheck: "CHECK",
	ActionCall:  "CALL",
	ActionBet:   "BET",
}

func (k ActionKind) String() string {
	if name, ok := actionNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ACTION(%d)", int32(k))
}

func (k ActionKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *ActionKind) UnmarshalJSON(b []byte) error {
	kind, err := ParseActionKind(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func ParseActionKind(s string) (ActionKind, error) {
	switch strings.ToUpper(s) {
	case "FOLD":
		return ActionFold, nil
	case "CHECK":
		return ActionCheck, nil
	case "CALL":
		return ActionCall, nil
	case "BET", "RAISE":
		return ActionBet, nil
	default:
		return ActionFold, InvalidActionError{Action: s}
	}
}

// Action is one declared player intent. Amount is the absolute street bet
// the player is raising to; it is meaningful for ActionBet only.
type Action struct {
	Kind   ActionKind `json:"kind"`
	Amount int64      `json:"amount,omitempty"`
}

func (a Action) String() string {
	if a.Kind == ActionBet {
		return fmt.Sprintf("%s %d", a.Kind, a.Amount)
	}
	return a.Kind.String()
}
