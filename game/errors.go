package game

import "fmt"

type InsufficientPlayersError struct {
	Need int
	Have int
}

func (e InsufficientPlayersError) Error() string {
	return fmt.Sprintf("Not enough players with chips to start a hand: need %d, have %d", e.Need, e.Have)
}

type TableBusyError struct {
	Code string
}

func (e TableBusyError) Error() string {
	return fmt.Sprintf("Table %s is in the middle of a hand", e.Code)
}

type SeatTakenError struct {
	PlayerID string
}

func (e SeatTakenError) Error() string {
	return fmt.Sprintf("Player %s already has a seat at the table", e.PlayerID)
}

type PlayerNotFoundError struct {
	PlayerID string
}

func (e PlayerNotFoundError) Error() string {
	return fmt.Sprintf("Player %s is not seated at the table", e.PlayerID)
}

type InvalidActionError struct {
	Action string
}

func (e InvalidActionError) Error() string {
	return fmt.Sprintf("Unknown action %q", e.Action)
}
