package game

// Hand scripts drive a table through fully scripted hands: seeded cards,
// an action list per street, and verification blocks. They are used by the
// script tests and by the -script-tests mode of the server binary.
/*
	table:
	  sb: 10
	  bb: 20

	players:
	  - name: alice
	    buy-in: 1000
	  - name: bob
	    buy-in: 1000

	hands:
	  - num: 1
	    setup:
	      seat-cards:
	        - seat: 1
	          cards: ["Kh", "Qd"]
	      flop: ["Ac", "Ad", "2c"]
	      turn: Td
	      river: 3s
	      verify:
	        dealer: 1
	        sb: 2
	        bb: 3
	        next-action: 1
	        state: PREFLOP
	    preflop-action:
	      actions:
	        - seat: 1
	          action: CALL
	      verify:
	        state: FLOP
	        pot: 60
	    result:
	      winner: 2
	      rank: Two Pair
	      stacks:
	        - seat: 1
	          stack: 980
*/

type TableConfig struct {
	SmallBlind int64 `yaml:"sb"`
	BigBlind   int64 `yaml:"bb"`
}

type ScriptPlayer struct {
	Name  string `yaml:"name"`
	BuyIn int64  `yaml:"buy-in"`
}

type SeatCards struct {
	Seat  int      `yaml:"seat"`
	Cards []string `yaml:"cards"`
}

type HandSetupVerification struct {
	Dealer     int    `yaml:"dealer"`
	SB         int    `yaml:"sb"`
	BB         int    `yaml:"bb"`
	NextAction int    `yaml:"next-action"`
	State      string `yaml:"state"`
}

type HandSetup struct {
	SeatCards []SeatCards           `yaml:"seat-cards"`
	Flop      []string              `yaml:"flop"`
	Turn      string                `yaml:"turn"`
	River     string                `yaml:"river"`
	Verify    HandSetupVerification `yaml:"verify"`
}

type ScriptAction struct {
	Seat   int    `yaml:"seat"`
	Action string `yaml:"action"`
	Amount int64  `yaml:"amount"`
}

type RoundVerification struct {
	State string   `yaml:"state"`
	Pot   int64    `yaml:"pot"`
	Board []string `yaml:"board"`
}

type ScriptBettingRound struct {
	Actions []ScriptAction    `yaml:"actions"`
	Verify  RoundVerification `yaml:"verify"`
}

type SeatStack struct {
	Seat  int   `yaml:"seat"`
	Stack int64 `yaml:"stack"`
}

type HandResultVerification struct {
	Winner int         `yaml:"winner"`
	Rank   string      `yaml:"rank"`
	Stacks []SeatStack `yaml:"stacks"`
}

type ScriptHand struct {
	Num           uint32                 `yaml:"num"`
	Setup         HandSetup              `yaml:"setup"`
	PreflopAction ScriptBettingRound     `yaml:"preflop-action"`
	FlopAction    ScriptBettingRound     `yaml:"flop-action"`
	TurnAction    ScriptBettingRound     `yaml:"turn-action"`
	RiverAction   ScriptBettingRound     `yaml:"river-action"`
	Result        HandResultVerification `yaml:"result"`
}

type Script struct {
	Disabled bool           `yaml:"disabled"`
	Table    TableConfig    `yaml:"table"`
	Players  []ScriptPlayer `yaml:"players"`
	Hands    []ScriptHand   `yaml:"hands"`
}
