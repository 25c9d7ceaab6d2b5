package game

import "fmt"

// Seat identifies one of the two positions at the table
type Seat int

const (
	SeatPlayer Seat = iota
	SeatBot
)

// Other returns the opposing seat
func (s Seat) Other() Seat {
	return 1 - s
}

func (s Seat) String() string {
	switch s {
	case SeatPlayer:
		return "player"
	case SeatBot:
		return "bot"
	default:
		return "?"
	}
}

// Street represents the betting round
type Street int

const (
	Preflop Street = iota
	Flop
	Turn
	River
	Showdown
)

func (s Street) String() string {
	return [...]string{"preflop", "flop", "turn", "river", "showdown"}[s]
}

// State tracks where the hand state machine currently is. Streets only ever
// advance within a hand; a fold jumps straight to HandComplete.
type State int

const (
	AwaitingStart State = iota
	PostingBlinds
	PreflopBetting
	FlopBetting
	TurnBetting
	RiverBetting
	ShowdownState
	HandComplete
)

func (s State) String() string {
	return [...]string{
		"awaiting_start", "posting_blinds", "preflop_betting", "flop_betting",
		"turn_betting", "river_betting", "showdown", "hand_complete",
	}[s]
}

// BettingState reports whether actions are accepted in this state
func (s State) BettingState() bool {
	return s >= PreflopBetting && s <= RiverBetting
}

// Action represents a player action. The set is closed: every switch over an
// Action in this package handles all four values.
type Action int

const (
	Fold Action = iota
	Check
	Call
	Raise
)

func (a Action) String() string {
	return [...]string{"fold", "check", "call", "raise"}[a]
}

// ParseAction converts an action name back to an Action
func ParseAction(s string) (Action, error) {
	switch s {
	case "fold":
		return Fold, nil
	case "check":
		return Check, nil
	case "call":
		return Call, nil
	case "raise":
		return Raise, nil
	default:
		return 0, fmt.Errorf("unknown action %q", s)
	}
}

// ActionRecord is an immutable log entry for one applied action. The log
// lives for the duration of a hand; the bot's feature extractor and the
// reward bookkeeping read it, and it is cleared when the next hand starts.
type ActionRecord struct {
	Seat   Seat
	Street Street
	Action Action
	Amount int // chips moved into the pot by this action
}
