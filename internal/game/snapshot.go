package game

import "github.com/lox/limit-holdem/poker"

// Snapshot is a read-only view of the hand from one seat's perspective. It is
// the only structure the engine hands to external callers: the console UI,
// the websocket gateway and the bot all consume snapshots and never touch
// the Game directly. Opponent hole cards are included only once the hand has
// reached showdown.
type Snapshot struct {
	HandNum        int
	State          State
	Street         Street
	Pot            int
	Stacks         [2]int
	SmallBlindSeat Seat

	Viewer       Seat
	Hole         []poker.Card
	OpponentHole []poker.Card // nil until showdown
	Board        []poker.Card

	ToAct        Seat
	LegalActions []Action
	CallCost     int // chips to match the current bet, 0 when none
	RaiseCost    int // chips a raise would commit right now
	Raises       int // raises so far this street

	Outcome *Outcome // nil until the hand completes
	Records []ActionRecord
}

// Snapshot builds the viewer's current view of the hand. All slices are
// defensive copies; mutating a snapshot never touches the engine.
func (g *Game) Snapshot(viewer Seat) Snapshot {
	s := Snapshot{
		HandNum:        g.handNum,
		State:          g.state,
		Street:         g.street,
		Pot:            g.pot,
		Stacks:         g.stacks,
		SmallBlindSeat: g.smallBlindSeat,
		Viewer:         viewer,
		Hole:           append([]poker.Card(nil), g.holes[viewer]...),
		Board:          append([]poker.Card(nil), g.board...),
		Records:        g.Records(),
	}

	if g.state == ShowdownState || (g.state == HandComplete && g.outcome != nil && !g.outcome.ByFold) {
		s.OpponentHole = append([]poker.Card(nil), g.holes[viewer.Other()]...)
	}

	if g.state.BettingState() {
		s.ToAct = g.betting.ToAct
		s.LegalActions = g.LegalActions(g.betting.ToAct)
		s.CallCost = g.betting.Outstanding(viewer)
		s.RaiseCost = s.CallCost + g.rules.BetSize(g.street)
		s.Raises = g.betting.Raises
	}

	if g.outcome != nil {
		o := *g.outcome
		s.Outcome = &o
	}

	return s
}
