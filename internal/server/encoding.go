package server

import (
	"github.com/lox/limit-holdem/internal/game"
	"github.com/lox/limit-holdem/poker"
)

// snapshotJSON is the wire form of a snapshot. Cards render as strings
// ("A♠") and enums as their names so the view needs no engine types.
type snapshotJSON struct {
	HandNum        int      `json:"hand_num"`
	State          string   `json:"state"`
	Street         string   `json:"street"`
	Pot            int      `json:"pot"`
	PlayerStack    int      `json:"player_stack"`
	BotStack       int      `json:"bot_stack"`
	SmallBlindSeat string   `json:"small_blind_seat"`
	Hole           []string `json:"hole"`
	OpponentHole   []string `json:"opponent_hole,omitempty"`
	Board          []string `json:"board"`
	ToAct          string   `json:"to_act,omitempty"`
	LegalActions   []string `json:"legal_actions,omitempty"`
	CallCost       int      `json:"call_cost"`
	RaiseCost      int      `json:"raise_cost"`
	Raises         int      `json:"raises"`
	Outcome        *outcomeJSON `json:"outcome,omitempty"`
	Records        []recordJSON `json:"records,omitempty"`
}

type outcomeJSON struct {
	Winner   string `json:"winner,omitempty"`
	Split    bool   `json:"split,omitempty"`
	ByFold   bool   `json:"by_fold,omitempty"`
	Category string `json:"category,omitempty"`
}

type recordJSON struct {
	Seat   string `json:"seat"`
	Street string `json:"street"`
	Action string `json:"action"`
	Amount int    `json:"amount,omitempty"`
}

func encodeSnapshot(snap game.Snapshot) *snapshotJSON {
	js := &snapshotJSON{
		HandNum:        snap.HandNum,
		State:          snap.State.String(),
		Street:         snap.Street.String(),
		Pot:            snap.Pot,
		PlayerStack:    snap.Stacks[game.SeatPlayer],
		BotStack:       snap.Stacks[game.SeatBot],
		SmallBlindSeat: snap.SmallBlindSeat.String(),
		Hole:           cardStrings(snap.Hole),
		OpponentHole:   cardStrings(snap.OpponentHole),
		Board:          cardStrings(snap.Board),
		CallCost:       snap.CallCost,
		RaiseCost:      snap.RaiseCost,
		Raises:         snap.Raises,
	}
	if snap.State.BettingState() {
		js.ToAct = snap.ToAct.String()
		for _, a := range snap.LegalActions {
			js.LegalActions = append(js.LegalActions, a.String())
		}
	}
	if snap.Outcome != nil {
		o := &outcomeJSON{Split: snap.Outcome.Split, ByFold: snap.Outcome.ByFold}
		if !snap.Outcome.Split {
			o.Winner = snap.Outcome.Winner.String()
		}
		if !snap.Outcome.ByFold {
			o.Category = snap.Outcome.Category.String()
		}
		js.Outcome = o
	}
	for _, r := range snap.Records {
		js.Records = append(js.Records, recordJSON{
			Seat:   r.Seat.String(),
			Street: r.Street.String(),
			Action: r.Action.String(),
			Amount: r.Amount,
		})
	}
	return js
}

func cardStrings(cards []poker.Card) []string {
	if cards == nil {
		return nil
	}
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
