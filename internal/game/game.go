// Package game implements the heads-up fixed-limit hold'em betting engine: a
// per-hand state machine that owns the deck, stacks and pot, validates and
// applies actions, and resolves showdowns with the poker evaluator.
package game

import (
	rand "math/rand/v2"

	"github.com/lox/limit-holdem/poker"
)

// Outcome describes how a completed hand was decided
type Outcome struct {
	Winner   Seat // meaningful only when Split is false
	Split    bool
	ByFold   bool
	Category poker.HandCategory // winning hand category, showdowns only
}

// Game is the per-match engine. It owns all per-hand mutable state
// exclusively; external callers interact through StartHand, LegalActions,
// Apply and Snapshot. Nothing here blocks: the engine simply waits for the
// next Apply call.
type Game struct {
	rules Rules
	rng   *rand.Rand
	deck  *poker.Deck

	state   State
	street  Street
	stacks  [2]int
	pot     int
	holes   [2][]poker.Card
	board   []poker.Card
	betting *BettingRound
	records []ActionRecord
	outcome *Outcome

	smallBlindSeat Seat
	handNum        int
	handStart      [2]int // stacks at hand start, for reward computation
}

// NewGame creates a match with both stacks at the configured starting size.
// The small blind starts on the bot seat and alternates every hand.
func NewGame(rules Rules, rng *rand.Rand) *Game {
	g := &Game{
		rules:          rules,
		rng:            rng,
		state:          AwaitingStart,
		smallBlindSeat: SeatBot, // flipped by StartHand: the player posts first
	}
	g.stacks[SeatPlayer] = rules.StartingStack
	g.stacks[SeatBot] = rules.StartingStack
	g.deck = poker.NewDeck(rng)
	return g
}

// MatchOver reports whether a seat has run out of chips
func (g *Game) MatchOver() bool {
	return g.stacks[SeatPlayer] == 0 || g.stacks[SeatBot] == 0
}

// HandNum returns the number of hands started so far
func (g *Game) HandNum() int {
	return g.handNum
}

// SmallBlindSeat returns the seat posting the small blind this hand
func (g *Game) SmallBlindSeat() Seat {
	return g.smallBlindSeat
}

// StartHand resets per-hand state, posts the blinds and deals hole cards,
// leaving the game in preflop betting with the small blind to act. The blind
// seat alternates every hand.
func (g *Game) StartHand() error {
	if g.state != AwaitingStart && g.state != HandComplete {
		return &IllegalActionError{Reason: "hand already in progress"}
	}
	if g.MatchOver() {
		return &IllegalActionError{Reason: "match is over, a stack is empty"}
	}

	g.handNum++
	g.smallBlindSeat = g.smallBlindSeat.Other()
	g.pot = 0
	g.board = nil
	g.records = nil
	g.outcome = nil
	g.street = Preflop
	g.handStart = g.stacks

	g.state = PostingBlinds
	sb, bb := g.smallBlindSeat, g.smallBlindSeat.Other()
	g.betting = newBettingRound(sb)
	g.postBlind(sb, g.rules.SmallBlind)
	g.postBlind(bb, g.rules.BigBlind)

	g.deck.Shuffle()
	g.holes[SeatPlayer] = g.deck.Deal(2)
	g.holes[SeatBot] = g.deck.Deal(2)

	g.state = PreflopBetting

	// A blind can itself put a seat all-in. When the shorter bet belongs to
	// an all-in seat the excess is uncalled, so refund it; if that levels the
	// bets the hand runs straight out with no betting round.
	low, high := sb, bb
	if g.betting.Bets[low] > g.betting.Bets[high] {
		low, high = high, low
	}
	if g.stacks[low] == 0 {
		g.refundUncalled(high, g.betting.Bets[high]-g.betting.Bets[low])
	}
	if g.roundOver() {
		g.endStreet()
	}
	return nil
}

// postBlind commits a forced bet, capped at the seat's stack
func (g *Game) postBlind(seat Seat, amount int) {
	if amount > g.stacks[seat] {
		amount = g.stacks[seat]
	}
	g.stacks[seat] -= amount
	g.pot += amount
	g.betting.Bets[seat] += amount
}

// LegalActions returns the actions the given seat may take right now. Empty
// unless the hand is in a betting state and it is the seat's turn.
func (g *Game) LegalActions(seat Seat) []Action {
	if !g.state.BettingState() || seat != g.betting.ToAct || g.stacks[seat] == 0 {
		return nil
	}

	var actions []Action
	out := g.betting.Outstanding(seat)
	if out > 0 {
		actions = append(actions, Fold, Call)
	} else {
		actions = append(actions, Check)
	}
	// A raise must be fully funded and callable: no raising an all-in seat.
	if g.betting.Raises < g.rules.MaxRaises &&
		g.stacks[seat] >= out+g.rules.BetSize(g.street) &&
		g.stacks[seat.Other()] > 0 {
		actions = append(actions, Raise)
	}
	return actions
}

// Apply validates and applies one action for a seat, returning the seat's
// fresh snapshot. Errors leave the game unmodified.
//
// Amount is advisory: zero means "the engine computes it". In fixed limit a
// raise size is dictated by the street, so a non-zero amount that disagrees
// with the fixed increment is rejected rather than silently corrected.
//
// Short-stack policy: a call larger than the caller's stack is applied as an
// all-in and the opponent's uncalled excess is refunded immediately; a raise
// the actor cannot fully fund fails with InsufficientStackError.
func (g *Game) Apply(seat Seat, action Action, amount int) (Snapshot, error) {
	if !g.state.BettingState() {
		return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "no betting round in progress"}
	}
	if seat != g.betting.ToAct {
		return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "not this seat's turn"}
	}
	if g.stacks[seat] == 0 {
		return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "seat is all-in"}
	}

	out := g.betting.Outstanding(seat)

	// Validate fully before mutating anything: an illegal action must leave
	// the hand bit-for-bit unchanged.
	switch action {
	case Fold:
		if out == 0 {
			return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "nothing to fold to, check instead"}
		}
	case Check:
		if out != 0 {
			return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "bet outstanding, call or fold"}
		}
	case Call:
		if out == 0 {
			return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "no bet to call, check instead"}
		}
	case Raise:
		if g.betting.Raises >= g.rules.MaxRaises {
			return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "raise cap reached"}
		}
		if g.stacks[seat.Other()] == 0 {
			return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "opponent is all-in, call or fold"}
		}
		increment := g.rules.BetSize(g.street)
		if amount != 0 && amount != increment {
			return Snapshot{}, &IllegalActionError{Seat: seat, Action: action, Reason: "raise size is fixed for this street"}
		}
		if need := out + increment; need > g.stacks[seat] {
			return Snapshot{}, &InsufficientStackError{Seat: seat, Action: action, Need: need, Have: g.stacks[seat]}
		}
	}

	switch action {
	case Fold:
		g.records = append(g.records, ActionRecord{Seat: seat, Street: g.street, Action: Fold})
		g.finishByFold(seat.Other())
		return g.Snapshot(seat), nil

	case Check:
		g.betting.Acted[seat] = true
		g.records = append(g.records, ActionRecord{Seat: seat, Street: g.street, Action: Check})

	case Call:
		cost := out
		if cost >= g.stacks[seat] {
			cost = g.stacks[seat]
			g.refundUncalled(seat.Other(), out-cost)
		}
		g.commit(seat, cost)
		g.betting.Acted[seat] = true
		g.records = append(g.records, ActionRecord{Seat: seat, Street: g.street, Action: Call, Amount: cost})

	case Raise:
		cost := out + g.rules.BetSize(g.street)
		g.commit(seat, cost)
		g.betting.Raises++
		g.betting.Acted[seat] = true
		g.betting.Acted[seat.Other()] = false
		g.records = append(g.records, ActionRecord{Seat: seat, Street: g.street, Action: Raise, Amount: cost})
	}

	if g.roundOver() {
		g.endStreet()
	} else {
		g.betting.ToAct = seat.Other()
	}

	return g.Snapshot(seat), nil
}

// commit moves chips from a seat's stack into the pot
func (g *Game) commit(seat Seat, amount int) {
	g.stacks[seat] -= amount
	g.pot += amount
	g.betting.Bets[seat] += amount
}

// roundOver reports whether the street's betting is finished. Bets must be
// level; once a seat is all-in no further betting is possible heads up, so a
// level round with an empty stack is over no matter who has acted. Covers
// both the normal close and blind all-ins.
func (g *Game) roundOver() bool {
	if g.betting.Bets[0] != g.betting.Bets[1] {
		return false
	}
	if g.stacks[0] == 0 || g.stacks[1] == 0 {
		return true
	}
	return g.betting.Acted[0] && g.betting.Acted[1]
}

// refundUncalled returns the unmatched part of a bet to its owner
func (g *Game) refundUncalled(seat Seat, amount int) {
	if amount <= 0 {
		return
	}
	g.stacks[seat] += amount
	g.pot -= amount
	g.betting.Bets[seat] -= amount
}

// endStreet advances the hand past a finished betting round: deal the next
// community cards and open a new round, or run out the board when a seat is
// all-in, or go to showdown after the river.
func (g *Game) endStreet() {
	if g.street == River {
		g.settleShowdown()
		return
	}

	g.dealNextStreet()

	if g.stacks[0] == 0 || g.stacks[1] == 0 {
		// No further betting possible; keep dealing to the river.
		for g.street != River {
			g.dealNextStreet()
		}
		g.settleShowdown()
		return
	}

	// Heads-up seating rule: the small blind acts first preflop, the big
	// blind acts first on every later street.
	g.betting = newBettingRound(g.smallBlindSeat.Other())
	switch g.street {
	case Flop:
		g.state = FlopBetting
	case Turn:
		g.state = TurnBetting
	case River:
		g.state = RiverBetting
	}
}

// dealNextStreet advances the street marker and reveals community cards
func (g *Game) dealNextStreet() {
	switch g.street {
	case Preflop:
		g.street = Flop
		g.board = append(g.board, g.deck.Deal(3)...)
	case Flop:
		g.street = Turn
		g.board = append(g.board, g.deck.DealOne())
	case Turn:
		g.street = River
		g.board = append(g.board, g.deck.DealOne())
	}
}

// finishByFold awards the pot to the surviving seat
func (g *Game) finishByFold(winner Seat) {
	g.stacks[winner] += g.pot
	g.pot = 0
	g.outcome = &Outcome{Winner: winner, ByFold: true}
	g.state = HandComplete
}

// settleShowdown ranks both seven-card hands and pays out the pot. On an
// exact tie the pot splits evenly; the odd chip, if any, goes to the
// big-blind seat. That asymmetry is fixed and deliberate: the big blind paid
// more to see the hand.
func (g *Game) settleShowdown() {
	g.street = Showdown
	g.state = ShowdownState

	playerRank, _ := poker.Evaluate(append(append([]poker.Card{}, g.holes[SeatPlayer]...), g.board...))
	botRank, _ := poker.Evaluate(append(append([]poker.Card{}, g.holes[SeatBot]...), g.board...))

	switch playerRank.Compare(botRank) {
	case 1:
		g.stacks[SeatPlayer] += g.pot
		g.outcome = &Outcome{Winner: SeatPlayer, Category: playerRank.Category}
	case -1:
		g.stacks[SeatBot] += g.pot
		g.outcome = &Outcome{Winner: SeatBot, Category: botRank.Category}
	default:
		half := g.pot / 2
		odd := g.pot - 2*half
		bigBlind := g.smallBlindSeat.Other()
		g.stacks[bigBlind] += half + odd
		g.stacks[bigBlind.Other()] += half
		g.outcome = &Outcome{Split: true, Category: playerRank.Category}
	}
	g.pot = 0
	g.state = HandComplete
}

// Reward returns the seat's net chip change for the completed hand. This is
// the terminal reward fed to the learning agent; zero until HandComplete.
func (g *Game) Reward(seat Seat) int {
	if g.state != HandComplete {
		return 0
	}
	return g.stacks[seat] - g.handStart[seat]
}

// Records returns the hand's action log
func (g *Game) Records() []ActionRecord {
	out := make([]ActionRecord, len(g.records))
	copy(out, g.records)
	return out
}
