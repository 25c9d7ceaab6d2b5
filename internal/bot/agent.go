package bot

import (
	rand "math/rand/v2"

	"github.com/lox/limit-holdem/internal/game"
	"github.com/lox/limit-holdem/internal/preflop"
)

// Default hyperparameters
const (
	DefaultAlpha   = 0.1
	DefaultGamma   = 0.9
	DefaultEpsilon = 0.1

	minEpsilon   = 0.01
	decayHorizon = 1000
)

// exploitOrder breaks value ties during exploitation. The order is fixed so
// an untrained agent plays passively rather than folding everything.
var exploitOrder = []game.Action{game.Check, game.Call, game.Raise, game.Fold}

// step is one (state, action) pair on the current hand's trajectory
type step struct {
	state  string
	action string
}

// Agent is an epsilon-greedy Q-learning player. It chooses actions from
// snapshots, remembers the hand's trajectory, and learns from the terminal
// reward when Finish is called. One Agent serves one seat at a time; the
// QTable behind it may be shared across agents.
type Agent struct {
	table   *QTable
	preflop *preflop.Table

	alpha   float64
	gamma   float64
	epsilon float64

	rng        *rand.Rand
	trajectory []step

	// hand-constant feature, set on the first decision of each hand
	strengthBucket int
}

// NewAgent creates an agent with the default hyperparameters
func NewAgent(table *QTable, strength *preflop.Table, rng *rand.Rand) *Agent {
	return &Agent{
		table:   table,
		preflop: strength,
		alpha:   DefaultAlpha,
		gamma:   DefaultGamma,
		epsilon: DefaultEpsilon,
		rng:     rng,
	}
}

// SetHyperparameters overrides alpha, gamma and epsilon
func (a *Agent) SetHyperparameters(alpha, gamma, epsilon float64) {
	a.alpha, a.gamma, a.epsilon = alpha, gamma, epsilon
}

// Act picks an action for the snapshot's legal set and records the decision
// on the hand trajectory. The snapshot must be the agent's own view with at
// least one legal action.
func (a *Agent) Act(snap game.Snapshot) game.Action {
	key := a.stateKey(snap)
	legal := snap.LegalActions

	var chosen game.Action
	if a.rng.Float64() < a.effectiveEpsilon() {
		chosen = legal[a.rng.IntN(len(legal))]
	} else {
		chosen = a.exploit(key.String(), legal)
	}

	a.trajectory = append(a.trajectory, step{state: key.String(), action: chosen.String()})
	return chosen
}

// effectiveEpsilon decays exploration linearly over the first thousand
// hands, floored at one percent. The floor never raises epsilon above its
// configured value, so epsilon zero stays fully greedy.
func (a *Agent) effectiveEpsilon() float64 {
	floor := minEpsilon
	if a.epsilon < floor {
		floor = a.epsilon
	}
	decayed := a.epsilon * (1 - float64(a.table.HandsPlayed())/decayHorizon)
	if decayed < floor {
		return floor
	}
	return decayed
}

// exploit returns the legal action with the highest stored value, ties
// broken by the fixed priority order.
func (a *Agent) exploit(state string, legal []game.Action) game.Action {
	allowed := make(map[game.Action]bool, len(legal))
	for _, act := range legal {
		allowed[act] = true
	}

	best := legal[0]
	bestValue := 0.0
	first := true
	for _, act := range exploitOrder {
		if !allowed[act] {
			continue
		}
		v := a.table.Get(state, act.String())
		if first || v > bestValue {
			best, bestValue, first = act, v, false
		}
	}
	return best
}

// stateKey derives the discretized state from the agent's snapshot. The
// strength bucket is computed on the hand's first decision, when the
// trajectory is still empty, and held constant for the remaining streets.
func (a *Agent) stateKey(snap game.Snapshot) StateKey {
	if len(a.trajectory) == 0 {
		class := preflop.Classify(snap.Hole[0], snap.Hole[1])
		a.strengthBucket = strengthBucket(a.preflop.StrengthOr(class, 0.5))
	}

	firstToAct := snap.Viewer == snap.SmallBlindSeat
	if snap.Street != game.Preflop {
		firstToAct = !firstToAct
	}

	return StateKey{
		Street:         snap.Street,
		StrengthBucket: a.strengthBucket,
		PotOddsBucket:  potOddsBucket(snap.CallCost, snap.Pot),
		FirstToAct:     firstToAct,
	}
}

// Finish applies the backward temporal-difference update for a completed
// hand: the last step learns toward the terminal reward, earlier steps
// toward the discounted best value of their successor state. Clears the
// trajectory and counts the hand.
func (a *Agent) Finish(reward float64) {
	for i := len(a.trajectory) - 1; i >= 0; i-- {
		s := a.trajectory[i]
		var target float64
		if i == len(a.trajectory)-1 {
			target = reward
		} else {
			target = a.gamma * a.table.MaxValue(a.trajectory[i+1].state)
		}
		q := a.table.Get(s.state, s.action)
		a.table.Set(s.state, s.action, q+a.alpha*(target-q))
	}
	a.trajectory = a.trajectory[:0]
	a.table.RecordHand()
}
