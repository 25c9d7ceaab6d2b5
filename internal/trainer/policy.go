package trainer

import (
	rand "math/rand/v2"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/game"
)

// policy chooses an action from a snapshot. Policies that learn also get
// the hand's terminal reward through finish.
type policy interface {
	act(snap game.Snapshot) game.Action
	finish(reward float64)
}

// callPolicy always calls when facing a bet and checks otherwise. A passive
// sparring partner that never folds, so the learner sees showdowns.
type callPolicy struct{}

func (callPolicy) act(snap game.Snapshot) game.Action {
	for _, a := range snap.LegalActions {
		if a == game.Call {
			return game.Call
		}
	}
	return game.Check
}

func (callPolicy) finish(float64) {}

// randPolicy picks uniformly among legal actions
type randPolicy struct {
	rng *rand.Rand
}

func (p randPolicy) act(snap game.Snapshot) game.Action {
	return snap.LegalActions[p.rng.IntN(len(snap.LegalActions))]
}

func (randPolicy) finish(float64) {}

// agentPolicy adapts a learning agent to the policy interface, used for
// self-play where both seats learn into the shared table.
type agentPolicy struct {
	agent *bot.Agent
}

func (p agentPolicy) act(snap game.Snapshot) game.Action { return p.agent.Act(snap) }
func (p agentPolicy) finish(reward float64)              { p.agent.Finish(reward) }
