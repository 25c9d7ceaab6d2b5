// Package bot implements the Q-learning agent: a discretized view of the
// hand, a mutex-guarded persistent Q-table and an epsilon-greedy policy with
// backward temporal-difference updates at hand end.
package bot

import (
	"fmt"
	"strings"

	"github.com/lox/limit-holdem/internal/game"
)

const (
	strengthBuckets = 5
	potOddsBuckets  = 4
)

// StateKey is the discretized game state the agent learns over: the street,
// a preflop hand-strength band, a pot-odds band and whether the agent acts
// first this street. Its string form is the persisted Q-table key.
type StateKey struct {
	Street         game.Street
	StrengthBucket int // 0..4
	PotOddsBucket  int // 0..3, 0 when there is nothing to call
	FirstToAct     bool
}

// String renders the key in its canonical persisted form, e.g.
// "flop/s3/o1/first".
func (k StateKey) String() string {
	pos := "second"
	if k.FirstToAct {
		pos = "first"
	}
	return fmt.Sprintf("%s/s%d/o%d/%s", k.Street, k.StrengthBucket, k.PotOddsBucket, pos)
}

// ParseStateKey parses the canonical string form back into a StateKey
func ParseStateKey(s string) (StateKey, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 4 {
		return StateKey{}, fmt.Errorf("state key %q: want 4 segments, got %d", s, len(parts))
	}

	var k StateKey
	streets := map[string]game.Street{
		"preflop": game.Preflop, "flop": game.Flop, "turn": game.Turn, "river": game.River,
	}
	street, ok := streets[parts[0]]
	if !ok {
		return StateKey{}, fmt.Errorf("state key %q: unknown street %q", s, parts[0])
	}
	k.Street = street

	if _, err := fmt.Sscanf(parts[1], "s%d", &k.StrengthBucket); err != nil {
		return StateKey{}, fmt.Errorf("state key %q: bad strength segment %q", s, parts[1])
	}
	if _, err := fmt.Sscanf(parts[2], "o%d", &k.PotOddsBucket); err != nil {
		return StateKey{}, fmt.Errorf("state key %q: bad pot-odds segment %q", s, parts[2])
	}
	switch parts[3] {
	case "first":
		k.FirstToAct = true
	case "second":
		k.FirstToAct = false
	default:
		return StateKey{}, fmt.Errorf("state key %q: bad position segment %q", s, parts[3])
	}
	return k, nil
}

// strengthBucket bands a win probability in [0,1] into 5 equal buckets
func strengthBucket(p float64) int {
	b := int(p * strengthBuckets)
	if b >= strengthBuckets {
		b = strengthBuckets - 1
	}
	if b < 0 {
		b = 0
	}
	return b
}

// potOddsBucket bands callCost/(pot+callCost) into 4 buckets, 0 when there
// is nothing to call.
func potOddsBucket(callCost, pot int) int {
	if callCost <= 0 {
		return 0
	}
	odds := float64(callCost) / float64(pot+callCost)
	b := int(odds * potOddsBuckets)
	if b >= potOddsBuckets {
		b = potOddsBuckets - 1
	}
	return b
}
