package game

import "fmt"

// Rules holds the fixed-limit table stakes. Raise increments are fixed per
// street: SmallBet on preflop and flop, BigBet (twice the small bet) on turn
// and river, with at most MaxRaises raises per betting round.
type Rules struct {
	SmallBlind    int
	BigBlind      int
	SmallBet      int
	BigBet        int
	MaxRaises     int
	StartingStack int
}

// DefaultRules returns the standard table configuration
func DefaultRules() Rules {
	return Rules{
		SmallBlind:    5,
		BigBlind:      10,
		SmallBet:      10,
		BigBet:        20,
		MaxRaises:     3,
		StartingStack: 200,
	}
}

// BetSize returns the fixed raise increment for a street
func (r Rules) BetSize(street Street) int {
	if street == Preflop || street == Flop {
		return r.SmallBet
	}
	return r.BigBet
}

// Validate checks the rules for internal consistency
func (r Rules) Validate() error {
	if r.SmallBlind <= 0 || r.BigBlind <= r.SmallBlind {
		return fmt.Errorf("blinds must satisfy 0 < small < big, got %d/%d", r.SmallBlind, r.BigBlind)
	}
	if r.SmallBet < r.BigBlind {
		return fmt.Errorf("small bet %d must be at least the big blind %d", r.SmallBet, r.BigBlind)
	}
	if r.BigBet != 2*r.SmallBet {
		return fmt.Errorf("big bet %d must be double the small bet %d", r.BigBet, r.SmallBet)
	}
	if r.MaxRaises <= 0 {
		return fmt.Errorf("max raises must be positive, got %d", r.MaxRaises)
	}
	if r.StartingStack < r.BigBlind {
		return fmt.Errorf("starting stack %d cannot cover the big blind %d", r.StartingStack, r.BigBlind)
	}
	return nil
}
