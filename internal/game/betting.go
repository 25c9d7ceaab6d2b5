package game

// BettingRound tracks the per-street betting state: how much each seat has
// committed this street, how many raises have happened, who still owes an
// action and whose turn it is. A fresh round is created at the start of every
// street.
type BettingRound struct {
	Bets   [2]int // chips committed this street per seat
	Raises int

	// Acted marks seats that have taken a voluntary action this street.
	// Posted blinds do not set it, which gives the big blind its preflop
	// option; a raise clears the opponent's flag so they must respond.
	Acted [2]bool
	ToAct Seat
}

func newBettingRound(first Seat) *BettingRound {
	return &BettingRound{ToAct: first}
}

// CurrentBet returns the highest commitment this street
func (br *BettingRound) CurrentBet() int {
	if br.Bets[0] > br.Bets[1] {
		return br.Bets[0]
	}
	return br.Bets[1]
}

// Outstanding returns the amount a seat must add to match the current bet
func (br *BettingRound) Outstanding(seat Seat) int {
	return br.CurrentBet() - br.Bets[seat]
}
