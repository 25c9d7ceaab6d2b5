package game

import "fmt"

// IllegalActionError reports an action that violates the current legal-action
// set: wrong seat, wrong phase, a fourth raise, a check facing a bet. The
// game state is left exactly as it was; the caller re-prompts.
type IllegalActionError struct {
	Seat   Seat
	Action Action
	Reason string
}

func (e *IllegalActionError) Error() string {
	return fmt.Sprintf("illegal action %s by %s: %s", e.Action, e.Seat, e.Reason)
}

// InsufficientStackError reports a raise the acting seat cannot fully fund.
// Calls never produce this: a short call is applied as an all-in instead.
type InsufficientStackError struct {
	Seat   Seat
	Action Action
	Need   int
	Have   int
}

func (e *InsufficientStackError) Error() string {
	return fmt.Sprintf("%s cannot %s: needs %d chips, has %d", e.Seat, e.Action, e.Need, e.Have)
}
