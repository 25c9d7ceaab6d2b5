// Package preflop builds and serves the 169-class preflop strength table:
// every two-card starting hand reduced to its canonical class with a Monte
// Carlo win probability against one random opponent.
package preflop

import "github.com/lox/limit-holdem/poker"

// Classify reduces a two-card starting hand to its canonical class name:
// "AA" for pairs, "AKs" for suited, "AKo" for offsuit, higher rank first.
// There are exactly 169 classes.
func Classify(a, b poker.Card) string {
	hi, lo := a, b
	if lo.Rank > hi.Rank {
		hi, lo = lo, hi
	}
	if hi.Rank == lo.Rank {
		return hi.Rank.String() + lo.Rank.String()
	}
	suffix := "o"
	if hi.Suit == lo.Suit {
		suffix = "s"
	}
	return hi.Rank.String() + lo.Rank.String() + suffix
}

// Classes returns all 169 class names, strongest-rank pairs first. The order
// is deterministic: pairs, then suited, then offsuit, each by descending
// ranks.
func Classes() []string {
	out := make([]string, 0, 169)
	for r := poker.Ace; r >= poker.Two; r-- {
		out = append(out, r.String()+r.String())
	}
	for _, suffix := range []string{"s", "o"} {
		for hi := poker.Ace; hi >= poker.Three; hi-- {
			for lo := hi - 1; lo >= poker.Two; lo-- {
				out = append(out, hi.String()+lo.String()+suffix)
			}
		}
	}
	return out
}

// combos expands a class into its concrete two-card combinations: 6 for a
// pair, 4 suited, 12 offsuit.
func combos(class string) [][2]poker.Card {
	hi := rankFromString(class[0:1])
	lo := rankFromString(class[1:2])
	suits := []poker.Suit{poker.Spades, poker.Hearts, poker.Diamonds, poker.Clubs}

	var out [][2]poker.Card
	switch {
	case hi == lo:
		for i := 0; i < len(suits); i++ {
			for j := i + 1; j < len(suits); j++ {
				out = append(out, [2]poker.Card{{Rank: hi, Suit: suits[i]}, {Rank: lo, Suit: suits[j]}})
			}
		}
	case class[2] == 's':
		for _, s := range suits {
			out = append(out, [2]poker.Card{{Rank: hi, Suit: s}, {Rank: lo, Suit: s}})
		}
	default:
		for _, s1 := range suits {
			for _, s2 := range suits {
				if s1 != s2 {
					out = append(out, [2]poker.Card{{Rank: hi, Suit: s1}, {Rank: lo, Suit: s2}})
				}
			}
		}
	}
	return out
}

func rankFromString(s string) poker.Rank {
	for r := poker.Two; r <= poker.Ace; r++ {
		if r.String() == s {
			return r
		}
	}
	return 0
}
