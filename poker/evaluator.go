package poker

import (
	"fmt"
	"sort"
)

// HandCategory enumerates the categories of poker hands ordered from weakest
// to strongest.
type HandCategory int

const (
	HighCard HandCategory = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category name
func (c HandCategory) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// HandRank is the strength of a five-card hand: a category plus the tiebreak
// ranks for that category, most significant first. Hands within the same
// category compare by tiebreaks lexicographically; a full tie means a split
// pot.
type HandRank struct {
	Category  HandCategory
	Tiebreaks []Rank
}

// Compare returns 1 if hr is stronger than other, -1 if weaker, 0 if equal.
func (hr HandRank) Compare(other HandRank) int {
	if hr.Category != other.Category {
		if hr.Category > other.Category {
			return 1
		}
		return -1
	}
	for i := range hr.Tiebreaks {
		if i >= len(other.Tiebreaks) {
			break
		}
		if hr.Tiebreaks[i] != other.Tiebreaks[i] {
			if hr.Tiebreaks[i] > other.Tiebreaks[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String returns a human-readable hand description
func (hr HandRank) String() string {
	return hr.Category.String()
}

// InvalidHandError reports a malformed card set passed to Evaluate. This is a
// caller contract violation, not a recoverable game condition.
type InvalidHandError struct {
	Reason string
}

func (e *InvalidHandError) Error() string {
	return fmt.Sprintf("invalid hand: %s", e.Reason)
}

// Evaluate returns the rank of the best five-card hand available in a set of
// 5 to 7 cards. For 6 or 7 cards every five-card subset is ranked and the
// maximum kept; at this scale (21 subsets) that beats maintaining a
// rank-bucket table.
func Evaluate(cards []Card) (HandRank, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return HandRank{}, &InvalidHandError{Reason: fmt.Sprintf("need 5-7 cards, got %d", n)}
	}

	seen := make(map[Card]struct{}, n)
	for _, c := range cards {
		if _, dup := seen[c]; dup {
			return HandRank{}, &InvalidHandError{Reason: fmt.Sprintf("duplicate card %s", c)}
		}
		seen[c] = struct{}{}
	}

	if n == 5 {
		return evaluate5(cards), nil
	}

	// Enumerate five-card subsets by choosing which one or two indices to
	// drop (6 subsets for six cards, 21 for seven).
	var best HandRank
	first := true
	combo := make([]Card, 0, 5)
	consider := func(dropA, dropB int) {
		combo = combo[:0]
		for i := 0; i < n; i++ {
			if i == dropA || i == dropB {
				continue
			}
			combo = append(combo, cards[i])
		}
		rank := evaluate5(combo)
		if first || rank.Compare(best) > 0 {
			best = rank
			first = false
		}
	}

	if n == 6 {
		for drop := 0; drop < n; drop++ {
			consider(drop, -1)
		}
	} else {
		for dropA := 0; dropA < n; dropA++ {
			for dropB := dropA + 1; dropB < n; dropB++ {
				consider(dropA, dropB)
			}
		}
	}
	return best, nil
}

// evaluate5 ranks exactly five distinct cards.
func evaluate5(cards []Card) HandRank {
	ranks := make([]Rank, 5)
	for i, c := range cards {
		ranks[i] = c.Rank
	}
	sort.Slice(ranks, func(i, j int) bool { return ranks[i] > ranks[j] })

	flush := true
	for _, c := range cards[1:] {
		if c.Suit != cards[0].Suit {
			flush = false
			break
		}
	}

	straightHigh, isStraight := straightHigh(ranks)

	if flush && isStraight {
		return HandRank{Category: StraightFlush, Tiebreaks: []Rank{straightHigh}}
	}

	// Group ranks by multiplicity, groups of a kind first, then by rank.
	type group struct {
		rank  Rank
		count int
	}
	var groups []group
	for i := 0; i < 5; {
		j := i
		for j < 5 && ranks[j] == ranks[i] {
			j++
		}
		groups = append(groups, group{rank: ranks[i], count: j - i})
		i = j
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].rank > groups[j].rank
	})

	tiebreaks := make([]Rank, 0, 5)
	for _, g := range groups {
		tiebreaks = append(tiebreaks, g.rank)
	}

	switch {
	case groups[0].count == 4:
		return HandRank{Category: FourOfAKind, Tiebreaks: tiebreaks}
	case groups[0].count == 3 && groups[1].count == 2:
		return HandRank{Category: FullHouse, Tiebreaks: tiebreaks}
	case flush:
		return HandRank{Category: Flush, Tiebreaks: tiebreaks}
	case isStraight:
		return HandRank{Category: Straight, Tiebreaks: []Rank{straightHigh}}
	case groups[0].count == 3:
		return HandRank{Category: ThreeOfAKind, Tiebreaks: tiebreaks}
	case groups[0].count == 2 && groups[1].count == 2:
		return HandRank{Category: TwoPair, Tiebreaks: tiebreaks}
	case groups[0].count == 2:
		return HandRank{Category: Pair, Tiebreaks: tiebreaks}
	default:
		return HandRank{Category: HighCard, Tiebreaks: tiebreaks}
	}
}

// straightHigh reports whether five descending-sorted ranks form a straight
// and returns the high card. The wheel (A-5-4-3-2) counts as a five-high
// straight: the ace drops to the bottom for ordering purposes only.
func straightHigh(desc []Rank) (Rank, bool) {
	consecutive := true
	for i := 1; i < 5; i++ {
		if desc[i-1] != desc[i]+1 {
			consecutive = false
			break
		}
	}
	if consecutive {
		return desc[0], true
	}

	if desc[0] == Ace && desc[1] == Five && desc[2] == Four && desc[3] == Three && desc[4] == Two {
		return Five, true
	}
	return 0, false
}
