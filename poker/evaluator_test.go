package poker

import (
	"errors"
	"testing"
)

// hand parses a space-separated list like "AS KH TD" into cards, using
// S/H/D/C suit letters.
func hand(t *testing.T, s string) []Card {
	t.Helper()
	ranks := map[byte]Rank{
		'2': Two, '3': Three, '4': Four, '5': Five, '6': Six, '7': Seven,
		'8': Eight, '9': Nine, 'T': Ten, 'J': Jack, 'Q': Queen, 'K': King, 'A': Ace,
	}
	suits := map[byte]Suit{'S': Spades, 'H': Hearts, 'D': Diamonds, 'C': Clubs}

	var cards []Card
	for i := 0; i < len(s); i += 3 {
		r, ok := ranks[s[i]]
		if !ok {
			t.Fatalf("bad rank %c in %q", s[i], s)
		}
		suit, ok := suits[s[i+1]]
		if !ok {
			t.Fatalf("bad suit %c in %q", s[i+1], s)
		}
		cards = append(cards, Card{Rank: r, Suit: suit})
	}
	return cards
}

func mustEvaluate(t *testing.T, s string) HandRank {
	t.Helper()
	rank, err := Evaluate(hand(t, s))
	if err != nil {
		t.Fatalf("Evaluate(%q): %v", s, err)
	}
	return rank
}

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		name  string
		cards string
		want  HandCategory
	}{
		{"high card", "AS KH 9D 5C 2S", HighCard},
		{"one pair", "AS AH 9D 5C 2S", Pair},
		{"two pair", "AS AH 9D 9C 2S", TwoPair},
		{"three of a kind", "AS AH AD 9C 2S", ThreeOfAKind},
		{"straight", "9S 8H 7D 6C 5S", Straight},
		{"wheel straight", "AS 2H 3D 4C 5S", Straight},
		{"flush", "AS KS 9S 5S 2S", Flush},
		{"full house", "AS AH AD 9C 9S", FullHouse},
		{"four of a kind", "AS AH AD AC 9S", FourOfAKind},
		{"straight flush", "9S 8S 7S 6S 5S", StraightFlush},
		{"royal flush", "AS KS QS JS TS", StraightFlush},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustEvaluate(t, tt.cards)
			if got.Category != tt.want {
				t.Errorf("category = %s, want %s", got.Category, tt.want)
			}
		})
	}
}

func TestEvaluateWheelIsLowestStraight(t *testing.T) {
	wheel := mustEvaluate(t, "AS 2H 3D 4C 5S")
	six := mustEvaluate(t, "2H 3D 4C 5S 6H")

	if wheel.Tiebreaks[0] != Five {
		t.Errorf("wheel high card = %s, want 5", wheel.Tiebreaks[0])
	}
	if wheel.Compare(six) != -1 {
		t.Error("wheel should lose to a six-high straight")
	}
}

func TestEvaluateTiebreaks(t *testing.T) {
	// Pair of aces, then kickers in descending order.
	r := mustEvaluate(t, "AS AH 9D 5C 2S")
	want := []Rank{Ace, Nine, Five, Two}
	if len(r.Tiebreaks) != len(want) {
		t.Fatalf("tiebreaks = %v, want %v", r.Tiebreaks, want)
	}
	for i := range want {
		if r.Tiebreaks[i] != want[i] {
			t.Fatalf("tiebreaks = %v, want %v", r.Tiebreaks, want)
		}
	}

	// Two pair orders high pair, low pair, kicker.
	r = mustEvaluate(t, "9D 9C AS AH 2S")
	want = []Rank{Ace, Nine, Two}
	for i := range want {
		if r.Tiebreaks[i] != want[i] {
			t.Fatalf("two pair tiebreaks = %v, want %v", r.Tiebreaks, want)
		}
	}
}

func TestEvaluateCompare(t *testing.T) {
	flush := mustEvaluate(t, "AS KS 9S 5S 2S")
	straight := mustEvaluate(t, "9S 8H 7D 6C 5S")
	if flush.Compare(straight) != 1 {
		t.Error("flush should beat straight")
	}

	kickerA := mustEvaluate(t, "AS AH 9D 5C 2S")
	kickerB := mustEvaluate(t, "AD AC 8D 5H 2H")
	if kickerA.Compare(kickerB) != 1 {
		t.Error("nine kicker should beat eight kicker")
	}

	tieA := mustEvaluate(t, "AS AH 9D 5C 2S")
	tieB := mustEvaluate(t, "AD AC 9H 5S 2H")
	if tieA.Compare(tieB) != 0 {
		t.Error("identical ranks should tie")
	}
}

func TestEvaluateSevenCardsPicksBest(t *testing.T) {
	// A pair in the hole is irrelevant next to the board's flush.
	r := mustEvaluate(t, "2H 2D AS KS 9S 5S 3S")
	if r.Category != Flush {
		t.Errorf("category = %s, want %s", r.Category, Flush)
	}

	// Board pairs plus hole pair make a full house out of seven cards.
	r = mustEvaluate(t, "9H 9D AS AH 9S 5C 2D")
	if r.Category != FullHouse {
		t.Errorf("category = %s, want %s", r.Category, FullHouse)
	}
}

func TestEvaluateSevenAtLeastAnyFive(t *testing.T) {
	cards := hand(t, "2H 2D AS KS 9S 5S 3S")
	best, err := Evaluate(cards)
	if err != nil {
		t.Fatal(err)
	}
	// Every 5-card subset must rank at or below the 7-card result.
	for i := 0; i < len(cards); i++ {
		for j := i + 1; j < len(cards); j++ {
			var sub []Card
			for k, c := range cards {
				if k != i && k != j {
					sub = append(sub, c)
				}
			}
			r, err := Evaluate(sub)
			if err != nil {
				t.Fatal(err)
			}
			if r.Compare(best) == 1 {
				t.Fatalf("subset %v outranks the 7-card result", sub)
			}
		}
	}
}

func TestEvaluateOrderInvariance(t *testing.T) {
	a := mustEvaluate(t, "9H 9D AS AH 9S 5C 2D")
	b := mustEvaluate(t, "2D 5C 9S AH AS 9D 9H")
	if a.Compare(b) != 0 {
		t.Errorf("order changed the result: %v vs %v", a, b)
	}
}

func TestEvaluateInvalidHands(t *testing.T) {
	var invalid *InvalidHandError

	_, err := Evaluate(hand(t, "AS KH 9D 5C"))
	if !errors.As(err, &invalid) {
		t.Errorf("4 cards: got %v, want InvalidHandError", err)
	}

	_, err = Evaluate(hand(t, "AS KH 9D 5C 2S 3S 4S 6S"))
	if !errors.As(err, &invalid) {
		t.Errorf("8 cards: got %v, want InvalidHandError", err)
	}

	_, err = Evaluate(hand(t, "AS AS 9D 5C 2S"))
	if !errors.As(err, &invalid) {
		t.Errorf("duplicate card: got %v, want InvalidHandError", err)
	}
}
