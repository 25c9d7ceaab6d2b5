package bot

import (
	"testing"

	"github.com/lox/limit-holdem/internal/game"
)

func TestStateKeyString(t *testing.T) {
	k := StateKey{Street: game.Flop, StrengthBucket: 3, PotOddsBucket: 1, FirstToAct: true}
	if got := k.String(); got != "flop/s3/o1/first" {
		t.Errorf("String() = %q, want %q", got, "flop/s3/o1/first")
	}

	k = StateKey{Street: game.Preflop, StrengthBucket: 0, PotOddsBucket: 2}
	if got := k.String(); got != "preflop/s0/o2/second" {
		t.Errorf("String() = %q, want %q", got, "preflop/s0/o2/second")
	}
}

func TestStateKeyRoundTrip(t *testing.T) {
	for _, street := range []game.Street{game.Preflop, game.Flop, game.Turn, game.River} {
		for s := 0; s < strengthBuckets; s++ {
			for o := 0; o < potOddsBuckets; o++ {
				for _, first := range []bool{true, false} {
					k := StateKey{Street: street, StrengthBucket: s, PotOddsBucket: o, FirstToAct: first}
					parsed, err := ParseStateKey(k.String())
					if err != nil {
						t.Fatalf("ParseStateKey(%q): %v", k.String(), err)
					}
					if parsed != k {
						t.Fatalf("round trip %q: got %+v, want %+v", k.String(), parsed, k)
					}
				}
			}
		}
	}
}

func TestParseStateKeyErrors(t *testing.T) {
	for _, s := range []string{
		"",
		"flop/s3/o1",
		"flop/s3/o1/first/extra",
		"showdown/s3/o1/first",
		"flop/x3/o1/first",
		"flop/s3/o1/middle",
	} {
		if _, err := ParseStateKey(s); err == nil {
			t.Errorf("ParseStateKey(%q) succeeded, want error", s)
		}
	}
}

func TestStrengthBucket(t *testing.T) {
	tests := []struct {
		p    float64
		want int
	}{
		{0.0, 0}, {0.19, 0}, {0.2, 1}, {0.5, 2}, {0.79, 3}, {0.8, 4}, {1.0, 4},
	}
	for _, tt := range tests {
		if got := strengthBucket(tt.p); got != tt.want {
			t.Errorf("strengthBucket(%v) = %d, want %d", tt.p, got, tt.want)
		}
	}
}

func TestPotOddsBucket(t *testing.T) {
	if got := potOddsBucket(0, 100); got != 0 {
		t.Errorf("no call cost should bucket to 0, got %d", got)
	}
	// 10 into 30 total is a third: bucket 1 of 4.
	if got := potOddsBucket(10, 20); got != 1 {
		t.Errorf("potOddsBucket(10, 20) = %d, want 1", got)
	}
	// Calling an empty pot caps at the top bucket.
	if got := potOddsBucket(10, 0); got != potOddsBuckets-1 {
		t.Errorf("potOddsBucket(10, 0) = %d, want %d", got, potOddsBuckets-1)
	}
}
