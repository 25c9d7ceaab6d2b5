package trainer

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/game"
	"github.com/lox/limit-holdem/internal/preflop"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

// testStrength is a hand-built table with realistic spread so strength
// buckets vary without running the generator.
func testStrength() *preflop.Table {
	t := &preflop.Table{Strength: make(map[string]float64)}
	for i, class := range preflop.Classes() {
		// Descending from 0.85 to 0.3 in class order, pairs first.
		t.Strength[class] = 0.85 - 0.55*float64(i)/168
	}
	return t
}

func TestRunPlaysRequestedHands(t *testing.T) {
	table := bot.NewQTable()
	tr := New(Config{
		Hands:    500,
		Opponent: "call",
		Seed:     1,
		Workers:  2,
	}, game.DefaultRules(), table, testStrength(), testLogger()).
		WithClock(quartz.NewMock(t))

	if err := tr.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if got := table.HandsPlayed(); got != 500 {
		t.Errorf("hands played = %d, want 500", got)
	}
	if table.States() == 0 {
		t.Error("no states learned")
	}
}

func TestRunSelfPlay(t *testing.T) {
	table := bot.NewQTable()
	tr := New(Config{
		Hands:    200,
		Opponent: "self",
		Seed:     3,
		Workers:  1,
	}, game.DefaultRules(), table, testStrength(), testLogger())

	if err := tr.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	// Both seats learn, so the table counts two hands per deal.
	if got := table.HandsPlayed(); got != 400 {
		t.Errorf("hands played = %d, want 400", got)
	}
}

func TestRunRandOpponent(t *testing.T) {
	table := bot.NewQTable()
	tr := New(Config{
		Hands:    200,
		Opponent: "rand",
		Seed:     5,
		Workers:  2,
	}, game.DefaultRules(), table, testStrength(), testLogger())

	if err := tr.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}
	if got := table.HandsPlayed(); got != 200 {
		t.Errorf("hands played = %d, want 200", got)
	}
}

func TestRunUnknownOpponent(t *testing.T) {
	tr := New(Config{Hands: 10, Opponent: "gto"},
		game.DefaultRules(), bot.NewQTable(), testStrength(), testLogger())
	if err := tr.Run(context.Background(), nil); err == nil {
		t.Fatal("expected an error for an unknown opponent policy")
	}
}

func TestRunRespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := New(Config{Hands: 1 << 30, Opponent: "call", Workers: 2},
		game.DefaultRules(), bot.NewQTable(), testStrength(), testLogger())
	if err := tr.Run(ctx, nil); err == nil {
		t.Fatal("expected a context error")
	}
}

func TestRunSavesCheckpoints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "q.json")
	table := bot.NewQTable()
	tr := New(Config{
		Hands:      300,
		Opponent:   "call",
		Seed:       7,
		Workers:    1,
		SaveEvery:  100,
		QTablePath: path,
	}, game.DefaultRules(), table, testStrength(), testLogger())

	if err := tr.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	loaded, err := bot.LoadQTable(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.HandsPlayed() != table.HandsPlayed() {
		t.Errorf("saved hands = %d, want %d", loaded.HandsPlayed(), table.HandsPlayed())
	}
}

func TestTrainingAgainstCallerValuesStrongRaises(t *testing.T) {
	if testing.Short() {
		t.Skip("training run")
	}

	table := bot.NewQTable()
	tr := New(Config{
		Hands:    20000,
		Opponent: "call",
		Seed:     11,
		Workers:  4,
	}, game.DefaultRules(), table, testStrength(), testLogger())

	if err := tr.Run(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	// Against an opponent that never folds, raising the top strength bucket
	// must look profitable on aggregate.
	var sum float64
	var n int
	for o := 0; o < 4; o++ {
		for _, pos := range []bool{true, false} {
			key := bot.StateKey{Street: game.Preflop, StrengthBucket: 4, PotOddsBucket: o, FirstToAct: pos}
			v := table.Get(key.String(), "raise")
			if v != 0 {
				sum += v
				n++
			}
		}
	}
	if n == 0 {
		t.Fatal("no top-bucket preflop raise states were visited")
	}
	if sum <= 0 {
		t.Errorf("mean raise value for top-bucket states = %v, want positive", sum/float64(n))
	}
}
