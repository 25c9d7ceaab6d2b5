package preflop

import (
	"context"
	"fmt"
	rand "math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lox/limit-holdem/internal/randutil"
	"github.com/lox/limit-holdem/poker"
)

// GenerateConfig controls table generation
type GenerateConfig struct {
	TrialsPerClass int
	Seed           int64
	Workers        int // concurrent classes, defaults to 8
}

// Generate estimates each class's win probability by Monte Carlo: the trial
// budget is split evenly across the class's concrete combos, and each trial
// deals one random opponent hand and a five-card board from the remaining
// deck, scoring a win as 1 and a tie as half. Classes run in parallel, each
// with its own deterministically seeded RNG.
func Generate(ctx context.Context, cfg GenerateConfig) (*Table, error) {
	if cfg.TrialsPerClass <= 0 {
		return nil, fmt.Errorf("trials per class must be positive, got %d", cfg.TrialsPerClass)
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}

	classes := Classes()
	results := make([]float64, len(classes))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, class := range classes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := randutil.New(cfg.Seed + int64(i))
			results[i] = simulateClass(class, cfg.TrialsPerClass, rng)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &Table{
		Version:     tableVersion,
		Trials:      cfg.TrialsPerClass,
		GeneratedAt: time.Now().UTC(),
		Strength:    make(map[string]float64, len(classes)),
	}
	for i, class := range classes {
		t.Strength[class] = results[i]
	}
	return t, nil
}

// simulateClass runs the class's share of trials and returns the equity
// estimate (wins + ties/2) / trials.
func simulateClass(class string, trials int, rng *rand.Rand) float64 {
	cc := combos(class)
	perCombo := trials / len(cc)
	if perCombo == 0 {
		perCombo = 1
	}

	var score float64
	var played int
	for _, hole := range cc {
		rest := remaining(hole)
		for t := 0; t < perCombo; t++ {
			// Partial Fisher-Yates: only the 7 cards we deal need shuffling.
			for i := 0; i < 7; i++ {
				j := i + rng.IntN(len(rest)-i)
				rest[i], rest[j] = rest[j], rest[i]
			}
			oppHole := rest[0:2]
			board := rest[2:7]

			hero := append(append([]poker.Card{}, hole[0], hole[1]), board...)
			villain := append(append([]poker.Card{}, oppHole...), board...)
			heroRank, _ := poker.Evaluate(hero)
			villainRank, _ := poker.Evaluate(villain)

			switch heroRank.Compare(villainRank) {
			case 1:
				score++
			case 0:
				score += 0.5
			}
			played++
		}
	}
	return score / float64(played)
}

// remaining returns the 50 cards left after removing the hole cards
func remaining(hole [2]poker.Card) []poker.Card {
	out := make([]poker.Card, 0, 50)
	for s := poker.Spades; s <= poker.Clubs; s++ {
		for r := poker.Two; r <= poker.Ace; r++ {
			c := poker.Card{Rank: r, Suit: s}
			if c != hole[0] && c != hole[1] {
				out = append(out, c)
			}
		}
	}
	return out
}
