// Package trainer drives Q-learning self-play: workers play hands through
// the game engine, the learning agent collects terminal rewards, and the
// shared Q-table is checkpointed periodically.
package trainer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/game"
	"github.com/lox/limit-holdem/internal/preflop"
	"github.com/lox/limit-holdem/internal/randutil"
)

// Config controls a training run
type Config struct {
	Hands      int
	Opponent   string // self, call or rand
	Seed       int64
	Workers    int
	SaveEvery  int    // checkpoint interval in hands, 0 disables
	QTablePath string // checkpoint destination, required when SaveEvery > 0
}

// Progress is a periodic training report
type Progress struct {
	Hands  int
	States int
	Rate   float64 // hands per second
}

// Trainer plays hands and updates the shared Q-table
type Trainer struct {
	cfg      Config
	rules    game.Rules
	table    *bot.QTable
	strength *preflop.Table
	clock    quartz.Clock
	log      *log.Logger
}

// New creates a trainer. The Q-table is shared with the caller so a loaded
// table continues training in place.
func New(cfg Config, rules game.Rules, table *bot.QTable, strength *preflop.Table, logger *log.Logger) *Trainer {
	return &Trainer{
		cfg:      cfg,
		rules:    rules,
		table:    table,
		strength: strength,
		clock:    quartz.NewReal(),
		log:      logger,
	}
}

// WithClock substitutes the clock, for tests
func (t *Trainer) WithClock(clock quartz.Clock) *Trainer {
	t.clock = clock
	return t
}

// Run plays cfg.Hands hands across cfg.Workers workers and returns once all
// are played or the context is cancelled. The progress callback, when set,
// fires roughly once per second.
func (t *Trainer) Run(ctx context.Context, progress func(Progress)) error {
	if t.cfg.Hands <= 0 {
		return fmt.Errorf("hands must be positive, got %d", t.cfg.Hands)
	}
	workers := t.cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	var played atomic.Int64
	start := t.clock.Now()

	g, ctx := errgroup.WithContext(ctx)

	if progress != nil {
		done := make(chan struct{})
		defer close(done)
		go t.reportProgress(ctx, done, &played, start, progress)
	}

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			return t.worker(ctx, w, &played)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if t.cfg.QTablePath != "" {
		if err := t.table.Save(t.cfg.QTablePath); err != nil {
			return err
		}
	}
	t.log.Info("training complete",
		"hands", played.Load(), "states", t.table.States(),
		"elapsed", t.clock.Since(start).Round(time.Millisecond))
	return nil
}

// worker plays hands until the shared budget is spent. Each worker owns its
// game, RNG and agents; only the Q-table is shared.
func (t *Trainer) worker(ctx context.Context, id int, played *atomic.Int64) error {
	rng := randutil.New(t.cfg.Seed + int64(id))
	learner := bot.NewAgent(t.table, t.strength, rng)

	var opponent policy
	switch t.cfg.Opponent {
	case "self":
		opponent = agentPolicy{agent: bot.NewAgent(t.table, t.strength, rng)}
	case "rand":
		opponent = randPolicy{rng: rng}
	case "call", "":
		opponent = callPolicy{}
	default:
		return fmt.Errorf("unknown opponent policy %q", t.cfg.Opponent)
	}

	g := game.NewGame(t.rules, rng)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n := played.Add(1)
		if n > int64(t.cfg.Hands) {
			played.Add(-1)
			return nil
		}

		if g.MatchOver() {
			g = game.NewGame(t.rules, rng)
		}
		if err := t.playHand(g, learner, opponent); err != nil {
			return fmt.Errorf("worker %d hand %d: %w", id, n, err)
		}

		learner.Finish(float64(g.Reward(game.SeatBot)))
		opponent.finish(float64(g.Reward(game.SeatPlayer)))

		if t.cfg.SaveEvery > 0 && n%int64(t.cfg.SaveEvery) == 0 {
			if err := t.table.Save(t.cfg.QTablePath); err != nil {
				return err
			}
			t.log.Debug("checkpoint saved", "hands", n, "path", t.cfg.QTablePath)
		}
	}
}

// playHand drives one hand to completion. The learner sits in the bot seat,
// the opponent in the player seat.
func (t *Trainer) playHand(g *game.Game, learner *bot.Agent, opponent policy) error {
	if err := g.StartHand(); err != nil {
		return err
	}
	for {
		snap := g.Snapshot(game.SeatBot)
		if !snap.State.BettingState() {
			return nil
		}
		seat := snap.ToAct

		var action game.Action
		if seat == game.SeatBot {
			action = learner.Act(snap)
		} else {
			action = opponent.act(g.Snapshot(game.SeatPlayer))
		}
		if _, err := g.Apply(seat, action, 0); err != nil {
			return err
		}
	}
}

// reportProgress emits a Progress roughly once per second until training
// finishes.
func (t *Trainer) reportProgress(ctx context.Context, done <-chan struct{}, played *atomic.Int64, start time.Time, progress func(Progress)) {
	ticker := t.clock.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			hands := int(played.Load())
			elapsed := t.clock.Since(start).Seconds()
			var rate float64
			if elapsed > 0 {
				rate = float64(hands) / elapsed
			}
			progress(Progress{Hands: hands, States: t.table.States(), Rate: rate})
		}
	}
}
