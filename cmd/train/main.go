package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/config"
	"github.com/lox/limit-holdem/internal/preflop"
	"github.com/lox/limit-holdem/internal/trainer"
)

var CLI struct {
	Hands     int    `arg:"" help:"Number of hands to train for"`
	Opponent  string `default:"call" enum:"self,call,rand" help:"Opponent policy (self, call or rand)"`
	Config    string `short:"c" default:"game.hcl" help:"Path to HCL configuration file"`
	QTable    string `help:"Q-table path (overrides config)"`
	Preflop   string `help:"Preflop table path (overrides config)"`
	Seed      int64  `short:"s" default:"1" help:"RNG seed"`
	Workers   int    `short:"w" default:"4" help:"Training workers"`
	SaveEvery int    `default:"10000" help:"Checkpoint interval in hands, 0 disables"`
	Verbose   bool   `short:"v" help:"Debug logging"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	if CLI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.Fatal("config load failed", "error", err)
	}
	qtablePath := cfg.Paths.QTable
	if CLI.QTable != "" {
		qtablePath = CLI.QTable
	}
	preflopPath := cfg.Paths.PreflopTable
	if CLI.Preflop != "" {
		preflopPath = CLI.Preflop
	}

	strength, err := preflop.Load(preflopPath)
	if err != nil {
		logger.Fatal("preflop table load failed, run gen-preflop first", "path", preflopPath, "error", err)
	}
	table, err := bot.LoadQTable(qtablePath)
	if err != nil {
		logger.Fatal("qtable load failed", "path", qtablePath, "error", err)
	}
	logger.Info("training", "hands", CLI.Hands, "opponent", CLI.Opponent,
		"resume_from", table.HandsPlayed(), "qtable", qtablePath)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	t := trainer.New(trainer.Config{
		Hands:      CLI.Hands,
		Opponent:   CLI.Opponent,
		Seed:       CLI.Seed,
		Workers:    CLI.Workers,
		SaveEvery:  CLI.SaveEvery,
		QTablePath: qtablePath,
	}, cfg.Rules(), table, strength, logger)

	err = t.Run(ctx, func(p trainer.Progress) {
		logger.Info("progress", "hands", p.Hands, "states", p.States, "hands_per_sec", int(p.Rate))
	})
	if err != nil && ctx.Err() == nil {
		logger.Fatal("training failed", "error", err)
	}
	if ctx.Err() != nil {
		logger.Warn("interrupted, saving checkpoint")
		if err := table.Save(qtablePath); err != nil {
			logger.Fatal("checkpoint save failed", "error", err)
		}
	}
	kctx.Exit(0)
}
