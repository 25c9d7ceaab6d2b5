package main

import (
	"os"
	"sync/atomic"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/config"
	"github.com/lox/limit-holdem/internal/game"
	"github.com/lox/limit-holdem/internal/preflop"
	"github.com/lox/limit-holdem/internal/randutil"
	"github.com/lox/limit-holdem/internal/server"
)

var CLI struct {
	Listen   string `short:"l" default:":8080" help:"Address to listen on"`
	Config   string `short:"c" default:"game.hcl" help:"Path to HCL configuration file"`
	Seed     int64  `short:"s" default:"0" help:"RNG seed, 0 for random"`
	LogLevel string `default:"info" enum:"debug,info,warn,error" help:"Log level"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})
	level, _ := log.ParseLevel(CLI.LogLevel)
	logger.SetLevel(level)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		logger.Fatal("config load failed", "error", err)
	}
	strength, err := preflop.Load(cfg.Paths.PreflopTable)
	if err != nil {
		logger.Warn("no preflop table, bot plays with average strength", "error", err)
		strength = &preflop.Table{}
	}
	table, err := bot.LoadQTable(cfg.Paths.QTable)
	if err != nil {
		logger.Fatal("qtable load failed", "error", err)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = randutil.TimeSeed()
	}

	// Each connection gets its own RNG stream so matches never share decks.
	var matches atomic.Int64
	newGame := func() *game.Game {
		return game.NewGame(cfg.Rules(), randutil.New(seed+matches.Add(1)))
	}
	newAgent := func() *bot.Agent {
		a := bot.NewAgent(table, strength, randutil.New(seed-matches.Add(1)))
		a.SetHyperparameters(cfg.Agent.Alpha, cfg.Agent.Gamma, cfg.Agent.Epsilon)
		return a
	}

	s := server.New(CLI.Listen, newGame, newAgent, logger)
	if err := s.ListenAndServe(); err != nil {
		logger.Fatal("server failed", "error", err)
	}
	kctx.Exit(0)
}
