package main

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/limit-holdem/internal/preflop"
)

var CLI struct {
	Trials  int    `short:"t" default:"10000" help:"Monte Carlo trials per hand class"`
	Output  string `short:"o" default:"preflop_strength.json" help:"Output path for the strength table"`
	Seed    int64  `short:"s" default:"1" help:"RNG seed for reproducible tables"`
	Workers int    `short:"w" default:"8" help:"Concurrent classes"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
	})

	logger.Info("generating preflop strength table",
		"trials_per_class", CLI.Trials, "seed", CLI.Seed, "workers", CLI.Workers)
	start := time.Now()

	table, err := preflop.Generate(context.Background(), preflop.GenerateConfig{
		TrialsPerClass: CLI.Trials,
		Seed:           CLI.Seed,
		Workers:        CLI.Workers,
	})
	if err != nil {
		logger.Fatal("generation failed", "error", err)
	}

	if err := table.Save(CLI.Output); err != nil {
		logger.Fatal("save failed", "error", err)
	}

	aa, _ := table.Lookup("AA")
	logger.Info("table written",
		"path", CLI.Output,
		"classes", len(table.Strength),
		"aa_equity", aa,
		"elapsed", time.Since(start).Round(time.Millisecond))
	ctx.Exit(0)
}
