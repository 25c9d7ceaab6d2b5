package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/limit-holdem/internal/bot"
	"github.com/lox/limit-holdem/internal/config"
	"github.com/lox/limit-holdem/internal/game"
	"github.com/lox/limit-holdem/internal/preflop"
	"github.com/lox/limit-holdem/internal/randutil"
	"github.com/lox/limit-holdem/poker"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

var CLI struct {
	Config  string `short:"c" default:"game.hcl" help:"Path to HCL configuration file"`
	Seed    int64  `short:"s" default:"0" help:"RNG seed, 0 for random"`
	Verbose bool   `short:"v" help:"Debug logging"`
}

func main() {
	kctx := kong.Parse(&CLI)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if CLI.Verbose {
		logger.SetLevel(log.DebugLevel)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Fixed-Limit Hold'em ♦ ♣ "))
	fmt.Println()

	if err := run(logger); err != nil {
		logger.Fatal("game failed", "error", err)
	}
	kctx.Exit(0)
}

func run(logger *log.Logger) error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	strength, err := preflop.Load(cfg.Paths.PreflopTable)
	if err != nil {
		logger.Warn("no preflop table, bot plays with average strength", "error", err)
		strength = &preflop.Table{}
	}
	table, err := bot.LoadQTable(cfg.Paths.QTable)
	if err != nil {
		return err
	}
	if table.HandsPlayed() == 0 {
		logger.Warn("untrained q-table, the bot will play poorly")
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = randutil.TimeSeed()
	}
	rng := randutil.New(seed)
	agent := bot.NewAgent(table, strength, rng)
	agent.SetHyperparameters(cfg.Agent.Alpha, cfg.Agent.Gamma, cfg.Agent.Epsilon)

	g := game.NewGame(cfg.Rules(), rng)
	scanner := bufio.NewScanner(os.Stdin)

	for !g.MatchOver() {
		if err := g.StartHand(); err != nil {
			return err
		}
		if err := playHand(g, agent, scanner); err != nil {
			return err
		}
		agent.Finish(float64(g.Reward(game.SeatBot)))
		printOutcome(g.Snapshot(game.SeatPlayer))

		fmt.Print("\nPress enter for the next hand, or q to quit: ")
		if !scanner.Scan() || strings.TrimSpace(scanner.Text()) == "q" {
			break
		}
	}

	final := g.Snapshot(game.SeatPlayer)
	fmt.Printf("\nFinal stacks: you %d, bot %d\n",
		final.Stacks[game.SeatPlayer], final.Stacks[game.SeatBot])
	return nil
}

func playHand(g *game.Game, agent *bot.Agent, scanner *bufio.Scanner) error {
	for {
		snap := g.Snapshot(game.SeatPlayer)
		if !snap.State.BettingState() {
			return nil
		}

		if snap.ToAct == game.SeatBot {
			action := agent.Act(g.Snapshot(game.SeatBot))
			if _, err := g.Apply(game.SeatBot, action, 0); err != nil {
				return err
			}
			fmt.Printf("Bot %ss\n", action)
			continue
		}

		printSnapshot(snap)
		action, err := promptAction(snap, scanner)
		if err != nil {
			return err
		}
		if _, err := g.Apply(game.SeatPlayer, action, 0); err != nil {
			fmt.Printf("  %v\n", err)
		}
	}
}

// promptAction reads actions from stdin until one parses. Legality is the
// engine's call; a rejected action just re-prompts.
func promptAction(snap game.Snapshot, scanner *bufio.Scanner) (game.Action, error) {
	var names []string
	for _, a := range snap.LegalActions {
		names = append(names, a.String())
	}
	for {
		fmt.Printf("Your action (%s): ", strings.Join(names, "/"))
		if !scanner.Scan() {
			return 0, fmt.Errorf("input closed")
		}
		action, err := game.ParseAction(strings.TrimSpace(strings.ToLower(scanner.Text())))
		if err != nil {
			fmt.Printf("  %v\n", err)
			continue
		}
		return action, nil
	}
}

func printSnapshot(snap game.Snapshot) {
	fmt.Printf("\n--- hand %d, %s ---\n", snap.HandNum, snap.Street)
	fmt.Printf("Your cards: %s", cards(snap.Hole))
	if len(snap.Board) > 0 {
		fmt.Printf("   Board: %s", cards(snap.Board))
	}
	fmt.Println()
	fmt.Printf("Pot %d   You %d   Bot %d", snap.Pot,
		snap.Stacks[game.SeatPlayer], snap.Stacks[game.SeatBot])
	if snap.CallCost > 0 {
		fmt.Printf("   To call: %d", snap.CallCost)
	}
	fmt.Println()
}

func printOutcome(snap game.Snapshot) {
	if snap.Outcome == nil {
		return
	}
	if snap.OpponentHole != nil {
		fmt.Printf("Bot shows %s, board %s\n", cards(snap.OpponentHole), cards(snap.Board))
	}
	switch {
	case snap.Outcome.Split:
		fmt.Printf("Split pot with %s\n", snap.Outcome.Category)
	case snap.Outcome.ByFold:
		fmt.Printf("%s wins, opponent folded\n", seatName(snap.Outcome.Winner))
	default:
		fmt.Printf("%s wins with %s\n", seatName(snap.Outcome.Winner), snap.Outcome.Category)
	}
}

func seatName(s game.Seat) string {
	if s == game.SeatPlayer {
		return "You"
	}
	return "Bot"
}

func cards(cs []poker.Card) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
