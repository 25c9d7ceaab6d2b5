// Package config loads the game configuration from an HCL file: table
// stakes, agent hyperparameters and artifact paths.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/limit-holdem/internal/game"
)

// Config is the complete game configuration
type Config struct {
	Table TableSettings
	Agent AgentSettings
	Paths PathSettings
}

// fileConfig is the HCL shape. Blocks are pointers so a file may carry any
// subset of them; a missing block keeps its defaults.
type fileConfig struct {
	Table *TableSettings `hcl:"table,block"`
	Agent *AgentSettings `hcl:"agent,block"`
	Paths *PathSettings  `hcl:"paths,block"`
}

// TableSettings contains the fixed-limit stakes
type TableSettings struct {
	SmallBlind    int `hcl:"small_blind,optional"`
	BigBlind      int `hcl:"big_blind,optional"`
	SmallBet      int `hcl:"small_bet,optional"`
	BigBet        int `hcl:"big_bet,optional"`
	MaxRaises     int `hcl:"max_raises,optional"`
	StartingStack int `hcl:"starting_stack,optional"`
}

// AgentSettings contains the learning hyperparameters
type AgentSettings struct {
	Alpha   float64 `hcl:"alpha,optional"`
	Gamma   float64 `hcl:"gamma,optional"`
	Epsilon float64 `hcl:"epsilon,optional"`
}

// PathSettings locates the persisted artifacts
type PathSettings struct {
	QTable       string `hcl:"qtable,optional"`
	PreflopTable string `hcl:"preflop_table,optional"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Table: TableSettings{
			SmallBlind:    5,
			BigBlind:      10,
			SmallBet:      10,
			BigBet:        20,
			MaxRaises:     3,
			StartingStack: 200,
		},
		Agent: AgentSettings{
			Alpha:   0.1,
			Gamma:   0.9,
			Epsilon: 0.1,
		},
		Paths: PathSettings{
			QTable:       "q_strategy.json",
			PreflopTable: "preflop_strength.json",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; blocks or values absent from the file fall back to their
// defaults too.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	def := Default()
	cfg := *def
	if fc.Table != nil {
		cfg.Table = *fc.Table
	}
	if fc.Agent != nil {
		cfg.Agent = *fc.Agent
	}
	if fc.Paths != nil {
		cfg.Paths = *fc.Paths
	}
	if cfg.Table.SmallBlind == 0 {
		cfg.Table.SmallBlind = def.Table.SmallBlind
	}
	if cfg.Table.BigBlind == 0 {
		cfg.Table.BigBlind = def.Table.BigBlind
	}
	if cfg.Table.SmallBet == 0 {
		cfg.Table.SmallBet = def.Table.SmallBet
	}
	if cfg.Table.BigBet == 0 {
		cfg.Table.BigBet = 2 * cfg.Table.SmallBet
	}
	if cfg.Table.MaxRaises == 0 {
		cfg.Table.MaxRaises = def.Table.MaxRaises
	}
	if cfg.Table.StartingStack == 0 {
		cfg.Table.StartingStack = def.Table.StartingStack
	}
	if cfg.Agent.Alpha == 0 {
		cfg.Agent.Alpha = def.Agent.Alpha
	}
	if cfg.Agent.Gamma == 0 {
		cfg.Agent.Gamma = def.Agent.Gamma
	}
	if cfg.Agent.Epsilon == 0 {
		cfg.Agent.Epsilon = def.Agent.Epsilon
	}
	if cfg.Paths.QTable == "" {
		cfg.Paths.QTable = def.Paths.QTable
	}
	if cfg.Paths.PreflopTable == "" {
		cfg.Paths.PreflopTable = def.Paths.PreflopTable
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Rules converts the table settings to engine rules
func (c *Config) Rules() game.Rules {
	return game.Rules{
		SmallBlind:    c.Table.SmallBlind,
		BigBlind:      c.Table.BigBlind,
		SmallBet:      c.Table.SmallBet,
		BigBet:        c.Table.BigBet,
		MaxRaises:     c.Table.MaxRaises,
		StartingStack: c.Table.StartingStack,
	}
}

// Validate checks stakes and hyperparameters for consistency
func (c *Config) Validate() error {
	if err := c.Rules().Validate(); err != nil {
		return fmt.Errorf("table config: %w", err)
	}
	if c.Agent.Alpha <= 0 || c.Agent.Alpha > 1 {
		return fmt.Errorf("agent config: alpha must be in (0,1], got %v", c.Agent.Alpha)
	}
	if c.Agent.Gamma < 0 || c.Agent.Gamma > 1 {
		return fmt.Errorf("agent config: gamma must be in [0,1], got %v", c.Agent.Gamma)
	}
	if c.Agent.Epsilon < 0 || c.Agent.Epsilon > 1 {
		return fmt.Errorf("agent config: epsilon must be in [0,1], got %v", c.Agent.Epsilon)
	}
	return nil
}
