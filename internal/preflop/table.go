package preflop

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/lox/limit-holdem/internal/fileutil"
)

const tableVersion = 1

// Table maps each of the 169 starting-hand classes to its estimated win
// probability against a single random opponent. Tables are generated offline
// and loaded read-only at play time.
type Table struct {
	Version     int                `json:"version"`
	Trials      int                `json:"trials_per_class"`
	GeneratedAt time.Time          `json:"generated_at"`
	Strength    map[string]float64 `json:"strength"`
}

// Lookup returns the win probability for a class. Missing classes report
// ok=false; callers treat those as average strength.
func (t *Table) Lookup(class string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	p, ok := t.Strength[class]
	return p, ok
}

// StrengthOr returns the class strength, or the fallback when unknown
func (t *Table) StrengthOr(class string, fallback float64) float64 {
	if p, ok := t.Lookup(class); ok {
		return p
	}
	return fallback
}

// Load reads a table from disk
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading preflop table: %w", err)
	}
	var t Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing preflop table %s: %w", path, err)
	}
	if t.Version != tableVersion {
		return nil, fmt.Errorf("preflop table %s: unsupported version %d", path, t.Version)
	}
	return &t, nil
}

// Save writes the table to disk atomically
func (t *Table) Save(path string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding preflop table: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing preflop table: %w", err)
	}
	return nil
}
