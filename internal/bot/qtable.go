package bot

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/lox/limit-holdem/internal/fileutil"
)

const qtableVersion = 1

// QTable stores learned action values keyed by the StateKey string form.
// It is safe for concurrent use: training workers share one table and the
// mutex covers every read and write.
type QTable struct {
	mu          sync.Mutex
	values      map[string]map[string]float64
	handsPlayed int
}

// qtableFile is the on-disk JSON shape
type qtableFile struct {
	Version     int                           `json:"version"`
	HandsPlayed int                           `json:"hands_played"`
	Values      map[string]map[string]float64 `json:"values"`
}

// NewQTable returns an empty table
func NewQTable() *QTable {
	return &QTable{values: make(map[string]map[string]float64)}
}

// Get returns the stored value for a state/action pair. Unseen pairs read
// as zero.
func (q *QTable) Get(state, action string) float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.values[state][action]
}

// Set stores a value for a state/action pair
func (q *QTable) Set(state, action string, value float64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	row, ok := q.values[state]
	if !ok {
		row = make(map[string]float64)
		q.values[state] = row
	}
	row[action] = value
}

// MaxValue returns the highest stored value for a state, zero for unseen
// states.
func (q *QTable) MaxValue(state string) float64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	var best float64
	for _, v := range q.values[state] {
		if v > best {
			best = v
		}
	}
	return best
}

// HandsPlayed returns the number of completed hands learned from
func (q *QTable) HandsPlayed() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.handsPlayed
}

// RecordHand bumps the hands-played counter
func (q *QTable) RecordHand() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handsPlayed++
}

// States returns the number of distinct states seen
func (q *QTable) States() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.values)
}

// Save writes the table to disk atomically
func (q *QTable) Save(path string) error {
	q.mu.Lock()
	f := qtableFile{Version: qtableVersion, HandsPlayed: q.handsPlayed, Values: q.values}
	data, err := json.MarshalIndent(f, "", "  ")
	q.mu.Unlock()
	if err != nil {
		return fmt.Errorf("encoding qtable: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("writing qtable: %w", err)
	}
	return nil
}

// LoadQTable reads a table from disk. A missing file returns an empty
// table so a fresh agent can start from nothing.
func LoadQTable(path string) (*QTable, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return NewQTable(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading qtable: %w", err)
	}
	var f qtableFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing qtable %s: %w", path, err)
	}
	if f.Version != qtableVersion {
		return nil, fmt.Errorf("qtable %s: unsupported version %d", path, f.Version)
	}
	q := &QTable{values: f.Values, handsPlayed: f.HandsPlayed}
	if q.values == nil {
		q.values = make(map[string]map[string]float64)
	}
	return q, nil
}
