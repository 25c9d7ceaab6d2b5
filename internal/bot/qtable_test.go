package bot

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQTableUnseenStatesReadZero(t *testing.T) {
	q := NewQTable()
	assert.Equal(t, 0.0, q.Get("flop/s3/o1/first", "raise"))
	assert.Equal(t, 0.0, q.MaxValue("flop/s3/o1/first"))
}

func TestQTableSetGetMax(t *testing.T) {
	q := NewQTable()
	q.Set("flop/s3/o1/first", "raise", 2.5)
	q.Set("flop/s3/o1/first", "call", 4.0)
	q.Set("turn/s1/o0/second", "fold", -1.0)

	assert.Equal(t, 2.5, q.Get("flop/s3/o1/first", "raise"))
	assert.Equal(t, 4.0, q.MaxValue("flop/s3/o1/first"))
	assert.Equal(t, 2, q.States())

	// A state whose values are all negative still maxes at zero, matching
	// the optimistic value of an untried action.
	assert.Equal(t, 0.0, q.MaxValue("turn/s1/o0/second"))
}

func TestQTableRoundTrip(t *testing.T) {
	q := NewQTable()
	q.Set("preflop/s4/o1/first", "raise", 3.25)
	q.Set("river/s0/o3/second", "fold", -0.5)
	q.RecordHand()
	q.RecordHand()

	path := filepath.Join(t.TempDir(), "qtable.json")
	require.NoError(t, q.Save(path))

	loaded, err := LoadQTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3.25, loaded.Get("preflop/s4/o1/first", "raise"))
	assert.Equal(t, -0.5, loaded.Get("river/s0/o3/second", "fold"))
	assert.Equal(t, 2, loaded.HandsPlayed())
}

func TestLoadQTableMissingFileIsEmpty(t *testing.T) {
	q, err := LoadQTable(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, q.States())
	assert.Equal(t, 0, q.HandsPlayed())
}

func TestQTableConcurrentAccess(t *testing.T) {
	q := NewQTable()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				q.Set("flop/s3/o1/first", "raise", q.Get("flop/s3/o1/first", "raise")+1)
				q.RecordHand()
				_ = q.MaxValue("flop/s3/o1/first")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 8000, q.HandsPlayed())
}
