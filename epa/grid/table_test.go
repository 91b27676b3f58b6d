package grid

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoparton/epagrid/epa"
)

func TestTable_QueryBeforeInitialise(t *testing.T) {
	tab := NewTable(2)
	require.NoError(t, tab.Insert(1, 1))
	_, err := tab.Eval(1)
	assert.ErrorIs(t, err, ErrNotInitialised)
	assert.False(t, tab.Initialised())
}

func TestTable_InsertAfterInitialise(t *testing.T) {
	tab := NewTable(2)
	require.NoError(t, tab.Insert(1, 1))
	require.NoError(t, tab.Insert(2, 2))
	require.NoError(t, tab.Initialise())
	assert.ErrorIs(t, tab.Insert(3, 3), ErrInitialised)
	assert.ErrorIs(t, tab.Initialise(), ErrInitialised)
}

func TestTable_InterpolatesAndClamps(t *testing.T) {
	tab := NewTable(3)
	// Inserted out of order on purpose.
	require.NoError(t, tab.Insert(3, 30))
	require.NoError(t, tab.Insert(1, 10))
	require.NoError(t, tab.Insert(2, 40))
	require.NoError(t, tab.Initialise())

	tests := []struct {
		name string
		x    float64
		want float64
	}{
		{"node", 2, 40},
		{"first segment midpoint", 1.5, 25},
		{"second segment", 2.25, 37.5},
		{"below range clamps", 0, 10},
		{"above range clamps", 100, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tab.Eval(tt.x)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
	assert.Equal(t, epa.Range{Lo: 1, Hi: 3}, tab.Range())
	assert.Equal(t, 3, tab.Len())
	assert.Equal(t, []Value{{1, 10}, {2, 40}, {3, 30}}, tab.Samples())
}

func TestTable_RejectsBadSamples(t *testing.T) {
	tests := []struct {
		name    string
		samples []Value
	}{
		{"empty", nil},
		{"single sample", []Value{{1, 1}}},
		{"duplicate abscissa", []Value{{1, 1}, {2, 2}, {1, 3}}},
		{"NaN abscissa", []Value{{1, 1}, {math.NaN(), 2}}},
		{"infinite abscissa", []Value{{1, 1}, {math.Inf(1), 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := NewTable(len(tt.samples))
			for _, s := range tt.samples {
				require.NoError(t, tab.Insert(s.X, s.Y))
			}
			assert.ErrorIs(t, tab.Initialise(), epa.ErrValidation)
			assert.False(t, tab.Initialised())
		})
	}
}

func TestTable_ConcurrentReaders(t *testing.T) {
	tab := NewTable(101)
	for i := 0; i <= 100; i++ {
		require.NoError(t, tab.Insert(float64(i), 2*float64(i)))
	}
	require.NoError(t, tab.Initialise())

	var wg sync.WaitGroup
	errs := make([]float64, 8)
	for g := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				x := float64(i%100) + 0.5
				errs[g] = max(errs[g], math.Abs(tab.eval(x)-2*x))
			}
		}()
	}
	wg.Wait()
	for _, e := range errs {
		assert.Less(t, e, 1e-12)
	}
}
