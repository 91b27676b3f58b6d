package grid

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/interp"

	"github.com/twoparton/epagrid/epa"
)

var (
	// ErrNotInitialised is returned by queries issued before Initialise.
	ErrNotInitialised = errors.New("grid: table queried before initialisation")
	// ErrInitialised is returned by insertions issued after Initialise.
	ErrInitialised = errors.New("grid: table already initialised")
)

// Table is a one-input, one-output piecewise-linear interpolation table.
//
// Samples are inserted in any order, then Initialise sorts them and freezes the
// table. Outside the sampled range, lookups are clamped to the nearest boundary
// value. Once initialised, the table is immutable: Eval takes no lock and does
// not allocate, so it can be shared by concurrent readers.
type Table struct {
	samples []Value
	pl      interp.PiecewiseLinear
	lo, hi  float64
	ready   bool
}

// NewTable returns an empty table with room for capacity samples.
func NewTable(capacity int) *Table {
	return &Table{samples: make([]Value, 0, capacity)}
}

// Insert adds the sample (x, y).
func (t *Table) Insert(x, y float64) error {
	if t.ready {
		return ErrInitialised
	}
	t.samples = append(t.samples, Value{X: x, Y: y})
	return nil
}

// Initialise sorts the samples by abscissa and builds the lookup structure.
// It needs at least two samples with finite, pairwise distinct abscissas.
func (t *Table) Initialise() error {
	if t.ready {
		return ErrInitialised
	}
	if len(t.samples) < 2 {
		return fmt.Errorf("%w: interpolation needs at least 2 samples, got %d", epa.ErrValidation, len(t.samples))
	}
	slices.SortStableFunc(t.samples, func(a, b Value) int { return cmp.Compare(a.X, b.X) })
	xs := make([]float64, len(t.samples))
	ys := make([]float64, len(t.samples))
	for i, s := range t.samples {
		if math.IsNaN(s.X) || math.IsInf(s.X, 0) {
			return fmt.Errorf("%w: non-finite abscissa at sample %d", epa.ErrValidation, i)
		}
		if i > 0 && s.X == xs[i-1] {
			return fmt.Errorf("%w: duplicate abscissa %g", epa.ErrValidation, s.X)
		}
		xs[i], ys[i] = s.X, s.Y
	}
	if err := t.pl.Fit(xs, ys); err != nil {
		return fmt.Errorf("%w: fitting interpolation table: %v", epa.ErrValidation, err)
	}
	t.lo, t.hi = xs[0], xs[len(xs)-1]
	t.ready = true
	return nil
}

// Initialised reports whether the table accepts queries.
func (t *Table) Initialised() bool { return t.ready }

// Eval returns the interpolated value at x.
func (t *Table) Eval(x float64) (float64, error) {
	if !t.ready {
		return 0, ErrNotInitialised
	}
	return t.pl.Predict(x), nil
}

// eval is Eval without the initialisation check, for owners that only expose
// initialised tables.
func (t *Table) eval(x float64) float64 {
	return t.pl.Predict(x)
}

// Range returns the lowest and highest sampled abscissas.
func (t *Table) Range() epa.Range { return epa.Range{Lo: t.lo, Hi: t.hi} }

// Len returns the number of samples.
func (t *Table) Len() int { return len(t.samples) }

// Samples returns a copy of the samples, sorted once the table is initialised.
func (t *Table) Samples() []Value { return slices.Clone(t.samples) }
