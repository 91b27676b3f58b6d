package grid

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/twoparton/epagrid/epa"
)

// Defaults applied when building a grid.
var (
	DefaultRange     = epa.Range{Lo: 1e-9, Hi: 1e3}
	DefaultNumPoints = 500
)

// BuildConfig describes how a grid is sampled.
type BuildConfig struct {
	// Modelling names the flux model to sample, with its parameters.
	Modelling epa.Module
	// Range bounds the sampled invariant masses, endpoints included.
	Range epa.Range
	// NumPoints is the number of samples.
	NumPoints int
	// LogSpacing distributes samples log-uniformly instead of linearly.
	LogSpacing bool
	// Workers bounds the number of concurrent flux evaluations.
	Workers int
}

// BuildConfigFromModule reads the build settings of a grid module. The sampled
// sub-model inherits every parameter of m it does not set itself, so it sees the
// same run kinematics as the grid.
func BuildConfigFromModule(m epa.Module) (BuildConfig, error) {
	r := m.Reader()
	cfg := BuildConfig{
		Modelling:  r.Sub("modelling"),
		Range:      r.Range("wRange", DefaultRange),
		NumPoints:  r.Int("numPoints", DefaultNumPoints),
		LogSpacing: r.Bool("logW", true),
		Workers:    r.Int("workers", runtime.GOMAXPROCS(0)),
	}
	if err := r.Err(); err != nil {
		return BuildConfig{}, err
	}
	if cfg.Modelling.Name != "" {
		cfg.Modelling = cfg.Modelling.Inherit(m)
	}
	return cfg, nil
}

// Validate checks the configuration before any model is built or file touched.
func (c BuildConfig) Validate() error {
	switch c.Modelling.Name {
	case "":
		return fmt.Errorf("%w: a parton flux modelling should be provided using the 'modelling' parameter of the grid", epa.ErrConfiguration)
	case Name:
		return fmt.Errorf("%w: cannot build a grid from a grid interpolator", epa.ErrConfiguration)
	}
	if c.NumPoints < 2 {
		return fmt.Errorf("%w: a grid needs at least 2 points, got %d", epa.ErrConfiguration, c.NumPoints)
	}
	if !c.Range.Valid() {
		return fmt.Errorf("%w: invalid sampling range %v", epa.ErrConfiguration, c.Range)
	}
	if c.LogSpacing && c.Range.Lo <= 0 {
		return fmt.Errorf("%w: logarithmic sampling needs a positive lower bound, got %v", epa.ErrConfiguration, c.Range)
	}
	return nil
}

// Abscissas returns the NumPoints sampled invariant masses, in increasing order.
func (c BuildConfig) Abscissas() []float64 {
	ws := make([]float64, c.NumPoints)
	if c.LogSpacing {
		return floats.LogSpan(ws, c.Range.Lo, c.Range.Hi)
	}
	return floats.Span(ws, c.Range.Lo, c.Range.Hi)
}

// Build samples the configured flux model and writes header followed by the
// samples to path, replacing any existing file. The header magic and version are
// set here; its kinematics fields are written as given.
//
// The configuration is validated before the model is built, so a request to
// build a grid from a grid fails without touching the filesystem.
func Build(path string, cfg BuildConfig, header Header) (err error) {
	start := time.Now()
	defer func() {
		gridBuildsTotal.WithLabelValues(outcome(err)).Inc()
		if err == nil {
			gridBuildDuration.Observe(time.Since(start).Seconds())
		}
	}()

	if err := cfg.Validate(); err != nil {
		return err
	}
	model, err := epa.NewFlux(cfg.Modelling)
	if err != nil {
		return fmt.Errorf("building grid modelling: %w", err)
	}
	p1, p2 := model.Partons()
	if model.Fragmenting() != header.Fragmenting || int32(p1) != header.Partons[0] || int32(p2) != header.Partons[1] {
		logrus.Warnf("Flux modelling %q emits partons (%d, %d) with fragmenting=%t, grid header records (%d, %d) with fragmenting=%t",
			cfg.Modelling.Name, p1, p2, model.Fragmenting(), header.Partons[0], header.Partons[1], header.Fragmenting)
	}

	values := sample(model, cfg.Abscissas(), cfg.Workers)

	header.Magic = Magic
	header.Version = Version
	if err := writeFile(path, header, values); err != nil {
		return err
	}
	logrus.Infof("Flux grid with %d points over %v (log=%t) written to %q in %s",
		len(values), cfg.Range, cfg.LogSpacing, path, time.Since(start))
	return nil
}

// sample evaluates model at every abscissa. Evaluations run concurrently, at most
// workers at a time; results keep the abscissa order.
func sample(model epa.Flux, ws []float64, workers int) []Value {
	values := make([]Value, len(ws))
	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, w := range ws {
		g.Go(func() error {
			values[i] = Value{X: w, Y: model.Flux(w)}
			return nil
		})
	}
	_ = g.Wait() // workers never fail
	for _, v := range values {
		logrus.Debugf("Adding a flux value f(%g) = %g.", v.X, v.Y)
		if math.IsNaN(v.Y) || math.IsInf(v.Y, 0) {
			logrus.Warnf("Non-finite flux value f(%g) = %g written to grid.", v.X, v.Y)
		}
	}
	return values
}

// writeFile writes the grid to a temporary file next to path, then renames it
// into place, so readers never see a partially written grid.
func writeFile(path string, header Header, values []Value) error {
	raw, err := header.MarshalBinary()
	if err != nil {
		return fmt.Errorf("%w: encoding grid header: %v", epa.ErrIO, err)
	}
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating grid file %q: %v", epa.ErrIO, path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()
	_ = tmp.Chmod(0644)

	if err := encode(tmp, raw, values); err != nil {
		return fmt.Errorf("%w: writing grid file %q: %v", epa.ErrIO, path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("%w: syncing grid file %q: %v", epa.ErrIO, path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: closing grid file %q: %v", epa.ErrIO, path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: moving grid file into %q: %v", epa.ErrIO, path, err)
	}
	return nil
}

func encode(w io.Writer, header []byte, values []Value) error {
	bw := bufio.NewWriterSize(w, 64*1024)
	if _, err := bw.Write(header); err != nil {
		return err
	}
	rec := make([]byte, 0, ValueSize)
	for _, v := range values {
		if _, err := bw.Write(appendValue(rec[:0], v)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
