package grid

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoparton/epagrid/epa"
)

func linearModelling() epa.Module {
	return epa.NewModule("test:linear").Set("slope", 2.).Set("intercept", 1.)
}

func testBuildConfig() BuildConfig {
	return BuildConfig{
		Modelling: linearModelling(),
		Range:     epa.Range{Lo: 1, Hi: 11},
		NumPoints: 11,
		Workers:   4,
	}
}

func TestBuildConfig_Abscissas(t *testing.T) {
	cfg := testBuildConfig()
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, cfg.Abscissas())

	cfg.Range = epa.Range{Lo: 1e-3, Hi: 1e3}
	cfg.NumPoints = 7
	cfg.LogSpacing = true
	ws := cfg.Abscissas()
	require.Len(t, ws, 7)
	for i, want := range []float64{1e-3, 1e-2, 1e-1, 1, 1e1, 1e2, 1e3} {
		assert.InEpsilon(t, want, ws[i], 1e-12)
	}
}

func TestBuildConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BuildConfig)
	}{
		{"missing modelling", func(c *BuildConfig) { c.Modelling = epa.Module{} }},
		{"grid of a grid", func(c *BuildConfig) { c.Modelling = epa.NewModule(Name) }},
		{"single point", func(c *BuildConfig) { c.NumPoints = 1 }},
		{"empty range", func(c *BuildConfig) { c.Range = epa.Range{Lo: 5, Hi: 5} }},
		{"log spacing from zero", func(c *BuildConfig) { c.Range.Lo = 0; c.LogSpacing = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testBuildConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), epa.ErrConfiguration)
		})
	}
	assert.NoError(t, testBuildConfig().Validate())
}

func TestBuildConfigFromModule(t *testing.T) {
	m := epa.NewModule(Name).
		Set("eb1", 50.).
		Set("modelling", map[string]any{"name": "test:linear", "slope": 3}).
		Set("wRange", []any{1, 100}).
		Set("numPoints", 20).
		Set("logW", false)

	cfg, err := BuildConfigFromModule(m)
	require.NoError(t, err)
	assert.Equal(t, "test:linear", cfg.Modelling.Name)
	assert.Equal(t, 50., cfg.Modelling.Params["eb1"], "modelling inherits the grid kinematics")
	assert.False(t, cfg.Modelling.Has("modelling"))
	assert.Equal(t, epa.Range{Lo: 1, Hi: 100}, cfg.Range)
	assert.Equal(t, 20, cfg.NumPoints)
	assert.False(t, cfg.LogSpacing)

	cfg, err = BuildConfigFromModule(epa.NewModule(Name))
	require.NoError(t, err)
	assert.Equal(t, DefaultRange, cfg.Range)
	assert.Equal(t, DefaultNumPoints, cfg.NumPoints)
	assert.True(t, cfg.LogSpacing)
	assert.Positive(t, cfg.Workers)
}

func TestBuild_SelfReferenceFailsBeforeIO(t *testing.T) {
	path := filepath.Join(t.TempDir(), "self.grid")
	cfg := testBuildConfig()
	cfg.Modelling = epa.NewModule(Name)

	err := Build(path, cfg, testHeader())
	require.ErrorIs(t, err, epa.ErrConfiguration)
	assert.NoFileExists(t, path)
}

func TestBuild_UnknownModelling(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unknown.grid")
	cfg := testBuildConfig()
	cfg.Modelling = epa.NewModule("no-such-flux")

	require.ErrorIs(t, Build(path, cfg, testHeader()), epa.ErrConfiguration)
	assert.NoFileExists(t, path)
}

func TestBuild_WritesHeaderAndSamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "linear.grid")
	cfg := testBuildConfig()
	header := testHeader()
	header.Version = "ignored"
	header.Magic = 0

	require.NoError(t, Build(path, cfg, header))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, raw, HeaderSize+cfg.NumPoints*ValueSize)

	var got Header
	require.NoError(t, got.UnmarshalBinary(raw))
	assert.Equal(t, Magic, got.Magic, "magic is always set by Build")
	assert.Equal(t, Version, got.Version)
	assert.True(t, got.Compatible(header))

	var values []Value
	for off := HeaderSize; off < len(raw); off += ValueSize {
		values = append(values, decodeValue(raw[off:off+ValueSize]))
	}
	want := make([]Value, 0, cfg.NumPoints)
	for _, w := range cfg.Abscissas() {
		want = append(want, Value{X: w, Y: 2*w + 1})
	}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Errorf("grid samples mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_ReplacesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.grid")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o644))

	require.NoError(t, Build(path, testBuildConfig(), testHeader()))
	h, n, err := ReadHeader(path)
	require.NoError(t, err)
	assert.True(t, h.GoodMagic())
	assert.Equal(t, 11, n)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary file is left behind")
}

func TestBuild_CountsOutcomes(t *testing.T) {
	dir := t.TempDir()
	okBefore := testutil.ToFloat64(gridBuildsTotal.WithLabelValues(outcomeOK))
	cfgBefore := testutil.ToFloat64(gridBuildsTotal.WithLabelValues(outcomeConfig))

	require.NoError(t, Build(filepath.Join(dir, "a.grid"), testBuildConfig(), testHeader()))
	bad := testBuildConfig()
	bad.NumPoints = 0
	require.Error(t, Build(filepath.Join(dir, "b.grid"), bad, testHeader()))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(gridBuildsTotal.WithLabelValues(outcomeOK)))
	assert.Equal(t, cfgBefore+1, testutil.ToFloat64(gridBuildsTotal.WithLabelValues(outcomeConfig)))
}
