package grid

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoparton/epagrid/epa"
)

// buildTestGrid writes an 11-point grid of 2w+1 over [1, 11] and returns its path.
func buildTestGrid(t *testing.T, header Header) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.grid")
	require.NoError(t, Build(path, testBuildConfig(), header))
	return path
}

func TestLoad_RoundTripIsBitExact(t *testing.T) {
	path := buildTestGrid(t, testHeader())

	table, header, err := Load(path, testHeader(), true)
	require.NoError(t, err)
	assert.True(t, header.Compatible(testHeader()))
	assert.Equal(t, Version, header.Version)

	want := make([]Value, 0, 11)
	for _, w := range testBuildConfig().Abscissas() {
		want = append(want, Value{X: w, Y: 2*w + 1})
	}
	if diff := cmp.Diff(want, table.Samples()); diff != "" {
		t.Errorf("loaded samples mismatch (-want +got):\n%s", diff)
	}
	for _, s := range want {
		got, err := table.Eval(s.X)
		require.NoError(t, err)
		assert.Equal(t, s.Y, got, "sampled point w=%g", s.X)
	}
	got, err := table.Eval(4.5)
	require.NoError(t, err)
	assert.InDelta(t, 10., got, 1e-12)
}

func TestLoad_HeaderMismatch(t *testing.T) {
	path := buildTestGrid(t, testHeader())
	expected := testHeader()
	expected.Eb2 = 6500

	_, _, err := Load(path, expected, true)
	var mismatch *HeaderMismatchError
	require.True(t, errors.As(err, &mismatch), "got %v", err)
	assert.ErrorIs(t, err, epa.ErrValidation)
	assert.Equal(t, 7000., mismatch.Retrieved.Eb2)
	assert.Equal(t, 6500., mismatch.Expected.Eb2)

	_, header, err := Load(path, expected, false)
	require.NoError(t, err, "the kinematics check can be disabled")
	assert.Equal(t, 7000., header.Eb2)
}

func TestLoad_BadMagicAlwaysFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("not a grid file "), 8), 0o644))

	for _, check := range []bool{true, false} {
		_, _, err := Load(path, testHeader(), check)
		var mismatch *HeaderMismatchError
		require.True(t, errors.As(err, &mismatch), "checkHeader=%t: got %v", check, err)
		assert.Contains(t, err.Error(), "magic number: 0x")
	}
}

func TestLoad_TruncatedRecord(t *testing.T) {
	path := buildTestGrid(t, testHeader())
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	_, err = f.Write([]byte{1, 2, 3, 4, 5})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, _, err = Load(path, testHeader(), true)
	require.ErrorIs(t, err, epa.ErrValidation)
	var mismatch *HeaderMismatchError
	assert.False(t, errors.As(err, &mismatch))
	assert.Contains(t, err.Error(), "truncated")
}

func TestLoad_TooFewRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.grid")
	h := testHeader()
	raw, err := h.MarshalBinary()
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, appendValue(raw, Value{1, 1}), 0o644))

	_, _, err = Load(path, h, true)
	assert.ErrorIs(t, err, epa.ErrValidation)
}

func TestLoad_ShortFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.grid")
	require.NoError(t, os.WriteFile(path, []byte{0x3f, 0xb3, 0xad, 0xde}, 0o644))

	_, _, err := Load(path, testHeader(), true)
	assert.ErrorIs(t, err, epa.ErrValidation)
}

func TestLoad_MissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.grid"), testHeader(), true)
	require.ErrorIs(t, err, epa.ErrIO)
	assert.Contains(t, err.Error(), "failed to load grid file")
}

func TestLoad_CountsOutcomes(t *testing.T) {
	path := buildTestGrid(t, testHeader())
	okBefore := testutil.ToFloat64(gridLoadsTotal.WithLabelValues(outcomeOK))
	ioBefore := testutil.ToFloat64(gridLoadsTotal.WithLabelValues(outcomeIO))

	_, _, err := Load(path, testHeader(), true)
	require.NoError(t, err)
	_, _, err = Load(path+".missing", testHeader(), true)
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(gridLoadsTotal.WithLabelValues(outcomeOK)))
	assert.Equal(t, ioBefore+1, testutil.ToFloat64(gridLoadsTotal.WithLabelValues(outcomeIO)))
}

func TestReadHeader(t *testing.T) {
	path := buildTestGrid(t, testHeader())
	h, n, err := ReadHeader(path)
	require.NoError(t, err)
	assert.Equal(t, 11, n)
	assert.True(t, h.Compatible(testHeader()))
}
