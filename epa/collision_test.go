package epa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twoparton/epagrid/epa"
)

var testBeams = epa.Beams{Eb1: 50, Eb2: 7000, Q2Max1: 1e5, Q2Max2: 10}

func TestCollision_WeightIsProduct(t *testing.T) {
	c, err := epa.NewCollision(testBeams,
		epa.NewModule("test:constant").Set("value", 3.),
		epa.NewModule("test:constant").Set("value", 2.).Set("threshold", 20.))
	require.NoError(t, err)

	assert.Equal(t, 6., c.Weight(50))
	assert.Equal(t, 0., c.Weight(10), "below threshold the matrix element vanishes")
}

func TestCollision_CrossSectionOfConstant(t *testing.T) {
	c, err := epa.NewCollision(testBeams,
		epa.NewModule("test:constant").Set("value", 0.5),
		epa.NewModule("test:constant").Set("value", 4.))
	require.NoError(t, err)

	xsec, err := c.CrossSection(epa.Range{Lo: 10, Hi: 110}, 16)
	require.NoError(t, err)
	assert.InDelta(t, 200., xsec, 1e-9)
}

func TestCollision_CrossSectionRejectsBadInput(t *testing.T) {
	c, err := epa.NewCollision(testBeams, epa.NewModule("test:constant"), epa.NewModule("test:constant"))
	require.NoError(t, err)

	_, err = c.CrossSection(epa.Range{Lo: 10, Hi: 10}, 16)
	assert.ErrorIs(t, err, epa.ErrConfiguration)
	_, err = c.CrossSection(epa.Range{Lo: 10, Hi: 20}, 0)
	assert.ErrorIs(t, err, epa.ErrConfiguration)
}

func TestNewCollision_InvalidBeams(t *testing.T) {
	_, err := epa.NewCollision(epa.Beams{Eb1: 50}, epa.NewModule("test:constant"), epa.NewModule("test:constant"))
	assert.ErrorIs(t, err, epa.ErrConfiguration)
}

func TestNewCollision_UnknownProcess(t *testing.T) {
	_, err := epa.NewCollision(testBeams, epa.NewModule("test:constant"), epa.NewModule("nope"))
	assert.ErrorIs(t, err, epa.ErrConfiguration)
}

func TestBeams_ApplyOverridesKinematics(t *testing.T) {
	m := testBeams.Apply(epa.NewModule("grid").Set("eb1", 1.))
	got, err := epa.BeamsFromModule(m)
	require.NoError(t, err)
	assert.Equal(t, testBeams, got)
}
