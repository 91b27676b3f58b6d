// Package fluxes provides two-photon flux models computed from the beam
// kinematics. They are typically sampled once into a grid (see epa/grid)
// rather than evaluated per event.
//
// register.go wires the models into the epa flux registry; importing this
// package makes "gmgm:epa" and "gmgm:lp" available to epa.NewFlux.
package fluxes

import (
	"github.com/sirupsen/logrus"

	"github.com/twoparton/epagrid/epa"
)

const (
	// PointLikeName is the registry key of the point-like × point-like luminosity.
	PointLikeName = "gmgm:epa"
	// LeptonProtonName is the registry key of the lepton × elastic proton luminosity.
	LeptonProtonName = "gmgm:lp"

	electronPDG = 11
	protonPDG   = 2212
)

func init() {
	epa.RegisterFlux(PointLikeName, func(m epa.Module) (epa.Flux, error) { return NewPointLike(m) })
	epa.RegisterFlux(LeptonProtonName, func(m epa.Module) (epa.Flux, error) { return NewLeptonProton(m) })
}

// NewPointLike builds the luminosity of two point-like charged beams.
// Parameters: eb1, eb2, q2max1, q2max2, pdg1 and pdg2 (default 11),
// integrationPoints.
func NewPointLike(m epa.Module) (*TwoPhoton, error) {
	r := m.Reader()
	pdg1, pdg2 := r.Int("pdg1", electronPDG), r.Int("pdg2", electronPDG)
	points := r.Int("integrationPoints", DefaultIntegrationPoints)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return newTwoPhoton(m, pdg1, pdg2, points, func(b epa.Beams, m1, m2 float64) (Spectrum, Spectrum) {
		return PointLike(m1, b.Q2Max1), PointLike(m2, b.Q2Max2)
	})
}

// NewLeptonProton builds the luminosity of a point-like lepton beam (beam 1,
// pdg id "lepton", default 11) colliding with an elastic proton (beam 2).
// The proton spectrum is integrated over all virtualities, so q2max2 is unused.
func NewLeptonProton(m epa.Module) (*TwoPhoton, error) {
	r := m.Reader()
	lepton := r.Int("lepton", electronPDG)
	points := r.Int("integrationPoints", DefaultIntegrationPoints)
	if err := r.Err(); err != nil {
		return nil, err
	}
	return newTwoPhoton(m, lepton, protonPDG, points, func(b epa.Beams, m1, m2 float64) (Spectrum, Spectrum) {
		return PointLike(m1, b.Q2Max1), ElasticProton(m2)
	})
}

func newTwoPhoton(m epa.Module, pdg1, pdg2, points int, spectra func(b epa.Beams, m1, m2 float64) (Spectrum, Spectrum)) (*TwoPhoton, error) {
	b, err := epa.BeamsFromModule(m)
	if err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	m1, err := epa.Mass(pdg1)
	if err != nil {
		return nil, err
	}
	m2, err := epa.Mass(pdg2)
	if err != nil {
		return nil, err
	}
	sqrtS, err := CentreOfMassEnergy(b.Eb1, m1, b.Eb2, m2)
	if err != nil {
		return nil, err
	}
	f1, f2 := spectra(b, m1, m2)
	l, err := NewTwoPhoton(sqrtS*sqrtS, f1, f2, points)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Two-photon flux %q between beams %d (%g GeV) and %d (%g GeV), sqrt(s) = %g GeV.",
		m.Name, pdg1, b.Eb1, pdg2, b.Eb2, sqrtS)
	return l, nil
}
