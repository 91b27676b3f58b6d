package processes

import (
	"math"

	"github.com/twoparton/epagrid/epa"
)

const (
	wPDG = 24
	zPDG = 23

	// wPairPlateau is the invariant mass (GeV) above which the W pair cross
	// section is taken at its asymptotic value.
	wPairPlateau = 300.
)

// WPair is γγ → W⁺W⁻ in its threshold and asymptotic approximations.
type WPair struct {
	central
	mw, invMw2 float64
}

func NewWPair(m epa.Module) (*WPair, error) {
	r := m.Reader()
	c := readCentral(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	mw, err := epa.Mass(wPDG)
	if err != nil {
		return nil, err
	}
	return &WPair{central: c, mw: mw, invMw2: 1 / (mw * mw)}, nil
}

func (*WPair) Description() string { return "γγ → W⁺W⁻" }

func (p *WPair) MatrixElement(w float64) float64 {
	if w <= 2*p.mw {
		return 0
	}
	norm := 4 * math.Pi * epa.GeVm2ToPb * epa.AlphaEM * epa.AlphaEM * p.invMw2
	if w > wPairPlateau {
		return 2 * norm
	}
	return 19. / 8 * norm * math.Sqrt(w*w-4*p.mw*p.mw) / w
}

// ZPair is a fit of the one-loop γγ → ZZ cross section.
type ZPair struct {
	central
	mz float64
}

func NewZPair(m epa.Module) (*ZPair, error) {
	r := m.Reader()
	c := readCentral(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	mz, err := epa.Mass(zPDG)
	if err != nil {
		return nil, err
	}
	return &ZPair{central: c, mz: mz}, nil
}

func (*ZPair) Description() string { return "γγ → ZZ" }

func (p *ZPair) MatrixElement(w float64) float64 {
	if w <= 2*p.mz {
		return 0
	}
	iw2 := 1 / (w * w)
	return 0.25786903395035327 /
		math.Pow(1+5.749069613832837e11*iw2*iw2*iw2+6.914037195922673e7*iw2*iw2+23.264122861948383*iw2, 44.05927999125431)
}
