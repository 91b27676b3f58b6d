package fluxes

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/integrate/quad"

	"github.com/twoparton/epagrid/epa"
)

// DefaultIntegrationPoints is the Gauss–Legendre order of the luminosity convolution.
const DefaultIntegrationPoints = 100

// TwoPhoton is the photon-photon luminosity dL/dW of two beams, obtained by
// convolving their collinear photon spectra:
//
//	dL/dW = (2W/s) ∫ dx1/x1 f1(x1) f2(W²/(s x1))
//
// It holds no mutable state and can be evaluated concurrently.
type TwoPhoton struct {
	s      float64
	f1, f2 Spectrum
	points int
}

var _ epa.Flux = (*TwoPhoton)(nil)

// NewTwoPhoton returns the luminosity of two spectra at squared centre-of-mass
// energy s, integrated with the given number of quadrature points.
func NewTwoPhoton(s float64, f1, f2 Spectrum, points int) (*TwoPhoton, error) {
	if !(s > 0) {
		return nil, fmt.Errorf("%w: squared centre-of-mass energy must be positive, got %g", epa.ErrConfiguration, s)
	}
	if points < 1 {
		return nil, fmt.Errorf("%w: integration needs at least one point, got %d", epa.ErrConfiguration, points)
	}
	return &TwoPhoton{s: s, f1: f1, f2: f2, points: points}, nil
}

// Flux returns dL/dW at two-photon invariant mass w (GeV^-1); it vanishes
// outside (0, √s).
func (l *TwoPhoton) Flux(w float64) float64 {
	tau := w * w / l.s
	if !(w > 0) || tau >= 1 {
		return 0
	}
	// x1 = e^u, so that dx1/x1 = du over [ln τ, 0].
	integrand := func(u float64) float64 {
		x1 := math.Exp(u)
		return l.f1(x1) * l.f2(tau/x1)
	}
	return 2 * w / l.s * quad.Fixed(integrand, math.Log(tau), 0, l.points, nil, 0)
}

func (*TwoPhoton) Fragmenting() bool   { return false }
func (*TwoPhoton) Partons() (int, int) { return epa.PhotonPDG, epa.PhotonPDG }

// SqrtS returns √s (GeV) of two head-on beams.
func (l *TwoPhoton) SqrtS() float64 { return math.Sqrt(l.s) }

// CentreOfMassEnergy returns the invariant mass of two head-on beams of
// energies e1, e2 and masses m1, m2 (GeV).
func CentreOfMassEnergy(e1, m1, e2, m2 float64) (float64, error) {
	if e1 < m1 || e2 < m2 {
		return 0, fmt.Errorf("%w: beam energies (%g, %g) below beam masses (%g, %g)", epa.ErrConfiguration, e1, e2, m1, m2)
	}
	p1 := fmom.NewPxPyPzE(0, 0, math.Sqrt(e1*e1-m1*m1), e1)
	p2 := fmom.NewPxPyPzE(0, 0, -math.Sqrt(e2*e2-m2*m2), e2)
	return fmom.InvMass(&p1, &p2), nil
}
