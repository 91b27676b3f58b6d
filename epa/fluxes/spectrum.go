package fluxes

import (
	"math"

	"github.com/twoparton/epagrid/epa"
)

// Spectrum is a collinear photon spectrum: the number density of photons
// carrying a fraction x of the beam energy, integrated over the photon
// virtuality.
type Spectrum func(x float64) float64

// q2Min is the kinematic lower bound on the virtuality of a photon emitted
// with energy fraction x by a particle of the given mass.
func q2Min(x, mass float64) float64 {
	return mass * mass * x * x / (1 - x)
}

// PointLike returns the equivalent photon spectrum of a structureless charged
// fermion of the given mass, with virtualities bounded by q2max (GeV^2).
func PointLike(mass, q2max float64) Spectrum {
	return func(x float64) float64 {
		if x <= 0 || x >= 1 {
			return 0
		}
		q2min := q2Min(x, mass)
		if q2min >= q2max {
			return 0
		}
		f := (1-x+0.5*x*x)*math.Log(q2max/q2min) - (1-x)*(1-q2min/q2max)
		return max(0, epa.AlphaEM/(math.Pi*x)*f)
	}
}

// dipoleScale is the dipole form factor scale of the proton, in GeV^2.
const dipoleScale = 0.71

// ElasticProton returns the Drees–Zeppenfeld parametrisation of the elastic
// proton photon spectrum, for a proton of the given mass.
func ElasticProton(mass float64) Spectrum {
	return func(x float64) float64 {
		if x <= 0 || x >= 1 {
			return 0
		}
		a := 1 + dipoleScale/q2Min(x, mass)
		f := math.Log(a) - 11./6 + 3/a - 3/(2*a*a) + 1/(3*a*a*a)
		return max(0, epa.AlphaEM/(2*math.Pi*x)*(1+(1-x)*(1-x))*f)
	}
}
