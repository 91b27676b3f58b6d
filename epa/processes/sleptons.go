package processes

import (
	"fmt"
	"math"

	"github.com/twoparton/epagrid/epa"
)

// DefaultSleptonMass is the slepton mass (GeV) used when "msl" is unset.
const DefaultSleptonMass = 100.

// SleptonPair is γγ → l̃⁺l̃⁻ for a scalar lepton of mass "msl".
type SleptonPair struct {
	central
	mass float64
}

func NewSleptonPair(m epa.Module) (*SleptonPair, error) {
	r := m.Reader()
	mass := r.Float("msl", DefaultSleptonMass)
	c := readCentral(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	if !(mass > 0) {
		return nil, fmt.Errorf("%w: slepton mass must be positive, got %g", epa.ErrConfiguration, mass)
	}
	return &SleptonPair{central: c, mass: mass}, nil
}

func (*SleptonPair) Description() string { return "γγ → l̃⁺l̃⁻" }

func (p *SleptonPair) MatrixElement(w float64) float64 {
	beta2 := 1 - 4*p.mass*p.mass/(w*w)
	if beta2 <= 0 {
		return 0
	}
	beta := math.Sqrt(beta2)
	bracket := 2 - beta2 - (1-beta2*beta2)/(2*beta)*math.Log((1+beta)/(1-beta))
	return 2 * math.Pi * epa.GeVm2ToPb * epa.AlphaEM * epa.AlphaEM / (w * w) * beta * bracket
}
