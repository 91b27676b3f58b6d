package processes

import (
	"fmt"
	"math"

	"github.com/twoparton/epagrid/epa"
)

// LeptonPair is γγ → l⁺l⁻.
type LeptonPair struct {
	central
	mass float64
}

// NewLeptonPair reads the lepton pdg id from "lepton" (default 13).
func NewLeptonPair(m epa.Module) (*LeptonPair, error) {
	r := m.Reader()
	id := r.Int("lepton", 13)
	c := readCentral(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	mass, err := epa.Mass(id)
	if err != nil {
		return nil, err
	}
	return &LeptonPair{central: c, mass: mass}, nil
}

func (*LeptonPair) Description() string { return "γγ → l⁺l⁻" }

func (p *LeptonPair) MatrixElement(w float64) float64 { return fermionPair(w, p.mass) }

// FermionPair is γγ → f f̄ for any charged fermion, weighted by its charge to
// the fourth power and its number of colours.
type FermionPair struct {
	central
	mass   float64
	factor float64
}

// NewFermionPair reads the fermion pdg id from "fermion" (default 13).
func NewFermionPair(m epa.Module) (*FermionPair, error) {
	r := m.Reader()
	id := r.Int("fermion", 13)
	c := readCentral(r)
	if err := r.Err(); err != nil {
		return nil, err
	}
	props, err := epa.Properties(id)
	if err != nil {
		return nil, err
	}
	if props.Charge3 == 0 {
		return nil, fmt.Errorf("%w: particle %d (%s) is neutral", epa.ErrConfiguration, id, props.Name)
	}
	return &FermionPair{
		central: c,
		mass:    props.Mass,
		factor:  math.Pow(props.Charge(), 4) * float64(props.Colours),
	}, nil
}

func (*FermionPair) Description() string { return "γγ → f f̄" }

func (p *FermionPair) MatrixElement(w float64) float64 { return p.factor * fermionPair(w, p.mass) }
