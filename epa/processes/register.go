// Package processes provides closed-form two-photon production cross
// sections, in pb, as functions of the two-photon invariant mass.
//
// register.go wires the models into the epa process registry; importing this
// package makes them available to epa.NewProcess.
package processes

import "github.com/twoparton/epagrid/epa"

// Registry keys.
const (
	LeptonPairName  = "gammagammatoll"
	FermionPairName = "gammagammatoff"
	WPairName       = "gammagammatoww"
	ZPairName       = "gammagammatozz"
	SleptonPairName = "gammagammatoslsl"
)

func init() {
	epa.RegisterProcess(LeptonPairName, func(m epa.Module) (epa.Process, error) { return NewLeptonPair(m) })
	epa.RegisterProcess(FermionPairName, func(m epa.Module) (epa.Process, error) { return NewFermionPair(m) })
	epa.RegisterProcess(WPairName, func(m epa.Module) (epa.Process, error) { return NewWPair(m) })
	epa.RegisterProcess(ZPairName, func(m epa.Module) (epa.Process, error) { return NewZPair(m) })
	epa.RegisterProcess(SleptonPairName, func(m epa.Module) (epa.Process, error) { return NewSleptonPair(m) })
}
