package processes

import (
	"math"
	"slices"

	"github.com/twoparton/epagrid/epa"
)

// defaultCentralSystem is a muon pair.
var defaultCentralSystem = []int{13, -13}

// central holds the particles produced by a process.
type central struct {
	particles []int
}

func (c central) CentralParticles() []int { return slices.Clone(c.particles) }

// readCentral reads the "centralSystem" parameter shared by every process.
func readCentral(r *epa.ParamReader) central {
	return central{particles: r.Ints("centralSystem", defaultCentralSystem)}
}

// fermionPair is the Breit–Wheeler cross section (pb) for γγ → f f̄ of a unit
// charge, colourless fermion of the given mass. It vanishes at and below
// threshold.
func fermionPair(w, mass float64) float64 {
	beta2 := 1 - 4*mass*mass/(w*w)
	if beta2 <= 0 {
		return 0
	}
	beta := math.Sqrt(beta2)
	bracket := (3-beta2*beta2)/(2*beta)*math.Log((1+beta)/(1-beta)) - 2 + beta2
	return 4 * math.Pi * epa.GeVm2ToPb * epa.AlphaEM * epa.AlphaEM / (w * w) * beta * bracket
}
