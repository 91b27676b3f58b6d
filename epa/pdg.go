package epa

import (
	"fmt"
	"sync"
)

// ParticleProperties holds the static properties of a particle species.
type ParticleProperties struct {
	ID      int
	Name    string
	Mass    float64 // GeV
	Charge3 int     // electric charge in units of e/3
	Colours int
}

// Charge returns the electric charge in units of e.
func (p ParticleProperties) Charge() float64 { return float64(p.Charge3) / 3. }

var (
	pdgOnce  sync.Once
	pdgTable map[int]ParticleProperties
)

// loadPDG fills the process-wide particle table. It runs once, on first use.
func loadPDG() {
	table := []ParticleProperties{
		{ID: 1, Name: "d", Mass: 4.67e-3, Charge3: -1, Colours: 3},
		{ID: 2, Name: "u", Mass: 2.16e-3, Charge3: 2, Colours: 3},
		{ID: 3, Name: "s", Mass: 93.4e-3, Charge3: -1, Colours: 3},
		{ID: 4, Name: "c", Mass: 1.27, Charge3: 2, Colours: 3},
		{ID: 5, Name: "b", Mass: 4.18, Charge3: -1, Colours: 3},
		{ID: 6, Name: "t", Mass: 172.69, Charge3: 2, Colours: 3},
		{ID: 11, Name: "e", Mass: 0.51099895e-3, Charge3: -3, Colours: 1},
		{ID: 13, Name: "mu", Mass: 0.1056583755, Charge3: -3, Colours: 1},
		{ID: 15, Name: "tau", Mass: 1.77686, Charge3: -3, Colours: 1},
		{ID: 22, Name: "gamma", Mass: 0., Charge3: 0, Colours: 1},
		{ID: 23, Name: "Z", Mass: 91.1876, Charge3: 0, Colours: 1},
		{ID: 24, Name: "W", Mass: 80.377, Charge3: 3, Colours: 1},
		{ID: 2212, Name: "p", Mass: 0.93827208816, Charge3: 3, Colours: 1},
	}
	pdgTable = make(map[int]ParticleProperties, len(table))
	for _, p := range table {
		pdgTable[p.ID] = p
	}
}

// Properties returns the properties of the particle with PDG identifier id.
// Negative identifiers denote antiparticles and flip the charge.
func Properties(id int) (ParticleProperties, error) {
	pdgOnce.Do(loadPDG)
	abs := id
	if abs < 0 {
		abs = -abs
	}
	p, ok := pdgTable[abs]
	if !ok {
		return ParticleProperties{}, fmt.Errorf("%w: unknown particle with PDG id %d", ErrConfiguration, id)
	}
	if id < 0 {
		p.ID = id
		p.Charge3 = -p.Charge3
	}
	return p, nil
}

// Mass returns the mass (GeV) of the particle with PDG identifier id.
func Mass(id int) (float64, error) {
	p, err := Properties(id)
	if err != nil {
		return 0, err
	}
	return p.Mass, nil
}
