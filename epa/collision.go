package epa

import (
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/integrate/quad"
)

// Beams holds the run kinematics shared by every flux model: the two beam
// energies (GeV) and the two parton virtuality upper bounds (GeV^2).
type Beams struct {
	Eb1    float64 `yaml:"eb1"`
	Eb2    float64 `yaml:"eb2"`
	Q2Max1 float64 `yaml:"q2max1"`
	Q2Max2 float64 `yaml:"q2max2"`
}

// Validate checks that energies and virtuality bounds are positive.
func (b Beams) Validate() error {
	if b.Eb1 <= 0 || b.Eb2 <= 0 {
		return fmt.Errorf("%w: beam energies must be positive, got (%g, %g)", ErrConfiguration, b.Eb1, b.Eb2)
	}
	if b.Q2Max1 <= 0 || b.Q2Max2 <= 0 {
		return fmt.Errorf("%w: virtuality bounds must be positive, got (%g, %g)", ErrConfiguration, b.Q2Max1, b.Q2Max2)
	}
	return nil
}

// Apply returns a copy of m with the beam kinematics set, overriding any
// user-provided values.
func (b Beams) Apply(m Module) Module {
	out := m.Clone()
	out.Params["eb1"] = b.Eb1
	out.Params["eb2"] = b.Eb2
	out.Params["q2max1"] = b.Q2Max1
	out.Params["q2max2"] = b.Q2Max2
	return out
}

// BeamsFromModule reads the run kinematics carried by m.
func BeamsFromModule(m Module) (Beams, error) {
	r := m.Reader()
	b := Beams{
		Eb1:    r.Float("eb1", 0),
		Eb2:    r.Float("eb2", 0),
		Q2Max1: r.Float("q2max1", 0),
		Q2Max2: r.Float("q2max2", 0),
	}
	return b, r.Err()
}

// Collision couples a two-parton flux with a central-system process.
// It is read-only once built and can be evaluated concurrently.
type Collision struct {
	beams   Beams
	flux    Flux
	process Process
}

// NewCollision builds the flux and process modules by name, after injecting
// the beam kinematics into the flux parameters.
func NewCollision(beams Beams, flux, process Module) (*Collision, error) {
	if err := beams.Validate(); err != nil {
		return nil, err
	}
	f, err := NewFlux(beams.Apply(flux))
	if err != nil {
		return nil, fmt.Errorf("building flux: %w", err)
	}
	p, err := NewProcess(process)
	if err != nil {
		return nil, fmt.Errorf("building process: %w", err)
	}
	logrus.Infof("Two-parton collision ready: flux %q, process %q (%s)", flux.Name, process.Name, p.Description())
	return &Collision{beams: beams, flux: f, process: p}, nil
}

func (c *Collision) Flux() Flux       { return c.flux }
func (c *Collision) Process() Process { return c.process }
func (c *Collision) Beams() Beams     { return c.beams }

// Weight returns the differential cross-section dσ/dw (pb/GeV) at invariant mass w:
// the matrix element times the two-parton flux. Points where the matrix element
// is not positive weigh zero.
func (c *Collision) Weight(w float64) float64 {
	me := c.process.MatrixElement(w)
	if !(me > 0) {
		return 0
	}
	return me * c.flux.Flux(w)
}

// CrossSection integrates Weight over the invariant mass range with an n-point
// Gauss-Legendre rule, evaluating points concurrently.
func (c *Collision) CrossSection(w Range, n int) (float64, error) {
	if !w.Valid() {
		return 0, fmt.Errorf("%w: invalid invariant mass range %v", ErrConfiguration, w)
	}
	if n < 1 {
		return 0, fmt.Errorf("%w: need at least one integration point, got %d", ErrConfiguration, n)
	}
	return quad.Fixed(c.Weight, w.Lo, w.Hi, n, nil, runtime.GOMAXPROCS(0)), nil
}
