// Package grid provides a two-parton flux served from a tabulated grid.
//
// A grid is built once by sampling any registered flux model over the
// two-parton invariant mass, persisted to a binary file with a validating
// header, and reloaded by later runs with the same kinematics. Lookups are
// piecewise-linear interpolations that neither lock nor allocate.
//
// File layout (little-endian, no implicit padding):
//
//	offset  size  field
//	     0     4  magic 0xdeadb33f (uint32)
//	     4    10  tool version, NUL padded
//	    14     2  padding
//	    16     8  beam 1 energy (float64, GeV)
//	    24     8  beam 2 energy
//	    32     8  beam 1 virtuality upper bound (float64, GeV^2)
//	    40     8  beam 2 virtuality upper bound
//	    48     1  fragmenting (0 or 1)
//	    49     3  padding
//	    52     8  parton identifiers (2 × int32)
//	    60     4  reserved
//	    64  16×N  samples (w float64, flux float64)
package grid

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/twoparton/epagrid/epa"
)

// Name is the registry key of the grid flux.
const Name = "grid"

// DefaultPath is the grid file used when no path is configured.
const DefaultPath = "flux.grid"

// State is the construction stage of a GridFlux.
type State int

const (
	// NeedsBuild means the grid file must be (re)generated before loading.
	NeedsBuild State = iota
	// Loading means the grid file is being read and validated.
	Loading
	// Ready means the grid is loaded and serves lookups.
	Ready
)

func (s State) String() string {
	switch s {
	case NeedsBuild:
		return "NeedsBuild"
	case Loading:
		return "Loading"
	case Ready:
		return "Ready"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// GridFlux is a flux model answering from an interpolation grid.
// A GridFlux returned by New is always Ready and never changes afterwards.
type GridFlux struct {
	path        string
	checkHeader bool
	header      Header
	table       *Table
	state       State
}

var _ epa.Flux = (*GridFlux)(nil)

// New builds a grid flux from its module parameters.
//
// The grid file is generated first when generateGrid is set, when no path is
// configured (DefaultPath is then used), or when the file does not exist. The
// file is then loaded and validated against the run kinematics carried by m.
// Any failure is returned; there is no partially constructed grid.
func New(m epa.Module) (*GridFlux, error) {
	r := m.Reader()
	path := r.Str("path", "")
	checkHeader := r.Bool("checkHeader", true)
	generate := r.Bool("generateGrid", false)
	if err := r.Err(); err != nil {
		return nil, err
	}
	expected, err := HeaderFromModule(m)
	if err != nil {
		return nil, err
	}

	g := &GridFlux{path: path, checkHeader: checkHeader, state: Loading}
	if path == "" {
		g.path = DefaultPath
	}
	switch {
	case generate || path == "":
		g.state = NeedsBuild
	case !fileExists(g.path):
		logrus.Infof("Grid file %q not found, generating it.", g.path)
		g.state = NeedsBuild
	}

	if g.state == NeedsBuild {
		cfg, err := BuildConfigFromModule(m)
		if err != nil {
			return nil, err
		}
		if err := Build(g.path, cfg, expected); err != nil {
			return nil, err
		}
		g.state = Loading
	}

	table, header, err := Load(g.path, expected, g.checkHeader)
	if err != nil {
		return nil, err
	}
	g.header, g.table, g.state = header, table, Ready
	return g, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// Flux returns the interpolated flux at invariant mass w, clamped to the
// boundary values outside the sampled range.
func (g *GridFlux) Flux(w float64) float64 { return g.table.eval(w) }

// Fragmenting returns the fragmenting flag recorded in the grid header.
func (g *GridFlux) Fragmenting() bool { return g.header.Fragmenting }

// Partons returns the parton identifiers recorded in the grid header.
func (g *GridFlux) Partons() (int, int) {
	return int(g.header.Partons[0]), int(g.header.Partons[1])
}

func (g *GridFlux) State() State     { return g.state }
func (g *GridFlux) Path() string     { return g.path }
func (g *GridFlux) Header() Header   { return g.header }
func (g *GridFlux) Range() epa.Range { return g.table.Range() }
func (g *GridFlux) Len() int         { return g.table.Len() }
