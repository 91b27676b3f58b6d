// register.go wires the grid flux into the epa flux registry. This init() runs
// when any package imports epa/grid, making "grid" available to epa.NewFlux.
package grid

import "github.com/twoparton/epagrid/epa"

func init() {
	epa.RegisterFlux(Name, func(m epa.Module) (epa.Flux, error) {
		return New(m)
	})
}
