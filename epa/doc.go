// Package epa provides the building blocks for two-parton (two-photon) interactions
// in an equivalent-photon-approximation event generator.
//
// # Reading Guide
//
// Start with these files:
//   - flux.go: the Flux interface every parton-flux model satisfies
//   - process.go: the Process interface for central-system matrix elements
//   - module.go: named parameter maps used to configure both
//   - collision.go: flux × matrix element weight and cross-section integration
//
// # Architecture
//
// The epa package defines interfaces, registries and shared tables; implementations
// live in sub-packages:
//   - epa/grid/: tabulated flux interpolator backed by a binary grid file
//   - epa/fluxes/: directly computed two-photon luminosities
//   - epa/processes/: closed-form two-photon matrix elements
//
// Sub-packages register their implementations via init() functions calling
// RegisterFlux and RegisterProcess. Callers obtain instances by name through
// NewFlux and NewProcess.
package epa
