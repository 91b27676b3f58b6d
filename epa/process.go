package epa

// Process computes the production cross-section of a central system from two
// colliding partons as a function of their invariant mass.
type Process interface {
	// Description returns a short human-readable label of the process.
	Description() string

	// MatrixElement returns the partonic cross-section (pb) at invariant mass w (GeV).
	MatrixElement(w float64) float64

	// CentralParticles returns the PDG identifiers of the produced particles.
	CentralParticles() []int
}
