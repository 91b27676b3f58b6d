package epa

// Flux describes the probability for two partons to be emitted by the two beams,
// per unit of the two-parton invariant mass w (GeV).
// Implementations are immutable once constructed and safe for concurrent use.
type Flux interface {
	// Flux returns the two-parton flux at invariant mass w.
	Flux(w float64) float64

	// Fragmenting reports whether the emitting beam remnants fragment.
	Fragmenting() bool

	// Partons returns the PDG identifiers of the two emitted partons.
	Partons() (int, int)
}
