package epa

const (
	// AlphaEM is the fine-structure constant in the Thomson limit.
	AlphaEM = 1. / 137.035999084
	// GeVm2ToPb converts a cross-section from GeV^-2 to picobarn.
	GeVm2ToPb = 0.389351824e9
	// PhotonPDG is the PDG identifier of the photon.
	PhotonPDG = 22
)
