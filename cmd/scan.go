package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"

	"github.com/twoparton/epagrid/epa"
)

var (
	scanPoints int       // Number of scanned invariant masses
	scanRange  []float64 // Scanned invariant mass range
	scanLinear bool      // Linear instead of logarithmic spacing
)

// scanCmd tabulates the flux of a run card on stdout.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Tabulate the two-parton flux of a run card",
	Run: func(cmd *cobra.Command, args []string) {
		card, err := LoadRunCard(cardPath)
		if err != nil {
			logrus.Fatalf("Invalid run card %q: %v", cardPath, err)
		}
		if len(scanRange) != 2 {
			logrus.Fatalf("--range needs two values, got %v", scanRange)
		}
		r := epa.Range{Lo: scanRange[0], Hi: scanRange[1]}
		if err := scanFlux(cmd.OutOrStdout(), card, r, scanPoints, !scanLinear); err != nil {
			logrus.Fatalf("Flux scan failed: %v", err)
		}
	},
}

// scanFlux writes "w<TAB>flux" lines for n invariant masses spanning r.
func scanFlux(w io.Writer, card *RunCard, r epa.Range, n int, logSpacing bool) error {
	if n < 2 || !r.Valid() || (logSpacing && r.Lo <= 0) {
		return fmt.Errorf("%w: cannot scan %d points over %v (log=%t)", epa.ErrConfiguration, n, r, logSpacing)
	}
	flux, err := epa.NewFlux(card.FluxModule())
	if err != nil {
		return err
	}
	ws := make([]float64, n)
	if logSpacing {
		floats.LogSpan(ws, r.Lo, r.Hi)
	} else {
		floats.Span(ws, r.Lo, r.Hi)
	}
	for _, x := range ws {
		if _, err := fmt.Fprintf(w, "%g\t%g\n", x, flux.Flux(x)); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	scanCmd.Flags().IntVar(&scanPoints, "points", 100, "Number of invariant masses")
	scanCmd.Flags().Float64SliceVar(&scanRange, "range", []float64{1, 1000}, "Invariant mass range (GeV), as lo,hi")
	scanCmd.Flags().BoolVar(&scanLinear, "linear", false, "Space invariant masses linearly")
}
