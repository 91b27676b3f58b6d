package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twoparton/epagrid/epa"
	"github.com/twoparton/epagrid/epa/grid"
)

// buildCmd regenerates the grid configured by a run card, then loads it back.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the flux grid described by a run card",
	Run: func(cmd *cobra.Command, args []string) {
		card, err := LoadRunCard(cardPath)
		if err != nil {
			logrus.Fatalf("Invalid run card %q: %v", cardPath, err)
		}
		if err := runBuild(cmd.OutOrStdout(), card); err != nil {
			logrus.Fatalf("Grid generation failed: %v", err)
		}
	},
}

// runBuild forces generation of the card's grid flux and reports what was written.
func runBuild(w io.Writer, card *RunCard) error {
	if card.Flux.Name != grid.Name {
		return fmt.Errorf("%w: build needs a %q flux, the run card has %q", epa.ErrConfiguration, grid.Name, card.Flux.Name)
	}
	g, err := grid.New(card.FluxModule().Set("generateGrid", true))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %d points over %v\n%v\n", g.Path(), g.Len(), g.Range(), g.Header())
	return err
}
