package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twoparton/epagrid/epa"
)

// xsecCmd integrates the cross section of a run card.
var xsecCmd = &cobra.Command{
	Use:   "xsec",
	Short: "Integrate the flux-weighted cross section of a run card",
	Run: func(cmd *cobra.Command, args []string) {
		card, err := LoadRunCard(cardPath)
		if err != nil {
			logrus.Fatalf("Invalid run card %q: %v", cardPath, err)
		}
		if err := reportCrossSection(cmd.OutOrStdout(), card); err != nil {
			logrus.Fatalf("Cross section computation failed: %v", err)
		}
	},
}

// crossSection builds the card's collision and integrates its weight over the
// integration range.
func crossSection(card *RunCard) (*epa.Collision, float64, error) {
	if card.Process.Name == "" {
		return nil, 0, fmt.Errorf("%w: run card has no process name", epa.ErrConfiguration)
	}
	r, err := card.IntegrationRange()
	if err != nil {
		return nil, 0, err
	}
	c, err := epa.NewCollision(card.Beams, card.Flux, card.Process)
	if err != nil {
		return nil, 0, err
	}
	xsec, err := c.CrossSection(r, card.Integration.Points)
	if err != nil {
		return nil, 0, err
	}
	logrus.Infof("Cross section over %v with %d points: %g pb", r, card.Integration.Points, xsec)
	return c, xsec, nil
}

func reportCrossSection(w io.Writer, card *RunCard) error {
	c, xsec, err := crossSection(card)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: %.6g pb\n", c.Process().Description(), xsec)
	return err
}
