package cmd

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/twoparton/epagrid/epa/grid"
)

// inspectCmd prints the header of a grid file.
var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Print the header and sampled range of a flux grid file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := inspectGrid(cmd.OutOrStdout(), args[0]); err != nil {
			logrus.Fatalf("Cannot inspect %q: %v", args[0], err)
		}
	},
}

func inspectGrid(w io.Writer, path string) error {
	h, n, err := grid.ReadHeader(path)
	if err != nil {
		return err
	}
	// The kinematics are reported, not checked; the magic number still is.
	table, _, err := grid.Load(path, h, false)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, `file:        %s
magic:       0x%x
version:     %s
eb1, eb2:    %g, %g GeV
q2max1, 2:   %g, %g GeV^2
fragmenting: %t
partons:     %d, %d
points:      %d
w range:     %v GeV
`, path, h.Magic, h.Version, h.Eb1, h.Eb2, h.Q2Max1, h.Q2Max2, h.Fragmenting,
		h.Partons[0], h.Partons[1], n, table.Range())
	return err
}
