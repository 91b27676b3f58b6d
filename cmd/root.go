package cmd

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	// Flux and process models register themselves with the epa registries.
	_ "github.com/twoparton/epagrid/epa/fluxes"
	_ "github.com/twoparton/epagrid/epa/grid"
	_ "github.com/twoparton/epagrid/epa/processes"
)

var (
	logLevel    string // Log verbosity level
	metricsFile string // Prometheus text file written after the command
	cardPath    string // Run card path
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "epagrid",
	Short: "Tabulated two-photon fluxes for equivalent photon approximation runs",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if metricsFile == "" {
			return
		}
		if err := writeMetrics(metricsFile); err != nil {
			logrus.Fatalf("Failed to write metrics: %v", err)
		}
	},
}

// writeMetrics dumps the default prometheus registry to path in text format.
func writeMetrics(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write grid build/load metrics to this file (Prometheus text format)")

	for _, c := range []*cobra.Command{buildCmd, scanCmd, xsecCmd} {
		c.Flags().StringVar(&cardPath, "card", "run.yaml", "Run card (YAML)")
	}
	rootCmd.AddCommand(buildCmd, inspectCmd, scanCmd, xsecCmd)
}
