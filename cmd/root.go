package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "alpha-lab",
	Short: "Polymarket trading signal engine",
	Long: `Polymarket trading signal engine that scans the market universe,
runs a battery of edge-scoring strategies over it, and sizes the
resulting signals with fractional Kelly before executing them in
paper or live mode.

The engine polls the Polymarket Gamma API for active markets, enriches
candidates with orderbook depth from the CLOB WebSocket feed, and gates
every trade through portfolio-level risk limits.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
