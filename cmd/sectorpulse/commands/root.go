package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	universeFile string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sectorpulse",
	Short: "SectorPulse - weekly sector relative-strength classification",
	Long: `SectorPulse Unified CLI

Weekly structural classification of US sector ETFs against SPY:
ratio windows, direction labels, rankings, leadership and the
aggregate market read.

Usage:
  go run ./cmd/sectorpulse [command]

Examples:
  go run ./cmd/sectorpulse fetch
  go run ./cmd/sectorpulse classify
  go run ./cmd/sectorpulse classify --as-of 2026-07-24
  go run ./cmd/sectorpulse api
  go run ./cmd/sectorpulse scheduler`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&universeFile, "universe", "", "universe config file (default from UNIVERSE_FILE)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
