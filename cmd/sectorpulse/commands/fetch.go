package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch daily close history from Stooq",
	Long: `Fetches daily closes for the benchmark and every universe
instrument and stores them in Postgres. Incremental: only sessions
after the last stored one are pulled.

Example:
  go run ./cmd/sectorpulse fetch`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	total, err := a.ingestor.Sync(ctx, a.universe.Universe(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("fetch history: %w", err)
	}

	fmt.Printf("✅ Stored %d new bars\n", total)
	return nil
}
