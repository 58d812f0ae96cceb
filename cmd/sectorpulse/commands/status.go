package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sectorlab/sectorpulse/pkg/redis"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show stored classification status",
	Long: `Shows the configured universe, database connectivity and the
most recent stored classification week.

Example:
  go run ./cmd/sectorpulse status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	u := a.universe.Universe()
	fmt.Printf("Universe:   %d instruments vs %s (window %d)\n", u.Size(), u.Benchmark, a.universe.Window.Size)

	if err := a.db.Ping(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	stats := a.db.Stats()
	fmt.Printf("Database:   ok (%d/%d conns)\n", stats.AcquiredConns, stats.MaxConns)

	switch err := a.redis.Ping(ctx); {
	case errors.Is(err, redis.ErrDisabled):
		fmt.Println("Redis:      disabled")
	case err != nil:
		fmt.Printf("Redis:      unreachable (%v)\n", err)
	default:
		fmt.Println("Redis:      ok")
	}

	weeks, err := a.snapshots.Weeks(ctx)
	if err != nil {
		return fmt.Errorf("list weeks: %w", err)
	}
	if len(weeks) == 0 {
		fmt.Println("Snapshots:  none stored")
		return nil
	}

	fmt.Printf("Snapshots:  %d weeks, latest %s\n", len(weeks), weeks[0])

	latest, err := a.snapshots.GetByWeek(ctx, weeks[0])
	if err != nil {
		return fmt.Errorf("load latest week: %w", err)
	}
	if latest != nil {
		fmt.Printf("Generated:  %s\n", latest.GeneratedAt.Format("2006-01-02 15:04 UTC"))
	}
	return nil
}
