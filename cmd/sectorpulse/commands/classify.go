package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sectorlab/sectorpulse/internal/pipeline"
	"github.com/sectorlab/sectorpulse/internal/report"
)

// classifyCmd represents the classify command
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Run the weekly classification",
	Long: `Runs the full weekly flow: sync history, build ratio windows,
classify every instrument, persist the snapshot and write the brief.

Example:
  go run ./cmd/sectorpulse classify
  go run ./cmd/sectorpulse classify --as-of 2026-07-24
  go run ./cmd/sectorpulse classify --print`,
	RunE: runClassify,
}

var (
	classifyAsOf  string
	classifyPrint bool
)

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyAsOf, "as-of", "", "classify as of this date (YYYY-MM-DD, default today)")
	classifyCmd.Flags().BoolVar(&classifyPrint, "print", false, "print the brief to stdout")
}

func runClassify(cmd *cobra.Command, args []string) error {
	asOf := time.Now().UTC()
	if classifyAsOf != "" {
		parsed, err := time.Parse("2006-01-02", classifyAsOf)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q, expected YYYY-MM-DD", classifyAsOf)
		}
		asOf = parsed
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	result, err := a.runner.RunWeek(ctx, asOf, "cli")
	if err != nil {
		return fmt.Errorf("classify %s: %w", pipeline.WeekID(asOf), err)
	}

	agg := result.Aggregate
	fmt.Printf("✅ %s classified\n", result.Summary.Week)
	fmt.Printf("   Breadth:    %s\n", agg.Breadth)
	fmt.Printf("   Tilt:       %s\n", agg.Tilt)
	fmt.Printf("   Risk state: %s\n", agg.RiskState)
	if agg.ChangeCount != nil {
		fmt.Printf("   Changes:    %d\n", *agg.ChangeCount)
	} else {
		fmt.Printf("   Changes:    n/a\n")
	}

	if classifyPrint {
		fmt.Println()
		fmt.Println(report.Render(result))
	}
	return nil
}
