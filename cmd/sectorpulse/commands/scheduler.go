package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sectorlab/sectorpulse/internal/scheduler"
	"github.com/sectorlab/sectorpulse/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Start the weekly scheduler",
	Long: `Starts the cron scheduler with the weekly classification job.
The job runs after the Friday close (CLASSIFY_SCHEDULE, default
22:30 UTC) and executes the full flow: fetch, classify, persist,
write the brief.

Example:
  go run ./cmd/sectorpulse scheduler`,
	RunE: runScheduler,
}

func init() {
	rootCmd.AddCommand(schedulerCmd)
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	sched := scheduler.New(a.logger)

	weekly := jobs.NewWeeklyClassificationJob(a.runner, a.cfg.ClassifySchedule, a.logger)
	if err := sched.AddJob(weekly); err != nil {
		return fmt.Errorf("register weekly job: %w", err)
	}

	sched.Start()
	fmt.Printf("✅ Scheduler running (%s: %q)\n", weekly.Name(), weekly.Schedule())
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
