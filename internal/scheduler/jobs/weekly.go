package jobs

import (
	"context"
	"time"

	"github.com/sectorlab/sectorpulse/internal/pipeline"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

// WeeklyClassificationJob runs the full weekly flow after the Friday
// close: sync history, classify, persist, write the brief.
type WeeklyClassificationJob struct {
	runner   *pipeline.Runner
	schedule string
	logger   *logger.Logger
}

// NewWeeklyClassificationJob creates the weekly job. schedule is a
// cron expression with a seconds field.
func NewWeeklyClassificationJob(runner *pipeline.Runner, schedule string, log *logger.Logger) *WeeklyClassificationJob {
	return &WeeklyClassificationJob{
		runner:   runner,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *WeeklyClassificationJob) Name() string {
	return "weekly_classification"
}

// Schedule returns the cron schedule
func (j *WeeklyClassificationJob) Schedule() string {
	return j.schedule
}

// Run executes one weekly classification
func (j *WeeklyClassificationJob) Run(ctx context.Context) error {
	asOf := time.Now().UTC()
	j.logger.WithField("week", pipeline.WeekID(asOf)).Info("Starting scheduled weekly classification")

	result, err := j.runner.RunWeek(ctx, asOf, "cron")
	if err != nil {
		return err
	}

	j.logger.WithFields(map[string]interface{}{
		"week":       result.Summary.Week,
		"risk_state": result.Aggregate.RiskState,
	}).Info("Scheduled weekly classification completed")
	return nil
}
