package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/sectorlab/sectorpulse/internal/classify"
	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/internal/metrics"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

// HistorySyncer pulls market history up to a date
type HistorySyncer interface {
	Sync(ctx context.Context, universe *contracts.Universe, asOf time.Time) (int, error)
}

// BriefWriter renders a classified week to a brief
type BriefWriter interface {
	Write(result *contracts.Classification) (string, error)
}

// Runner executes the weekly flow: sync history, build ratio windows,
// classify, persist the snapshot, write the brief. Every consumer
// (API, scheduler, CLI) goes through here.
type Runner struct {
	universe   *contracts.Universe
	windowSize int
	syncer     HistorySyncer
	provider   contracts.RatioProvider
	engine     *classify.Engine
	snapshots  contracts.SnapshotRepository
	briefs     BriefWriter
	logger     *logger.Logger
}

// NewRunner wires the weekly flow
func NewRunner(
	universe *contracts.Universe,
	windowSize int,
	syncer HistorySyncer,
	provider contracts.RatioProvider,
	engine *classify.Engine,
	snapshots contracts.SnapshotRepository,
	briefs BriefWriter,
	log *logger.Logger,
) *Runner {
	return &Runner{
		universe:   universe,
		windowSize: windowSize,
		syncer:     syncer,
		provider:   provider,
		engine:     engine,
		snapshots:  snapshots,
		briefs:     briefs,
		logger:     log,
	}
}

// RunWeek classifies the week containing asOf. trigger names the
// caller for metrics ("cron", "api", "cli").
func (r *Runner) RunWeek(ctx context.Context, asOf time.Time, trigger string) (*contracts.Classification, error) {
	started := time.Now()
	result, err := r.runWeek(ctx, asOf)
	metrics.ObserveRun(trigger, time.Since(started).Seconds(), err)
	if err != nil {
		return nil, err
	}

	metrics.StructureCount.WithLabelValues(string(contracts.StructureHHHL)).Set(float64(result.Aggregate.Counts.HHHL))
	metrics.StructureCount.WithLabelValues(string(contracts.StructureLHLL)).Set(float64(result.Aggregate.Counts.LHLL))
	metrics.StructureCount.WithLabelValues(string(contracts.StructureRange)).Set(float64(result.Aggregate.Counts.Range))
	metrics.StructureCount.WithLabelValues(string(contracts.StructureTransition)).Set(float64(result.Aggregate.Counts.Transition))
	return result, nil
}

func (r *Runner) runWeek(ctx context.Context, asOf time.Time) (*contracts.Classification, error) {
	week := WeekID(asOf)

	if r.syncer != nil {
		if _, err := r.syncer.Sync(ctx, r.universe, asOf); err != nil {
			return nil, fmt.Errorf("sync history: %w", err)
		}
	}

	windows, err := r.provider.Windows(ctx, r.universe, r.windowSize, asOf)
	if err != nil {
		return nil, fmt.Errorf("build windows: %w", err)
	}

	previous, err := r.snapshots.GetLatestBefore(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("load prior snapshot: %w", err)
	}

	result, err := r.engine.Run(ctx, week, windows, previous)
	if err != nil {
		return nil, err
	}

	if err := r.snapshots.Save(ctx, result.Summary); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	if r.briefs != nil {
		path, err := r.briefs.Write(result)
		if err != nil {
			return nil, fmt.Errorf("write brief: %w", err)
		}
		r.logger.WithFields(map[string]interface{}{
			"week": week,
			"path": path,
		}).Debug("Brief written")
	}

	return result, nil
}

// WeekID formats a time as a zero-padded ISO week id ("2026-W05").
// Zero padding keeps week ids lexicographically ordered.
func WeekID(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
