package contracts

import (
	"context"
	"time"
)

// RatioProvider supplies the per-instrument ratio windows for a week.
// Implementations must return a series for every universe ticker with
// exactly windowSize sessions, oldest first.
type RatioProvider interface {
	Windows(ctx context.Context, universe *Universe, windowSize int, asOf time.Time) (map[string]*RatioSeries, error)
}

// SnapshotRepository persists weekly summaries keyed by week id.
// History is append-only; prior summaries are read-only input.
type SnapshotRepository interface {
	Save(ctx context.Context, summary *WeeklySummary) error
	GetByWeek(ctx context.Context, week string) (*WeeklySummary, error)
	GetLatestBefore(ctx context.Context, week string) (*WeeklySummary, error)
}
