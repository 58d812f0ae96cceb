package classify

import (
	"context"
	"math"
	"time"

	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

// Engine composes the per-instrument classifiers with the aggregate
// rules into one weekly run. Each run is a deterministic function of
// its inputs; the engine holds no mutable state between runs.
type Engine struct {
	universe   *contracts.Universe
	windowSize int
	direction  *DirectionClassifier
	logger     *logger.Logger
}

// NewEngine creates a classification engine for a fixed universe
func NewEngine(universe *contracts.Universe, windowSize int, epsilon float64, log *logger.Logger) (*Engine, error) {
	direction, err := NewDirectionClassifier(windowSize, epsilon)
	if err != nil {
		return nil, err
	}

	return &Engine{
		universe:   universe,
		windowSize: windowSize,
		direction:  direction,
		logger:     log,
	}, nil
}

// Run classifies one week. It fails fast on the first malformed or
// missing series and never emits a partial summary. previous may be
// nil, in which case the change count is absent.
func (e *Engine) Run(ctx context.Context, week string, windows map[string]*contracts.RatioSeries, previous *contracts.WeeklySummary) (*contracts.Classification, error) {
	if err := e.validateInput(windows); err != nil {
		return nil, err
	}

	// Rank first: leadership needs rank positions
	entries := Rank(e.universe, windows)
	rankOf := make(map[string]contracts.RankEntry, len(entries))
	for _, entry := range entries {
		rankOf[entry.Ticker] = entry
	}

	rows := make([]contracts.SummaryRow, 0, e.universe.Size())
	for _, ticker := range e.universe.Tickers() {
		series := windows[ticker]

		structure, err := e.direction.Classify(series)
		if err != nil {
			return nil, err
		}

		entry := rankOf[ticker]
		rows = append(rows, contracts.SummaryRow{
			Ticker:     ticker,
			Return4W:   entry.Return4W,
			Return5D:   e.shortReturn(series),
			Structure:  structure,
			Rank:       entry.Rank,
			Leadership: Leadership(structure, entry.Rank, entry.Return4W),
		})
	}

	summary := &contracts.WeeklySummary{
		Week:        week,
		GeneratedAt: time.Now().UTC(),
		Rows:        rows,
	}

	aggregate := Aggregate(summary, e.universe)

	changeCount, err := CountChanges(summary, previous)
	if err != nil {
		return nil, err
	}
	aggregate.ChangeCount = changeCount

	e.logger.WithFields(map[string]interface{}{
		"week":       week,
		"hh_hl":      aggregate.Counts.HHHL,
		"lh_ll":      aggregate.Counts.LHLL,
		"breadth":    aggregate.Breadth,
		"tilt":       aggregate.Tilt,
		"risk_state": aggregate.RiskState,
	}).Info("Weekly classification completed")

	return &contracts.Classification{
		Summary:   summary,
		Aggregate: aggregate,
	}, nil
}

// validateInput checks that every universe ticker has a well-formed
// series before any labeling starts
func (e *Engine) validateInput(windows map[string]*contracts.RatioSeries) error {
	for _, ticker := range e.universe.Tickers() {
		series, ok := windows[ticker]
		if !ok || series == nil {
			return &contracts.InputShapeError{
				Ticker:   ticker,
				Expected: e.windowSize,
				Actual:   0,
				Reason:   "series missing",
			}
		}

		if err := series.Validate(e.windowSize); err != nil {
			return err
		}
	}

	return nil
}

// shortReturn is the trailing 5-session return carried on the summary
// row for the brief. Falls back to the full-window return when the
// window is shorter than 5 sessions.
func (e *Engine) shortReturn(series *contracts.RatioSeries) float64 {
	ret := series.TailReturn(5)
	if math.IsNaN(ret) {
		return series.Return()
	}
	return ret
}
