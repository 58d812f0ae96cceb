package ratios

import (
	"context"
	"fmt"
	"time"

	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/internal/external/stooq"
	"github.com/sectorlab/sectorpulse/internal/metrics"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

// BarSource fetches daily bars for one symbol
type BarSource interface {
	FetchDaily(ctx context.Context, ticker string, from, to time.Time) ([]stooq.Bar, error)
}

// BarSink is the write side of the close-price store
type BarSink interface {
	SaveBars(ctx context.Context, bars []stooq.Bar) error
	LatestSession(ctx context.Context, ticker string) (time.Time, error)
}

// Ingestor pulls daily history for the benchmark and every universe
// instrument into the close-price store. Each sync is incremental:
// only sessions after the last stored one are fetched.
type Ingestor struct {
	source   BarSource
	sink     BarSink
	lookback time.Duration
	logger   *logger.Logger
}

// NewIngestor creates an ingestor. lookback bounds the initial fetch
// for tickers with no stored history.
func NewIngestor(source BarSource, sink BarSink, lookback time.Duration, log *logger.Logger) *Ingestor {
	return &Ingestor{
		source:   source,
		sink:     sink,
		lookback: lookback,
		logger:   log,
	}
}

// Sync fetches and stores history up to asOf for the benchmark and
// all instruments. Returns the total number of bars stored.
func (in *Ingestor) Sync(ctx context.Context, universe *contracts.Universe, asOf time.Time) (int, error) {
	tickers := append([]string{universe.Benchmark}, universe.Tickers()...)

	total := 0
	for _, ticker := range tickers {
		n, err := in.syncTicker(ctx, ticker, asOf)
		if err != nil {
			return total, fmt.Errorf("sync %s: %w", ticker, err)
		}
		total += n
	}

	in.logger.WithFields(map[string]interface{}{
		"tickers": len(tickers),
		"bars":    total,
	}).Info("History sync completed")
	return total, nil
}

func (in *Ingestor) syncTicker(ctx context.Context, ticker string, asOf time.Time) (int, error) {
	latest, err := in.sink.LatestSession(ctx, ticker)
	if err != nil {
		return 0, err
	}

	from := asOf.Add(-in.lookback)
	if !latest.IsZero() && latest.After(from) {
		from = latest.AddDate(0, 0, 1)
	}
	if from.After(asOf) {
		return 0, nil
	}

	bars, err := in.source.FetchDaily(ctx, ticker, from, dateOf(asOf))
	if err != nil {
		return 0, err
	}
	if len(bars) == 0 {
		in.logger.WithField("ticker", ticker).Debug("No new sessions")
		return 0, nil
	}

	if err := in.sink.SaveBars(ctx, bars); err != nil {
		return 0, err
	}
	metrics.BarsIngested.WithLabelValues(ticker).Add(float64(len(bars)))
	return len(bars), nil
}

// dateOf truncates asOf to a date boundary for the fetch range
func dateOf(asOf time.Time) time.Time {
	y, m, d := asOf.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
