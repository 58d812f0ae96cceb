package ratios

import (
	"context"
	"fmt"
	"time"

	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/pkg/logger"
	"github.com/sectorlab/sectorpulse/pkg/redis"
)

// CloseSource is the read side of the close-price store
type CloseSource interface {
	GetLastN(ctx context.Context, ticker string, n int, asOf time.Time) ([]Close, error)
	GetByDates(ctx context.Context, ticker string, dates []time.Time) (map[string]float64, error)
}

// Provider implements contracts.RatioProvider over stored closes.
// The benchmark's calendar is authoritative: every instrument series
// is aligned on the benchmark's sessions, and an instrument missing a
// benchmark session fails the whole window.
type Provider struct {
	closes   CloseSource
	cache    *redis.Cache
	cacheTTL time.Duration
	logger   *logger.Logger
}

// NewProvider creates a ratio provider. cache may be nil or disabled.
func NewProvider(closes CloseSource, cache *redis.Cache, cacheTTL time.Duration, log *logger.Logger) *Provider {
	return &Provider{
		closes:   closes,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// Windows builds one ratio window per universe instrument as of a
// date, each aligned on the benchmark's last windowSize sessions.
func (p *Provider) Windows(ctx context.Context, universe *contracts.Universe, windowSize int, asOf time.Time) (map[string]*contracts.RatioSeries, error) {
	bench, err := p.closes.GetLastN(ctx, universe.Benchmark, windowSize, asOf)
	if err != nil {
		return nil, fmt.Errorf("load benchmark closes: %w", err)
	}
	if len(bench) < windowSize {
		return nil, &contracts.InputShapeError{
			Ticker:   universe.Benchmark,
			Expected: windowSize,
			Actual:   len(bench),
			Reason:   "insufficient benchmark history",
		}
	}

	dates := make([]time.Time, len(bench))
	for i, c := range bench {
		dates[i] = c.Date
	}
	lastSession := dates[len(dates)-1]

	windows := make(map[string]*contracts.RatioSeries, universe.Size())
	for _, ticker := range universe.Tickers() {
		series, err := p.window(ctx, ticker, bench, dates, lastSession, windowSize)
		if err != nil {
			return nil, err
		}
		windows[ticker] = series
	}

	p.logger.WithFields(map[string]interface{}{
		"as_of":       lastSession.Format("2006-01-02"),
		"window_size": windowSize,
		"instruments": universe.Size(),
	}).Debug("Built ratio windows")
	return windows, nil
}

func (p *Provider) window(ctx context.Context, ticker string, bench []Close, dates []time.Time, lastSession time.Time, windowSize int) (*contracts.RatioSeries, error) {
	cacheKey := fmt.Sprintf("window:%s:%s:%d", ticker, lastSession.Format("2006-01-02"), windowSize)

	if p.cache != nil {
		var cached contracts.RatioSeries
		if hit, err := p.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	closes, err := p.closes.GetByDates(ctx, ticker, dates)
	if err != nil {
		return nil, fmt.Errorf("load closes for %s: %w", ticker, err)
	}

	points := make([]contracts.RatioPoint, 0, windowSize)
	for _, benchClose := range bench {
		key := benchClose.Date.Format("2006-01-02")
		tickerClose, ok := closes[key]
		if !ok {
			return nil, &contracts.InputShapeError{
				Ticker:   ticker,
				Expected: windowSize,
				Actual:   len(closes),
				Reason:   fmt.Sprintf("missing session %s", key),
			}
		}

		points = append(points, contracts.RatioPoint{
			Date:  benchClose.Date,
			Ratio: tickerClose / benchClose.Close,
		})
	}

	series := &contracts.RatioSeries{Ticker: ticker, Points: points}
	if err := series.Validate(windowSize); err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, cacheKey, series, p.cacheTTL); err != nil {
			p.logger.WithError(err).Warn("Failed to cache ratio window")
		}
	}
	return series, nil
}
