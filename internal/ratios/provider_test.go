package ratios

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/pkg/config"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

func testLogger() *logger.Logger {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func testUniverse() *contracts.Universe {
	return &contracts.Universe{
		Benchmark: "SPY",
		Instruments: []contracts.Instrument{
			{Ticker: "XLK", Category: contracts.CategoryCyclical},
			{Ticker: "XLP", Category: contracts.CategoryDefensive},
		},
	}
}

// fakeCloses serves canned closes keyed by ticker and ISO date
type fakeCloses struct {
	sessions []time.Time
	byTicker map[string]map[string]float64
}

func (f *fakeCloses) GetLastN(_ context.Context, ticker string, n int, asOf time.Time) ([]Close, error) {
	var closes []Close
	for _, date := range f.sessions {
		if date.After(asOf) {
			continue
		}
		if price, ok := f.byTicker[ticker][date.Format("2006-01-02")]; ok {
			closes = append(closes, Close{Ticker: ticker, Date: date, Close: price})
		}
	}
	if len(closes) > n {
		closes = closes[len(closes)-n:]
	}
	return closes, nil
}

func (f *fakeCloses) GetByDates(_ context.Context, ticker string, dates []time.Time) (map[string]float64, error) {
	out := make(map[string]float64)
	for _, date := range dates {
		key := date.Format("2006-01-02")
		if price, ok := f.byTicker[ticker][key]; ok {
			out[key] = price
		}
	}
	return out, nil
}

func sessionDates(n int) []time.Time {
	dates := make([]time.Time, n)
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
	}
	return dates
}

func newFakeCloses(n int) *fakeCloses {
	sessions := sessionDates(n)
	f := &fakeCloses{
		sessions: sessions,
		byTicker: map[string]map[string]float64{
			"SPY": {}, "XLK": {}, "XLP": {},
		},
	}
	for i, date := range sessions {
		key := date.Format("2006-01-02")
		f.byTicker["SPY"][key] = 400 + float64(i)
		f.byTicker["XLK"][key] = 200 + 2*float64(i) // outpaces the benchmark
		f.byTicker["XLP"][key] = 80                 // flat
	}
	return f
}

func TestProviderWindows(t *testing.T) {
	closes := newFakeCloses(6)
	provider := NewProvider(closes, nil, 0, testLogger())

	asOf := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	windows, err := provider.Windows(context.Background(), testUniverse(), 4, asOf)
	require.NoError(t, err)
	require.Len(t, windows, 2)

	xlk := windows["XLK"]
	require.NotNil(t, xlk)
	require.Len(t, xlk.Points, 4)

	// The benchmark's last four sessions define the window
	assert.Equal(t, time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC), xlk.Points[0].Date)
	assert.Equal(t, time.Date(2026, 7, 6, 0, 0, 0, 0, time.UTC), xlk.Points[3].Date)

	// Ratio is instrument close over benchmark close per session
	assert.InDelta(t, 204.0/402.0, xlk.Points[0].Ratio, 1e-12)
	assert.InDelta(t, 210.0/405.0, xlk.Points[3].Ratio, 1e-12)

	// A flat instrument against a rising benchmark loses ground
	xlp := windows["XLP"]
	require.NotNil(t, xlp)
	assert.Greater(t, xlp.Points[0].Ratio, xlp.Points[3].Ratio)
}

func TestProviderWindowsRespectsAsOf(t *testing.T) {
	closes := newFakeCloses(6)
	provider := NewProvider(closes, nil, 0, testLogger())

	// Cutting off two sessions early shifts the window back
	asOf := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	windows, err := provider.Windows(context.Background(), testUniverse(), 4, asOf)
	require.NoError(t, err)

	xlk := windows["XLK"]
	assert.Equal(t, time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), xlk.Points[0].Date)
	assert.Equal(t, time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC), xlk.Points[3].Date)
}

func TestProviderInsufficientBenchmarkHistory(t *testing.T) {
	closes := newFakeCloses(3)
	provider := NewProvider(closes, nil, 0, testLogger())

	_, err := provider.Windows(context.Background(), testUniverse(), 4, time.Now())
	require.Error(t, err)

	var shapeErr *contracts.InputShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "SPY", shapeErr.Ticker)
	assert.Equal(t, 4, shapeErr.Expected)
	assert.Equal(t, 3, shapeErr.Actual)
}

func TestProviderMissingInstrumentSession(t *testing.T) {
	closes := newFakeCloses(6)
	delete(closes.byTicker["XLP"], "2026-07-05")
	provider := NewProvider(closes, nil, 0, testLogger())

	asOf := time.Date(2026, 7, 10, 0, 0, 0, 0, time.UTC)
	_, err := provider.Windows(context.Background(), testUniverse(), 4, asOf)
	require.Error(t, err)

	var shapeErr *contracts.InputShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "XLP", shapeErr.Ticker)
	assert.Contains(t, shapeErr.Reason, "2026-07-05")
}
