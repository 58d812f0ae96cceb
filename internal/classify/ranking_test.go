package classify

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sectorlab/sectorpulse/internal/contracts"
)

func TestRankDescendingByReturn(t *testing.T) {
	universe := testUniverse()

	// Spread the returns so each ticker gets a unique slope.
	// Universe order is XLB, XLE, XLF, XLI, XLK, XLP, XLU, XLV, XLY,
	// XLC, XLRE: give the later tickers the larger slopes so the
	// ranking must reverse the configured order.
	windows := make(map[string]*contracts.RatioSeries)
	for i, ticker := range universe.Tickers() {
		windows[ticker] = linSeries(ticker, 20, 1.0, 0.001*float64(i+1))
	}

	entries := Rank(universe, windows)
	require.Len(t, entries, universe.Size())

	// Ranks are a permutation of 1..N
	seen := make(map[int]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Rank], "duplicate rank %d", e.Rank)
		seen[e.Rank] = true
		assert.GreaterOrEqual(t, e.Rank, 1)
		assert.LessOrEqual(t, e.Rank, universe.Size())
	}

	// Returns are non-increasing in rank order
	assert.True(t, sort.SliceIsSorted(entries, func(i, j int) bool {
		return entries[i].Return4W > entries[j].Return4W
	}))

	// The steepest slope belongs to the last-configured ticker
	assert.Equal(t, "XLRE", entries[0].Ticker)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "XLB", entries[universe.Size()-1].Ticker)
}

func TestRankTieBreakFollowsUniverseOrder(t *testing.T) {
	universe := testUniverse()

	// Identical series for every ticker: all returns tie, so the
	// ranking must reproduce the configured universe order exactly.
	windows := make(map[string]*contracts.RatioSeries)
	for _, ticker := range universe.Tickers() {
		windows[ticker] = linSeries(ticker, 20, 1.0, 0.002)
	}

	entries := Rank(universe, windows)
	require.Len(t, entries, universe.Size())

	for i, ticker := range universe.Tickers() {
		assert.Equal(t, ticker, entries[i].Ticker)
		assert.Equal(t, i+1, entries[i].Rank)
	}
}

func TestRankReturnMatchesSeries(t *testing.T) {
	universe := testUniverse()

	windows := make(map[string]*contracts.RatioSeries)
	for _, ticker := range universe.Tickers() {
		windows[ticker] = linSeries(ticker, 20, 1.0, 0.002)
	}
	// One ticker with a known return: 1.0 -> 1.1 is +10%
	windows["XLK"] = series("XLK",
		1.00, 1.01, 1.02, 1.03, 1.04, 1.05, 1.06, 1.07, 1.08, 1.09,
		1.02, 1.03, 1.04, 1.05, 1.06, 1.07, 1.08, 1.09, 1.095, 1.10)

	entries := Rank(universe, windows)

	var xlk contracts.RankEntry
	for _, e := range entries {
		if e.Ticker == "XLK" {
			xlk = e
		}
	}
	require.NotZero(t, xlk.Rank)
	assert.InDelta(t, 0.10, xlk.Return4W, 1e-9)
}
