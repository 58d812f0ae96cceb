package classify

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sectorlab/sectorpulse/internal/contracts"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := NewEngine(testUniverse(), 20, 0, testLogger())
	require.NoError(t, err)
	return engine
}

// defensiveShiftWindows builds a week where all three defensive
// sectors rise alongside four cyclicals while the rest fall.
func defensiveShiftWindows() map[string]*contracts.RatioSeries {
	slopes := map[string]float64{
		"XLK": 0.005, "XLP": 0.004, "XLV": 0.0035, "XLU": 0.003,
		"XLB": 0.0025, "XLF": 0.002, "XLI": 0.0015,
		"XLE": -0.001, "XLY": -0.0015, "XLC": -0.002, "XLRE": -0.0025,
	}
	windows := make(map[string]*contracts.RatioSeries, len(slopes))
	for ticker, slope := range slopes {
		windows[ticker] = linSeries(ticker, 20, 1.0, slope)
	}
	return windows
}

func TestEngineDefensiveShiftWeek(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Run(context.Background(), "2026-W31", defensiveShiftWindows(), nil)
	require.NoError(t, err)

	summary := result.Summary
	assert.Equal(t, "2026-W31", summary.Week)
	require.Len(t, summary.Rows, 11)

	// Rows follow the configured universe order
	assert.Equal(t, testUniverse().Tickers(), summary.Tickers())

	// Steepest three slopes hold the top three ranks and all rise,
	// so all three are persistent leaders
	byTicker := make(map[string]contracts.SummaryRow)
	for _, row := range summary.Rows {
		byTicker[row.Ticker] = row
	}
	assert.Equal(t, 1, byTicker["XLK"].Rank)
	assert.Equal(t, 2, byTicker["XLP"].Rank)
	assert.Equal(t, 3, byTicker["XLV"].Rank)
	assert.Equal(t, contracts.LeadershipPersistent, byTicker["XLK"].Leadership)
	assert.Equal(t, contracts.LeadershipPersistent, byTicker["XLP"].Leadership)
	assert.Equal(t, contracts.LeadershipPersistent, byTicker["XLV"].Leadership)
	assert.Equal(t, contracts.LeadershipEmerging, byTicker["XLU"].Leadership)
	assert.Equal(t, contracts.LeadershipWeak, byTicker["XLE"].Leadership)
	assert.Equal(t, contracts.LeadershipWeak, byTicker["XLRE"].Leadership)

	assert.Equal(t, contracts.DirectionCounts{HHHL: 7, LHLL: 4}, result.Aggregate.Counts)
	assert.Equal(t, contracts.BreadthBroad, result.Aggregate.Breadth)
	assert.Equal(t, contracts.TiltDefensive, result.Aggregate.Tilt)
	assert.Equal(t, contracts.RiskDefensiveShift, result.Aggregate.RiskState)
	assert.Nil(t, result.Aggregate.ChangeCount, "first week has no prior")
}

// narrowLeadershipWindows builds a week with three rising cyclicals,
// one falling sector, one high-return transition and a quiet rest.
func narrowLeadershipWindows() map[string]*contracts.RatioSeries {
	windows := map[string]*contracts.RatioSeries{
		"XLK": linSeries("XLK", 20, 1.0, 0.005),
		"XLF": linSeries("XLF", 20, 1.0, 0.004),
		"XLB": linSeries("XLB", 20, 1.0, 0.003),
		"XLY": linSeries("XLY", 20, 1.0, -0.003),
		// Higher high with a lower low: a transition, and the largest
		// trailing return of the week
		"XLE": series("XLE",
			1.00, 1.01, 1.02, 1.03, 1.04, 1.05, 1.06, 1.07, 1.08, 1.09,
			0.95, 0.99, 1.02, 1.05, 1.08, 1.11, 1.14, 1.16, 1.18, 1.20),
	}
	for _, ticker := range []string{"XLI", "XLP", "XLU", "XLV", "XLC", "XLRE"} {
		windows[ticker] = linSeries(ticker, 20, 1.0, 0)
	}
	return windows
}

func TestEngineNarrowLeadershipWeek(t *testing.T) {
	engine := newTestEngine(t)

	result, err := engine.Run(context.Background(), "2026-W32", narrowLeadershipWindows(), nil)
	require.NoError(t, err)

	byTicker := make(map[string]contracts.SummaryRow)
	for _, row := range result.Summary.Rows {
		byTicker[row.Ticker] = row
	}

	// XLE has the top return but its structure is a transition, so it
	// fades rather than leads; only XLK and XLF are persistent
	assert.Equal(t, 1, byTicker["XLE"].Rank)
	assert.Equal(t, contracts.StructureTransition, byTicker["XLE"].Structure)
	assert.Equal(t, contracts.LeadershipFading, byTicker["XLE"].Leadership)
	assert.Equal(t, contracts.LeadershipPersistent, byTicker["XLK"].Leadership)
	assert.Equal(t, contracts.LeadershipPersistent, byTicker["XLF"].Leadership)
	assert.Equal(t, 4, byTicker["XLB"].Rank)
	assert.Equal(t, contracts.LeadershipEmerging, byTicker["XLB"].Leadership)
	assert.Equal(t, contracts.LeadershipWeak, byTicker["XLY"].Leadership)
	assert.Equal(t, contracts.LeadershipNeutral, byTicker["XLP"].Leadership)

	assert.Equal(t, contracts.DirectionCounts{HHHL: 3, LHLL: 1, Range: 6, Transition: 1}, result.Aggregate.Counts)
	assert.Equal(t, contracts.BreadthFragmented, result.Aggregate.Breadth)
	assert.Equal(t, contracts.TiltCyclical, result.Aggregate.Tilt)
	assert.Equal(t, contracts.RiskNarrowLeadership, result.Aggregate.RiskState)
}

func TestEngineChangeCountAcrossWeeks(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	first, err := engine.Run(ctx, "2026-W32", narrowLeadershipWindows(), nil)
	require.NoError(t, err)

	// Same inputs against the prior week: zero changes
	unchanged, err := engine.Run(ctx, "2026-W33", narrowLeadershipWindows(), first.Summary)
	require.NoError(t, err)
	require.NotNil(t, unchanged.Aggregate.ChangeCount)
	assert.Equal(t, 0, *unchanged.Aggregate.ChangeCount)

	// Flip one sector from rising to falling: one changed row
	windows := narrowLeadershipWindows()
	windows["XLB"] = linSeries("XLB", 20, 1.0, -0.002)

	changed, err := engine.Run(ctx, "2026-W33", windows, first.Summary)
	require.NoError(t, err)
	require.NotNil(t, changed.Aggregate.ChangeCount)
	assert.Equal(t, 1, *changed.Aggregate.ChangeCount)
}

func TestEngineDeterministic(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	a, err := engine.Run(ctx, "2026-W31", defensiveShiftWindows(), nil)
	require.NoError(t, err)
	b, err := engine.Run(ctx, "2026-W31", defensiveShiftWindows(), nil)
	require.NoError(t, err)

	assert.Equal(t, a.Summary.Rows, b.Summary.Rows)
	assert.Equal(t, a.Aggregate, b.Aggregate)
}

func TestEngineFailsFastOnMissingSeries(t *testing.T) {
	engine := newTestEngine(t)

	windows := defensiveShiftWindows()
	delete(windows, "XLU")

	result, err := engine.Run(context.Background(), "2026-W31", windows, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var shapeErr *contracts.InputShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "XLU", shapeErr.Ticker)
}

func TestEngineFailsFastOnShortSeries(t *testing.T) {
	engine := newTestEngine(t)

	windows := defensiveShiftWindows()
	windows["XLF"] = linSeries("XLF", 19, 1.0, 0.002)

	result, err := engine.Run(context.Background(), "2026-W31", windows, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	var shapeErr *contracts.InputShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, "XLF", shapeErr.Ticker)
	assert.Equal(t, 20, shapeErr.Expected)
	assert.Equal(t, 19, shapeErr.Actual)
}

func TestNewEngineRejectsOddWindow(t *testing.T) {
	_, err := NewEngine(testUniverse(), 21, 0, testLogger())
	require.Error(t, err)

	var cfgErr *contracts.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}
