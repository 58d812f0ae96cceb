package classify

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/sectorlab/sectorpulse/internal/contracts"
	"github.com/sectorlab/sectorpulse/pkg/config"
	"github.com/sectorlab/sectorpulse/pkg/logger"
)

// series builds a RatioSeries from explicit ratio values, one session
// per weekday starting 2026-07-01.
func series(ticker string, ratios ...float64) *contracts.RatioSeries {
	points := make([]contracts.RatioPoint, len(ratios))
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	for i, r := range ratios {
		points[i] = contracts.RatioPoint{Date: start.AddDate(0, 0, i), Ratio: r}
	}
	return &contracts.RatioSeries{Ticker: ticker, Points: points}
}

// linSeries builds an n-session series walking from start by step each
// session. step > 0 yields HH_HL, step < 0 yields LH_LL, step == 0
// yields RANGE.
func linSeries(ticker string, n int, start, step float64) *contracts.RatioSeries {
	ratios := make([]float64, n)
	for i := range ratios {
		ratios[i] = start + step*float64(i)
	}
	return series(ticker, ratios...)
}

// testUniverse mirrors the default 11-instrument sector universe
func testUniverse() *contracts.Universe {
	return &contracts.Universe{
		Benchmark: "SPY",
		Instruments: []contracts.Instrument{
			{Ticker: "XLB", Category: contracts.CategoryCyclical},
			{Ticker: "XLE", Category: contracts.CategoryUnclassified},
			{Ticker: "XLF", Category: contracts.CategoryCyclical},
			{Ticker: "XLI", Category: contracts.CategoryCyclical},
			{Ticker: "XLK", Category: contracts.CategoryCyclical},
			{Ticker: "XLP", Category: contracts.CategoryDefensive},
			{Ticker: "XLU", Category: contracts.CategoryDefensive},
			{Ticker: "XLV", Category: contracts.CategoryDefensive},
			{Ticker: "XLY", Category: contracts.CategoryCyclical},
			{Ticker: "XLC", Category: contracts.CategoryUnclassified},
			{Ticker: "XLRE", Category: contracts.CategoryUnclassified},
		},
	}
}

func testLogger() *logger.Logger {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}
