package classify

import (
	"sort"

	"github.com/sectorlab/sectorpulse/internal/contracts"
)

// Rank orders the universe by trailing window return, descending.
// Ranks are assigned 1..N with no gaps. The sort is stable over the
// configured universe order, so on equal returns the first-configured
// instrument wins — the tie-break is deterministic by construction.
func Rank(universe *contracts.Universe, windows map[string]*contracts.RatioSeries) []contracts.RankEntry {
	entries := make([]contracts.RankEntry, 0, universe.Size())

	for _, ticker := range universe.Tickers() {
		series := windows[ticker]
		entries = append(entries, contracts.RankEntry{
			Ticker:   ticker,
			Return4W: series.Return(),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Return4W > entries[j].Return4W
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}

	return entries
}
