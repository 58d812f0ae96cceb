package classify

import (
	"github.com/sectorlab/sectorpulse/internal/contracts"
)

// CountChanges diffs the current summary against the prior week's.
// A change is one instrument whose structure or leadership label
// differs. Returns nil when previous is nil: "no prior snapshot" is a
// defined absent state, distinguishable from zero changes.
//
// The fixed universe is assumed stable: any ticker present on one side
// and absent on the other is a UniverseMismatchError, never silently
// skipped.
func CountChanges(current, previous *contracts.WeeklySummary) (*int, error) {
	if previous == nil {
		return nil, nil
	}

	changed := 0
	for _, row := range current.Rows {
		prevRow, ok := previous.Row(row.Ticker)
		if !ok {
			return nil, &contracts.UniverseMismatchError{
				Ticker: row.Ticker,
				Reason: "missing from prior snapshot",
			}
		}

		if row.Structure != prevRow.Structure || row.Leadership != prevRow.Leadership {
			changed++
		}
	}

	for _, prevRow := range previous.Rows {
		if _, ok := current.Row(prevRow.Ticker); !ok {
			return nil, &contracts.UniverseMismatchError{
				Ticker: prevRow.Ticker,
				Reason: "not in current universe",
			}
		}
	}

	return &changed, nil
}
