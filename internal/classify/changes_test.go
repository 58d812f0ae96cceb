package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sectorlab/sectorpulse/internal/contracts"
)

func summaryWith(rows ...contracts.SummaryRow) *contracts.WeeklySummary {
	return &contracts.WeeklySummary{Week: "2026-W31", Rows: rows}
}

func TestCountChangesNilPrior(t *testing.T) {
	current := summaryWith(
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureHHHL, Leadership: contracts.LeadershipPersistent},
	)

	count, err := CountChanges(current, nil)
	require.NoError(t, err)
	assert.Nil(t, count, "no prior snapshot is absent, not zero")
}

func TestCountChangesSelfDiffIsZero(t *testing.T) {
	current := summaryWith(
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureHHHL, Leadership: contracts.LeadershipPersistent},
		contracts.SummaryRow{Ticker: "XLE", Structure: contracts.StructureLHLL, Leadership: contracts.LeadershipWeak},
	)

	count, err := CountChanges(current, current)
	require.NoError(t, err)
	require.NotNil(t, count)
	assert.Equal(t, 0, *count)
}

func TestCountChanges(t *testing.T) {
	previous := summaryWith(
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureHHHL, Leadership: contracts.LeadershipPersistent},
		contracts.SummaryRow{Ticker: "XLE", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
		contracts.SummaryRow{Ticker: "XLP", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
	)
	current := summaryWith(
		// Same structure, leadership moved: counts once, not twice
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureHHHL, Leadership: contracts.LeadershipEmerging},
		// Structure flipped
		contracts.SummaryRow{Ticker: "XLE", Structure: contracts.StructureLHLL, Leadership: contracts.LeadershipWeak},
		// Unchanged
		contracts.SummaryRow{Ticker: "XLP", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
	)

	count, err := CountChanges(current, previous)
	require.NoError(t, err)
	require.NotNil(t, count)
	assert.Equal(t, 2, *count)
}

func TestCountChangesTickerMissingFromPrior(t *testing.T) {
	previous := summaryWith(
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
	)
	current := summaryWith(
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
		contracts.SummaryRow{Ticker: "XLRE", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
	)

	count, err := CountChanges(current, previous)
	require.Error(t, err)
	assert.Nil(t, count)

	var mismatch *contracts.UniverseMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "XLRE", mismatch.Ticker)
}

func TestCountChangesTickerDroppedFromCurrent(t *testing.T) {
	previous := summaryWith(
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
		contracts.SummaryRow{Ticker: "XLE", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
	)
	current := summaryWith(
		contracts.SummaryRow{Ticker: "XLK", Structure: contracts.StructureRange, Leadership: contracts.LeadershipNeutral},
	)

	count, err := CountChanges(current, previous)
	require.Error(t, err)
	assert.Nil(t, count)

	var mismatch *contracts.UniverseMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "XLE", mismatch.Ticker)
}
