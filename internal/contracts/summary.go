package contracts

import (
	"sort"
	"time"
)

// RankEntry pairs an instrument with its trailing return and rank
// position. Rank 1 is the highest return; ties keep configured
// universe order.
type RankEntry struct {
	Ticker   string  `json:"ticker"`
	Return4W float64 `json:"return_4w"`
	Rank     int     `json:"rank"`
}

// SummaryRow is the full per-instrument classification for one week
type SummaryRow struct {
	Ticker     string          `json:"ticker"`
	Return4W   float64         `json:"return_4w"`
	Return5D   float64         `json:"return_5d"`
	Structure  StructureLabel  `json:"structure"`
	Rank       int             `json:"rank"`
	Leadership LeadershipLabel `json:"leadership"`
}

// WeeklySummary holds one row per universe instrument for a given week.
// Immutable once produced; the prior week's summary is read-only input
// to change tracking.
type WeeklySummary struct {
	Week        string       `json:"week"` // ISO week id, e.g. 2026-W31
	GeneratedAt time.Time    `json:"generated_at"`
	Rows        []SummaryRow `json:"rows"`
}

// Row returns the row for a ticker
func (s *WeeklySummary) Row(ticker string) (SummaryRow, bool) {
	for _, row := range s.Rows {
		if row.Ticker == ticker {
			return row, true
		}
	}
	return SummaryRow{}, false
}

// Tickers returns the summary's tickers in row order
func (s *WeeklySummary) Tickers() []string {
	tickers := make([]string, len(s.Rows))
	for i, row := range s.Rows {
		tickers[i] = row.Ticker
	}
	return tickers
}

// CountStructure returns how many rows carry the given structure label
func (s *WeeklySummary) CountStructure(label StructureLabel) int {
	n := 0
	for _, row := range s.Rows {
		if row.Structure == label {
			n++
		}
	}
	return n
}

// CountLeadership returns how many rows carry the given leadership label
func (s *WeeklySummary) CountLeadership(label LeadershipLabel) int {
	n := 0
	for _, row := range s.Rows {
		if row.Leadership == label {
			n++
		}
	}
	return n
}

// SortedByRank returns a copy of the rows ordered by rank ascending
func (s *WeeklySummary) SortedByRank() []SummaryRow {
	rows := make([]SummaryRow, len(s.Rows))
	copy(rows, s.Rows)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Rank < rows[j].Rank
	})
	return rows
}
