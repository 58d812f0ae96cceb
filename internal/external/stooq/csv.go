package stooq

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// parseDailyCSV parses Stooq's daily CSV payload. The expected header
// is Date,Open,High,Low,Close,Volume; Stooq answers "No data" as plain
// text for unknown symbols. An empty or "No data" body is an error so
// a mistyped or delisted ticker never passes as a quiet no-op; a
// header-only payload for a valid symbol is fine.
func parseDailyCSV(ticker, body string) ([]Bar, error) {
	body = strings.TrimSpace(body)
	if body == "" || strings.HasPrefix(body, "No data") {
		return nil, fmt.Errorf("stooq returned empty/invalid CSV for %s", ticker)
	}

	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("malformed CSV: %w", err)
	}

	var bars []Bar
	for i, record := range records {
		if i == 0 || len(record) < 6 {
			continue // Skip header
		}

		date, err := time.Parse("2006-01-02", record[0])
		if err != nil {
			continue
		}

		open, err1 := strconv.ParseFloat(record[1], 64)
		high, err2 := strconv.ParseFloat(record[2], 64)
		low, err3 := strconv.ParseFloat(record[3], 64)
		closePrice, err4 := strconv.ParseFloat(record[4], 64)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			continue
		}

		// Volume is sometimes absent for thin sessions
		volume, _ := strconv.ParseInt(record[5], 10, 64)

		bars = append(bars, Bar{
			Ticker: ticker,
			Date:   date,
			Open:   open,
			High:   high,
			Low:    low,
			Close:  closePrice,
			Volume: volume,
		})
	}

	// The endpoint usually answers oldest-first, but that is not
	// documented; sort rather than trust it.
	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})
	return bars, nil
}
