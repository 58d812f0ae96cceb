package contracts

// Category tags an instrument for tilt purposes. Instruments outside
// the defensive and cyclical sets count toward breadth but not tilt.
type Category string

const (
	CategoryDefensive    Category = "defensive"
	CategoryCyclical     Category = "cyclical"
	CategoryUnclassified Category = "unclassified"
)

// Valid reports whether the category is one of the enumerated values
func (c Category) Valid() bool {
	switch c {
	case CategoryDefensive, CategoryCyclical, CategoryUnclassified:
		return true
	}
	return false
}

// Instrument is one member of the fixed universe
type Instrument struct {
	Ticker   string   `json:"ticker"`
	Category Category `json:"category"`
}

// Universe is the fixed, ordered instrument set classified each week.
// Order is load-bearing: it is the ranking tie-break. Built once from
// configuration and passed into every component, never mutated.
type Universe struct {
	Benchmark   string       `json:"benchmark"`
	Instruments []Instrument `json:"instruments"`
}

// Size returns the number of instruments
func (u *Universe) Size() int {
	return len(u.Instruments)
}

// Tickers returns instrument tickers in configured order
func (u *Universe) Tickers() []string {
	tickers := make([]string, len(u.Instruments))
	for i, inst := range u.Instruments {
		tickers[i] = inst.Ticker
	}
	return tickers
}

// Contains reports whether the ticker is part of the universe
func (u *Universe) Contains(ticker string) bool {
	for _, inst := range u.Instruments {
		if inst.Ticker == ticker {
			return true
		}
	}
	return false
}

// CategoryOf returns the category for a ticker, or CategoryUnclassified
// for tickers outside the universe
func (u *Universe) CategoryOf(ticker string) Category {
	for _, inst := range u.Instruments {
		if inst.Ticker == ticker {
			return inst.Category
		}
	}
	return CategoryUnclassified
}
