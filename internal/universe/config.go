package universe

import (
	"github.com/sectorlab/sectorpulse/internal/contracts"
)

// Config is the classification configuration read from
// config/universe.yaml. It is loaded once at startup and passed into
// every component; nothing reads it as global state.
type Config struct {
	Meta        MetaConfig         `yaml:"meta" json:"meta"`
	Benchmark   string             `yaml:"benchmark" json:"benchmark"`
	Window      WindowConfig       `yaml:"window" json:"window"`
	Instruments []InstrumentConfig `yaml:"instruments" json:"instruments"`
}

// MetaConfig identifies the configuration for audit
type MetaConfig struct {
	Name string `yaml:"name" json:"name"`
}

// WindowConfig controls the classification window
type WindowConfig struct {
	// Size is the number of trailing sessions; must be even so the
	// window splits into two equal halves.
	Size int `yaml:"size" json:"size"`

	// Epsilon widens the equality dead zone in direction comparisons
	// to suppress label flips from negligible differences.
	Epsilon float64 `yaml:"epsilon" json:"epsilon"`
}

// InstrumentConfig is one universe member as configured
type InstrumentConfig struct {
	Ticker   string `yaml:"ticker" json:"ticker"`
	Category string `yaml:"category" json:"category"`
}

// Universe builds the immutable contracts.Universe in configured order
func (c *Config) Universe() *contracts.Universe {
	instruments := make([]contracts.Instrument, len(c.Instruments))
	for i, inst := range c.Instruments {
		instruments[i] = contracts.Instrument{
			Ticker:   inst.Ticker,
			Category: contracts.Category(inst.Category),
		}
	}
	return &contracts.Universe{
		Benchmark:   c.Benchmark,
		Instruments: instruments,
	}
}

// Default returns the stock configuration: the 11 SPDR sector ETFs
// against SPY, a 20-session window, no noise guard.
func Default() *Config {
	return &Config{
		Meta:      MetaConfig{Name: "us-sector-etfs"},
		Benchmark: "SPY",
		Window:    WindowConfig{Size: 20, Epsilon: 0.0},
		Instruments: []InstrumentConfig{
			{Ticker: "XLB", Category: "cyclical"},
			{Ticker: "XLE", Category: "unclassified"},
			{Ticker: "XLF", Category: "cyclical"},
			{Ticker: "XLI", Category: "cyclical"},
			{Ticker: "XLK", Category: "cyclical"},
			{Ticker: "XLP", Category: "defensive"},
			{Ticker: "XLU", Category: "defensive"},
			{Ticker: "XLV", Category: "defensive"},
			{Ticker: "XLY", Category: "cyclical"},
			{Ticker: "XLC", Category: "unclassified"},
			{Ticker: "XLRE", Category: "unclassified"},
		},
	}
}
