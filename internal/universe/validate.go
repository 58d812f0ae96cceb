package universe

import (
	"fmt"
	"regexp"

	"github.com/sectorlab/sectorpulse/internal/contracts"
)

var tickerPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.]{0,7}$`)

// Validate checks all configuration constraints. Violations are fatal:
// the engine never runs on a partially valid universe.
func Validate(cfg *Config) error {
	if cfg.Benchmark == "" {
		return &contracts.ConfigurationError{Field: "benchmark", Message: "required"}
	}
	if !tickerPattern.MatchString(cfg.Benchmark) {
		return &contracts.ConfigurationError{Field: "benchmark", Message: fmt.Sprintf("invalid ticker %q", cfg.Benchmark)}
	}

	if cfg.Window.Size < 2 {
		return &contracts.ConfigurationError{Field: "window.size", Message: "must be >= 2"}
	}
	if cfg.Window.Size%2 != 0 {
		return &contracts.ConfigurationError{Field: "window.size", Message: "must be even to split into equal halves"}
	}
	if cfg.Window.Epsilon < 0 {
		return &contracts.ConfigurationError{Field: "window.epsilon", Message: "must be >= 0"}
	}

	if len(cfg.Instruments) == 0 {
		return &contracts.ConfigurationError{Field: "instruments", Message: "required"}
	}

	seen := make(map[string]bool, len(cfg.Instruments))
	for i, inst := range cfg.Instruments {
		field := fmt.Sprintf("instruments[%d]", i)

		if !tickerPattern.MatchString(inst.Ticker) {
			return &contracts.ConfigurationError{Field: field, Message: fmt.Sprintf("invalid ticker %q", inst.Ticker)}
		}
		if seen[inst.Ticker] {
			return &contracts.ConfigurationError{Field: field, Message: fmt.Sprintf("duplicate ticker %s", inst.Ticker)}
		}
		seen[inst.Ticker] = true

		if inst.Ticker == cfg.Benchmark {
			return &contracts.ConfigurationError{Field: field, Message: "benchmark cannot be a universe instrument"}
		}

		if !contracts.Category(inst.Category).Valid() {
			return &contracts.ConfigurationError{Field: field, Message: fmt.Sprintf("unknown category %q", inst.Category)}
		}
	}

	return nil
}
