package contracts

import (
	"math"
	"time"
)

// RatioPoint is one session's relative-strength ratio:
// instrument close divided by benchmark close.
type RatioPoint struct {
	Date  time.Time `json:"date"`
	Ratio float64   `json:"ratio"`
}

// RatioSeries is the trailing ratio window for one instrument, ordered
// oldest to newest. Length must equal the configured window size.
type RatioSeries struct {
	Ticker string       `json:"ticker"`
	Points []RatioPoint `json:"points"`
}

// Len returns the number of sessions in the series
func (s *RatioSeries) Len() int {
	return len(s.Points)
}

// First returns the oldest ratio in the window
func (s *RatioSeries) First() float64 {
	if len(s.Points) == 0 {
		return math.NaN()
	}
	return s.Points[0].Ratio
}

// Last returns the most recent ratio in the window
func (s *RatioSeries) Last() float64 {
	if len(s.Points) == 0 {
		return math.NaN()
	}
	return s.Points[len(s.Points)-1].Ratio
}

// Return computes (last/first - 1) over the full window
func (s *RatioSeries) Return() float64 {
	first := s.First()
	if first == 0 || math.IsNaN(first) {
		return math.NaN()
	}
	return s.Last()/first - 1
}

// TailReturn computes (last/first - 1) over the trailing n sessions
func (s *RatioSeries) TailReturn(n int) float64 {
	if n < 2 || len(s.Points) < n {
		return math.NaN()
	}
	first := s.Points[len(s.Points)-n].Ratio
	if first == 0 {
		return math.NaN()
	}
	return s.Last()/first - 1
}

// Validate checks the series shape against the expected window size.
// All values must be finite; no gaps are tolerated.
func (s *RatioSeries) Validate(windowSize int) error {
	if len(s.Points) != windowSize {
		return &InputShapeError{
			Ticker:   s.Ticker,
			Expected: windowSize,
			Actual:   len(s.Points),
			Reason:   "wrong series length",
		}
	}

	for _, p := range s.Points {
		if math.IsNaN(p.Ratio) || math.IsInf(p.Ratio, 0) {
			return &InputShapeError{
				Ticker:   s.Ticker,
				Expected: windowSize,
				Actual:   len(s.Points),
				Reason:   "non-finite ratio value",
			}
		}
		if p.Ratio <= 0 {
			return &InputShapeError{
				Ticker:   s.Ticker,
				Expected: windowSize,
				Actual:   len(s.Points),
				Reason:   "non-positive ratio value",
			}
		}
	}

	return nil
}
