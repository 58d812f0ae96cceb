package classify

import (
	"github.com/sectorlab/sectorpulse/internal/contracts"
)

// DirectionClassifier labels one instrument's ratio window by comparing
// the high/low structure of its two halves. Pure: no state is retained
// between instruments.
type DirectionClassifier struct {
	windowSize int
	half       int
	epsilon    float64
}

// NewDirectionClassifier creates a classifier for the given window.
// The window must be even so it splits into two equal halves.
func NewDirectionClassifier(windowSize int, epsilon float64) (*DirectionClassifier, error) {
	if windowSize < 2 {
		return nil, &contracts.ConfigurationError{Field: "window.size", Message: "must be >= 2"}
	}
	if windowSize%2 != 0 {
		return nil, &contracts.ConfigurationError{Field: "window.size", Message: "must be even to split into equal halves"}
	}
	if epsilon < 0 {
		return nil, &contracts.ConfigurationError{Field: "window.epsilon", Message: "must be >= 0"}
	}

	return &DirectionClassifier{
		windowSize: windowSize,
		half:       windowSize / 2,
		epsilon:    epsilon,
	}, nil
}

// halfRelations holds the four strict comparisons between the halves.
// Equality within epsilon counts as neither direction.
type halfRelations struct {
	higherHigh bool // max2 > max1 + eps
	higherLow  bool // min2 > min1 + eps
	lowerHigh  bool // max2 < max1 - eps
	lowerLow   bool // min2 < min1 - eps
}

// directionRules is the ordered rule table. First match wins; order is
// load-bearing and must not be rearranged.
var directionRules = []struct {
	label contracts.StructureLabel
	match func(r halfRelations) bool
}{
	{contracts.StructureHHHL, func(r halfRelations) bool {
		return r.higherHigh && r.higherLow
	}},
	{contracts.StructureLHLL, func(r halfRelations) bool {
		return r.lowerHigh && r.lowerLow
	}},
	{contracts.StructureTransition, func(r halfRelations) bool {
		// Exactly one side of a direction pair moved
		return (r.higherHigh != r.higherLow) || (r.lowerHigh != r.lowerLow)
	}},
	{contracts.StructureRange, func(r halfRelations) bool {
		return true
	}},
}

// Classify returns exactly one StructureLabel for the series
func (c *DirectionClassifier) Classify(series *contracts.RatioSeries) (contracts.StructureLabel, error) {
	if err := series.Validate(c.windowSize); err != nil {
		return "", err
	}

	max1, min1 := highLow(series.Points[:c.half])
	max2, min2 := highLow(series.Points[c.half:])

	r := halfRelations{
		higherHigh: max2 > max1+c.epsilon,
		higherLow:  min2 > min1+c.epsilon,
		lowerHigh:  max2 < max1-c.epsilon,
		lowerLow:   min2 < min1-c.epsilon,
	}

	for _, rule := range directionRules {
		if rule.match(r) {
			return rule.label, nil
		}
	}

	// Unreachable: the last rule always matches
	return contracts.StructureRange, nil
}

// highLow returns the max and min ratio over the half
func highLow(points []contracts.RatioPoint) (float64, float64) {
	max := points[0].Ratio
	min := points[0].Ratio
	for _, p := range points[1:] {
		if p.Ratio > max {
			max = p.Ratio
		}
		if p.Ratio < min {
			min = p.Ratio
		}
	}
	return max, min
}
