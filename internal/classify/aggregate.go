package classify

import (
	"github.com/sectorlab/sectorpulse/internal/contracts"
)

// aggregateCounts is everything the breadth/tilt/risk rules read
type aggregateCounts struct {
	counts            contracts.DirectionCounts
	defensiveHHHL     int
	cyclicalHHHL      int
	persistentLeaders int
}

// Aggregate derives breadth, tilt and risk state from the labeled
// summary plus the static category map.
func Aggregate(summary *contracts.WeeklySummary, universe *contracts.Universe) contracts.AggregateState {
	c := tally(summary, universe)

	breadth := classifyBreadth(c)
	tilt := classifyTilt(c)

	return contracts.AggregateState{
		Breadth:   breadth,
		Tilt:      tilt,
		RiskState: classifyRiskState(c, breadth, tilt),
		Counts:    c.counts,
	}
}

func tally(summary *contracts.WeeklySummary, universe *contracts.Universe) aggregateCounts {
	var c aggregateCounts

	for _, row := range summary.Rows {
		switch row.Structure {
		case contracts.StructureHHHL:
			c.counts.HHHL++
			switch universe.CategoryOf(row.Ticker) {
			case contracts.CategoryDefensive:
				c.defensiveHHHL++
			case contracts.CategoryCyclical:
				c.cyclicalHHHL++
			}
		case contracts.StructureLHLL:
			c.counts.LHLL++
		case contracts.StructureRange:
			c.counts.Range++
		case contracts.StructureTransition:
			c.counts.Transition++
		}

		if row.Leadership == contracts.LeadershipPersistent {
			c.persistentLeaders++
		}
	}

	return c
}

// classifyBreadth: 4+ rising structures is broad, 2 or fewer is
// narrow, anything between is fragmented.
func classifyBreadth(c aggregateCounts) contracts.Breadth {
	switch {
	case c.counts.HHHL >= 4:
		return contracts.BreadthBroad
	case c.counts.HHHL <= 2:
		return contracts.BreadthNarrow
	default:
		return contracts.BreadthFragmented
	}
}

// classifyTilt: the defensive check runs first, so when both category
// thresholds are met the tilt reports defensive.
func classifyTilt(c aggregateCounts) contracts.Tilt {
	switch {
	case c.defensiveHHHL >= 3:
		return contracts.TiltDefensive
	case c.cyclicalHHHL >= 3:
		return contracts.TiltCyclical
	default:
		return contracts.TiltBalanced
	}
}

// riskRules is the ordered risk-state table. Strict priority: the
// first satisfied rule wins and the rest are never checked. A week
// satisfying both Risk-Off and Defensive Shift reports Risk-Off.
// Both the sequence and the count thresholds are load-bearing.
var riskRules = []struct {
	state contracts.RiskState
	match func(c aggregateCounts, breadth contracts.Breadth, tilt contracts.Tilt) bool
}{
	{contracts.RiskOff, func(c aggregateCounts, _ contracts.Breadth, _ contracts.Tilt) bool {
		return c.counts.LHLL >= 5
	}},
	{contracts.RiskDefensiveShift, func(c aggregateCounts, _ contracts.Breadth, _ contracts.Tilt) bool {
		return c.defensiveHHHL >= 3
	}},
	{contracts.RiskOn, func(c aggregateCounts, _ contracts.Breadth, tilt contracts.Tilt) bool {
		return c.counts.HHHL >= 4 && tilt == contracts.TiltCyclical
	}},
	{contracts.RiskNarrowLeadership, func(c aggregateCounts, _ contracts.Breadth, _ contracts.Tilt) bool {
		return c.persistentLeaders == 1 || c.persistentLeaders == 2
	}},
	{contracts.RiskFragmented, func(c aggregateCounts, breadth contracts.Breadth, _ contracts.Tilt) bool {
		// Both directions present with neither dominant per the breadth rule
		return c.counts.HHHL > 0 && c.counts.LHLL > 0 && breadth == contracts.BreadthFragmented
	}},
	{contracts.RiskBalanced, func(_ aggregateCounts, _ contracts.Breadth, _ contracts.Tilt) bool {
		return true
	}},
}

func classifyRiskState(c aggregateCounts, breadth contracts.Breadth, tilt contracts.Tilt) contracts.RiskState {
	for _, rule := range riskRules {
		if rule.match(c, breadth, tilt) {
			return rule.state
		}
	}

	// Unreachable: the last rule always matches
	return contracts.RiskBalanced
}
