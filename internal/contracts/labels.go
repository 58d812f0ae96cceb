package contracts

// StructureLabel classifies the high/low structure of one instrument's
// ratio window. Values are closed: nothing outside this set ever enters
// a summary row.
type StructureLabel string

const (
	StructureHHHL       StructureLabel = "HH_HL"
	StructureLHLL       StructureLabel = "LH_LL"
	StructureRange      StructureLabel = "RANGE"
	StructureTransition StructureLabel = "TRANSITION"
)

// Valid reports whether the label is one of the enumerated values
func (s StructureLabel) Valid() bool {
	switch s {
	case StructureHHHL, StructureLHLL, StructureRange, StructureTransition:
		return true
	}
	return false
}

// LeadershipLabel classifies an instrument's leadership posture from
// its structure, rank and return sign.
type LeadershipLabel string

const (
	LeadershipPersistent LeadershipLabel = "Persistent Leader"
	LeadershipEmerging   LeadershipLabel = "Emerging Leader"
	LeadershipFading     LeadershipLabel = "Fading"
	LeadershipWeak       LeadershipLabel = "Weak"
	LeadershipNeutral    LeadershipLabel = "Neutral"
)

// Valid reports whether the label is one of the enumerated values
func (l LeadershipLabel) Valid() bool {
	switch l {
	case LeadershipPersistent, LeadershipEmerging, LeadershipFading, LeadershipWeak, LeadershipNeutral:
		return true
	}
	return false
}

// Breadth describes how many instruments participate in rising structure
type Breadth string

const (
	BreadthBroad      Breadth = "Broad Participation"
	BreadthFragmented Breadth = "Fragmented"
	BreadthNarrow     Breadth = "Narrow Leadership"
)

// Tilt describes whether rising structure concentrates in defensive or
// cyclical categories
type Tilt string

const (
	TiltDefensive Tilt = "Defensive Tilt"
	TiltCyclical  Tilt = "Cyclical Tilt"
	TiltBalanced  Tilt = "Balanced"
)

// RiskState is the single deterministic label summarizing the aggregate
// structural posture of the universe for the week
type RiskState string

const (
	RiskOn               RiskState = "Risk-On"
	RiskDefensiveShift   RiskState = "Defensive Shift"
	RiskNarrowLeadership RiskState = "Narrow Leadership"
	RiskFragmented       RiskState = "Fragmented"
	RiskOff              RiskState = "Risk-Off"
	RiskBalanced         RiskState = "Balanced"
)
