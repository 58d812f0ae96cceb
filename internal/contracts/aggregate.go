package contracts

// DirectionCounts tallies structure labels across the universe
type DirectionCounts struct {
	HHHL       int `json:"hh_hl"`
	LHLL       int `json:"lh_ll"`
	Range      int `json:"range"`
	Transition int `json:"transition"`
}

// AggregateState is the universe-level classification for one week.
// ChangeCount is nil when no prior snapshot exists; absence is
// distinct from zero changes.
type AggregateState struct {
	Breadth     Breadth         `json:"breadth"`
	Tilt        Tilt            `json:"tilt"`
	RiskState   RiskState       `json:"risk_state"`
	ChangeCount *int            `json:"change_count,omitempty"`
	Counts      DirectionCounts `json:"counts"`
}

// Classification is the composed result of one engine run
type Classification struct {
	Summary   *WeeklySummary `json:"summary"`
	Aggregate AggregateState `json:"aggregate"`
}
