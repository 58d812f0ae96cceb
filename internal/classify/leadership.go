package classify

import (
	"github.com/sectorlab/sectorpulse/internal/contracts"
)

// leadershipInput is one instrument's direction, rank and return
type leadershipInput struct {
	structure contracts.StructureLabel
	rank      int
	return4W  float64
}

// leadershipRules is the ordered rule table, evaluated top-down with
// first match winning. Weak dominates: a falling structure is Weak no
// matter how well the instrument ranks.
var leadershipRules = []struct {
	label contracts.LeadershipLabel
	match func(in leadershipInput) bool
}{
	{contracts.LeadershipWeak, func(in leadershipInput) bool {
		return in.structure == contracts.StructureLHLL
	}},
	{contracts.LeadershipPersistent, func(in leadershipInput) bool {
		return in.rank <= 3 && in.structure == contracts.StructureHHHL
	}},
	{contracts.LeadershipEmerging, func(in leadershipInput) bool {
		return in.structure == contracts.StructureHHHL
	}},
	{contracts.LeadershipFading, func(in leadershipInput) bool {
		return in.structure == contracts.StructureTransition && in.return4W > 0
	}},
	{contracts.LeadershipNeutral, func(in leadershipInput) bool {
		return true
	}},
}

// Leadership combines direction, rank and return sign into a
// leadership label. Purely combinational; no discretionary override.
func Leadership(structure contracts.StructureLabel, rank int, return4W float64) contracts.LeadershipLabel {
	in := leadershipInput{structure: structure, rank: rank, return4W: return4W}

	for _, rule := range leadershipRules {
		if rule.match(in) {
			return rule.label
		}
	}

	// Unreachable: the last rule always matches
	return contracts.LeadershipNeutral
}
