package game

// Rules bundles the tunable game parameters: end conditions, the
// scoring table knobs, and optional placement restrictions.
type Rules struct {
	// TargetScore triggers the end-game fairness window when a player
	// reaches it. Zero or negative disables the target condition.
	TargetScore int
	// MaxRounds caps the number of turns per player.
	MaxRounds int

	// MaxTriangleSide bounds the triangle search (sides 2..max).
	MaxTriangleSide int
	// HollowDims lists the hollow outline dimensions searched, ascending.
	HollowDims []int
	// VarietyThreshold is the number of distinct shape kinds that must be
	// newly completed in one turn to earn the variety bonus.
	VarietyThreshold int
	// VarietyPoints is the bonus value.
	VarietyPoints int

	// FirstMoveCenter forces the opening move onto the center cell.
	FirstMoveCenter bool
	// AdjacencyRange, when positive, requires every non-opening move to
	// land within this distance of an occupied cell.
	AdjacencyRange int
}

// StandardRules returns the default rule set.
func StandardRules() Rules {
	return Rules{
		TargetScore:      40,
		MaxRounds:        25,
		MaxTriangleSide:  8,
		HollowDims:       []int{3, 4},
		VarietyThreshold: 3,
		VarietyPoints:    10,
	}
}

// linePoints is the full value of a straight run: 1 point for the first
// three markers, +1 per marker beyond.
func linePoints(length int) int {
	if length < 3 {
		return 0
	}
	return length - 2
}

// loopPoints is fixed regardless of the center cell's occupancy.
func loopPoints() int { return 6 }

// trianglePoints: side 2 scores 1, side n >= 3 scores n.
func trianglePoints(side int) int {
	if side == 2 {
		return 1
	}
	return side
}

// hollowPoints doubles per dimension step: 2^(d-1), pinned by the
// anchors 3x3 -> 4 and 4x4 -> 8.
func hollowPoints(dim int) int {
	return 1 << (dim - 1)
}
