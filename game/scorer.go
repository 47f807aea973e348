package game

import "fmt"

// hollowOrientations are the axis pairs spanning the rhombus outlines.
// Three pairs cover every orientation; the remaining pairs trace the
// same rhombi from the opposite corner.
var hollowOrientations = [3][2]Hex{
	{{1, -1, 0}, {0, 1, -1}},
	{{0, 1, -1}, {-1, 1, 0}},
	{{-1, 1, 0}, {-1, 0, 1}},
}

// DetectShapes finds every scoring pattern of the acting player that
// includes the just-placed cell and is not yet in the ledger, inserts
// the new identities into the ledger, and returns the awards in a
// deterministic order: lines, loops, triangles, hollows, then the
// variety bonus. Each award's Points already includes the cell bonus
// multiplier (the maximum multiplier over its member cells).
func DetectShapes(b *Board, ledger Ledger, last Hex, player Marker, rules Rules) []Shape {
	if player == Empty {
		panic("scorer invoked without an acting player")
	}
	if b.At(last) != player {
		panic(fmt.Sprintf("placed cell %v does not hold %v's marker", last, player))
	}

	var awarded []Shape
	awarded = append(awarded, detectLines(b, ledger, last, player)...)
	awarded = append(awarded, detectLoops(b, ledger, last, player)...)
	awarded = append(awarded, detectTriangles(b, ledger, last, player, rules)...)
	awarded = append(awarded, detectHollows(b, ledger, last, player, rules)...)

	// Variety bonus: once per turn, when enough distinct kinds were
	// newly completed. It is a per-turn event rather than a geometric
	// identity, so it never enters the ledger and can recur.
	if rules.VarietyThreshold > 0 {
		kinds := make(map[ShapeKind]struct{})
		for _, s := range awarded {
			kinds[s.Kind] = struct{}{}
		}
		if len(kinds) >= rules.VarietyThreshold {
			awarded = append(awarded, Shape{
				Kind:   VarietyBonusShape,
				Points: rules.VarietyPoints,
			})
		}
	}
	return awarded
}

// detectLines scans the three axes through the placed cell for maximal
// runs of 3+. A grown run is credited with the difference between its
// full value and the values of its previously scored sub-runs, so a
// line extended one marker at a time pays out exactly one point per
// extension.
func detectLines(b *Board, ledger Ledger, last Hex, player Marker) []Shape {
	var out []Shape
	for _, axis := range Axes {
		start := last
		for b.At(start.Sub(axis)) == player {
			start = start.Sub(axis)
		}
		var run []Hex
		for cur := start; b.At(cur) == player; cur = cur.Add(axis) {
			run = append(run, cur)
		}
		n := len(run)
		if n < 3 {
			continue
		}
		key := Key(LineShape, run)
		if ledger.Has(key) {
			continue
		}

		// Deduct the maximal previously scored sub-runs. Ledgered
		// sub-runs of one axis are nested or disjoint, so skipping
		// segments that touch an already-deducted cell keeps only the
		// maximal ones.
		points := linePoints(n)
		covered := make([]bool, n)
		for length := n - 1; length >= 3; length-- {
			for i := 0; i+length <= n; i++ {
				if overlapsCovered(covered, i, i+length) {
					continue
				}
				if ledger.Has(Key(LineShape, run[i:i+length])) {
					points -= linePoints(length)
					for j := i; j < i+length; j++ {
						covered[j] = true
					}
				}
			}
		}

		out = append(out, Shape{
			Kind:   LineShape,
			Size:   n,
			Cells:  run,
			Points: points * b.MaxBonus(run),
		})
		ledger.Add(key)
	}
	return out
}

func overlapsCovered(covered []bool, from, to int) bool {
	for i := from; i < to; i++ {
		if covered[i] {
			return true
		}
	}
	return false
}

// detectLoops checks the six cells adjacent to the placement as ring
// centers. A loop scores a fixed value regardless of what the center
// holds.
func detectLoops(b *Board, ledger Ledger, last Hex, player Marker) []Shape {
	var out []Shape
	for _, d := range Directions {
		center := last.Add(d)
		ring := make([]Hex, 0, 6)
		complete := true
		for _, nd := range Directions {
			cell := center.Add(nd)
			if b.At(cell) != player {
				complete = false
				break
			}
			ring = append(ring, cell)
		}
		if !complete {
			continue
		}
		key := Key(LoopShape, ring)
		if ledger.Has(key) {
			continue
		}
		out = append(out, Shape{
			Kind:   LoopShape,
			Cells:  ring,
			Points: loopPoints() * b.MaxBonus(ring),
		})
		ledger.Add(key)
	}
	return out
}

// detectTriangles finds fully filled triangular clusters of side 2 and
// up that include the placed cell. Each triangle is spanned by a pair
// of adjacent direction vectors from an apex; anchoring the apex at
// every offset that keeps the placed cell inside covers all candidates.
func detectTriangles(b *Board, ledger Ledger, last Hex, player Marker, rules Rules) []Shape {
	var out []Shape
	found := make(map[ShapeKey]struct{})
	for size := 2; size <= rules.MaxTriangleSide; size++ {
		for i := 0; i < 6; i++ {
			u := Directions[i]
			v := Directions[(i+1)%6]
			for a := 0; a < size; a++ {
				for c := 0; c < size-a; c++ {
					apex := last.Sub(u.Scale(a)).Sub(v.Scale(c))
					cells, ok := filledTriangle(b, apex, u, v, size, player)
					if !ok {
						continue
					}
					key := Key(TriangleShape, cells)
					if _, dup := found[key]; dup {
						continue
					}
					found[key] = struct{}{}
					if ledger.Has(key) {
						continue
					}
					out = append(out, Shape{
						Kind:   TriangleShape,
						Size:   size,
						Cells:  cells,
						Points: trianglePoints(size) * b.MaxBonus(cells),
					})
					ledger.Add(key)
				}
			}
		}
	}
	return out
}

func filledTriangle(b *Board, apex, u, v Hex, size int, player Marker) ([]Hex, bool) {
	cells := make([]Hex, 0, size*(size+1)/2)
	for x := 0; x < size; x++ {
		for y := 0; y < size-x; y++ {
			cell := apex.Add(u.Scale(x)).Add(v.Scale(y))
			if b.At(cell) != player {
				return nil, false
			}
			cells = append(cells, cell)
		}
	}
	return cells, true
}

// detectHollows finds closed rhombus outlines whose strict interior is
// entirely empty. Candidate corners are every position that places the
// just-placed cell somewhere on the outline.
func detectHollows(b *Board, ledger Ledger, last Hex, player Marker, rules Rules) []Shape {
	var out []Shape
	found := make(map[ShapeKey]struct{})
	for _, dim := range rules.HollowDims {
		steps := dim - 1
		if steps < 2 {
			continue
		}
		for _, ori := range hollowOrientations {
			u, v := ori[0], ori[1]
			offsets := outlineOffsets(u, v, steps)
			for _, off := range offsets {
				corner := last.Sub(off)
				cells, ok := tracedOutline(b, corner, offsets, player)
				if !ok {
					continue
				}
				key := Key(HollowShape, cells)
				if _, dup := found[key]; dup {
					continue
				}
				found[key] = struct{}{}
				if ledger.Has(key) {
					continue
				}
				if !interiorEmpty(b, corner, u, v, steps) {
					continue
				}
				out = append(out, Shape{
					Kind:   HollowShape,
					Size:   dim,
					Cells:  cells,
					Points: hollowPoints(dim) * b.MaxBonus(cells),
				})
				ledger.Add(key)
			}
		}
	}
	return out
}

// outlineOffsets walks the rhombus perimeter from a corner: steps along
// u, then v, then back along -u and -v. The walk order is the award's
// cell order.
func outlineOffsets(u, v Hex, steps int) []Hex {
	offs := make([]Hex, 0, 4*steps)
	offs = append(offs, Hex{})
	cur := Hex{}
	legs := [4]Hex{u, v, u.Scale(-1), v.Scale(-1)}
	for _, leg := range legs {
		for i := 0; i < steps; i++ {
			cur = cur.Add(leg)
			if cur != (Hex{}) {
				offs = append(offs, cur)
			}
		}
	}
	return offs
}

func tracedOutline(b *Board, corner Hex, offsets []Hex, player Marker) ([]Hex, bool) {
	cells := make([]Hex, len(offsets))
	for i, off := range offsets {
		cell := corner.Add(off)
		if b.At(cell) != player {
			return nil, false
		}
		cells[i] = cell
	}
	return cells, true
}

func interiorEmpty(b *Board, corner, u, v Hex, steps int) bool {
	for x := 1; x < steps; x++ {
		for y := 1; y < steps; y++ {
			cell := corner.Add(u.Scale(x)).Add(v.Scale(y))
			if !b.Contains(cell) || b.At(cell) != Empty {
				return false
			}
		}
	}
	return true
}
