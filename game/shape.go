package game

import (
	"fmt"
	"sort"
	"strings"
)

// ShapeKind enumerates the scoring pattern categories as a tagged
// variant; triangle side and hollow dimension live in Shape.Size rather
// than being baked into a name.
type ShapeKind int

const (
	LineShape ShapeKind = iota
	LoopShape
	TriangleShape
	HollowShape
	VarietyBonusShape
)

func (k ShapeKind) String() string {
	switch k {
	case LineShape:
		return "line"
	case LoopShape:
		return "loop"
	case TriangleShape:
		return "triangle"
	case HollowShape:
		return "hollow"
	case VarietyBonusShape:
		return "variety_bonus"
	}
	return "unknown"
}

// Shape is one awarded scoring pattern. Cells are sorted canonically,
// and Points is the amount actually credited for this award (for a line
// that grows, the increment over its previously scored sub-lines).
// Size carries the line length, triangle side, or hollow dimension.
type Shape struct {
	Kind   ShapeKind
	Size   int
	Cells  []Hex
	Points int
}

// ShapeKey identifies a shape for dedup purposes: its kind plus the
// unordered set of member cells. Two awards with equal keys are the
// same shape and may be credited at most once per game.
type ShapeKey string

// Key computes the canonical identity for a kind and cell set.
func Key(kind ShapeKind, cells []Hex) ShapeKey {
	sorted := make([]Hex, len(cells))
	copy(sorted, cells)
	sortCells(sorted)
	var sb strings.Builder
	sb.WriteString(kind.String())
	for _, h := range sorted {
		fmt.Fprintf(&sb, "|%d,%d", h.Q, h.R)
	}
	return ShapeKey(sb.String())
}

// Key returns the shape's identity.
func (s Shape) Key() ShapeKey {
	return Key(s.Kind, s.Cells)
}

func sortCells(cells []Hex) {
	sort.Slice(cells, func(i, j int) bool { return cells[i].Less(cells[j]) })
}

// Ledger is the process-owned record of shape identities already
// awarded to either player. It persists for the whole game and never
// shrinks.
type Ledger map[ShapeKey]struct{}

func NewLedger() Ledger {
	return make(Ledger)
}

func (l Ledger) Has(k ShapeKey) bool {
	_, ok := l[k]
	return ok
}

func (l Ledger) Add(k ShapeKey) {
	l[k] = struct{}{}
}

func (l Ledger) Clone() Ledger {
	out := make(Ledger, len(l))
	for k := range l {
		out[k] = struct{}{}
	}
	return out
}
