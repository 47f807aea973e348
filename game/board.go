package game

import "fmt"

// Marker is the occupant of a board cell.
type Marker int

const (
	Empty Marker = iota
	Red
	Blue
)

func (m Marker) String() string {
	switch m {
	case Red:
		return "red"
	case Blue:
		return "blue"
	default:
		return ""
	}
}

// Opponent returns the other player. Calling it on Empty is a bug.
func (m Marker) Opponent() Marker {
	switch m {
	case Red:
		return Blue
	case Blue:
		return Red
	}
	panic("no opponent for empty marker")
}

// ParseMarker maps the wire names "red"/"blue" back to a Marker.
func ParseMarker(s string) (Marker, error) {
	switch s {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	}
	return Empty, fmt.Errorf("unknown player %q", s)
}

// Board holds the fixed hexagonal cell domain and its occupancy. The
// domain is generated once at construction and never grows; occupancy
// is the only mutable field. Bonuses maps a subset of cells to a score
// multiplier (>1) and is immutable after setup, so clones share it.
type Board struct {
	Radius  int
	cells   map[Hex]Marker
	domain  []Hex
	Bonuses map[Hex]int
}

// NewBoard creates an empty board containing every cell within radius
// of the origin.
func NewBoard(radius int) *Board {
	domain := Disk(radius)
	cells := make(map[Hex]Marker, len(domain))
	for _, h := range domain {
		cells[h] = Empty
	}
	return &Board{
		Radius:  radius,
		cells:   cells,
		domain:  domain,
		Bonuses: make(map[Hex]int),
	}
}

// Contains reports whether the cell is part of the playable domain.
func (b *Board) Contains(h Hex) bool {
	_, ok := b.cells[h]
	return ok
}

// At returns the occupant of a cell; Empty for cells off the board.
func (b *Board) At(h Hex) Marker {
	return b.cells[h]
}

// Place writes a player's marker into an empty cell. Validation happens
// before any board write, so a failure here is an engine bug.
func (b *Board) Place(h Hex, m Marker) {
	if m == Empty {
		panic("cannot place an empty marker")
	}
	cur, ok := b.cells[h]
	if !ok {
		panic(fmt.Sprintf("cell %v is off the board", h))
	}
	if cur != Empty {
		panic(fmt.Sprintf("cell %v is already occupied", h))
	}
	b.cells[h] = m
}

// IsFull reports whether every cell is occupied.
func (b *Board) IsFull() bool {
	for _, m := range b.cells {
		if m == Empty {
			return false
		}
	}
	return true
}

// EmptyCells returns the unoccupied cells in domain order.
func (b *Board) EmptyCells() []Hex {
	var out []Hex
	for _, h := range b.domain {
		if b.cells[h] == Empty {
			out = append(out, h)
		}
	}
	return out
}

// OccupiedCells returns the occupied cells in domain order.
func (b *Board) OccupiedCells() []Hex {
	var out []Hex
	for _, h := range b.domain {
		if b.cells[h] != Empty {
			out = append(out, h)
		}
	}
	return out
}

// Domain returns the fixed cell domain in generation order. Callers
// must not mutate the returned slice.
func (b *Board) Domain() []Hex {
	return b.domain
}

// MaxBonus returns the largest bonus multiplier among the given cells,
// or 1 when none of them carries a bonus.
func (b *Board) MaxBonus(cells []Hex) int {
	mult := 1
	for _, h := range cells {
		if v, ok := b.Bonuses[h]; ok && v > mult {
			mult = v
		}
	}
	return mult
}

// Clone copies occupancy; the domain and bonus map are immutable and
// shared with the clone.
func (b *Board) Clone() *Board {
	cells := make(map[Hex]Marker, len(b.cells))
	for h, m := range b.cells {
		cells[h] = m
	}
	return &Board{
		Radius:  b.Radius,
		cells:   cells,
		domain:  b.domain,
		Bonuses: b.Bonuses,
	}
}
