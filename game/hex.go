package game

// Hex is a cell position in cube coordinates. The invariant Q+R+S == 0
// holds for every Hex built through NewHex or vector arithmetic.
type Hex struct {
	Q int `json:"q"`
	R int `json:"r"`
	S int `json:"s"`
}

// NewHex builds a Hex from axial coordinates, deriving S.
func NewHex(q, r int) Hex {
	return Hex{Q: q, R: r, S: -q - r}
}

// Directions lists the six neighbor offsets in a fixed clockwise order.
// Detection code iterates this array directly, so the order is part of
// the scorer's deterministic output contract.
var Directions = [6]Hex{
	{1, -1, 0}, {1, 0, -1}, {0, 1, -1},
	{-1, 1, 0}, {-1, 0, 1}, {0, -1, 1},
}

// Axes are the three distinct line axes. The opposite three directions
// would trace the same lines in reverse, so scanning these is enough.
var Axes = [3]Hex{
	{1, -1, 0}, {1, 0, -1}, {0, 1, -1},
}

func (h Hex) Add(o Hex) Hex {
	return Hex{h.Q + o.Q, h.R + o.R, h.S + o.S}
}

func (h Hex) Sub(o Hex) Hex {
	return Hex{h.Q - o.Q, h.R - o.R, h.S - o.S}
}

func (h Hex) Scale(k int) Hex {
	return Hex{h.Q * k, h.R * k, h.S * k}
}

// Length returns the hex distance from the origin: the maximum absolute
// cube component.
func (h Hex) Length() int {
	q, r, s := abs(h.Q), abs(h.R), abs(h.S)
	if q >= r && q >= s {
		return q
	}
	if r >= s {
		return r
	}
	return s
}

// DistanceTo returns the hex distance between two cells.
func (h Hex) DistanceTo(o Hex) int {
	return h.Sub(o).Length()
}

// Neighbors returns the six adjacent cells regardless of board bounds;
// callers filter against the board domain.
func (h Hex) Neighbors() [6]Hex {
	var out [6]Hex
	for i, d := range Directions {
		out[i] = h.Add(d)
	}
	return out
}

// Less imposes the total order (Q, then R) used for deterministic
// tie-breaking in move selection and canonical shape keys.
func (h Hex) Less(o Hex) bool {
	if h.Q != o.Q {
		return h.Q < o.Q
	}
	return h.R < o.R
}

// Disk returns every cell within the given radius of the origin, in a
// fixed (Q ascending, then R ascending) order.
func Disk(radius int) []Hex {
	size := 1 + 3*radius*(radius+1)
	out := make([]Hex, 0, size)
	for q := -radius; q <= radius; q++ {
		r1 := max(-radius, -q-radius)
		r2 := min(radius, -q+radius)
		for r := r1; r <= r2; r++ {
			out = append(out, NewHex(q, r))
		}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
