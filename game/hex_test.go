package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexInvariant(t *testing.T) {
	t.Run("cube components of every generated cell sum to zero", func(t *testing.T) {
		for _, h := range Disk(5) {
			require.Zero(t, h.Q+h.R+h.S, "cell %v violates the cube invariant", h)
		}
	})

	t.Run("arithmetic preserves the cube invariant", func(t *testing.T) {
		a := NewHex(2, -3)
		b := NewHex(-1, 4)

		sum := a.Add(b)
		diff := a.Sub(b)
		scaled := a.Scale(3)

		require.Zero(t, sum.Q+sum.R+sum.S)
		require.Zero(t, diff.Q+diff.R+diff.S)
		require.Zero(t, scaled.Q+scaled.R+scaled.S)
	})
}

func TestHexDistance(t *testing.T) {
	t.Run("distance to self is zero", func(t *testing.T) {
		h := NewHex(3, -1)
		require.Zero(t, h.DistanceTo(h))
	})

	t.Run("neighbors are at distance one", func(t *testing.T) {
		h := NewHex(1, 1)
		for _, n := range h.Neighbors() {
			require.Equal(t, 1, h.DistanceTo(n), "neighbor %v should be adjacent", n)
		}
	})

	t.Run("distance is symmetric", func(t *testing.T) {
		a := NewHex(-2, 4)
		b := NewHex(3, -3)
		require.Equal(t, a.DistanceTo(b), b.DistanceTo(a))
	})

	t.Run("length is the max absolute cube component", func(t *testing.T) {
		require.Equal(t, 4, NewHex(4, -2).Length())
		require.Equal(t, 3, NewHex(0, -3).Length())
		require.Equal(t, 5, NewHex(-2, -3).Length())
	})
}

func TestDisk(t *testing.T) {
	t.Run("disk size matches the hexagonal number formula", func(t *testing.T) {
		for radius := 1; radius <= 6; radius++ {
			require.Len(t, Disk(radius), 1+3*radius*(radius+1),
				"radius %d disk has wrong cell count", radius)
		}
	})

	t.Run("every disk cell is within radius", func(t *testing.T) {
		for _, h := range Disk(3) {
			require.LessOrEqual(t, h.Length(), 3)
		}
	})

	t.Run("cells come out in strictly ascending (Q,R) order", func(t *testing.T) {
		cells := Disk(4)
		for i := 1; i < len(cells); i++ {
			require.True(t, cells[i-1].Less(cells[i]),
				"cell %v should precede %v", cells[i-1], cells[i])
		}
	})
}

func TestHexLess(t *testing.T) {
	t.Run("orders by Q first then R", func(t *testing.T) {
		require.True(t, NewHex(0, 5).Less(NewHex(1, -5)))
		require.True(t, NewHex(1, -1).Less(NewHex(1, 0)))
		require.False(t, NewHex(1, 0).Less(NewHex(1, 0)))
		require.False(t, NewHex(2, 0).Less(NewHex(1, 3)))
	})
}
