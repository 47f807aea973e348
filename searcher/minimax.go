package searcher

import (
	"math"
	"sort"

	"shapetac/game"
)

// Minimax looks ahead a fixed number of plies with alpha-beta pruning.
// Branching is bounded by a beam of the greedily best-looking moves,
// and evaluated positions are memoized by state hash. Every node is
// reached through State.Clone + State.Play, the same pipeline the
// engine applies, so the search can never drift from the real rules.
type Minimax struct {
	player game.Marker
	depth  int
	beam   int
	table  map[tableKey]int
}

type tableKey struct {
	hash  uint64
	depth int
}

func NewMinimax(player game.Marker, depth, beam int) *Minimax {
	return &Minimax{
		player: player,
		depth:  depth,
		beam:   beam,
		table:  make(map[tableKey]int),
	}
}

type rankedMove struct {
	move   game.Hex
	points int
}

// orderMoves ranks the legal moves by immediate point gain, descending,
// with the (Q, R) order as a stable tie-break.
func orderMoves(s *game.State, player game.Marker) []rankedMove {
	moves := sortedMoves(s)
	ranked := make([]rankedMove, len(moves))
	for i, move := range moves {
		ranked[i] = rankedMove{move: move, points: simulatePoints(s, move, player)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].points > ranked[j].points })
	return ranked
}

func (m *Minimax) ChooseMove(s *game.State) (game.Hex, error) {
	ranked := orderMoves(s, m.player)
	if len(ranked) == 0 {
		return game.Hex{}, game.ErrNoLegalMoves
	}
	// Search a wider beam at the root so a winning move is not pruned
	// before it is ever examined.
	limit := m.beam * 2
	if limit < 20 {
		limit = 20
	}
	if limit > len(ranked) {
		limit = len(ranked)
	}

	best := ranked[0].move
	bestValue := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	for _, cand := range ranked[:limit] {
		child := s.Clone()
		child.Play(cand.move)
		value := m.search(child, m.depth-1, alpha, beta)
		if value > bestValue {
			bestValue = value
			best = cand.move
		}
		if bestValue > alpha {
			alpha = bestValue
		}
	}
	return best, nil
}

func (m *Minimax) search(s *game.State, depth int, alpha, beta int) int {
	key := tableKey{hash: s.Hash(), depth: depth}
	if v, ok := m.table[key]; ok {
		return v
	}
	if depth <= 0 || s.Phase == game.GameOver {
		v := m.evaluate(s)
		m.table[key] = v
		return v
	}

	mover := s.CurrentPlayer
	ranked := orderMoves(s, mover)
	if len(ranked) == 0 {
		v := m.evaluate(s)
		m.table[key] = v
		return v
	}
	if len(ranked) > m.beam {
		ranked = ranked[:m.beam]
	}

	var value int
	if mover == m.player {
		value = math.MinInt
		for _, cand := range ranked {
			child := s.Clone()
			child.Play(cand.move)
			if v := m.search(child, depth-1, alpha, beta); v > value {
				value = v
			}
			if value > alpha {
				alpha = value
			}
			if beta <= alpha {
				break
			}
		}
	} else {
		value = math.MaxInt
		for _, cand := range ranked {
			child := s.Clone()
			child.Play(cand.move)
			if v := m.search(child, depth-1, alpha, beta); v < value {
				value = v
			}
			if value < beta {
				beta = value
			}
			if beta <= alpha {
				break
			}
		}
	}
	m.table[key] = value
	return value
}

// evaluate scores a position as the searcher's lead over the opponent.
func (m *Minimax) evaluate(s *game.State) int {
	return s.Player(m.player).Score - s.Player(m.player.Opponent()).Score
}
