package searcher

import (
	"sort"

	"golang.org/x/exp/rand"

	"shapetac/game"
)

// simulatePoints plays one candidate move on scratch copies of the
// board and ledger and returns the turn's point total. This is the same
// validate-place-score pipeline the engine applies, minus the turn
// bookkeeping the single-turn total does not depend on.
func simulatePoints(s *game.State, cell game.Hex, player game.Marker) int {
	board := s.Board.Clone()
	ledger := s.Ledger.Clone()
	board.Place(cell, player)
	total := 0
	for _, sh := range game.DetectShapes(board, ledger, cell, player, s.Rules) {
		total += sh.Points
	}
	return total
}

// sortedMoves returns the legal moves in the (Q, R) total order that
// anchors every deterministic tie-break.
func sortedMoves(s *game.State) []game.Hex {
	moves := s.LegalMoves()
	sort.Slice(moves, func(i, j int) bool { return moves[i].Less(moves[j]) })
	return moves
}

// Greedy simulates every legal move and takes the maximum single-turn
// point total. Ties go to the lowest coordinate in (Q, R) order.
type Greedy struct {
	player game.Marker
}

func NewGreedy(player game.Marker) *Greedy {
	return &Greedy{player: player}
}

func (g *Greedy) ChooseMove(s *game.State) (game.Hex, error) {
	moves := sortedMoves(s)
	if len(moves) == 0 {
		return game.Hex{}, game.ErrNoLegalMoves
	}
	best := moves[0]
	bestPoints := -1
	for _, move := range moves {
		if points := simulatePoints(s, move, g.player); points > bestPoints {
			bestPoints = points
			best = move
		}
	}
	return best, nil
}

// easy ranks moves greedily and picks uniformly between the top two, so
// it blunders just often enough to be beatable.
type easy struct {
	player game.Marker
	rng    *rand.Rand
}

func newEasy(player game.Marker, seed uint64) *easy {
	return &easy{player: player, rng: rand.New(rand.NewSource(seed))}
}

func (e *easy) ChooseMove(s *game.State) (game.Hex, error) {
	moves := sortedMoves(s)
	if len(moves) == 0 {
		return game.Hex{}, game.ErrNoLegalMoves
	}
	type scored struct {
		move   game.Hex
		points int
	}
	ranked := make([]scored, len(moves))
	for i, move := range moves {
		ranked[i] = scored{move: move, points: simulatePoints(s, move, e.player)}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].points > ranked[j].points })
	top := 2
	if len(ranked) < top {
		top = len(ranked)
	}
	return ranked[e.rng.Intn(top)].move, nil
}

// random plays a uniformly random legal move.
type random struct {
	player game.Marker
	rng    *rand.Rand
}

func newRandom(player game.Marker, seed uint64) *random {
	return &random{player: player, rng: rand.New(rand.NewSource(seed))}
}

func (r *random) ChooseMove(s *game.State) (game.Hex, error) {
	moves := sortedMoves(s)
	if len(moves) == 0 {
		return game.Hex{}, game.ErrNoLegalMoves
	}
	return moves[r.rng.Intn(len(moves))], nil
}
