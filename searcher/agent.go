package searcher

import (
	"fmt"

	"shapetac/game"
)

// Agent picks a placement for one seat. ChooseMove is called only when
// it is the seat's turn and the game is not over; it must not mutate
// the live state, only clones of it.
type Agent interface {
	ChooseMove(s *game.State) (game.Hex, error)
}

// Difficulty selects an agent behavior tier.
type Difficulty string

const (
	// RandomTier plays a uniformly random legal move.
	RandomTier Difficulty = "random"
	// EasyTier scores every move greedily but picks randomly between
	// the best and second best.
	EasyTier Difficulty = "easy"
	// GreedyTier maximizes the single-turn point total, breaking ties
	// toward the lowest (Q, R) coordinate.
	GreedyTier Difficulty = "greedy"
	// SmartTier is depth-2 alpha-beta minimax with beam width 6.
	SmartTier Difficulty = "smart"
	// GeniusTier is depth-3 alpha-beta minimax with beam width 5.
	GeniusTier Difficulty = "genius"
)

type Option func(*settings)

type settings struct {
	seed uint64
}

// WithSeed fixes the rng seed of the stochastic tiers so games are
// reproducible.
func WithSeed(seed uint64) Option {
	return func(s *settings) {
		s.seed = seed
	}
}

// New builds an agent for a seat at the given difficulty.
func New(difficulty Difficulty, player game.Marker, options ...Option) (Agent, error) {
	cfg := settings{seed: 1}
	for _, option := range options {
		option(&cfg)
	}
	switch difficulty {
	case RandomTier:
		return newRandom(player, cfg.seed), nil
	case EasyTier:
		return newEasy(player, cfg.seed), nil
	case GreedyTier:
		return NewGreedy(player), nil
	case SmartTier:
		return NewMinimax(player, 2, 6), nil
	case GeniusTier:
		return NewMinimax(player, 3, 5), nil
	}
	return nil, fmt.Errorf("unknown difficulty %q", difficulty)
}
