// Package engine owns one game session: it validates move requests,
// drives the placement-scoring-termination pipeline, runs AI seats
// through the same pipeline, and emits state snapshots for the
// presentation boundary. There is no global instance; the embedding
// application creates and disposes engines explicitly.
package engine

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"shapetac/config"
	"shapetac/game"
	"shapetac/searcher"
)

// Engine is a single game session. It is not safe for concurrent use;
// callers serialize access per session.
type Engine struct {
	cfg    config.GameConfig
	state  *game.State
	agents map[game.Marker]searcher.Agent
}

// New starts a fresh game from a validated configuration: fresh board
// of the configured radius, bonus layout applied, empty ledger, zero
// scores, configured first player to move.
func New(cfg config.GameConfig) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	first, err := game.ParseMarker(cfg.FirstPlayer)
	if err != nil {
		return nil, err
	}

	rules := game.Rules{
		TargetScore:      cfg.TargetScore,
		MaxRounds:        cfg.MaxRounds,
		MaxTriangleSide:  cfg.Scoring.MaxTriangleSide,
		HollowDims:       cfg.Scoring.HollowDims,
		VarietyThreshold: cfg.Scoring.VarietyThreshold,
		VarietyPoints:    cfg.Scoring.VarietyPoints,
		FirstMoveCenter:  cfg.Placement.FirstMoveCenter,
		AdjacencyRange:   cfg.Placement.AdjacencyRange,
	}
	state := game.NewState(cfg.Radius, rules, first)
	if err := applyBonusLayout(state.Board, cfg); err != nil {
		return nil, err
	}

	agents := make(map[game.Marker]searcher.Agent)
	for seat, difficulty := range cfg.Seats {
		if difficulty == "" {
			continue
		}
		marker, err := game.ParseMarker(seat)
		if err != nil {
			return nil, err
		}
		agent, err := searcher.New(searcher.Difficulty(difficulty), marker,
			searcher.WithSeed(cfg.Seed))
		if err != nil {
			return nil, fmt.Errorf("seat %s: %w", seat, err)
		}
		agents[marker] = agent
	}

	return &Engine{cfg: cfg, state: state, agents: agents}, nil
}

// applyBonusLayout assigns the immutable bonus multipliers: either the
// explicit cell list, or a seeded random scatter confined to the outer
// two rings so bonuses pull play outward.
func applyBonusLayout(b *game.Board, cfg config.GameConfig) error {
	if len(cfg.Bonus.Cells) > 0 {
		for _, cell := range cfg.Bonus.Cells {
			h := game.NewHex(cell.Q, cell.R)
			if !b.Contains(h) {
				return fmt.Errorf("bonus cell (%d,%d) is off the board", cell.Q, cell.R)
			}
			b.Bonuses[h] = cell.Multiplier
		}
		return nil
	}
	if cfg.Bonus.RandomCount <= 0 {
		return nil
	}
	var outer []game.Hex
	for _, h := range b.Domain() {
		if h.Length() >= b.Radius-1 {
			outer = append(outer, h)
		}
	}
	rng := rand.New(rand.NewSource(cfg.Seed))
	rng.Shuffle(len(outer), func(i, j int) { outer[i], outer[j] = outer[j], outer[i] })
	count := cfg.Bonus.RandomCount
	if count > len(outer) {
		count = len(outer)
	}
	for _, h := range outer[:count] {
		b.Bonuses[h] = cfg.Bonus.Multiplier
	}
	return nil
}

// ApplyMove attempts to place the current player's marker at the given
// axial coordinate. Rejections return an InvalidMoveError and leave the
// state byte-for-byte unchanged; acceptance runs the full pipeline and
// returns the new snapshot.
func (e *Engine) ApplyMove(q, r int) (*Snapshot, error) {
	cell := game.NewHex(q, r)
	if err := e.state.CanPlace(cell); err != nil {
		return nil, &InvalidMoveError{Reason: err.Error()}
	}
	mover := e.state.CurrentPlayer
	awarded := e.state.Play(cell)

	evt := log.Debug().
		Str("player", mover.String()).
		Int("q", q).Int("r", r).
		Int("turn", e.state.TurnIndex)
	if pts := e.state.Player(mover).LastTurnPoints; pts > 0 {
		evt = evt.Int("points", pts).Int("shapes", len(awarded))
	}
	evt.Msg("move applied")

	if e.state.Phase == game.GameOver {
		log.Info().
			Str("winner", e.state.Winner).
			Int("red", e.state.Red.Score).
			Int("blue", e.state.Blue.Score).
			Int("turns", e.state.TurnIndex).
			Msg("game over")
	}
	return e.Snapshot(), nil
}

// IsAITurn reports whether the seat currently to move is AI-controlled
// and the game is still running.
func (e *Engine) IsAITurn() bool {
	if e.state.Phase == game.GameOver {
		return false
	}
	_, ok := e.agents[e.state.CurrentPlayer]
	return ok
}

// PlayAITurn asks the current seat's agent for a move and applies it
// through the exact same path as a human move. The agent only ever sees
// clones of the live state.
func (e *Engine) PlayAITurn() (*Snapshot, error) {
	if e.state.Phase == game.GameOver {
		return nil, &InvalidMoveError{Reason: game.ErrGameOver.Error()}
	}
	seat := e.state.CurrentPlayer
	agent, ok := e.agents[seat]
	if !ok {
		return nil, &InvalidMoveError{Reason: fmt.Sprintf("seat %s is not AI-controlled", seat)}
	}
	move, err := agent.ChooseMove(e.state)
	if err != nil {
		return nil, fmt.Errorf("agent for %s: %w", seat, err)
	}
	return e.ApplyMove(move.Q, move.R)
}

// State exposes the live state for in-process callers (simulations,
// tests). The HTTP boundary only ever sees snapshots.
func (e *Engine) State() *game.State {
	return e.state
}
