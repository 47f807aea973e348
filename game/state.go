package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/fnv"
)

// Phase is the turn machine's coarse state.
type Phase int

const (
	InProgress Phase = iota
	// FinalTurn means a player has reached the target score and the
	// opponent is owed exactly one more move before the game ends.
	FinalTurn
	GameOver
)

// Winner values. Player wins use the marker names.
const (
	WinnerNone = ""
	WinnerDraw = "draw"
)

// Validation failure reasons surfaced to callers as rejected moves.
var (
	ErrGameOver     = errors.New("game is already over")
	ErrOffBoard     = errors.New("cell is not on the board")
	ErrOccupied     = errors.New("cell is already occupied")
	ErrNotCenter    = errors.New("first move must be the center cell")
	ErrOutOfRange   = errors.New("move is out of range of existing markers")
	ErrNoLegalMoves = errors.New("no legal moves available")
)

// PlayerState tracks one seat's accumulated standing plus the
// turn-scoped bookkeeping the presentation layer consumes.
type PlayerState struct {
	Score          int
	TurnsTaken     int
	LastTurnShapes []Shape
	LastTurnPoints int
}

// State is the complete mutable game state. It is owned and mutated
// exclusively by the session engine; the move selector works on clones.
type State struct {
	Board  *Board
	Ledger Ledger
	Rules  Rules

	Red  PlayerState
	Blue PlayerState

	CurrentPlayer Marker
	TurnIndex     int
	Phase         Phase
	// OwedPlayer is the seat owed the fairness turn while Phase is
	// FinalTurn; Empty otherwise.
	OwedPlayer Marker
	Winner     string

	// LastScoringEvent holds the newest move's awards in award order.
	LastScoringEvent []Shape
}

// NewState creates a fresh game: empty board, empty ledger, zero
// scores, turn index 0.
func NewState(radius int, rules Rules, firstPlayer Marker) *State {
	if radius < 1 {
		panic(fmt.Sprintf("board radius %d out of range", radius))
	}
	if firstPlayer == Empty {
		firstPlayer = Red
	}
	return &State{
		Board:         NewBoard(radius),
		Ledger:        NewLedger(),
		Rules:         rules,
		CurrentPlayer: firstPlayer,
	}
}

// Player returns the mutable per-seat state for a marker.
func (s *State) Player(m Marker) *PlayerState {
	switch m {
	case Red:
		return &s.Red
	case Blue:
		return &s.Blue
	}
	panic("no player state for empty marker")
}

// CanPlace validates a move without mutating anything. A nil return
// means Play may be called with the same cell.
func (s *State) CanPlace(h Hex) error {
	if s.Phase == GameOver {
		return ErrGameOver
	}
	if !s.Board.Contains(h) {
		return ErrOffBoard
	}
	if s.Board.At(h) != Empty {
		return ErrOccupied
	}
	if s.Rules.FirstMoveCenter && s.TurnIndex == 0 && h != (Hex{}) {
		return ErrNotCenter
	}
	if s.Rules.AdjacencyRange > 0 && s.TurnIndex > 0 {
		inRange := false
		for _, o := range s.Board.OccupiedCells() {
			if h.DistanceTo(o) <= s.Rules.AdjacencyRange {
				inRange = true
				break
			}
		}
		if !inRange {
			return ErrOutOfRange
		}
	}
	return nil
}

// LegalMoves returns every cell the current player may occupy, in the
// board's deterministic domain order.
func (s *State) LegalMoves() []Hex {
	if s.Phase == GameOver {
		return nil
	}
	var out []Hex
	for _, h := range s.Board.EmptyCells() {
		if s.CanPlace(h) == nil {
			out = append(out, h)
		}
	}
	return out
}

// Play applies a validated placement for the current player: marker
// down, scorer run, points credited, bookkeeping updated, turn
// advanced, termination evaluated. It returns the newly awarded shapes.
// Callers must have cleared the move through CanPlace; a violation here
// panics, since the engine never partially applies a move.
func (s *State) Play(h Hex) []Shape {
	if err := s.CanPlace(h); err != nil {
		panic(fmt.Sprintf("unvalidated move reached Play: %v", err))
	}
	mover := s.CurrentPlayer
	s.Board.Place(h, mover)

	awarded := DetectShapes(s.Board, s.Ledger, h, mover, s.Rules)
	gained := 0
	for _, sh := range awarded {
		gained += sh.Points
	}

	ps := s.Player(mover)
	ps.Score += gained
	ps.TurnsTaken++
	ps.LastTurnShapes = awarded
	ps.LastTurnPoints = gained
	s.LastScoringEvent = awarded

	s.TurnIndex++
	s.CurrentPlayer = mover.Opponent()

	s.evaluateTermination(mover)
	return awarded
}

// evaluateTermination applies the end conditions in their fixed order
// after mover's placement.
func (s *State) evaluateTermination(mover Marker) {
	switch {
	case s.Board.IsFull():
		s.finish()
	case s.Phase == InProgress && s.Rules.TargetScore > 0 &&
		s.Player(mover).Score >= s.Rules.TargetScore:
		// Fairness window: the opponent is owed one last chance to
		// equal or exceed the target before the game ends.
		s.Phase = FinalTurn
		s.OwedPlayer = mover.Opponent()
	case s.Phase == FinalTurn && mover == s.OwedPlayer:
		s.finish()
	case s.Rules.MaxRounds > 0 && s.TurnIndex >= s.Rules.MaxRounds*2:
		s.finish()
	}
}

func (s *State) finish() {
	s.Phase = GameOver
	s.OwedPlayer = Empty
	switch {
	case s.Red.Score > s.Blue.Score:
		s.Winner = Red.String()
	case s.Blue.Score > s.Red.Score:
		s.Winner = Blue.String()
	default:
		s.Winner = WinnerDraw
	}
}

// Clone deep-copies the state for scratch simulation. Rules are
// immutable and shared; shape slices are never mutated after award, so
// the clone shares them.
func (s *State) Clone() *State {
	out := *s
	out.Board = s.Board.Clone()
	out.Ledger = s.Ledger.Clone()
	return &out
}

// Hash folds the occupancy and current player into a 64-bit key for
// transposition tables. Cells are folded in domain order so equal
// positions hash equally.
func (s *State) Hash() uint64 {
	hasher := fnv.New64a()
	binary.Write(hasher, binary.LittleEndian, int64(s.CurrentPlayer))
	for _, h := range s.Board.Domain() {
		binary.Write(hasher, binary.LittleEndian, int64(s.Board.At(h)))
	}
	return hasher.Sum64()
}
