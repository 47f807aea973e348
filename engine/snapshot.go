package engine

import (
	"fmt"

	"shapetac/game"
)

// CellView is a board coordinate on the wire.
type CellView struct {
	Q int `json:"q"`
	R int `json:"r"`
	S int `json:"s"`
}

// ShapeView is one awarded shape on the wire, in award order, with the
// kind and size as typed fields rather than an encoded label.
type ShapeView struct {
	Kind   string     `json:"kind"`
	Size   int        `json:"size,omitempty"`
	Points int        `json:"points"`
	Cells  []CellView `json:"cells"`
}

// PlayerView is one seat's standing.
type PlayerView struct {
	Score          int         `json:"score"`
	TurnsTaken     int         `json:"turnsTaken"`
	LastTurnPoints int         `json:"lastTurnPoints"`
	LastTurnShapes []ShapeView `json:"lastTurnShapes"`
}

// Snapshot is the full state record returned after game start and
// after every accepted move. Board keys are "q,r,s" strings mapping to
// "red", "blue", or "" for empty.
type Snapshot struct {
	Radius           int                   `json:"radius"`
	Board            map[string]string     `json:"board"`
	Bonuses          map[string]int        `json:"bonuses"`
	Players          map[string]PlayerView `json:"players"`
	CurrentPlayer    string                `json:"currentPlayer"`
	TurnIndex        int                   `json:"turnIndex"`
	MaxRounds        int                   `json:"maxRounds"`
	TargetScore      int                   `json:"targetScore"`
	FinalTurn        bool                  `json:"finalTurn"`
	GameOver         bool                  `json:"gameOver"`
	Winner           string                `json:"winner,omitempty"`
	LastScoringEvent []ShapeView           `json:"lastScoringEvent"`
}

func cellKey(h game.Hex) string {
	return fmt.Sprintf("%d,%d,%d", h.Q, h.R, h.S)
}

func shapeViews(shapes []game.Shape) []ShapeView {
	out := make([]ShapeView, len(shapes))
	for i, s := range shapes {
		cells := make([]CellView, len(s.Cells))
		for j, c := range s.Cells {
			cells[j] = CellView{Q: c.Q, R: c.R, S: c.S}
		}
		out[i] = ShapeView{
			Kind:   s.Kind.String(),
			Size:   s.Size,
			Points: s.Points,
			Cells:  cells,
		}
	}
	return out
}

func playerView(ps game.PlayerState) PlayerView {
	return PlayerView{
		Score:          ps.Score,
		TurnsTaken:     ps.TurnsTaken,
		LastTurnPoints: ps.LastTurnPoints,
		LastTurnShapes: shapeViews(ps.LastTurnShapes),
	}
}

// Snapshot builds the wire record from the live state.
func (e *Engine) Snapshot() *Snapshot {
	s := e.state
	board := make(map[string]string, len(s.Board.Domain()))
	for _, h := range s.Board.Domain() {
		board[cellKey(h)] = s.Board.At(h).String()
	}
	bonuses := make(map[string]int, len(s.Board.Bonuses))
	for h, mult := range s.Board.Bonuses {
		bonuses[cellKey(h)] = mult
	}
	return &Snapshot{
		Radius:  s.Board.Radius,
		Board:   board,
		Bonuses: bonuses,
		Players: map[string]PlayerView{
			game.Red.String():  playerView(s.Red),
			game.Blue.String(): playerView(s.Blue),
		},
		CurrentPlayer:    s.CurrentPlayer.String(),
		TurnIndex:        s.TurnIndex,
		MaxRounds:        s.Rules.MaxRounds,
		TargetScore:      s.Rules.TargetScore,
		FinalTurn:        s.Phase == game.FinalTurn,
		GameOver:         s.Phase == game.GameOver,
		Winner:           s.Winner,
		LastScoringEvent: shapeViews(s.LastScoringEvent),
	}
}
