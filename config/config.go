// Package config defines the YAML configuration schema for the game
// server and the per-game defaults applied when a client creates a
// session without overriding them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// GameConfig describes one game session: board, end conditions, seat
// assignment, bonus layout, and scoring knobs.
type GameConfig struct {
	Radius      int    `yaml:"radius"`
	TargetScore int    `yaml:"target_score"`
	MaxRounds   int    `yaml:"max_rounds"`
	FirstPlayer string `yaml:"first_player"` // "red" or "blue"

	// Seats maps "red"/"blue" to an AI difficulty. A missing or empty
	// entry means the seat is human-controlled.
	Seats map[string]string `yaml:"seats"`

	// Seed drives bonus placement and the stochastic AI tiers.
	Seed uint64 `yaml:"seed"`

	Bonus     BonusConfig     `yaml:"bonus"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Placement PlacementConfig `yaml:"placement"`
}

// BonusConfig selects either an explicit bonus cell layout or a random
// scatter confined to the board's outer two rings.
type BonusConfig struct {
	// Cells lists explicit bonus cells. When non-empty, RandomCount is
	// ignored.
	Cells []BonusCell `yaml:"cells"`
	// RandomCount scatters this many bonus cells over the outer rings.
	RandomCount int `yaml:"random_count"`
	// Multiplier applies to randomly scattered cells.
	Multiplier int `yaml:"multiplier"`
}

// BonusCell is one explicit bonus assignment.
type BonusCell struct {
	Q          int `yaml:"q"`
	R          int `yaml:"r"`
	Multiplier int `yaml:"multiplier"`
}

// ScoringConfig exposes the scoring-table knobs the rules leave open.
type ScoringConfig struct {
	MaxTriangleSide  int   `yaml:"max_triangle_side"`
	HollowDims       []int `yaml:"hollow_dims"`
	VarietyThreshold int   `yaml:"variety_threshold"`
	VarietyPoints    int   `yaml:"variety_points"`
}

// PlacementConfig gates the optional placement restrictions.
type PlacementConfig struct {
	FirstMoveCenter bool `yaml:"first_move_center"`
	AdjacencyRange  int  `yaml:"adjacency_range"`
}

// DefaultGame returns the baseline session configuration.
func DefaultGame() GameConfig {
	return GameConfig{
		Radius:      4,
		TargetScore: 40,
		MaxRounds:   25,
		FirstPlayer: "red",
		Seed:        1,
		Bonus: BonusConfig{
			RandomCount: 5,
			Multiplier:  2,
		},
		Scoring: ScoringConfig{
			MaxTriangleSide:  8,
			HollowDims:       []int{3, 4},
			VarietyThreshold: 3,
			VarietyPoints:    10,
		},
	}
}

// Load reads configuration from a YAML file and fills in defaults for
// omitted fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5001
	}
	def := DefaultGame()
	g := &c.Game
	if g.Radius == 0 {
		g.Radius = def.Radius
	}
	if g.TargetScore == 0 {
		g.TargetScore = def.TargetScore
	}
	if g.MaxRounds == 0 {
		g.MaxRounds = def.MaxRounds
	}
	if g.FirstPlayer == "" {
		g.FirstPlayer = def.FirstPlayer
	}
	if g.Seed == 0 {
		g.Seed = def.Seed
	}
	if g.Bonus.Multiplier == 0 {
		g.Bonus.Multiplier = def.Bonus.Multiplier
	}
	if g.Scoring.MaxTriangleSide == 0 {
		g.Scoring.MaxTriangleSide = def.Scoring.MaxTriangleSide
	}
	if len(g.Scoring.HollowDims) == 0 {
		g.Scoring.HollowDims = def.Scoring.HollowDims
	}
	if g.Scoring.VarietyThreshold == 0 {
		g.Scoring.VarietyThreshold = def.Scoring.VarietyThreshold
	}
	if g.Scoring.VarietyPoints == 0 {
		g.Scoring.VarietyPoints = def.Scoring.VarietyPoints
	}
}

// Validate rejects configurations the engine cannot honor.
func (g GameConfig) Validate() error {
	if g.Radius < 1 || g.Radius > 12 {
		return fmt.Errorf("radius %d out of range [1, 12]", g.Radius)
	}
	if g.MaxRounds < 1 {
		return fmt.Errorf("max_rounds must be positive, got %d", g.MaxRounds)
	}
	if g.FirstPlayer != "red" && g.FirstPlayer != "blue" {
		return fmt.Errorf("first_player must be red or blue, got %q", g.FirstPlayer)
	}
	for seat := range g.Seats {
		if seat != "red" && seat != "blue" {
			return fmt.Errorf("unknown seat %q", seat)
		}
	}
	for _, cell := range g.Bonus.Cells {
		if cell.Multiplier < 2 {
			return fmt.Errorf("bonus cell (%d,%d) multiplier must be >1", cell.Q, cell.R)
		}
	}
	if len(g.Bonus.Cells) == 0 && g.Bonus.RandomCount > 0 && g.Bonus.Multiplier < 2 {
		return fmt.Errorf("bonus multiplier must be >1, got %d", g.Bonus.Multiplier)
	}
	for _, d := range g.Scoring.HollowDims {
		if d < 3 {
			return fmt.Errorf("hollow dimension %d below minimum 3", d)
		}
	}
	return nil
}
