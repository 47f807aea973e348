package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"shapetac/config"
	"shapetac/engine"
	"shapetac/game"
	"shapetac/server"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		serve      = flag.Bool("serve", false, "run the HTTP game server")
		addr       = flag.String("addr", "", "listen address (overrides config)")

		games  = flag.Int("games", 10, "simulation: number of games")
		radius = flag.Int("radius", 4, "simulation: board radius")
		p1     = flag.String("p1", "random", "simulation: red strategy")
		p2     = flag.String("p2", "greedy", "simulation: blue strategy")
		seed   = flag.Uint64("seed", 1, "simulation: base rng seed")
	)
	flag.Parse()

	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg := &config.Config{Game: config.DefaultGame()}
	cfg.ApplyDefaults()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		cfg = loaded
	}

	if *serve {
		listen := *addr
		if listen == "" {
			listen = fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		}
		srv := server.New(cfg.Game)
		if err := srv.Start(listen); err != nil {
			log.Fatal().Err(err).Msg("server exited")
		}
		return
	}

	runSimulation(cfg.Game, *games, *radius, *p1, *p2, *seed)
}

// runSimulation plays AI-vs-AI games and prints a summary report:
// win rates, average scores and turns, and shape frequencies.
func runSimulation(base config.GameConfig, games, radius int, p1, p2 string, seed uint64) {
	results := map[string]int{}
	shapeCounts := map[string]int{}
	totalTurns, totalRed, totalBlue := 0, 0, 0

	start := time.Now()
	for i := 0; i < games; i++ {
		cfg := base
		cfg.Radius = radius
		cfg.Seed = seed + uint64(i)
		cfg.Seats = map[string]string{"red": p1, "blue": p2}

		eng, err := engine.New(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to start game")
		}
		for eng.State().Phase != game.GameOver {
			if _, err := eng.PlayAITurn(); err != nil {
				log.Fatal().Err(err).Int("game", i).Msg("agent move failed")
			}
			for _, s := range eng.State().LastScoringEvent {
				shapeCounts[s.Kind.String()]++
			}
		}

		st := eng.State()
		results[st.Winner]++
		totalTurns += st.TurnIndex
		totalRed += st.Red.Score
		totalBlue += st.Blue.Score
		fmt.Printf("Game %d/%d: winner=%s score=%d-%d turns=%d\n",
			i+1, games, st.Winner, st.Red.Score, st.Blue.Score, st.TurnIndex)
	}
	elapsed := time.Since(start)

	n := float64(games)
	fmt.Printf("\n%s\n", divider)
	fmt.Printf("SIMULATION REPORT: %s (red) vs %s (blue)\n", p1, p2)
	fmt.Printf("Games: %d  Time: %.2fs (%.3fs/game)\n", games, elapsed.Seconds(), elapsed.Seconds()/n)
	fmt.Printf("%s\n", divider)
	fmt.Printf("Red wins:  %d (%.1f%%)\n", results["red"], float64(results["red"])/n*100)
	fmt.Printf("Blue wins: %d (%.1f%%)\n", results["blue"], float64(results["blue"])/n*100)
	fmt.Printf("Draws:     %d (%.1f%%)\n", results["draw"], float64(results["draw"])/n*100)
	fmt.Printf("Avg turns: %.1f  Avg score: red %.1f, blue %.1f\n",
		float64(totalTurns)/n, float64(totalRed)/n, float64(totalBlue)/n)

	fmt.Println("Shape frequencies (total across all games):")
	kinds := make([]string, 0, len(shapeCounts))
	for k := range shapeCounts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return shapeCounts[kinds[i]] > shapeCounts[kinds[j]] })
	for _, k := range kinds {
		fmt.Printf("  %s: %d (%.1f per game)\n", k, shapeCounts[k], float64(shapeCounts[k])/n)
	}
	fmt.Printf("%s\n", divider)
}

const divider = "========================================"

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
