package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpong/internal/arena"
	"github.com/vovakirdan/blockpong/internal/core"
	"github.com/vovakirdan/blockpong/internal/storage"
)

var (
	flagSeconds float64
	flagAILeft  int
	flagAIRight int
	flagDT      float64
	flagRecord  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run a CPU-only match without a screen",
	Long: `Plays a full match between two CPU paddles as fast as possible and
prints the result. The same seed and flags always give the same match;
without --seed a time-based seed is used and printed.

Events are logged at debug level, so use --log-level debug to follow
every point and block.

Examples:
  blockpong simulate --seed 7
  blockpong simulate --ai-left 2 --ai-right 9 --seconds 60
  blockpong simulate --level fortress --record`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().Float64Var(&flagSeconds, "seconds", 0, "Match length in seconds (0 uses the config)")
	simulateCmd.Flags().IntVar(&flagAILeft, "ai-left", 5, "CPU level of the left paddle (1-10)")
	simulateCmd.Flags().IntVar(&flagAIRight, "ai-right", 5, "CPU level of the right paddle (1-10)")
	simulateCmd.Flags().Float64Var(&flagDT, "dt", 1.0/60.0, "Simulation step in seconds")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Save the result to match history as a demo match")
}

func runSimulate(_ *cobra.Command, _ []string) {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	level, err := resolveLevel(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	ac := cfg.Arena(seed)
	ac.AIEnabled = true
	ac.AIPlayer = core.Player2
	ac.AILevel = flagAIRight
	if flagSeconds > 0 {
		ac.MatchDuration = flagSeconds
	}

	left, err := arena.DifficultyForLevel(flagAILeft)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: --ai-left: %v\n", err)
		os.Exit(1)
	}

	state, err := arena.NewState(ac, level, arena.WithListener(func(e arena.Event) {
		switch ev := e.(type) {
		case arena.ScoreChanged:
			logger.Debug("point", "scorer", ev.Scorer, "score", fmt.Sprintf("%d-%d", ev.Score1, ev.Score2))
		case arena.BlockDestroyed:
			logger.Debug("block destroyed", "category", ev.Category, "x", ev.X, "y", ev.Y)
		case arena.ItemSpawned:
			logger.Debug("item spawned", "kind", ev.Kind, "target", ev.Target)
		case arena.LevelComplete:
			logger.Info("level complete", "level", ev.Level)
		}
	}))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	ctrl := arena.NewController(left, ac.FieldHeight, arena.NewSimpleRNG(seed+1))
	if err := state.SetMovement(core.Player1, arena.NewAIInput(ctrl)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("simulating", "level", level.ID, "seed", seed,
		"ai_left", flagAILeft, "ai_right", flagAIRight, "seconds", ac.MatchDuration)

	var outcome arena.TickOutcome
	for outcome.Kind == arena.Continuing {
		outcome, err = state.Tick(flagDT)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	s1, s2 := state.Score(core.Player1), state.Score(core.Player2)
	winner := "draw"
	if outcome.Winner != core.NoPlayer {
		winner = outcome.Winner.String()
	}

	fmt.Printf("Level:       %s\n", level.ID)
	fmt.Printf("Seed:        %d\n", seed)
	fmt.Printf("Score:       %d - %d\n", s1, s2)
	fmt.Printf("Winner:      %s\n", winner)
	fmt.Printf("Ended:       %s\n", outcome.Kind)
	fmt.Printf("Elapsed:     %.2fs\n", state.Elapsed())
	fmt.Printf("Blocks left: %d\n", state.RemainingBlocks())

	if !flagRecord {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	id, err := store.SaveMatch(storage.MatchRecord{
		Mode:     "demo",
		Level:    level.ID,
		Score1:   s1,
		Score2:   s2,
		Winner:   int(outcome.Winner),
		Reason:   outcome.Kind.String(),
		Duration: state.Elapsed(),
		AILevel:  flagAIRight,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error saving match: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Recorded as match #%d\n", id)
}
