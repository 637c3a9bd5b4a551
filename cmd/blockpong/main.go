// blockpong is a terminal Pong with Breakout blocks in the middle of the field.
//
// Usage:
//
//	blockpong play [mode]     - Play a mode, or pick one from the menu
//	blockpong list            - List available modes
//	blockpong levels          - List built-in and custom levels
//	blockpong simulate        - Run a headless CPU-vs-CPU match
//	blockpong scores [mode]   - Show match history
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible matches
//	--db <path>           - Set database path (default: ~/.blockpong/blockpong.db)
//	--config <path>       - Use a custom arena.yaml
//	--difficulty <name>   - Apply a preset: easy, normal, hard, expert
//	--level <id>          - Level to play
//	--levels-dir <path>   - Directory with custom level files
//	--log-level <level>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/blockpong/internal/games/pong"
	"github.com/vovakirdan/blockpong/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLevel      string
	flagLevelsDir  string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockpong",
	Short: "Pong with a wall of blocks in the middle",
	Long: `blockpong is a two-paddle game played in the terminal. A wall of
blocks sits between the paddles; break through it to score, and
smash bonus blocks to drop power-ups on your opponent.

Available commands:
  play      - Play a mode (menu when no mode is given)
  list      - Show all available modes
  levels    - Show built-in and custom levels
  simulate  - Run a headless CPU-vs-CPU match
  scores    - View match history

Examples:
  blockpong play
  blockpong play arena --difficulty hard --level fortress
  blockpong simulate --level checker --ai-left 3 --ai-right 9
  blockpong scores versus`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath(), "Path to match history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom arena config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert")
	rootCmd.PersistentFlags().StringVar(&flagLevel, "level", "", "Level ID (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with custom level files (default ~/.blockpong/levels)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
}
