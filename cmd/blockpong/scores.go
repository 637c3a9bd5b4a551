package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockpong/internal/platform/tui"
	"github.com/vovakirdan/blockpong/internal/registry"
	"github.com/vovakirdan/blockpong/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show match history",
	Long: `Browse recent matches and per-mode statistics.

On a terminal this opens an interactive table. With --plain, or when
output is piped, the history is printed as text.

Examples:
  blockpong scores
  blockpong scores arena --plain
  blockpong scores demo --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print as text instead of the interactive table")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded matches of the mode (all modes without one)")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 20, "Matches to print in plain mode")
}

func runScores(_ *cobra.Command, args []string) {
	mode := ""
	if len(args) == 1 {
		mode = args[0]
		if !registry.Exists(mode) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", mode)
			fmt.Fprintln(os.Stderr, "Run 'blockpong list' to see available modes.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening match history: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearMatches(mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			os.Exit(1)
		}
		if mode == "" {
			fmt.Println("Cleared all matches.")
		} else {
			fmt.Printf("Cleared %s matches.\n", mode)
		}
		return
	}

	if flagPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		if err := printScores(store, mode); err != nil {
			fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
			os.Exit(1)
		}
		return
	}

	width, height := terminalSize()
	if _, err := tui.RunScoreboard(store, mode, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printScores(store *storage.Store, mode string) error {
	matches, err := store.RecentMatches(mode, flagLimit)
	if err != nil {
		return err
	}

	title := "all modes"
	if m, ok := registry.Lookup(mode); ok {
		title = m.Title
	}
	fmt.Printf("Match History - %s\n", title)
	fmt.Println()

	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockpong play' to record the first one!")
		return nil
	}

	fmt.Printf("  %-8s  %-12s  %-10s  %-7s  %-6s  %-15s  %s\n",
		"Mode", "Date", "Level", "Score", "Winner", "Ended", "Time")
	fmt.Printf("  %-8s  %-12s  %-10s  %-7s  %-6s  %-15s  %s\n",
		"----", "----", "-----", "-----", "------", "-----", "----")

	for _, r := range matches {
		row := tui.MatchRow(r)
		fmt.Printf("  %-8s  %-12s  %-10s  %-7s  %-6s  %-15s  %s\n",
			r.Mode, row[0], row[1], row[2], row[3], row[4], row[5])
	}

	fmt.Println()
	stats, err := store.GetAllModeStats()
	if err != nil {
		return err
	}
	for _, m := range registry.List() {
		s, ok := stats[m.ID]
		if !ok || (mode != "" && m.ID != mode) {
			continue
		}
		fmt.Printf("%-8s %d matches, P1 %d, P2 %d, draws %d, best %d, avg %.0fs\n",
			m.ID+":", s.Matches, s.P1Wins, s.P2Wins, s.Draws, s.BestScore, s.AvgLength)
	}
	return nil
}
