package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockpong/internal/arena"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List built-in and custom levels",
	Long: `Shows every level that can be passed to --level. Level files
(.yaml/.yml) in --levels-dir override built-in levels with the same ID.`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := loadArena()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	catalog, err := levelLoader().Catalog()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-12s  %-14s  %6s  %s\n", "ID", "Name", "Blocks", "Source")
	fmt.Printf("  %-12s  %-14s  %6s  %s\n", "--", "----", "------", "------")

	for _, l := range catalog {
		source := "built-in"
		if !l.Builtin() {
			source = l.FilePath
		}

		blocks := "?"
		if specs, err := l.Blocks(cfg.Field.Width, cfg.Field.Height); err == nil {
			blocks = fmt.Sprintf("%d", countDestructible(specs))
		}

		name := l.Name
		if l.ID == cfg.Match.Level {
			name += " *"
		}
		fmt.Printf("  %-12s  %-14s  %6s  %s\n", l.ID, name, blocks, source)
	}

	fmt.Println()
	fmt.Println("Blocks counts the destructible ones; * marks the configured level.")
}

func countDestructible(specs []arena.BlockSpec) int {
	n := 0
	for _, s := range specs {
		if s.Category.Destructible() {
			n++
		}
	}
	return n
}
