package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/treasure-run/internal/level"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the built-in levels",
	Long:  `Shows every level shipped with the game.`,
	RunE:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) error {
	levels, err := level.List()
	if err != nil {
		return err
	}

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return nil
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "ID", "Size", "Coins", "Name")
	fmt.Printf("  %-*s  %-7s  %-5s  %s\n", maxIDLen, "--", "----", "-----", "----")

	for _, l := range levels {
		size := fmt.Sprintf("%dx%d", l.Width, l.Height)
		fmt.Printf("  %-*s  %-7s  %-5d  %s\n", maxIDLen, l.ID, size, len(l.Coins), l.Name)
	}

	fmt.Println()
	fmt.Println("Run 'treasure play <id>' to play a level.")
	return nil
}
