package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockway/internal/games/blockway"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available levels",
	Long:  `Shows all built-in levels plus any loaded from the --levels directory.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	levels := blockway.AvailableLevels()

	if len(levels) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "ID", "Name", "Size")
	fmt.Printf("  %-*s  %-20s  %s\n", maxIDLen, "--", "----", "----")

	// Print levels
	for _, l := range levels {
		fmt.Printf("  %-*s  %-20s  %dx%d\n", maxIDLen, l.ID, l.Name, l.Width, l.Height)
	}

	fmt.Println()
	fmt.Println("Run 'blockway play <id>' to play a level.")
}
