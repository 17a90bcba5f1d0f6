package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockway/internal/games/blockway"
	"github.com/vovakirdan/blockway/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best solutions",
	Long: `Display the best recorded solutions for a level, or a summary for
all levels when no level is given.

Examples:
  blockway scores
  blockway scores 01-first-push`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func runScores(cmd *cobra.Command, args []string) {
	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		printSummary(store)
		return
	}

	levelID := args[0]
	if !levelExists(levelID) {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
		fmt.Fprintln(os.Stderr, "Run 'blockway list' to see available levels.")
		os.Exit(1)
	}

	results, err := store.BestResults(levelID, 10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Solutions - %s\n", levelID)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No solutions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'blockway play %s' to set the first record!\n", levelID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "Rank", "Turns", "Time", "Date")
	fmt.Printf("  %-4s  %-8s  %-8s  %s\n", "----", "-----", "----", "----")

	// Print results
	for i, entry := range results {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-8d  %-8s  %s\n", i+1, entry.Turns, fmt.Sprintf("%ds", entry.Duration), dateStr)
	}

	fmt.Println()
	best, err := store.BestTurns(levelID)
	if err == nil && best > 0 {
		fmt.Printf("Best: %d turns\n", best)
	}
}

// printSummary shows per-level stats for every level that has been played.
func printSummary(store *storage.Store) {
	stats, err := store.GetAllLevelStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		os.Exit(1)
	}

	levels := blockway.AvailableLevels()

	fmt.Println("Level results:")
	fmt.Println()
	fmt.Printf("  %-16s  %-8s  %-6s  %s\n", "Level", "Attempts", "Wins", "Best")
	fmt.Printf("  %-16s  %-8s  %-6s  %s\n", "-----", "--------", "----", "----")

	for _, l := range levels {
		st, ok := stats[l.ID]
		if !ok {
			fmt.Printf("  %-16s  %-8s  %-6s  %s\n", l.ID, "-", "-", "-")
			continue
		}
		bestStr := "-"
		if st.BestTurns > 0 {
			bestStr = fmt.Sprintf("%d turns", st.BestTurns)
		}
		fmt.Printf("  %-16s  %-8d  %-6d  %s\n", l.ID, st.Attempts, st.Wins, bestStr)
	}
}
