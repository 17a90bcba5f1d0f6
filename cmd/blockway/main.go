// blockway is a turn-based grid puzzle game played in the terminal.
//
// Usage:
//
//	blockway list              - List available levels
//	blockway play [level]      - Play a level (first level if omitted)
//	blockway menu              - Interactive level picker
//	blockway replay <file>     - Replay a recorded move script
//	blockway serve             - Start SSH server for remote play
//	blockway scores [level]    - Show best solutions
//
// Global flags:
//
//	--fps <rate>       - Set UI tick rate (default: 30)
//	--db <path>        - Set database path (default: ~/.blockway/results.db)
//	--config <path>    - Path to custom config YAML
//	--levels <dir>     - Load levels from a directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockway/internal/config"
	"github.com/vovakirdan/blockway/internal/games/blockway"
)

var (
	// Global flags
	flagFPS       int
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockway",
	Short: "Blockway - a grid puzzle game in your terminal",
	Long: `Blockway is a turn-based puzzle game: push crates, ride belts,
trigger doors, dodge creatures, collect every gem and reach the exit.

Available commands:
  list     - Show all available levels
  play     - Play a level directly
  menu     - Interactive level picker
  replay   - Replay a recorded move script
  serve    - Start SSH server for remote play
  scores   - View best solutions

Examples:
  blockway list
  blockway play 01-first-push
  blockway menu
  blockway serve --ssh :2222
  blockway scores 01-first-push`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		applyGlobalConfig()
	},
}

// applyGlobalConfig loads the game config and points the game at any
// external levels directory before a subcommand runs.
func applyGlobalConfig() {
	cfg, err := config.LoadBlockway(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using defaults\n", err)
		cfg = config.DefaultBlockwayConfig()
	}
	blockway.SetConfig(cfg)

	if flagLevelsDir != "" {
		blockway.SetLevelsDir(flagLevelsDir)
	}
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "UI tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.blockway/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level files")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
