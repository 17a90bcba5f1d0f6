package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockway/internal/core"
	"github.com/vovakirdan/blockway/internal/games/blockway"
	"github.com/vovakirdan/blockway/internal/platform/tui"
	"github.com/vovakirdan/blockway/internal/registry"
	"github.com/vovakirdan/blockway/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing the given level, or the first level if none is given.

Controls:
  Arrows/WASD  - Move (one turn per press)
  Space/.      - Wait a turn
  U            - Undo last turn
  R            - Restart level
  P            - Pause
  Q/Ctrl+C     - Quit

Examples:
  blockway play
  blockway play 01-first-push
  blockway play --levels ./my-levels custom-level
  blockway play --config ./my-config.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) > 0 {
		levelID := args[0]
		if !levelExists(levelID) {
			fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", levelID)
			fmt.Fprintln(os.Stderr, "Run 'blockway list' to see available levels.")
			os.Exit(1)
		}
		blockway.SetLevel(levelID)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	// Create game instance
	game, err := registry.Create("blockway")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	// Run the game
	runErr := tui.Run(game, store, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// levelExists reports whether a level with the given ID is available.
func levelExists(id string) bool {
	for _, l := range blockway.AvailableLevels() {
		if l.ID == id {
			return true
		}
	}
	return false
}
