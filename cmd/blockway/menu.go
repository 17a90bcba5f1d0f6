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

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive level picker",
	Long: `Start Blockway in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a level.
After a level ends, you return to the picker.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select level
  Tab          - Best solutions board
  Q            - Quit

Examples:
  blockway menu
  blockway menu --levels ./my-levels
  blockway menu --db ./results.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		store = nil
	}

	// Get terminal size
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	// Create runtime config
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	// Menu loop
	for {
		items := tui.BuildMenuItems(blockway.LevelIDs(), blockway.LevelNames(), store)

		// Show menu and get selection
		menuResult, err := tui.RunMenu(items, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		// Check if user quit
		if menuResult.Quit {
			break
		}

		// Check if user wants the results board
		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(items, store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from the board
		}

		if menuResult.LevelID == "" {
			break
		}
		blockway.SetLevel(menuResult.LevelID)

		// Create game instance
		game, err := registry.Create("blockway")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			continue
		}

		// Run the game
		if err := tui.Run(game, store, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
