package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockway/internal/games/blockway"
	bwcore "github.com/vovakirdan/blockway/internal/games/blockway/core"
	"github.com/vovakirdan/blockway/internal/games/blockway/levels"
	"github.com/vovakirdan/blockway/internal/storage"
)

var (
	flagReplayLevel  string
	flagReplayShow   bool
	flagReplayHash   string
	flagReplayRecord bool
)

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Replay a recorded move script",
	Long: `Run a move script against a level without the UI and report the outcome.

The script is a text file with one move per line: up, down, left, right
or wait. Lines starting with '#' are ignored. The same script over the
same level always produces the same final state; --expect-hash checks
the final state hash against a known value.

Examples:
  blockway replay solution.txt --level 01-first-push
  blockway replay solution.txt --level 01-first-push --show
  blockway replay solution.txt --level 01-first-push --expect-hash a1b2c3`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func init() {
	replayCmd.Flags().StringVar(&flagReplayLevel, "level", "", "Level ID to replay against (default: first level)")
	replayCmd.Flags().BoolVar(&flagReplayShow, "show", false, "Print the board after every turn")
	replayCmd.Flags().StringVar(&flagReplayHash, "expect-hash", "", "Fail unless the final state hash matches")
	replayCmd.Flags().BoolVar(&flagReplayRecord, "record", false, "Save the outcome to the results database")
}

func runReplay(_ *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "replay"})

	intents, err := readMoveScript(args[0])
	if err != nil {
		logger.Fatal("cannot read script", "error", err)
	}

	level, ok := findLevel(flagReplayLevel)
	if !ok {
		logger.Fatal("unknown level", "level", flagReplayLevel)
	}

	controller := level.NewController()
	logger.Info("replaying", "level", level.ID, "moves", len(intents))

	for i, intent := range intents {
		state, events, err := controller.Apply(intent)
		if err != nil {
			logger.Fatal("turn failed", "turn", i+1, "error", err)
		}
		if flagReplayShow {
			fmt.Printf("turn %d:\n%s\n\n", state.Turn, bwcore.RenderString(state))
		}
		for _, ev := range events {
			if ev.Kind == bwcore.EventLevelWon || ev.Kind == bwcore.EventLevelLost {
				logger.Info("terminal state reached", "turn", state.Turn, "event", ev.Kind)
			}
		}
		if controller.Outcome() != bwcore.OutcomeNone {
			break
		}
	}

	final := controller.Current()
	hash := fmt.Sprintf("%016x", final.Hash())

	fmt.Printf("outcome: %s\n", controller.Outcome())
	fmt.Printf("turns:   %d\n", final.Turn)
	fmt.Printf("gems:    %d/%d\n", final.Gems, final.GemsAll)
	fmt.Printf("hash:    %s\n", hash)

	if flagReplayHash != "" && !strings.EqualFold(flagReplayHash, hash) {
		logger.Fatal("state hash mismatch", "want", flagReplayHash, "got", hash)
	}

	if flagReplayRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Fatal("cannot open results database", "error", err)
		}
		defer store.Close()
		won := controller.Outcome() == bwcore.OutcomeWon
		if _, err := store.SaveResult(level.ID, int(final.Turn), won, 0); err != nil {
			logger.Fatal("cannot save result", "error", err)
		}
		logger.Info("result recorded", "level", level.ID, "turns", final.Turn, "won", won)
	}
}

// readMoveScript parses a move script into turn intents.
func readMoveScript(path string) ([]bwcore.Intent, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var intents []bwcore.Intent
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch strings.ToLower(line) {
		case "up", "u":
			intents = append(intents, bwcore.MoveIntent(bwcore.DirUp))
		case "down", "d":
			intents = append(intents, bwcore.MoveIntent(bwcore.DirDown))
		case "left", "l":
			intents = append(intents, bwcore.MoveIntent(bwcore.DirLeft))
		case "right", "r":
			intents = append(intents, bwcore.MoveIntent(bwcore.DirRight))
		case "wait", "w", ".":
			intents = append(intents, bwcore.WaitIntent())
		default:
			return nil, fmt.Errorf("line %d: unknown move %q", lineNo, line)
		}
	}
	return intents, scanner.Err()
}

// findLevel resolves a level by ID, defaulting to the first available.
func findLevel(id string) (levels.Level, bool) {
	all := blockway.AvailableLevels()
	if len(all) == 0 {
		return levels.Level{}, false
	}
	if id == "" {
		return all[0], true
	}
	for _, l := range all {
		if l.ID == id {
			return l, true
		}
	}
	return levels.Level{}, false
}
