// Package blockway adapts the puzzle simulation core to the platform:
// it maps platform actions to turn intents, renders level state into the
// screen buffer, and tracks session progress across levels.
package blockway

import (
	"fmt"

	"github.com/vovakirdan/blockway/internal/config"
	"github.com/vovakirdan/blockway/internal/core"
	bwcore "github.com/vovakirdan/blockway/internal/games/blockway/core"
	"github.com/vovakirdan/blockway/internal/games/blockway/levels"
	"github.com/vovakirdan/blockway/internal/registry"
)

// Game implements registry.Game for the Blockway puzzle. The platform
// ticks in real time but the simulation is turn-based: it advances only
// when an input frame carries an intent action.
type Game struct {
	levels     []levels.Level
	levelIndex int
	controller *bwcore.TurnController

	tick      uint64
	undosUsed int
	paused    bool
	finished  bool // whole level set cleared
	status    string

	hudHeight  int
	screenW    int
	screenH    int
	mapOffsetX int
	mapOffsetY int
	tooSmall   bool
}

// Package-level selection applied on the next Reset, set by the CLI and the
// level picker menu before the game starts.
var (
	selectedLevelID string
	levelsDir       string
	gameConfig      = config.DefaultBlockwayConfig()
)

// SetConfig applies the loaded game configuration. Rule settings act as the
// base that individual level files may override.
func SetConfig(cfg config.BlockwayConfig) {
	gameConfig = cfg
}

// SetLevel selects the level to start from by ID. Empty means the first.
func SetLevel(id string) {
	selectedLevelID = id
}

// SetLevelsDir points the game at an external levels directory. Empty means
// built-in levels only.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// New creates a new Blockway game over the available level set.
func New() *Game {
	return &Game{levels: AvailableLevels()}
}

func init() {
	registry.Register("blockway", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "blockway"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Blockway"
}

// Reset initializes/restarts the game at the selected level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tick = 0
	g.paused = false
	g.finished = false
	g.status = ""
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.hudHeight = 2

	g.levelIndex = 0
	if selectedLevelID != "" {
		for i, l := range g.levels {
			if l.ID == selectedLevelID {
				g.levelIndex = i
				break
			}
		}
		selectedLevelID = ""
	}
	g.loadLevel()
}

// loadLevel instantiates a fresh controller for the current level.
func (g *Game) loadLevel() {
	if len(g.levels) == 0 {
		g.tooSmall = false
		g.controller = nil
		return
	}
	level := g.levels[g.levelIndex%len(g.levels)]
	rules := level.RulesWithDefaults(baseRules())
	g.controller = bwcore.NewTurnController(level.NewState(), rules)
	g.undosUsed = 0
	g.layout(level.Width, level.Height)
}

// baseRules derives the base simulation rules from the game configuration.
func baseRules() bwcore.Rules {
	rules := bwcore.DefaultRules()
	rules.MineChain = gameConfig.Rules.MineChain
	rules.MaxBeltPasses = gameConfig.Rules.MaxBeltPasses
	return rules
}

// layout centers the map and checks the screen fits.
func (g *Game) layout(w, h int) {
	requiredW := w + 2
	requiredH := h + g.hudHeight + 2
	if g.screenW < requiredW || g.screenH < requiredH {
		g.tooSmall = true
		return
	}
	g.tooSmall = false
	g.mapOffsetX = (g.screenW - w) / 2
	g.mapOffsetY = g.hudHeight + 1
}

// Step advances the platform tick and, when an intent action is present,
// resolves one simulation turn.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.controller == nil {
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionRestart) {
		g.loadLevel()
		g.status = "restarted"
		return core.StepResult{State: g.State()}
	}
	if input.Has(core.ActionUndo) {
		if limit := gameConfig.Gameplay.UndoLimit; limit > 0 && g.undosUsed >= limit {
			g.status = "no undos left"
			return core.StepResult{State: g.State()}
		}
		if _, ok := g.controller.Undo(); ok {
			g.undosUsed++
			g.status = "undone"
		}
		return core.StepResult{State: g.State()}
	}

	intent, ok := intentFromFrame(input)
	if !ok {
		return core.StepResult{State: g.State()}
	}

	if g.controller.Outcome() == bwcore.OutcomeWon {
		// Confirm advances to the next level after a win. With auto-advance
		// any intent moves on, skipping the win screen.
		if input.Has(core.ActionConfirm) || gameConfig.Gameplay.AutoAdvance {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	_, events, err := g.controller.Apply(intent)
	if err != nil {
		g.status = err.Error()
		return core.StepResult{State: g.State()}
	}
	g.status = summarize(events)

	return core.StepResult{State: g.State()}
}

// intentFromFrame maps movement/wait actions to a turn intent.
func intentFromFrame(input core.InputFrame) (bwcore.Intent, bool) {
	switch {
	case input.Has(core.ActionUp):
		return bwcore.MoveIntent(bwcore.DirUp), true
	case input.Has(core.ActionDown):
		return bwcore.MoveIntent(bwcore.DirDown), true
	case input.Has(core.ActionLeft):
		return bwcore.MoveIntent(bwcore.DirLeft), true
	case input.Has(core.ActionRight):
		return bwcore.MoveIntent(bwcore.DirRight), true
	case input.Has(core.ActionWait):
		return bwcore.WaitIntent(), true
	case input.Has(core.ActionConfirm):
		// Confirm only matters on the win overlay; report it as an intent
		// so Step sees it, Apply is skipped there.
		return bwcore.WaitIntent(), true
	default:
		return bwcore.Intent{}, false
	}
}

// summarize picks the most interesting event for the status line.
func summarize(events []bwcore.Event) string {
	for i := len(events) - 1; i >= 0; i-- {
		switch events[i].Kind {
		case bwcore.EventLevelWon:
			return "level complete!"
		case bwcore.EventLevelLost:
			return "you died"
		case bwcore.EventActorRemoved:
			return fmt.Sprintf("removed (%s)", events[i].Reason)
		case bwcore.EventTurnBumped:
			return "bump"
		case bwcore.EventItemCollected:
			return "gem collected"
		case bwcore.EventActorTeleported:
			return "teleported"
		}
	}
	return ""
}

// advanceLevel moves to the next level, or finishes the set.
func (g *Game) advanceLevel() {
	g.levelIndex++
	if g.levelIndex >= len(g.levels) {
		g.finished = true
		return
	}
	g.loadLevel()
	g.status = ""
}

// CurrentLevel returns the level being played.
func (g *Game) CurrentLevel() levels.Level {
	if len(g.levels) == 0 {
		return levels.Level{Name: "none"}
	}
	return g.levels[g.levelIndex%len(g.levels)]
}

// CurrentLevelID returns the ID of the level being played.
func (g *Game) CurrentLevelID() string {
	return g.CurrentLevel().ID
}

// LevelWon reports whether the current level has been solved.
func (g *Game) LevelWon() bool {
	return g.controller != nil && g.controller.Outcome() == bwcore.OutcomeWon
}

// LevelLost reports whether the current attempt has failed.
func (g *Game) LevelLost() bool {
	return g.controller != nil && g.controller.Outcome() == bwcore.OutcomeLost
}

// Turns returns the number of turns taken in the current level.
func (g *Game) Turns() int {
	if g.controller == nil {
		return 0
	}
	return int(g.controller.Current().Turn)
}

// State returns the current game state for the platform.
// Score carries the turn count (fewer is better).
func (g *Game) State() core.GameState {
	st := core.GameState{Paused: g.paused, Score: g.Turns()}
	if g.controller == nil {
		st.GameOver = true
		return st
	}
	switch {
	case g.finished:
		st.GameOver = true
		st.Won = true
	case g.controller.Outcome() == bwcore.OutcomeLost:
		st.GameOver = true
	}
	return st
}
