package blockway

import (
	"testing"

	"github.com/vovakirdan/blockway/internal/config"
	"github.com/vovakirdan/blockway/internal/core"
	"github.com/vovakirdan/blockway/internal/games/blockway/levels"
)

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func mustLevel(t *testing.T, yaml string) levels.Level {
	t.Helper()
	level, err := levels.Parse([]byte(yaml), ".yaml")
	if err != nil {
		t.Fatalf("parsing test level: %v", err)
	}
	return level
}

// tinyLevel is winnable in two moves right.
const tinyLevel = `
id: tiny
name: Tiny
size: {w: 4, h: 1}
features:
  - {x: 2, y: 0, kind: Exit}
items:
  - {x: 1, y: 0, kind: Gem}
actors:
  - {x: 0, y: 0, kind: Player}
`

func newTestGame(t *testing.T, yamls ...string) *Game {
	t.Helper()
	g := &Game{}
	for _, y := range yamls {
		g.levels = append(g.levels, mustLevel(t, y))
	}
	g.Reset(core.DefaultConfig())
	return g
}

func TestBuiltinLevelsParse(t *testing.T) {
	all := BuiltinLevels()
	if len(all) == 0 {
		t.Fatal("no built-in levels")
	}
	for _, l := range all {
		s := l.NewState()
		if _, ok := s.Player(); !ok {
			t.Errorf("level %s has no player", l.ID)
		}
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID >= all[i].ID {
			t.Errorf("levels not sorted: %s before %s", all[i-1].ID, all[i].ID)
		}
	}
}

func TestGameResetSelectsLevel(t *testing.T) {
	second := `
id: zz-second
name: Second
size: {w: 4, h: 1}
actors:
  - {x: 0, y: 0, kind: Player}
`
	SetLevel("zz-second")
	g := newTestGame(t, tinyLevel, second)
	if g.CurrentLevelID() != "zz-second" {
		t.Errorf("current level = %s, want zz-second", g.CurrentLevelID())
	}

	// The selection is consumed: the next reset starts at the first level.
	g.Reset(core.DefaultConfig())
	if g.CurrentLevelID() != "tiny" {
		t.Errorf("current level = %s after plain reset, want tiny", g.CurrentLevelID())
	}
}

func TestGameStepResolvesTurns(t *testing.T) {
	g := newTestGame(t, tinyLevel)

	g.Step(frame(core.ActionRight))
	if g.Turns() != 1 {
		t.Errorf("turns = %d, want 1", g.Turns())
	}

	// A frame without an intent does not advance the simulation.
	g.Step(frame())
	if g.Turns() != 1 {
		t.Errorf("turns = %d after empty frame, want 1", g.Turns())
	}

	g.Step(frame(core.ActionWait))
	if g.Turns() != 2 {
		t.Errorf("turns = %d after wait, want 2", g.Turns())
	}
}

func TestGameWinAndAdvance(t *testing.T) {
	g := newTestGame(t, tinyLevel)

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	if !g.LevelWon() {
		t.Fatal("level should be won after two moves right")
	}

	// Movement is ignored on the win overlay.
	g.Step(frame(core.ActionLeft))
	if !g.LevelWon() {
		t.Fatal("won state should persist until confirmed")
	}

	// Confirm on the last level finishes the set.
	st := g.Step(frame(core.ActionConfirm)).State
	if !st.GameOver || !st.Won {
		t.Errorf("state = %+v, want game over and won", st)
	}
}

func TestGameAutoAdvance(t *testing.T) {
	cfg := config.DefaultBlockwayConfig()
	cfg.Gameplay.AutoAdvance = true
	SetConfig(cfg)
	defer SetConfig(config.DefaultBlockwayConfig())

	g := newTestGame(t, tinyLevel)
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	if !g.LevelWon() {
		t.Fatal("level should be won")
	}

	st := g.Step(frame(core.ActionRight)).State
	if !st.GameOver || !st.Won {
		t.Errorf("state = %+v, want auto-advanced past the last level", st)
	}
}

func TestGameUndo(t *testing.T) {
	g := newTestGame(t, tinyLevel)

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionUndo))
	if g.Turns() != 0 {
		t.Errorf("turns = %d after undo, want 0", g.Turns())
	}

	// Undo at the initial state is a no-op.
	g.Step(frame(core.ActionUndo))
	if g.Turns() != 0 {
		t.Errorf("turns = %d, want 0", g.Turns())
	}
}

func TestGameUndoLimit(t *testing.T) {
	cfg := config.DefaultBlockwayConfig()
	cfg.Gameplay.UndoLimit = 1
	SetConfig(cfg)
	defer SetConfig(config.DefaultBlockwayConfig())

	g := newTestGame(t, tinyLevel)

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionUndo))
	if g.Turns() != 0 {
		t.Fatalf("first undo should succeed, turns = %d", g.Turns())
	}

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionUndo))
	if g.Turns() != 1 {
		t.Errorf("turns = %d, want 1 with the undo budget spent", g.Turns())
	}
	if g.status != "no undos left" {
		t.Errorf("status = %q", g.status)
	}

	// Restart refills the budget.
	g.Step(frame(core.ActionRestart))
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionUndo))
	if g.Turns() != 0 {
		t.Errorf("turns = %d after restart and undo, want 0", g.Turns())
	}
}

func TestGameRestart(t *testing.T) {
	g := newTestGame(t, tinyLevel)

	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionRight))
	if !g.LevelWon() {
		t.Fatal("setup: level should be won")
	}

	g.Step(frame(core.ActionRestart))
	if g.Turns() != 0 || g.LevelWon() {
		t.Error("restart should reload the level fresh")
	}
}

func TestGamePauseBlocksTurns(t *testing.T) {
	g := newTestGame(t, tinyLevel)

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight))
	if g.Turns() != 0 {
		t.Errorf("turns = %d while paused, want 0", g.Turns())
	}

	g.Step(frame(core.ActionPause))
	g.Step(frame(core.ActionRight))
	if g.Turns() != 1 {
		t.Errorf("turns = %d after unpause, want 1", g.Turns())
	}
}

func TestGameLossReportsGameOver(t *testing.T) {
	deadly := `
id: deadly
name: Deadly
size: {w: 3, h: 1}
features:
  - {x: 1, y: 0, kind: Mine}
actors:
  - {x: 0, y: 0, kind: Player}
`
	g := newTestGame(t, deadly)

	st := g.Step(frame(core.ActionRight)).State
	if !g.LevelLost() {
		t.Fatal("stepping on a mine should lose the level")
	}
	if !st.GameOver || st.Won {
		t.Errorf("state = %+v, want game over without a win", st)
	}

	// Undo recovers from the loss.
	g.Step(frame(core.ActionUndo))
	if g.LevelLost() {
		t.Error("undo should clear the lost state")
	}
}

func TestGameStateScoreIsTurnCount(t *testing.T) {
	g := newTestGame(t, tinyLevel)
	g.Step(frame(core.ActionRight))
	g.Step(frame(core.ActionWait))
	if got := g.State().Score; got != 2 {
		t.Errorf("score = %d, want 2", got)
	}
}
