package core

import (
	"errors"
	"testing"
)

func TestControllerApplyAppendsHistory(t *testing.T) {
	grid := NewGrid(5, 1)
	s := NewLevelState(grid, []Actor{{Kind: KindPlayer, Pos: C(0, 0)}})
	ctrl := NewTurnController(s, DefaultRules())

	next, _, err := ctrl.Apply(MoveIntent(DirRight))
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if next.Turn != 1 {
		t.Errorf("turn = %d, want 1", next.Turn)
	}
	if len(ctrl.History()) != 2 {
		t.Errorf("history length = %d, want 2", len(ctrl.History()))
	}
	if ctrl.Current() != next {
		t.Error("Current() should return the state Apply produced")
	}
}

func TestControllerUndo(t *testing.T) {
	grid := NewGrid(5, 1)
	s := NewLevelState(grid, []Actor{{Kind: KindPlayer, Pos: C(0, 0)}})
	ctrl := NewTurnController(s, DefaultRules())

	// Undo at the initial state is a no-op.
	if _, ok := ctrl.Undo(); ok {
		t.Error("undo at the initial state should fail")
	}

	if _, _, err := ctrl.Apply(MoveIntent(DirRight)); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if _, _, err := ctrl.Apply(MoveIntent(DirRight)); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}

	prev, ok := ctrl.Undo()
	if !ok {
		t.Fatal("undo should succeed with history")
	}
	player, _ := prev.Player()
	if player.Pos != C(1, 0) {
		t.Errorf("player at %s after undo, want (1,0)", player.Pos)
	}
	if prev.Turn != 1 {
		t.Errorf("turn = %d after undo, want 1", prev.Turn)
	}

	// Undo back to the initial state, then no further.
	if _, ok := ctrl.Undo(); !ok {
		t.Fatal("second undo should succeed")
	}
	if _, ok := ctrl.Undo(); ok {
		t.Error("undo past the initial state should fail")
	}
}

func TestControllerUndoRestoresGems(t *testing.T) {
	grid := NewGrid(5, 1)
	grid.SetItem(C(1, 0), KindGem)
	s := NewLevelState(grid, []Actor{{Kind: KindPlayer, Pos: C(0, 0)}})
	ctrl := NewTurnController(s, DefaultRules())

	next, _, err := ctrl.Apply(MoveIntent(DirRight))
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if next.Gems != 1 {
		t.Fatalf("gems = %d, want 1", next.Gems)
	}

	prev, _ := ctrl.Undo()
	if prev.Gems != 0 {
		t.Errorf("gems = %d after undo, want 0", prev.Gems)
	}
	if prev.Grid.ItemAt(C(1, 0)) != KindGem {
		t.Error("gem not restored by undo")
	}
}

func TestControllerRejectsIntentsAfterLoss(t *testing.T) {
	grid := NewGrid(3, 1)
	grid.SetFeature(C(1, 0), Feature{Kind: KindMine})
	s := NewLevelState(grid, []Actor{{Kind: KindPlayer, Pos: C(0, 0)}})
	ctrl := NewTurnController(s, DefaultRules())

	if _, _, err := ctrl.Apply(MoveIntent(DirRight)); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if ctrl.Outcome() != OutcomeLost {
		t.Fatalf("outcome = %s, want lost", ctrl.Outcome())
	}

	_, _, err := ctrl.Apply(MoveIntent(DirLeft))
	var invalid InvalidIntentError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidIntentError, got %v", err)
	}

	// A loss does not halt the controller: undo still works.
	prev, ok := ctrl.Undo()
	if !ok {
		t.Fatal("undo after a loss should succeed")
	}
	if prev.Outcome != OutcomeNone {
		t.Errorf("outcome = %s after undo, want none", prev.Outcome)
	}
}

func TestControllerHaltsOnInvariantViolation(t *testing.T) {
	// Two boxed-in overlapping creatures cannot move and violate the
	// occupancy invariant as soon as the state settles.
	grid := NewGrid(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if x != 1 || y != 1 {
				grid.SetTile(C(x, y), KindWall)
			}
		}
	}
	s := NewLevelState(grid, []Actor{
		{Kind: KindCreature, Pos: C(1, 1), Dir: DirUp},
		{Kind: KindCreature, Pos: C(1, 1), Dir: DirDown},
	})
	ctrl := NewTurnController(s, DefaultRules())

	_, _, err := ctrl.Apply(WaitIntent())
	var inv InvariantError
	if !errors.As(err, &inv) {
		t.Fatalf("expected InvariantError, got %v", err)
	}
	if ctrl.Current() != s {
		t.Error("state should be unchanged after a failed turn")
	}

	// Halted: every further intent returns the same error, undo fails.
	if _, _, err := ctrl.Apply(WaitIntent()); !errors.As(err, &inv) {
		t.Errorf("halted controller should keep rejecting, got %v", err)
	}
	if _, ok := ctrl.Undo(); ok {
		t.Error("undo on a halted controller should fail")
	}
}

func TestControllerHistoryEnablesReplay(t *testing.T) {
	grid := NewGrid(5, 1)
	grid.SetItem(C(2, 0), KindGem)
	grid.SetFeature(C(4, 0), Feature{Kind: KindExit})
	s := NewLevelState(grid, []Actor{{Kind: KindPlayer, Pos: C(0, 0)}})
	ctrl := NewTurnController(s, DefaultRules())

	for i := 0; i < 4; i++ {
		if _, _, err := ctrl.Apply(MoveIntent(DirRight)); err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
	}
	if ctrl.Outcome() != OutcomeWon {
		t.Fatalf("outcome = %s, want won", ctrl.Outcome())
	}

	history := ctrl.History()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	for i, snap := range history {
		if snap.Turn != uint64(i) {
			t.Errorf("history[%d].Turn = %d, want %d", i, snap.Turn, i)
		}
	}

	// Replaying the same intents from the initial snapshot reproduces the
	// final state exactly.
	replay := NewTurnController(history[0].Clone(), DefaultRules())
	for i := 0; i < 4; i++ {
		if _, _, err := replay.Apply(MoveIntent(DirRight)); err != nil {
			t.Fatalf("replay turn %d: %v", i+1, err)
		}
	}
	if replay.Current().Hash() != ctrl.Current().Hash() {
		t.Error("replay diverged from the original run")
	}
}
