package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some attempts on one level
	_, err = store.SaveResult("01-first-push", 24, true, 65)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	_, err = store.SaveResult("01-first-push", 12, true, 30)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	_, err = store.SaveResult("01-first-push", 40, false, 90)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	// Different level
	_, err = store.SaveResult("02-belt-ride", 18, true, 50)
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	// Best results only include wins, ordered by fewest turns
	best, err := store.BestResults("01-first-push", 10)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}

	if len(best) != 2 {
		t.Errorf("Expected 2 winning results, got %d", len(best))
	}

	if best[0].Turns != 12 {
		t.Errorf("Expected best turns to be 12, got %d", best[0].Turns)
	}
	if best[1].Turns != 24 {
		t.Errorf("Expected second best turns to be 24, got %d", best[1].Turns)
	}

	// Results for another level are separate
	other, err := store.BestResults("02-belt-ride", 10)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}

	if len(other) != 1 {
		t.Errorf("Expected 1 result for other level, got %d", len(other))
	}
}

func TestStoreBestResultsLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 winning attempts
	for i := 0; i < 5; i++ {
		store.SaveResult("test", (i+1)*10, true, 0)
	}

	// Request only top 3
	best, err := store.BestResults("test", 3)
	if err != nil {
		t.Fatalf("BestResults() failed: %v", err)
	}

	if len(best) != 3 {
		t.Errorf("Expected 3 results with limit, got %d", len(best))
	}

	// Should be 10, 20, 30 (fewest turns first)
	if best[0].Turns != 10 || best[1].Turns != 20 || best[2].Turns != 30 {
		t.Errorf("Results not in expected order: %v", best)
	}
}

func TestStoreBestTurns(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No attempts yet
	best, err := store.BestTurns("01-first-push")
	if err != nil {
		t.Fatalf("BestTurns() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best turns of 0 for unplayed level, got %d", best)
	}

	// Losses never count
	store.SaveResult("01-first-push", 5, false, 10)

	best, err = store.BestTurns("01-first-push")
	if err != nil {
		t.Fatalf("BestTurns() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best turns of 0 with only losses, got %d", best)
	}

	// Add wins
	store.SaveResult("01-first-push", 30, true, 70)
	store.SaveResult("01-first-push", 15, true, 40)

	best, err = store.BestTurns("01-first-push")
	if err != nil {
		t.Fatalf("BestTurns() failed: %v", err)
	}
	if best != 15 {
		t.Errorf("Expected best turns of 15, got %d", best)
	}
}

func TestStoreClearResults(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveResult("01-first-push", 10, true, 20)
	store.SaveResult("01-first-push", 20, true, 40)
	store.SaveResult("02-belt-ride", 30, true, 60)

	// Clear only one level
	err = store.ClearResults("01-first-push")
	if err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	first, _ := store.AllResults("01-first-push")
	if len(first) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(first))
	}

	second, _ := store.AllResults("02-belt-ride")
	if len(second) != 1 {
		t.Errorf("Other level should not be affected by clearing")
	}
}

func TestStoreLevelStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveResult("04-minefield", 50, false, 100)
	store.SaveResult("04-minefield", 44, true, 95)
	store.SaveResult("04-minefield", 38, true, 80)

	stats, err := store.GetLevelStats("04-minefield")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}

	if stats.Attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", stats.Attempts)
	}
	if stats.Wins != 2 {
		t.Errorf("Expected 2 wins, got %d", stats.Wins)
	}
	if stats.BestTurns != 38 {
		t.Errorf("Expected best turns 38, got %d", stats.BestTurns)
	}
}

func TestStoreAllLevelStats(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveResult("01-first-push", 10, true, 20)
	store.SaveResult("02-belt-ride", 20, false, 40)

	all, err := store.GetAllLevelStats()
	if err != nil {
		t.Fatalf("GetAllLevelStats() failed: %v", err)
	}

	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 levels, got %d", len(all))
	}

	if all["01-first-push"].BestTurns != 10 {
		t.Errorf("Expected best turns 10, got %d", all["01-first-push"].BestTurns)
	}
	if all["02-belt-ride"].BestTurns != 0 {
		t.Errorf("Expected best turns 0 for unwon level, got %d", all["02-belt-ride"].BestTurns)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
