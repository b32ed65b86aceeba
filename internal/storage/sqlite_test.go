package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tileswap/internal/games/tileswap"
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

	// Save some scores
	_, err = store.SaveScore("tileswap", 100)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("tileswap", 50)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	_, err = store.SaveScore("tileswap", 200)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Different game
	_, err = store.SaveScore("tileswap-daily", 500)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	// Retrieve top scores for campaign
	scores, err := store.TopScores("tileswap", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for daily
	dailyScores, err := store.TopScores("tileswap-daily", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(dailyScores) != 1 {
		t.Errorf("Expected 1 daily score, got %d", len(dailyScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("tileswap")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveScore("tileswap", 100)
	store.SaveScore("tileswap", 300)
	store.SaveScore("tileswap", 200)

	high, err = store.HighScore("tileswap")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveScore("tileswap", 100)
	store.SaveScore("tileswap", 200)
	store.SaveScore("tileswap-daily", 300)

	// Clear only campaign scores
	err = store.ClearScores("tileswap")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Campaign should be empty
	campaignScores, _ := store.TopScores("tileswap", 10)
	if len(campaignScores) != 0 {
		t.Errorf("Expected 0 campaign scores after clear, got %d", len(campaignScores))
	}

	// Daily should still have scores
	dailyScores, _ := store.TopScores("tileswap-daily", 10)
	if len(dailyScores) != 1 {
		t.Errorf("Daily scores should not be affected by clearing campaign")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveScore("test", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
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

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreBestSolves(t *testing.T) {
	store := openTestStore(t)

	solves := []SolveEntry{
		{RunID: "a", LevelID: 1, Cols: 3, Rows: 3, Moves: 12, Duration: 40},
		{RunID: "b", LevelID: 1, Cols: 3, Rows: 3, Moves: 9, Duration: 25},
		{RunID: "c", LevelID: 1, Cols: 3, Rows: 3, Moves: 7, Duration: 25},
		{RunID: "d", LevelID: 1, Cols: 3, Rows: 3, Moves: 0, Duration: 2, Revealed: true},
		{RunID: "a", LevelID: 2, Cols: 4, Rows: 4, Moves: 30, Duration: 90},
	}
	for _, e := range solves {
		if _, err := store.SaveSolve(e); err != nil {
			t.Fatalf("SaveSolve() failed: %v", err)
		}
	}

	best, err := store.BestSolves(1, 10)
	if err != nil {
		t.Fatalf("BestSolves() failed: %v", err)
	}
	if len(best) != 3 {
		t.Fatalf("Expected 3 honest solves, got %d", len(best))
	}
	// Same duration, fewer moves wins
	if best[0].RunID != "c" || best[1].RunID != "b" || best[2].RunID != "a" {
		t.Errorf("Solves not in expected order: %v", best)
	}
	for _, e := range best {
		if e.Revealed {
			t.Errorf("Revealed solve leaked into best list: %+v", e)
		}
	}

	limited, err := store.BestSolves(1, 1)
	if err != nil {
		t.Fatalf("BestSolves() failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("Expected 1 solve with limit, got %d", len(limited))
	}
}

func TestStoreRecordSolve(t *testing.T) {
	store := openTestStore(t)

	var rec tileswap.Recorder = store
	records := []tileswap.SolveRecord{
		{RunID: "run-1", LevelID: 1, LevelName: "Warmup", Cols: 3, Rows: 3, Moves: 8, SecondsLeft: 100, Duration: 35, Points: 1045},
		{RunID: "run-1", LevelID: 2, LevelName: "Rings", Cols: 4, Rows: 3, Duration: 60, Revealed: true},
		{RunID: "run-2", LevelID: 1, LevelName: "Warmup", Cols: 3, Rows: 3, Moves: 11, Duration: 50},
	}
	for _, r := range records {
		if err := rec.RecordSolve(r); err != nil {
			t.Fatalf("RecordSolve() failed: %v", err)
		}
	}

	run, err := store.RunSolves("run-1")
	if err != nil {
		t.Fatalf("RunSolves() failed: %v", err)
	}
	if len(run) != 2 {
		t.Fatalf("Expected 2 solves in run, got %d", len(run))
	}
	first := run[0]
	if first.LevelName != "Warmup" || first.Moves != 8 || first.SecondsLeft != 100 || first.Points != 1045 {
		t.Errorf("First solve = %+v, fields not preserved", first)
	}
	if first.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}
	if !run[1].Revealed {
		t.Error("Expected second solve to be marked revealed")
	}

	stats, err := store.GetGameStats(tileswap.ID)
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Solves != 3 || stats.Revealed != 1 {
		t.Errorf("Solves = %d, Revealed = %d, expected 3 and 1", stats.Solves, stats.Revealed)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetGameStats(tileswap.ID)
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 0 || stats.HighScore != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveScore(tileswap.ID, 100)
	store.SaveScore(tileswap.ID, 300)

	stats, err = store.GetGameStats(tileswap.ID)
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.TotalScore != 400 {
		t.Errorf("Stats = %+v, expected 2 games, high 300, total 400", stats)
	}
	if stats.AvgScore != 200 {
		t.Errorf("AvgScore = %v, expected 200", stats.AvgScore)
	}
}
