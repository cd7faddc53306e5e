package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

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
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("owlrun", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	// Different mode
	if _, err := store.SaveScore("owlrun_daily", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("owlrun", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	daily, err := store.TopScores("owlrun_daily", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(daily) != 1 {
		t.Errorf("Expected 1 daily score, got %d", len(daily))
	}
}

func TestStoreSaveRunMetadata(t *testing.T) {
	store := openTestStore(t)

	_, err := store.SaveRun(ScoreEntry{
		GameID:    "owlrun",
		Score:     1234,
		Level:     4,
		Character: "scout",
		Seed:      20240101,
		Reason:    "strike",
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	scores, err := store.TopScores("owlrun", 1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	got := scores[0]
	if got.Level != 4 || got.Character != "scout" || got.Seed != 20240101 || got.Reason != "strike" {
		t.Errorf("Run metadata not round-tripped: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("owlrun")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("owlrun", 100)
	store.SaveScore("owlrun", 300)
	store.SaveScore("owlrun", 200)

	high, err = store.HighScore("owlrun")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("owlrun", 100)
	store.SaveScore("owlrun", 200)
	store.SaveScore("owlrun_daily", 300)

	if err := store.ClearScores("owlrun"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("owlrun", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}

	daily, _ := store.TopScores("owlrun_daily", 10)
	if len(daily) != 1 {
		t.Errorf("Daily scores should not be affected by clearing owlrun")
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats("owlrun")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(ScoreEntry{GameID: "owlrun", Score: 100, Level: 2})
	store.SaveRun(ScoreEntry{GameID: "owlrun", Score: 300, Level: 5})

	stats, err = store.Stats("owlrun")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.Best != 300 || stats.Total != 400 || stats.DeepestLevel != 5 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.Average != 200 {
		t.Errorf("Expected average 200, got %v", stats.Average)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set once runs exist")
	}
}

func TestStoreTopScoresForSeed(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(ScoreEntry{GameID: "owlrun_daily", Score: 500, Seed: 20240101})
	store.SaveRun(ScoreEntry{GameID: "owlrun_daily", Score: 900, Seed: 20240102})
	store.SaveRun(ScoreEntry{GameID: "owlrun_daily", Score: 700, Seed: 20240101})

	day, err := store.TopScoresForSeed("owlrun_daily", 20240101, 10)
	if err != nil {
		t.Fatalf("TopScoresForSeed() failed: %v", err)
	}
	if len(day) != 2 || day[0].Score != 700 || day[1].Score != 500 {
		t.Errorf("Unexpected board for 20240101: %+v", day)
	}
}

func TestStoreRunnerStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(ScoreEntry{GameID: "owlrun", Score: 100, Character: "Scout"})
	store.SaveRun(ScoreEntry{GameID: "owlrun", Score: 400, Character: "Scout"})
	store.SaveRun(ScoreEntry{GameID: "owlrun", Score: 250, Character: "Bruiser"})
	store.SaveRun(ScoreEntry{GameID: "owlrun", Score: 50})

	stats, err := store.RunnerStats("owlrun")
	if err != nil {
		t.Fatalf("RunnerStats() failed: %v", err)
	}
	want := []RunnerStat{
		{Character: "Scout", Runs: 2, Best: 400},
		{Character: "Bruiser", Runs: 1, Best: 250},
	}
	if len(stats) != len(want) {
		t.Fatalf("Expected %d runners, got %+v", len(want), stats)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("stats[%d] = %+v, expected %+v", i, stats[i], want[i])
		}
	}
}

func TestStoreNestedPath(t *testing.T) {
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
