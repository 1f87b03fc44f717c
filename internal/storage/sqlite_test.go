package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/blockfall/internal/bot"
	"github.com/vovakirdan/blockfall/internal/tetris"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

	for _, e := range []ScoreEntry{
		{Name: "ana", Score: 100, Level: 2, Lines: 12},
		{Name: "bo", Score: 50, Level: 1, Lines: 4},
		{Name: "cy", Score: 200, Level: 3, Tetrises: 1, Lines: 25},
	} {
		if _, err := store.SaveScore(e); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	top := scores[0]
	if top.Name != "cy" || top.Level != 3 || top.Tetrises != 1 || top.Lines != 25 {
		t.Errorf("unexpected top entry: %+v", top)
	}
	if top.RunID == "" {
		t.Error("RunID should be generated")
	}
	if top.Mode != "human" {
		t.Errorf("Mode = %q, want human", top.Mode)
	}
	if top.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTopScoresByMode(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Name: "me", Score: 100})
	store.SaveScore(ScoreEntry{Name: "bot", Mode: "bot", Score: 5000})

	human, err := store.TopScores("human", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(human) != 1 || human[0].Name != "me" {
		t.Errorf("human scores = %+v", human)
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 || all[0].Mode != "bot" {
		t.Errorf("all scores = %+v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 15; i++ {
		if _, err := store.SaveScore(ScoreEntry{Name: "p", Score: i * 10}); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 140 {
		t.Errorf("Expected top score 140, got %d", scores[0].Score)
	}

	// Non-positive limit falls back to ten
	scores, err = store.TopScores("", 0)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 10 {
		t.Errorf("Expected 10 scores, got %d", len(scores))
	}
}

func TestStoreTiesOldestFirst(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	if _, err := store.SaveScore(ScoreEntry{Name: "late", Score: 300, CreatedAt: base.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore(ScoreEntry{Name: "early", Score: 300, CreatedAt: base}); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores("", 2)
	if err != nil {
		t.Fatal(err)
	}
	if scores[0].Name != "early" || scores[1].Name != "late" {
		t.Errorf("tie order = %s, %s; want early, late", scores[0].Name, scores[1].Name)
	}
	if !scores[0].CreatedAt.Equal(base) {
		t.Errorf("CreatedAt = %v, want %v", scores[0].CreatedAt, base)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreEntry{RunID: "run-1", Score: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore(ScoreEntry{RunID: "run-1", Score: 2}); err == nil {
		t.Error("expected error saving the same run twice")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	store.SaveScore(ScoreEntry{Score: 100})
	store.SaveScore(ScoreEntry{Score: 300})
	store.SaveScore(ScoreEntry{Score: 200})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("unexpected stats for empty store: %+v", stats)
	}

	store.SaveScore(ScoreEntry{Score: 100, Lines: 10, Level: 2})
	store.SaveScore(ScoreEntry{Score: 200, Lines: 20, Tetrises: 2, Level: 3})
	store.SaveScore(ScoreEntry{Score: 900, Lines: 40, Tetrises: 5, Level: 5, Mode: "bot"})

	stats, err = store.Stats("human")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, want 2", stats.GamesCount)
	}
	if stats.HighScore != 200 {
		t.Errorf("HighScore = %d, want 200", stats.HighScore)
	}
	if stats.AvgScore != 150 {
		t.Errorf("AvgScore = %v, want 150", stats.AvgScore)
	}
	if stats.TotalLines != 30 || stats.TotalTetrises != 2 || stats.BestLevel != 3 {
		t.Errorf("unexpected totals: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.Stats("")
	if err != nil {
		t.Fatal(err)
	}
	if all.GamesCount != 3 || all.HighScore != 900 {
		t.Errorf("unexpected overall stats: %+v", all)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore(ScoreEntry{Score: 100})
	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, err := store.TopScores("", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected empty table, got %d scores", len(scores))
	}
}

func TestDecisionRecorder(t *testing.T) {
	store := openTestStore(t)

	grid := tetris.FromRows("X.........")
	rec := store.Recorder("")
	if rec.RunID() == "" {
		t.Fatal("Recorder should generate a run ID")
	}

	var _ bot.Recorder = rec
	decisions := []bot.Decision{
		{Grid: grid, Current: tetris.T, Next: tetris.I, HasNext: true, Rotation: 1, Offset: -2, Score: -7.5},
		{Grid: grid, Current: tetris.O, Rotation: 0, Offset: 4, Score: -3},
	}
	for _, d := range decisions {
		if err := rec.Record(d); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	rows, err := store.Decisions(rec.RunID())
	if err != nil {
		t.Fatalf("Decisions() failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("Expected 2 decisions, got %d", len(rows))
	}

	first := rows[0]
	if first.Seq != 1 || first.Current != "T" || first.Next != "I" {
		t.Errorf("unexpected first row: %+v", first)
	}
	if first.Rotation != 1 || first.Offset != -2 || first.Score != -7.5 {
		t.Errorf("unexpected placement: %+v", first)
	}
	if first.Grid != grid.Occupancy() {
		t.Errorf("Grid = %q, want %q", first.Grid, grid.Occupancy())
	}
	shape, err := first.CurrentShape()
	if err != nil || shape != tetris.T {
		t.Errorf("CurrentShape() = %v, %v", shape, err)
	}

	if rows[1].Seq != 2 || rows[1].Next != "" {
		t.Errorf("unexpected second row: %+v", rows[1])
	}

	other, err := store.Decisions("missing")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("Expected no decisions for unknown run, got %d", len(other))
	}
}
