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
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestTopRunsOrderedByTime(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Name: "ann", Time: 12.5, Score: 40, Difficulty: "normal"},
		{Name: "bob", Time: 30.1, Score: 10, Difficulty: "hard"},
		{Name: "cid", Time: 12.5, Score: 90, Difficulty: "easy"},
		{Name: "dee", Time: 2.0, Score: 500, Difficulty: "normal"},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopRuns(3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(top))
	}

	want := []string{"bob", "cid", "ann"}
	for i, name := range want {
		if top[i].Name != name {
			t.Errorf("top[%d] = %s, want %s", i, top[i].Name, name)
		}
	}
	if top[0].Difficulty != "hard" || top[0].Time != 30.1 {
		t.Errorf("top[0] = %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"first", "second", "third"} {
		if _, err := store.SaveRun(Run{Name: name, Time: 1, Score: 1}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Name != "third" || recent[1].Name != "second" {
		t.Errorf("RecentRuns = %+v", recent)
	}
}

func TestHighScoreAndStats(t *testing.T) {
	store := openTestStore(t)

	score, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if score != 0 {
		t.Errorf("Expected high score 0 on empty store, got %d", score)
	}

	store.SaveRun(Run{Name: "a", Time: 10, Score: 100})
	store.SaveRun(Run{Name: "b", Time: 20, Score: 50})

	score, _ = store.HighScore()
	if score != 100 {
		t.Errorf("Expected high score 100, got %d", score)
	}

	st, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 2 || st.BestTime != 20 || st.HighScore != 100 || st.AvgScore != 75 {
		t.Errorf("Stats = %+v", st)
	}

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if st, _ := store.Stats(); st.Runs != 0 {
		t.Errorf("Runs after clear = %d", st.Runs)
	}
}

func TestPlayerNameRoundTrip(t *testing.T) {
	store := openTestStore(t)

	name, err := store.PlayerName()
	if err != nil {
		t.Fatalf("PlayerName() failed: %v", err)
	}
	if name != "" {
		t.Errorf("Expected empty name, got %q", name)
	}

	if err := store.SetPlayerName("Ada"); err != nil {
		t.Fatalf("SetPlayerName() failed: %v", err)
	}
	if err := store.SetPlayerName("Grace"); err != nil {
		t.Fatalf("SetPlayerName() overwrite failed: %v", err)
	}

	name, _ = store.PlayerName()
	if name != "Grace" {
		t.Errorf("PlayerName = %q, want Grace", name)
	}

	// Clearing runs keeps the profile
	store.ClearRuns()
	if name, _ := store.PlayerName(); name != "Grace" {
		t.Errorf("PlayerName after ClearRuns = %q", name)
	}
}
