package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
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

func mustSave(t *testing.T, s *Store, r Run) Run {
	t.Helper()
	saved, err := s.SaveRun(r)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	return saved
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "runs.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSaveRunAssignsIDs(t *testing.T) {
	store := openTestStore(t)

	a := mustSave(t, store, Run{Level: "island", Coins: 4})
	b := mustSave(t, store, Run{Level: "island", Coins: 5})

	if a.ID == 0 || b.ID == 0 || a.ID == b.ID {
		t.Errorf("row IDs = %d, %d, expected distinct non-zero", a.ID, b.ID)
	}
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("RunIDs = %q, %q, expected distinct UUIDs", a.RunID, b.RunID)
	}

	kept := mustSave(t, store, Run{RunID: "fixed-id", Level: "island"})
	if kept.RunID != "fixed-id" {
		t.Errorf("RunID = %q, expected caller's ID to be kept", kept.RunID)
	}
	if _, err := store.SaveRun(Run{RunID: "fixed-id", Level: "island"}); err == nil {
		t.Error("saving a duplicate RunID should fail")
	}
}

func TestTopRunsOrder(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Level: "island", Coins: 12, Duration: 30 * time.Second})
	mustSave(t, store, Run{Level: "island", Coins: 20, Won: true, Duration: 90 * time.Second})
	mustSave(t, store, Run{Level: "island", Coins: 20, Won: true, Duration: 60 * time.Second, Stomps: 3, Player: "ann"})
	mustSave(t, store, Run{Level: "island", Coins: 15, Duration: 10 * time.Second})
	mustSave(t, store, Run{Level: "lagoon", Coins: 20, Won: true})

	runs, err := store.TopRuns("island", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 4 {
		t.Fatalf("expected 4 island runs, got %d", len(runs))
	}

	want := []struct {
		won      bool
		coins    int
		duration time.Duration
	}{
		{true, 20, 60 * time.Second},
		{true, 20, 90 * time.Second},
		{false, 15, 10 * time.Second},
		{false, 12, 30 * time.Second},
	}
	for i, w := range want {
		r := runs[i]
		if r.Won != w.won || r.Coins != w.coins || r.Duration != w.duration {
			t.Errorf("runs[%d] = won %v coins %d duration %v, expected %+v", i, r.Won, r.Coins, r.Duration, w)
		}
	}
	if runs[0].Player != "ann" || runs[0].Stomps != 3 {
		t.Errorf("runs[0] = %+v, expected player ann with 3 stomps", runs[0])
	}

	limited, err := store.TopRuns("island", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 runs with limit, got %d", len(limited))
	}
}

func TestBestRun(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestRun("island")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best != nil {
		t.Errorf("BestRun() = %+v on empty store, expected nil", best)
	}

	mustSave(t, store, Run{Level: "island", Coins: 7})
	mustSave(t, store, Run{Level: "island", Coins: 9})

	best, err = store.BestRun("island")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.Coins != 9 {
		t.Errorf("BestRun() = %+v, expected the 9-coin run", best)
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("island")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Runs != 0 || empty.FastestWin != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats() on empty level = %+v", empty)
	}

	mustSave(t, store, Run{Level: "island", Coins: 20, Won: true, Duration: 80 * time.Second})
	mustSave(t, store, Run{Level: "island", Coins: 20, Won: true, Duration: 70 * time.Second})
	mustSave(t, store, Run{Level: "island", Coins: 3, Duration: 5 * time.Second})
	mustSave(t, store, Run{Level: "lagoon", Coins: 1})

	st, err := store.Stats("island")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Runs != 3 || st.Wins != 2 || st.BestCoins != 20 {
		t.Errorf("Stats() = %+v, expected 3 runs, 2 wins, best 20", st)
	}
	if st.FastestWin != 70*time.Second {
		t.Errorf("FastestWin = %v, expected 70s", st.FastestWin)
	}
	if st.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all[0].Level != "island" || all[1].Level != "lagoon" {
		t.Errorf("AllStats() = %+v, expected island and lagoon", all)
	}
}

func TestClearRuns(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, Run{Level: "island", Coins: 1})
	mustSave(t, store, Run{Level: "island", Coins: 2})
	mustSave(t, store, Run{Level: "lagoon", Coins: 3})

	if err := store.ClearRuns("island"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	island, _ := store.TopRuns("island", 10)
	if len(island) != 0 {
		t.Errorf("Expected 0 island runs after clear, got %d", len(island))
	}
	lagoon, _ := store.TopRuns("lagoon", 10)
	if len(lagoon) != 1 {
		t.Error("lagoon runs should not be affected by clearing island")
	}

	recent, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 1 || recent[0].Level != "lagoon" {
		t.Errorf("RecentRuns() = %+v, expected the lagoon run", recent)
	}
}
