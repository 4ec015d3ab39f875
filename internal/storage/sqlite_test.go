package storage

import (
	"errors"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	run := RunRecord{Scenario: "rally", Seed: 1, Ticks: 10, Mode: "compat", FinalHash: 1}
	if _, err := store.SaveRun(&run, nil); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	got, err := store.RunByID(run.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("run did not survive reopen")
	}
}

func TestSaveAndRetrieveRun(t *testing.T) {
	store := openTestStore(t)

	run := RunRecord{
		Scenario:       "head-on",
		Seed:           42,
		Ticks:          600,
		Mode:           "compat",
		SpeedLevel:     6,
		BallCollisions: 3,
		PaddleHits:     7,
		FinalHash:      0xfedcba9876543210,
	}
	events := []EventRecord{
		{Tick: 18, Kind: "ball", A: 0, B: 1, T: 0.5},
		{Tick: 19, Kind: "cell", A: 0, B: -1, Row: 6, Col: 2},
		{Tick: 40, Kind: "paddle", A: 1, B: -1},
	}

	id, err := store.SaveRun(&run, events)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 || run.ID != id {
		t.Errorf("Expected positive ID written back, got %d / %d", id, run.ID)
	}
	if run.RunID == "" {
		t.Fatal("Expected a generated run ID")
	}

	got, err := store.RunByID(run.RunID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() returned nil")
	}
	if got.Scenario != "head-on" || got.Seed != 42 || got.Ticks != 600 || got.SpeedLevel != 6 {
		t.Errorf("Unexpected run: %+v", got)
	}
	if got.FinalHash != run.FinalHash {
		t.Errorf("Expected hash %x, got %x", run.FinalHash, got.FinalHash)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Expected created_at to be set")
	}

	gotEvents, err := store.RunEvents(run.RunID)
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	if len(gotEvents) != len(events) {
		t.Fatalf("Expected %d events, got %d", len(events), len(gotEvents))
	}
	for i := range events {
		if gotEvents[i] != events[i] {
			t.Errorf("event %d: expected %+v, got %+v", i, events[i], gotEvents[i])
		}
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)

	got, err := store.RunByID("does-not-exist")
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got != nil {
		t.Errorf("Expected nil, got %+v", got)
	}
}

func TestDuplicateRunIDRejected(t *testing.T) {
	store := openTestStore(t)

	run := RunRecord{RunID: "fixed", Scenario: "a", Mode: "compat"}
	if _, err := store.SaveRun(&run, nil); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	dup := RunRecord{RunID: "fixed", Scenario: "b", Mode: "compat"}
	events := []EventRecord{{Tick: 1, Kind: "wall", B: -1}}
	if _, err := store.SaveRun(&dup, events); err == nil {
		t.Fatal("Expected duplicate run_id to fail")
	}

	// The failed transaction must not leave events behind.
	got, err := store.RunEvents("fixed")
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no events, got %d", len(got))
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, name := range []string{"first", "second", "third"} {
		run := RunRecord{Scenario: name, Mode: "compat"}
		if _, err := store.SaveRun(&run, nil); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Scenario != "third" || runs[1].Scenario != "second" {
		t.Errorf("Expected newest first, got %s, %s", runs[0].Scenario, runs[1].Scenario)
	}
}

func TestResolveRunID(t *testing.T) {
	store := openTestStore(t)

	for _, id := range []string{"abc-1", "abd-2"} {
		run := RunRecord{RunID: id, Scenario: "x", Mode: "compat"}
		if _, err := store.SaveRun(&run, nil); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	tests := []struct {
		prefix string
		want   string
		err    error
	}{
		{"abc", "abc-1", nil},
		{"abd-2", "abd-2", nil},
		{"ab", "", ErrAmbiguousRun},
		{"zz", "", ErrRunNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			got, err := store.ResolveRunID(tt.prefix)
			if !errors.Is(err, tt.err) {
				t.Fatalf("ResolveRunID(%q) error = %v, want %v", tt.prefix, err, tt.err)
			}
			if got != tt.want {
				t.Errorf("ResolveRunID(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestDeleteRun(t *testing.T) {
	store := openTestStore(t)

	run := RunRecord{Scenario: "pileup", Mode: "corrected"}
	events := []EventRecord{{Tick: 1, Kind: "ball", A: 0, B: 1, T: 0.25}}
	if _, err := store.SaveRun(&run, events); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	deleted, err := store.DeleteRun(run.RunID)
	if err != nil {
		t.Fatalf("DeleteRun() failed: %v", err)
	}
	if !deleted {
		t.Error("Expected run to be deleted")
	}

	got, _ := store.RunByID(run.RunID)
	if got != nil {
		t.Error("Run still present after delete")
	}
	gotEvents, _ := store.RunEvents(run.RunID)
	if len(gotEvents) != 0 {
		t.Errorf("Expected events to be deleted, got %d", len(gotEvents))
	}

	deleted, err = store.DeleteRun(run.RunID)
	if err != nil {
		t.Fatalf("second DeleteRun() failed: %v", err)
	}
	if deleted {
		t.Error("Expected second delete to report nothing deleted")
	}
}

func TestStats(t *testing.T) {
	store := openTestStore(t)

	runs := []RunRecord{
		{Scenario: "rally", Ticks: 100, BallCollisions: 0, PaddleHits: 5, Mode: "compat"},
		{Scenario: "rally", Ticks: 300, BallCollisions: 0, PaddleHits: 9, Mode: "compat"},
		{Scenario: "pileup", Ticks: 50, BallCollisions: 12, PaddleHits: 1, Mode: "compat"},
	}
	for i := range runs {
		if _, err := store.SaveRun(&runs[i], nil); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 scenarios, got %d", len(stats))
	}

	rally := stats["rally"]
	if rally == nil {
		t.Fatal("Missing rally stats")
	}
	if rally.Runs != 2 || rally.Ticks != 400 || rally.PaddleHits != 14 {
		t.Errorf("Unexpected rally stats: %+v", rally)
	}
	if stats["pileup"].BallCollisions != 12 {
		t.Errorf("Expected 12 pileup collisions, got %d", stats["pileup"].BallCollisions)
	}
}

func TestHashRoundTrip(t *testing.T) {
	for _, h := range []uint64{0, 1, 0xffffffffffffffff, 0x8000000000000000} {
		got, err := parseHash(formatHash(h))
		if err != nil {
			t.Fatalf("parseHash(%x) failed: %v", h, err)
		}
		if got != h {
			t.Errorf("Expected %x, got %x", h, got)
		}
	}
	if _, err := parseHash("not-hex"); err == nil {
		t.Error("Expected error for bad hash")
	}
}
