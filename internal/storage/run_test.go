package storage

import (
	"testing"

	"github.com/vovakirdan/ballcore/internal/config"
	"github.com/vovakirdan/ballcore/internal/core"
	"github.com/vovakirdan/ballcore/internal/sim"
)

func TestSaveSimulatedRun(t *testing.T) {
	store := openTestStore(t)

	w := sim.New(config.Default(), 5)
	if err := w.Spawn(w.NewBall(100, 100, 5, 0, 1)); err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}
	if err := w.Spawn(w.NewBall(130, 100, -5, 0, 1)); err != nil {
		t.Fatalf("Spawn() failed: %v", err)
	}

	var events []sim.Event
	for i := 0; i < 10; i++ {
		res := w.Step(core.NewInputFrame())
		events = append(events, res.Events...)
	}

	run := NewRunRecord("head-on", w)
	if run.Ticks != 10 || run.Seed != 5 || run.Mode != "compat" {
		t.Errorf("Unexpected record: %+v", run)
	}
	if run.BallCollisions != 1 {
		t.Errorf("Expected 1 collision, got %d", run.BallCollisions)
	}

	if _, err := store.SaveRun(&run, EventRecords(events)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	got, err := store.RunEvents(run.RunID)
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	if len(got) != len(events) {
		t.Fatalf("Expected %d events, got %d", len(events), len(got))
	}
	if got[0].Kind != "ball" || got[0].A != 0 || got[0].B != 1 || got[0].T != 1 {
		t.Errorf("Unexpected first event: %+v", got[0])
	}
}
