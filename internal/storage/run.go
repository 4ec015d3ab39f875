package storage

import "github.com/vovakirdan/ballcore/internal/sim"

// NewRunRecord summarizes the current state of w as a run of scenarioID.
func NewRunRecord(scenarioID string, w *sim.World) RunRecord {
	stats := w.Stats()
	snap := w.Snapshot()
	return RunRecord{
		Scenario:       scenarioID,
		Seed:           w.Seed(),
		Ticks:          w.Tick(),
		Mode:           w.Engine().Mode.String(),
		SpeedLevel:     w.Level(),
		BallCollisions: stats.BallCollisions,
		PaddleHits:     stats.PaddleHits,
		FinalHash:      snap.Hash(),
	}
}

// EventRecords converts simulation events for storage.
func EventRecords(events []sim.Event) []EventRecord {
	out := make([]EventRecord, len(events))
	for i, e := range events {
		out[i] = EventRecord{
			Tick: e.Tick,
			Kind: e.Kind.String(),
			A:    e.A,
			B:    e.B,
			T:    float64(e.T),
			Row:  e.Row,
			Col:  e.Col,
		}
	}
	return out
}
