package config

import "testing"

func TestSpeedManagerHits(t *testing.T) {
	m := NewSpeedManager(SpeedConfig{
		InitialLevel: 5,
		Progression:  ProgressionConfig{Type: ProgressionHits, MaxAt: 40},
	})

	tests := []struct {
		hits, expected int
	}{
		{0, 5},
		{10, 6},
		{20, 7},
		{40, 9},
		{400, 9},
	}

	for _, tc := range tests {
		if got := m.Level(tc.hits, 0); got != tc.expected {
			t.Errorf("Level(%d hits) = %d, expected %d", tc.hits, got, tc.expected)
		}
	}
}

func TestSpeedManagerTime(t *testing.T) {
	m := NewSpeedManager(SpeedConfig{
		InitialLevel: 0,
		Progression:  ProgressionConfig{Type: ProgressionTime, MaxAt: 900},
	})

	if got := m.Level(100, 0); got != 0 {
		t.Errorf("hits must not count for time progression, got %d", got)
	}
	if got := m.Level(0, 450); got != 4 {
		t.Errorf("Level(450 ticks) = %d, expected 4", got)
	}
	if got := m.Level(0, 900); got != 9 {
		t.Errorf("Level(900 ticks) = %d, expected 9", got)
	}
}

func TestSpeedManagerFixed(t *testing.T) {
	m := NewSpeedManager(SpeedConfig{
		InitialLevel: 3,
		Progression:  ProgressionConfig{Type: ProgressionNone},
	})

	if m.IsProgressive() {
		t.Error("none progression should not be progressive")
	}
	if got := m.Level(1000, 1000); got != 3 {
		t.Errorf("Level() = %d, expected 3", got)
	}

	m.SetInitialLevel(42)
	if got := m.InitialLevel(); got != 9 {
		t.Errorf("SetInitialLevel should clamp to 9, got %d", got)
	}
	m.SetInitialLevel(-1)
	if got := m.InitialLevel(); got != 0 {
		t.Errorf("SetInitialLevel should clamp to 0, got %d", got)
	}
}
