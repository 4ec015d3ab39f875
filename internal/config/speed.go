package config

import "github.com/vovakirdan/ballcore/internal/ballmath"

// Progression types.
const (
	ProgressionHits = "hits"
	ProgressionTime = "time"
	ProgressionNone = "none"
)

// SpeedManager derives the global speed level from paddle hits or elapsed
// ticks. It replaces ambient speed state: the level it returns is passed
// explicitly to the normalizer.
type SpeedManager struct {
	cfg          SpeedConfig
	initialLevel int
}

// NewSpeedManager creates a manager starting at cfg.InitialLevel.
func NewSpeedManager(cfg SpeedConfig) *SpeedManager {
	return &SpeedManager{
		cfg:          cfg,
		initialLevel: clampLevel(cfg.InitialLevel),
	}
}

// SetInitialLevel overrides the starting level, clamped to [0, MaxSpeedLevel].
func (m *SpeedManager) SetInitialLevel(level int) {
	m.initialLevel = clampLevel(level)
}

// InitialLevel returns the starting level.
func (m *SpeedManager) InitialLevel() int {
	return m.initialLevel
}

// IsProgressive reports whether the level rises over a run.
func (m *SpeedManager) IsProgressive() bool {
	switch m.cfg.Progression.Type {
	case ProgressionHits, ProgressionTime:
		return true
	}
	return false
}

// Level returns the current level, interpolating from the initial level to
// MaxSpeedLevel as hits or ticks approach max_at.
func (m *SpeedManager) Level(hits, ticks int) int {
	maxAt := float64(m.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch m.cfg.Progression.Type {
	case ProgressionHits:
		progress = float64(hits) / maxAt
	case ProgressionTime:
		progress = float64(ticks) / maxAt
	default:
		return m.initialLevel
	}
	progress = min(max(progress, 0), 1)

	span := ballmath.MaxSpeedLevel - m.initialLevel
	return m.initialLevel + int(progress*float64(span))
}

func clampLevel(level int) int {
	return min(max(level, 0), ballmath.MaxSpeedLevel)
}
