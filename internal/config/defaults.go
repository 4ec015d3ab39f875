package config

import (
	_ "embed"

	"github.com/vovakirdan/ballcore/internal/ballmath"
)

//go:embed defaults/ballcore.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It matches defaults/ballcore.yaml.
func Default() Config {
	return Config{
		Physics: PhysicsConfig{
			MaxXVel: ballmath.MaxXVel,
			MaxYVel: ballmath.MaxYVel,
			MinDX:   ballmath.MinDX,
			MinDY:   ballmath.MinDY,
			Mode:    "compat",
		},
		Field: FieldConfig{
			Width:  495,
			Height: 580,
			Cols:   9,
			Rows:   18,
		},
		Balls: BallsConfig{
			Radius:  ballmath.DefaultRadius,
			Width:   ballmath.BallWidth,
			MinMass: ballmath.MinMass,
			MaxMass: ballmath.MaxMass,
			Max:     5,
		},
		Paddle: PaddleConfig{
			Width:      50,
			Speed:      10,
			BaseOffset: 30,
		},
		Speed: SpeedConfig{
			InitialLevel: 5,
			Progression: ProgressionConfig{
				Type:  ProgressionHits,
				MaxAt: 40,
			},
		},
		Sim: SimConfig{
			Ticks:    3600,
			TickRate: 60,
		},
	}
}

// DefaultYAML returns the embedded default file, for `ballcore config`.
func DefaultYAML() []byte {
	return defaultYAML
}
