// Package ballmath is the physics core of the paddle-and-ball arcade: swept
// circle collision prediction, elastic ball-ball response, paddle rebound
// geometry, speed quantization and pixel-to-grid mapping.
//
// Every function is pure. Callers own ball storage, lifecycle and position
// integration; the core only reads state and returns new velocities.
// All internal arithmetic is float32 so that integer results match the
// characterized behaviour at the truncation boundaries.
package ballmath

import (
	"errors"
	"fmt"
)

// Ball geometry and velocity bounds.
const (
	BallWidth  = 20
	BallHeight = 19

	MinMass = 1.0
	MaxMass = 3.0

	MaxXVel = 14
	MaxYVel = 14
	MinDX   = 2
	MinDY   = 2

	// SpeedLevels is the number of equal steps the maximum diagonal speed
	// is divided into.
	SpeedLevels   = 9
	MaxSpeedLevel = SpeedLevels
)

// DefaultRadius is half the nominal ball sprite width.
const DefaultRadius float32 = BallWidth / 2

// Validation errors returned by Ball.Validate.
var (
	ErrNonPositiveRadius = errors.New("ballmath: radius must be positive")
	ErrMassOutOfRange    = errors.New("ballmath: mass out of range")
)

// Vec is an integer pixel vector. For velocities, negative Y is upward.
type Vec struct {
	X, Y int
}

// Add returns v+o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v-o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Ball is the per-instance state the core reads. Pos is the centre.
type Ball struct {
	Pos    Vec
	Vel    Vec
	Radius float32
	Mass   float32
}

// NewBall returns a ball with the default radius and unit mass.
func NewBall(x, y, dx, dy int) Ball {
	return Ball{
		Pos:    Vec{X: x, Y: y},
		Vel:    Vec{X: dx, Y: dy},
		Radius: DefaultRadius,
		Mass:   MinMass,
	}
}

// Validate checks the invariants the core assumes but never enforces.
// Callers should validate before handing balls to the engine.
func (b Ball) Validate() error {
	if !(b.Radius > 0) {
		return fmt.Errorf("%w: %v", ErrNonPositiveRadius, b.Radius)
	}
	if !(b.Mass >= MinMass && b.Mass <= MaxMass) {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrMassOutOfRange, b.Mass, MinMass, MaxMass)
	}
	return nil
}
