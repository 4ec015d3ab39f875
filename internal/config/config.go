// Package config provides YAML configuration for the physics limits, play
// field, ball pool, paddle and speed progression.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/ballcore/internal/ballmath"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config is the complete configuration.
type Config struct {
	Physics PhysicsConfig `yaml:"physics"`
	Field   FieldConfig   `yaml:"field"`
	Balls   BallsConfig   `yaml:"balls"`
	Paddle  PaddleConfig  `yaml:"paddle"`
	Speed   SpeedConfig   `yaml:"speed"`
	Sim     SimConfig     `yaml:"sim"`
}

// PhysicsConfig holds the velocity limits and compatibility mode.
type PhysicsConfig struct {
	MaxXVel    int     `yaml:"max_x_vel"`
	MaxYVel    int     `yaml:"max_y_vel"`
	MinDX      int     `yaml:"min_dx"`
	MinDY      int     `yaml:"min_dy"`
	Mode       string  `yaml:"mode"`        // "compat" or "corrected"
	MachineEps float32 `yaml:"machine_eps"` // 0 = derive at startup
}

// FieldConfig describes the play area in pixels and its block grid.
type FieldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Cols   int `yaml:"cols"`
	Rows   int `yaml:"rows"`
}

// ColWidth is the pixel width of one grid column.
func (f FieldConfig) ColWidth() int {
	return f.Width / f.Cols
}

// RowHeight is the pixel height of one grid row.
func (f FieldConfig) RowHeight() int {
	return f.Height / f.Rows
}

// BallsConfig describes the ball pool.
type BallsConfig struct {
	Radius  float32 `yaml:"radius"`
	Width   int     `yaml:"width"`
	MinMass float32 `yaml:"min_mass"`
	MaxMass float32 `yaml:"max_mass"`
	Max     int     `yaml:"max"`
}

// PaddleConfig describes the paddle.
type PaddleConfig struct {
	Width      int `yaml:"width"`
	Speed      int `yaml:"speed"`       // Pixels per tick
	BaseOffset int `yaml:"base_offset"` // Distance of the paddle top from the field bottom
}

// SpeedConfig defines the starting speed level and how it rises.
type SpeedConfig struct {
	InitialLevel int               `yaml:"initial_level"`
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines how the speed level increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "hits", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Paddle hits or ticks at which the top level is reached
}

// SimConfig holds headless run defaults.
type SimConfig struct {
	Ticks    int `yaml:"ticks"`
	TickRate int `yaml:"tick_rate"`
}

// Limits converts the physics section to engine limits.
func (p PhysicsConfig) Limits() ballmath.Limits {
	return ballmath.Limits{
		MaxXVel: p.MaxXVel,
		MaxYVel: p.MaxYVel,
		MinDX:   p.MinDX,
		MinDY:   p.MinDY,
	}
}

// Engine builds the physics engine described by the configuration.
func (c Config) Engine() ballmath.Engine {
	e := ballmath.NewEngine()
	e.Limits = c.Physics.Limits()
	if mode, ok := ballmath.ParseMode(c.Physics.Mode); ok {
		e.Mode = mode
	}
	if c.Physics.MachineEps > 0 {
		e.Eps = c.Physics.MachineEps
	}
	return e
}

// Validate rejects configurations the simulation cannot run with.
func (c Config) Validate() error {
	p := c.Physics
	if p.MaxXVel <= 0 || p.MaxYVel <= 0 {
		return fmt.Errorf("%w: max velocities must be positive", ErrInvalid)
	}
	if p.MinDX <= 0 || p.MinDY <= 0 || p.MinDX > p.MaxXVel || p.MinDY > p.MaxYVel {
		return fmt.Errorf("%w: min velocities must be in [1, max]", ErrInvalid)
	}
	if _, ok := ballmath.ParseMode(p.Mode); !ok {
		return fmt.Errorf("%w: unknown physics mode %q", ErrInvalid, p.Mode)
	}
	if p.MachineEps < 0 {
		return fmt.Errorf("%w: machine_eps must not be negative", ErrInvalid)
	}

	f := c.Field
	if f.Cols <= 0 || f.Rows <= 0 || f.Width < f.Cols || f.Height < f.Rows {
		return fmt.Errorf("%w: field %dx%d cannot hold a %dx%d grid", ErrInvalid, f.Width, f.Height, f.Cols, f.Rows)
	}

	b := c.Balls
	if b.Radius <= 0 || b.Width <= 0 {
		return fmt.Errorf("%w: ball radius and width must be positive", ErrInvalid)
	}
	if b.MinMass < ballmath.MinMass || b.MaxMass > ballmath.MaxMass || b.MinMass > b.MaxMass {
		return fmt.Errorf("%w: mass range [%v, %v] outside [%v, %v]",
			ErrInvalid, b.MinMass, b.MaxMass, ballmath.MinMass, ballmath.MaxMass)
	}
	if b.Max <= 0 {
		return fmt.Errorf("%w: balls.max must be positive", ErrInvalid)
	}

	if c.Paddle.Width <= 0 || c.Paddle.Width > f.Width {
		return fmt.Errorf("%w: paddle width %d", ErrInvalid, c.Paddle.Width)
	}
	if c.Paddle.BaseOffset <= 0 || c.Paddle.BaseOffset >= f.Height {
		return fmt.Errorf("%w: paddle base_offset %d", ErrInvalid, c.Paddle.BaseOffset)
	}

	if c.Speed.InitialLevel < 0 || c.Speed.InitialLevel > ballmath.MaxSpeedLevel {
		return fmt.Errorf("%w: speed level %d not in [0, %d]", ErrInvalid, c.Speed.InitialLevel, ballmath.MaxSpeedLevel)
	}
	switch c.Speed.Progression.Type {
	case ProgressionHits, ProgressionTime, ProgressionNone:
	default:
		return fmt.Errorf("%w: unknown progression %q", ErrInvalid, c.Speed.Progression.Type)
	}

	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive", ErrInvalid)
	}
	return nil
}
