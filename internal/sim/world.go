// Package sim is a headless arena that drives the physics core: it owns the
// ball pool, moves the paddle, integrates positions, detects walls and paddle
// contact, and tracks which block grid cell each ball occupies.
package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/ballcore/internal/ballmath"
	"github.com/vovakirdan/ballcore/internal/config"
	"github.com/vovakirdan/ballcore/internal/core"
)

// ServeDistance is how far above the paddle a lost ball is served again.
const ServeDistance = 45

// ErrPoolFull is returned by Spawn when the ball pool is at capacity.
var ErrPoolFull = errors.New("sim: ball pool full")

// Paddle is the player's bat. X is the left edge and Y the top, in pixels.
type Paddle struct {
	X     int
	Y     int
	Width int
	Dx    int // Horizontal movement during the last tick
}

// CenterX returns the horizontal centre of the paddle.
func (p Paddle) CenterX() int {
	return p.X + p.Width/2
}

// Right returns the x coordinate just past the paddle.
func (p Paddle) Right() int {
	return p.X + p.Width
}

// StepResult is what happened during one call to Step.
type StepResult struct {
	Tick   int
	Level  int
	Paused bool
	Events []Event
}

// Stats are running totals for a world.
type Stats struct {
	Ticks          int
	BallCollisions int
	PaddleHits     int
	WallBounces    int
	Serves         int
	CellChanges    int
}

type cell struct {
	row, col int
}

// World is a deterministic simulation of up to Balls.Max balls in a
// rectangular field with walls on three sides and a paddle at the bottom.
type World struct {
	cfg    config.Config
	engine ballmath.Engine
	speed  *config.SpeedManager

	balls []ballmath.Ball
	cells []cell
	occ   [][]int

	paddle    Paddle
	auto      bool
	paused    bool
	levelBias int

	tick  int
	stats Stats
	seed  int64
	rng   *rng
}

// New creates an empty world. The configuration is assumed valid.
func New(cfg config.Config, seed int64) *World {
	w := &World{
		cfg:    cfg,
		engine: cfg.Engine(),
		speed:  config.NewSpeedManager(cfg.Speed),
		seed:   seed,
		rng:    newRNG(seed),
	}
	w.occ = make([][]int, cfg.Field.Rows)
	for r := range w.occ {
		w.occ[r] = make([]int, cfg.Field.Cols)
	}
	w.paddle = Paddle{
		X:     (cfg.Field.Width - cfg.Paddle.Width) / 2,
		Y:     cfg.Field.Height - cfg.Paddle.BaseOffset,
		Width: cfg.Paddle.Width,
	}
	return w
}

// SetEngine replaces the physics engine, e.g. to switch compatibility mode.
func (w *World) SetEngine(e ballmath.Engine) {
	w.engine = e
}

// Engine returns the physics engine in use.
func (w *World) Engine() ballmath.Engine {
	return w.engine
}

// Config returns the world's configuration.
func (w *World) Config() config.Config {
	return w.cfg
}

// Seed returns the seed the world was created with.
func (w *World) Seed() int64 {
	return w.seed
}

// NewBall builds a ball with the configured radius.
func (w *World) NewBall(x, y, dx, dy int, mass float32) ballmath.Ball {
	return ballmath.Ball{
		Pos:    ballmath.Vec{X: x, Y: y},
		Vel:    ballmath.Vec{X: dx, Y: dy},
		Radius: w.cfg.Balls.Radius,
		Mass:   mass,
	}
}

// Spawn validates b and adds it to the pool.
func (w *World) Spawn(b ballmath.Ball) error {
	if len(w.balls) >= w.cfg.Balls.Max {
		return fmt.Errorf("%w: %d balls", ErrPoolFull, len(w.balls))
	}
	if err := b.Validate(); err != nil {
		return fmt.Errorf("sim: spawn: %w", err)
	}
	w.balls = append(w.balls, b)
	w.cells = append(w.cells, cell{row: -1, col: -1})
	w.locate(len(w.balls) - 1)
	return nil
}

// SpawnRandom adds a ball with a seeded random position, velocity and mass
// in the upper half of the field.
func (w *World) SpawnRandom() error {
	f := w.cfg.Field
	r := int(w.cfg.Balls.Radius)
	lim := w.engine.Limits

	x := w.rng.between(r, f.Width-r)
	y := w.rng.between(r, f.Height/2)
	dx := w.rng.sign() * w.rng.between(lim.MinDX, lim.MaxXVel)
	dy := w.rng.sign() * w.rng.between(lim.MinDY, lim.MaxYVel)

	lo := int(w.cfg.Balls.MinMass * 10)
	hi := int(w.cfg.Balls.MaxMass * 10)
	mass := float32(w.rng.between(lo, hi)) / 10

	return w.Spawn(w.NewBall(x, y, dx, dy, mass))
}

// Balls returns a copy of the ball pool.
func (w *World) Balls() []ballmath.Ball {
	out := make([]ballmath.Ball, len(w.balls))
	copy(out, w.balls)
	return out
}

// Paddle returns the paddle state.
func (w *World) Paddle() Paddle {
	return w.paddle
}

// SetAuto switches the paddle autopilot on or off.
func (w *World) SetAuto(on bool) {
	w.auto = on
}

// Auto reports whether the paddle autopilot is on.
func (w *World) Auto() bool {
	return w.auto
}

// Paused reports whether stepping is suspended.
func (w *World) Paused() bool {
	return w.paused
}

// Tick returns the number of simulated ticks.
func (w *World) Tick() int {
	return w.tick
}

// Stats returns the running totals.
func (w *World) Stats() Stats {
	return w.stats
}

// SpeedManager exposes the speed progression, e.g. to override the
// starting level.
func (w *World) SpeedManager() *config.SpeedManager {
	return w.speed
}

// Level returns the current global speed level.
func (w *World) Level() int {
	level := w.speed.Level(w.stats.PaddleHits, w.tick) + w.levelBias
	return core.Clamp(level, 0, ballmath.MaxSpeedLevel)
}

// Occupancy returns how many balls are in grid cell (row, col).
func (w *World) Occupancy(row, col int) int {
	if !w.grid().Contains(col, row) {
		return 0
	}
	return w.occ[row][col]
}

// Step advances the world by one tick.
func (w *World) Step(in core.InputFrame) StepResult {
	if in.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if in.Has(core.ActionAuto) {
		w.auto = !w.auto
	}
	if in.Has(core.ActionFaster) && w.Level() < ballmath.MaxSpeedLevel {
		w.levelBias++
	}
	if in.Has(core.ActionSlower) && w.Level() > 0 {
		w.levelBias--
	}

	if w.paused {
		return StepResult{Tick: w.tick, Level: w.Level(), Paused: true}
	}

	w.tick++
	var events []Event

	w.movePaddle(in)
	events = w.collideBalls(events)

	for i := range w.balls {
		events = w.advance(i, events)
	}
	for i := range w.balls {
		if c, changed := w.locate(i); changed {
			w.stats.CellChanges++
			events = append(events, Event{Tick: w.tick, Kind: EventCell, A: i, B: -1, Row: c.row, Col: c.col})
		}
	}

	w.stats.Ticks = w.tick
	return StepResult{Tick: w.tick, Level: w.Level(), Events: events}
}

// movePaddle applies manual input or the autopilot and records the
// paddle's displacement.
func (w *World) movePaddle(in core.InputFrame) {
	speed := w.cfg.Paddle.Speed
	move := 0

	if w.auto {
		if target, ok := w.autoTarget(); ok {
			move = core.Clamp(target-w.paddle.CenterX(), -speed, speed)
		}
	} else {
		if in.Has(core.ActionLeft) {
			move -= speed
		}
		if in.Has(core.ActionRight) {
			move += speed
		}
	}

	oldX := w.paddle.X
	w.paddle.X = core.Clamp(oldX+move, 0, w.cfg.Field.Width-w.paddle.Width)
	w.paddle.Dx = w.paddle.X - oldX
}

// autoTarget picks the lowest descending ball, or the lowest ball when none
// is descending.
func (w *World) autoTarget() (int, bool) {
	best := -1
	for i, b := range w.balls {
		if best < 0 {
			best = i
			continue
		}
		cur := w.balls[best]
		down, curDown := b.Vel.Y > 0, cur.Vel.Y > 0
		if down != curDown {
			if down {
				best = i
			}
			continue
		}
		if b.Pos.Y > cur.Pos.Y {
			best = i
		}
	}
	if best < 0 {
		return 0, false
	}
	return w.balls[best].Pos.X, true
}

// collideBalls predicts and resolves every pair in index order.
func (w *World) collideBalls(events []Event) []Event {
	for i := 0; i < len(w.balls); i++ {
		for j := i + 1; j < len(w.balls); j++ {
			c := w.engine.Predict(w.balls[i], w.balls[j])
			if !c.Hit {
				continue
			}
			w.engine.Resolve(&w.balls[i], &w.balls[j])
			w.balls[i].Vel = w.capVelocity(w.balls[i].Vel)
			w.balls[j].Vel = w.capVelocity(w.balls[j].Vel)

			w.stats.BallCollisions++
			events = append(events, Event{Tick: w.tick, Kind: EventBallBall, A: i, B: j, T: c.T})
		}
	}
	return events
}

// capVelocity clamps each axis to the configured maximum; the resolver
// itself applies no bounds.
func (w *World) capVelocity(v ballmath.Vec) ballmath.Vec {
	lim := w.engine.Limits
	return ballmath.Vec{
		X: core.Clamp(v.X, -lim.MaxXVel, lim.MaxXVel),
		Y: core.Clamp(v.Y, -lim.MaxYVel, lim.MaxYVel),
	}
}

// advance integrates one ball and handles walls, fall-off and the paddle.
func (w *World) advance(i int, events []Event) []Event {
	b := &w.balls[i]
	r := int(b.Radius)
	f := w.cfg.Field

	b.Pos = b.Pos.Add(b.Vel)

	wall := false
	if b.Pos.X-r < 0 {
		b.Pos.X = r
		b.Vel.X = core.Abs(b.Vel.X)
		wall = true
	} else if b.Pos.X+r > f.Width {
		b.Pos.X = f.Width - r
		b.Vel.X = -core.Abs(b.Vel.X)
		wall = true
	}
	if b.Pos.Y-r < 0 {
		b.Pos.Y = r
		b.Vel.Y = core.Abs(b.Vel.Y)
		wall = true
	}
	if wall {
		w.stats.WallBounces++
		events = append(events, Event{Tick: w.tick, Kind: EventWall, A: i, B: -1})
	}

	if b.Pos.Y-r > f.Height {
		w.serve(b)
		w.stats.Serves++
		return append(events, Event{Tick: w.tick, Kind: EventServe, A: i, B: -1})
	}

	if w.touchesPaddle(*b) {
		w.bounce(b)
		w.stats.PaddleHits++
		events = append(events, Event{Tick: w.tick, Kind: EventPaddle, A: i, B: -1})
	}
	return events
}

// touchesPaddle reports whether a descending ball's bottom crossed the
// paddle top this tick within the paddle span widened by the ball radius.
func (w *World) touchesPaddle(b ballmath.Ball) bool {
	if b.Vel.Y <= 0 {
		return false
	}
	r := int(b.Radius)
	bottom := b.Pos.Y + r
	if bottom < w.paddle.Y || bottom-b.Vel.Y > w.paddle.Y {
		return false
	}
	span := core.NewRect(w.paddle.X-r, w.paddle.Y, w.paddle.Width+2*r, 1)
	return span.SpanContains(b.Pos.X)
}

// bounce reflects a ball off the paddle and rescales it to the current
// speed level.
func (w *World) bounce(b *ballmath.Ball) {
	offset := b.Pos.X - w.paddle.CenterX()
	width := w.paddle.Width + w.cfg.Balls.Width

	v := w.engine.PaddleBounce(b.Vel.X, b.Vel.Y, offset, width, w.paddle.Dx)
	v = w.engine.Normalize(v.X, v.Y, max(w.Level(), 1))
	if v.Y > -w.engine.Limits.MinDY {
		// Rescaling can shrink the upward component or, through the
		// positive floor, flip it; the ball must leave the paddle.
		v.Y = -w.engine.Limits.MinDY
	}
	b.Vel = w.capVelocity(v)
	b.Pos.Y = w.paddle.Y - int(b.Radius) - 1
}

// serve puts a lost ball back above the paddle heading upward.
func (w *World) serve(b *ballmath.Ball) {
	lim := w.engine.Limits
	dx := w.rng.sign() * w.rng.between(lim.MinDX, max(lim.MaxXVel/2, lim.MinDX))
	dy := -max(lim.MaxYVel/2, lim.MinDY)

	v := w.engine.Normalize(dx, dy, max(w.Level(), 1))
	if v.Y > -lim.MinDY {
		v.Y = -lim.MinDY
	}
	b.Vel = w.capVelocity(v)
	b.Pos = ballmath.Vec{X: w.paddle.CenterX(), Y: w.paddle.Y - ServeDistance}
}

// locate updates ball i's grid cell and the occupancy map and reports
// whether the cell changed. Cells outside the grid are tracked but not
// counted.
func (w *World) locate(i int) (cell, bool) {
	f := w.cfg.Field
	row, col := ballmath.ToCell(w.balls[i].Pos, f.ColWidth(), f.RowHeight())
	next := cell{row: row, col: col}
	prev := w.cells[i]
	if next == prev {
		return next, false
	}

	w.count(prev, -1)
	w.count(next, 1)
	w.cells[i] = next
	return next, true
}

func (w *World) count(c cell, delta int) {
	if !w.grid().Contains(c.col, c.row) {
		return
	}
	w.occ[c.row][c.col] += delta
}

// grid is the block grid in cell units, columns along X.
func (w *World) grid() core.Rect {
	return core.NewRect(0, 0, w.cfg.Field.Cols, w.cfg.Field.Rows)
}
