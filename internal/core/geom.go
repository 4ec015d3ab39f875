// Package core provides the dependency-free platform types shared by the
// simulation and the terminal viewer: pixel rectangles, a coloured cell
// buffer, runtime settings and abstract input actions.
package core

// Rect is an axis-aligned box in pixel space.
type Rect struct {
	X, Y int // Top-left corner
	W, H int
}

// NewRect creates a rectangle with the given position and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the exclusive right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// CenterX returns the horizontal centre.
func (r Rect) CenterX() int {
	return r.X + r.W/2
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// SpanContains reports whether x lies within [r.X, r.Right()].
func (r Rect) SpanContains(x int) bool {
	return x >= r.X && x <= r.Right()
}

// Clamp restricts a value to [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
