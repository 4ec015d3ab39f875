package ballmath

// LevelSpeed is the target speed magnitude for a speed level: the maximum
// diagonal speed split into SpeedLevels equal steps.
func (e Engine) LevelSpeed(level int) float32 {
	target := e.MaxSpeed()
	target /= SpeedLevels
	target *= float32(level)
	return target
}

// Normalize rescales (dx, dy) to the magnitude of the given speed level,
// rounding each axis half away from zero.
//
// A zero vector is scaled as if its speed were 1, so it stays zero and both
// axes fall through to the floor. A component that collapses to zero is
// floored to +MinDX/+MinDY in compat mode; in corrected mode it keeps the
// sign of the input component.
func (e Engine) Normalize(dx, dy, level int) Vec {
	fx := float32(dx)
	fy := float32(dy)
	speed := sqrt32(float32(fx*fx) + float32(fy*fy))

	target := e.LevelSpeed(level)

	if speed == 0 {
		speed = 1
	}
	beta := target / speed

	fx *= beta
	fy *= beta

	out := Vec{X: roundHalfAway(fx), Y: roundHalfAway(fy)}

	if out.Y == 0 {
		out.Y = e.floor(e.Limits.MinDY, dy)
	}
	if out.X == 0 {
		out.X = e.floor(e.Limits.MinDX, dx)
	}
	return out
}

func (e Engine) floor(limit, orig int) int {
	if !e.Mode.PositiveFloor && orig < 0 {
		return -limit
	}
	return limit
}
