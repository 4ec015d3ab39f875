package ballmath

import "math"

// PaddleBounce computes the rebound velocity of a ball that struck the
// paddle. hitOffset is the signed distance of the impact point from the
// paddle centre and paddleWidth already includes the ball width
// compensation. paddleDx is the paddle's horizontal velocity this tick.
//
// The incoming trajectory angle is reflected about the angle the hit offset
// makes with the paddle, so edge hits steer the ball regardless of its
// incoming direction. Speed magnitude is preserved before the paddle kick.
// The incoming vy must be positive (descending); vy == 0 is degenerate and
// not guarded.
//
// The returned Y is always <= -MinDY.
func (e Engine) PaddleBounce(vx, vy, hitOffset, paddleWidth, paddleDx int) Vec {
	fvx := float32(vx)
	fvy := float32(vy)

	speed := sqrt32(float32(fvx*fvx) + float32(fvy*fvy))
	incidence := atan32(fvx / -fvy)
	offset := atan32(float32(hitOffset) / float32(paddleWidth))
	reflect := float32(2*offset) - incidence

	nvx := float32(speed * sin32(reflect))
	nvy := float32(-speed * cos32(reflect))

	nvx += float32(float64(paddleDx) / 10.0)

	out := Vec{X: roundHalfAway(nvx)}

	minDY := e.Limits.MinDY
	if nvy < 0 {
		out.Y = roundHalfAway(nvy)
	} else {
		out.Y = -minDY
	}
	if out.Y > -minDY {
		out.Y = -minDY
	}
	return out
}

func atan32(x float32) float32 {
	return float32(math.Atan(float64(x)))
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func cos32(x float32) float32 {
	return float32(math.Cos(float64(x)))
}
