package ballmath

// Collision is the outcome of Predict. T is the fraction of the current step
// at which the circles touch; it is only meaningful when Hit is true.
type Collision struct {
	Hit bool
	T   float32
}

// Predict reports whether b1 and b2 touch within the current step, solving
// the relative-motion quadratic for the earliest contact time.
//
// Overlap alone is not a collision: the pair must be approaching with a
// relative speed squared above e.Eps. A tangential approach counts.
func (e Engine) Predict(b1, b2 Ball) Collision {
	p := b1.Pos.Sub(b2.Pos)
	v := b1.Vel.Sub(b2.Vel)
	px, py := float32(p.X), float32(p.Y)
	vx, vy := float32(v.X), float32(v.Y)

	v2 := float32(vx*vx) + float32(vy*vy)
	rs := b1.Radius + b2.Radius
	r2 := rs * rs

	cross := float32(vx*py) - float32(vy*px)
	disc := float32(v2*r2) - float32(cross*cross)

	if disc < 0 || v2 <= e.Eps {
		return Collision{}
	}

	half := float32(sqrt64(disc) / float64(v2))
	mid := -(float32(px*vx) + float32(py*vy)) / v2

	t1 := mid - half
	t2 := mid + half
	tmin := min(t1, t2)

	if tmin >= 0 && tmin <= 1 {
		return Collision{Hit: true, T: tmin}
	}
	return Collision{}
}

// Resolve applies a mass-weighted elastic exchange along the line between
// centres and returns the new velocities. Only Vel is written.
//
// Positions are not advanced to the contact time first. Deltas are
// truncated toward zero. A zero-length separation leaves both balls
// untouched. Zero mass is not guarded.
func (e Engine) Resolve(b1, b2 *Ball) (Vec, Vec) {
	px := float32(b1.Pos.X - b2.Pos.X)
	var py float32
	if e.Mode.TransposedSeparation {
		py = float32(b1.Pos.X - b2.Pos.Y)
	} else {
		py = float32(b1.Pos.Y - b2.Pos.Y)
	}
	v := b1.Vel.Sub(b2.Vel)
	vx, vy := float32(v.X), float32(v.Y)

	plen := sqrt32(float32(px*px) + float32(py*py))
	if plen == 0 {
		return b1.Vel, b2.Vel
	}
	px /= plen
	py /= plen

	ratio := b1.Mass / b2.Mass

	k := -2 * (float32(vx*px) + float32(vy*py)) / (1 + ratio)
	b1.Vel.X += truncate(k * px)
	b1.Vel.Y += truncate(k * py)

	k *= -ratio
	b2.Vel.X += truncate(k * px)
	b2.Vel.Y += truncate(k * py)

	return b1.Vel, b2.Vel
}
