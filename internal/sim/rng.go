package sim

// rng is a deterministic LCG so runs replay exactly from a seed.
type rng struct {
	state uint64
}

func newRNG(seed int64) *rng {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &rng{state: s}
}

func (r *rng) next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// intn returns a value in [0, n).
func (r *rng) intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// between returns a value in [lo, hi].
func (r *rng) between(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + r.intn(hi-lo+1)
}

// sign returns -1 or 1.
func (r *rng) sign() int {
	if r.intn(2) == 0 {
		return -1
	}
	return 1
}
