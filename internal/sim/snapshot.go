package sim

// Snapshot is the complete world state in primitive types, for replay
// verification and storage.
type Snapshot struct {
	Tick      uint64
	PaddleX   int
	PaddleDx  int
	Level     int
	LevelBias int
	Auto      bool
	Paused    bool

	// Each ball is 6 ints: X, Y, VX, VY, Mass*1000, Radius*1000
	BallCount int
	BallData  []int

	// Row-major ball counts per grid cell
	Occupancy []int

	PaddleHits     int
	BallCollisions int

	RNGState uint64
}

// Snapshot returns the current world state.
func (w *World) Snapshot() Snapshot {
	ballData := make([]int, 0, len(w.balls)*6)
	for _, b := range w.balls {
		ballData = append(ballData,
			b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y,
			int(b.Mass*1000), int(b.Radius*1000))
	}

	occ := make([]int, 0, w.cfg.Field.Rows*w.cfg.Field.Cols)
	for _, row := range w.occ {
		occ = append(occ, row...)
	}

	return Snapshot{
		Tick:           uint64(w.tick), //#nosec G115 -- tick count is always positive
		PaddleX:        w.paddle.X,
		PaddleDx:       w.paddle.Dx,
		Level:          w.Level(),
		LevelBias:      w.levelBias,
		Auto:           w.auto,
		Paused:         w.paused,
		BallCount:      len(w.balls),
		BallData:       ballData,
		Occupancy:      occ,
		PaddleHits:     w.stats.PaddleHits,
		BallCollisions: w.stats.BallCollisions,
		RNGState:       w.rng.state,
	}
}

// Hash returns a simple hash of the snapshot for determinism checks.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.PaddleX)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleDx)       //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.LevelBias)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCount)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PaddleHits)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.BallCollisions) //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Auto)
	h = h*31 + boolBit(snap.Paused)

	for _, v := range snap.BallData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}
	for _, v := range snap.Occupancy {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
