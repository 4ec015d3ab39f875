package scenario

import (
	"github.com/vovakirdan/ballcore/internal/sim"
)

func init() {
	Register(Scenario{
		ID:          "head-on",
		Title:       "Head On",
		Description: "Two equal balls meet on a horizontal line",
		Auto:        true,
		Level:       -1,
		Setup: func(w *sim.World) error {
			return spawnAll(w,
				w.NewBall(150, 200, 5, 0, 1),
				w.NewBall(345, 200, -5, 0, 1),
			)
		},
	})

	Register(Scenario{
		ID:          "heavy-light",
		Title:       "Heavy vs Light",
		Description: "A mass 3 ball strikes a mass 1 ball",
		Auto:        true,
		Level:       -1,
		Setup: func(w *sim.World) error {
			return spawnAll(w,
				w.NewBall(120, 260, 8, 0, 3),
				w.NewBall(300, 260, 0, 0, 1),
			)
		},
	})

	Register(Scenario{
		ID:          "pileup",
		Title:       "Pileup",
		Description: "A full pool converging on the centre line",
		Auto:        true,
		Level:       -1,
		Setup: func(w *sim.World) error {
			for i := 0; i < w.Config().Balls.Max; i++ {
				dx := 7
				if i%2 == 1 {
					dx = -7
				}
				mass := 1 + float32(i%3)
				if err := w.Spawn(w.NewBall(60+i*90, 150+i*10, dx, 3, mass)); err != nil {
					return err
				}
			}
			return nil
		},
	})

	Register(Scenario{
		ID:          "rally",
		Title:       "Rally",
		Description: "One ball served from the paddle, speed rises with each hit",
		Auto:        true,
		Level:       1,
		Setup: func(w *sim.World) error {
			p := w.Paddle()
			return w.Spawn(w.NewBall(p.CenterX(), p.Y-sim.ServeDistance, 3, -4, 1))
		},
	})

	Register(Scenario{
		ID:          "random",
		Title:       "Random",
		Description: "A full pool with seeded random positions, velocities and masses",
		Auto:        true,
		Level:       -1,
		Setup: func(w *sim.World) error {
			for i := 0; i < w.Config().Balls.Max; i++ {
				if err := w.SpawnRandom(); err != nil {
					return err
				}
			}
			return nil
		},
	})
}
