package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballcore/internal/core"
	"github.com/vovakirdan/ballcore/internal/scenario"
	"github.com/vovakirdan/ballcore/internal/sim"
	"github.com/vovakirdan/ballcore/internal/storage"
)

var (
	flagTicks int
	flagSave  bool
)

var simCmd = &cobra.Command{
	Use:   "sim <scenario|file.yaml>",
	Short: "Run a scenario headless",
	Long: `Step a scenario for a fixed number of ticks with the paddle on
autopilot, log a summary and print the final snapshot hash. Two runs
with the same scenario, seed, mode and tick count print the same hash.

Collisions and paddle hits are logged at debug level.

Examples:
  ballcore sim head-on --ticks 60
  ballcore sim pileup --seed 42 --save
  ballcore sim ./my-scenario.yaml --corrected --log-level debug`,
	Args: cobra.ExactArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Ticks to simulate (0 = sim.ticks from config)")
	simCmd.Flags().BoolVar(&flagSave, "save", false, "Store the run and its events in the database")
}

func runSim(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := scenario.Resolve(args[0])
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	w, err := s.Build(cfg, seed)
	if err != nil {
		return err
	}

	ticks := flagTicks
	if ticks <= 0 {
		ticks = cfg.Sim.Ticks
	}

	var events []sim.Event
	in := core.NewInputFrame()
	for range ticks {
		res := w.Step(in)
		for _, e := range res.Events {
			if e.Kind == sim.EventBallBall || e.Kind == sim.EventPaddle {
				logger.Debug(e.Kind.String(), "event", e, "level", res.Level)
			}
		}
		events = append(events, res.Events...)
	}

	stats := w.Stats()
	snap := w.Snapshot()
	hash := snap.Hash()
	logger.Info("run finished",
		"scenario", s.ID,
		"seed", seed,
		"ticks", w.Tick(),
		"mode", w.Engine().Mode,
		"level", w.Level(),
		"collisions", stats.BallCollisions,
		"paddle_hits", stats.PaddleHits,
		"walls", stats.WallBounces,
		"serves", stats.Serves,
	)
	fmt.Printf("%016x\n", hash)

	if !flagSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := storage.NewRunRecord(s.ID, w)
	if _, err := store.SaveRun(&run, storage.EventRecords(events)); err != nil {
		return err
	}
	logger.Info("run saved", "run", run.RunID, "events", len(events))
	return nil
}
