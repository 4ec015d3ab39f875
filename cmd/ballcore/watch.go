package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballcore/internal/platform/tui"
	"github.com/vovakirdan/ballcore/internal/scenario"
)

var watchCmd = &cobra.Command{
	Use:   "watch <scenario|file.yaml>",
	Short: "Watch a scenario in the terminal",
	Long: `Step a scenario at the tick rate and draw it.

Controls:
  Left/Right   - Move the paddle while autopilot is off
  Tab          - Toggle autopilot
  +/-          - Raise or lower the speed level
  P/Space      - Pause
  R            - Restart
  S            - Save the run so far
  Ctrl+S       - Screenshot to ~/.ballcore/screenshots
  Esc/Q        - Quit

Examples:
  ballcore watch rally
  ballcore watch pileup --fps 30 --seed 7
  ballcore watch ./my-scenario.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(_ *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := scenario.Resolve(args[0])
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Run(s, cfg, store, runtimeConfig(cfg))
}
