package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballcore/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenarios interactively",
	Long: `Start with a scenario picker. Leaving the viewer returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Watch scenario
  Tab          - Stored runs
  Q            - Quit

Examples:
  ballcore menu
  ballcore menu --fps 30 --corrected`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.RunSession(store, cfg, runtimeConfig(cfg), logger)
}
