// ballcore runs and inspects the paddle-and-ball physics core.
//
// Usage:
//
//	ballcore predict ...          - Predict a ball-ball collision
//	ballcore resolve ...          - Resolve a ball-ball collision
//	ballcore bounce ...           - Compute a paddle rebound
//	ballcore normalize ...        - Normalize a velocity to a speed level
//	ballcore cell <x> <y>         - Map a pixel to a grid cell
//	ballcore scenarios            - List registered scenarios
//	ballcore sim <scenario>       - Run a scenario headless
//	ballcore watch <scenario>     - Watch a scenario in the terminal
//	ballcore menu                 - Pick scenarios interactively
//	ballcore runs                 - List and inspect stored runs
//	ballcore serve                - Start SSH server for remote viewing
//
// Global flags:
//
//	--config <path>     - Custom configuration YAML
//	--db <path>         - Runs database (default: ~/.ballcore/runs.db)
//	--seed <value>      - RNG seed for reproducible runs
//	--fps <rate>        - Tick rate for the viewer
//	--log-level <lvl>   - debug, info, warn or error
//	--corrected         - Use corrected physics instead of compat
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ballcore/internal/config"
	"github.com/vovakirdan/ballcore/internal/core"
	"github.com/vovakirdan/ballcore/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagSeed      int64
	flagFPS       int
	flagLogLevel  string
	flagCorrected bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "ballcore",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ballcore",
	Short: "Ballcore - paddle-and-ball physics in your terminal",
	Long: `Ballcore is the physics core of a paddle-and-ball arcade game:
swept-circle collision prediction, elastic collision response, paddle
rebounds, speed levels and grid mapping, plus a deterministic simulation
to exercise them.

Available commands:
  predict, resolve, bounce, normalize, cell - Evaluate one physics call
  scenarios - Show all registered scenarios
  sim       - Run a scenario headless and print its final hash
  watch     - Watch a scenario in the terminal
  menu      - Interactive scenario picker
  runs      - Browse stored runs
  serve     - Start SSH server for remote viewing

Examples:
  ballcore predict 0 100 5 0 30 100 -5 0
  ballcore sim pileup --ticks 600 --seed 42
  ballcore watch rally
  ballcore serve --ssh :2222`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return err
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ballcore/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = sim.tick_rate from config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagCorrected, "corrected", false, "Use corrected physics instead of compat")

	// Add subcommands
	rootCmd.AddCommand(predictCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(bounceCmd)
	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(cellCmd)
	rootCmd.AddCommand(scenariosCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the configuration and applies the global overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if flagCorrected {
		cfg.Physics.Mode = "corrected"
	}
	if flagFPS > 0 {
		cfg.Sim.TickRate = flagFPS
	}
	return cfg, nil
}

// openStore opens the runs database. Interactive commands keep working
// without one, so failure is only logged.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the viewer to the terminal.
func runtimeConfig(cfg config.Config) core.RuntimeConfig {
	rt := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = cfg.Sim.TickRate
	rt.Seed = flagSeed
	return rt
}
