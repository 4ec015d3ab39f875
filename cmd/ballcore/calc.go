package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ballcore/internal/ballmath"
)

var (
	flagRadius    float32
	flagEps       float32
	flagColWidth  int
	flagRowHeight int
)

var predictCmd = &cobra.Command{
	Use:   "predict <x1> <y1> <dx1> <dy1> <x2> <y2> <dx2> <dy2>",
	Short: "Predict whether two balls collide this tick",
	Long: `Solve the swept-circle test for two moving balls and print the
fraction of the tick at which they first touch, or "miss".

Examples:
  ballcore predict 0 100 5 0 30 100 -5 0
  ballcore predict 0 0 10 0 5 20 0 0 --radius 10`,
	Args: cobra.ExactArgs(8),
	RunE: runPredict,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <x1> <y1> <dx1> <dy1> <m1> <x2> <y2> <dx2> <dy2> <m2>",
	Short: "Resolve a collision between two balls",
	Long: `Apply the mass-weighted elastic exchange and print both new velocities.
Compat mode reproduces the transposed separation; pass --corrected for
true 2-D separation.

Examples:
  ballcore resolve 100 100 10 0 3 120 100 0 0 1
  ballcore resolve 0 100 5 0 2 20 100 -5 0 2 --corrected`,
	Args: cobra.ExactArgs(10),
	RunE: runResolve,
}

var bounceCmd = &cobra.Command{
	Use:   "bounce <vx> <vy> <hit-offset> <paddle-width> <paddle-dx>",
	Short: "Compute a paddle rebound",
	Long: `Reflect a descending ball off the paddle. hit-offset is the signed
distance from the paddle centre and paddle-width includes the ball width.

Examples:
  ballcore bounce 0 5 0 70 0
  ballcore bounce 3 6 -20 70 10`,
	Args: cobra.ExactArgs(5),
	RunE: runBounce,
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize <dx> <dy> <level>",
	Short: "Rescale a velocity to a speed level",
	Long: `Rescale a velocity to the magnitude of speed level 1-9, flooring
collapsed components to the minimum visible speed.

Examples:
  ballcore normalize 0 -5 5
  ballcore normalize 3 -4 9`,
	Args: cobra.ExactArgs(3),
	RunE: runNormalize,
}

var cellCmd = &cobra.Command{
	Use:   "cell <x> <y>",
	Short: "Map a pixel position to a grid cell",
	Long: `Print the block grid row and column containing a pixel. Cell sizes
default to the configured field divided by its grid.

Examples:
  ballcore cell 110 64
  ballcore cell 110 64 --col-width 55 --row-height 32`,
	Args: cobra.ExactArgs(2),
	RunE: runCell,
}

func init() {
	predictCmd.Flags().Float32Var(&flagRadius, "radius", 0, "Ball radius (0 = balls.radius from config)")
	predictCmd.Flags().Float32Var(&flagEps, "eps", 0, "Relative speed squared threshold (0 = machine epsilon)")
	cellCmd.Flags().IntVar(&flagColWidth, "col-width", 0, "Column width in pixels (0 = from config)")
	cellCmd.Flags().IntVar(&flagRowHeight, "row-height", 0, "Row height in pixels (0 = from config)")
}

// loadEngine builds the physics engine from the configuration.
func loadEngine() (ballmath.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return ballmath.Engine{}, err
	}
	return cfg.Engine(), nil
}

func parseInts(args []string) ([]int, error) {
	out := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

func parseMass(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("mass %q: %w", s, err)
	}
	return float32(v), nil
}

func runPredict(_ *cobra.Command, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	e := cfg.Engine()
	if flagEps > 0 {
		e.Eps = flagEps
	}
	radius := cfg.Balls.Radius
	if flagRadius > 0 {
		radius = flagRadius
	}

	b1 := ballmath.Ball{Pos: ballmath.Vec{X: v[0], Y: v[1]}, Vel: ballmath.Vec{X: v[2], Y: v[3]}, Radius: radius, Mass: ballmath.MinMass}
	b2 := ballmath.Ball{Pos: ballmath.Vec{X: v[4], Y: v[5]}, Vel: ballmath.Vec{X: v[6], Y: v[7]}, Radius: radius, Mass: ballmath.MinMass}

	c := e.Predict(b1, b2)
	if !c.Hit {
		fmt.Println("miss")
		return nil
	}
	fmt.Printf("hit t=%.6f\n", c.T)
	return nil
}

func runResolve(_ *cobra.Command, args []string) error {
	v, err := parseInts([]string{args[0], args[1], args[2], args[3], args[5], args[6], args[7], args[8]})
	if err != nil {
		return err
	}
	m1, err := parseMass(args[4])
	if err != nil {
		return err
	}
	m2, err := parseMass(args[9])
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	b1 := ballmath.Ball{Pos: ballmath.Vec{X: v[0], Y: v[1]}, Vel: ballmath.Vec{X: v[2], Y: v[3]}, Radius: cfg.Balls.Radius, Mass: m1}
	b2 := ballmath.Ball{Pos: ballmath.Vec{X: v[4], Y: v[5]}, Vel: ballmath.Vec{X: v[6], Y: v[7]}, Radius: cfg.Balls.Radius, Mass: m2}
	for i, b := range []ballmath.Ball{b1, b2} {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("ball %d: %w", i+1, err)
		}
	}

	e := cfg.Engine()
	va, vb := e.Resolve(&b1, &b2)
	fmt.Printf("ball1 %s\nball2 %s\n", va, vb)
	return nil
}

func runBounce(_ *cobra.Command, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	if v[1] <= 0 {
		return fmt.Errorf("vy must be positive (descending), got %d", v[1])
	}
	if v[3] <= 0 {
		return fmt.Errorf("paddle width must be positive, got %d", v[3])
	}

	e, err := loadEngine()
	if err != nil {
		return err
	}
	fmt.Println(e.PaddleBounce(v[0], v[1], v[2], v[3], v[4]))
	return nil
}

func runNormalize(_ *cobra.Command, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}
	if v[2] < 1 || v[2] > ballmath.MaxSpeedLevel {
		return fmt.Errorf("level must be in [1, %d], got %d", ballmath.MaxSpeedLevel, v[2])
	}

	e, err := loadEngine()
	if err != nil {
		return err
	}
	fmt.Println(e.Normalize(v[0], v[1], v[2]))
	return nil
}

func runCell(_ *cobra.Command, args []string) error {
	v, err := parseInts(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	colW := cfg.Field.ColWidth()
	if flagColWidth > 0 {
		colW = flagColWidth
	}
	rowH := cfg.Field.RowHeight()
	if flagRowHeight > 0 {
		rowH = flagRowHeight
	}

	row, col := ballmath.ToCell(ballmath.Vec{X: v[0], Y: v[1]}, colW, rowH)
	fmt.Printf("row %d col %d\n", row, col)
	return nil
}
