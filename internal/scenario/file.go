package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ballcore/internal/ballmath"
	"github.com/vovakirdan/ballcore/internal/sim"
)

// File is the YAML form of a scenario.
type File struct {
	ID          string     `yaml:"id"`
	Title       string     `yaml:"title"`
	Description string     `yaml:"description"`
	Auto        bool       `yaml:"auto"`
	Level       *int       `yaml:"level"`
	Random      int        `yaml:"random"` // Extra seeded random balls
	Balls       []BallSpec `yaml:"balls"`
}

// BallSpec is one ball in a scenario file.
type BallSpec struct {
	X    int     `yaml:"x"`
	Y    int     `yaml:"y"`
	DX   int     `yaml:"dx"`
	DY   int     `yaml:"dy"`
	Mass float32 `yaml:"mass"` // 0 means the minimum mass
}

// IsFile reports whether arg names a scenario file rather than a
// registered ID.
func IsFile(arg string) bool {
	ext := strings.ToLower(filepath.Ext(arg))
	return ext == ".yaml" || ext == ".yml"
}

// LoadFile reads a scenario from a YAML file. The ID defaults to the file
// name without extension.
func LoadFile(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("scenario: failed to read %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Scenario{}, fmt.Errorf("scenario: failed to parse %s: %w", path, err)
	}
	if f.ID == "" {
		f.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return f.Scenario(), nil
}

// Scenario converts the file form into a buildable scenario.
func (f File) Scenario() Scenario {
	s := Scenario{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Auto:        f.Auto,
		Level:       -1,
	}
	if s.Title == "" {
		s.Title = f.ID
	}
	if f.Level != nil {
		s.Level = *f.Level
	}

	balls := f.Balls
	random := f.Random
	s.Setup = func(w *sim.World) error {
		for i, spec := range balls {
			mass := spec.Mass
			if mass == 0 {
				mass = ballmath.MinMass
			}
			if err := w.Spawn(w.NewBall(spec.X, spec.Y, spec.DX, spec.DY, mass)); err != nil {
				return fmt.Errorf("ball %d: %w", i, err)
			}
		}
		for i := 0; i < random; i++ {
			if err := w.SpawnRandom(); err != nil {
				return err
			}
		}
		return nil
	}
	return s
}

// Resolve returns the scenario named by arg: a registered ID or a YAML
// file path.
func Resolve(arg string) (Scenario, error) {
	if !Exists(arg) && IsFile(arg) {
		return LoadFile(arg)
	}
	return Get(arg)
}

func spawnAll(w *sim.World, balls ...ballmath.Ball) error {
	for _, b := range balls {
		if err := w.Spawn(b); err != nil {
			return err
		}
	}
	return nil
}
