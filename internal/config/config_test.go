package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ballcore/internal/ballmath"
)

func TestEmbeddedDefaultMatchesDefault(t *testing.T) {
	var fromYAML Config
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &fromYAML))
	assert.Equal(t, Default(), fromYAML)
	assert.NoError(t, Default().Validate())
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  mode: corrected\nspeed:\n  initial_level: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "corrected", cfg.Physics.Mode)
	assert.Equal(t, 2, cfg.Speed.InitialLevel)
	// Untouched keys keep their defaults.
	assert.Equal(t, 495, cfg.Field.Width)
	assert.Equal(t, ballmath.CorrectedMode(), cfg.Engine().Mode)
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, os.Mkdir("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", FileName), []byte("balls:\n  max: 3\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Balls.Max)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero columns", "field:\n  cols: 0\n"},
		{"mass above range", "balls:\n  max_mass: 4\n"},
		{"min above max velocity", "physics:\n  min_dx: 20\n"},
		{"unknown mode", "physics:\n  mode: fancy\n"},
		{"speed level too high", "speed:\n  initial_level: 10\n"},
		{"unknown progression", "speed:\n  progression:\n    type: score\n"},
		{"paddle wider than field", "paddle:\n  width: 600\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml), "test")
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse([]byte("physics: [unclosed"), "test")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestEngineFromConfig(t *testing.T) {
	cfg := Default()
	e := cfg.Engine()
	assert.Equal(t, ballmath.NewEngine(), e)

	cfg.Physics.MachineEps = 0.5
	cfg.Physics.MinDY = 3
	e = cfg.Engine()
	assert.Equal(t, float32(0.5), e.Eps)
	assert.Equal(t, 3, e.Limits.MinDY)
}

func TestFieldGrid(t *testing.T) {
	f := Default().Field
	assert.Equal(t, 55, f.ColWidth())
	assert.Equal(t, 32, f.RowHeight())
}
