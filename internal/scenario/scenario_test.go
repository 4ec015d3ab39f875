package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/ballcore/internal/ballmath"
	"github.com/vovakirdan/ballcore/internal/config"
	"github.com/vovakirdan/ballcore/internal/core"
	"github.com/vovakirdan/ballcore/internal/sim"
)

func TestBuiltinsRegistered(t *testing.T) {
	ids := make([]string, 0)
	for _, info := range List() {
		ids = append(ids, info.ID)
		assert.NotEmpty(t, info.Title)
	}
	assert.Equal(t, []string{"head-on", "heavy-light", "pileup", "random", "rally"}, ids)
}

func TestCreateBuiltins(t *testing.T) {
	cfg := config.Default()
	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			w, err := Create(info.ID, cfg, 7)
			require.NoError(t, err)
			assert.NotEmpty(t, w.Balls())
			assert.True(t, w.Auto())

			for i := 0; i < 600; i++ {
				w.Step(core.NewInputFrame())
			}
			assert.Equal(t, 600, w.Tick())
		})
	}
}

func TestHeadOnCollides(t *testing.T) {
	w, err := Create("head-on", config.Default(), 1)
	require.NoError(t, err)

	collided := false
	for i := 0; i < 30 && !collided; i++ {
		res := w.Step(core.NewInputFrame())
		for _, e := range res.Events {
			if e.Kind == sim.EventBallBall {
				collided = true
			}
		}
	}
	assert.True(t, collided)
}

func TestRallyStartsSlow(t *testing.T) {
	w, err := Create("rally", config.Default(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, w.Level())
}

func TestCreateUnknown(t *testing.T) {
	_, err := Create("nope", config.Default(), 1)
	assert.ErrorIs(t, err, ErrUnknown)
	assert.False(t, Exists("nope"))
	assert.True(t, Exists("pileup"))
}

func TestRegisterDuplicatePanics(t *testing.T) {
	assert.Panics(t, func() {
		Register(Scenario{ID: "head-on"})
	})
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corner.yaml")
	data := `
title: Corner
level: 3
random: 1
balls:
  - {x: 30, y: 30, dx: -4, dy: -4, mass: 2.5}
  - {x: 200, y: 300, dx: 0, dy: 6}
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "corner", s.ID)
	assert.Equal(t, "Corner", s.Title)
	assert.False(t, s.Auto)

	w, err := s.Build(config.Default(), 3)
	require.NoError(t, err)
	balls := w.Balls()
	require.Len(t, balls, 3)
	assert.Equal(t, float32(2.5), balls[0].Mass)
	assert.Equal(t, float32(ballmath.MinMass), balls[1].Mass)
	assert.Equal(t, 3, w.Level())
}

func TestLoadFileInvalidBall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("balls:\n  - {x: 1, y: 1, mass: 9}\n"), 0o600))

	s, err := Resolve(path)
	require.NoError(t, err)

	_, err = s.Build(config.Default(), 1)
	assert.ErrorIs(t, err, ballmath.ErrMassOutOfRange)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("balls: [\n"), 0o600))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestIsFile(t *testing.T) {
	assert.True(t, IsFile("x.yaml"))
	assert.True(t, IsFile("dir/x.YML"))
	assert.False(t, IsFile("head-on"))
}
