package ballmath

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ballAt(x, y, dx, dy int, mass float32) Ball {
	return Ball{
		Pos:    Vec{X: x, Y: y},
		Vel:    Vec{X: dx, Y: dy},
		Radius: DefaultRadius,
		Mass:   mass,
	}
}

func TestMachineEps(t *testing.T) {
	eps := MachineEps()
	assert.Greater(t, eps, float32(0))
	assert.Less(t, eps, float32(1e-10))
	assert.Equal(t, eps, NewEngine().Eps)
}

func TestPredict(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name  string
		a, b  Ball
		hit   bool
		wantT float32
	}{
		{
			name:  "head on",
			a:     ballAt(0, 100, 5, 0, 1),
			b:     ballAt(30, 100, -5, 0, 1),
			hit:   true,
			wantT: 1,
		},
		{
			name: "same direction same speed",
			a:    ballAt(0, 100, 5, 0, 1),
			b:    ballAt(30, 100, 5, 0, 1),
		},
		{
			name: "same direction far apart",
			a:    ballAt(0, 100, 5, 0, 1),
			b:    ballAt(100, 100, 5, 0, 1),
		},
		{
			name: "diverging",
			a:    ballAt(0, 100, -5, 0, 1),
			b:    ballAt(100, 100, 5, 0, 1),
		},
		{
			name: "stationary overlap",
			a:    ballAt(50, 100, 0, 0, 1),
			b:    ballAt(55, 100, 0, 0, 1),
		},
		{
			name: "already deep overlap",
			a:    ballAt(0, 0, 1, 0, 1),
			b:    ballAt(5, 0, 0, 0, 1),
		},
		{
			name:  "tangential graze",
			a:     ballAt(0, 0, 10, 0, 1),
			b:     ballAt(5, 20, 0, 0, 1),
			hit:   true,
			wantT: 0.5,
		},
		{
			name: "contact beyond this step",
			a:    ballAt(0, 0, 5, 0, 1),
			b:    ballAt(60, 0, -5, 0, 1),
		},
		{
			name: "perpendicular miss",
			a:    ballAt(0, 0, 0, 5, 1),
			b:    ballAt(100, 0, 0, -5, 1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := e.Predict(tc.a, tc.b)
			assert.Equal(t, tc.hit, got.Hit)
			if tc.hit {
				assert.InDelta(t, tc.wantT, got.T, 1e-6)
			}
		})
	}
}

func TestPredictEpsilonIsInjected(t *testing.T) {
	a := ballAt(0, 0, 1, 0, 1)
	b := ballAt(21, 0, 0, 0, 1)

	e := NewEngine()
	require.True(t, e.Predict(a, b).Hit)

	e.Eps = 2
	assert.False(t, e.Predict(a, b).Hit, "relative speed squared 1 is under eps 2")
}

func TestPredictProperties(t *testing.T) {
	e := NewEngine()
	rng := rand.New(rand.NewSource(7))
	vel := func() int { return rng.Intn(2*MaxXVel+1) - MaxXVel }

	for i := 0; i < 5000; i++ {
		a := ballAt(rng.Intn(200), rng.Intn(200), vel(), vel(), 1)
		b := ballAt(rng.Intn(200), rng.Intn(200), vel(), vel(), 1)

		ab := e.Predict(a, b)
		ba := e.Predict(b, a)
		require.Equal(t, ab, ba, "order dependence for %+v %+v", a, b)

		if ab.Hit {
			require.GreaterOrEqual(t, ab.T, float32(0))
			require.LessOrEqual(t, ab.T, float32(1))
		}

		b.Vel = a.Vel
		require.False(t, e.Predict(a, b).Hit, "equal velocities collided: %+v %+v", a, b)
	}
}

func TestResolveTransposedSeparation(t *testing.T) {
	e := NewEngine()

	a := ballAt(200, 50, 14, 0, 2)
	b := ballAt(210, 50, -14, 0, 2)

	va, vb := e.Resolve(&a, &b)

	assert.Equal(t, Vec{X: 14, Y: 1}, va)
	assert.Equal(t, Vec{X: -14, Y: -1}, vb)
	assert.Equal(t, va, a.Vel)
	assert.Equal(t, vb, b.Vel)
	assert.Equal(t, Vec{X: 200, Y: 50}, a.Pos, "positions are never written")
}

func TestResolveCorrectedSeparation(t *testing.T) {
	e := NewEngine()
	e.Mode = CorrectedMode()

	a := ballAt(200, 50, 14, 0, 2)
	b := ballAt(210, 50, -14, 0, 2)

	e.Resolve(&a, &b)

	assert.Equal(t, Vec{X: -14, Y: 0}, a.Vel)
	assert.Equal(t, Vec{X: 14, Y: 0}, b.Vel)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		a, b  Ball
		wantA Vec
		wantB Vec
	}{
		{
			name:  "equal mass head on compat",
			mode:  CompatMode(),
			a:     ballAt(0, 100, 5, 0, 2),
			b:     ballAt(20, 100, -5, 0, 2),
			wantA: Vec{X: 5, Y: -1},
			wantB: Vec{X: -5, Y: 1},
		},
		{
			name:  "equal mass head on corrected",
			mode:  CorrectedMode(),
			a:     ballAt(0, 100, 5, 0, 2),
			b:     ballAt(20, 100, -5, 0, 2),
			wantA: Vec{X: -5, Y: 0},
			wantB: Vec{X: 5, Y: 0},
		},
		{
			// x == y for the first ball, so both modes agree.
			name:  "heavy hits light",
			mode:  CompatMode(),
			a:     ballAt(100, 100, 10, 0, 3),
			b:     ballAt(120, 100, 0, 0, 1),
			wantA: Vec{X: 5, Y: 0},
			wantB: Vec{X: 15, Y: 0},
		},
		{
			name:  "diagonal corrected",
			mode:  CorrectedMode(),
			a:     ballAt(100, 100, 6, 3, 1),
			b:     ballAt(110, 110, -2, -4, 2),
			wantA: Vec{X: -4, Y: -7},
			wantB: Vec{X: 3, Y: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEngine()
			e.Mode = tc.mode
			a, b := tc.a, tc.b
			e.Resolve(&a, &b)
			assert.Equal(t, tc.wantA, a.Vel)
			assert.Equal(t, tc.wantB, b.Vel)
		})
	}
}

func TestResolveZeroSeparation(t *testing.T) {
	e := NewEngine()

	// Transposed separation is (0, 50-50) here.
	a := ballAt(50, 80, 3, 1, 1)
	b := ballAt(50, 50, -3, 1, 1)

	va, vb := e.Resolve(&a, &b)
	assert.Equal(t, Vec{X: 3, Y: 1}, va)
	assert.Equal(t, Vec{X: -3, Y: 1}, vb)
}

func TestBallValidate(t *testing.T) {
	assert.NoError(t, NewBall(0, 0, 1, 1).Validate())

	b := NewBall(0, 0, 1, 1)
	b.Radius = 0
	assert.ErrorIs(t, b.Validate(), ErrNonPositiveRadius)

	b = NewBall(0, 0, 1, 1)
	b.Mass = 0
	assert.ErrorIs(t, b.Validate(), ErrMassOutOfRange)

	b.Mass = 3.5
	assert.ErrorIs(t, b.Validate(), ErrMassOutOfRange)
}
