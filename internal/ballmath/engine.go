package ballmath

import "math"

// Limits are the configured velocity bounds used by the reflector and the
// normalizer.
type Limits struct {
	MaxXVel int
	MaxYVel int
	MinDX   int
	MinDY   int
}

// DefaultLimits returns the stock velocity bounds.
func DefaultLimits() Limits {
	return Limits{
		MaxXVel: MaxXVel,
		MaxYVel: MaxYVel,
		MinDX:   MinDX,
		MinDY:   MinDY,
	}
}

// Mode selects between the characterized behaviour and the corrected one.
type Mode struct {
	// TransposedSeparation builds the resolver's separation Y component as
	// ball1.X - ball2.Y instead of ball1.Y - ball2.Y.
	TransposedSeparation bool

	// PositiveFloor makes the normalizer floor a collapsed component to
	// +MinDX/+MinDY regardless of its original direction.
	PositiveFloor bool
}

// CompatMode reproduces replay and fixture data bit for bit. It is the default.
func CompatMode() Mode {
	return Mode{TransposedSeparation: true, PositiveFloor: true}
}

// CorrectedMode uses true 2-D separation and direction-preserving floors.
func CorrectedMode() Mode {
	return Mode{}
}

func (m Mode) String() string {
	switch m {
	case CompatMode():
		return "compat"
	case CorrectedMode():
		return "corrected"
	default:
		return "custom"
	}
}

// ParseMode maps "compat" or "corrected" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "", "compat":
		return CompatMode(), true
	case "corrected":
		return CorrectedMode(), true
	}
	return Mode{}, false
}

var machineEps = float32(math.Sqrt(float64(math.SmallestNonzeroFloat32)))

// MachineEps is sqrt of the smallest positive float32: the relative speed
// squared below which a collision time is not computed.
func MachineEps() float32 {
	return machineEps
}

// Engine bundles the read-only configuration threaded into every call.
// The zero Eps is valid and disables the near-zero speed guard except for
// exactly zero relative velocity.
type Engine struct {
	Eps    float32
	Limits Limits
	Mode   Mode
}

// NewEngine returns an engine with MachineEps, DefaultLimits and CompatMode.
func NewEngine() Engine {
	return Engine{
		Eps:    MachineEps(),
		Limits: DefaultLimits(),
		Mode:   CompatMode(),
	}
}

// MaxSpeed is the diagonal speed reached at MaxSpeedLevel.
func (e Engine) MaxSpeed() float32 {
	mx := float32(e.Limits.MaxXVel)
	my := float32(e.Limits.MaxYVel)
	return sqrt32(float32(mx*mx) + float32(my*my))
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

func sqrt64(x float32) float64 {
	return math.Sqrt(float64(x))
}

// truncate converts toward zero, the resolver's rounding policy.
func truncate(f float32) int {
	return int(f)
}

// roundHalfAway biases by 0.5 away from zero and truncates, the policy of
// the reflector and the normalizer.
func roundHalfAway(f float32) int {
	if f > 0 {
		return int(f + 0.5)
	}
	return int(f - 0.5)
}
