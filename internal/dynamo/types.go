package dynamo

import "fmt"

const (
	// Mass of the projectile in kg.
	Mass = 1.0
	// Dt is the fixed integration step in seconds.
	Dt = 0.02
	// MaxTime is the horizon of a run in seconds.
	MaxTime = 20.0
	// MaxSteps is the number of steps needed to reach MaxTime.
	MaxSteps = 1000
)

const (
	DefaultDrag    = 0.02
	DefaultThrust  = 0.0
	DefaultGravity = 9.81
)

var (
	InitialPosition = Vec2{0, 0}
	InitialVelocity = Vec2{50, 50}
)

// KinematicState is the mutable position/velocity/time triple of a run.
type KinematicState struct {
	Position Vec2
	Velocity Vec2
	Elapsed  float64
}

// InitialState returns a fresh copy of the launch snapshot.
func InitialState() KinematicState {
	return KinematicState{
		Position: InitialPosition,
		Velocity: InitialVelocity,
		Elapsed:  0,
	}
}

// IsValid reports whether position and velocity are finite.
func (s KinematicState) IsValid() bool {
	return s.Position.IsValid() && s.Velocity.IsValid()
}

func (s KinematicState) Speed() float64 { return s.Velocity.Norm() }

// ControlParameters are read by the integrator at every step and may be
// changed between steps by whoever holds a pointer to them.
type ControlParameters struct {
	Drag    float64 `yaml:"drag" json:"drag"`
	Thrust  float64 `yaml:"thrust" json:"thrust"`
	Gravity float64 `yaml:"gravity" json:"gravity"`
}

// DefaultParams returns the launch defaults: light drag, no thrust, Earth gravity.
func DefaultParams() ControlParameters {
	return ControlParameters{
		Drag:    DefaultDrag,
		Thrust:  DefaultThrust,
		Gravity: DefaultGravity,
	}
}

// Bounds is a closed interval used for slider ranges.
type Bounds struct {
	Min, Max float64
}

func (b Bounds) Contains(v float64) bool { return v >= b.Min && v <= b.Max }

func (b Bounds) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

func (b Bounds) Span() float64 { return b.Max - b.Min }

var (
	DragBounds    = Bounds{0, 0.1}
	ThrustBounds  = Bounds{0, 200}
	GravityBounds = Bounds{0.1, 20}
)

// Phase is the run state of a controller.
type Phase int

const (
	Running Phase = iota
	Stopped
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// StopReason records which terminal condition ended a run.
type StopReason int

const (
	NotStopped StopReason = iota
	GroundImpact
	TimeLimit
)

func (r StopReason) String() string {
	switch r {
	case NotStopped:
		return "none"
	case GroundImpact:
		return "ground impact"
	case TimeLimit:
		return "time limit"
	default:
		return fmt.Sprintf("reason(%d)", int(r))
	}
}

// Metric accumulates a scalar over the states of a run.
type Metric interface {
	Name() string
	Observe(s KinematicState)
	Value() float64
	Reset()
}

// Observer is notified with the new state after every step.
type Observer interface {
	OnStep(s KinematicState)
}

// Configurable is implemented by anything exposing named tunable parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Result is the outcome of a headless run. States starts with the launch state.
type Result struct {
	States     []KinematicState
	Metrics    map[string]float64
	StopReason StopReason
	Steps      int
}
