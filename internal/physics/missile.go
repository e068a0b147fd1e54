package physics

import (
	"fmt"

	"github.com/san-kum/trajsim/internal/dynamo"
)

// Gravity returns the gravitational acceleration, always pointing down.
func Gravity(p dynamo.ControlParameters) dynamo.Vec2 {
	return dynamo.Vec2{X: 0, Y: -p.Gravity}
}

// Drag returns -k*|v|*v/m, or zero when v is zero.
func Drag(v dynamo.Vec2, p dynamo.ControlParameters, mass float64) dynamo.Vec2 {
	speed := v.Norm()
	if speed == 0 {
		return dynamo.Vec2{}
	}
	return v.Scale(-p.Drag * speed / mass)
}

// Thrust returns (T/m) along the unit velocity, or zero when v is zero.
func Thrust(v dynamo.Vec2, p dynamo.ControlParameters, mass float64) dynamo.Vec2 {
	if v.IsZero() {
		return dynamo.Vec2{}
	}
	return v.Unit().Scale(p.Thrust / mass)
}

// ComputeAcceleration sums gravity, drag and thrust for the given velocity.
func ComputeAcceleration(v dynamo.Vec2, p dynamo.ControlParameters, mass float64) dynamo.Vec2 {
	return Gravity(p).Add(Drag(v, p, mass)).Add(Thrust(v, p, mass))
}

const (
	ParamDrag    = "drag"
	ParamThrust  = "thrust"
	ParamGravity = "gravity"
)

// Missile binds a shared parameter set to a constant mass.
type Missile struct {
	Mass   float64
	Params *dynamo.ControlParameters
}

func NewMissile(params *dynamo.ControlParameters) *Missile {
	return &Missile{
		Mass:   dynamo.Mass,
		Params: params,
	}
}

func (m *Missile) Acceleration(v dynamo.Vec2) dynamo.Vec2 {
	return ComputeAcceleration(v, *m.Params, m.Mass)
}

// Energy returns the specific mechanical energy (per unit mass) of s.
func (m *Missile) Energy(s dynamo.KinematicState) float64 {
	v := s.Velocity.Norm()
	return 0.5*v*v + m.Params.Gravity*s.Position.Y
}

func (m *Missile) GetParams() map[string]float64 {
	return map[string]float64{
		ParamDrag:    m.Params.Drag,
		ParamThrust:  m.Params.Thrust,
		ParamGravity: m.Params.Gravity,
	}
}

// SetParam clamps value into the slider range for name before storing it.
func (m *Missile) SetParam(name string, value float64) error {
	b, err := ParamBounds(name)
	if err != nil {
		return err
	}
	value = b.Clamp(value)
	switch name {
	case ParamDrag:
		m.Params.Drag = value
	case ParamThrust:
		m.Params.Thrust = value
	case ParamGravity:
		m.Params.Gravity = value
	}
	return nil
}

// ParamBounds returns the slider range for a named parameter.
func ParamBounds(name string) (dynamo.Bounds, error) {
	switch name {
	case ParamDrag:
		return dynamo.DragBounds, nil
	case ParamThrust:
		return dynamo.ThrustBounds, nil
	case ParamGravity:
		return dynamo.GravityBounds, nil
	default:
		return dynamo.Bounds{}, fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
}

// ParamNames lists the tunable parameters in alphabetical order.
func ParamNames() []string {
	return []string{ParamDrag, ParamGravity, ParamThrust}
}
