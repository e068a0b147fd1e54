package metrics

import (
	"github.com/san-kum/trajsim/internal/dynamo"
)

// ThrustImpulse accumulates thrust * dt over the steps where thrust has a
// direction to act along. Parameters are read live, so slider changes
// mid-run are reflected.
type ThrustImpulse struct {
	name    string
	params  *dynamo.ControlParameters
	dt      float64
	impulse float64
}

func NewThrustImpulse(params *dynamo.ControlParameters, dt float64) *ThrustImpulse {
	return &ThrustImpulse{
		name:   "thrust_impulse",
		params: params,
		dt:     dt,
	}
}

func (c *ThrustImpulse) Name() string {
	return c.name
}

func (c *ThrustImpulse) Observe(s dynamo.KinematicState) {
	if s.Velocity.IsZero() {
		return
	}
	c.impulse += c.params.Thrust * c.dt
}

func (c *ThrustImpulse) Value() float64 {
	return c.impulse
}

func (c *ThrustImpulse) Reset() {
	c.impulse = 0
}
