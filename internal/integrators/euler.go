package integrators

import "github.com/san-kum/trajsim/internal/dynamo"

// Euler advances a kinematic state by one fixed step. Velocity is updated
// first and the new velocity moves the position.
type Euler struct{}

// NewEuler returns a stateless Euler integrator.
func NewEuler() *Euler {
	return &Euler{}
}

// Step returns the state dt later under constant acceleration a. s is not modified.
func (e *Euler) Step(s dynamo.KinematicState, a dynamo.Vec2, dt float64) dynamo.KinematicState {
	v := s.Velocity.Add(a.Scale(dt))
	return dynamo.KinematicState{
		Position: s.Position.Add(v.Scale(dt)),
		Velocity: v,
		Elapsed:  s.Elapsed + dt,
	}
}
