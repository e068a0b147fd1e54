// Package physics computes the accelerations acting on a point-mass projectile.
//
// Three terms contribute, each a pure function of velocity and the current
// [dynamo.ControlParameters]:
//
//   - [Gravity]: constant downward pull
//   - [Drag]: quadratic, opposing the velocity
//   - [Thrust]: constant magnitude along the velocity direction
//
// [ComputeAcceleration] sums them. At rest there is no direction to drag or
// thrust along, so both terms vanish and only gravity remains.
//
// [Missile] exposes the parameters through [dynamo.Configurable] so a
// presentation layer can tune them by name while a run is in progress:
//
//	params := dynamo.DefaultParams()
//	m := physics.NewMissile(&params)
//	m.SetParam("thrust", 120)
package physics
