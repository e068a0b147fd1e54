// Package dynamo provides core simulation primitives for 2D trajectory runs.
//
// The package defines the value types shared by every layer of trajsim:
//
//   - [Vec2]: two-component vector for position, velocity and acceleration
//   - [KinematicState]: position/velocity/elapsed-time triple
//   - [ControlParameters]: live-tunable drag, thrust and gravity
//   - [Bounds]: slider ranges the presentation layer clamps to
//   - [Observer] and [Metric]: hooks invoked after every step
//
// The fixed constants of a run ([Mass], [Dt], [MaxTime]) and the initial
// snapshot ([InitialState]) live here as well.
//
// # Example
//
//	params := dynamo.DefaultParams()
//	ctrl := sim.New(&params)
//	for ctrl.Phase() == dynamo.Running {
//	    ctrl.Step()
//	}
//
// # Thread Safety
//
// None of the types here synchronize access. A run is owned by a single
// goroutine; see the sim package.
package dynamo
