// Package sim drives a single trajectory run.
//
// A [Controller] owns the kinematic state and the position history of one
// run. Each call to [Controller.Step] computes the acceleration from the
// shared [dynamo.ControlParameters], applies one Euler step of [dynamo.Dt]
// and checks the two terminal conditions: the projectile dropping below
// ground level, or elapsed time reaching [dynamo.MaxTime]. Either one moves
// the controller to [dynamo.Stopped], after which Step does nothing until
// [Controller.Reset].
//
// Controllers are not safe for concurrent use. The driver that calls Step
// is also the one that calls Reset, so a reset can never interleave with a
// step.
package sim
