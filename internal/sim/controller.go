package sim

import (
	"context"
	"io"
	"log/slog"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/integrators"
	"github.com/san-kum/trajsim/internal/physics"
)

type Controller struct {
	params     *dynamo.ControlParameters
	missile    *physics.Missile
	integrator *integrators.Euler
	initial    dynamo.KinematicState
	state      dynamo.KinematicState
	history    []dynamo.Vec2
	steps      int
	phase      dynamo.Phase
	reason     dynamo.StopReason
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *slog.Logger
}

type Option func(*Controller)

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetric(m dynamo.Metric) Option {
	return func(c *Controller) { c.metrics = append(c.metrics, m) }
}

func WithObserver(o dynamo.Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}

// WithInitialState replaces the launch snapshot restored by Reset.
func WithInitialState(s dynamo.KinematicState) Option {
	return func(c *Controller) { c.initial = s }
}

// New returns a running controller reading its parameters from params.
// The caller keeps params and may change it between steps.
func New(params *dynamo.ControlParameters, opts ...Option) *Controller {
	c := &Controller{
		params:     params,
		missile:    physics.NewMissile(params),
		integrator: integrators.NewEuler(),
		initial:    dynamo.InitialState(),
		history:    make([]dynamo.Vec2, 0, dynamo.MaxSteps),
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state = c.initial
	return c
}

// AddMetric attaches m after construction; it sees only the steps that follow.
func (c *Controller) AddMetric(m dynamo.Metric) { c.metrics = append(c.metrics, m) }

// Step advances the run by one dt and returns the new state. Once the
// controller is stopped it returns the current state unchanged.
func (c *Controller) Step() dynamo.KinematicState {
	if c.phase != dynamo.Running {
		return c.state
	}

	a := c.missile.Acceleration(c.state.Velocity)
	next := c.integrator.Step(c.state, a, dynamo.Dt)

	c.steps++
	// Derived from the step count so that step MaxSteps lands exactly on MaxTime.
	next.Elapsed = c.initial.Elapsed + float64(c.steps)*dynamo.Dt
	c.state = next
	c.history = append(c.history, next.Position)

	for _, m := range c.metrics {
		m.Observe(next)
	}
	for _, o := range c.observers {
		o.OnStep(next)
	}

	switch {
	case next.Position.Y < 0:
		c.stop(dynamo.GroundImpact)
	case next.Elapsed >= dynamo.MaxTime:
		c.stop(dynamo.TimeLimit)
	}

	return c.state
}

func (c *Controller) stop(reason dynamo.StopReason) {
	c.phase = dynamo.Stopped
	c.reason = reason
	c.logger.Info("run stopped",
		"reason", reason.String(),
		"steps", c.steps,
		"elapsed", c.state.Elapsed,
		"x", c.state.Position.X,
		"y", c.state.Position.Y,
	)
}

// Reset clears the history, restores the launch snapshot and resumes running.
func (c *Controller) Reset() {
	c.state = c.initial
	c.history = c.history[:0]
	c.steps = 0
	c.phase = dynamo.Running
	c.reason = dynamo.NotStopped
	for _, m := range c.metrics {
		m.Reset()
	}
	c.logger.Debug("run reset", "drag", c.params.Drag, "thrust", c.params.Thrust, "gravity", c.params.Gravity)
}

func (c *Controller) State() dynamo.KinematicState      { return c.state }
func (c *Controller) Phase() dynamo.Phase               { return c.phase }
func (c *Controller) StopReason() dynamo.StopReason     { return c.reason }
func (c *Controller) Steps() int                        { return c.steps }
func (c *Controller) Params() *dynamo.ControlParameters { return c.params }

// History returns a copy of the positions recorded since the last reset.
func (c *Controller) History() []dynamo.Vec2 {
	h := make([]dynamo.Vec2, len(c.history))
	copy(h, c.history)
	return h
}

// Run steps until the controller stops or ctx is done, collecting every state.
// The returned result includes the state the run started from.
func (c *Controller) Run(ctx context.Context) (*dynamo.Result, error) {
	result := &dynamo.Result{
		States:  make([]dynamo.KinematicState, 0, dynamo.MaxSteps+1),
		Metrics: make(map[string]float64),
	}
	result.States = append(result.States, c.state)

	for c.phase == dynamo.Running {
		select {
		case <-ctx.Done():
			c.collect(result)
			return result, ctx.Err()
		default:
		}
		result.States = append(result.States, c.Step())
	}

	c.collect(result)
	return result, nil
}

func (c *Controller) collect(result *dynamo.Result) {
	result.Steps = c.steps
	result.StopReason = c.reason
	for _, m := range c.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
