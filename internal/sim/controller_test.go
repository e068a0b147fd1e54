package sim

import (
	"bytes"
	"context"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajsim/internal/dynamo"
)

type countingMetric struct {
	count int
	maxY  float64
}

func (m *countingMetric) Name() string { return "max_y" }
func (m *countingMetric) Observe(s dynamo.KinematicState) {
	m.count++
	if s.Position.Y > m.maxY {
		m.maxY = s.Position.Y
	}
}
func (m *countingMetric) Value() float64 { return m.maxY }
func (m *countingMetric) Reset() {
	m.count = 0
	m.maxY = 0
}

type recordingObserver struct {
	times []float64
}

func (o *recordingObserver) OnStep(s dynamo.KinematicState) { o.times = append(o.times, s.Elapsed) }

func stepUntilStopped(c *Controller) {
	for i := 0; i < dynamo.MaxSteps+10 && c.Phase() == dynamo.Running; i++ {
		c.Step()
	}
}

var _ = Describe("Controller", func() {
	var (
		params dynamo.ControlParameters
		ctrl   *Controller
	)

	BeforeEach(func() {
		params = dynamo.DefaultParams()
		ctrl = New(&params)
	})

	It("starts running from the launch snapshot", func() {
		Expect(ctrl.Phase()).To(Equal(dynamo.Running))
		Expect(ctrl.StopReason()).To(Equal(dynamo.NotStopped))
		Expect(ctrl.State()).To(Equal(dynamo.InitialState()))
		Expect(ctrl.History()).To(BeEmpty())
		Expect(ctrl.Steps()).To(BeZero())
	})

	Describe("Step", func() {
		It("matches the hand-computed first step in vacuum", func() {
			params = dynamo.ControlParameters{Drag: 0, Thrust: 0, Gravity: 9.81}

			s := ctrl.Step()

			Expect(s.Velocity.X).To(BeNumerically("~", 50, 1e-9))
			Expect(s.Velocity.Y).To(BeNumerically("~", 49.8038, 1e-9))
			Expect(s.Position.X).To(BeNumerically("~", 1.0, 1e-9))
			Expect(s.Position.Y).To(BeNumerically("~", 0.996076, 1e-9))
			Expect(s.Elapsed).To(Equal(dynamo.Dt))
		})

		It("appends each new position to the history", func() {
			var positions []dynamo.Vec2
			for i := 0; i < 5; i++ {
				positions = append(positions, ctrl.Step().Position)
			}
			Expect(ctrl.History()).To(Equal(positions))
			Expect(ctrl.Steps()).To(Equal(5))
		})

		It("advances elapsed time by dt on every step", func() {
			prev := ctrl.State().Elapsed
			for ctrl.Phase() == dynamo.Running {
				s := ctrl.Step()
				Expect(s.Elapsed - prev).To(BeNumerically("~", dynamo.Dt, 1e-12))
				Expect(s.Elapsed).To(BeNumerically(">", prev))
				prev = s.Elapsed
			}
		})

		It("is deterministic for identical parameters", func() {
			otherParams := dynamo.DefaultParams()
			other := New(&otherParams)

			for i := 0; i < 100; i++ {
				Expect(ctrl.Step()).To(Equal(other.Step()))
			}
			Expect(ctrl.History()).To(Equal(other.History()))
		})

		It("picks up parameter changes made between steps", func() {
			ctrl.Step()
			before := ctrl.State()

			params.Gravity = 1.62
			params.Drag = 0
			s := ctrl.Step()

			Expect(s.Velocity.Y).To(BeNumerically("~", before.Velocity.Y-1.62*dynamo.Dt, 1e-9))
			Expect(s.Velocity.X).To(Equal(before.Velocity.X))
		})
	})

	Describe("termination", func() {
		It("stops on ground impact before the time limit with drag and no thrust", func() {
			params = dynamo.ControlParameters{Drag: 0.02, Thrust: 0, Gravity: 9.81}

			stepUntilStopped(ctrl)

			Expect(ctrl.Phase()).To(Equal(dynamo.Stopped))
			Expect(ctrl.StopReason()).To(Equal(dynamo.GroundImpact))
			Expect(ctrl.State().Position.Y).To(BeNumerically("<", 0))
			Expect(ctrl.State().Elapsed).To(BeNumerically("<", dynamo.MaxTime))
		})

		It("stops on the time limit when thrust keeps it airborne", func() {
			params = dynamo.ControlParameters{Drag: 0.01, Thrust: 200, Gravity: 9.81}

			stepUntilStopped(ctrl)

			Expect(ctrl.Phase()).To(Equal(dynamo.Stopped))
			Expect(ctrl.StopReason()).To(Equal(dynamo.TimeLimit))
			Expect(ctrl.State().Position.Y).To(BeNumerically(">=", 0))
			Expect(ctrl.State().Elapsed).To(Equal(dynamo.MaxTime))
			Expect(ctrl.Steps()).To(Equal(dynamo.MaxSteps))
		})

		It("never takes more than MaxSteps steps", func() {
			params = dynamo.ControlParameters{Drag: 0, Thrust: 200, Gravity: 0.1}

			stepUntilStopped(ctrl)

			Expect(ctrl.Steps()).To(Equal(dynamo.MaxSteps))
			Expect(ctrl.History()).To(HaveLen(dynamo.MaxSteps))
		})

		It("ignores steps once stopped", func() {
			stepUntilStopped(ctrl)
			final := ctrl.State()
			history := ctrl.History()

			Expect(ctrl.Step()).To(Equal(final))
			Expect(ctrl.State()).To(Equal(final))
			Expect(ctrl.History()).To(Equal(history))
		})
	})

	Describe("Reset", func() {
		It("restores the launch snapshot mid-run", func() {
			for i := 0; i < 30; i++ {
				ctrl.Step()
			}
			ctrl.Reset()

			Expect(ctrl.State()).To(Equal(dynamo.KinematicState{
				Position: dynamo.Vec2{X: 0, Y: 0},
				Velocity: dynamo.Vec2{X: 50, Y: 50},
				Elapsed:  0,
			}))
			Expect(ctrl.History()).To(BeEmpty())
			Expect(ctrl.Phase()).To(Equal(dynamo.Running))
		})

		It("resumes running after a stop", func() {
			stepUntilStopped(ctrl)
			ctrl.Reset()

			Expect(ctrl.Phase()).To(Equal(dynamo.Running))
			Expect(ctrl.StopReason()).To(Equal(dynamo.NotStopped))
			Expect(ctrl.Steps()).To(BeZero())
			Expect(ctrl.State()).To(Equal(dynamo.InitialState()))

			ctrl.Step()
			Expect(ctrl.History()).To(HaveLen(1))
		})

		It("replays the same run after reset", func() {
			stepUntilStopped(ctrl)
			first := ctrl.History()

			ctrl.Reset()
			stepUntilStopped(ctrl)

			Expect(ctrl.History()).To(Equal(first))
		})

		It("keeps the current parameters", func() {
			params.Thrust = 42
			ctrl.Reset()
			Expect(ctrl.Params().Thrust).To(Equal(42.0))
		})
	})

	Describe("History", func() {
		It("returns a copy", func() {
			ctrl.Step()
			h := ctrl.History()
			h[0] = dynamo.Vec2{X: -1, Y: -1}
			Expect(ctrl.History()[0]).NotTo(Equal(h[0]))
		})
	})

	Describe("metrics and observers", func() {
		It("feeds every step to metrics and observers and resets metrics", func() {
			metric := &countingMetric{}
			obs := &recordingObserver{}
			ctrl = New(&params, WithMetric(metric), WithObserver(obs))

			for i := 0; i < 10; i++ {
				ctrl.Step()
			}
			Expect(metric.count).To(Equal(10))
			Expect(obs.times).To(HaveLen(10))
			Expect(obs.times[9]).To(BeNumerically("~", 10*dynamo.Dt, 1e-12))

			ctrl.Reset()
			Expect(metric.count).To(BeZero())
		})
	})

	Describe("logging", func() {
		It("logs the stop reason", func() {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			ctrl = New(&params, WithLogger(logger))

			stepUntilStopped(ctrl)

			Expect(buf.String()).To(ContainSubstring("run stopped"))
			Expect(buf.String()).To(ContainSubstring("ground impact"))
		})
	})

	Describe("Run", func() {
		It("collects every state including the launch snapshot", func() {
			metric := &countingMetric{}
			ctrl.AddMetric(metric)

			result, err := ctrl.Run(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Expect(result.States).To(HaveLen(result.Steps + 1))
			Expect(result.States[0]).To(Equal(dynamo.InitialState()))
			Expect(result.StopReason).To(Equal(dynamo.GroundImpact))
			Expect(result.Metrics).To(HaveKeyWithValue("max_y", metric.maxY))
		})

		It("returns the context error when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := ctrl.Run(ctx)
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.Steps).To(BeZero())
			Expect(ctrl.Phase()).To(Equal(dynamo.Running))
		})
	})
})
