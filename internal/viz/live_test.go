package viz

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/trajsim/internal/dynamo"
)

func press(m Model, key string) Model {
	var msg tea.KeyMsg
	switch key {
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		next, cmd := m.Update(TickMsg(time.Now()))
		Expect(cmd).NotTo(BeNil())
		m = next.(Model)
	}
	return m
}

var _ = Describe("Model", func() {
	var (
		params dynamo.ControlParameters
		m      Model
	)

	BeforeEach(func() {
		params = dynamo.DefaultParams()
		m = NewModel(&params, 50, "missile", nil)
	})

	It("schedules the first tick on init", func() {
		Expect(m.Init()).NotTo(BeNil())
	})

	It("steps the controller once per tick", func() {
		m = tick(m, 3)
		Expect(m.Controller().Steps()).To(Equal(3))
		Expect(m.speedHistory).To(HaveLen(3))
	})

	It("does not step while paused", func() {
		m = press(m, " ")
		Expect(m.Paused()).To(BeTrue())

		m = tick(m, 5)
		Expect(m.Controller().Steps()).To(BeZero())

		m = press(m, " ")
		m = tick(m, 1)
		Expect(m.Controller().Steps()).To(Equal(1))
	})

	It("keeps ticking without stepping once stopped", func() {
		m = tick(m, dynamo.MaxSteps+5)
		Expect(m.Controller().Phase()).To(Equal(dynamo.Stopped))
		steps := m.Controller().Steps()

		m = tick(m, 3)
		Expect(m.Controller().Steps()).To(Equal(steps))
		Expect(m.View()).To(ContainSubstring("STOPPED"))
	})

	It("resets to the launch state on r", func() {
		m = tick(m, 20)
		m = press(m, "r")

		Expect(m.Controller().State()).To(Equal(dynamo.InitialState()))
		Expect(m.Controller().History()).To(BeEmpty())
		Expect(m.speedHistory).To(BeEmpty())
		Expect(m.viewport).To(Equal(defaultViewport))
	})

	It("restarts a stopped run on r", func() {
		m = tick(m, dynamo.MaxSteps+5)
		m = press(m, "r")
		Expect(m.Controller().Phase()).To(Equal(dynamo.Running))

		m = tick(m, 1)
		Expect(m.Controller().Steps()).To(Equal(1))
	})

	Describe("parameter tuning", func() {
		It("cycles through the parameters with tab", func() {
			Expect(m.SelectedParam()).To(Equal("drag"))
			m = press(m, "tab")
			Expect(m.SelectedParam()).To(Equal("gravity"))
			m = press(m, "tab")
			Expect(m.SelectedParam()).To(Equal("thrust"))
			m = press(m, "tab")
			Expect(m.SelectedParam()).To(Equal("drag"))
		})

		It("moves the selected parameter by 5% of its range", func() {
			m = press(m, "tab")
			m = press(m, "tab")
			m = press(m, "up")
			Expect(params.Thrust).To(BeNumerically("~", 10, 1e-9))

			m = press(m, "k")
			Expect(params.Thrust).To(BeNumerically("~", 20, 1e-9))

			m = press(m, "j")
			Expect(params.Thrust).To(BeNumerically("~", 10, 1e-9))
		})

		It("clamps at the slider bounds", func() {
			for i := 0; i < 40; i++ {
				m = press(m, "up")
			}
			Expect(params.Drag).To(Equal(dynamo.DragBounds.Max))

			for i := 0; i < 40; i++ {
				m = press(m, "down")
			}
			Expect(params.Drag).To(Equal(dynamo.DragBounds.Min))
		})

		It("feeds changes into the running simulation", func() {
			params.Drag = 0
			m = press(m, "tab")
			for i := 0; i < 20; i++ {
				m = press(m, "down")
			}
			Expect(params.Gravity).To(Equal(dynamo.GravityBounds.Min))

			m = tick(m, 1)
			Expect(m.Controller().State().Velocity.Y).To(BeNumerically("~", 50-0.1*dynamo.Dt, 1e-9))
		})

		It("keeps tuned parameters across reset", func() {
			m = press(m, "up")
			tuned := params.Drag
			m = press(m, "r")
			Expect(params.Drag).To(Equal(tuned))
		})
	})

	It("quits on q", func() {
		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
		Expect(cmd).NotTo(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
	})

	It("cycles themes on t", func() {
		m = press(m, "t")
		Expect(m.theme.Name).To(Equal(ThemeRetroGreen.Name))
	})

	It("renders the status panel", func() {
		m = tick(m, 2)
		view := m.View()
		Expect(view).To(ContainSubstring("MISSILE"))
		Expect(view).To(ContainSubstring("RUNNING"))
		Expect(view).To(ContainSubstring("thrust"))
		Expect(view).To(ContainSubstring("Speed (m/s)"))
	})

	It("shows the help overlay on ?", func() {
		m = press(m, "?")
		Expect(m.View()).To(ContainSubstring("KEYBOARD SHORTCUTS"))
	})
})
