package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/trajsim/internal/dynamo"
	"github.com/san-kum/trajsim/internal/logging"
	"github.com/san-kum/trajsim/internal/physics"
	"github.com/san-kum/trajsim/internal/sim"
)

const (
	width           = 72
	height          = 22
	historyCapacity = dynamo.MaxSteps
	// paramStepFraction is the share of a slider's range moved per key press.
	paramStepFraction = 0.05
)

// initial plot area in metres, grown by Fit as the projectile leaves it
var defaultViewport = Viewport{XMax: 300, YMax: 150}

type TickMsg time.Time

// Model contains the controller, the tunable parameters and render buffers.
type Model struct {
	ctrl         *sim.Controller
	missile      *physics.Missile
	paramKeys    []string
	selected     int
	paused       bool
	canvas       *Canvas
	viewport     Viewport
	interval     time.Duration
	speedHistory []float64
	theme        Theme
	styles       styles
	showHelp     bool
	title        string
	logger       *slog.Logger
}

// NewModel wires a live view to params. The view steps its own controller
// once per tick at fps ticks per second.
func NewModel(params *dynamo.ControlParameters, fps int, title string, logger *slog.Logger) Model {
	if fps <= 0 {
		fps = int(1 / dynamo.Dt)
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return Model{
		ctrl:         sim.New(params, sim.WithLogger(logger)),
		missile:      physics.NewMissile(params),
		paramKeys:    physics.ParamNames(),
		canvas:       NewCanvas(width, height),
		viewport:     defaultViewport,
		interval:     time.Second / time.Duration(fps),
		speedHistory: make([]float64, 0, historyCapacity),
		theme:        ThemeDefault,
		styles:       newStyles(ThemeDefault),
		title:        title,
		logger:       logger,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.reset()
		case "tab":
			m.cycleParam()
		case "up", "k":
			m.adjustParam(1)
		case "down", "j":
			m.adjustParam(-1)
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = newStyles(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if !m.paused {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) cycleParam() {
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(dir float64) {
	key := m.paramKeys[m.selected]
	b, err := physics.ParamBounds(key)
	if err != nil {
		return
	}
	val := m.missile.GetParams()[key] + dir*paramStepFraction*b.Span()
	if err := m.missile.SetParam(key, val); err != nil {
		m.logger.Warn("set param", "name", key, "error", err)
	}
}

// step advances the controller while it is running.
func (m *Model) step() {
	if m.ctrl.Phase() != dynamo.Running {
		return
	}
	s := m.ctrl.Step()
	m.speedHistory = append(m.speedHistory, s.Speed())
	if len(m.speedHistory) > historyCapacity {
		m.speedHistory = m.speedHistory[1:]
	}
	m.viewport = m.viewport.Fit(s.Position.X, s.Position.Y)
}

// reset restores the launch state; parameters keep their slider values.
func (m *Model) reset() {
	m.ctrl.Reset()
	m.speedHistory = m.speedHistory[:0]
	m.viewport = defaultViewport
}

func (m *Model) draw() {
	m.canvas.Clear()

	pw := m.canvas.PixelWidth()
	ph := m.canvas.PixelHeight()
	for x := 0; x < pw; x += 2 {
		m.canvas.Set(x, ph-1)
	}

	history := m.ctrl.History()
	px, py := m.viewport.Project(m.canvas, 0, 0)
	for _, p := range history {
		x, y := m.viewport.Project(m.canvas, p.X, p.Y)
		m.canvas.DrawLine(px, py, x, y)
		px, py = x, y
	}
}

func (m Model) status() string {
	switch {
	case m.ctrl.Phase() == dynamo.Stopped:
		return m.styles.stopped.Render("STOPPED: " + strings.ToUpper(m.ctrl.StopReason().String()))
	case m.paused:
		return m.styles.paused.Render("PAUSED")
	default:
		return m.styles.running.Render("RUNNING")
	}
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	st := m.styles
	state := m.ctrl.State()

	canvasView := st.canvas.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(st.header.Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	if len(m.speedHistory) > 1 {
		chart := asciigraph.Plot(m.speedHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Speed (m/s)"))
		s.WriteString(st.graph.Render(chart) + "\n\n")
	}

	s.WriteString(st.label.Render("Time") + st.value.Render(fmt.Sprintf("%.2fs", state.Elapsed)) + "\n")
	s.WriteString(st.label.Render("Position") + st.value.Render(fmt.Sprintf("%.1f, %.1f m", state.Position.X, state.Position.Y)) + "\n")
	s.WriteString(st.label.Render("Speed") + st.value.Render(fmt.Sprintf("%.2f m/s", state.Speed())) + "\n")
	s.WriteString(st.label.Render("Steps") + st.value.Render(fmt.Sprintf("%d", m.ctrl.Steps())) + "\n")

	s.WriteString("\nPARAMETERS\n")
	params := m.missile.GetParams()
	for i, k := range m.paramKeys {
		b, _ := physics.ParamBounds(k)
		line := fmt.Sprintf("%-8s %s %.3f", k, SliderBar(params[k], b, 12), params[k])
		if i == m.selected {
			s.WriteString(st.activeParam.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}
	s.WriteString(st.help.Render("─────────────────────\nSP:Pause R:Reset Q:Quit\nTab:Select ↑↓:Tune ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.stats.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Reset to launch          ║
║  Q        - Quit                     ║
║  Tab      - Select parameter         ║
║  Up/K     - Increase (+5% of range)  ║
║  Down/J   - Decrease (-5% of range)  ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Controller exposes the underlying controller for drivers and tests.
func (m Model) Controller() *sim.Controller { return m.ctrl }

func (m Model) Paused() bool { return m.paused }

func (m Model) SelectedParam() string { return m.paramKeys[m.selected] }

// Run starts the live view on the alternate screen and blocks until quit.
func Run(params *dynamo.ControlParameters, fps int, title string, logger *slog.Logger) error {
	_, err := tea.NewProgram(NewModel(params, fps, title, logger), tea.WithAltScreen()).Run()
	return err
}
