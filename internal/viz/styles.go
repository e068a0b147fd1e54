package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/trajsim/internal/dynamo"
)

type styles struct {
	canvas      lipgloss.Style
	stats       lipgloss.Style
	header      lipgloss.Style
	label       lipgloss.Style
	value       lipgloss.Style
	activeParam lipgloss.Style
	graph       lipgloss.Style
	help        lipgloss.Style
	running     lipgloss.Style
	paused      lipgloss.Style
	stopped     lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		canvas:      lipgloss.NewStyle().Padding(1, 2).Foreground(t.Primary),
		stats:       lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(46),
		header:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:       lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:       lipgloss.NewStyle().Foreground(t.Text),
		activeParam: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		graph:       lipgloss.NewStyle().Foreground(t.Success).Padding(1, 0),
		help:        lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running:     lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		paused:      lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		stopped:     lipgloss.NewStyle().Foreground(t.Error).Bold(true),
	}
}

// SliderBar renders value's position within b as a fixed-width bar.
func SliderBar(value float64, b dynamo.Bounds, width int) string {
	ratio := 0.0
	if b.Span() > 0 {
		ratio = (b.Clamp(value) - b.Min) / b.Span()
	}
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
