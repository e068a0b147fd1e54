package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/trajsim/internal/dynamo"
)

// ErrTooFewStates is returned when a trajectory has nothing to draw.
var ErrTooFewStates = errors.New("export: need at least two states")

const svgPadding = 0.1

// WriteSVG draws the flight path as a single polyline over a ground line at
// y=0. The plot is scaled to the trajectory bounds plus a 10% margin.
func WriteSVG(w io.Writer, states []dynamo.KinematicState, width, height int, stroke string) error {
	if len(states) < 2 {
		return ErrTooFewStates
	}

	minX, maxX := states[0].Position.X, states[0].Position.X
	minY, maxY := 0.0, 0.0
	for _, s := range states {
		minX = min(minX, s.Position.X)
		maxX = max(maxX, s.Position.X)
		minY = min(minY, s.Position.Y)
		maxY = max(maxY, s.Position.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * svgPadding
	maxX += rangeX * svgPadding
	minY -= rangeY * svgPadding
	maxY += rangeY * svgPadding
	rangeX = maxX - minX
	rangeY = maxY - minY

	project := func(x, y float64) (float64, float64) {
		return (x - minX) / rangeX * float64(width),
			float64(height) - (y-minY)/rangeY*float64(height)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	_, gy := project(0, 0)
	fmt.Fprintf(&sb, `<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#555555" stroke-dasharray="4,4"/>
`, gy, width, gy)

	fmt.Fprintf(&sb, `<path fill="none" stroke="%s" stroke-width="1.5" d="M`, stroke)
	for i, s := range states {
		x, y := project(s.Position.X, s.Position.Y)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}
	sb.WriteString("\"/>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
