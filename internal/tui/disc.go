package tui

import (
	"fate/internal/wheel"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	minDiscRadius = 3

	discGlyph    = "█"
	pointerGlyph = "▼"
)

var emptyDiscColor = string(gray)

// Disc draws the wheel as seen with the pointer at the top. Every cell takes
// the color of the slice the pointer would select if the wheel were turned
// to bring that cell under it.
type Disc struct {
	Layout   wheel.Layout
	Rotation float64
	Radius   int
}

func (d Disc) View() string {
	r := max(d.Radius, minDiscRadius)
	limit := float64(r*r) + 0.5

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", 2*r))
	b.WriteString(pointerStyle.Render(pointerGlyph))
	b.WriteString(strings.Repeat(" ", 2*r))

	for y := -r; y <= r; y++ {
		b.WriteString("\n")

		run, runColor := 0, ""
		for x := -2 * r; x <= 2*r; x++ {
			dx, dy := float64(x)/2, float64(y)
			color := ""
			if dx*dx+dy*dy <= limit {
				color = d.colorAt(math.Atan2(dx, -dy) * 180 / math.Pi)
			}
			if color != runColor && run > 0 {
				b.WriteString(renderRun(runColor, run))
				run = 0
			}
			runColor = color
			run++
		}
		b.WriteString(renderRun(runColor, run))
	}
	return b.String()
}

// colorAt returns the slice color at screen angle theta, in degrees
// clockwise from the pointer.
func (d Disc) colorAt(theta float64) string {
	sel, ok := wheel.Resolve(d.Layout, d.Rotation-theta)
	if !ok {
		return emptyDiscColor
	}
	return d.Layout.Slices[sel.Index].Color
}

func renderRun(color string, n int) string {
	if n <= 0 {
		return ""
	}
	if color == "" {
		return strings.Repeat(" ", n)
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(strings.Repeat(discGlyph, n))
}
