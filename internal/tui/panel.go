package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Panel is a bordered box with its title set into the top border.
type Panel struct {
	Title       string
	Content     string
	Width       int
	Height      int
	BorderColor lipgloss.Color
	Focused     bool // unfocused content is dimmed
}

var DefaultBorderColor = lipgloss.Color("#808080")

// RenderPanel renders p at exactly p.Width by p.Height cells, clipping
// content that does not fit.
func RenderPanel(p Panel) string {
	width := p.Width
	if width <= 0 {
		width = 10
	}
	height := p.Height
	if height <= 0 {
		height = 3
	}

	innerWidth := max(width-2, 1)
	innerHeight := max(height-2, 1)

	content := clipContent(p.Content, innerWidth, innerHeight)
	if !p.Focused {
		content = lipgloss.NewStyle().Faint(true).Render(content)
	}

	rendered := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.BorderColor).
		Width(innerWidth).
		Height(innerHeight).
		Render(content)

	if p.Title != "" {
		rendered = titleBorder(rendered, p.Title, width)
	}
	return rendered
}

// clipContent truncates every line to maxWidth cells and keeps at most
// maxHeight lines. Widths are measured ANSI-aware.
func clipContent(content string, maxWidth, maxHeight int) string {
	if content == "" {
		return ""
	}

	clip := lipgloss.NewStyle().MaxWidth(maxWidth)
	lines := strings.Split(content, "\n")
	if len(lines) > maxHeight {
		lines = lines[:maxHeight]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > maxWidth {
			lines[i] = clip.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// titleBorder replaces the top border line with "╭─ title ───╮", keeping the
// border color.
func titleBorder(rendered, title string, width int) string {
	lines := strings.Split(rendered, "\n")
	if len(lines) == 0 {
		return rendered
	}

	top := lines[0]
	prefix := ansiPrefix(top)
	suffix := ""
	if strings.HasSuffix(top, "\x1b[0m") {
		suffix = "\x1b[0m"
	}

	label := " " + title + " "
	maxLabel := max(width-4, 1)
	if lipgloss.Width(label) > maxLabel {
		if maxLabel > 3 {
			label = " " + truncateRunes(title, maxLabel-3) + "… "
		} else {
			label = " "
		}
	}
	dashes := max(width-lipgloss.Width(label)-3, 0)

	lines[0] = prefix + "╭─" + label + strings.Repeat("─", dashes) + "╮" + suffix
	return strings.Join(lines, "\n")
}

func ansiPrefix(s string) string {
	var b strings.Builder
	inEscape := false
	for i := 0; i < len(s); i++ {
		if s[i] == '\x1b' {
			inEscape = true
		}
		if !inEscape {
			break
		}
		b.WriteByte(s[i])
		if s[i] == 'm' {
			inEscape = false
		}
	}
	return b.String()
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
