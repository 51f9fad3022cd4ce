package tui

import (
	"fate/internal/history"
	"fate/internal/util"
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	tallyBarWidth   = 12
	tallyLabelWidth = 14
	tallyRecent     = 5
)

// RenderTally renders how often each item came up next to its share of the
// wheel. Example:
//
//	Tally · 12 spins
//	────────────────────────────
//	   5 Pizza          ██████░░░░░░  42% / 25%
//	   7 Tacos          ███████░░░░░  58% / 75%
//
//	Recent
//	────────────────────────────
//	  #12 Tacos
//	  #11 Pizza
func RenderTally(rows []history.Row, total int, recent []history.Entry, width int) string {
	var b strings.Builder

	rule := tallyHeaderStyle.Render(strings.Repeat("─", util.Clamp(width, 10, 41)))

	b.WriteString(tallyHeaderStyle.Render(fmt.Sprintf("Tally · %d %s", total, plural(total, "spin", "spins"))))
	b.WriteString("\n")
	b.WriteString(rule)

	if total == 0 {
		b.WriteString("\n")
		b.WriteString(leaderStyle.Render("no spins yet"))
		return b.String()
	}

	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(renderTallyLine(row))
	}

	if len(recent) > 0 {
		b.WriteString("\n\n")
		b.WriteString(tallyHeaderStyle.Render("Recent"))
		b.WriteString("\n")
		b.WriteString(rule)
		for _, e := range recent {
			b.WriteString("\n")
			b.WriteString(tallyHeaderStyle.Render(fmt.Sprintf("  #%d %s", e.Spin, e.Label)))
		}
	}

	return b.String()
}

func renderTallyLine(row history.Row) string {
	label := truncateRunes(row.Label, tallyLabelWidth)
	label += strings.Repeat(" ", tallyLabelWidth-lipgloss.Width(label))

	return fmt.Sprintf("%s %s %s  %s / %s",
		tallyCountStyle.Render(fmt.Sprintf("%4d", row.Count)),
		tallyHeaderStyle.Render(label),
		renderMiniBar(row.Observed*100, tallyBarWidth),
		tallyHeaderStyle.Render(fmt.Sprintf("%3.0f%%", row.Observed*100)),
		tallyExpectedStyle.Render(fmt.Sprintf("%.0f%%", row.Expected*100)))
}

func renderMiniBar(percent float64, width int) string {
	filled := util.Clamp(int(math.Round(percent/100*float64(width))), 0, width)

	return tallyBarStyle.Render(strings.Repeat("█", filled)) +
		tallyBarEmptyStyle.Render(strings.Repeat("░", width-filled))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
