package tui

import (
	"errors"
	"fate/internal/wheel"
	"strings"
)

// noticePadding is the horizontal padding of noticeBoxStyle, which lipgloss
// counts as part of the style width.
const noticePadding = 4

// Notice is a boxed message shown under the wheel when something needs the
// user's attention.
type Notice struct {
	Title string
	Err   error
	Hint  string
}

// NoticeFor picks the title and hint that fit err.
func NoticeFor(err error) Notice {
	switch {
	case errors.Is(err, wheel.ErrTooFewItems):
		return Notice{Title: "CANNOT SPIN", Err: err, Hint: "add another item with `fate add`"}
	case errors.Is(err, wheel.ErrInvalidLayout):
		return Notice{Title: "CANNOT SPIN", Err: err, Hint: "add items with `fate add`"}
	default:
		return Notice{Title: "ERROR", Err: err, Hint: "press esc to dismiss"}
	}
}

// RenderNotice renders a notice box. Example:
//
//	╭──────────────────────────────────────╮
//	│  CANNOT SPIN                         │
//	│  at least two items are needed to    │
//	│  spin                                │
//	│  add another item with `fate add`    │
//	╰──────────────────────────────────────╯
func RenderNotice(n Notice, width int) string {
	innerWidth := max(width-6, 20)

	var content strings.Builder
	content.WriteString(noticeHeaderStyle.Render(n.Title))

	if n.Err != nil {
		for _, line := range wrapText(n.Err.Error(), innerWidth) {
			content.WriteString("\n")
			content.WriteString(noticeErrorStyle.Render(line))
		}
	}
	if n.Hint != "" {
		content.WriteString("\n")
		content.WriteString(noticeHintStyle.Render(truncateLine(n.Hint, innerWidth)))
	}

	return noticeBoxStyle.Width(innerWidth + noticePadding).Render(content.String())
}

func truncateLine(line string, maxWidth int) string {
	r := []rune(line)
	if len(r) <= maxWidth {
		return line
	}
	if maxWidth <= 3 {
		return "..."
	}
	return string(r[:maxWidth-3]) + "..."
}

// wrapText breaks text into lines of at most width bytes, preferring word
// boundaries in the second half of a line.
func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	remaining := text

	for len(remaining) > 0 {
		if len(remaining) <= width {
			lines = append(lines, remaining)
			break
		}

		breakPoint := width
		for i := width - 1; i >= width/2; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, strings.TrimSpace(remaining[:breakPoint]))
		remaining = strings.TrimSpace(remaining[breakPoint:])
	}

	return lines
}
