package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestRenderPanel(t *testing.T) {
	tests := []struct {
		name     string
		panel    Panel
		validate func(t *testing.T, result string)
	}{
		{
			name:  "title and content",
			panel: Panel{Title: "FATE", Content: "Pizza", Width: 20, Height: 5, Focused: true},
			validate: func(t *testing.T, result string) {
				assert.Contains(t, result, "╭─ FATE ")
				assert.Contains(t, result, "Pizza")
			},
		},
		{
			name:  "no title keeps plain border",
			panel: Panel{Content: "Tacos", Width: 20, Height: 5},
			validate: func(t *testing.T, result string) {
				assert.Contains(t, result, "Tacos")
				assert.True(t, strings.HasPrefix(result, "╭──"))
			},
		},
		{
			name:  "long lines are clipped to width",
			panel: Panel{Title: "Wide", Content: strings.Repeat("x", 80), Width: 20, Height: 5},
			validate: func(t *testing.T, result string) {
				for line := range strings.SplitSeq(result, "\n") {
					assert.LessOrEqual(t, lipgloss.Width(line), 20)
				}
			},
		},
		{
			name:  "extra lines are dropped",
			panel: Panel{Content: "1\n2\n3\n4\n5\n6", Width: 10, Height: 5},
			validate: func(t *testing.T, result string) {
				assert.Len(t, strings.Split(result, "\n"), 5)
				assert.Contains(t, result, "3")
				assert.NotContains(t, result, "4")
			},
		},
		{
			name:  "long title is truncated",
			panel: Panel{Title: "A very long panel title indeed", Width: 16, Height: 3},
			validate: func(t *testing.T, result string) {
				top := strings.Split(result, "\n")[0]
				assert.Contains(t, top, "…")
				assert.Equal(t, 16, lipgloss.Width(top))
			},
		},
		{
			name:  "zero size falls back to a minimum",
			panel: Panel{Title: "X", Content: "y"},
			validate: func(t *testing.T, result string) {
				assert.Len(t, strings.Split(result, "\n"), 3)
				assert.Equal(t, 10, lipgloss.Width(strings.Split(result, "\n")[0]))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, RenderPanel(tt.panel))
		})
	}
}

func TestClipContent(t *testing.T) {
	assert.Empty(t, clipContent("", 5, 5))
	assert.Equal(t, "ab\ncd", clipContent("ab\ncd\nef", 5, 2))
	assert.Equal(t, "abcde", clipContent("abcdefgh", 5, 1))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "Crê", truncateRunes("Crêpes", 3))
	assert.Equal(t, "Pho", truncateRunes("Pho", 10))
}
