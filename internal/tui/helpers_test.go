package tui

import (
	"fate/internal/config"
	"fate/internal/expr"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2026-10-16, 12:30
var lunchtime = time.Date(2026, time.October, 16, 12, 30, 0, 0, time.UTC)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func newTestConfig(labels ...string) *config.Config {
	cfg := config.New()
	for _, label := range labels {
		cfg.Add(label, 1, "")
	}
	return cfg
}

func newTestModel(t *testing.T, cfg *config.Config, opts ...Option) Model {
	t.Helper()
	opts = append([]Option{
		WithSource(fixedSource(0.5)),
		WithContext(expr.NewContextAt(lunchtime)),
	}, opts...)

	m, err := New(cfg, opts...)
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok, "Update should return a tui.Model")
	return updated, cmd
}

func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	switch key {
	case "space":
		return update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	case "enter":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	case "ctrl+c":
		return update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	default:
		return update(t, m, keyRune(key))
	}
}

// runFrames feeds frame messages until the model stops asking for frames.
func runFrames(t *testing.T, m Model) Model {
	t.Helper()
	for range 5000 {
		var cmd tea.Cmd
		m, cmd = update(t, m, frameMsg{})
		if cmd == nil {
			return m
		}
	}
	t.Fatal("spin did not settle")
	return m
}

func AssertQuits(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd, "expected a quit command")
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
