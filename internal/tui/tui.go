// Package tui is the interactive wheel: a bubbletea model that draws the
// disc, drives the spin engine once per frame and edits the wheel file.
package tui

import (
	"errors"
	"fate/internal/config"
	"fate/internal/expr"
	"fate/internal/history"
	"fate/internal/wheel"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	weightStep      = 1.0
	nudgeDegrees    = 1.0
	listScrollLines = 3

	defaultDiscRadius = 6

	panelBorderWidth  = 2
	discPanelOverhead = 7 // border(2) + pointer label(2) + meter(3)
	sidePanelOverhead = 5 // border(2) + title gap(1) + help(2)
	sidePanelPadding  = 4 // border(2) + padding(2)
	maxCompactItems   = 8
)

type Option func(*Model)

// WithPath saves edits made in the TUI to the wheel file at path.
func WithPath(path string) Option {
	return func(m *Model) { m.path = path }
}

// WithSource overrides the random source the engine draws spin targets from.
func WithSource(src wheel.Source) Option {
	return func(m *Model) { m.source = src }
}

// WithContext sets the context item conditions and labels are evaluated in.
func WithContext(ctx *expr.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

func WithFrameInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.frameInterval = d
		}
	}
}

type Model struct {
	cfg    *config.Config
	path   string
	ctx    *expr.Context
	source wheel.Source

	layout    wheel.Layout
	layoutErr error

	engine *wheel.Engine
	tally  *history.Tally
	list   *ItemList

	frameInterval time.Duration
	ticking       bool

	result    wheel.Selection
	hasResult bool
	notice    error

	showTally bool
	width     int
	height    int
	screen    Layout

	debugFile *os.File
}

func New(cfg *config.Config, opts ...Option) (Model, error) {
	tuning, err := cfg.Tuning()
	if err != nil {
		return Model{}, fmt.Errorf("spin: %w", err)
	}

	m := Model{
		cfg:           cfg,
		ctx:           expr.NewContext(),
		tally:         history.New(tallyRecent),
		list:          NewItemList(),
		frameInterval: cfg.FrameInterval(),
		showTally:     true,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.source == nil {
		m.source = wheel.NewSource(cfg.Spin.Seed)
	}
	m.engine = wheel.NewEngine(tuning, m.source)

	if err := m.reload(); err != nil {
		return Model{}, err
	}

	if debugPath := os.Getenv("FATE_DEBUG"); debugPath != "" {
		if f, err := os.OpenFile(debugPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644); err == nil {
			m.debugFile = f
		}
	}

	return m, nil
}

func (m Model) debugLog(format string, args ...any) {
	if m.debugFile != nil {
		fmt.Fprintf(m.debugFile, format+"\n", args...)
	}
}

func (m *Model) Close() {
	if m.debugFile != nil {
		m.debugFile.Close()
		m.debugFile = nil
	}
}

// Result returns the item the last completed spin landed on.
func (m Model) Result() (wheel.Selection, bool) {
	return m.result, m.hasResult
}

func (m Model) Tally() *history.Tally {
	return m.tally
}

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("fate")
}

type frameMsg struct{}

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.frameInterval, func(time.Time) tea.Msg {
		return frameMsg{}
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(frameMsg); !ok {
		m.debugLog("msg: %T", msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "space", "enter":
			return m.spin()

		case "j", "down", "k", "up", "g", "home", "G", "end":
			return m, m.list.Update(msg)

		case "+", "=":
			m.notice = m.adjustWeight(weightStep)
			return m, nil

		case "-", "_":
			m.notice = m.adjustWeight(-weightStep)
			return m, nil

		case "d", "delete":
			m.notice = m.deleteSelected()
			return m, nil

		case "t":
			m.showTally = !m.showTally
			m.resize()
			return m, nil

		case "esc":
			m.notice = nil
			return m, nil
		}

	case tea.MouseMsg:
		if m.overList(msg.X) {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.list.ScrollUp(listScrollLines)
			case tea.MouseButtonWheelDown:
				m.list.ScrollDown(listScrollLines)
			}
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.engine.Nudge(nudgeDegrees)
		case tea.MouseButtonWheelDown:
			m.engine.Nudge(-nudgeDegrees)
		}
		return m, nil

	case frameMsg:
		return m.advance()

	case ItemSelectedMsg:
		m.debugLog("cursor: %d %q", msg.Index, msg.Item.Label)
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	}

	return m, nil
}

func (m Model) spin() (Model, tea.Cmd) {
	if m.layoutErr != nil {
		m.notice = m.layoutErr
		return m, nil
	}

	if err := m.engine.Spin(m.layout); err != nil {
		if errors.Is(err, wheel.ErrSpinInProgress) {
			m.debugLog("spin ignored: %v", err)
			return m, nil
		}
		m.notice = err
		return m, nil
	}

	state := m.engine.State()
	m.debugLog("spin: items=%d rotation=%.2f target=%.3f", m.layout.Len(), state.Rotation, state.Target)

	m.notice = nil
	m.hasResult = false
	m.list.SetWinner(0)

	if m.ticking {
		return m, nil
	}
	m.ticking = true
	return m, m.frame()
}

func (m Model) advance() (Model, tea.Cmd) {
	if sel, ok := m.engine.Tick(); ok {
		entry := m.tally.Record(sel, m.engine.State().Ticks)
		m.result = sel
		m.hasResult = true
		m.list.SetWinner(sel.Item.ID)
		m.debugLog("settled: #%d %q rotation=%.2f ticks=%d", entry.Spin, entry.Label, entry.Rotation, entry.Ticks)
	}

	if m.engine.Spinning() {
		return m, m.frame()
	}
	m.ticking = false
	return m, nil
}

// reload re-derives the wheel items and layout from the config.
func (m *Model) reload() error {
	items, err := m.cfg.WheelItems(m.ctx)
	if err != nil {
		return err
	}

	m.layout, m.layoutErr = wheel.Compute(items)
	if m.layoutErr == nil {
		m.layoutErr = wheel.CanSpin(m.layout)
	}
	m.list.SetLayout(m.layout)
	m.resize()
	return nil
}

// edit applies change to a copy of the config, saves it when a path is set
// and only then swaps it in and reloads the layout. A failed change or save
// leaves the model untouched. A spin in progress keeps its own snapshot.
func (m *Model) edit(change func(*config.Config) error) error {
	next := m.cfg.Clone()
	if err := change(next); err != nil {
		return err
	}
	if m.path != "" {
		if err := config.Save(m.path, next); err != nil {
			return err
		}
	}
	m.cfg = next
	return m.reload()
}

func (m *Model) adjustWeight(delta float64) error {
	item, ok := m.list.SelectedItem()
	if !ok {
		return nil
	}

	stored, err := m.cfg.Find(item.ID)
	if err != nil {
		return err
	}
	weight := stored.Weight + delta
	if weight <= 0 {
		return fmt.Errorf("%s: weight must stay positive", item.Label)
	}

	m.debugLog("weight: %q %g -> %g", item.Label, stored.Weight, weight)
	return m.edit(func(c *config.Config) error {
		return c.SetWeight(item.ID, weight)
	})
}

func (m *Model) deleteSelected() error {
	item, ok := m.list.SelectedItem()
	if !ok {
		return nil
	}

	m.debugLog("delete: %q", item.Label)
	return m.edit(func(c *config.Config) error {
		_, err := c.Remove(item.ID)
		return err
	})
}

// displayLayout is the layout the disc shows: the spin's snapshot while it
// runs, the current items otherwise.
func (m Model) displayLayout() wheel.Layout {
	if m.engine.Spinning() {
		return m.engine.Layout()
	}
	return m.layout
}

// overList reports whether screen column x falls on the side panel.
func (m Model) overList(x int) bool {
	if !m.screen.IsTwoColumn() {
		return false
	}
	// app container border and padding
	return x >= 2+m.screen.DiscWidth
}

func (m Model) contentDimensions() (width, height int) {
	width = max(m.width-4, 10)
	height = max(m.height-2, 3)
	return width, height
}

func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		m.list.SetSize(40, min(max(m.layout.Len(), 1), maxCompactItems))
		return
	}

	contentWidth, contentHeight := m.contentDimensions()
	m.screen = NewLayout(contentWidth, contentHeight)

	if m.screen.IsTwoColumn() {
		inner := max(m.screen.Height-sidePanelOverhead-1, 3)
		listHeight := inner
		if m.showTally {
			listHeight = max(inner/2, 3)
		}
		m.list.SetSize(m.screen.SideWidth-sidePanelPadding, listHeight)
		return
	}

	m.list.SetSize(contentWidth, min(max(m.layout.Len(), 1), maxCompactItems))
}

func (m Model) discRadius() int {
	if m.width == 0 || m.height == 0 {
		return defaultDiscRadius
	}
	if m.screen.IsTwoColumn() {
		return DiscRadius(m.screen.DiscWidth-panelBorderWidth, m.screen.Height-discPanelOverhead-3)
	}
	contentWidth, contentHeight := m.contentDimensions()
	return DiscRadius(contentWidth, contentHeight/3)
}

func (m Model) View() string {
	var content string

	if m.screen.IsTwoColumn() {
		content = m.renderTwoColumn()
	} else {
		content = m.renderSingleColumn()
	}

	if m.width > 0 && m.height > 0 {
		return appContainerStyle.Render(content)
	}
	return content
}

func (m Model) renderSingleColumn() string {
	var s strings.Builder

	width, _ := m.contentDimensions()

	s.WriteString(titleStyle.Render("FATE"))
	s.WriteString("\n")
	s.WriteString(m.renderWheel(width))
	s.WriteString("\n\n")
	s.WriteString(m.list.View())

	if m.showTally {
		s.WriteString("\n\n")
		s.WriteString(m.renderTally(width))
	}

	s.WriteString("\n")
	s.WriteString(m.renderHelp())
	return s.String()
}

func (m Model) renderTwoColumn() string {
	discPanel := Panel{
		Title:       "FATE",
		Content:     m.renderWheel(m.screen.DiscWidth - sidePanelPadding),
		Width:       m.screen.DiscWidth,
		Height:      m.screen.Height - 3,
		BorderColor: FocusedBorderColor,
		Focused:     true,
	}

	var side strings.Builder
	side.WriteString(m.list.View())
	if m.showTally {
		side.WriteString("\n\n")
		side.WriteString(m.renderTally(m.screen.SideWidth - sidePanelPadding))
	}

	sidePanel := Panel{
		Title:       fmt.Sprintf("Items (%d)", m.layout.Len()),
		Content:     side.String(),
		Width:       m.screen.SideWidth,
		Height:      m.screen.Height - 3,
		BorderColor: UnfocusedBorderColor,
		Focused:     true,
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, RenderPanel(discPanel), RenderPanel(sidePanel))
	return panels + "\n" + m.renderHelp()
}

// renderWheel draws the disc with the pointer label, the speed meter and any
// notice below it.
func (m Model) renderWheel(width int) string {
	layout := m.displayLayout()
	state := m.engine.State()

	disc := Disc{Layout: layout, Rotation: state.Rotation, Radius: m.discRadius()}

	var s strings.Builder
	s.WriteString(disc.View())
	s.WriteString("\n\n")
	s.WriteString(m.renderPointerLabel(layout, state))
	s.WriteString("\n")
	s.WriteString(RenderSpeedMeter(state, m.engine.Tuning(), width))

	notice := m.notice
	if notice == nil {
		notice = m.layoutErr
	}
	if notice != nil {
		s.WriteString("\n")
		s.WriteString(RenderNotice(NoticeFor(notice), width))
	}
	return s.String()
}

// renderPointerLabel names the item under the pointer, highlighted when it
// is the result of the spin that just settled there.
func (m Model) renderPointerLabel(layout wheel.Layout, state wheel.SpinState) string {
	sel, ok := wheel.Resolve(layout, state.Rotation)
	if !ok {
		return previewStyle.Render(pointerGlyph + " ?")
	}

	style := previewStyle
	if !state.Spinning() && m.hasResult &&
		m.result.Item.ID == sel.Item.ID && m.result.Rotation == sel.Rotation {
		style = resultStyle
	}
	return style.Render(pointerGlyph + " " + sel.Item.Label)
}

func (m Model) renderTally(width int) string {
	return RenderTally(m.tally.Rows(m.layout), m.tally.Total(), m.tally.Recent(tallyRecent), width)
}

func (m Model) renderHelp() string {
	if m.engine.Spinning() {
		return helpStyle.Render("q quit • j/k move • +/- weight • t tally")
	}
	if m.layoutErr != nil {
		return helpStyle.Render("q quit • j/k move • +/- weight • d delete • t tally")
	}
	return helpStyle.Render("space spin • q quit • j/k move • +/- weight • d delete • t tally • scroll nudge")
}
