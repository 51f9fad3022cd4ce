package tui

import (
	"fate/internal/util"
	"fate/internal/wheel"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	SelectionIndicator   = "▶"
	NoSelectionIndicator = " "
	swatchGlyph          = "●"
	winnerGlyph          = "★"
)

// ItemList is the scrollable list of wheel items next to the disc.
type ItemList struct {
	viewport viewport.Model
	layout   wheel.Layout
	selected int
	winner   int // item id of the last result, 0 for none
	width    int
	height   int
}

type ItemSelectedMsg struct {
	Index int
	Item  wheel.Item
}

func NewItemList() *ItemList {
	return &ItemList{}
}

func (l *ItemList) Update(msg tea.Msg) tea.Cmd {
	n := l.layout.Len()
	if n == 0 {
		return nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "j", "down":
			l.selected = util.Wrap(l.selected+1, n)
		case "k", "up":
			l.selected = util.Wrap(l.selected-1, n)
		case "g", "home":
			l.selected = 0
		case "G", "end":
			l.selected = n - 1
		default:
			return nil
		}
		l.ensureVisible()
		l.refreshContent()
		return l.emitSelected()
	}
	return nil
}

func (l *ItemList) emitSelected() tea.Cmd {
	idx := l.selected
	item := l.layout.Slices[idx].Item
	return func() tea.Msg {
		return ItemSelectedMsg{Index: idx, Item: item}
	}
}

// SetLayout replaces the listed items, keeping the cursor in range.
func (l *ItemList) SetLayout(layout wheel.Layout) {
	l.layout = layout
	l.selected = util.Clamp(l.selected, 0, max(layout.Len()-1, 0))
	l.ensureVisible()
	l.refreshContent()
}

func (l *ItemList) SetWinner(id int) {
	l.winner = id
	l.refreshContent()
}

func (l *ItemList) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.viewport = viewport.New(width, height)
	l.ensureVisible()
	l.refreshContent()
}

func (l *ItemList) Selected() int {
	return l.selected
}

// SelectedItem returns the item under the cursor.
func (l *ItemList) SelectedItem() (wheel.Item, bool) {
	if l.layout.Empty() {
		return wheel.Item{}, false
	}
	return l.layout.Slices[l.selected].Item, true
}

func (l *ItemList) ensureVisible() {
	if l.viewport.Height == 0 {
		return
	}

	top := l.viewport.YOffset
	bottom := top + l.viewport.Height

	if l.selected < top {
		l.viewport.SetYOffset(l.selected)
	}
	if l.selected >= bottom {
		l.viewport.SetYOffset(l.selected - l.viewport.Height + 1)
	}
}

func (l *ItemList) refreshContent() {
	l.viewport.SetContent(l.renderLines())
}

func (l *ItemList) View() string {
	if l.layout.Empty() {
		return leaderStyle.Render("no items: add some with `fate add`")
	}
	l.refreshContent()
	return l.viewport.View()
}

// ScrollUp moves the view by n lines without moving the cursor.
func (l *ItemList) ScrollUp(n int) {
	l.viewport.ScrollUp(n)
}

func (l *ItemList) ScrollDown(n int) {
	l.viewport.ScrollDown(n)
}

func (l *ItemList) renderLines() string {
	lines := make([]string, 0, l.layout.Len())

	for i, s := range l.layout.Slices {
		isSelected := i == l.selected

		prefix := NoSelectionIndicator + " "
		if isSelected {
			prefix = SelectionIndicator + " "
		}
		prefix += lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(swatchGlyph) + " "

		label := s.Item.Label
		if s.Item.ID == l.winner {
			label = resultStyle.Render(label + " " + winnerGlyph)
		}
		suffix := weightStyle.Render(fmt.Sprintf("×%g %3.0f%%", s.Item.Weight, l.layout.Share(i)*100))

		line := renderWithLeader(prefix, label, suffix, l.width)
		if isSelected {
			if w := lipgloss.Width(line); w < l.width {
				line += strings.Repeat(" ", l.width-w)
			}
			line = selectedRowStyle.Render(line)
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// renderWithLeader joins prefix, name and suffix with a dotted leader that
// fills totalWidth.
func renderWithLeader(prefix, name, suffix string, totalWidth int) string {
	used := lipgloss.Width(prefix) + lipgloss.Width(name) + lipgloss.Width(suffix)
	leaderSpace := max(totalWidth-used-2, 3)

	leaders := leaderStyle.Render(strings.Repeat("·", leaderSpace))

	return prefix + name + " " + leaders + " " + suffix
}
