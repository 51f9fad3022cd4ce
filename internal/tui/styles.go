package tui

import "github.com/charmbracelet/lipgloss"

var (
	green  = lipgloss.Color("#00FF00")
	yellow = lipgloss.Color("#FFFF00")
	red    = lipgloss.Color("#FF0000")
	cyan   = lipgloss.Color("#00FFFF")
	gray   = lipgloss.Color("#808080")

	FocusedBorderColor   = lipgloss.Color("14")
	UnfocusedBorderColor = lipgloss.Color("8")

	selectedRowStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("237")).
				Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(cyan).
			MarginBottom(1)

	pointerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(yellow)

	resultStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(green)

	previewStyle = lipgloss.NewStyle().
			Foreground(gray)

	weightStyle = lipgloss.NewStyle().
			Foreground(gray)

	leaderStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(gray).
			MarginTop(1)

	meterFilledStyle = lipgloss.NewStyle().
				Foreground(cyan)

	meterEmptyStyle = lipgloss.NewStyle().
			Foreground(gray).
			Faint(true)

	meterTextStyle = lipgloss.NewStyle().
			Foreground(cyan)

	noticeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(red).
			Padding(0, 2).
			MarginTop(1)

	noticeHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(red).
				Background(lipgloss.Color("#330000"))

	noticeErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FF6666"))

	noticeHintStyle = lipgloss.NewStyle().
			Foreground(gray).
			Italic(true)

	tallyHeaderStyle = lipgloss.NewStyle().
				Foreground(gray)

	tallyCountStyle = lipgloss.NewStyle().
			Foreground(green)

	tallyBarStyle = lipgloss.NewStyle().
			Foreground(cyan)

	tallyBarEmptyStyle = lipgloss.NewStyle().
				Foreground(gray).
				Faint(true)

	tallyExpectedStyle = lipgloss.NewStyle().
				Foreground(yellow)

	appContainerStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1)
)
