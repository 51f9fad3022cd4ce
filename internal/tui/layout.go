package tui

type LayoutMode int

const (
	LayoutSingleColumn LayoutMode = iota

	LayoutTwoColumn
)

// Layout splits the screen between the wheel and the side panel.
type Layout struct {
	Mode      LayoutMode
	Width     int
	Height    int
	DiscWidth int
	SideWidth int
}

const (
	minWidthTwoColumn = 70

	wideTerminalWidth = 121

	mediumDiscPercent = 55

	wideDiscPercent = 50
)

func NewLayout(width, height int) Layout {
	if width <= 0 {
		return Layout{
			Mode:   LayoutSingleColumn,
			Width:  width,
			Height: height,
		}
	}

	if width < minWidthTwoColumn {
		return Layout{
			Mode:      LayoutSingleColumn,
			Width:     width,
			Height:    height,
			DiscWidth: width,
		}
	}

	percent := mediumDiscPercent
	if width >= wideTerminalWidth {
		percent = wideDiscPercent
	}
	discWidth := width * percent / 100

	return Layout{
		Mode:      LayoutTwoColumn,
		Width:     width,
		Height:    height,
		DiscWidth: discWidth,
		SideWidth: width - discWidth,
	}
}

func (l Layout) IsTwoColumn() bool {
	return l.Mode == LayoutTwoColumn
}

// DiscRadius is the largest radius, in rows, that fits a disc of the given
// area. Cells are about twice as tall as wide, so a disc of radius r needs
// 4r+1 columns and 2r+1 rows.
func DiscRadius(width, height int) int {
	r := min((width-1)/4, (height-1)/2)
	return max(r, minDiscRadius)
}
