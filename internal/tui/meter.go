package tui

import (
	"fate/internal/util"
	"fate/internal/wheel"
	"fmt"
	"strings"
)

// RenderSpeedMeter renders the spin phase and a bar of the current speed
// relative to the spin's peak. Example output:
//
//	spinning down  •  42.7°/tick  •  118 ticks
//	██████████░░░░░░░░░░░░░░
func RenderSpeedMeter(s wheel.SpinState, t wheel.Tuning, width int) string {
	speed := s.Speed(t)

	var stats string
	if s.Spinning() {
		stats = strings.Join([]string{
			s.Phase.String(),
			fmt.Sprintf("%.1f°/tick", speed),
			fmt.Sprintf("%d %s", s.Ticks, plural(s.Ticks, "tick", "ticks")),
		}, "  •  ")
	} else {
		stats = fmt.Sprintf("%s  •  %.1f°", s.Phase.String(), s.Rotation)
	}

	barWidth := width
	if barWidth <= 0 {
		barWidth = len(stats)
	}
	if half := width / 2; half > 0 && barWidth > half {
		barWidth = half
	}

	// Speed peaks when spin-up overshoots the target and spin-down starts.
	peak := s.Target * s.Target * t.SpinUpFactor
	filled := 0
	if peak > 0 {
		filled = util.Clamp(int(speed/peak*float64(barWidth)), 0, barWidth)
	}

	bar := meterFilledStyle.Render(strings.Repeat("█", filled)) +
		meterEmptyStyle.Render(strings.Repeat("░", barWidth-filled))

	return meterTextStyle.Render(stats) + "\n" + bar
}
