package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/layout"
	"github.com/rohanod/busDisplay/internal/state"
	"github.com/rohanod/busDisplay/internal/weather"
)

// renderWidgets draws the auxiliary panel: a clock and the daily forecast,
// each toggled by configuration. Returns "" when nothing is enabled.
func renderWidgets(view state.View, cfg config.Config, geo layout.Geometry, now time.Time, styles Styles) string {
	var panels []string
	if cfg.ShowClock {
		panels = append(panels, renderClock(now, geo.WidgetSize, styles))
	}
	if cfg.ShowWeather && view.HasWeather {
		panels = append(panels, renderWeather(view.Weather, geo.WidgetSize, styles))
	}
	if len(panels) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func renderClock(now time.Time, size int, styles Styles) string {
	return styles.Widget.
		Width(widgetWidth(size)).
		Align(lipgloss.Center).
		Render(clockGlyph + " " + now.Format("15:04"))
}

func renderWeather(rep weather.Report, size int, styles Styles) string {
	glyph := "☀"
	if rep.Rain() {
		glyph = "🌧"
	}
	text := fmt.Sprintf("%s %.0f° / %.0f°", glyph, rep.MinTemp, rep.MaxTemp)
	return styles.Widget.
		Width(widgetWidth(size)).
		Align(lipgloss.Center).
		Render(text)
}

// widgetWidth keeps the panel readable even at degenerate scales.
func widgetWidth(size int) int {
	return max(size, 14)
}
