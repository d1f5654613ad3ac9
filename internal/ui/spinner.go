package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// newSpinner builds the loading spinner: a fixed four-glyph sequence
// advancing every 250ms, shown alone until every stop has data.
func newSpinner(styles Styles) spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Spinner{
			Frames: []string{"|", "/", "-", `\`},
			FPS:    250 * time.Millisecond,
		}),
		spinner.WithStyle(styles.Spinner),
	)
}

// renderLoading centers the current spinner frame on an otherwise empty
// screen.
func renderLoading(w, h int, frame string, styles Styles) string {
	return place(w, h, lipgloss.Center, lipgloss.Center, frame, styles)
}
