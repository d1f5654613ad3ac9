package ui

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/layout"
	"github.com/rohanod/busDisplay/internal/state"
)

// Static glyphs standing in for the original vector-art icons.
const (
	tramGlyph  = "🚊"
	clockGlyph = "◷"
)

// renderBoard draws the full departure board for one frame: the stop cards in
// their computed arrangement plus the clock and weather widgets.
func renderBoard(view state.View, geo layout.Geometry, cfg config.Config, now time.Time, styles Styles, w, h int) string {
	cards := make([]string, len(geo.Cards))
	for i := range geo.Cards {
		cards[i] = renderCard(view.Stops[i], geo.Cards[i], geo, cfg, styles)
	}

	hGap := strings.Repeat(" ", max(geo.BarMargin, 1))
	vGap := strings.Repeat("\n", max(geo.BarMargin, 1))

	widgets := renderWidgets(view, cfg, geo, now, styles)

	var content string
	switch geo.Arrangement {
	case layout.Single:
		parts := append([]string{}, cards...)
		if widgets != "" {
			parts = append(parts, widgets)
		}
		content = joinColumn(parts, vGap)
		return place(w, h, lipgloss.Center, lipgloss.Top, content, styles)

	case layout.Stack:
		stack := joinColumn(cards, vGap)
		if widgets != "" {
			content = lipgloss.JoinHorizontal(lipgloss.Center, widgets, hGap, stack)
		} else {
			content = stack
		}
		return place(w, h, lipgloss.Right, lipgloss.Center, content, styles)

	case layout.TwoPlusOne:
		top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], hGap, cards[1])
		parts := []string{top, cards[2]}
		if widgets != "" {
			parts = append(parts, widgets)
		}
		content = joinColumn(parts, vGap)
		return place(w, h, lipgloss.Center, lipgloss.Center, content, styles)

	default: // layout.Grid
		var rows []string
		for i := 0; i < len(cards); i += 2 {
			if i+1 < len(cards) {
				rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i], hGap, cards[i+1]))
			} else {
				rows = append(rows, cards[i])
			}
		}
		if widgets != "" {
			rows = append(rows, widgets)
		}
		content = joinColumn(rows, vGap)
		return place(w, h, lipgloss.Center, lipgloss.Center, content, styles)
	}
}

// renderCard draws one stop: the name header and a row of departure cells.
func renderCard(st state.StopState, card layout.Card, geo layout.Geometry, cfg config.Config, styles Styles) string {
	innerW := max(card.W-2, 1)
	innerH := max(card.H-2, 1)

	name := styles.StopName.Render(tramGlyph + " " + st.Snapshot.StopName)

	var body string
	if len(st.Snapshot.Departures) == 0 {
		body = styles.Muted.Render("no departures")
	} else {
		n := len(st.Snapshot.Departures)
		if geo.DepartureCols > 0 && n > geo.DepartureCols {
			n = geo.DepartureCols
		}
		cells := make([]string, 0, n)
		for _, dep := range st.Snapshot.Departures[:n] {
			cells = append(cells, renderDepartureCell(dep.Minutes, dep.Line, geo.CellW, cfg.SoonMinutes, styles))
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, name, body)
	return styles.Card.
		Width(innerW).
		Height(innerH).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderDepartureCell draws one departure: the minute count above the line
// label, colored by urgency.
func renderDepartureCell(minutes int, line string, cellW, soonMinutes int, styles Styles) string {
	w := max(cellW, 3)
	minute := minuteStyle(minutes, soonMinutes, styles).Render(minuteLabel(minutes))
	label := styles.Line.Render(line)
	cell := lipgloss.JoinVertical(lipgloss.Center, minute, label)
	return lipgloss.NewStyle().Width(w).Align(lipgloss.Center).Render(cell)
}

type urgencyTier int

const (
	tierNormal urgencyTier = iota
	tierSoon
	tierUrgent
)

// urgency classifies a departure: zero minutes is urgent, a positive soon
// threshold marks everything at or under it, zero threshold disables the
// middle tier.
func urgency(minutes, soonMinutes int) urgencyTier {
	switch {
	case minutes == 0:
		return tierUrgent
	case soonMinutes > 0 && minutes <= soonMinutes:
		return tierSoon
	default:
		return tierNormal
	}
}

func minuteStyle(minutes, soonMinutes int, styles Styles) lipgloss.Style {
	switch urgency(minutes, soonMinutes) {
	case tierUrgent:
		return styles.MinuteUrgent
	case tierSoon:
		return styles.MinuteSoon
	default:
		return styles.Minute
	}
}

// minuteLabel formats the minute count; an imminent departure reads NOW.
func minuteLabel(minutes int) string {
	if minutes == 0 {
		return "NOW"
	}
	return strconv.Itoa(minutes) + "'"
}

func joinColumn(parts []string, gap string) string {
	if len(parts) == 0 {
		return ""
	}
	joined := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			joined = append(joined, gap)
		}
		joined = append(joined, p)
	}
	return lipgloss.JoinVertical(lipgloss.Center, joined...)
}

func place(w, h int, hPos, vPos lipgloss.Position, content string, styles Styles) string {
	return lipgloss.Place(w, h, hPos, vPos, content,
		lipgloss.WithWhitespaceBackground(styles.Background.GetBackground()))
}
