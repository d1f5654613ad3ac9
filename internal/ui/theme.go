package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the board's color palette.
type Theme struct {
	Name string

	Background string // outermost background
	Card       string // stop card surface
	Border     string // card border

	Text   string // primary text
	Muted  string // secondary text (widget captions, stale marker)
	Accent string // line badges, spinner

	// Urgency colors. Urgent inverts the cell: highlight background with
	// dark foreground so a departing vehicle is readable across the room.
	Urgent     string
	UrgentText string
	Soon       string
}

// Styles returns pre-built lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Background(lipgloss.Color(t.Card)),

		StopName: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Minute: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MinuteSoon: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Soon)).
			Bold(true),

		MinuteUrgent: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Urgent)).
			Foreground(lipgloss.Color(t.UrgentText)).
			Bold(true),

		Line: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Widget: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Foreground(lipgloss.Color(t.Text)),

		Spinner: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
	}
}

// Styles contains pre-built lipgloss styles for a theme.
type Styles struct {
	Background lipgloss.Style
	Card       lipgloss.Style
	StopName   lipgloss.Style

	Minute       lipgloss.Style
	MinuteSoon   lipgloss.Style
	MinuteUrgent lipgloss.Style
	Line         lipgloss.Style

	Muted   lipgloss.Style
	Widget  lipgloss.Style
	Spinner lipgloss.Style
}

// Theme definitions

var themes = map[string]Theme{
	"Midnight": midnightTheme(),
	"Daylight": daylightTheme(),
}

var themeOrder = []string{"Midnight", "Daylight"}

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return midnightTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

func midnightTheme() Theme {
	return Theme{
		Name: "Midnight",

		Background: "#10141c",
		Card:       "#1b2230",
		Border:     "#2e3a52",

		Text:   "#e8ecf4",
		Muted:  "#7c8699",
		Accent: "#6ea8ff",

		Urgent:     "#e63946",
		UrgentText: "#10141c",
		Soon:       "#f4a261",
	}
}

func daylightTheme() Theme {
	return Theme{
		Name: "Daylight",

		Background: "#f4f1ea",
		Card:       "#ffffff",
		Border:     "#cfc8b8",

		Text:   "#2b2d33",
		Muted:  "#8a8577",
		Accent: "#1d6fd1",

		Urgent:     "#c1121f",
		UrgentText: "#f4f1ea",
		Soon:       "#b35c00",
	}
}
