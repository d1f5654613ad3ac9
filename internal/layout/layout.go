package layout

import (
	"github.com/rohanod/busDisplay/internal/config"
)

// Arrangement names the card placement pattern for a given stop count.
type Arrangement int

const (
	// Single is one card, top-centered, widget row below.
	Single Arrangement = iota
	// Stack is a right-aligned vertical stack with the widget panel left.
	Stack
	// TwoPlusOne is two cards on the top row and one centered below.
	TwoPlusOne
	// Grid is a two-column grid of up to the configured row count.
	Grid
)

// Card is the placed rectangle for one stop card.
type Card struct {
	X, Y, W, H int
}

// Geometry is the result of laying out n stop cards on a W×H screen. Every
// pixel dimension is the corresponding design-resolution metric multiplied
// by the one scale factor, so the whole display scales coherently.
type Geometry struct {
	// Scale is exactly min(W/designW, H/designH).
	Scale float64
	// CardScale is Scale with the grid shrink multiplier applied (n >= 3)
	// and the floor clamp enforced; all pixel metrics derive from it.
	CardScale   float64
	Arrangement Arrangement

	// Cards holds one placed rectangle per displayed stop. Stops beyond
	// the grid capacity are not placed; len(Cards) may be less than n.
	Cards []Card

	// DepartureCols is how many departure cells fit on one card: the full
	// design column count minus the icon column, halved in the two-column
	// arrangements.
	DepartureCols int

	CellW       int
	BarH        int
	BarMargin   int
	BarPadding  int
	CardPadding int

	MinuteSize   int
	NowSize      int
	StopNameSize int
	LineSize     int
	IconSize     int

	BorderRadius int
	ShadowOffset int

	WidgetSize     int
	WidgetTextSize int
	WidgetIconSize int
}

// minScale is the floor clamp; geometry never collapses to zero even on a
// degenerate screen size.
const minScale = 0.05

// Compute derives the board geometry for n stops on a w×h screen from the
// sizing defaults in cfg. Pure: same inputs, same geometry.
func Compute(n, w, h int, cfg config.Config) Geometry {
	designW := cfg.Cols * cfg.CellW
	designH := cfg.Rows*cfg.BarH + (cfg.Rows-1)*cfg.BarMargin

	base := minFloat(float64(w)/float64(designW), float64(h)/float64(designH))
	scale := base
	if n >= 3 {
		// Shrink multiplier makes room for the auxiliary widgets once the
		// board is crowded. Multiplicative with the base scale.
		scale *= cfg.GridShrink
	}
	if scale < minScale {
		scale = minScale
	}

	g := Geometry{
		Scale:          base,
		CardScale:      scale,
		CellW:          px(cfg.CellW, scale),
		BarH:           px(cfg.BarH, scale),
		BarMargin:      px(cfg.BarMargin, scale),
		BarPadding:     px(cfg.BarPadding, scale),
		CardPadding:    px(cfg.CardPadding, scale),
		MinuteSize:     px(cfg.MinuteSize, scale),
		NowSize:        px(cfg.NowSize, scale),
		StopNameSize:   px(cfg.StopNameSize, scale),
		LineSize:       px(cfg.LineSize, scale),
		IconSize:       px(cfg.IconSize, scale),
		BorderRadius:   px(cfg.BorderRadius, scale),
		ShadowOffset:   px(cfg.ShadowOffset, scale),
		WidgetSize:     px(cfg.WidgetSize, scale),
		WidgetTextSize: px(cfg.WidgetTextSize, scale),
		WidgetIconSize: px(cfg.WidgetIconSize, scale),
	}

	fullCols := cfg.Cols - 1
	halfCols := max(cfg.Cols/2-1, 1)
	cardW := func(cols int) int { return cols*g.CellW + 2*g.BarPadding }
	cardH := g.BarH

	switch {
	case n <= 1:
		g.Arrangement = Single
		g.DepartureCols = fullCols
		cw := cardW(fullCols)
		if n == 1 {
			g.Cards = []Card{{X: (w - cw) / 2, Y: g.BarMargin, W: cw, H: cardH}}
		}
	case n == 2:
		g.Arrangement = Stack
		g.DepartureCols = fullCols
		cw := cardW(fullCols)
		totalH := 2*cardH + g.BarMargin
		y0 := (h - totalH) / 2
		x := w - cw - g.BarMargin
		g.Cards = []Card{
			{X: x, Y: y0, W: cw, H: cardH},
			{X: x, Y: y0 + cardH + g.BarMargin, W: cw, H: cardH},
		}
	case n == 3:
		g.Arrangement = TwoPlusOne
		g.DepartureCols = halfCols
		cw := cardW(halfCols)
		totalW := 2*cw + g.BarMargin
		totalH := 2*cardH + g.BarMargin
		x0 := (w - totalW) / 2
		y0 := (h - totalH) / 2
		g.Cards = []Card{
			{X: x0, Y: y0, W: cw, H: cardH},
			{X: x0 + cw + g.BarMargin, Y: y0, W: cw, H: cardH},
			{X: (w - cw) / 2, Y: y0 + cardH + g.BarMargin, W: cw, H: cardH},
		}
	default:
		g.Arrangement = Grid
		g.DepartureCols = halfCols
		cw := cardW(halfCols)
		// Two columns by the configured row count. Stops beyond capacity
		// are not displayed; this truncation is deliberate boundary
		// behavior, not data loss to repair.
		shown := n
		if capacity := 2 * cfg.Rows; shown > capacity {
			shown = capacity
		}
		rows := (shown + 1) / 2
		totalW := 2*cw + g.BarMargin
		totalH := rows*cardH + (rows-1)*g.BarMargin
		x0 := (w - totalW) / 2
		y0 := (h - totalH) / 2
		for i := 0; i < shown; i++ {
			row, col := i/2, i%2
			x := x0 + col*(cw+g.BarMargin)
			if row == rows-1 && shown%2 == 1 && i == shown-1 {
				// Odd last card centers in its row.
				x = (w - cw) / 2
			}
			g.Cards = append(g.Cards, Card{
				X: x,
				Y: y0 + row*(cardH+g.BarMargin),
				W: cw,
				H: cardH,
			})
		}
	}

	return g
}

func px(base int, scale float64) int {
	return int(float64(base) * scale)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
