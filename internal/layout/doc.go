// Package layout computes the board geometry.
//
// The display is designed at a reference resolution derived from the sizing
// config: cols×cell_w pixels wide, rows×bar_h plus margins high. For any
// actual screen the single scale factor min(W/designW, H/designH) maps the
// design onto it, and every pixel dimension (card sizes, font sizes, icon
// size, paddings, gaps) is its design metric times that factor. That one
// proportionality is the invariant the whole display's coherence rests on.
//
// Card placement depends only on the stop count: one card top-centered, two
// stacked right-aligned, two-plus-one, or a two-column grid that silently
// stops placing cards past the configured capacity. Compute is pure and
// cheap; the UI calls it on startup and again on every resize.
package layout
