// Package ui renders the departure board with Bubble Tea.
//
// # Overview
//
// The model redraws at roughly thirty frames per second. Each frame reads a
// consistent view from the shared state store, recomputes the card geometry
// when the stop count or terminal size changed, and draws either the loading
// spinner or the full board.
//
// # Phases
//
// Until every configured stop has fetched once, the screen shows only a
// centered spinner cycling four glyphs on a 250ms wall clock. Once the board
// is ready it never returns to the spinner; failed refreshes keep the last
// good departures on screen.
//
// # Urgency
//
// A departure leaving now inverts its cell (highlight background, dark text).
// A configurable soon threshold colors anything at or under it; zero disables
// that middle tier.
//
// # Keys
//
// Esc, q, and Ctrl+C quit. Shift+T cycles the color theme and persists the
// choice to the prefs file.
package ui
