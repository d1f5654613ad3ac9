package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/rohanod/busDisplay/internal/board"
	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/layout"
	"github.com/rohanod/busDisplay/internal/state"
)

func TestUrgencyTiers(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		soon    int
		want    urgencyTier
	}{
		{"departing now", 0, 2, tierUrgent},
		{"departing now without soon tier", 0, 0, tierUrgent},
		{"inside soon threshold", 2, 2, tierSoon},
		{"one minute", 1, 2, tierSoon},
		{"just past soon threshold", 3, 2, tierNormal},
		{"soon tier disabled", 1, 0, tierNormal},
		{"far out", 45, 2, tierNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := urgency(tt.minutes, tt.soon); got != tt.want {
				t.Errorf("urgency(%d, %d) = %v, want %v", tt.minutes, tt.soon, got, tt.want)
			}
		})
	}
}

func TestMinuteLabel(t *testing.T) {
	if got := minuteLabel(0); got != "NOW" {
		t.Errorf("minuteLabel(0) = %q, want NOW", got)
	}
	if got := minuteLabel(7); got != "7'" {
		t.Errorf("minuteLabel(7) = %q, want 7'", got)
	}
}

func testView(names ...string) state.View {
	view := state.View{Phase: state.Ready}
	for _, name := range names {
		view.Stops = append(view.Stops, state.StopState{
			HasData: true,
			Snapshot: board.Snapshot{
				StopName: name,
				Departures: []board.Departure{
					{Line: "10", Minutes: 0},
					{Line: "22", Minutes: 4},
				},
			},
		})
	}
	return view
}

func TestRenderBoardShowsEveryPlacedStop(t *testing.T) {
	cfg := config.Default()
	styles := midnightTheme().Styles()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for _, n := range []int{1, 2, 3, 4} {
		names := make([]string, n)
		for i := range names {
			names[i] = "Stop" + string(rune('A'+i))
		}
		view := testView(names...)
		geo := layout.Compute(n, 200, 60, cfg)

		out := renderBoard(view, geo, cfg, now, styles, 200, 60)
		for _, name := range names {
			if !strings.Contains(out, name) {
				t.Errorf("n=%d: stop %q missing from render", n, name)
			}
		}
		if !strings.Contains(out, "NOW") {
			t.Errorf("n=%d: imminent departure not labeled NOW", n)
		}
	}
}

func TestRenderBoardTruncatesBeyondGridCapacity(t *testing.T) {
	cfg := config.Default() // two rows, so the grid holds four cards
	styles := midnightTheme().Styles()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	view := testView("Alpha", "Bravo", "Charlie", "Delta", "Echo")
	geo := layout.Compute(5, 200, 60, cfg)

	out := renderBoard(view, geo, cfg, now, styles, 200, 60)
	if strings.Contains(out, "Echo") {
		t.Error("stop beyond grid capacity rendered")
	}
}

func TestRenderBoardTwoStopsOneEmpty(t *testing.T) {
	cfg := config.Default()
	styles := midnightTheme().Styles()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	view := state.View{
		Phase: state.Ready,
		Stops: []state.StopState{
			{HasData: true, Snapshot: board.Snapshot{
				StopName: "Bel-Air",
				Departures: []board.Departure{
					{Line: "10", Minutes: 3},
					{Line: "10", Minutes: 7},
					{Line: "14", Minutes: 12},
				},
			}},
			{HasData: true, Snapshot: board.Snapshot{StopName: "Stand"}},
		},
	}
	geo := layout.Compute(2, 200, 60, cfg)

	out := renderBoard(view, geo, cfg, now, styles, 200, 60)
	for _, want := range []string{"Bel-Air", "Stand", "no departures", "3'"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRenderCardWithoutDepartures(t *testing.T) {
	cfg := config.Default()
	styles := midnightTheme().Styles()
	geo := layout.Compute(1, 200, 60, cfg)

	st := state.StopState{HasData: true, Snapshot: board.Snapshot{StopName: "Bel-Air"}}
	out := renderCard(st, geo.Cards[0], geo, cfg, styles)
	if !strings.Contains(out, "no departures") {
		t.Errorf("empty card missing placeholder: %q", out)
	}
}
