package board

import (
	"fmt"
	"testing"
	"time"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/transit"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)

func conn(line, terminal string, offset time.Duration) transit.Connection {
	return transit.Connection{
		LineL:    line,
		Time:     testNow.Add(offset).Format("2006-01-02 15:04:05"),
		Terminal: transit.Terminal{ID: terminal},
	}
}

func strPtr(s string) *string { return &s }

func TestBuildSnapshot_IncludeFilter(t *testing.T) {
	resp := &transit.StationboardResponse{
		Stop: transit.StopInfo{Name: "Les Esserts"},
		Connections: []transit.Connection{
			conn("10", "8587061", 3*time.Minute),
			conn("10", "9999999", 4*time.Minute), // right line, wrong terminal
			conn("22", "8587061", 5*time.Minute), // wrong line
		},
	}
	stop := config.Stop{ID: "x", LinesInclude: map[string]*string{"10": strPtr("8587061")}}

	snap := BuildSnapshot(resp, stop, testNow, Options{})
	if len(snap.Departures) != 1 {
		t.Fatalf("departures = %#v, want exactly the 10→8587061 entry", snap.Departures)
	}
	if d := snap.Departures[0]; d.Line != "10" || d.Terminal != "8587061" || d.Minutes != 3 {
		t.Fatalf("departure = %#v, want line 10 terminal 8587061 minutes 3", d)
	}
}

func TestBuildSnapshot_IncludeNullTerminalMatchesAny(t *testing.T) {
	resp := &transit.StationboardResponse{
		Connections: []transit.Connection{
			conn("10", "8587061", 2*time.Minute),
			conn("10", "9999999", 3*time.Minute),
			conn("22", "8587061", 4*time.Minute),
		},
	}
	stop := config.Stop{ID: "x", LinesInclude: map[string]*string{"10": nil}}

	snap := BuildSnapshot(resp, stop, testNow, Options{})
	if len(snap.Departures) != 2 {
		t.Fatalf("departures = %#v, want both line-10 terminals", snap.Departures)
	}
}

func TestBuildSnapshot_ExcludeFilter(t *testing.T) {
	resp := &transit.StationboardResponse{
		Connections: []transit.Connection{
			conn("22", "8592843", 2*time.Minute),
			conn("22", "1111111", 3*time.Minute),
			conn("10", "8587061", 4*time.Minute),
		},
	}
	stop := config.Stop{ID: "x", LinesExclude: map[string]*string{"22": nil}}

	snap := BuildSnapshot(resp, stop, testNow, Options{})
	if len(snap.Departures) != 1 || snap.Departures[0].Line != "10" {
		t.Fatalf("departures = %#v, want all line 22 dropped regardless of terminal", snap.Departures)
	}
}

func TestBuildSnapshot_NoFilterShowsAll(t *testing.T) {
	resp := &transit.StationboardResponse{
		Connections: []transit.Connection{
			conn("10", "a", 2*time.Minute),
			conn("22", "b", 3*time.Minute),
		},
	}
	snap := BuildSnapshot(resp, config.Stop{ID: "x"}, testNow, Options{})
	if len(snap.Departures) != 2 {
		t.Fatalf("departures = %#v, want all lines with no filter", snap.Departures)
	}
}

func TestBuildSnapshot_MinuteComputation(t *testing.T) {
	tests := []struct {
		name        string
		offset      time.Duration
		wantKept    bool
		wantMinutes int
	}{
		{"three minutes out", 3 * time.Minute, true, 3},
		{"exactly now", 0, true, 0},
		{"thirty seconds ago clamps to zero", -30 * time.Second, true, 0},
		{"one minute ago still shown", -1 * time.Minute, true, 0},
		{"ninety seconds ago dropped", -90 * time.Second, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &transit.StationboardResponse{
				Connections: []transit.Connection{conn("10", "a", tt.offset)},
			}
			snap := BuildSnapshot(resp, config.Stop{ID: "x"}, testNow, Options{})
			if kept := len(snap.Departures) == 1; kept != tt.wantKept {
				t.Fatalf("kept = %v, want %v", kept, tt.wantKept)
			}
			if tt.wantKept && snap.Departures[0].Minutes != tt.wantMinutes {
				t.Fatalf("minutes = %d, want %d", snap.Departures[0].Minutes, tt.wantMinutes)
			}
		})
	}
}

func TestBuildSnapshot_HorizonAndTruncation(t *testing.T) {
	resp := &transit.StationboardResponse{}
	// 15 eligible departures, newest first to exercise the sort.
	for i := 15; i >= 1; i-- {
		resp.Connections = append(resp.Connections, conn(fmt.Sprintf("%d", i), "a", time.Duration(i)*time.Minute))
	}
	resp.Connections = append(resp.Connections, conn("far", "a", 3*time.Hour))

	snap := BuildSnapshot(resp, config.Stop{ID: "x"}, testNow, Options{MaxDepartures: 8, MaxMinutes: 120})
	if len(snap.Departures) != 8 {
		t.Fatalf("departures = %d, want 8", len(snap.Departures))
	}
	for i, d := range snap.Departures {
		if d.Minutes != i+1 {
			t.Fatalf("departure %d has minutes %d, want ascending 1..8", i, d.Minutes)
		}
	}
}

func TestBuildSnapshot_BadTimeSkipped(t *testing.T) {
	resp := &transit.StationboardResponse{
		Connections: []transit.Connection{
			{LineL: "10", Time: "not a time", Terminal: transit.Terminal{ID: "a"}},
			conn("10", "a", time.Minute),
		},
	}
	snap := BuildSnapshot(resp, config.Stop{ID: "x"}, testNow, Options{})
	if len(snap.Departures) != 1 {
		t.Fatalf("departures = %#v, want unparseable entry skipped", snap.Departures)
	}
}

func TestBuildSnapshot_MissingStopName(t *testing.T) {
	snap := BuildSnapshot(&transit.StationboardResponse{}, config.Stop{ID: "x"}, testNow, Options{})
	if snap.StopName != "?" {
		t.Fatalf("StopName = %q, want ? placeholder", snap.StopName)
	}
}
