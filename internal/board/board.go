package board

import (
	"math"
	"sort"
	"time"

	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/transit"
)

// Departure is one upcoming vehicle departure at a stop.
type Departure struct {
	Scheduled time.Time
	Line      string
	Terminal  string
	// Minutes until departure, clamped to >= 0.
	Minutes int
}

// Snapshot is the filtered, ordered departure list for one stop. It is
// rebuilt wholesale on every successful fetch.
type Snapshot struct {
	StopName   string
	Departures []Departure
}

// Options bound snapshot construction.
type Options struct {
	MaxDepartures int // truncate to this many earliest departures
	MaxMinutes    int // hide departures further out than this horizon
}

// timeLayout is the scheduled-time format of the stationboard API, in the
// stop's local timezone.
const timeLayout = "2006-01-02 15:04:05"

// graceWindow is how far in the past a departure may be and still show.
// Anything earlier than one minute ago is gone.
const graceWindow = -1

// BuildSnapshot converts a raw stationboard response into the stop's display
// snapshot: apply the stop's line filter, compute minutes until departure
// relative to now, drop stale and too-distant entries, sort ascending by
// scheduled time, and truncate.
func BuildSnapshot(resp *transit.StationboardResponse, stop config.Stop, now time.Time, opts Options) Snapshot {
	snap := Snapshot{StopName: resp.Stop.Name}
	if snap.StopName == "" {
		snap.StopName = "?"
	}

	for _, conn := range resp.Connections {
		line := conn.LineLabel()
		if !keep(stop, line, conn.Terminal.ID) {
			continue
		}

		scheduled, err := time.ParseInLocation(timeLayout, conn.Time, now.Location())
		if err != nil {
			continue
		}

		delta := int(math.Round(scheduled.Sub(now).Minutes()))
		if delta < graceWindow {
			continue
		}
		if opts.MaxMinutes > 0 && delta > opts.MaxMinutes {
			continue
		}

		snap.Departures = append(snap.Departures, Departure{
			Scheduled: scheduled,
			Line:      line,
			Terminal:  conn.Terminal.ID,
			Minutes:   max(delta, 0),
		})
	}

	sort.Slice(snap.Departures, func(i, j int) bool {
		return snap.Departures[i].Scheduled.Before(snap.Departures[j].Scheduled)
	})
	if opts.MaxDepartures > 0 && len(snap.Departures) > opts.MaxDepartures {
		snap.Departures = snap.Departures[:opts.MaxDepartures]
	}
	return snap
}

// keep reports whether a connection on line towards terminal passes the
// stop's filter. Inclusion keeps only matching entries; exclusion drops
// matching entries; a stop with no filter shows everything.
func keep(stop config.Stop, line, terminal string) bool {
	matches := func(filter map[string]*string) bool {
		want, ok := filter[line]
		if !ok {
			return false
		}
		return want == nil || *want == terminal
	}

	if stop.LinesInclude != nil {
		return matches(stop.LinesInclude)
	}
	if stop.LinesExclude != nil {
		return !matches(stop.LinesExclude)
	}
	return true
}
