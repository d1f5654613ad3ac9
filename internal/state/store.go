package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/rohanod/busDisplay/internal/board"
	"github.com/rohanod/busDisplay/internal/weather"
)

// Phase is the board lifecycle state.
type Phase int

const (
	// Loading means at least one stop has never fetched successfully.
	Loading Phase = iota
	// Ready means every stop has fetched at least once. Ready is latched:
	// later fetch failures show stale data but never revert to Loading.
	Ready
)

// StopState is the latest view of one configured stop.
type StopState struct {
	Snapshot    board.Snapshot
	HasData     bool
	LastError   error
	LastUpdated time.Time
}

// View is the consistent picture the renderer draws from each frame.
type View struct {
	Phase      Phase
	Stops      []StopState
	Weather    weather.Report
	HasWeather bool
}

// Store coordinates the poller (writer) and the UI (reader). A failed fetch
// records its error but keeps the previous snapshot, so the display shows
// stale departures rather than blanking.
type Store struct {
	mu         sync.RWMutex
	stops      []StopState
	ready      bool
	weather    weather.Report
	hasWeather bool
}

// NewStore sizes a store for n configured stops. With zero stops the board
// is trivially Ready.
func NewStore(n int) *Store {
	return &Store{
		stops: make([]StopState, n),
		ready: n == 0,
	}
}

// SetStop records a fetch result for stop i. On error the previous snapshot
// is retained and only the error and timestamp change.
func (s *Store) SetStop(i int, snap board.Snapshot, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i < 0 || i >= len(s.stops) {
		return
	}
	slot := &s.stops[i]
	slot.LastUpdated = time.Now()
	if err != nil {
		slot.LastError = err
		return
	}
	slot.Snapshot = snap
	slot.HasData = true
	slot.LastError = nil

	if !s.ready {
		all := true
		for j := range s.stops {
			if !s.stops[j].HasData {
				all = false
				break
			}
		}
		s.ready = all
	}
}

// SetWeather records the latest weather report. Errors leave the previous
// report in place; the widget is decoration, never a failure source.
func (s *Store) SetWeather(rep weather.Report, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		return
	}
	s.weather = rep
	s.hasWeather = true
}

// View returns a copy of the current state, independent of later updates.
func (s *Store) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phase := Loading
	if s.ready {
		phase = Ready
	}
	view := View{
		Phase:      phase,
		Stops:      make([]StopState, len(s.stops)),
		Weather:    s.weather,
		HasWeather: s.hasWeather,
	}
	for i := range s.stops {
		view.Stops[i] = cloneStop(s.stops[i])
	}
	return view
}

func cloneStop(st StopState) StopState {
	out := st
	if len(st.Snapshot.Departures) > 0 {
		out.Snapshot.Departures = make([]board.Departure, len(st.Snapshot.Departures))
		copy(out.Snapshot.Departures, st.Snapshot.Departures)
	}
	if st.LastError != nil {
		out.LastError = fmt.Errorf("%w", st.LastError)
	}
	return out
}
