package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rohanod/busDisplay/internal/board"
	"github.com/rohanod/busDisplay/internal/config"
	"github.com/rohanod/busDisplay/internal/state"
	"github.com/rohanod/busDisplay/internal/transit"
	"github.com/rohanod/busDisplay/internal/weather"
)

const (
	// tickEvery is the scheduler cadence. Each tick fetches at most one stop
	// so a board full of stops never fires a burst of requests at once.
	tickEvery = time.Second

	weatherEvery = 30 * time.Minute
)

// WeatherSource provides the daily forecast. It exists so tests can substitute
// the open-meteo client.
type WeatherSource interface {
	Today(ctx context.Context) (weather.Report, error)
}

// poller refreshes the shared store in the background. Stops are polled
// round-robin, each on its own deadline, never more than one per tick.
type poller struct {
	store    *state.Store
	client   transit.Boarder
	wx       WeatherSource // nil disables the weather widget refresh
	cfg      config.Config
	log      *zap.SugaredLogger
	interval time.Duration

	next   []time.Time // per-stop deadlines; zero value means due now
	cursor int
	nextWx time.Time
}

func newPoller(store *state.Store, client transit.Boarder, wx WeatherSource, cfg config.Config, log *zap.SugaredLogger, interval time.Duration) *poller {
	if interval <= 0 {
		interval = time.Duration(cfg.FetchInterval) * time.Second
	}
	return &poller{
		store:    store,
		client:   client,
		wx:       wx,
		cfg:      cfg,
		log:      log,
		interval: interval,
		next:     make([]time.Time, len(cfg.Stops)),
	}
}

// Start launches the background refresh goroutine. It returns immediately.
func (p *poller) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(tickEvery)
		defer ticker.Stop()

		for {
			p.tick(ctx, time.Now())
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()
}

// tick runs one scheduler pass: fetch the first due stop after the cursor, or
// refresh the weather when no stop is due.
func (p *poller) tick(ctx context.Context, now time.Time) {
	for off := 0; off < len(p.next); off++ {
		i := (p.cursor + off) % len(p.next)
		if now.Before(p.next[i]) {
			continue
		}
		p.next[i] = now.Add(p.interval)
		p.cursor = (i + 1) % len(p.next)
		p.fetchStop(ctx, i, now)
		return
	}

	if p.wx != nil && !now.Before(p.nextWx) {
		p.nextWx = now.Add(weatherEvery)
		p.fetchWeather(ctx)
	}
}

func (p *poller) fetchStop(ctx context.Context, i int, now time.Time) {
	stop := p.cfg.Stops[i]
	resp, err := p.client.Stationboard(ctx, transit.StationboardQuery{
		StopID: stop.ID,
		Limit:  stop.Limit,
	})
	if err != nil {
		p.store.SetStop(i, board.Snapshot{}, err)
		p.log.Warnw("stationboard fetch failed", "stop", stop.ID, "error", err)
		return
	}

	snap := board.BuildSnapshot(resp, stop, now, board.Options{
		MaxDepartures: p.cfg.MaxDepartures,
		MaxMinutes:    p.cfg.MaxMinutes,
	})
	p.store.SetStop(i, snap, nil)
	p.log.Debugw("stationboard updated", "stop", stop.ID, "departures", len(snap.Departures))
}

func (p *poller) fetchWeather(ctx context.Context) {
	rep, err := p.wx.Today(ctx)
	if err != nil {
		p.store.SetWeather(weather.Report{}, err)
		p.log.Warnw("weather fetch failed", "error", err)
		return
	}
	p.store.SetWeather(rep, nil)
}
